package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ProjectCategory identifies the technical area a project belongs to.
type ProjectCategory string

const (
	CategoryWebDevelopment ProjectCategory = "WB"
	CategoryDatabase       ProjectCategory = "DB"
	CategoryMachineLearn   ProjectCategory = "ML"
	CategoryArtificialInt  ProjectCategory = "AI"
	CategoryDataScience    ProjectCategory = "DS"
)

// ProjectCategoryLabels maps category codes to their display names.
var ProjectCategoryLabels = map[ProjectCategory]string{
	CategoryWebDevelopment: "Web Development",
	CategoryDatabase:       "Database",
	CategoryMachineLearn:   "Machine Learning",
	CategoryArtificialInt:  "Artificial Intelligence",
	CategoryDataScience:    "Data Science",
}

func (c ProjectCategory) Label() string { return ProjectCategoryLabels[c] }

// Valid reports whether the code is a known category.
func (c ProjectCategory) Valid() bool {
	_, ok := ProjectCategoryLabels[c]
	return ok
}

// ProjectType is the engagement model (full time, part time, contract).
type ProjectType string

const (
	TypeFullTime ProjectType = "FT"
	TypePartTime ProjectType = "PT"
	TypeContract ProjectType = "CT"
)

// ProjectTypeLabels maps type codes to their display names.
var ProjectTypeLabels = map[ProjectType]string{
	TypeFullTime: "Full Time",
	TypePartTime: "Part Time",
	TypeContract: "Contract",
}

func (t ProjectType) Label() string { return ProjectTypeLabels[t] }

// Valid reports whether the code is a known type.
func (t ProjectType) Valid() bool {
	_, ok := ProjectTypeLabels[t]
	return ok
}

// ProjectAvailability says whether a project still accepts bids.
type ProjectAvailability string

const (
	AvailabilityAvailable    ProjectAvailability = "A"
	AvailabilityNotAvailable ProjectAvailability = "N"
)

// ProjectAvailabilityLabels maps availability codes to their display names.
var ProjectAvailabilityLabels = map[ProjectAvailability]string{
	AvailabilityAvailable:    "Available",
	AvailabilityNotAvailable: "Not Available",
}

func (a ProjectAvailability) Label() string { return ProjectAvailabilityLabels[a] }

// Valid reports whether the code is a known availability state.
func (a ProjectAvailability) Valid() bool {
	_, ok := ProjectAvailabilityLabels[a]
	return ok
}

// ProjectProgress tracks delivery state of a project.
type ProjectProgress string

const (
	ProgressPending   ProjectProgress = "P"
	ProgressActive    ProjectProgress = "A"
	ProgressCompleted ProjectProgress = "C"
)

// ProjectProgressLabels maps progress codes to their display names.
var ProjectProgressLabels = map[ProjectProgress]string{
	ProgressPending:   "Pending",
	ProgressActive:    "Active",
	ProgressCompleted: "Completed",
}

func (p ProjectProgress) Label() string { return ProjectProgressLabels[p] }

// Valid reports whether the code is a known progress state.
func (p ProjectProgress) Valid() bool {
	_, ok := ProjectProgressLabels[p]
	return ok
}

// Project is a piece of work posted by a client for developers to bid on.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`

	Category     ProjectCategory     `gorm:"type:varchar(2);not null;default:'WB'" json:"project_category"`
	Type         ProjectType         `gorm:"type:varchar(2);not null;default:'FT'" json:"project_type"`
	Availability ProjectAvailability `gorm:"type:varchar(1);not null;default:'A'" json:"project_availability"`
	Progress     ProjectProgress     `gorm:"type:varchar(1);not null;default:'P'" json:"project_progress"`
	Duration     string              `gorm:"size:50" json:"project_duration"`

	MinPrice int64  `json:"min_price"`
	MaxPrice int64  `json:"max_price"`
	FileURL  string `gorm:"type:text" json:"file"`

	// Assigned once at creation from the fresh ID and the name, immutable after.
	Slug string `gorm:"size:300;not null;uniqueIndex" json:"slug"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`
	Client   *User     `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Bids []Bid `gorm:"foreignKey:ProjectID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns the ID and derives the slug on first persist.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = DeriveSlug(p.ID, p.Name)
	}
	return nil
}

// PriceRange renders the min/max pair the way listings display it.
// Empty when either bound is unset.
func (p *Project) PriceRange() string {
	if p.MinPrice == 0 && p.MaxPrice == 0 {
		return ""
	}
	return fmt.Sprintf("%d - %d", p.MinPrice, p.MaxPrice)
}

// DeriveSlug builds the URL-safe identifier from a record's ID and its
// human-readable text. The ID segment keeps slugs unique across records that
// share a name; a DB unique index backs that up.
func DeriveSlug(id uuid.UUID, text string) string {
	return slug.Make(text) + "-" + id.String()[:8]
}

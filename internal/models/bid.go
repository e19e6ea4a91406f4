package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BidStatus is the lifecycle state of a bid.
type BidStatus string

const (
	BidStatusPending  BidStatus = "P"
	BidStatusAccepted BidStatus = "A"
	BidStatusRejected BidStatus = "R"
)

// BidStatusLabels maps status codes to their display names.
var BidStatusLabels = map[BidStatus]string{
	BidStatusPending:  "Pending",
	BidStatusAccepted: "Accepted",
	BidStatusRejected: "Rejected",
}

func (s BidStatus) Label() string { return BidStatusLabels[s] }

// Valid reports whether the code is a known bid status.
func (s BidStatus) Valid() bool {
	_, ok := BidStatusLabels[s]
	return ok
}

// CanTransitionTo reports whether moving to next is a legal status change.
// Only pending bids move; accepted and rejected are terminal.
func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return false
	}
	return s == BidStatusPending
}

// Bid is a developer's proposal on a client's project. The composite unique
// index on (project_id, developer_id) closes the check-then-insert race on
// concurrent duplicate submissions.
type Bid struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Proposal string    `gorm:"type:text;not null" json:"proposal"`
	Status   BidStatus `gorm:"type:varchar(1);not null;default:'P'" json:"status"`
	FileURL  string    `gorm:"type:text" json:"file"`

	// Assigned once at creation from the ID, the developer's username, and
	// the project name, immutable after.
	Slug string `gorm:"size:300;not null;uniqueIndex" json:"slug"`

	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bid_project_developer" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	DeveloperID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bid_project_developer" json:"developer_id"`
	Developer   *User     `gorm:"foreignKey:DeveloperID" json:"developer,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Bid) TableName() string {
	return "bids"
}

// BeforeCreate assigns the ID and derives the slug on first persist. The
// developer username and project name are read through the transaction when
// the associations are not already loaded.
func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Slug != "" {
		return nil
	}

	username := ""
	if b.Developer != nil {
		username = b.Developer.Username
	}
	if username == "" {
		var dev User
		if err := tx.Select("username").First(&dev, "id = ?", b.DeveloperID).Error; err != nil {
			return err
		}
		username = dev.Username
	}

	projectName := ""
	if b.Project != nil {
		projectName = b.Project.Name
	}
	if projectName == "" {
		var proj Project
		if err := tx.Select("name").First(&proj, "id = ?", b.ProjectID).Error; err != nil {
			return err
		}
		projectName = proj.Name
	}

	b.Slug = DeriveSlug(b.ID, username+" "+projectName)
	return nil
}

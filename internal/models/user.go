package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity record shared by clients, developers, and admins.
// Role flags are independent booleans rather than a single enum because an
// account may legitimately hold more than one role.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Firstname string    `gorm:"size:500" json:"firstname"`
	Lastname  string    `gorm:"size:500" json:"lastname"`
	ImageURL  string    `gorm:"type:text" json:"image"`
	About     string    `gorm:"type:text" json:"about"`

	IsVerified  bool `gorm:"default:false" json:"is_verified"`
	IsClient    bool `gorm:"default:false" json:"is_client"`
	IsDeveloper bool `gorm:"default:false" json:"is_developer"`
	IsAdmin     bool `gorm:"default:false" json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DeveloperProfile *DeveloperProfile `gorm:"foreignKey:UserID" json:"developer_profile,omitempty"`
	Projects         []Project         `gorm:"foreignKey:ClientID" json:"-"`
	Bids             []Bid             `gorm:"foreignKey:DeveloperID" json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the opaque ID before the row is inserted.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DeveloperRole classifies what kind of engineering work a developer does.
type DeveloperRole string

const (
	DeveloperRoleSoftwareDeveloper DeveloperRole = "SD"
	DeveloperRoleMLEngineer        DeveloperRole = "ML"
	DeveloperRoleSoftwareEngineer  DeveloperRole = "SE"
)

// DeveloperRoleLabels maps role codes to their display names.
var DeveloperRoleLabels = map[DeveloperRole]string{
	DeveloperRoleSoftwareDeveloper: "Software Developer",
	DeveloperRoleMLEngineer:        "Machine Learning Engineer",
	DeveloperRoleSoftwareEngineer:  "Software Engineer",
}

// Label returns the human-readable name for the role code.
func (r DeveloperRole) Label() string {
	return DeveloperRoleLabels[r]
}

// Valid reports whether the code is a known developer role.
func (r DeveloperRole) Valid() bool {
	_, ok := DeveloperRoleLabels[r]
	return ok
}

// DeveloperProfile is the one-to-one companion record created alongside every
// developer account.
type DeveloperProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	ResumeURL string        `gorm:"type:text" json:"resume"`
	Role      DeveloperRole `gorm:"type:varchar(2);not null;default:'SD'" json:"role"`
	Skills    string        `gorm:"type:text" json:"skills"`
	Github    string        `gorm:"type:text" json:"github"`
	Twitter   string        `gorm:"type:text" json:"twitter"`
	Linkedin  string        `gorm:"type:text" json:"linkedin"`
	Instagram string        `gorm:"type:text" json:"instagram"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM.
func (DeveloperProfile) TableName() string {
	return "developer_profiles"
}

// BeforeCreate assigns the opaque ID before the row is inserted.
func (p *DeveloperProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

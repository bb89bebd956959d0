// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/auth"
)

// Organization is a named account holding teams. Name shares a namespace
// with User usernames. Every organization owns exactly two built-in
// teams, "Owners" and "Members", created at construction; OwnersID and
// MembersID are declared nullable only to break the circular dependency
// during insertion and are never null after init.
type Organization struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID string    `gorm:"type:varchar(22);uniqueIndex;not null" json:"userid"`
	Name   *string   `gorm:"type:text;uniqueIndex" json:"name,omitempty"`
	Title  string    `gorm:"type:text;not null;default:''" json:"title"`

	OwnersID  *uuid.UUID `gorm:"type:uuid" json:"owners_id"`
	MembersID *uuid.UUID `gorm:"type:uuid" json:"members_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owners  *Team `gorm:"foreignKey:OwnersID" json:"-"`
	Members *Team `gorm:"foreignKey:MembersID" json:"-"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.UserID == "" {
		o.UserID = auth.NewBuid()
	}
	return nil
}

// PickerName renders the organization for autocomplete widgets.
func (o *Organization) PickerName() string {
	if o.Name != nil && *o.Name != "" {
		return o.Title + " (@" + *o.Name + ")"
	}
	return o.Title
}

// Team belongs to exactly one organization and cascade-deletes with it.
// When Domain is set, any user confirming an email address on that
// domain is auto-added to the team.
type Team struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID string    `gorm:"type:varchar(22);uniqueIndex;not null" json:"userid"`
	Title  string    `gorm:"type:text;not null" json:"title"`
	OrgID  uuid.UUID `gorm:"type:uuid;not null" json:"org_id"`
	Domain *string   `gorm:"type:text;index" json:"domain,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Org Organization `gorm:"foreignKey:OrgID;constraint:OnDelete:CASCADE" json:"-"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.UserID == "" {
		t.UserID = auth.NewBuid()
	}
	return nil
}

// TeamMembership is the junction row binding a user to a team. Rows
// cascade with the team, never with the user's other data.
type TeamMembership struct {
	TeamID    uuid.UUID `gorm:"type:uuid;primary_key" json:"team_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primary_key" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Team Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (TeamMembership) TableName() string { return "team_memberships" }

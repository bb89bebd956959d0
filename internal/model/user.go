// internal/model/user.go
package model

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/auth"
)

type UserStatus string

const (
	// StatusActive is a regular, active user.
	StatusActive UserStatus = "active"
	// StatusSuspended is a suspended account.
	StatusSuspended UserStatus = "suspended"
	// StatusMerged marks an account folded into another user.
	StatusMerged UserStatus = "merged"
	// StatusInvited is an invitee who hasn't made an account yet.
	StatusInvited UserStatus = "invited"
)

// User is an individual account. UserID is the permanent opaque handle;
// Username, when set, shares a namespace with Organization names.
type User struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   string     `gorm:"type:varchar(22);uniqueIndex;not null" json:"userid"`
	Username *string    `gorm:"type:text;uniqueIndex" json:"username,omitempty"`
	Fullname string     `gorm:"type:text;not null;default:''" json:"fullname"`
	Status   UserStatus `gorm:"type:text;not null;default:'active'" json:"status"`
	Timezone *string    `gorm:"type:text" json:"timezone,omitempty"`
	Avatar   *string    `gorm:"type:text" json:"avatar,omitempty"`

	// Password material is never serialized.
	PasswordHash      *string    `gorm:"type:text" json:"-"`
	PasswordSetAt     *time.Time `json:"-"`
	PasswordExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.UserID == "" {
		u.UserID = auth.NewBuid()
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return nil
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// ProfileID returns the username if set, else the permanent userid.
func (u *User) ProfileID() string {
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return u.UserID
}

// DisplayName returns the best available human-readable name.
func (u *User) DisplayName() string {
	if u.Fullname != "" {
		return u.Fullname
	}
	return u.ProfileID()
}

// PasswordHasExpired reports whether a set password is past its expiry.
func (u *User) PasswordHasExpired() bool {
	return u.PasswordHash != nil && u.PasswordExpiresAt != nil && !u.PasswordExpiresAt.After(time.Now())
}

var usernameRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidUsername reports whether the candidate satisfies the username
// format rule shared by usernames and organization names.
func ValidUsername(candidate string) bool {
	return usernameRe.MatchString(candidate)
}

// OldUserID is the merge ledger: an immutable record mapping a retired
// permanent identifier to its surviving user. UserID is deliberately not
// a foreign key; the row must outlive the retired User record.
type OldUserID struct {
	UserID    string    `gorm:"type:varchar(22);primary_key" json:"userid"`
	NewUserID uuid.UUID `gorm:"type:uuid;not null" json:"new_user_id"`
	CreatedAt time.Time `json:"created_at"`

	NewUser User `gorm:"foreignKey:NewUserID" json:"-"`
}

func (OldUserID) TableName() string { return "old_user_ids" }

// UserExternalID links a user to an account on an external login
// provider. Usernames are not guaranteed unique within a service; the
// (service, external id) pair is.
type UserExternalID struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_external_service_userid,priority:3" json:"user_id"`
	Service          string    `gorm:"type:text;not null;uniqueIndex:idx_external_service_userid,priority:1" json:"service"`
	ExternalID       string    `gorm:"type:text;not null;uniqueIndex:idx_external_service_userid,priority:2" json:"external_id"`
	Username         *string   `gorm:"type:text" json:"username,omitempty"`
	OauthToken       *string   `gorm:"type:text" json:"-"`
	OauthTokenSecret *string   `gorm:"type:text" json:"-"`
	OauthTokenType   *string   `gorm:"type:text" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// PasswordResetRequest holds a single-use secret for resetting a
// forgotten password.
type PasswordResetRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	ResetCode string    `gorm:"type:varchar(44);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *PasswordResetRequest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.ResetCode == "" {
		p.ResetCode = auth.NewSecret()
	}
	return nil
}

// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/auth"
)

// Session binds an opaque token to one user. Revocation is terminal: a
// revoked session never authenticates again.
type Session struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Token      string     `gorm:"type:varchar(22);uniqueIndex;not null" json:"-"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	AccessedAt time.Time  `gorm:"not null" json:"accessed_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	IPAddr     *string    `gorm:"type:text" json:"-"`
	UserAgent  *string    `gorm:"type:text" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Token == "" {
		s.Token = auth.NewBuid()
	}
	if s.AccessedAt.IsZero() {
		s.AccessedAt = time.Now().UTC()
	}
	return nil
}

func (s *Session) Revoked() bool { return s.RevokedAt != nil }

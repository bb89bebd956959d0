// internal/model/contact.go
package model

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/auth"
	"github.com/dangerclosesec/passport/internal/domain"
)

type OwnerKind string

const (
	OwnerUser OwnerKind = "user"
	OwnerOrg  OwnerKind = "org"
	OwnerTeam OwnerKind = "team"
)

// OwnerRef is a tagged union identifying the single entity that holds a
// contact channel: a user, an organization, or a team.
type OwnerRef struct {
	Kind OwnerKind
	ID   uuid.UUID
}

func UserOwner(id uuid.UUID) OwnerRef { return OwnerRef{Kind: OwnerUser, ID: id} }
func OrgOwner(id uuid.UUID) OwnerRef  { return OwnerRef{Kind: OwnerOrg, ID: id} }
func TeamOwner(id uuid.UUID) OwnerRef { return OwnerRef{Kind: OwnerTeam, ID: id} }

// OwnerColumns backs OwnerRef with three mutually exclusive nullable
// foreign keys. The storage layer enforces exactly-one-non-null with a
// CHECK constraint; two concurrent writers could otherwise both pass the
// application-level check.
type OwnerColumns struct {
	OwnerUserID *uuid.UUID `gorm:"type:uuid;index" json:"owner_user_id,omitempty"`
	OwnerOrgID  *uuid.UUID `gorm:"type:uuid;index" json:"owner_org_id,omitempty"`
	OwnerTeamID *uuid.UUID `gorm:"type:uuid;index" json:"owner_team_id,omitempty"`
}

// Owner returns whichever owner reference is set.
func (c *OwnerColumns) Owner() (OwnerRef, error) {
	set := 0
	var ref OwnerRef
	if c.OwnerUserID != nil {
		set++
		ref = UserOwner(*c.OwnerUserID)
	}
	if c.OwnerOrgID != nil {
		set++
		ref = OrgOwner(*c.OwnerOrgID)
	}
	if c.OwnerTeamID != nil {
		set++
		ref = TeamOwner(*c.OwnerTeamID)
	}
	if set != 1 {
		return OwnerRef{}, domain.ErrInvalidOwner
	}
	return ref, nil
}

// SetOwner assigns the owner, clearing the other two references in the
// same step. Ownership is a swap, never a multi-own.
func (c *OwnerColumns) SetOwner(ref OwnerRef) error {
	if ref.ID == uuid.Nil {
		return domain.ErrInvalidOwner
	}
	switch ref.Kind {
	case OwnerUser:
		c.OwnerUserID, c.OwnerOrgID, c.OwnerTeamID = &ref.ID, nil, nil
	case OwnerOrg:
		c.OwnerUserID, c.OwnerOrgID, c.OwnerTeamID = nil, &ref.ID, nil
	case OwnerTeam:
		c.OwnerUserID, c.OwnerOrgID, c.OwnerTeamID = nil, nil, &ref.ID
	default:
		return domain.ErrInvalidOwner
	}
	return nil
}

func (c *OwnerColumns) validateOwner() error {
	_, err := c.Owner()
	return err
}

// Fingerprint is a deterministic content hash of a normalized contact
// address, used for uniqueness lookups without comparing raw values.
func Fingerprint(address string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(address))))
	return hex.EncodeToString(sum[:])
}

// EmailDomain returns the part of an address after the last "@".
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// ConfirmedEmail is a verified email address. The fingerprint is
// globally unique: one owner per confirmed address.
type ConfirmedEmail struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerColumns

	Email       string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Fingerprint string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"fingerprint"`
	Domain      string    `gorm:"type:varchar(253);not null;index" json:"domain"`
	Primary     bool      `gorm:"not null;default:false" json:"primary"`
	Private     bool      `gorm:"not null;default:false" json:"private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *ConfirmedEmail) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return e.beforeSave()
}

func (e *ConfirmedEmail) BeforeUpdate(tx *gorm.DB) error { return e.beforeSave() }

func (e *ConfirmedEmail) beforeSave() error {
	if e.Fingerprint == "" {
		e.Fingerprint = Fingerprint(e.Email)
	}
	if e.Domain == "" {
		e.Domain = EmailDomain(e.Email)
	}
	return e.validateOwner()
}

// ClaimedEmail is an unverified assertion of ownership over an email
// address. Unlike confirmed addresses, claims are unique per
// (owner, email): several owners may claim the same address until one
// of them verifies it.
type ClaimedEmail struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerColumns

	Email            string    `gorm:"type:varchar(254);not null;index" json:"email"`
	VerificationCode string    `gorm:"type:varchar(44);not null" json:"-"`
	Fingerprint      string    `gorm:"type:varchar(32);not null;index" json:"fingerprint"`
	Domain           string    `gorm:"type:varchar(253);not null;index" json:"domain"`
	Private          bool      `gorm:"not null;default:false" json:"private"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *ClaimedEmail) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.VerificationCode == "" {
		c.VerificationCode = auth.NewSecret()
	}
	if c.Fingerprint == "" {
		c.Fingerprint = Fingerprint(c.Email)
	}
	if c.Domain == "" {
		c.Domain = EmailDomain(c.Email)
	}
	return c.validateOwner()
}

// ConfirmedPhone is a verified phone number, globally unique.
type ConfirmedPhone struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerColumns

	Phone       string    `gorm:"type:varchar(16);uniqueIndex;not null" json:"phone"`
	Fingerprint string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"fingerprint"`
	Primary     bool      `gorm:"not null;default:false" json:"primary"`
	GetsText    bool      `gorm:"not null;default:true" json:"gets_text"`
	Private     bool      `gorm:"not null;default:false" json:"private"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *ConfirmedPhone) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return p.beforeSave()
}

func (p *ConfirmedPhone) BeforeUpdate(tx *gorm.DB) error { return p.beforeSave() }

func (p *ConfirmedPhone) beforeSave() error {
	if p.Fingerprint == "" {
		p.Fingerprint = Fingerprint(p.Phone)
	}
	return p.validateOwner()
}

// ClaimedPhone is an unverified phone number pending PIN verification,
// unique per (owner, phone).
type ClaimedPhone struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OwnerColumns

	Phone            string    `gorm:"type:varchar(16);not null;index" json:"phone"`
	VerificationCode string    `gorm:"type:varchar(4);not null" json:"-"`
	GetsText         bool      `gorm:"not null;default:true" json:"gets_text"`
	Private          bool      `gorm:"not null;default:false" json:"private"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *ClaimedPhone) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.VerificationCode == "" {
		c.VerificationCode = auth.NewPin()
	}
	return c.validateOwner()
}

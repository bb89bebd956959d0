package model_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/model"
)

func TestFingerprint(t *testing.T) {
	// Case and surrounding whitespace are normalized away.
	assert.Equal(t, model.Fingerprint("alice@example.com"), model.Fingerprint("ALICE@Example.COM"))
	assert.Equal(t, model.Fingerprint("alice@example.com"), model.Fingerprint("  alice@example.com "))
	assert.NotEqual(t, model.Fingerprint("alice@example.com"), model.Fingerprint("bob@example.com"))
	assert.Len(t, model.Fingerprint("alice@example.com"), 32)
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "example.com", model.EmailDomain("alice@example.com"))
	assert.Equal(t, "example.com", model.EmailDomain("alice@EXAMPLE.COM"))
	assert.Equal(t, "b.example", model.EmailDomain(`"odd@local"@b.example`))
	assert.Equal(t, "", model.EmailDomain("no-at-sign"))
}

func TestOwnerSwap(t *testing.T) {
	userID := uuid.New()
	orgID := uuid.New()

	var cols model.OwnerColumns
	assert.NoError(t, cols.SetOwner(model.UserOwner(userID)))

	owner, err := cols.Owner()
	assert.NoError(t, err)
	assert.Equal(t, model.OwnerUser, owner.Kind)
	assert.Equal(t, userID, owner.ID)

	// Reassignment swaps: exactly one reference remains set.
	assert.NoError(t, cols.SetOwner(model.OrgOwner(orgID)))
	assert.Nil(t, cols.OwnerUserID)
	if assert.NotNil(t, cols.OwnerOrgID) {
		assert.Equal(t, orgID, *cols.OwnerOrgID)
	}
}

func TestOwnerInvalid(t *testing.T) {
	var cols model.OwnerColumns
	_, err := cols.Owner()
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)

	assert.ErrorIs(t, cols.SetOwner(model.OwnerRef{Kind: model.OwnerUser}), domain.ErrInvalidOwner)
	assert.ErrorIs(t, cols.SetOwner(model.OwnerRef{Kind: "robot", ID: uuid.New()}), domain.ErrInvalidOwner)

	// Two references set at once is corrupt regardless of which two.
	id := uuid.New()
	cols = model.OwnerColumns{OwnerUserID: &id, OwnerTeamID: &id}
	_, err = cols.Owner()
	assert.ErrorIs(t, err, domain.ErrInvalidOwner)
}

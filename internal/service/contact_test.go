package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/mocks"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
	"github.com/dangerclosesec/passport/internal/signals"
)

// stubGateway records sends and optionally fails them.
type stubGateway struct {
	emailSends int
	phoneSends int
	fail       error
}

func (g *stubGateway) SendEmailVerification(ctx context.Context, claim *model.ClaimedEmail) error {
	g.emailSends++
	return g.fail
}

func (g *stubGateway) SendPhoneVerificationCode(ctx context.Context, claim *model.ClaimedPhone) error {
	g.phoneSends++
	return g.fail
}

func newContactService(
	contactRepo *mocks.MockContactRepositoryIface,
	orgRepo *mocks.MockOrganizationRepositoryIface,
	userRepo *mocks.MockUserRepositoryIface,
	gateway *stubGateway,
) *service.ContactService {
	return service.NewContactService(contactRepo, orgRepo, userRepo, gateway, signals.NopBus{})
}

func emailClaim(owner model.OwnerRef, address, code string) *model.ClaimedEmail {
	claim := &model.ClaimedEmail{
		ID:               uuid.New(),
		Email:            address,
		VerificationCode: code,
		Fingerprint:      model.Fingerprint(address),
		Domain:           model.EmailDomain(address),
	}
	if err := claim.SetOwner(owner); err != nil {
		panic(err)
	}
	return claim
}

func TestClaimEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := model.UserOwner(uuid.New())

	t.Run("creates a claim and sends the link", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		gateway := &stubGateway{}

		contactRepo.EXPECT().
			FindEmailClaim(gomock.Any(), owner, "alice@example.com").
			Return(nil, domain.ErrClaimNotFound)
		contactRepo.EXPECT().
			CreateEmailClaim(gomock.Any(), gomock.Any()).
			Return(nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, gateway)
		claim, err := svc.ClaimEmail(context.Background(), owner, "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, "alice@example.com", claim.Email)
		assert.Equal(t, 1, gateway.emailSends)
	})

	t.Run("re-claiming resends against the existing claim", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		gateway := &stubGateway{}

		existing := emailClaim(owner, "alice@example.com", "secret1")
		contactRepo.EXPECT().
			FindEmailClaim(gomock.Any(), owner, "alice@example.com").
			Return(existing, nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, gateway)
		claim, err := svc.ClaimEmail(context.Background(), owner, "alice@example.com")

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, claim.ID)
		assert.Equal(t, 1, gateway.emailSends)
	})

	t.Run("delivery failure does not unwind the claim", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		gateway := &stubGateway{fail: assert.AnError}

		contactRepo.EXPECT().
			FindEmailClaim(gomock.Any(), owner, "alice@example.com").
			Return(nil, domain.ErrClaimNotFound)
		contactRepo.EXPECT().
			CreateEmailClaim(gomock.Any(), gomock.Any()).
			Return(nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, gateway)
		claim, err := svc.ClaimEmail(context.Background(), owner, "alice@example.com")

		assert.NoError(t, err)
		assert.NotNil(t, claim)
	})

	t.Run("rejects malformed addresses", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		_, err := svc.ClaimEmail(context.Background(), owner, "not-an-email")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestVerifyEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	owner := model.UserOwner(userID)

	t.Run("promotes the claim and marks the first address primary", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		claim := emailClaim(owner, "alice@co.example", "secret1")

		contactRepo.EXPECT().
			FindConfirmedEmailByFingerprint(gomock.Any(), claim.Fingerprint).
			Return(nil, domain.ErrEmailNotFound)
		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return(nil, nil)
		contactRepo.EXPECT().
			PromoteEmailClaim(gomock.Any(), claim, gomock.Any()).
			Return(nil)
		orgRepo.EXPECT().
			FindTeamsByDomain(gomock.Any(), "co.example").
			Return(nil, nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		confirmed, err := svc.VerifyEmail(context.Background(), claim, "secret1")

		assert.NoError(t, err)
		assert.True(t, confirmed.Primary)
		assert.Equal(t, "alice@co.example", confirmed.Email)
	})

	t.Run("second address is not primary", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		claim := emailClaim(owner, "alice+work@co.example", "secret2")

		contactRepo.EXPECT().
			FindConfirmedEmailByFingerprint(gomock.Any(), claim.Fingerprint).
			Return(nil, domain.ErrEmailNotFound)
		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return([]*model.ConfirmedEmail{{Email: "alice@co.example", Primary: true}}, nil)
		contactRepo.EXPECT().
			PromoteEmailClaim(gomock.Any(), claim, gomock.Any()).
			Return(nil)
		orgRepo.EXPECT().
			FindTeamsByDomain(gomock.Any(), "co.example").
			Return(nil, nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		confirmed, err := svc.VerifyEmail(context.Background(), claim, "secret2")

		assert.NoError(t, err)
		assert.False(t, confirmed.Primary)
	})

	t.Run("wrong code leaves the claim intact", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		claim := emailClaim(owner, "alice@co.example", "secret1")

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		_, err := svc.VerifyEmail(context.Background(), claim, "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
	})

	t.Run("address already confirmed elsewhere discards the claim", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		// Another user verified the same address first. The late claim
		// is spent, and the original confirmation is untouched.
		claim := emailClaim(owner, "shared@co.example", "secret1")
		other := &model.ConfirmedEmail{
			ID:          uuid.New(),
			Email:       "shared@co.example",
			Fingerprint: claim.Fingerprint,
		}

		contactRepo.EXPECT().
			FindConfirmedEmailByFingerprint(gomock.Any(), claim.Fingerprint).
			Return(other, nil)
		contactRepo.EXPECT().
			DeleteEmailClaim(gomock.Any(), claim.ID).
			Return(nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		_, err := svc.VerifyEmail(context.Background(), claim, "secret1")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("confirmation joins teams on the matching domain", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		claim := emailClaim(owner, "alice@co.example", "secret1")
		team := &model.Team{ID: uuid.New(), UserID: "teambuid", Title: "Staff"}

		contactRepo.EXPECT().
			FindConfirmedEmailByFingerprint(gomock.Any(), claim.Fingerprint).
			Return(nil, domain.ErrEmailNotFound)
		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return(nil, nil)
		contactRepo.EXPECT().
			PromoteEmailClaim(gomock.Any(), claim, gomock.Any()).
			Return(nil)
		orgRepo.EXPECT().
			FindTeamsByDomain(gomock.Any(), "co.example").
			Return([]*model.Team{team}, nil)
		orgRepo.EXPECT().
			AddTeamMember(gomock.Any(), team.ID, userID).
			Return(true, nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		_, err := svc.VerifyEmail(context.Background(), claim, "secret1")
		assert.NoError(t, err)
	})

	t.Run("org-owned addresses never join teams", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		orgOwner := model.OrgOwner(uuid.New())
		claim := emailClaim(orgOwner, "billing@co.example", "secret1")

		contactRepo.EXPECT().
			FindConfirmedEmailByFingerprint(gomock.Any(), claim.Fingerprint).
			Return(nil, domain.ErrEmailNotFound)
		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), orgOwner).
			Return(nil, nil)
		contactRepo.EXPECT().
			PromoteEmailClaim(gomock.Any(), claim, gomock.Any()).
			Return(nil)
		// No FindTeamsByDomain expectation: the scan is skipped.

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		_, err := svc.VerifyEmail(context.Background(), claim, "secret1")
		assert.NoError(t, err)
	})
}

func TestAddEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := model.UserOwner(uuid.New())

	t.Run("first address is primary even when not requested", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return(nil, nil)
		contactRepo.EXPECT().
			CreateConfirmedEmail(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, row *model.ConfirmedEmail) error {
				assert.True(t, row.Primary)
				return nil
			})
		orgRepo.EXPECT().
			FindTeamsByDomain(gomock.Any(), "solo.example").
			Return(nil, nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		confirmed, err := svc.AddEmail(context.Background(), owner, "only@solo.example", false)

		assert.NoError(t, err)
		assert.True(t, confirmed.Primary)
	})

	t.Run("explicit primary demotes others after the insert", func(t *testing.T) {
		old := &model.ConfirmedEmail{
			ID:          uuid.New(),
			Email:       "alice@co.example",
			Fingerprint: model.Fingerprint("alice@co.example"),
			Primary:     true,
		}
		assert.NoError(t, old.SetOwner(owner))

		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return([]*model.ConfirmedEmail{old}, nil).
			Times(2)
		contactRepo.EXPECT().
			CreateConfirmedEmail(gomock.Any(), gomock.Any()).
			Return(nil)
		contactRepo.EXPECT().
			UpdateConfirmedEmail(gomock.Any(), old).
			Return(nil)
		orgRepo.EXPECT().
			FindTeamsByDomain(gomock.Any(), "home.example").
			Return(nil, nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		confirmed, err := svc.AddEmail(context.Background(), owner, "alice@home.example", true)

		assert.NoError(t, err)
		assert.True(t, confirmed.Primary)
		assert.False(t, old.Primary)
	})

	t.Run("later addresses stay secondary by default", func(t *testing.T) {
		old := &model.ConfirmedEmail{
			ID:          uuid.New(),
			Email:       "alice@co.example",
			Fingerprint: model.Fingerprint("alice@co.example"),
			Primary:     true,
		}
		assert.NoError(t, old.SetOwner(owner))

		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)

		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return([]*model.ConfirmedEmail{old}, nil)
		contactRepo.EXPECT().
			CreateConfirmedEmail(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, row *model.ConfirmedEmail) error {
				assert.False(t, row.Primary)
				return nil
			})
		orgRepo.EXPECT().
			FindTeamsByDomain(gomock.Any(), "home.example").
			Return(nil, nil)

		svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
		confirmed, err := svc.AddEmail(context.Background(), owner, "alice@home.example", false)

		assert.NoError(t, err)
		assert.False(t, confirmed.Primary)
		assert.True(t, old.Primary)
	})

	t.Run("rejects a malformed address before touching the store", func(t *testing.T) {
		svc := newContactService(
			mocks.NewMockContactRepositoryIface(ctrl),
			mocks.NewMockOrganizationRepositoryIface(ctrl),
			mocks.NewMockUserRepositoryIface(ctrl),
			&stubGateway{},
		)
		_, err := svc.AddEmail(context.Background(), owner, "not-an-address", false)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestRemoveEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := model.UserOwner(uuid.New())

	// The delete and the promotion of the next primary commit in one
	// repository transaction, so the full row travels with its flag.
	primary := &model.ConfirmedEmail{
		ID:          uuid.New(),
		Email:       "alice@co.example",
		Fingerprint: model.Fingerprint("alice@co.example"),
		Primary:     true,
	}
	assert.NoError(t, primary.SetOwner(owner))

	contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	userRepo := mocks.NewMockUserRepositoryIface(ctrl)

	contactRepo.EXPECT().
		FindConfirmedEmailByFingerprint(gomock.Any(), primary.Fingerprint).
		Return(primary, nil)
	contactRepo.EXPECT().
		DeleteConfirmedEmail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, row *model.ConfirmedEmail) error {
			assert.Equal(t, primary.ID, row.ID)
			assert.True(t, row.Primary)
			return nil
		})

	svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
	err := svc.RemoveEmail(context.Background(), owner, "alice@co.example")
	assert.NoError(t, err)
}

func TestRemoveEmailOtherOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := model.UserOwner(uuid.New())
	other := model.UserOwner(uuid.New())

	confirmed := &model.ConfirmedEmail{
		ID:          uuid.New(),
		Email:       "bob@co.example",
		Fingerprint: model.Fingerprint("bob@co.example"),
	}
	assert.NoError(t, confirmed.SetOwner(other))

	contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	userRepo := mocks.NewMockUserRepositoryIface(ctrl)

	contactRepo.EXPECT().
		FindConfirmedEmailByFingerprint(gomock.Any(), confirmed.Fingerprint).
		Return(confirmed, nil)

	svc := newContactService(contactRepo, orgRepo, userRepo, &stubGateway{})
	err := svc.RemoveEmail(context.Background(), owner, "bob@co.example")
	assert.ErrorIs(t, err, domain.ErrEmailNotFound)
}

func TestPrimaryEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := model.UserOwner(uuid.New())

	t.Run("returns the flagged primary", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return([]*model.ConfirmedEmail{
				{Email: "old@co.example"},
				{Email: "main@co.example", Primary: true},
			}, nil)

		svc := newContactService(contactRepo, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), &stubGateway{})
		email, err := svc.PrimaryEmail(context.Background(), owner)
		assert.NoError(t, err)
		assert.Equal(t, "main@co.example", email)
	})

	t.Run("falls back to the earliest without writing", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return([]*model.ConfirmedEmail{
				{Email: "first@co.example"},
				{Email: "second@co.example"},
			}, nil)

		svc := newContactService(contactRepo, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), &stubGateway{})
		email, err := svc.PrimaryEmail(context.Background(), owner)
		assert.NoError(t, err)
		assert.Equal(t, "first@co.example", email)
	})

	t.Run("empty when the owner has none", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
		contactRepo.EXPECT().
			ListConfirmedEmails(gomock.Any(), owner).
			Return(nil, nil)

		svc := newContactService(contactRepo, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), &stubGateway{})
		email, err := svc.PrimaryEmail(context.Background(), owner)
		assert.NoError(t, err)
		assert.Equal(t, "", email)
	})
}

func TestEnsurePrimaryEmailRepairsDoublePrimary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := model.UserOwner(uuid.New())
	first := &model.ConfirmedEmail{Email: "a@co.example", Primary: true}
	second := &model.ConfirmedEmail{Email: "b@co.example", Primary: true}

	contactRepo := mocks.NewMockContactRepositoryIface(ctrl)
	contactRepo.EXPECT().
		ListConfirmedEmails(gomock.Any(), owner).
		Return([]*model.ConfirmedEmail{first, second}, nil)
	contactRepo.EXPECT().
		UpdateConfirmedEmail(gomock.Any(), second).
		Return(nil)

	svc := newContactService(contactRepo, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), &stubGateway{})
	err := svc.EnsurePrimaryEmail(context.Background(), owner)

	assert.NoError(t, err)
	assert.True(t, first.Primary)
	assert.False(t, second.Primary)
}

func TestVerifyPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := model.UserOwner(uuid.New())
	claim := &model.ClaimedPhone{
		ID:               uuid.New(),
		Phone:            "+15005550006",
		VerificationCode: "1234",
	}
	assert.NoError(t, claim.SetOwner(owner))

	t.Run("wrong PIN", func(t *testing.T) {
		svc := newContactService(mocks.NewMockContactRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), &stubGateway{})
		_, err := svc.VerifyPhone(context.Background(), claim, "0000")
		assert.ErrorIs(t, err, domain.ErrInvalidCode)
	})

	t.Run("promotes with the right PIN", func(t *testing.T) {
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindConfirmedPhoneByFingerprint(gomock.Any(), model.Fingerprint(claim.Phone)).
			Return(nil, domain.ErrPhoneNotFound)
		contactRepo.EXPECT().
			ListConfirmedPhones(gomock.Any(), owner).
			Return(nil, nil)
		contactRepo.EXPECT().
			PromotePhoneClaim(gomock.Any(), claim, gomock.Any()).
			Return(nil)

		svc := newContactService(contactRepo, mocks.NewMockOrganizationRepositoryIface(ctrl), mocks.NewMockUserRepositoryIface(ctrl), &stubGateway{})
		confirmed, err := svc.VerifyPhone(context.Background(), claim, "1234")

		assert.NoError(t, err)
		assert.True(t, confirmed.Primary)
		assert.Equal(t, claim.Phone, confirmed.Phone)
	})
}

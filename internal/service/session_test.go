package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dangerclosesec/passport/internal/auth"
	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/mocks"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
	"github.com/dangerclosesec/passport/internal/signals"
)

func newSessionService(
	sessionRepo *mocks.MockSessionRepositoryIface,
	userRepo *mocks.MockUserRepositoryIface,
	orgRepo *mocks.MockOrganizationRepositoryIface,
) *service.SessionService {
	identity := newIdentityService(userRepo, orgRepo)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return service.NewSessionService(sessionRepo, userRepo, identity, tokens, signals.NopBus{})
}

func userWithPassword(t *testing.T, fullname, password string) *model.User {
	t.Helper()
	user := activeUser(fullname)
	hash, err := auth.NewPasswordHasher().Hash(password)
	assert.NoError(t, err)
	user.PasswordHash = &hash
	return user
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("opens a session and issues a JWT", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		user := userWithPassword(t, "Alice Example", "correct horse battery")
		username := "alice"
		user.Username = &username

		userRepo.EXPECT().
			FindByUsername(gomock.Any(), "alice").
			Return(user, nil)
		sessionRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *model.Session) error {
				s.ID = uuid.New()
				s.Token = auth.NewBuid()
				return nil
			})

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		result, err := svc.Login(context.Background(), "alice", "correct horse battery", "203.0.113.9", "test-agent")

		assert.NoError(t, err)
		assert.Equal(t, user.UserID, result.User.UserID)
		assert.NotEmpty(t, result.Session.Token)
		assert.NotEmpty(t, result.JWT)
		if assert.NotNil(t, result.Session.IPAddr) {
			assert.Equal(t, "203.0.113.9", *result.Session.IPAddr)
		}
	})

	t.Run("unknown identifier and wrong password fail identically", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			FindByUsername(gomock.Any(), "nobody").
			Return(nil, domain.ErrUserNotFound)
		userRepo.EXPECT().
			FindByUserID(gomock.Any(), "nobody").
			Return(nil, domain.ErrUserNotFound)
		userRepo.EXPECT().
			FindOldID(gomock.Any(), "nobody").
			Return(nil, domain.ErrUserNotFound)

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		_, unknownErr := svc.Login(context.Background(), "nobody", "whatever", "", "")

		user := userWithPassword(t, "Alice Example", "correct horse battery")
		username := "alice"
		user.Username = &username
		userRepo.EXPECT().
			FindByUsername(gomock.Any(), "alice").
			Return(user, nil)

		_, wrongErr := svc.Login(context.Background(), "alice", "not it", "", "")

		assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, domain.ErrInvalidCredentials)
		assert.Equal(t, unknownErr, wrongErr)
	})

	t.Run("userid works as the identifier", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		user := userWithPassword(t, "Alice Example", "correct horse battery")

		userRepo.EXPECT().
			FindByUsername(gomock.Any(), user.UserID).
			Return(nil, domain.ErrUserNotFound)
		userRepo.EXPECT().
			FindByUserID(gomock.Any(), user.UserID).
			Return(user, nil)
		sessionRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *model.Session) error {
				s.Token = auth.NewBuid()
				return nil
			})

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		result, err := svc.Login(context.Background(), user.UserID, "correct horse battery", "", "")

		assert.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
	})

	t.Run("expired password fails closed", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		user := userWithPassword(t, "Alice Example", "correct horse battery")
		username := "alice"
		user.Username = &username
		expired := time.Now().Add(-time.Hour)
		user.PasswordExpiresAt = &expired

		userRepo.EXPECT().
			FindByUsername(gomock.Any(), "alice").
			Return(user, nil)

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		_, err := svc.Login(context.Background(), "alice", "correct horse battery", "", "")
		assert.ErrorIs(t, err, domain.ErrPasswordExpired)
	})

	t.Run("suspended accounts cannot log in", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		user := userWithPassword(t, "Alice Example", "correct horse battery")
		username := "alice"
		user.Username = &username
		user.Status = model.StatusSuspended

		userRepo.EXPECT().
			FindByUsername(gomock.Any(), "alice").
			Return(user, nil)
		// ResolveActive turns the suspension into not-found before the
		// password is even checked.
		userRepo.EXPECT().
			FindByUserID(gomock.Any(), "alice").
			Return(nil, domain.ErrUserNotFound)
		userRepo.EXPECT().
			FindOldID(gomock.Any(), "alice").
			Return(nil, domain.ErrUserNotFound)

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		_, err := svc.Login(context.Background(), "alice", "correct horse battery", "", "")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("resolves a live token", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		user := activeUser("Alice Example")
		session := &model.Session{ID: uuid.New(), UserID: user.ID, Token: "tok123"}

		sessionRepo.EXPECT().FindByToken(gomock.Any(), "tok123").Return(session, nil)
		userRepo.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		got, gotSession, err := svc.Authenticate(context.Background(), "tok123")

		assert.NoError(t, err)
		assert.Equal(t, user.UserID, got.UserID)
		assert.Equal(t, session.ID, gotSession.ID)
	})

	t.Run("revoked and unknown tokens fail identically", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		revokedAt := time.Now().Add(-time.Minute)
		revoked := &model.Session{ID: uuid.New(), UserID: uuid.New(), Token: "dead", RevokedAt: &revokedAt}

		sessionRepo.EXPECT().FindByToken(gomock.Any(), "dead").Return(revoked, nil)
		sessionRepo.EXPECT().FindByToken(gomock.Any(), "gone").Return(nil, domain.ErrSessionNotFound)

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		_, _, revokedErr := svc.Authenticate(context.Background(), "dead")
		_, _, unknownErr := svc.Authenticate(context.Background(), "gone")

		assert.ErrorIs(t, revokedErr, domain.ErrSessionNotFound)
		assert.ErrorIs(t, unknownErr, domain.ErrSessionNotFound)
		assert.Equal(t, revokedErr, unknownErr)
	})

	t.Run("sessions survive a merge of their user", func(t *testing.T) {
		sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		merged := activeUser("Old Account")
		merged.Status = model.StatusMerged
		survivor := activeUser("New Account")

		session := &model.Session{ID: uuid.New(), UserID: merged.ID, Token: "tok123"}

		sessionRepo.EXPECT().FindByToken(gomock.Any(), "tok123").Return(session, nil)
		userRepo.EXPECT().FindByID(gomock.Any(), merged.ID).Return(merged, nil)
		userRepo.EXPECT().
			FindOldID(gomock.Any(), merged.UserID).
			Return(&model.OldUserID{UserID: merged.UserID, NewUserID: survivor.ID}, nil)
		userRepo.EXPECT().FindByID(gomock.Any(), survivor.ID).Return(survivor, nil)

		svc := newSessionService(sessionRepo, userRepo, orgRepo)
		got, _, err := svc.Authenticate(context.Background(), "tok123")

		assert.NoError(t, err)
		assert.Equal(t, survivor.UserID, got.UserID)
	})
}

func TestAccessIsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	session := &model.Session{ID: uuid.New(), UserID: uuid.New()}

	sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
	sessionRepo.EXPECT().
		Touch(gomock.Any(), session.ID, gomock.Any()).
		Return(assert.AnError)

	svc := newSessionService(sessionRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl))
	svc.Access(context.Background(), session)

	assert.True(t, session.AccessedAt.IsZero())
}

func TestRevoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	session := &model.Session{ID: uuid.New(), UserID: uuid.New()}

	sessionRepo := mocks.NewMockSessionRepositoryIface(ctrl)
	sessionRepo.EXPECT().
		Revoke(gomock.Any(), session.ID, gomock.Any()).
		Return(nil)
	sessionRepo.EXPECT().
		RevokeAllForUser(gomock.Any(), session.UserID, gomock.Any()).
		Return(nil)

	svc := newSessionService(sessionRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockOrganizationRepositoryIface(ctrl))
	assert.NoError(t, svc.Revoke(context.Background(), session))
	assert.NoError(t, svc.RevokeAll(context.Background(), session.UserID))
}

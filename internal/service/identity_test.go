package service_test

import (
	"context"
	"testing"

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

func newIdentityService(userRepo *mocks.MockUserRepositoryIface, orgRepo *mocks.MockOrganizationRepositoryIface) *service.IdentityService {
	return service.NewIdentityService(userRepo, orgRepo, auth.NewPasswordHasher(), signals.NopBus{})
}

func activeUser(fullname string) *model.User {
	return &model.User{
		ID:       uuid.New(),
		UserID:   auth.NewBuid(),
		Fullname: fullname,
		Status:   model.StatusActive,
	}
}

func TestCreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("creates active user with username", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			UsernameExists(gomock.Any(), "alice", uuid.Nil).
			Return(false, nil)
		orgRepo.EXPECT().
			NameExists(gomock.Any(), "alice", uuid.Nil).
			Return(false, nil)
		userRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil)

		svc := newIdentityService(userRepo, orgRepo)
		user, err := svc.CreateUser(context.Background(), service.CreateUserInput{
			Fullname: "Alice",
			Username: "alice",
			Password: "correct_password",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Alice", user.Fullname)
		assert.Equal(t, "alice", *user.Username)
		assert.Equal(t, model.StatusActive, user.Status)
		assert.NotNil(t, user.PasswordHash)
		assert.NotNil(t, user.PasswordExpiresAt)
	})

	t.Run("rejects missing fullname", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		svc := newIdentityService(userRepo, orgRepo)
		_, err := svc.CreateUser(context.Background(), service.CreateUserInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects username held by an organization", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().
			UsernameExists(gomock.Any(), "acme", uuid.Nil).
			Return(false, nil)
		orgRepo.EXPECT().
			NameExists(gomock.Any(), "acme", uuid.Nil).
			Return(true, nil)

		svc := newIdentityService(userRepo, orgRepo)
		_, err := svc.CreateUser(context.Background(), service.CreateUserInput{
			Fullname: "Squatter",
			Username: "acme",
		})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})
}

func TestGetUserFollowsMergeChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// u1 was merged into u2, u2 into u3. Looking up u1 must land on u3.
	u1 := activeUser("First")
	u1.Status = model.StatusMerged
	u2 := activeUser("Second")
	u2.Status = model.StatusMerged
	u3 := activeUser("Third")

	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

	userRepo.EXPECT().FindByUserID(gomock.Any(), u1.UserID).Return(u1, nil)
	userRepo.EXPECT().FindOldID(gomock.Any(), u1.UserID).
		Return(&model.OldUserID{UserID: u1.UserID, NewUserID: u2.ID}, nil)
	userRepo.EXPECT().FindByID(gomock.Any(), u2.ID).Return(u2, nil)
	userRepo.EXPECT().FindOldID(gomock.Any(), u2.UserID).
		Return(&model.OldUserID{UserID: u2.UserID, NewUserID: u3.ID}, nil)
	userRepo.EXPECT().FindByID(gomock.Any(), u3.ID).Return(u3, nil)

	svc := newIdentityService(userRepo, orgRepo)
	got, err := svc.GetUserByUserID(context.Background(), u1.UserID)

	assert.NoError(t, err)
	assert.Equal(t, u3.ID, got.ID)
}

func TestGetUserBrokenMergeChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	merged := activeUser("Orphan")
	merged.Status = model.StatusMerged

	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

	userRepo.EXPECT().FindByUserID(gomock.Any(), merged.UserID).Return(merged, nil)
	// A merged user with no ledger row is unresolvable, not an internal error.
	userRepo.EXPECT().FindOldID(gomock.Any(), merged.UserID).
		Return(nil, domain.ErrUserNotFound)

	svc := newIdentityService(userRepo, orgRepo)
	_, err := svc.GetUserByUserID(context.Background(), merged.UserID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserSuspendedIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	suspended := activeUser("Banned")
	suspended.Status = model.StatusSuspended

	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	userRepo.EXPECT().FindByUserID(gomock.Any(), suspended.UserID).Return(suspended, nil)

	svc := newIdentityService(userRepo, orgRepo)
	_, err := svc.GetUserByUserID(context.Background(), suspended.UserID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetUserByRetiredUserID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The old row is gone entirely; only the ledger entry remains.
	survivor := activeUser("Survivor")
	retired := auth.NewBuid()

	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

	userRepo.EXPECT().FindByUserID(gomock.Any(), retired).Return(nil, domain.ErrUserNotFound)
	userRepo.EXPECT().FindOldID(gomock.Any(), retired).
		Return(&model.OldUserID{UserID: retired, NewUserID: survivor.ID}, nil)
	userRepo.EXPECT().FindByID(gomock.Any(), survivor.ID).Return(survivor, nil)

	svc := newIdentityService(userRepo, orgRepo)
	got, err := svc.GetUserByUserID(context.Background(), retired)

	assert.NoError(t, err)
	assert.Equal(t, survivor.ID, got.ID)
}

func TestSetUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("accepts a free name", func(t *testing.T) {
		user := activeUser("Alice")
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().UsernameExists(gomock.Any(), "alice", user.ID).Return(false, nil)
		orgRepo.EXPECT().NameExists(gomock.Any(), "alice", uuid.Nil).Return(false, nil)
		userRepo.EXPECT().Update(gomock.Any(), user).Return(nil)

		svc := newIdentityService(userRepo, orgRepo)
		err := svc.SetUsername(context.Background(), user, "alice")
		assert.NoError(t, err)
		assert.Equal(t, "alice", *user.Username)
	})

	t.Run("reports a collision instead of silently keeping the old name", func(t *testing.T) {
		user := activeUser("Bob")
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().UsernameExists(gomock.Any(), "alice", user.ID).Return(true, nil)

		svc := newIdentityService(userRepo, orgRepo)
		err := svc.SetUsername(context.Background(), user, "alice")
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		assert.Nil(t, user.Username)
	})

	t.Run("rejects malformed names before any lookup", func(t *testing.T) {
		user := activeUser("Mallory")
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		svc := newIdentityService(userRepo, orgRepo)
		for _, bad := range []string{"Has Spaces", "UPPER", "-leading", "trailing-", "dot.ted"} {
			err := svc.SetUsername(context.Background(), user, bad)
			assert.ErrorIs(t, err, domain.ErrInvalidUsername, bad)
		}
	})

	t.Run("clearing the username skips validation", func(t *testing.T) {
		user := activeUser("Carol")
		name := "carol"
		user.Username = &name
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		userRepo.EXPECT().Update(gomock.Any(), user).Return(nil)

		svc := newIdentityService(userRepo, orgRepo)
		err := svc.SetUsername(context.Background(), user, "")
		assert.NoError(t, err)
		assert.Nil(t, user.Username)
	})
}

func TestPasswordLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := activeUser("Alice")
	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	userRepo.EXPECT().Update(gomock.Any(), user).Return(nil)

	svc := newIdentityService(userRepo, orgRepo)

	err := svc.SetPassword(context.Background(), user, "short")
	assert.ErrorIs(t, err, domain.ErrPasswordTooWeak)

	err = svc.SetPassword(context.Background(), user, "correct_password")
	assert.NoError(t, err)
	assert.False(t, user.PasswordHasExpired())

	assert.True(t, svc.PasswordIs(user, "correct_password"))
	assert.False(t, svc.PasswordIs(user, "wrong_password"))
}

func TestListUsersDeduplicatesMergedAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	survivor := activeUser("Survivor")
	merged := activeUser("Old")
	merged.Status = model.StatusMerged

	userRepo := mocks.NewMockUserRepositoryIface(ctrl)
	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

	userRepo.EXPECT().
		FindAllByIdentifiers(gomock.Any(), []string{merged.UserID, survivor.UserID}, nil).
		Return([]*model.User{merged, survivor}, nil)
	userRepo.EXPECT().FindOldID(gomock.Any(), merged.UserID).
		Return(&model.OldUserID{UserID: merged.UserID, NewUserID: survivor.ID}, nil)
	userRepo.EXPECT().FindByID(gomock.Any(), survivor.ID).Return(survivor, nil)

	svc := newIdentityService(userRepo, orgRepo)
	users, err := svc.ListUsers(context.Background(), []string{merged.UserID, survivor.UserID}, nil)

	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, survivor.ID, users[0].ID)
}

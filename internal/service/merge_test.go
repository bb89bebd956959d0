package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/mocks"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
	"github.com/dangerclosesec/passport/internal/signals"
)

func newMergeService(userRepo *mocks.MockUserRepositoryIface, orgRepo *mocks.MockOrganizationRepositoryIface) *service.MergeService {
	identity := newIdentityService(userRepo, orgRepo)
	return service.NewMergeService(userRepo, identity, signals.NopBus{})
}

func TestMergeUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("retires the old account into the survivor", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		oldUser := activeUser("Old Account")
		newUser := activeUser("Survivor")

		userRepo.EXPECT().FindByUserID(gomock.Any(), oldUser.UserID).Return(oldUser, nil)
		userRepo.EXPECT().FindByUserID(gomock.Any(), newUser.UserID).Return(newUser, nil)
		userRepo.EXPECT().Merge(gomock.Any(), oldUser, newUser).Return(nil)

		svc := newMergeService(userRepo, orgRepo)
		survivor, err := svc.MergeUsers(context.Background(), oldUser.UserID, newUser.UserID)

		assert.NoError(t, err)
		assert.Equal(t, newUser.UserID, survivor.UserID)
	})

	t.Run("self-merge is rejected", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		user := activeUser("Alice Example")
		userRepo.EXPECT().FindByUserID(gomock.Any(), user.UserID).Return(user, nil).Times(2)

		svc := newMergeService(userRepo, orgRepo)
		_, err := svc.MergeUsers(context.Background(), user.UserID, user.UserID)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("merging into an inactive account is refused", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		oldUser := activeUser("Old Account")
		suspended := activeUser("Suspended")
		suspended.Status = model.StatusSuspended

		userRepo.EXPECT().FindByUserID(gomock.Any(), oldUser.UserID).Return(oldUser, nil)
		userRepo.EXPECT().FindByUserID(gomock.Any(), suspended.UserID).Return(suspended, nil)

		svc := newMergeService(userRepo, orgRepo)
		_, err := svc.MergeUsers(context.Background(), oldUser.UserID, suspended.UserID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("repeating a merge is a no-op", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		oldUser := activeUser("Old Account")
		oldUser.Status = model.StatusMerged
		newUser := activeUser("Survivor")

		userRepo.EXPECT().FindByUserID(gomock.Any(), oldUser.UserID).Return(oldUser, nil)
		userRepo.EXPECT().FindByUserID(gomock.Any(), newUser.UserID).Return(newUser, nil)
		// No Merge expectation: the repeat returns the survivor untouched.

		svc := newMergeService(userRepo, orgRepo)
		survivor, err := svc.MergeUsers(context.Background(), oldUser.UserID, newUser.UserID)

		assert.NoError(t, err)
		assert.Equal(t, newUser.UserID, survivor.UserID)
	})

	t.Run("a retired userid with only a ledger row is already merged", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)

		newUser := activeUser("Survivor")

		userRepo.EXPECT().FindByUserID(gomock.Any(), "retired-userid").Return(nil, domain.ErrUserNotFound)
		userRepo.EXPECT().FindOldID(gomock.Any(), "retired-userid").Return(&model.OldUserID{UserID: "retired-userid", NewUserID: newUser.ID}, nil)
		userRepo.EXPECT().FindByUserID(gomock.Any(), newUser.UserID).Return(newUser, nil)

		svc := newMergeService(userRepo, orgRepo)
		survivor, err := svc.MergeUsers(context.Background(), "retired-userid", newUser.UserID)

		assert.NoError(t, err)
		assert.Equal(t, newUser.UserID, survivor.UserID)
	})
}

// internal/service/merge.go
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/repository"
	"github.com/dangerclosesec/passport/internal/signals"
)

// MergeService folds duplicate accounts into a surviving one. The old
// account keeps its row (status merged) and its retired userid is
// recorded so historic references keep resolving.
type MergeService struct {
	repo     repository.UserRepositoryIface
	identity *IdentityService
	bus      signals.Bus
}

func NewMergeService(repo repository.UserRepositoryIface, identity *IdentityService, bus signals.Bus) *MergeService {
	return &MergeService{repo: repo, identity: identity, bus: bus}
}

// MergeUsers retires oldUserID into newUserID. Both sides are resolved
// through any prior merges first, so merging into an already-merged
// account lands on its survivor. The merge itself is atomic: team
// memberships are unioned, the old account is flagged, and the ledger
// row is written in one transaction.
func (s *MergeService) MergeUsers(ctx context.Context, oldUserID, newUserID string) (*model.User, error) {
	// The old side is read unresolved: a row that is already merged
	// must be seen as merged, not followed to its survivor.
	oldUser, err := s.repo.FindByUserID(ctx, oldUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if _, ledgerErr := s.repo.FindOldID(ctx, oldUserID); ledgerErr == nil {
				// Row gone but the ledger knows it: retired long ago.
				return s.identity.GetUserByUserID(ctx, newUserID)
			}
		}
		return nil, err
	}
	newUser, err := s.identity.GetUserByUserID(ctx, newUserID)
	if err != nil {
		return nil, err
	}

	if !newUser.IsActive() {
		return nil, domain.ErrUserNotFound
	}
	if oldUser.Status == model.StatusMerged {
		// Already retired; nothing to do.
		return newUser, nil
	}
	if oldUser.ID == newUser.ID {
		return nil, domain.ErrInvalidInput
	}

	if err := s.repo.Merge(ctx, oldUser, newUser); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "merged user account",
		"old_userid", oldUser.UserID, "new_userid", newUser.UserID)

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserDataChanged,
		Subject: newUser.UserID,
		Changes: []string{"merge"},
	})
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.MembershipChanged,
		Subject: newUser.UserID,
		Changes: []string{"merge"},
	})

	return newUser, nil
}

// internal/service/identity.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dangerclosesec/passport/internal/auth"
	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/repository"
	"github.com/dangerclosesec/passport/internal/signals"
)

// maxMergeHops bounds merge-chain resolution. A chain this deep means a
// ledger cycle, which is treated as broken.
const maxMergeHops = 10

// IdentityService owns user accounts: creation, lookup with merge
// following, username assignment and password material.
type IdentityService struct {
	repo     repository.UserRepositoryIface
	orgRepo  repository.OrganizationRepositoryIface
	hasher   *auth.PasswordHasher
	bus      signals.Bus
	validate *validator.Validate
}

func NewIdentityService(
	repo repository.UserRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	hasher *auth.PasswordHasher,
	bus signals.Bus,
) *IdentityService {
	return &IdentityService{
		repo:     repo,
		orgRepo:  orgRepo,
		hasher:   hasher,
		bus:      bus,
		validate: validator.New(),
	}
}

type CreateUserInput struct {
	Fullname string `json:"fullname" validate:"required"`
	Username string `json:"username"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Timezone string `json:"timezone"`
}

// CreateUser registers a new active user. The username, when given, is
// subject to the shared user/organization namespace rule.
func (s *IdentityService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	user := &model.User{
		Fullname: input.Fullname,
		Status:   model.StatusActive,
	}
	if input.Timezone != "" {
		user.Timezone = &input.Timezone
	}

	if input.Password != "" {
		if err := s.setPassword(user, input.Password); err != nil {
			return nil, err
		}
	}

	if input.Username != "" {
		if err := s.checkUsername(ctx, input.Username, uuid.Nil); err != nil {
			return nil, err
		}
		user.Username = &input.Username
	}

	// The unique constraint is the authority; the pre-check above only
	// produces a friendlier error in the common case.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserRegistered,
		Subject: user.UserID,
		Changes: []string{"registered"},
	})

	return user, nil
}

// GetUserByUserID returns the user with the given permanent identifier,
// transparently following merge records to the surviving account.
// Suspended, invited and unresolvable users are reported as not found.
func (s *IdentityService) GetUserByUserID(ctx context.Context, userid string) (*model.User, error) {
	user, err := s.repo.FindByUserID(ctx, userid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// The row may be gone while its merge ledger entry survives.
			return s.resolveOldUserID(ctx, userid)
		}
		return nil, err
	}
	return s.ResolveActive(ctx, user)
}

// GetUserByUsername returns the active user with the given username,
// following merges like GetUserByUserID.
func (s *IdentityService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.ResolveActive(ctx, user)
}

// ResolveActive follows a merged user to its surviving identity and
// filters out non-active results.
func (s *IdentityService) ResolveActive(ctx context.Context, user *model.User) (*model.User, error) {
	for hops := 0; hops < maxMergeHops; hops++ {
		if user.Status != model.StatusMerged {
			if !user.IsActive() {
				return nil, domain.ErrUserNotFound
			}
			return user, nil
		}
		next, err := s.resolveMergedOnce(ctx, user)
		if err != nil {
			return nil, err
		}
		user = next
	}
	slog.WarnContext(ctx, "merge chain exceeded hop limit", "userid", user.UserID)
	return nil, domain.ErrUserNotFound
}

func (s *IdentityService) resolveMergedOnce(ctx context.Context, user *model.User) (*model.User, error) {
	oldid, err := s.repo.FindOldID(ctx, user.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// A merged user without a ledger row: broken chain.
			slog.WarnContext(ctx, "merge chain broken", "userid", user.UserID)
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	next, err := s.repo.FindByID(ctx, oldid.NewUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			slog.WarnContext(ctx, "merge chain broken", "userid", user.UserID)
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return next, nil
}

func (s *IdentityService) resolveOldUserID(ctx context.Context, userid string) (*model.User, error) {
	oldid, err := s.repo.FindOldID(ctx, userid)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, oldid.NewUserID)
	if err != nil {
		return nil, err
	}
	return s.ResolveActive(ctx, user)
}

// ListUsers returns the active users behind the given identifiers,
// merge-resolved and deduplicated.
func (s *IdentityService) ListUsers(ctx context.Context, userids, usernames []string) ([]*model.User, error) {
	rows, err := s.repo.FindAllByIdentifiers(ctx, userids, usernames)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool)
	var users []*model.User
	for _, row := range rows {
		user, err := s.ResolveActive(ctx, row)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		if !seen[user.ID] {
			seen[user.ID] = true
			users = append(users, user)
		}
	}
	return users, nil
}

// SetUsername assigns a username. Unlike the read-modify-write setters
// elsewhere, the result is explicit: callers get a validation or
// conflict error instead of a silent no-op.
func (s *IdentityService) SetUsername(ctx context.Context, user *model.User, candidate string) error {
	if candidate == "" {
		user.Username = nil
		return s.repo.Update(ctx, user)
	}
	if err := s.checkUsername(ctx, candidate, user.ID); err != nil {
		return err
	}
	user.Username = &candidate
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserDataChanged,
		Subject: user.UserID,
		Changes: []string{"username"},
	})
	return nil
}

// checkUsername applies the format rule and consults both namespaces:
// other users' usernames and userids, and organization names.
func (s *IdentityService) checkUsername(ctx context.Context, candidate string, excludeID uuid.UUID) error {
	if !model.ValidUsername(candidate) {
		return domain.ErrInvalidUsername
	}
	taken, err := s.repo.UsernameExists(ctx, candidate, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}
	taken, err = s.orgRepo.NameExists(ctx, candidate, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}
	return nil
}

// SetPassword hashes and stores a new password with a fresh expiry.
func (s *IdentityService) SetPassword(ctx context.Context, user *model.User, password string) error {
	if err := s.setPassword(user, password); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserDataChanged,
		Subject: user.UserID,
		Changes: []string{"password"},
	})
	return nil
}

func (s *IdentityService) setPassword(user *model.User, password string) error {
	if len(password) < 8 {
		return domain.ErrPasswordTooWeak
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	now := time.Now().UTC()
	expires := now.Add(auth.PasswordMaxAge)
	user.PasswordHash = &hash
	user.PasswordSetAt = &now
	user.PasswordExpiresAt = &expires
	return nil
}

// PasswordIs checks a candidate password against the stored hash.
func (s *IdentityService) PasswordIs(user *model.User, password string) bool {
	if user.PasswordHash == nil {
		return false
	}
	ok, err := s.hasher.Verify(password, *user.PasswordHash)
	if err != nil {
		return false
	}
	return ok
}

// RequestPasswordReset issues a single-use reset secret for the user.
func (s *IdentityService) RequestPasswordReset(ctx context.Context, user *model.User) (*model.PasswordResetRequest, error) {
	req := &model.PasswordResetRequest{UserID: user.ID}
	if err := s.repo.CreateResetRequest(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ResetPassword consumes a reset secret and installs the new password.
func (s *IdentityService) ResetPassword(ctx context.Context, user *model.User, code, password string) error {
	req, err := s.repo.FindResetRequest(ctx, user.ID, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidCode
		}
		return err
	}
	if err := s.SetPassword(ctx, user, password); err != nil {
		return err
	}
	return s.repo.DeleteResetRequest(ctx, req.ID)
}

// LinkExternalAccount records a login-provider identity for the user.
func (s *IdentityService) LinkExternalAccount(ctx context.Context, user *model.User, service, externalID, username string) (*model.UserExternalID, error) {
	ext := &model.UserExternalID{
		UserID:     user.ID,
		Service:    service,
		ExternalID: externalID,
	}
	if username != "" {
		ext.Username = &username
	}
	if err := s.repo.CreateExternalID(ctx, ext); err != nil {
		return nil, err
	}
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserDataChanged,
		Subject: user.UserID,
		Changes: []string{"external-id"},
	})
	return ext, nil
}

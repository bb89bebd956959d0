// internal/service/session.go
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dangerclosesec/passport/internal/auth"
	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/repository"
	"github.com/dangerclosesec/passport/internal/signals"
)

// SessionService manages login sessions. Tokens are opaque and
// single-row; revocation is terminal and indistinguishable from a
// session that never existed.
type SessionService struct {
	repo     repository.SessionRepositoryIface
	userRepo repository.UserRepositoryIface
	identity *IdentityService
	tokens   *auth.TokenManager
	bus      signals.Bus
}

func NewSessionService(
	repo repository.SessionRepositoryIface,
	userRepo repository.UserRepositoryIface,
	identity *IdentityService,
	tokens *auth.TokenManager,
	bus signals.Bus,
) *SessionService {
	return &SessionService{
		repo:     repo,
		userRepo: userRepo,
		identity: identity,
		tokens:   tokens,
		bus:      bus,
	}
}

// LoginResult carries everything a login handler needs to respond.
type LoginResult struct {
	User    *model.User
	Session *model.Session
	JWT     string
}

// Login verifies credentials against the user found by username or
// userid and opens a session. Expired passwords fail closed so the
// caller can route to the reset flow.
func (s *SessionService) Login(ctx context.Context, identifier, password, ipAddr, userAgent string) (*LoginResult, error) {
	user, err := s.identity.GetUserByUsername(ctx, identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.identity.GetUserByUserID(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive() || !s.identity.PasswordIs(user, password) {
		return nil, domain.ErrInvalidCredentials
	}
	if user.PasswordHasExpired() {
		return nil, domain.ErrPasswordExpired
	}

	session, err := s.Create(ctx, user, ipAddr, userAgent)
	if err != nil {
		return nil, err
	}

	jwt, err := s.tokens.Generate(user.UserID, session.Token)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Session: session, JWT: jwt}, nil
}

// Create opens a session for the user. The opaque token is generated by
// the model hook.
func (s *SessionService) Create(ctx context.Context, user *model.User, ipAddr, userAgent string) (*model.Session, error) {
	session := &model.Session{UserID: user.ID}
	if ipAddr != "" {
		session.IPAddr = &ipAddr
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserLogin,
		Subject: user.UserID,
	})

	return session, nil
}

// Authenticate resolves a session token to its live user. Revoked and
// unknown tokens fail identically, and a user retired by a merge
// resolves to the surviving account.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*model.User, *model.Session, error) {
	session, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}
	if session.Revoked() {
		return nil, nil, domain.ErrSessionNotFound
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	user, err = s.identity.ResolveActive(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive() {
		return nil, nil, domain.ErrSessionNotFound
	}

	return user, session, nil
}

// Access stamps the session's last-access time. Best effort: a failed
// stamp is logged but never fails the request it rode in on.
func (s *SessionService) Access(ctx context.Context, session *model.Session) {
	now := time.Now().UTC()
	if err := s.repo.Touch(ctx, session.ID, now); err != nil {
		slog.WarnContext(ctx, "session access stamp failed",
			"session_id", session.ID, "error", err)
		return
	}
	session.AccessedAt = now
}

// Revoke terminates one session. Revoking an already-revoked session is
// a no-op.
func (s *SessionService) Revoke(ctx context.Context, session *model.Session) error {
	return s.repo.Revoke(ctx, session.ID, time.Now().UTC())
}

// RevokeAll terminates every live session for the user, e.g. after a
// password reset.
func (s *SessionService) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.RevokeAllForUser(ctx, userID, time.Now().UTC())
}

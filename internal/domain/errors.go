// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Validation errors: malformed input, no state change
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrPasswordTooWeak = errors.New("password too weak")

	// Conflict errors: uniqueness violations, recoverable by the caller
	ErrUsernameTaken = errors.New("username or name already taken")
	ErrEmailTaken    = errors.New("email address already claimed by another owner")
	ErrPhoneTaken    = errors.New("phone number already claimed by another owner")
	ErrClaimExists   = errors.New("claim already exists for this owner")

	// Not-found errors: explicit absent results, never exceptional control flow
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrClaimNotFound        = errors.New("claim not found")
	ErrEmailNotFound        = errors.New("email address not found")
	ErrPhoneNotFound        = errors.New("phone number not found")

	// Consistency errors: abort the enclosing transaction
	ErrInvalidOwner    = errors.New("contact channel must have exactly one owner")
	ErrMergeChainBroke = errors.New("merge chain is broken")

	// Authentication errors. Unknown and revoked sessions share a single
	// sentinel so callers cannot distinguish the two cases.
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrPasswordExpired    = errors.New("password has expired")
)

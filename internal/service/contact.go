// internal/service/contact.go
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/email"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/repository"
	"github.com/dangerclosesec/passport/internal/signals"
)

// ContactService runs the claim -> verify -> promote workflow for email
// addresses and phone numbers, and maintains the one-primary-per-owner
// invariant.
type ContactService struct {
	repo     repository.ContactRepositoryIface
	orgRepo  repository.OrganizationRepositoryIface
	userRepo repository.UserRepositoryIface
	gateway  email.Gateway
	bus      signals.Bus
	validate *validator.Validate
}

func NewContactService(
	repo repository.ContactRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	gateway email.Gateway,
	bus signals.Bus,
) *ContactService {
	return &ContactService{
		repo:     repo,
		orgRepo:  orgRepo,
		userRepo: userRepo,
		gateway:  gateway,
		bus:      bus,
		validate: validator.New(),
	}
}

// ClaimEmail records an unverified assertion over an address and sends
// the verification link. Re-claiming resends against the existing claim.
// Several owners may hold claims on the same address; only confirmation
// is exclusive.
func (s *ContactService) ClaimEmail(ctx context.Context, owner model.OwnerRef, address string) (*model.ClaimedEmail, error) {
	if err := s.validate.Var(address, "required,email"); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	claim, err := s.repo.FindEmailClaim(ctx, owner, address)
	if err != nil && !errors.Is(err, domain.ErrClaimNotFound) {
		return nil, err
	}

	if claim == nil {
		claim = &model.ClaimedEmail{Email: address}
		if err := claim.SetOwner(owner); err != nil {
			return nil, err
		}
		if err := s.repo.CreateEmailClaim(ctx, claim); err != nil {
			if errors.Is(err, domain.ErrClaimExists) {
				// Concurrent claim for the same (owner, email); re-read
				// and use the row that won.
				claim, err = s.repo.FindEmailClaim(ctx, owner, address)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	}

	// Delivery is fire-and-forget: a failed send never unwinds the claim.
	if err := s.gateway.SendEmailVerification(ctx, claim); err != nil {
		slog.ErrorContext(ctx, "email verification delivery failed",
			"email", claim.Email, "error", err)
	}

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.EmailClaimed,
		Subject: claim.Fingerprint,
		Changes: []string{"email-claim"},
	})

	return claim, nil
}

// FindEmailClaim locates the owner's pending claim whose address hashes
// to the given fingerprint. Verification links carry the fingerprint,
// not the address.
func (s *ContactService) FindEmailClaim(ctx context.Context, owner model.OwnerRef, fingerprint string) (*model.ClaimedEmail, error) {
	claims, err := s.repo.ListEmailClaims(ctx, owner)
	if err != nil {
		return nil, err
	}
	for _, c := range claims {
		if c.Fingerprint == fingerprint {
			return c, nil
		}
	}
	return nil, domain.ErrClaimNotFound
}

// FindPhoneClaim returns the owner's pending claim by row id, checking
// the owner actually holds it.
func (s *ContactService) FindPhoneClaim(ctx context.Context, owner model.OwnerRef, id uuid.UUID) (*model.ClaimedPhone, error) {
	claim, err := s.repo.FindPhoneClaimByID(ctx, id)
	if err != nil {
		return nil, err
	}
	claimOwner, err := claim.Owner()
	if err != nil {
		return nil, err
	}
	if claimOwner != owner {
		return nil, domain.ErrClaimNotFound
	}
	return claim, nil
}

// VerifyEmail confirms a claim with its secret. On success the claim is
// replaced by a confirmed address, primary iff the owner had none. If a
// different owner confirmed the address first, the claim is discarded
// and the caller gets a conflict.
func (s *ContactService) VerifyEmail(ctx context.Context, claim *model.ClaimedEmail, code string) (*model.ConfirmedEmail, error) {
	if claim.VerificationCode != code {
		return nil, domain.ErrInvalidCode
	}

	owner, err := claim.Owner()
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.FindConfirmedEmailByFingerprint(ctx, claim.Fingerprint); err == nil && existing != nil {
		// Already confirmed. The claim is spent either way.
		if delErr := s.repo.DeleteEmailClaim(ctx, claim.ID); delErr != nil {
			return nil, delErr
		}
		return nil, domain.ErrEmailTaken
	} else if err != nil && !errors.Is(err, domain.ErrEmailNotFound) {
		return nil, err
	}

	existing, err := s.repo.ListConfirmedEmails(ctx, owner)
	if err != nil {
		return nil, err
	}

	confirmed := &model.ConfirmedEmail{
		Email:       claim.Email,
		Fingerprint: model.Fingerprint(claim.Email),
		Domain:      model.EmailDomain(claim.Email),
		Primary:     len(existing) == 0,
		Private:     claim.Private,
	}
	if err := confirmed.SetOwner(owner); err != nil {
		return nil, err
	}

	// The fingerprint's unique constraint arbitrates concurrent
	// confirmations; losing it surfaces as a conflict here.
	if err := s.repo.PromoteEmailClaim(ctx, claim, confirmed); err != nil {
		return nil, err
	}

	if err := s.autoJoinTeams(ctx, confirmed); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserDataChanged,
		Subject: confirmed.Fingerprint,
		Changes: []string{"email"},
	})

	return confirmed, nil
}

// AddEmail attaches an already-verified address to an owner, bypassing
// the claim workflow. Used by administrative imports and by flows that
// verified the address out of band.
func (s *ContactService) AddEmail(ctx context.Context, owner model.OwnerRef, address string, primary bool) (*model.ConfirmedEmail, error) {
	if err := s.validate.Var(address, "required,email"); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	existing, err := s.repo.ListConfirmedEmails(ctx, owner)
	if err != nil {
		return nil, err
	}

	// The owner's first confirmed address is primary regardless of the
	// flag; there must be exactly one once any address exists.
	confirmed := &model.ConfirmedEmail{
		Email:       address,
		Fingerprint: model.Fingerprint(address),
		Domain:      model.EmailDomain(address),
		Primary:     primary || len(existing) == 0,
	}
	if err := confirmed.SetOwner(owner); err != nil {
		return nil, err
	}
	if err := s.repo.CreateConfirmedEmail(ctx, confirmed); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			// Tolerate the duplicate-key race: if this owner already
			// holds the address, return the existing row.
			row, findErr := s.repo.FindConfirmedEmailByFingerprint(ctx, model.Fingerprint(address))
			if findErr != nil {
				return nil, err
			}
			if rowOwner, ownerErr := row.Owner(); ownerErr == nil && rowOwner == owner {
				return row, nil
			}
		}
		return nil, err
	}

	// Demote after the insert so a failed create cannot leave the owner
	// without a primary.
	if confirmed.Primary && len(existing) > 0 {
		if err := s.demoteOtherEmails(ctx, owner, address); err != nil {
			return nil, err
		}
	}

	if err := s.autoJoinTeams(ctx, confirmed); err != nil {
		return nil, err
	}

	return confirmed, nil
}

// autoJoinTeams adds a user owner to every team whose domain matches the
// confirmed address. The counterpart of SetTeamDomain; both paths are
// idempotent.
func (s *ContactService) autoJoinTeams(ctx context.Context, confirmed *model.ConfirmedEmail) error {
	if confirmed.OwnerUserID == nil || confirmed.Domain == "" {
		return nil
	}
	teams, err := s.orgRepo.FindTeamsByDomain(ctx, confirmed.Domain)
	if err != nil {
		return err
	}
	for _, team := range teams {
		added, err := s.orgRepo.AddTeamMember(ctx, team.ID, *confirmed.OwnerUserID)
		if err != nil {
			return err
		}
		if added {
			s.bus.Publish(ctx, signals.Event{
				Name:    signals.MembershipChanged,
				Subject: team.UserID,
				Changes: []string{"team-membership"},
			})
		}
	}
	return nil
}

// RemoveEmail deletes a confirmed address or a pending claim. Removing
// the primary promotes the earliest remaining confirmed address so that
// an owner with any confirmed addresses always has exactly one primary.
func (s *ContactService) RemoveEmail(ctx context.Context, owner model.OwnerRef, address string) error {
	confirmed, err := s.repo.FindConfirmedEmailByFingerprint(ctx, model.Fingerprint(address))
	if err == nil {
		rowOwner, ownerErr := confirmed.Owner()
		if ownerErr != nil {
			return ownerErr
		}
		if rowOwner != owner {
			return domain.ErrEmailNotFound
		}
		if err := s.repo.DeleteConfirmedEmail(ctx, confirmed); err != nil {
			return err
		}
		s.bus.Publish(ctx, signals.Event{
			Name:    signals.UserDataChanged,
			Subject: confirmed.Fingerprint,
			Changes: []string{"email-delete"},
		})
		return nil
	}
	if !errors.Is(err, domain.ErrEmailNotFound) {
		return err
	}

	claim, err := s.repo.FindEmailClaim(ctx, owner, address)
	if err != nil {
		return err
	}
	return s.repo.DeleteEmailClaim(ctx, claim.ID)
}

// PrimaryEmail returns the owner's primary confirmed address, falling
// back to the earliest confirmed address without writing anything, and
// "" when the owner has none. Use EnsurePrimaryEmail to repair the flag.
func (s *ContactService) PrimaryEmail(ctx context.Context, owner model.OwnerRef) (string, error) {
	emails, err := s.repo.ListConfirmedEmails(ctx, owner)
	if err != nil {
		return "", err
	}
	for _, e := range emails {
		if e.Primary {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}
	return "", nil
}

// EnsurePrimaryEmail repairs the primary flag: exactly one primary when
// the owner has any confirmed addresses, favoring the flagged one and
// falling back to creation order.
func (s *ContactService) EnsurePrimaryEmail(ctx context.Context, owner model.OwnerRef) error {
	emails, err := s.repo.ListConfirmedEmails(ctx, owner)
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return nil
	}
	primaryFound := false
	for _, e := range emails {
		if !e.Primary {
			continue
		}
		if primaryFound {
			e.Primary = false
			if err := s.repo.UpdateConfirmedEmail(ctx, e); err != nil {
				return err
			}
			continue
		}
		primaryFound = true
	}
	if !primaryFound {
		emails[0].Primary = true
		if err := s.repo.UpdateConfirmedEmail(ctx, emails[0]); err != nil {
			return err
		}
	}
	return nil
}

// ClaimPhone records an unverified phone number and sends its PIN.
func (s *ContactService) ClaimPhone(ctx context.Context, owner model.OwnerRef, number string) (*model.ClaimedPhone, error) {
	if err := s.validate.Var(number, "required,e164"); err != nil {
		return nil, domain.ErrInvalidPhone
	}

	claim, err := s.repo.FindPhoneClaim(ctx, owner, number)
	if err != nil && !errors.Is(err, domain.ErrClaimNotFound) {
		return nil, err
	}

	if claim == nil {
		claim = &model.ClaimedPhone{Phone: number}
		if err := claim.SetOwner(owner); err != nil {
			return nil, err
		}
		if err := s.repo.CreatePhoneClaim(ctx, claim); err != nil {
			if errors.Is(err, domain.ErrClaimExists) {
				claim, err = s.repo.FindPhoneClaim(ctx, owner, number)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
	}

	if err := s.gateway.SendPhoneVerificationCode(ctx, claim); err != nil {
		slog.ErrorContext(ctx, "phone verification delivery failed",
			"phone", claim.Phone, "error", err)
	}

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.PhoneClaimed,
		Subject: model.Fingerprint(claim.Phone),
		Changes: []string{"phone-claim"},
	})

	return claim, nil
}

// VerifyPhone confirms a phone claim with its PIN, with the same
// promotion and conflict rules as VerifyEmail.
func (s *ContactService) VerifyPhone(ctx context.Context, claim *model.ClaimedPhone, code string) (*model.ConfirmedPhone, error) {
	if claim.VerificationCode != code {
		return nil, domain.ErrInvalidCode
	}

	owner, err := claim.Owner()
	if err != nil {
		return nil, err
	}

	fingerprint := model.Fingerprint(claim.Phone)
	if existing, err := s.repo.FindConfirmedPhoneByFingerprint(ctx, fingerprint); err == nil && existing != nil {
		if delErr := s.repo.DeletePhoneClaim(ctx, claim.ID); delErr != nil {
			return nil, delErr
		}
		return nil, domain.ErrPhoneTaken
	} else if err != nil && !errors.Is(err, domain.ErrPhoneNotFound) {
		return nil, err
	}

	existing, err := s.repo.ListConfirmedPhones(ctx, owner)
	if err != nil {
		return nil, err
	}

	confirmed := &model.ConfirmedPhone{
		Phone:       claim.Phone,
		Fingerprint: fingerprint,
		Primary:     len(existing) == 0,
		GetsText:    claim.GetsText,
		Private:     claim.Private,
	}
	if err := confirmed.SetOwner(owner); err != nil {
		return nil, err
	}

	if err := s.repo.PromotePhoneClaim(ctx, claim, confirmed); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.UserDataChanged,
		Subject: confirmed.Fingerprint,
		Changes: []string{"phone"},
	})

	return confirmed, nil
}

// RemovePhone mirrors RemoveEmail for phone numbers.
func (s *ContactService) RemovePhone(ctx context.Context, owner model.OwnerRef, number string) error {
	confirmed, err := s.repo.FindConfirmedPhoneByFingerprint(ctx, model.Fingerprint(number))
	if err == nil {
		rowOwner, ownerErr := confirmed.Owner()
		if ownerErr != nil {
			return ownerErr
		}
		if rowOwner != owner {
			return domain.ErrPhoneNotFound
		}
		if err := s.repo.DeleteConfirmedPhone(ctx, confirmed); err != nil {
			return err
		}
		s.bus.Publish(ctx, signals.Event{
			Name:    signals.UserDataChanged,
			Subject: confirmed.Fingerprint,
			Changes: []string{"phone-delete"},
		})
		return nil
	}
	if !errors.Is(err, domain.ErrPhoneNotFound) {
		return err
	}

	claim, err := s.repo.FindPhoneClaim(ctx, owner, number)
	if err != nil {
		return err
	}
	return s.repo.DeletePhoneClaim(ctx, claim.ID)
}

// PrimaryPhone mirrors PrimaryEmail: pure read, "" when there is none.
func (s *ContactService) PrimaryPhone(ctx context.Context, owner model.OwnerRef) (string, error) {
	phones, err := s.repo.ListConfirmedPhones(ctx, owner)
	if err != nil {
		return "", err
	}
	for _, p := range phones {
		if p.Primary {
			return p.Phone, nil
		}
	}
	if len(phones) > 0 {
		return phones[0].Phone, nil
	}
	return "", nil
}

// EnsurePrimaryPhone mirrors EnsurePrimaryEmail.
func (s *ContactService) EnsurePrimaryPhone(ctx context.Context, owner model.OwnerRef) error {
	phones, err := s.repo.ListConfirmedPhones(ctx, owner)
	if err != nil {
		return err
	}
	if len(phones) == 0 {
		return nil
	}
	primaryFound := false
	for _, p := range phones {
		if !p.Primary {
			continue
		}
		if primaryFound {
			p.Primary = false
			if err := s.repo.UpdateConfirmedPhone(ctx, p); err != nil {
				return err
			}
			continue
		}
		primaryFound = true
	}
	if !primaryFound {
		phones[0].Primary = true
		if err := s.repo.UpdateConfirmedPhone(ctx, phones[0]); err != nil {
			return err
		}
	}
	return nil
}

// demoteOtherEmails clears the primary flag on the owner's confirmed
// addresses except the one named (pass "" to demote all).
func (s *ContactService) demoteOtherEmails(ctx context.Context, owner model.OwnerRef, keep string) error {
	emails, err := s.repo.ListConfirmedEmails(ctx, owner)
	if err != nil {
		return err
	}
	keepFp := ""
	if keep != "" {
		keepFp = model.Fingerprint(keep)
	}
	for _, e := range emails {
		if e.Primary && e.Fingerprint != keepFp {
			e.Primary = false
			if err := s.repo.UpdateConfirmedEmail(ctx, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// internal/repository/contact.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/model"
)

type ContactRepositoryIface interface {
	Begin(ctx context.Context) (Transaction, error) // For mocking support in tests

	CreateEmailClaim(ctx context.Context, claim *model.ClaimedEmail) error
	FindEmailClaim(ctx context.Context, owner model.OwnerRef, email string) (*model.ClaimedEmail, error)
	FindEmailClaimByID(ctx context.Context, id uuid.UUID) (*model.ClaimedEmail, error)
	ListEmailClaims(ctx context.Context, owner model.OwnerRef) ([]*model.ClaimedEmail, error)
	DeleteEmailClaim(ctx context.Context, id uuid.UUID) error
	PromoteEmailClaim(ctx context.Context, claim *model.ClaimedEmail, confirmed *model.ConfirmedEmail) error

	CreateConfirmedEmail(ctx context.Context, email *model.ConfirmedEmail) error
	UpdateConfirmedEmail(ctx context.Context, email *model.ConfirmedEmail) error
	DeleteConfirmedEmail(ctx context.Context, email *model.ConfirmedEmail) error
	FindConfirmedEmailByFingerprint(ctx context.Context, fingerprint string) (*model.ConfirmedEmail, error)
	ListConfirmedEmails(ctx context.Context, owner model.OwnerRef) ([]*model.ConfirmedEmail, error)
	FindConfirmedEmailsByDomain(ctx context.Context, emailDomain string) ([]*model.ConfirmedEmail, error)

	CreatePhoneClaim(ctx context.Context, claim *model.ClaimedPhone) error
	FindPhoneClaim(ctx context.Context, owner model.OwnerRef, phone string) (*model.ClaimedPhone, error)
	FindPhoneClaimByID(ctx context.Context, id uuid.UUID) (*model.ClaimedPhone, error)
	DeletePhoneClaim(ctx context.Context, id uuid.UUID) error
	PromotePhoneClaim(ctx context.Context, claim *model.ClaimedPhone, confirmed *model.ConfirmedPhone) error

	CreateConfirmedPhone(ctx context.Context, phone *model.ConfirmedPhone) error
	UpdateConfirmedPhone(ctx context.Context, phone *model.ConfirmedPhone) error
	DeleteConfirmedPhone(ctx context.Context, phone *model.ConfirmedPhone) error
	FindConfirmedPhoneByFingerprint(ctx context.Context, fingerprint string) (*model.ConfirmedPhone, error)
	ListConfirmedPhones(ctx context.Context, owner model.OwnerRef) ([]*model.ConfirmedPhone, error)
}

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Begin(ctx context.Context) (Transaction, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTransaction{tx: tx}, nil
}

// ownerScope narrows a query to rows held by the given owner.
func ownerScope(owner model.OwnerRef) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch owner.Kind {
		case model.OwnerUser:
			return db.Where("owner_user_id = ?", owner.ID)
		case model.OwnerOrg:
			return db.Where("owner_org_id = ?", owner.ID)
		case model.OwnerTeam:
			return db.Where("owner_team_id = ?", owner.ID)
		default:
			db.AddError(domain.ErrInvalidOwner)
			return db
		}
	}
}

func (r *ContactRepository) CreateEmailClaim(ctx context.Context, claim *model.ClaimedEmail) error {
	result := r.db.WithContext(ctx).Create(claim)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrClaimExists
		}
		return fmt.Errorf("failed to create email claim: %w", result.Error)
	}
	return nil
}

func (r *ContactRepository) FindEmailClaim(ctx context.Context, owner model.OwnerRef, email string) (*model.ClaimedEmail, error) {
	var claim model.ClaimedEmail
	result := r.db.WithContext(ctx).Scopes(ownerScope(owner)).
		Where("fingerprint = ?", model.Fingerprint(email)).First(&claim)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to find email claim: %w", result.Error)
	}
	return &claim, nil
}

func (r *ContactRepository) FindEmailClaimByID(ctx context.Context, id uuid.UUID) (*model.ClaimedEmail, error) {
	var claim model.ClaimedEmail
	result := r.db.WithContext(ctx).First(&claim, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to find email claim: %w", result.Error)
	}
	return &claim, nil
}

func (r *ContactRepository) ListEmailClaims(ctx context.Context, owner model.OwnerRef) ([]*model.ClaimedEmail, error) {
	var claims []*model.ClaimedEmail
	result := r.db.WithContext(ctx).Scopes(ownerScope(owner)).Order("created_at").Find(&claims)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list email claims: %w", result.Error)
	}
	return claims, nil
}

func (r *ContactRepository) DeleteEmailClaim(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.ClaimedEmail{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete email claim: %w", err)
	}
	return nil
}

// PromoteEmailClaim deletes the claim and inserts the confirmed address
// in one transaction. A duplicate fingerprint means another owner
// confirmed the address first; the claim is still discarded and the
// caller gets a conflict.
func (r *ContactRepository) PromoteEmailClaim(ctx context.Context, claim *model.ClaimedEmail, confirmed *model.ConfirmedEmail) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ClaimedEmail{}, claim.ID).Error; err != nil {
			return err
		}
		return tx.Create(confirmed).Error
	})
	if err != nil {
		if isDuplicate(err) {
			// The insert lost the race; discard the stale claim outside
			// the rolled-back transaction.
			if delErr := r.db.WithContext(ctx).Delete(&model.ClaimedEmail{}, claim.ID).Error; delErr != nil {
				return fmt.Errorf("discarding conflicting claim: %w", delErr)
			}
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to promote email claim: %w", err)
	}
	return nil
}

func (r *ContactRepository) CreateConfirmedEmail(ctx context.Context, email *model.ConfirmedEmail) error {
	result := r.db.WithContext(ctx).Create(email)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("failed to create confirmed email: %w", result.Error)
	}
	return nil
}

func (r *ContactRepository) UpdateConfirmedEmail(ctx context.Context, email *model.ConfirmedEmail) error {
	if err := r.db.WithContext(ctx).Save(email).Error; err != nil {
		return fmt.Errorf("failed to update confirmed email: %w", err)
	}
	return nil
}

// DeleteConfirmedEmail removes the row and, when it carried the primary
// flag, promotes the owner's earliest remaining address in the same
// transaction. A crash can never leave confirmed addresses without a
// primary.
func (r *ContactRepository) DeleteConfirmedEmail(ctx context.Context, email *model.ConfirmedEmail) error {
	owner, err := email.Owner()
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ConfirmedEmail{}, email.ID).Error; err != nil {
			return err
		}
		if !email.Primary {
			return nil
		}
		var next model.ConfirmedEmail
		result := tx.Scopes(ownerScope(owner)).Order("created_at").First(&next)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}
		return tx.Model(&next).Update("primary", true).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete confirmed email: %w", err)
	}
	return nil
}

func (r *ContactRepository) FindConfirmedEmailByFingerprint(ctx context.Context, fingerprint string) (*model.ConfirmedEmail, error) {
	var email model.ConfirmedEmail
	result := r.db.WithContext(ctx).Where("fingerprint = ?", fingerprint).First(&email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmailNotFound
		}
		return nil, fmt.Errorf("failed to find confirmed email: %w", result.Error)
	}
	return &email, nil
}

// ListConfirmedEmails returns the owner's confirmed addresses in
// creation order; the first row is the promotion candidate when the
// primary is removed.
func (r *ContactRepository) ListConfirmedEmails(ctx context.Context, owner model.OwnerRef) ([]*model.ConfirmedEmail, error) {
	var emails []*model.ConfirmedEmail
	result := r.db.WithContext(ctx).Scopes(ownerScope(owner)).Order("created_at").Find(&emails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list confirmed emails: %w", result.Error)
	}
	return emails, nil
}

func (r *ContactRepository) FindConfirmedEmailsByDomain(ctx context.Context, emailDomain string) ([]*model.ConfirmedEmail, error) {
	var emails []*model.ConfirmedEmail
	result := r.db.WithContext(ctx).Where("domain = ?", emailDomain).Find(&emails)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find confirmed emails by domain: %w", result.Error)
	}
	return emails, nil
}

func (r *ContactRepository) CreatePhoneClaim(ctx context.Context, claim *model.ClaimedPhone) error {
	result := r.db.WithContext(ctx).Create(claim)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrClaimExists
		}
		return fmt.Errorf("failed to create phone claim: %w", result.Error)
	}
	return nil
}

func (r *ContactRepository) FindPhoneClaim(ctx context.Context, owner model.OwnerRef, phone string) (*model.ClaimedPhone, error) {
	var claim model.ClaimedPhone
	result := r.db.WithContext(ctx).Scopes(ownerScope(owner)).
		Where("phone = ?", phone).First(&claim)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to find phone claim: %w", result.Error)
	}
	return &claim, nil
}

func (r *ContactRepository) FindPhoneClaimByID(ctx context.Context, id uuid.UUID) (*model.ClaimedPhone, error) {
	var claim model.ClaimedPhone
	result := r.db.WithContext(ctx).First(&claim, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to find phone claim: %w", result.Error)
	}
	return &claim, nil
}

func (r *ContactRepository) DeletePhoneClaim(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.ClaimedPhone{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete phone claim: %w", err)
	}
	return nil
}

func (r *ContactRepository) PromotePhoneClaim(ctx context.Context, claim *model.ClaimedPhone, confirmed *model.ConfirmedPhone) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ClaimedPhone{}, claim.ID).Error; err != nil {
			return err
		}
		return tx.Create(confirmed).Error
	})
	if err != nil {
		if isDuplicate(err) {
			if delErr := r.db.WithContext(ctx).Delete(&model.ClaimedPhone{}, claim.ID).Error; delErr != nil {
				return fmt.Errorf("discarding conflicting claim: %w", delErr)
			}
			return domain.ErrPhoneTaken
		}
		return fmt.Errorf("failed to promote phone claim: %w", err)
	}
	return nil
}

func (r *ContactRepository) CreateConfirmedPhone(ctx context.Context, phone *model.ConfirmedPhone) error {
	result := r.db.WithContext(ctx).Create(phone)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrPhoneTaken
		}
		return fmt.Errorf("failed to create confirmed phone: %w", result.Error)
	}
	return nil
}

func (r *ContactRepository) UpdateConfirmedPhone(ctx context.Context, phone *model.ConfirmedPhone) error {
	if err := r.db.WithContext(ctx).Save(phone).Error; err != nil {
		return fmt.Errorf("failed to update confirmed phone: %w", err)
	}
	return nil
}

// DeleteConfirmedPhone mirrors DeleteConfirmedEmail: the delete and the
// primary promotion commit together.
func (r *ContactRepository) DeleteConfirmedPhone(ctx context.Context, phone *model.ConfirmedPhone) error {
	owner, err := phone.Owner()
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.ConfirmedPhone{}, phone.ID).Error; err != nil {
			return err
		}
		if !phone.Primary {
			return nil
		}
		var next model.ConfirmedPhone
		result := tx.Scopes(ownerScope(owner)).Order("created_at").First(&next)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}
		return tx.Model(&next).Update("primary", true).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete confirmed phone: %w", err)
	}
	return nil
}

func (r *ContactRepository) FindConfirmedPhoneByFingerprint(ctx context.Context, fingerprint string) (*model.ConfirmedPhone, error) {
	var phone model.ConfirmedPhone
	result := r.db.WithContext(ctx).Where("fingerprint = ?", fingerprint).First(&phone)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPhoneNotFound
		}
		return nil, fmt.Errorf("failed to find confirmed phone: %w", result.Error)
	}
	return &phone, nil
}

func (r *ContactRepository) ListConfirmedPhones(ctx context.Context, owner model.OwnerRef) ([]*model.ConfirmedPhone, error) {
	var phones []*model.ConfirmedPhone
	result := r.db.WithContext(ctx).Scopes(ownerScope(owner)).Order("created_at").Find(&phones)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list confirmed phones: %w", result.Error)
	}
	return phones, nil
}

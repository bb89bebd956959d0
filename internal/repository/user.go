// internal/repository/user.go
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/model"
)

type UserRepositoryIface interface {
	Begin(ctx context.Context) (Transaction, error) // For mocking support in tests

	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUserID(ctx context.Context, userid string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAllByIdentifiers(ctx context.Context, userids, usernames []string) ([]*model.User, error)
	UsernameExists(ctx context.Context, candidate string, excludeID uuid.UUID) (bool, error)

	FindOldID(ctx context.Context, userid string) (*model.OldUserID, error)
	Merge(ctx context.Context, oldUser, newUser *model.User) error

	CreateExternalID(ctx context.Context, ext *model.UserExternalID) error
	FindExternalID(ctx context.Context, service, externalID string) (*model.UserExternalID, error)

	CreateResetRequest(ctx context.Context, req *model.PasswordResetRequest) error
	FindResetRequest(ctx context.Context, userID uuid.UUID, code string) (*model.PasswordResetRequest, error)
	DeleteResetRequest(ctx context.Context, id uuid.UUID) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Begin starts a new database transaction and returns a Transaction instance.
func (r *UserRepository) Begin(ctx context.Context) (Transaction, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &gormTransaction{tx: tx}, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).First(&user, "id = ?", id)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByUserID(ctx context.Context, userid string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("user_id = ?", userid).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", result.Error)
	}
	return &user, nil
}

func (r *UserRepository) FindAllByIdentifiers(ctx context.Context, userids, usernames []string) ([]*model.User, error) {
	var users []*model.User
	q := r.db.WithContext(ctx)
	switch {
	case len(userids) > 0 && len(usernames) > 0:
		q = q.Where("user_id IN ? OR username IN ?", userids, usernames)
	case len(userids) > 0:
		q = q.Where("user_id IN ?", userids)
	case len(usernames) > 0:
		q = q.Where("username IN ?", usernames)
	default:
		return nil, nil
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

// UsernameExists reports whether the candidate collides with any other
// user's username or permanent userid. Organization names are checked
// separately; both namespaces must be consulted before acceptance.
func (r *UserRepository) UsernameExists(ctx context.Context, candidate string, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("(username = ? OR user_id = ?) AND id <> ?", candidate, candidate, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check username: %w", result.Error)
	}
	return count > 0, nil
}

func (r *UserRepository) FindOldID(ctx context.Context, userid string) (*model.OldUserID, error) {
	var oldid model.OldUserID
	result := r.db.WithContext(ctx).Where("user_id = ?", userid).First(&oldid)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find old userid: %w", result.Error)
	}
	return &oldid, nil
}

// Merge folds oldUser into newUser as a single transaction: team
// memberships are unioned onto newUser and cleared from oldUser, the old
// account is flagged merged, and an immutable ledger row maps the
// retired userid to the survivor. A partial merge is never visible.
func (r *UserRepository) Merge(ctx context.Context, oldUser, newUser *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var memberships []model.TeamMembership
		if err := tx.Where("user_id = ?", oldUser.ID).Find(&memberships).Error; err != nil {
			return fmt.Errorf("listing memberships: %w", err)
		}
		for _, m := range memberships {
			row := model.TeamMembership{TeamID: m.TeamID, UserID: newUser.ID, CreatedAt: time.Now().UTC()}
			if err := tx.Where("team_id = ? AND user_id = ?", m.TeamID, newUser.ID).
				FirstOrCreate(&row).Error; err != nil {
				return fmt.Errorf("copying membership: %w", err)
			}
		}
		if err := tx.Where("user_id = ?", oldUser.ID).Delete(&model.TeamMembership{}).Error; err != nil {
			return fmt.Errorf("clearing memberships: %w", err)
		}

		oldUser.Status = model.StatusMerged
		if err := tx.Model(&model.User{}).Where("id = ?", oldUser.ID).
			Update("status", model.StatusMerged).Error; err != nil {
			return fmt.Errorf("flagging merged user: %w", err)
		}

		ledger := model.OldUserID{UserID: oldUser.UserID, NewUserID: newUser.ID}
		if err := tx.Create(&ledger).Error; err != nil {
			if isDuplicate(err) {
				// Re-applying a merge is a no-op.
				return nil
			}
			return fmt.Errorf("recording old userid: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) CreateExternalID(ctx context.Context, ext *model.UserExternalID) error {
	result := r.db.WithContext(ctx).Create(ext)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrClaimExists
		}
		return fmt.Errorf("failed to create external id: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) FindExternalID(ctx context.Context, service, externalID string) (*model.UserExternalID, error) {
	var ext model.UserExternalID
	result := r.db.WithContext(ctx).
		Where("service = ? AND external_id = ?", service, externalID).First(&ext)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find external id: %w", result.Error)
	}
	return &ext, nil
}

func (r *UserRepository) CreateResetRequest(ctx context.Context, req *model.PasswordResetRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("failed to create reset request: %w", err)
	}
	return nil
}

func (r *UserRepository) FindResetRequest(ctx context.Context, userID uuid.UUID, code string) (*model.PasswordResetRequest, error) {
	var req model.PasswordResetRequest
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND reset_code = ?", userID, code).First(&req)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reset request: %w", result.Error)
	}
	return &req, nil
}

func (r *UserRepository) DeleteResetRequest(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.PasswordResetRequest{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete reset request: %w", err)
	}
	return nil
}

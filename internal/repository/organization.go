// internal/repository/organization.go
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

type OrganizationRepositoryIface interface {
	CreateWithTeams(ctx context.Context, org *model.Organization, owners, members *model.Team) error
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindByUserID(ctx context.Context, userid string) (*model.Organization, error)
	FindByName(ctx context.Context, name string) (*model.Organization, error)
	NameExists(ctx context.Context, candidate string, excludeID uuid.UUID) (bool, error)

	CreateTeam(ctx context.Context, team *model.Team) error
	UpdateTeam(ctx context.Context, team *model.Team) error
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	FindTeamByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	FindTeamByUserID(ctx context.Context, userid string) (*model.Team, error)
	FindTeamsByDomain(ctx context.Context, emailDomain string) ([]*model.Team, error)
	ListTeams(ctx context.Context, orgID uuid.UUID) ([]*model.Team, error)

	AddTeamMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	RemoveTeamMember(ctx context.Context, teamID, userID uuid.UUID) error
	IsTeamMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]*model.User, error)
	ListTeamsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Team, error)
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// CreateWithTeams inserts the organization and its two built-in teams in
// one transaction, then points the org at them. The owners/members
// columns are nullable only to break this circular insert.
func (r *OrganizationRepository) CreateWithTeams(ctx context.Context, org *model.Organization, owners, members *model.Team) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return err
		}
		owners.OrgID = org.ID
		members.OrgID = org.ID
		if err := tx.Create(owners).Error; err != nil {
			return err
		}
		if err := tx.Create(members).Error; err != nil {
			return err
		}
		org.OwnersID = &owners.ID
		org.MembersID = &members.ID
		return tx.Model(org).Updates(map[string]interface{}{
			"owners_id":  owners.ID,
			"members_id": members.ID,
		}).Error
	})
	if err != nil {
		if isDuplicate(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	result := r.db.WithContext(ctx).Save(org)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to update organization: %w", result.Error)
	}
	return nil
}

// Delete removes the organization. Teams and their membership rows go
// with it via the FK cascade.
func (r *OrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Organization{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	result := r.db.WithContext(ctx).First(&org, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", result.Error)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByUserID(ctx context.Context, userid string) (*model.Organization, error) {
	var org model.Organization
	result := r.db.WithContext(ctx).Where("user_id = ?", userid).First(&org)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", result.Error)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByName(ctx context.Context, name string) (*model.Organization, error) {
	var org model.Organization
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&org)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", result.Error)
	}
	return &org, nil
}

func (r *OrganizationRepository) NameExists(ctx context.Context, candidate string, excludeID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Organization{}).
		Where("(name = ? OR user_id = ?) AND id <> ?", candidate, candidate, excludeID).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check organization name: %w", result.Error)
	}
	return count > 0, nil
}

func (r *OrganizationRepository) CreateTeam(ctx context.Context, team *model.Team) error {
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) UpdateTeam(ctx context.Context, team *model.Team) error {
	if err := r.db.WithContext(ctx).Save(team).Error; err != nil {
		return fmt.Errorf("failed to update team: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&model.Team{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindTeamByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	result := r.db.WithContext(ctx).First(&team, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", result.Error)
	}
	return &team, nil
}

func (r *OrganizationRepository) FindTeamByUserID(ctx context.Context, userid string) (*model.Team, error) {
	var team model.Team
	result := r.db.WithContext(ctx).Where("user_id = ?", userid).First(&team)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", result.Error)
	}
	return &team, nil
}

func (r *OrganizationRepository) FindTeamsByDomain(ctx context.Context, emailDomain string) ([]*model.Team, error) {
	var teams []*model.Team
	result := r.db.WithContext(ctx).Where("domain = ?", emailDomain).Find(&teams)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find teams by domain: %w", result.Error)
	}
	return teams, nil
}

func (r *OrganizationRepository) ListTeams(ctx context.Context, orgID uuid.UUID) ([]*model.Team, error) {
	var teams []*model.Team
	result := r.db.WithContext(ctx).Where("org_id = ?", orgID).Order("title").Find(&teams)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list teams: %w", result.Error)
	}
	return teams, nil
}

// AddTeamMember inserts the membership row if absent. Returns true when
// a row was inserted, false when the user was already a member.
func (r *OrganizationRepository) AddTeamMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	membership := model.TeamMembership{TeamID: teamID, UserID: userID}
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		FirstOrCreate(&membership)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("failed to add team member: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *OrganizationRepository) RemoveTeamMember(ctx context.Context, teamID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMembership{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove team member: %w", result.Error)
	}
	return nil
}

func (r *OrganizationRepository) IsTeamMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check team membership: %w", result.Error)
	}
	return count > 0, nil
}

func (r *OrganizationRepository) ListTeamMembers(ctx context.Context, teamID uuid.UUID) ([]*model.User, error) {
	var users []*model.User
	result := r.db.WithContext(ctx).
		Joins("JOIN team_memberships ON users.id = team_memberships.user_id").
		Where("team_memberships.team_id = ?", teamID).
		Find(&users)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list team members: %w", result.Error)
	}
	return users, nil
}

func (r *OrganizationRepository) ListTeamsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Team, error) {
	var teams []*model.Team
	result := r.db.WithContext(ctx).
		Joins("JOIN team_memberships ON teams.id = team_memberships.team_id").
		Where("team_memberships.user_id = ?", userID).
		Find(&teams)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list teams for user: %w", result.Error)
	}
	return teams, nil
}

// internal/service/organization.go
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/repository"
	"github.com/dangerclosesec/passport/internal/signals"
)

// Permission names derivable from organization ownership.
const (
	PermView      = "view"
	PermEdit      = "edit"
	PermDelete    = "delete"
	PermViewTeams = "view-teams"
	PermNewTeam   = "new-team"
)

// PermissionSet is a set of named permissions.
type PermissionSet map[string]struct{}

func NewPermissionSet(perms ...string) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (ps PermissionSet) Add(perm string)      { ps[perm] = struct{}{} }
func (ps PermissionSet) Remove(perm string)   { delete(ps, perm) }
func (ps PermissionSet) Has(perm string) bool { _, ok := ps[perm]; return ok }

// List returns the permissions in sorted order for stable responses.
func (ps PermissionSet) List() []string {
	out := make([]string, 0, len(ps))
	for p := range ps {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// OrganizationService owns organizations, their built-in teams and
// domain-based auto-membership.
type OrganizationService struct {
	repo        repository.OrganizationRepositoryIface
	userRepo    repository.UserRepositoryIface
	contactRepo repository.ContactRepositoryIface
	bus         signals.Bus
	validate    *validator.Validate
}

func NewOrganizationService(
	repo repository.OrganizationRepositoryIface,
	userRepo repository.UserRepositoryIface,
	contactRepo repository.ContactRepositoryIface,
	bus signals.Bus,
) *OrganizationService {
	return &OrganizationService{
		repo:        repo,
		userRepo:    userRepo,
		contactRepo: contactRepo,
		bus:         bus,
		validate:    validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name    string `json:"name" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Creator *model.User
}

// CreateOrganization constructs an organization with its two built-in
// teams and puts the creator on the owners team. Names live in the same
// namespace as usernames.
func (s *OrganizationService) CreateOrganization(ctx context.Context, input CreateOrganizationInput) (*model.Organization, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.Creator == nil {
		return nil, fmt.Errorf("%w: missing creator", domain.ErrInvalidInput)
	}
	if err := s.checkName(ctx, input.Name, uuid.Nil); err != nil {
		return nil, err
	}

	org := &model.Organization{Name: &input.Name, Title: input.Title}
	owners := &model.Team{Title: "Owners"}
	members := &model.Team{Title: "Members"}

	if err := s.repo.CreateWithTeams(ctx, org, owners, members); err != nil {
		return nil, err
	}
	if _, err := s.repo.AddTeamMember(ctx, owners.ID, input.Creator.ID); err != nil {
		return nil, err
	}

	org.Owners = owners
	org.Members = members

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.OrgChanged,
		Subject: org.UserID,
		Changes: []string{"new"},
	})

	return org, nil
}

// SetOrganizationName renames the organization, subject to the shared
// namespace rule. The result is explicit rather than a silent no-op.
func (s *OrganizationService) SetOrganizationName(ctx context.Context, org *model.Organization, candidate string) error {
	if err := s.checkName(ctx, candidate, org.ID); err != nil {
		return err
	}
	org.Name = &candidate
	if err := s.repo.Update(ctx, org); err != nil {
		return err
	}
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.OrgChanged,
		Subject: org.UserID,
		Changes: []string{"edit"},
	})
	return nil
}

// checkName mirrors IdentityService.checkUsername from the organization
// side: format rule, then both namespaces.
func (s *OrganizationService) checkName(ctx context.Context, candidate string, excludeID uuid.UUID) error {
	if !model.ValidUsername(candidate) {
		return domain.ErrInvalidUsername
	}
	taken, err := s.repo.NameExists(ctx, candidate, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}
	taken, err = s.userRepo.UsernameExists(ctx, candidate, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}
	return nil
}

// DeleteOrganization removes the organization; its teams and their
// membership rows cascade with it.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, org *model.Organization) error {
	if err := s.repo.Delete(ctx, org.ID); err != nil {
		return err
	}
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.OrgChanged,
		Subject: org.UserID,
		Changes: []string{"delete"},
	})
	return nil
}

type CreateTeamInput struct {
	Org    *model.Organization
	Title  string `json:"title" validate:"required"`
	Domain string `json:"domain"`
}

func (s *OrganizationService) CreateTeam(ctx context.Context, input CreateTeamInput) (*model.Team, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	team := &model.Team{Title: input.Title, OrgID: input.Org.ID}
	if err := s.repo.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	if input.Domain != "" {
		if err := s.SetTeamDomain(ctx, team, input.Domain); err != nil {
			return nil, err
		}
	}
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.TeamChanged,
		Subject: team.UserID,
		Changes: []string{"new"},
	})
	return team, nil
}

// DeleteTeam removes a team. The built-in owners and members teams are
// not deletable; they go only with their organization.
func (s *OrganizationService) DeleteTeam(ctx context.Context, team *model.Team) error {
	org, err := s.repo.FindByID(ctx, team.OrgID)
	if err != nil {
		return err
	}
	if (org.OwnersID != nil && *org.OwnersID == team.ID) ||
		(org.MembersID != nil && *org.MembersID == team.ID) {
		return fmt.Errorf("%w: built-in team cannot be deleted", domain.ErrInvalidInput)
	}
	if err := s.repo.DeleteTeam(ctx, team.ID); err != nil {
		return err
	}
	s.bus.Publish(ctx, signals.Event{
		Name:    signals.TeamChanged,
		Subject: team.UserID,
		Changes: []string{"delete"},
	})
	return nil
}

// SetTeamDomain changes the team's auto-join domain. On change, every
// user holding a confirmed address on the new domain is added to the
// team; repeated application is a no-op.
func (s *OrganizationService) SetTeamDomain(ctx context.Context, team *model.Team, emailDomain string) error {
	current := ""
	if team.Domain != nil {
		current = *team.Domain
	}
	if emailDomain == current {
		return nil
	}

	if emailDomain != "" {
		emails, err := s.contactRepo.FindConfirmedEmailsByDomain(ctx, emailDomain)
		if err != nil {
			return err
		}
		for _, email := range emails {
			if email.OwnerUserID == nil {
				continue // org- and team-held addresses don't join anyone
			}
			added, err := s.repo.AddTeamMember(ctx, team.ID, *email.OwnerUserID)
			if err != nil {
				return err
			}
			if added {
				user, err := s.userRepo.FindByID(ctx, *email.OwnerUserID)
				if err != nil {
					return err
				}
				s.bus.Publish(ctx, signals.Event{
					Name:    signals.MembershipChanged,
					Subject: user.UserID,
					Changes: []string{"team-membership"},
				})
			}
		}
	}

	if emailDomain == "" {
		team.Domain = nil
	} else {
		team.Domain = &emailDomain
	}
	if err := s.repo.UpdateTeam(ctx, team); err != nil {
		return err
	}

	s.bus.Publish(ctx, signals.Event{
		Name:    signals.TeamChanged,
		Subject: team.UserID,
		Changes: []string{"membership"},
	})
	return nil
}

// AddTeamMember adds a user to a team, idempotently.
func (s *OrganizationService) AddTeamMember(ctx context.Context, team *model.Team, user *model.User) error {
	added, err := s.repo.AddTeamMember(ctx, team.ID, user.ID)
	if err != nil {
		return err
	}
	if added {
		s.bus.Publish(ctx, signals.Event{
			Name:    signals.MembershipChanged,
			Subject: user.UserID,
			Changes: []string{"team-membership"},
		})
	}
	return nil
}

// GetByID fetches an organization by row id.
func (s *OrganizationService) GetByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByUserID fetches an organization by its permanent userid.
func (s *OrganizationService) GetByUserID(ctx context.Context, userid string) (*model.Organization, error) {
	return s.repo.FindByUserID(ctx, userid)
}

// GetTeamByUserID fetches a team by its permanent userid.
func (s *OrganizationService) GetTeamByUserID(ctx context.Context, userid string) (*model.Team, error) {
	return s.repo.FindTeamByUserID(ctx, userid)
}

// IsOwner reports whether the user sits on the organization's owners team.
func (s *OrganizationService) IsOwner(ctx context.Context, org *model.Organization, user *model.User) (bool, error) {
	if org.OwnersID == nil {
		return false, nil
	}
	return s.repo.IsTeamMember(ctx, *org.OwnersID, user.ID)
}

// OrgPermissions derives an organization's permission set for a user.
// Owners get the full set; everyone else loses view/edit/delete even
// when an inherited rule granted them speculatively.
func (s *OrganizationService) OrgPermissions(ctx context.Context, org *model.Organization, user *model.User, inherited PermissionSet) (PermissionSet, error) {
	perms := NewPermissionSet()
	for p := range inherited {
		perms.Add(p)
	}
	owner := false
	if user != nil {
		var err error
		owner, err = s.IsOwner(ctx, org, user)
		if err != nil {
			return nil, err
		}
	}
	if owner {
		perms.Add(PermView)
		perms.Add(PermEdit)
		perms.Add(PermDelete)
		perms.Add(PermViewTeams)
		perms.Add(PermNewTeam)
	} else {
		perms.Remove(PermView)
		perms.Remove(PermEdit)
		perms.Remove(PermDelete)
	}
	return perms, nil
}

// TeamPermissions grants edit/delete on a team to members of its
// organization's owners team only.
func (s *OrganizationService) TeamPermissions(ctx context.Context, team *model.Team, user *model.User, inherited PermissionSet) (PermissionSet, error) {
	perms := NewPermissionSet()
	for p := range inherited {
		perms.Add(p)
	}
	if user == nil {
		return perms, nil
	}
	org, err := s.repo.FindByID(ctx, team.OrgID)
	if err != nil {
		return nil, err
	}
	owner, err := s.IsOwner(ctx, org, user)
	if err != nil {
		return nil, err
	}
	if owner {
		perms.Add(PermEdit)
		perms.Add(PermDelete)
	}
	return perms, nil
}

// OrganizationsFor returns the organizations whose teams include the
// user, deduplicated. Derived from membership rows, never cached.
func (s *OrganizationService) OrganizationsFor(ctx context.Context, user *model.User) ([]*model.Organization, error) {
	teams, err := s.repo.ListTeamsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool)
	var orgs []*model.Organization
	for _, team := range teams {
		if seen[team.OrgID] {
			continue
		}
		seen[team.OrgID] = true
		org, err := s.repo.FindByID(ctx, team.OrgID)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, nil
}

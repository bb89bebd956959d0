package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/mocks"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
	"github.com/dangerclosesec/passport/internal/signals"
)

func newOrganizationService(
	orgRepo *mocks.MockOrganizationRepositoryIface,
	userRepo *mocks.MockUserRepositoryIface,
	contactRepo *mocks.MockContactRepositoryIface,
) *service.OrganizationService {
	return service.NewOrganizationService(orgRepo, userRepo, contactRepo, signals.NopBus{})
}

func orgWithTeams() (*model.Organization, *model.Team, *model.Team) {
	owners := &model.Team{ID: uuid.New(), UserID: "ownersbuid", Title: "Owners"}
	members := &model.Team{ID: uuid.New(), UserID: "membersbuid", Title: "Members"}
	name := "acme"
	org := &model.Organization{
		ID:        uuid.New(),
		UserID:    "orgbuid",
		Name:      &name,
		Title:     "Acme Inc",
		OwnersID:  &owners.ID,
		MembersID: &members.ID,
	}
	owners.OrgID = org.ID
	members.OrgID = org.ID
	return org, owners, members
}

func TestCreateOrganization(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := activeUser("Alice Example")

	t.Run("builds the built-in teams and seats the creator", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)

		orgRepo.EXPECT().
			NameExists(gomock.Any(), "acme", uuid.Nil).
			Return(false, nil)
		userRepo.EXPECT().
			UsernameExists(gomock.Any(), "acme", uuid.Nil).
			Return(false, nil)
		var ownersID uuid.UUID
		orgRepo.EXPECT().
			CreateWithTeams(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, org *model.Organization, owners, members *model.Team) error {
				org.ID = uuid.New()
				owners.ID = uuid.New()
				members.ID = uuid.New()
				ownersID = owners.ID
				return nil
			})
		orgRepo.EXPECT().
			AddTeamMember(gomock.Any(), gomock.Any(), creator.ID).
			DoAndReturn(func(_ context.Context, teamID, _ uuid.UUID) (bool, error) {
				assert.Equal(t, ownersID, teamID)
				return true, nil
			})

		svc := newOrganizationService(orgRepo, userRepo, contactRepo)
		org, err := svc.CreateOrganization(context.Background(), service.CreateOrganizationInput{
			Name:    "acme",
			Title:   "Acme Inc",
			Creator: creator,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Owners", org.Owners.Title)
		assert.Equal(t, "Members", org.Members.Title)
	})

	t.Run("name shares the username namespace", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)

		orgRepo.EXPECT().
			NameExists(gomock.Any(), "alice", uuid.Nil).
			Return(false, nil)
		userRepo.EXPECT().
			UsernameExists(gomock.Any(), "alice", uuid.Nil).
			Return(true, nil)

		svc := newOrganizationService(orgRepo, userRepo, contactRepo)
		_, err := svc.CreateOrganization(context.Background(), service.CreateOrganizationInput{
			Name:    "alice",
			Title:   "Alice's Org",
			Creator: creator,
		})
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("rejects malformed names", func(t *testing.T) {
		svc := newOrganizationService(
			mocks.NewMockOrganizationRepositoryIface(ctrl),
			mocks.NewMockUserRepositoryIface(ctrl),
			mocks.NewMockContactRepositoryIface(ctrl),
		)
		_, err := svc.CreateOrganization(context.Background(), service.CreateOrganizationInput{
			Name:    "Acme Inc",
			Title:   "Acme Inc",
			Creator: creator,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidUsername)
	})
}

func TestDeleteTeam(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	org, owners, _ := orgWithTeams()

	t.Run("built-in teams are not deletable", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil)

		svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
		err := svc.DeleteTeam(context.Background(), owners)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("regular teams delete", func(t *testing.T) {
		team := &model.Team{ID: uuid.New(), UserID: "teambuid", Title: "Staff", OrgID: org.ID}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil)
		orgRepo.EXPECT().DeleteTeam(gomock.Any(), team.ID).Return(nil)

		svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
		assert.NoError(t, svc.DeleteTeam(context.Background(), team))
	})
}

func TestSetTeamDomain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	org, _, _ := orgWithTeams()

	t.Run("scans confirmed addresses on the new domain", func(t *testing.T) {
		team := &model.Team{ID: uuid.New(), UserID: "teambuid", Title: "Staff", OrgID: org.ID}
		alice := activeUser("Alice Example")
		orgAddrOwner := uuid.New()

		aliceEmail := &model.ConfirmedEmail{Email: "alice@co.example", Domain: "co.example", OwnerColumns: model.OwnerColumns{OwnerUserID: &alice.ID}}
		orgEmail := &model.ConfirmedEmail{Email: "billing@co.example", Domain: "co.example", OwnerColumns: model.OwnerColumns{OwnerOrgID: &orgAddrOwner}}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		userRepo := mocks.NewMockUserRepositoryIface(ctrl)
		contactRepo := mocks.NewMockContactRepositoryIface(ctrl)

		contactRepo.EXPECT().
			FindConfirmedEmailsByDomain(gomock.Any(), "co.example").
			Return([]*model.ConfirmedEmail{aliceEmail, orgEmail}, nil)
		orgRepo.EXPECT().
			AddTeamMember(gomock.Any(), team.ID, alice.ID).
			Return(true, nil)
		userRepo.EXPECT().
			FindByID(gomock.Any(), alice.ID).
			Return(alice, nil)
		orgRepo.EXPECT().
			UpdateTeam(gomock.Any(), team).
			Return(nil)

		svc := newOrganizationService(orgRepo, userRepo, contactRepo)
		err := svc.SetTeamDomain(context.Background(), team, "co.example")

		assert.NoError(t, err)
		if assert.NotNil(t, team.Domain) {
			assert.Equal(t, "co.example", *team.Domain)
		}
	})

	t.Run("setting the same domain twice is a no-op", func(t *testing.T) {
		current := "co.example"
		team := &model.Team{ID: uuid.New(), Title: "Staff", OrgID: org.ID, Domain: &current}

		svc := newOrganizationService(
			mocks.NewMockOrganizationRepositoryIface(ctrl),
			mocks.NewMockUserRepositoryIface(ctrl),
			mocks.NewMockContactRepositoryIface(ctrl),
		)
		assert.NoError(t, svc.SetTeamDomain(context.Background(), team, "co.example"))
	})

	t.Run("clearing the domain skips the scan", func(t *testing.T) {
		current := "co.example"
		team := &model.Team{ID: uuid.New(), UserID: "teambuid", Title: "Staff", OrgID: org.ID, Domain: &current}

		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().UpdateTeam(gomock.Any(), team).Return(nil)

		svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
		err := svc.SetTeamDomain(context.Background(), team, "")

		assert.NoError(t, err)
		assert.Nil(t, team.Domain)
	})
}

func TestOrgPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	org, owners, _ := orgWithTeams()
	user := activeUser("Alice Example")

	t.Run("owners get the full set", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().
			IsTeamMember(gomock.Any(), owners.ID, user.ID).
			Return(true, nil)

		svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
		perms, err := svc.OrgPermissions(context.Background(), org, user, nil)

		assert.NoError(t, err)
		assert.Equal(t,
			[]string{service.PermDelete, service.PermEdit, service.PermNewTeam, service.PermView, service.PermViewTeams},
			perms.List())
	})

	t.Run("non-owners lose inherited view and edit", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().
			IsTeamMember(gomock.Any(), owners.ID, user.ID).
			Return(false, nil)

		inherited := service.NewPermissionSet(service.PermView, service.PermEdit, service.PermViewTeams)

		svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
		perms, err := svc.OrgPermissions(context.Background(), org, user, inherited)

		assert.NoError(t, err)
		assert.Equal(t, []string{service.PermViewTeams}, perms.List())
	})

	t.Run("anonymous callers keep only inherited grants", func(t *testing.T) {
		svc := newOrganizationService(
			mocks.NewMockOrganizationRepositoryIface(ctrl),
			mocks.NewMockUserRepositoryIface(ctrl),
			mocks.NewMockContactRepositoryIface(ctrl),
		)
		perms, err := svc.OrgPermissions(context.Background(), org, nil, service.NewPermissionSet(service.PermNewTeam))
		assert.NoError(t, err)
		assert.Equal(t, []string{service.PermNewTeam}, perms.List())
	})
}

func TestTeamPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	org, owners, _ := orgWithTeams()
	team := &model.Team{ID: uuid.New(), Title: "Staff", OrgID: org.ID}
	user := activeUser("Alice Example")

	t.Run("org owners may edit and delete", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil)
		orgRepo.EXPECT().IsTeamMember(gomock.Any(), owners.ID, user.ID).Return(true, nil)

		svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
		perms, err := svc.TeamPermissions(context.Background(), team, user, nil)

		assert.NoError(t, err)
		assert.True(t, perms.Has(service.PermEdit))
		assert.True(t, perms.Has(service.PermDelete))
	})

	t.Run("members get nothing beyond inherited", func(t *testing.T) {
		orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
		orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil)
		orgRepo.EXPECT().IsTeamMember(gomock.Any(), owners.ID, user.ID).Return(false, nil)

		svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
		perms, err := svc.TeamPermissions(context.Background(), team, user, nil)

		assert.NoError(t, err)
		assert.Empty(t, perms.List())
	})
}

func TestOrganizationsFor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	org, owners, members := orgWithTeams()
	user := activeUser("Alice Example")

	orgRepo := mocks.NewMockOrganizationRepositoryIface(ctrl)
	orgRepo.EXPECT().
		ListTeamsForUser(gomock.Any(), user.ID).
		Return([]*model.Team{owners, members}, nil)
	// Two team memberships in the same organization yield one result.
	orgRepo.EXPECT().FindByID(gomock.Any(), org.ID).Return(org, nil).Times(1)

	svc := newOrganizationService(orgRepo, mocks.NewMockUserRepositoryIface(ctrl), mocks.NewMockContactRepositoryIface(ctrl))
	orgs, err := svc.OrganizationsFor(context.Background(), user)

	assert.NoError(t, err)
	if assert.Len(t, orgs, 1) {
		assert.Equal(t, org.ID, orgs[0].ID)
	}
}

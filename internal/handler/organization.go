// internal/handler/organization.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dangerclosesec/passport/internal/middleware"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
)

type OrganizationHandler struct {
	orgs     *service.OrganizationService
	identity *service.IdentityService
}

func NewOrganizationHandler(orgs *service.OrganizationService, identity *service.IdentityService) *OrganizationHandler {
	return &OrganizationHandler{orgs: orgs, identity: identity}
}

type OrganizationResponse struct {
	BaseResponse
	Organization *model.Organization `json:"organization"`
}

type TeamResponse struct {
	BaseResponse
	Team *model.Team `json:"team"`
}

// loadOrg resolves the route's org and checks the caller owns it.
func (h *OrganizationHandler) loadOrg(w http.ResponseWriter, r *http.Request) (*model.Organization, *model.User, bool) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return nil, nil, false
	}
	org, err := h.orgs.GetByUserID(r.Context(), chi.URLParam(r, "userid"))
	if err != nil {
		respondWithServiceError(r, w, err)
		return nil, nil, false
	}
	owner, err := h.orgs.IsOwner(r.Context(), org, user)
	if err != nil {
		respondWithServiceError(r, w, err)
		return nil, nil, false
	}
	if !owner {
		respondWithError(w, http.StatusForbidden, "Not an organization owner")
		return nil, nil, false
	}
	return org, user, true
}

// loadTeam resolves the route's team and checks the caller owns the
// parent org.
func (h *OrganizationHandler) loadTeam(w http.ResponseWriter, r *http.Request) (*model.Team, bool) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return nil, false
	}
	team, err := h.orgs.GetTeamByUserID(r.Context(), chi.URLParam(r, "userid"))
	if err != nil {
		respondWithServiceError(r, w, err)
		return nil, false
	}
	org, err := h.orgs.GetByID(r.Context(), team.OrgID)
	if err != nil {
		respondWithServiceError(r, w, err)
		return nil, false
	}
	owner, err := h.orgs.IsOwner(r.Context(), org, user)
	if err != nil {
		respondWithServiceError(r, w, err)
		return nil, false
	}
	if !owner {
		respondWithError(w, http.StatusForbidden, "Not an organization owner")
		return nil, false
	}
	return team, true
}

// CreateHandler creates an organization owned by the caller.
func (h *OrganizationHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}

	var input service.CreateOrganizationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()
	input.Creator = user

	org, err := h.orgs.CreateOrganization(r.Context(), input)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, OrganizationResponse{BaseResponse: BaseResponse{Ok: true}, Organization: org})
}

type ListOrganizationsResponse struct {
	BaseResponse
	Organizations []*model.Organization `json:"organizations"`
}

// ListHandler returns organizations the caller belongs to.
func (h *OrganizationHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}
	orgs, err := h.orgs.OrganizationsFor(r.Context(), user)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	if orgs == nil {
		orgs = []*model.Organization{}
	}
	respondWithJSON(w, http.StatusOK, ListOrganizationsResponse{BaseResponse: BaseResponse{Ok: true}, Organizations: orgs})
}

type SetNameRequest struct {
	Name string `json:"name"`
}

// SetNameHandler renames the organization. Collisions across the shared
// namespace come back as 409.
func (h *OrganizationHandler) SetNameHandler(w http.ResponseWriter, r *http.Request) {
	org, _, ok := h.loadOrg(w, r)
	if !ok {
		return
	}

	var input SetNameRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.orgs.SetOrganizationName(r.Context(), org, input.Name); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, OrganizationResponse{BaseResponse: BaseResponse{Ok: true}, Organization: org})
}

// DeleteHandler removes the organization and everything under it.
func (h *OrganizationHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	org, _, ok := h.loadOrg(w, r)
	if !ok {
		return
	}
	if err := h.orgs.DeleteOrganization(r.Context(), org); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

// CreateTeamHandler adds a team to the organization, optionally with an
// email domain for auto-membership.
func (h *OrganizationHandler) CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	org, _, ok := h.loadOrg(w, r)
	if !ok {
		return
	}

	var input service.CreateTeamInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()
	input.Org = org

	team, err := h.orgs.CreateTeam(r.Context(), input)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, TeamResponse{BaseResponse: BaseResponse{Ok: true}, Team: team})
}

// DeleteTeamHandler removes a team. The built-in owners and members
// teams are not deletable.
func (h *OrganizationHandler) DeleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	team, ok := h.loadTeam(w, r)
	if !ok {
		return
	}
	if err := h.orgs.DeleteTeam(r.Context(), team); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type SetTeamDomainRequest struct {
	Domain string `json:"domain"`
}

// SetTeamDomainHandler assigns the team's email domain and runs the
// retroactive membership scan.
func (h *OrganizationHandler) SetTeamDomainHandler(w http.ResponseWriter, r *http.Request) {
	team, ok := h.loadTeam(w, r)
	if !ok {
		return
	}

	var input SetTeamDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.orgs.SetTeamDomain(r.Context(), team, input.Domain); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, TeamResponse{BaseResponse: BaseResponse{Ok: true}, Team: team})
}

type AddTeamMemberRequest struct {
	UserID string `json:"userid"`
}

// AddTeamMemberHandler puts a user on the team.
func (h *OrganizationHandler) AddTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	team, ok := h.loadTeam(w, r)
	if !ok {
		return
	}

	var input AddTeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	member, err := h.identity.GetUserByUserID(r.Context(), input.UserID)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	if err := h.orgs.AddTeamMember(r.Context(), team, member); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type PermissionsResponse struct {
	BaseResponse
	Permissions []string `json:"permissions"`
}

// PermissionsHandler reports the caller's derived permissions on the
// organization.
func (h *OrganizationHandler) PermissionsHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}
	org, err := h.orgs.GetByUserID(r.Context(), chi.URLParam(r, "userid"))
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	perms, err := h.orgs.OrgPermissions(r.Context(), org, user, nil)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, PermissionsResponse{BaseResponse: BaseResponse{Ok: true}, Permissions: perms.List()})
}

// internal/handler/user.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dangerclosesec/passport/internal/middleware"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/search"
	"github.com/dangerclosesec/passport/internal/service"
)

type UserHandler struct {
	identity *service.IdentityService
	search   *search.Service
}

func NewUserHandler(identity *service.IdentityService, searchSvc *search.Service) *UserHandler {
	return &UserHandler{identity: identity, search: searchSvc}
}

type UserResponse struct {
	BaseResponse
	User *model.User `json:"user"`
}

// GetUserHandler looks a user up by permanent userid. Retired userids
// resolve to the surviving account.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.GetUserByUserID(r.Context(), chi.URLParam(r, "userid"))
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, UserResponse{BaseResponse: BaseResponse{Ok: true}, User: user})
}

// GetUserByUsernameHandler looks a user up by username.
func (h *UserHandler) GetUserByUsernameHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, UserResponse{BaseResponse: BaseResponse{Ok: true}, User: user})
}

// MeHandler returns the authenticated user.
func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}
	respondWithJSON(w, http.StatusOK, UserResponse{BaseResponse: BaseResponse{Ok: true}, User: user})
}

type SetUsernameRequest struct {
	Username string `json:"username"`
}

// SetUsernameHandler assigns or clears the current user's username.
// Collisions with other usernames, userids, and organization names come
// back as 409.
func (h *UserHandler) SetUsernameHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}

	var input SetUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.identity.SetUsername(r.Context(), user, input.Username); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, UserResponse{BaseResponse: BaseResponse{Ok: true}, User: user})
}

type ListUsersResponse struct {
	BaseResponse
	Users []*model.User `json:"users"`
}

// ListUsersHandler resolves a batch of userids and usernames to their
// active accounts, merge-following and deduplicated. Identifiers are
// comma-separated query params.
func (h *UserHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	userids := splitParam(r.URL.Query().Get("userids"))
	usernames := splitParam(r.URL.Query().Get("usernames"))

	users, err := h.identity.ListUsers(r.Context(), userids, usernames)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	respondWithJSON(w, http.StatusOK, ListUsersResponse{BaseResponse: BaseResponse{Ok: true}, Users: users})
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

type LinkExternalRequest struct {
	Service    string `json:"service"`
	ExternalID string `json:"external_id"`
	Username   string `json:"username"`
}

type LinkExternalResponse struct {
	BaseResponse
	External *model.UserExternalID `json:"external"`
}

// LinkExternalHandler records an external login-provider account for
// the current user. Relinking the same (service, external id) pair is a
// conflict.
func (h *UserHandler) LinkExternalHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}

	var input LinkExternalRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if input.Service == "" || input.ExternalID == "" {
		respondWithError(w, http.StatusBadRequest, "service and external_id are required")
		return
	}

	ext, err := h.identity.LinkExternalAccount(r.Context(), user, input.Service, input.ExternalID, input.Username)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, LinkExternalResponse{BaseResponse: BaseResponse{Ok: true}, External: ext})
}

type AutocompleteResponse struct {
	BaseResponse
	Results []search.Result `json:"results"`
}

// AutocompleteHandler answers typeahead queries against users.
func (h *UserHandler) AutocompleteHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.search.Autocomplete(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	if results == nil {
		results = []search.Result{}
	}
	respondWithJSON(w, http.StatusOK, AutocompleteResponse{BaseResponse: BaseResponse{Ok: true}, Results: results})
}

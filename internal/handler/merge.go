// internal/handler/merge.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
)

// MergeHandler exposes account merges. Mount it behind an operator-only
// route group; merges are not self-service.
type MergeHandler struct {
	merges *service.MergeService
}

func NewMergeHandler(merges *service.MergeService) *MergeHandler {
	return &MergeHandler{merges: merges}
}

type MergeRequest struct {
	OldUserID string `json:"old_userid"`
	NewUserID string `json:"new_userid"`
}

type MergeResponse struct {
	BaseResponse
	User *model.User `json:"user"`
}

// MergeUsersHandler retires one account into another. The response is
// the surviving user.
func (h *MergeHandler) MergeUsersHandler(w http.ResponseWriter, r *http.Request) {
	var input MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if input.OldUserID == "" || input.NewUserID == "" {
		respondWithError(w, http.StatusBadRequest, "Both old_userid and new_userid are required")
		return
	}

	user, err := h.merges.MergeUsers(r.Context(), input.OldUserID, input.NewUserID)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MergeResponse{BaseResponse: BaseResponse{Ok: true}, User: user})
}

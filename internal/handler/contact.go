// internal/handler/contact.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dangerclosesec/passport/internal/middleware"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
)

// ContactHandler exposes the claim and verify workflow for the current
// user's email addresses and phone numbers.
type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func currentOwner(w http.ResponseWriter, r *http.Request) (model.OwnerRef, bool) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return model.OwnerRef{}, false
	}
	return model.UserOwner(user.ID), true
}

type ClaimEmailRequest struct {
	Email string `json:"email"`
}

type ClaimEmailResponse struct {
	BaseResponse
	Fingerprint string `json:"fingerprint"`
}

// ClaimEmailHandler starts (or restarts) email verification. The
// verification secret travels only by email, never in the response.
func (h *ContactHandler) ClaimEmailHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	var input ClaimEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	claim, err := h.contacts.ClaimEmail(r.Context(), owner, input.Email)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, ClaimEmailResponse{
		BaseResponse: BaseResponse{Ok: true},
		Fingerprint:  claim.Fingerprint,
	})
}

type VerifyEmailResponse struct {
	BaseResponse
	Email   string `json:"email"`
	Primary bool   `json:"primary"`
}

// VerifyEmailHandler confirms a claim. The fingerprint comes from the
// verification link, the code from its query string or body.
func (h *ContactHandler) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Verification code is required")
		return
	}

	claim, err := h.contacts.FindEmailClaim(r.Context(), owner, chi.URLParam(r, "fingerprint"))
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}

	confirmed, err := h.contacts.VerifyEmail(r.Context(), claim, code)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, VerifyEmailResponse{
		BaseResponse: BaseResponse{Ok: true},
		Email:        confirmed.Email,
		Primary:      confirmed.Primary,
	})
}

type RemoveEmailRequest struct {
	Email string `json:"email"`
}

// RemoveEmailHandler deletes a confirmed address or pending claim.
func (h *ContactHandler) RemoveEmailHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	var input RemoveEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.contacts.RemoveEmail(r.Context(), owner, input.Email); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type ClaimPhoneRequest struct {
	Phone string `json:"phone"`
}

type ClaimPhoneResponse struct {
	BaseResponse
	ClaimID uuid.UUID `json:"claim_id"`
}

// ClaimPhoneHandler starts phone verification. The PIN travels out of
// band.
func (h *ContactHandler) ClaimPhoneHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	var input ClaimPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	claim, err := h.contacts.ClaimPhone(r.Context(), owner, input.Phone)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusAccepted, ClaimPhoneResponse{
		BaseResponse: BaseResponse{Ok: true},
		ClaimID:      claim.ID,
	})
}

type VerifyPhoneRequest struct {
	Code string `json:"code"`
}

type VerifyPhoneResponse struct {
	BaseResponse
	Phone   string `json:"phone"`
	Primary bool   `json:"primary"`
}

// VerifyPhoneHandler confirms a phone claim with its PIN.
func (h *ContactHandler) VerifyPhoneHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	claimID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid claim id")
		return
	}

	var input VerifyPhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	claim, err := h.contacts.FindPhoneClaim(r.Context(), owner, claimID)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}

	confirmed, err := h.contacts.VerifyPhone(r.Context(), claim, input.Code)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, VerifyPhoneResponse{
		BaseResponse: BaseResponse{Ok: true},
		Phone:        confirmed.Phone,
		Primary:      confirmed.Primary,
	})
}

type RemovePhoneRequest struct {
	Phone string `json:"phone"`
}

// RemovePhoneHandler deletes a confirmed number or pending claim.
func (h *ContactHandler) RemovePhoneHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	var input RemovePhoneRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.contacts.RemovePhone(r.Context(), owner, input.Phone); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type ContactSummaryResponse struct {
	BaseResponse
	PrimaryEmail string `json:"primary_email,omitempty"`
	PrimaryPhone string `json:"primary_phone,omitempty"`
}

// ContactSummaryHandler reports the current user's primary channels.
func (h *ContactHandler) ContactSummaryHandler(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	email, err := h.contacts.PrimaryEmail(r.Context(), owner)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	phone, err := h.contacts.PrimaryPhone(r.Context(), owner)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, ContactSummaryResponse{
		BaseResponse: BaseResponse{Ok: true},
		PrimaryEmail: email,
		PrimaryPhone: phone,
	})
}

// internal/handler/auth.go
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/dangerclosesec/passport/internal/domain"
	"github.com/dangerclosesec/passport/internal/middleware"
	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
)

// ResetMailer delivers password reset links. Satisfied by email.Service.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, address string, user *model.User, req *model.PasswordResetRequest) error
}

type AuthHandler struct {
	identity *service.IdentityService
	sessions *service.SessionService
	contacts *service.ContactService
	mailer   ResetMailer
}

func NewAuthHandler(identity *service.IdentityService, sessions *service.SessionService, contacts *service.ContactService, mailer ResetMailer) *AuthHandler {
	return &AuthHandler{identity: identity, sessions: sessions, contacts: contacts, mailer: mailer}
}

type SignupRequest struct {
	service.CreateUserInput
	Email string `json:"email"`
}

type SignupResponse struct {
	BaseResponse
	User         *model.User `json:"user"`
	SessionToken string      `json:"session_token"`
}

// SignupHandler registers a user and opens their first session. An
// email address in the payload starts the claim workflow; the account
// is created either way.
func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var input SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.identity.CreateUser(r.Context(), input.CreateUserInput)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}

	if input.Email != "" {
		if _, err := h.contacts.ClaimEmail(r.Context(), model.UserOwner(user.ID), input.Email); err != nil {
			slog.WarnContext(r.Context(), "signup email claim failed",
				"error", err, "requestID", chmw.GetReqID(r.Context()))
		}
	}

	session, err := h.sessions.Create(r.Context(), user, r.RemoteAddr, r.UserAgent())
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, SignupResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         user,
		SessionToken: session.Token,
	})
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	BaseResponse
	User         *model.User `json:"user,omitempty"`
	SessionToken string      `json:"session_token,omitempty"`
	Token        string      `json:"token,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// LoginHandler verifies credentials and opens a session. Bad identifier
// and bad password produce the same response.
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	result, err := h.sessions.Login(r.Context(), input.Identifier, input.Password, r.RemoteAddr, r.UserAgent())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondWithJSON(w, http.StatusUnauthorized, LoginResponse{Error: "Invalid credentials"})
			return
		}
		respondWithServiceError(r, w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         result.User,
		SessionToken: result.Session.Token,
		Token:        result.JWT,
	})
}

// LogoutHandler revokes the current session.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}
	if err := h.sessions.Revoke(r.Context(), session); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

// LogoutAllHandler revokes every live session for the current user.
func (h *AuthHandler) LogoutAllHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}
	if err := h.sessions.RevokeAll(r.Context(), user.ID); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

// ForgotPasswordHandler issues a reset link to the account's primary
// email. The response is the same whether or not the identifier matches
// an account, so it can't be used to enumerate users.
func (h *AuthHandler) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	accepted := func() {
		respondWithJSON(w, http.StatusAccepted, BaseResponse{Ok: true})
	}

	user, err := h.identity.GetUserByUsername(r.Context(), input.Identifier)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = h.identity.GetUserByUserID(r.Context(), input.Identifier)
	}
	if err != nil {
		accepted()
		return
	}

	address, err := h.contacts.PrimaryEmail(r.Context(), model.UserOwner(user.ID))
	if err != nil || address == "" {
		accepted()
		return
	}

	req, err := h.identity.RequestPasswordReset(r.Context(), user)
	if err != nil {
		accepted()
		return
	}
	if err := h.mailer.SendPasswordReset(r.Context(), address, user, req); err != nil {
		slog.ErrorContext(r.Context(), "password reset delivery failed",
			"error", err, "requestID", chmw.GetReqID(r.Context()))
	}
	accepted()
}

type ResetPasswordRequest struct {
	UserID   string `json:"userid"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// ResetPasswordHandler consumes a reset code, installs the new password
// and revokes every live session.
func (h *AuthHandler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var input ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.identity.GetUserByUserID(r.Context(), input.UserID)
	if err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	if err := h.identity.ResetPassword(r.Context(), user, input.Code, input.Password); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	if err := h.sessions.RevokeAll(r.Context(), user.ID); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type PasswordChangeRequest struct {
	Password string `json:"password"`
}

// PasswordHandler sets a new password for the current user and revokes
// their other sessions.
func (h *AuthHandler) PasswordHandler(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	session := middleware.SessionFrom(r.Context())
	if user == nil || session == nil {
		respondWithError(w, http.StatusUnauthorized, "No active session")
		return
	}

	var input PasswordChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.identity.SetPassword(r.Context(), user, input.Password); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	if err := h.sessions.RevokeAll(r.Context(), user.ID); err != nil {
		respondWithServiceError(r, w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

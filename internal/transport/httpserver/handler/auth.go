package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	identitydomain "swipe-go/internal/domain/identity"
	"swipe-go/internal/domain/validation"
	"swipe-go/internal/observability/metrics"
)

type registerRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string    `json:"auth_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (req registerRequest) toInput() identitydomain.RegisterInput {
	return identitydomain.RegisterInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Password:    req.Password,
		Password2:   req.Password2,
	}
}

func (h *Handlers) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	client, err := h.Identity.RegisterClient(r.Context(), req.toInput())
	if err != nil {
		h.fail(w, "auth.register", err, "email", req.Email)
		return
	}

	h.log.Info("auth.register: client registered", "client_id", client.ID, "user_id", client.UserID)
	writeJSON(w, http.StatusCreated, toClientResponse(*client))
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	user, err := h.Identity.Authenticate(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, identitydomain.ErrInvalidCredentials) || errors.Is(err, identitydomain.ErrUserInactive) {
			metrics.ObserveLogin("rejected")
			h.log.BusinessError("auth.login: rejected", err, "email", req.Email)
			message := "Unable to log in with provided credentials."
			writeFieldError(w, http.StatusBadRequest, "validation_failed", message, map[string]string{validation.NonField: message})
			return
		}
		metrics.ObserveLogin("error")
		h.fail(w, "auth.login", err, "email", req.Email)
		return
	}

	token, expiresAt, err := h.Tokens.Issue(user.ID)
	if err != nil {
		metrics.ObserveLogin("error")
		h.fail(w, "auth.login: issue token", err, "user_id", user.ID)
		return
	}

	metrics.ObserveLogin("success")
	writeJSON(w, http.StatusOK, loginResponse{AuthToken: token, ExpiresAt: expiresAt})
}

// Logout is a no-op: tokens are stateless and expire on their own.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

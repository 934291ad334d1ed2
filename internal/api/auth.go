package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/joestump/biolink/internal/auth"
	"github.com/joestump/biolink/internal/metrics"
	"github.com/joestump/biolink/internal/store"
)

// authHandler provides the public registration and login endpoints.
type authHandler struct {
	users      *store.UserStore
	tokens     *auth.TokenService
	bcryptCost int
}

// Register creates a new user account.
// POST /auth/register
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email, and password are required", "BAD_REQUEST")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		log.Printf("api: hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "username or email already exists", "CONFLICT")
			return
		}
		log.Printf("api: register %q: %v", req.Username, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.RegistrationsTotal.Inc()
	writeJSON(w, http.StatusCreated, RegisterResponse{User: toUserResponse(user)})
}

// Login verifies credentials and issues a bearer token.
// POST /auth/login
//
// A missing account and a wrong password both take the invalid-credentials
// branch below, so the two failures produce byte-identical responses and both
// cost one bcrypt comparison.
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required", "BAD_REQUEST")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			auth.CompareDummy(req.Password)
			h.writeInvalidCredentials(w)
			return
		}
		log.Printf("api: login lookup: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		h.writeInvalidCredentials(w)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Printf("api: issue token: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

func (h *authHandler) writeInvalidCredentials(w http.ResponseWriter) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	writeError(w, http.StatusUnauthorized, "invalid credentials", "INVALID_CREDENTIALS")
}

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/joestump/biolink/internal/auth"
	"github.com/joestump/biolink/internal/store"
)

// profileHandler lets the authenticated user manage their own profile record.
type profileHandler struct {
	users *store.UserStore
}

// Update sets the caller's profile picture URL. An empty value clears it.
// PUT /api/v1/profile
func (h *profileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing credentials", "UNAUTHORIZED")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	user, err := h.users.UpdateProfilePicture(r.Context(), id.UserID, req.ProfilePictureURL)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found", "NOT_FOUND")
			return
		}
		log.Printf("api: update profile: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

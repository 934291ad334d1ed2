package api

import (
	"time"

	"github.com/joestump/biolink/internal/store"
)

// --- Auth types ---

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the success body for POST /auth/login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the JSON representation of a user. It never carries the
// password hash.
type UserResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
}

// RegisterResponse wraps the created user for POST /auth/register.
type RegisterResponse struct {
	User UserResponse `json:"user"`
}

func toUserResponse(u *store.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
	if u.ProfilePictureURL.Valid {
		pic := u.ProfilePictureURL.String
		resp.ProfilePictureURL = &pic
	}
	return resp
}

// --- Link types ---

// CreateLinkRequest is the request body for POST /api/v1/links.
type CreateLinkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Order *int   `json:"order,omitempty"`
}

// UpdateLinkRequest is the request body for PUT /api/v1/links/{id}. All
// fields are optional; absent fields keep their current value.
type UpdateLinkRequest struct {
	Title *string `json:"title"`
	URL   *string `json:"url"`
	Order *int    `json:"order"`
}

// LinkResponse is the JSON representation of an owned link.
type LinkResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Order      int       `json:"order"`
	ClickCount int64     `json:"click_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toLinkResponse(l *store.Link) LinkResponse {
	return LinkResponse{
		ID:         l.ID,
		Title:      l.Title,
		URL:        l.URL,
		Order:      l.Position,
		ClickCount: l.ClickCount,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// StatsResponse is the body for GET /api/v1/links/{id}/stats. ClickCount is
// the authoritative counter from the links row; the window counts come from
// the click event table.
type StatsResponse struct {
	LinkID     string `json:"link_id"`
	ClickCount int64  `json:"click_count"`
	Total      int64  `json:"total"`
	Last7d     int64  `json:"last_7d"`
	Last30d    int64  `json:"last_30d"`
}

// --- Profile types ---

// UpdateProfileRequest is the request body for PUT /api/v1/profile.
type UpdateProfileRequest struct {
	ProfilePictureURL string `json:"profile_picture_url"`
}

// PublicLinkResponse is the safe public projection of a link; it excludes the
// owner id.
type PublicLinkResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Order      int    `json:"order"`
	ClickCount int64  `json:"click_count"`
}

// ProfileResponse is the body for the public GET /{username} endpoint.
type ProfileResponse struct {
	Username          string               `json:"username"`
	ProfilePictureURL *string              `json:"profile_picture_url"`
	Links             []PublicLinkResponse `json:"links"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

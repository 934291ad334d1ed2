package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joestump/biolink/internal/auth"
	"github.com/joestump/biolink/internal/store"
)

// linksHandler provides the owner-scoped link CRUD and stats endpoints. All
// routes sit behind the bearer middleware; the owner id always comes from the
// verified token, never from the request body.
type linksHandler struct {
	links  *store.LinkStore
	clicks *store.ClickStore
}

// List returns the caller's links in display order.
// GET /api/v1/links
func (h *linksHandler) List(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing credentials", "UNAUTHORIZED")
		return
	}

	links, err := h.links.ListByOwner(r.Context(), id.UserID)
	if err != nil {
		log.Printf("api: list links: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		resp = append(resp, toLinkResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create creates a new link owned by the caller.
// POST /api/v1/links
func (h *linksHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing credentials", "UNAUTHORIZED")
		return
	}

	var req CreateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if req.Title == "" || req.URL == "" {
		writeError(w, http.StatusBadRequest, "title and url are required", "BAD_REQUEST")
		return
	}

	position := 0
	if req.Order != nil {
		position = *req.Order
	}

	link, err := h.links.Create(r.Context(), id.UserID, req.Title, req.URL, position)
	if err != nil {
		log.Printf("api: create link: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusCreated, toLinkResponse(link))
}

// Update applies a partial update to a link the caller owns. Absent fields
// keep their current value; a body with no fields at all is a 400.
// PUT /api/v1/links/{id}
func (h *linksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing credentials", "UNAUTHORIZED")
		return
	}

	var req UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	patch := store.LinkPatch{Title: req.Title, URL: req.URL, Position: req.Order}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "at least one of title, url, or order is required", "BAD_REQUEST")
		return
	}
	if req.Title != nil && *req.Title == "" {
		writeError(w, http.StatusBadRequest, "title must not be empty", "BAD_REQUEST")
		return
	}
	if req.URL != nil && *req.URL == "" {
		writeError(w, http.StatusBadRequest, "url must not be empty", "BAD_REQUEST")
		return
	}

	linkID := chi.URLParam(r, "id")
	link, err := h.links.UpdateOwned(r.Context(), linkID, id.UserID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "link not found", "NOT_FOUND")
			return
		}
		log.Printf("api: update link %q: %v", linkID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toLinkResponse(link))
}

// Delete removes a link the caller owns.
// DELETE /api/v1/links/{id}
func (h *linksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing credentials", "UNAUTHORIZED")
		return
	}

	linkID := chi.URLParam(r, "id")
	if err := h.links.DeleteOwned(r.Context(), linkID, id.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "link not found", "NOT_FOUND")
			return
		}
		log.Printf("api: delete link %q: %v", linkID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "link deleted"})
}

// Stats returns click statistics for a link the caller owns.
// GET /api/v1/links/{id}/stats
func (h *linksHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "invalid or missing credentials", "UNAUTHORIZED")
		return
	}

	linkID := chi.URLParam(r, "id")
	link, err := h.links.GetOwned(r.Context(), linkID, id.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "link not found", "NOT_FOUND")
			return
		}
		log.Printf("api: link stats %q: %v", linkID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	stats, err := h.clicks.GetClickStats(r.Context(), link.ID)
	if err != nil {
		log.Printf("api: click stats %q: %v", linkID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		LinkID:     link.ID,
		ClickCount: link.ClickCount,
		Total:      stats.Total,
		Last7d:     stats.Last7d,
		Last30d:    stats.Last30d,
	})
}

package api

import (
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joestump/biolink/internal/metrics"
	"github.com/joestump/biolink/internal/store"
)

// publicHandler serves the unauthenticated surface: click redirects and
// profile pages.
type publicHandler struct {
	users   *store.UserStore
	links   *store.LinkStore
	clickCh chan<- store.ClickEvent
}

// Click increments the click counter and redirects to the stored URL. The
// increment and the URL fetch are a single UPDATE ... RETURNING, so
// concurrent clicks never lose updates. The per-click event row is enqueued
// for the background writer and never delays the redirect.
// GET /click/{id}
func (h *publicHandler) Click(w http.ResponseWriter, r *http.Request) {
	linkID := chi.URLParam(r, "id")
	url, err := h.links.Click(r.Context(), linkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RedirectsTotal.WithLabelValues("not_found").Inc()
			writeError(w, http.StatusNotFound, "link not found", "NOT_FOUND")
			return
		}
		metrics.RedirectsTotal.WithLabelValues("error").Inc()
		log.Printf("api: click %q: %v", linkID, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	if h.clickCh != nil {
		ip, _, splitErr := net.SplitHostPort(r.RemoteAddr)
		if splitErr != nil {
			// RealIP middleware leaves RemoteAddr without a port.
			ip = r.RemoteAddr
		}
		event := store.ClickEvent{
			LinkID:    linkID,
			IPHash:    store.HashIP(ip),
			UserAgent: r.UserAgent(),
			Referrer:  r.Referer(),
		}
		select {
		case h.clickCh <- event:
		default:
			// Queue full. The counter on the links row is already bumped, so
			// only the per-click detail is lost.
			metrics.ClicksDroppedTotal.Inc()
		}
	}

	metrics.RedirectsTotal.WithLabelValues("ok").Inc()
	http.Redirect(w, r, url, http.StatusMovedPermanently)
}

// Profile returns a user's public page: username, picture, and the safe link
// projection in display order.
// GET /{username}
func (h *publicHandler) Profile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.users.GetByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found", "NOT_FOUND")
			return
		}
		log.Printf("api: profile %q: %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	links, err := h.links.ListPublicByOwner(r.Context(), user.ID)
	if err != nil {
		log.Printf("api: profile links %q: %v", username, err)
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := ProfileResponse{
		Username: user.Username,
		Links:    make([]PublicLinkResponse, 0, len(links)),
	}
	if user.ProfilePictureURL.Valid {
		pic := user.ProfilePictureURL.String
		resp.ProfilePictureURL = &pic
	}
	for _, l := range links {
		resp.Links = append(resp.Links, PublicLinkResponse{
			ID:         l.ID,
			Title:      l.Title,
			URL:        l.URL,
			Order:      l.Position,
			ClickCount: l.ClickCount,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

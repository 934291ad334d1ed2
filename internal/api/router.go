package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joestump/biolink/internal/auth"
	"github.com/joestump/biolink/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	DB         *sqlx.DB
	Bearer     *auth.BearerMiddleware
	Tokens     *auth.TokenService
	UserStore  *store.UserStore
	LinkStore  *store.LinkStore
	ClickStore *store.ClickStore
	ClickCh    chan<- store.ClickEvent
	BcryptCost int
}

// NewRouter assembles the full chi router. Named routes are registered before
// the /{username} catch-all so reserved paths (auth, api, click, metrics,
// healthz) always take precedence over profile lookups.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	authH := &authHandler{users: deps.UserStore, tokens: deps.Tokens, bcryptCost: deps.BcryptCost}
	linksH := &linksHandler{links: deps.LinkStore, clicks: deps.ClickStore}
	profileH := &profileHandler{users: deps.UserStore}
	publicH := &publicHandler{users: deps.UserStore, links: deps.LinkStore, clickCh: deps.ClickCh}

	// Credential endpoints (no auth required).
	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Protected API. Every route behind the bearer middleware; a rejected
	// request never reaches a handler.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(deps.Bearer.Authenticate)

		r.Get("/links", linksH.List)
		r.Post("/links", linksH.Create)
		r.Put("/links/{id}", linksH.Update)
		r.Delete("/links/{id}", linksH.Delete)
		r.Get("/links/{id}/stats", linksH.Stats)

		r.Put("/profile", profileH.Update)
	})

	// Public click redirect.
	r.Get("/click/{id}", publicH.Click)

	// Operational endpoints.
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthz(deps.DB))

	// Public profile — catch-all, must be last.
	r.Get("/{username}", publicH.Profile)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// healthz pings the database and reports readiness.
func healthz(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "database unavailable", "INTERNAL_ERROR")
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "ok"})
	}
}

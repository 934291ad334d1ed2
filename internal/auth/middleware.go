package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrMissingCredentials is returned when no Authorization header is present.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrMalformedCredentials is returned when the header is not "Bearer <token>".
	ErrMalformedCredentials = errors.New("malformed credentials")
)

// BearerMiddleware authenticates API requests via a signed bearer token.
type BearerMiddleware struct {
	tokens *TokenService
}

func NewBearerMiddleware(ts *TokenService) *BearerMiddleware {
	return &BearerMiddleware{tokens: ts}
}

// authenticate extracts and verifies the bearer token from a request and
// returns the decoded identity or an error. It never mutates the request;
// the caller decides what to do with the result.
func (m *BearerMiddleware) authenticate(r *http.Request) (Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Identity{}, ErrMissingCredentials
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return Identity{}, ErrMalformedCredentials
	}

	return m.tokens.Verify(parts[1])
}

// Authenticate is an http.Handler middleware that rejects the request with a
// single generic 401 for every failure mode (missing header, wrong shape, bad
// signature, expired) so callers cannot probe which aspect failed. A rejected
// request never reaches the next handler.
func (m *BearerMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.authenticate(r)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// writeUnauthorized writes the one generic 401 body used for all auth failures.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "invalid or missing credentials",
		"code":  "UNAUTHORIZED",
	})
}

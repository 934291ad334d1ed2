package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestMiddleware(t *testing.T) (*BearerMiddleware, *TokenService) {
	t.Helper()
	ts, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return NewBearerMiddleware(ts), ts
}

func TestAuthenticate_ValidToken(t *testing.T) {
	m, ts := newTestMiddleware(t)

	raw, err := ts.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/api/v1/links", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	m.Authenticate(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil {
		t.Fatal("identity missing from request context")
	}
	if got.UserID != "user-1" || got.Username != "alice" {
		t.Errorf("identity = %+v, want user-1/alice", got)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	m, ts := newTestMiddleware(t)

	expired, _ := NewTokenService("test-secret", -time.Hour)
	expiredToken, _ := expired.Issue("user-1", "alice")
	otherSecret, _ := NewTokenService("other-secret", time.Hour)
	forgedToken, _ := otherSecret.Issue("user-1", "alice")
	validToken, _ := ts.Issue("user-1", "alice")

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc123"},
		{"bare token", validToken},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expiredToken},
		{"forged token", "Bearer " + forgedToken},
	}

	var body string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest("GET", "/api/v1/links", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.Authenticate(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if nextCalled {
				t.Error("next handler ran for a rejected request")
			}
			// Every failure mode produces the same body.
			if body == "" {
				body = rec.Body.String()
			} else if rec.Body.String() != body {
				t.Errorf("body differs between failure modes: %q vs %q", rec.Body.String(), body)
			}
		})
	}
}

func TestIdentityFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if id := IdentityFromContext(req.Context()); id != nil {
		t.Errorf("identity = %+v, want nil", id)
	}
}

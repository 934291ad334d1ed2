package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/joestump/biolink/internal/auth"
	"github.com/joestump/biolink/internal/store"
	"github.com/joestump/biolink/internal/testutil"
)

// testEnv wires a full router against a fresh in-memory database.
type testEnv struct {
	router  http.Handler
	users   *store.UserStore
	links   *store.LinkStore
	clicks  *store.ClickStore
	tokens  *auth.TokenService
	clickCh chan store.ClickEvent
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	users := store.NewUserStore(db)
	links := store.NewLinkStore(db)
	clicks := store.NewClickStore(db)
	clickCh := make(chan store.ClickEvent, 64)

	router := NewRouter(Deps{
		DB:         db,
		Bearer:     auth.NewBearerMiddleware(tokens),
		Tokens:     tokens,
		UserStore:  users,
		LinkStore:  links,
		ClickStore: clicks,
		ClickCh:    clickCh,
		BcryptCost: bcrypt.MinCost,
	})

	return &testEnv{
		router:  router,
		users:   users,
		links:   links,
		clicks:  clicks,
		tokens:  tokens,
		clickCh: clickCh,
	}
}

// seedUser inserts a user directly and returns it with a valid bearer token.
func (e *testEnv) seedUser(t *testing.T, username, email, password string) (*store.User, string) {
	t.Helper()

	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := e.users.Create(context.Background(), username, email, hash)
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	token, err := e.tokens.Issue(user.ID, user.Username)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

// do performs a request against the router. A non-nil body is JSON-encoded;
// a non-empty token is sent as a bearer credential.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

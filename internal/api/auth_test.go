package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, rec, &body)
	if body.User["username"] != "alice" {
		t.Errorf("user.username = %v, want alice", body.User["username"])
	}
	for key := range body.User {
		if strings.Contains(key, "password") {
			t.Errorf("response leaks field %q", key)
		}
	}
}

func TestRegister_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	bodies := []map[string]string{
		{"email": "a@example.com", "password": "pw"},
		{"username": "a", "password": "pw"},
		{"username": "a", "email": "a@example.com"},
		{},
	}
	for _, b := range bodies {
		rec := env.do(t, "POST", "/auth/register", "", b)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("register %v: status = %d, want 400", b, rec.Code)
		}
	}
}

func TestRegister_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com", "s3cret")

	rec := env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "other@example.com",
		"password": "pw",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, rec, &body)
	if body.Code != "CONFLICT" {
		t.Errorf("code = %q, want CONFLICT", body.Code)
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.seedUser(t, "alice", "alice@example.com", "s3cret")

	rec := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &body)
	id, err := env.tokens.Verify(body.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if id.UserID != user.ID || id.Username != "alice" {
		t.Errorf("token identity = %+v, want %s/alice", id, user.ID)
	}
}

// A wrong password and an unknown email must be indistinguishable to the
// caller: same status, byte-identical body.
func TestLogin_FailuresIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", "alice@example.com", "s3cret")

	wrongPW := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	unknown := env.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong",
	})

	if wrongPW.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", wrongPW.Code)
	}
	if unknown.Code != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want 401", unknown.Code)
	}
	if wrongPW.Body.String() != unknown.Body.String() {
		t.Errorf("failure bodies differ: %q vs %q", wrongPW.Body.String(), unknown.Body.String())
	}
}

func TestLogin_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	for _, b := range []map[string]string{
		{"password": "pw"},
		{"email": "a@example.com"},
		{},
	} {
		rec := env.do(t, "POST", "/auth/login", "", b)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("login %v: status = %d, want 400", b, rec.Code)
		}
	}
}

// New accounts start with an empty link list.
func TestRegisterLoginListFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", rec.Code)
	}

	rec = env.do(t, "POST", "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "s3cret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200", rec.Code)
	}
	var login struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &login)

	rec = env.do(t, "GET", "/api/v1/links", login.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("list body = %q, want []", got)
	}
}

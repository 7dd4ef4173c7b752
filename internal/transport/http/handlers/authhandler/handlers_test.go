package authhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"hradmin/internal/domain/auth"
	"hradmin/internal/domain/shared"
	"hradmin/internal/transport/http/middleware"
)

const secret = "test-secret"

type fakeUsers struct {
	users     map[string]auth.User
	lastLogin []int64
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (auth.User, error) {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return auth.User{}, shared.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Create(context.Context, string, string, string, string) (int64, error) {
	return 0, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID int64) error {
	f.lastLogin = append(f.lastLogin, userID)
	return nil
}

func newUsers(t *testing.T) *fakeUsers {
	t.Helper()
	hash, err := auth.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &fakeUsers{users: map[string]auth.User{
		"hr@example.com": {ID: 7, Name: "Hana", Email: "hr@example.com", PasswordHash: hash, Role: auth.RoleHR},
	}}
}

func newRouter(users *fakeUsers) http.Handler {
	h := NewHandler(auth.NewService(users, secret, time.Hour, nil))
	r := chi.NewRouter()
	r.Use(middleware.Auth(secret, nil))
	h.RegisterRoutes(r)
	return r
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestLoginIssuesUsableToken(t *testing.T) {
	users := newUsers(t)
	router := newRouter(users)

	rec := post(router, `{"email":"HR@example.com","password":"Secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Data tokenResource `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Data.Token == "" || body.Data.ExpiresIn != 3600 || body.Data.User.Role != auth.RoleHR {
		t.Fatalf("unexpected login payload %+v", body.Data)
	}
	if len(users.lastLogin) != 1 || users.lastLogin[0] != 7 {
		t.Fatalf("expected last login recorded, got %v", users.lastLogin)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+body.Data.Token)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), `"email":"hr@example.com"`) {
		t.Fatalf("unexpected me response %d: %s", me.Code, me.Body.String())
	}
}

func TestLoginFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
		code int
	}{
		{"wrong password", `{"email":"hr@example.com","password":"nope"}`, http.StatusUnauthorized},
		{"unknown user", `{"email":"ghost@example.com","password":"Secret123"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"hr@example.com"}`, http.StatusUnprocessableEntity},
		{"malformed email", `{"email":"hr","password":"Secret123"}`, http.StatusUnprocessableEntity},
		{"broken json", `{"email":`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(newRouter(newUsers(t)), tc.body)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestMeWithoutTokenIsUnauthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(newUsers(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

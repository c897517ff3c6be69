package auth

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/rentalhub/rentalhub/internal/db"
	"github.com/rentalhub/rentalhub/internal/identity"
	"github.com/rentalhub/rentalhub/internal/user"
)

func testUsers(t *testing.T) *user.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if cerr := d.Close(); cerr != nil {
			t.Errorf("close db: %v", cerr)
		}
	})
	return user.NewStore(d)
}

func TestRequireToken(t *testing.T) {
	users := testUsers(t)
	tokens := NewTokens("test-secret", time.Hour)

	u, err := users.Create(user.NewUser{
		Email: "mw@example.com", Password: "x", FirstName: "A", LastName: "B",
		Role: identity.RoleLandlord,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	raw, err := tokens.Issue(u.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var gotActor identity.Actor
	var hadActor bool
	handler := RequireToken(tokens, users, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor, hadActor = identity.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		path       string
		authHeader string
		wantStatus int
		wantActor  bool
	}{
		{"valid token", "/api/properties", "Bearer " + raw, http.StatusOK, true},
		{"missing header", "/api/properties", "", http.StatusUnauthorized, false},
		{"malformed header", "/api/properties", "Token abc", http.StatusUnauthorized, false},
		{"bad token", "/api/properties", "Bearer garbage", http.StatusUnauthorized, false},
		{"login is public", "/api/auth/login", "", http.StatusOK, false},
		{"register is public", "/api/auth/register", "", http.StatusOK, false},
		{"health is public", "/health", "", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hadActor = false
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if hadActor != tt.wantActor {
				t.Errorf("actor present = %v, want %v", hadActor, tt.wantActor)
			}
			if tt.wantActor && gotActor.ID != u.ID {
				t.Errorf("actor id = %d, want %d", gotActor.ID, u.ID)
			}
		})
	}
}

func TestRequireTokenUnknownUser(t *testing.T) {
	users := testUsers(t)
	tokens := NewTokens("test-secret", time.Hour)

	raw, err := tokens.Issue(9999)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	handler := RequireToken(tokens, users, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

func TestNewTokenService(t *testing.T) {
	if _, err := NewTokenService("short", 0); err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}

	ts, err := NewTokenService("this-is-16-chars", 0)
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error: %v", err)
	}
	if ts.TTL() != DefaultSessionTTL {
		t.Errorf("TTL() = %v, want %v", ts.TTL(), DefaultSessionTTL)
	}
}

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate("user-abc-123", "mentor")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token %q does not look like a JWT", token)
	}

	got, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.UserID != "user-abc-123" || got.Role != "mentor" {
		t.Errorf("Validate() = %+v", got)
	}
}

func TestValidate_Rejects(t *testing.T) {
	ts := newTestTokenService(t)
	other, _ := NewTokenService("wrong-secret-32-chars-long!!!!!!", time.Hour)

	good, _ := ts.Generate("user-123", "student")
	expired, _ := ts.GenerateWithDuration("user-123", "student", -time.Second)
	foreign, _ := other.Generate("user-123", "student")
	noSubject, _ := ts.Generate("", "student")

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, ErrTokenExpired},
		{"tampered signature", good[:len(good)-3] + "xxx", ErrTokenInvalid},
		{"signed with another secret", foreign, ErrTokenInvalid},
		{"empty", "", ErrTokenInvalid},
		{"garbage", "not.a.jwt", ErrTokenInvalid},
		{"missing subject", noSubject, ErrTokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Validate(tt.token)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	ts := newTestTokenService(t)
	var seen Identity
	handler := RequireAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"error":"unauthorized"`) {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("valid cookie", func(t *testing.T) {
		token, _ := ts.Generate("u1", "student")
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if seen.UserID != "u1" || seen.Role != "student" {
			t.Errorf("identity = %+v", seen)
		}
	})
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	ts := newTestTokenService(t)
	called := false
	handler := OptionalAuth(ts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := UserIDFromContext(r.Context()); ok {
			t.Error("anonymous request should carry no user")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "bogus"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatal("next handler was not called")
	}
}

func TestSessionCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "tok", 2*time.Hour, false)
	ClearSessionCookie(rec, false)

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies, want 2", len(cookies))
	}
	if c := cookies[0]; c.Name != CookieName || c.Value != "tok" || !c.HttpOnly || c.MaxAge != 7200 {
		t.Errorf("session cookie = %+v", c)
	}
	if c := cookies[1]; c.MaxAge >= 0 {
		t.Errorf("cleared cookie MaxAge = %d, want negative", c.MaxAge)
	}
}

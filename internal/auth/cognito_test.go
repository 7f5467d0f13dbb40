package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return signed
}

func newFakeCognito(t *testing.T, handler func(p InitiateAuthPayload) (int, any)) *Cognito {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Amz-Target"); got != initiateAuthTarget {
			t.Errorf("Expected X-Amz-Target %s, got %s", initiateAuthTarget, got)
		}
		var p InitiateAuthPayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("Decode failed: %v", err)
		}
		status, body := handler(p)
		w.Header().Set("Content-Type", amzJSONContentType)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return NewCognito(srv.URL, "client-123", 5*time.Second)
}

func TestLoginShouldReturnSessionWithTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	idToken := mintToken(t, exp)

	c := newFakeCognito(t, func(p InitiateAuthPayload) (int, any) {
		if p.AuthFlow != flowUserPassword {
			t.Errorf("Expected flow %s, got %s", flowUserPassword, p.AuthFlow)
		}
		if p.ClientID != "client-123" {
			t.Errorf("Expected client id client-123, got %s", p.ClientID)
		}
		if p.AuthParameters["USERNAME"] != "alice@example.com" || p.AuthParameters["PASSWORD"] != "hunter2" {
			t.Errorf("Unexpected auth parameters %v", p.AuthParameters)
		}
		return http.StatusOK, map[string]any{
			"AuthenticationResult": map[string]any{
				"AccessToken":  "access",
				"IdToken":      idToken,
				"RefreshToken": "refresh",
				"ExpiresIn":    3600,
			},
		}
	})

	s, err := c.Login(context.Background(), "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if s.Token() != idToken {
		t.Error("Expected ID token to be the authorization token")
	}
	if !s.ExpiresAt.Equal(exp) {
		t.Errorf("Expected expiry %v, got %v", exp, s.ExpiresAt)
	}
	if !s.Valid(time.Now()) {
		t.Error("Fresh session should be valid")
	}
}

func TestLoginShouldFallBackToExpiresIn(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := newFakeCognito(t, func(p InitiateAuthPayload) (int, any) {
		return http.StatusOK, map[string]any{
			"AuthenticationResult": map[string]any{
				"AccessToken": "opaque",
				"ExpiresIn":   600,
			},
		}
	})
	c.Now = func() time.Time { return now }

	s, err := c.Login(context.Background(), "u", "p")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if want := now.Add(10 * time.Minute); !s.ExpiresAt.Equal(want) {
		t.Errorf("Expected expiry %v, got %v", want, s.ExpiresAt)
	}
}

func TestLoginShouldRejectBadCredentials(t *testing.T) {
	c := newFakeCognito(t, func(p InitiateAuthPayload) (int, any) {
		return http.StatusBadRequest, map[string]string{
			"__type":  "NotAuthorizedException",
			"message": "Incorrect username or password.",
		}
	})

	_, err := c.Login(context.Background(), "u", "wrong")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("Expected ErrRejected, got %v", err)
	}
}

func TestLoginShouldReportUnavailableOnServerError(t *testing.T) {
	c := newFakeCognito(t, func(p InitiateAuthPayload) (int, any) {
		return http.StatusInternalServerError, map[string]string{"__type": "InternalErrorException"}
	})

	_, err := c.Login(context.Background(), "u", "p")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

func TestRefreshShouldKeepPreviousRefreshToken(t *testing.T) {
	c := newFakeCognito(t, func(p InitiateAuthPayload) (int, any) {
		if p.AuthFlow != flowRefreshToken {
			t.Errorf("Expected flow %s, got %s", flowRefreshToken, p.AuthFlow)
		}
		if p.AuthParameters["REFRESH_TOKEN"] != "refresh-1" {
			t.Errorf("Unexpected refresh token %q", p.AuthParameters["REFRESH_TOKEN"])
		}
		return http.StatusOK, map[string]any{
			"AuthenticationResult": map[string]any{
				"AccessToken": "access-2",
				"IdToken":     mintToken(t, time.Now().Add(time.Hour)),
				"ExpiresIn":   3600,
			},
		}
	})

	s, err := c.Refresh(context.Background(), "refresh-1")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if s.RefreshToken != "refresh-1" {
		t.Errorf("Expected refresh token to be carried over, got %q", s.RefreshToken)
	}
	if s.AccessToken != "access-2" {
		t.Errorf("Expected new access token, got %q", s.AccessToken)
	}
}

func TestRefreshWithoutTokenShouldBeRejected(t *testing.T) {
	c := NewCognito("http://127.0.0.1:0", "client", time.Second)
	if _, err := c.Refresh(context.Background(), ""); !errors.Is(err, ErrRejected) {
		t.Fatalf("Expected ErrRejected, got %v", err)
	}
}

func TestSessionValidity(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{"empty session", Session{}, false},
		{"expired", Session{IDToken: "x", ExpiresAt: now.Add(-time.Minute)}, false},
		{"inside skew", Session{IDToken: "x", ExpiresAt: now.Add(ExpirySkew / 2)}, false},
		{"valid", Session{IDToken: "x", ExpiresAt: now.Add(time.Hour)}, true},
		{"short lived right after issue", Session{IDToken: "x", IssuedAt: now, ExpiresAt: now.Add(30 * time.Second)}, true},
		{"short lived near expiry", Session{IDToken: "x", IssuedAt: now.Add(-25 * time.Second), ExpiresAt: now.Add(5 * time.Second)}, false},
		{"long lived inside skew", Session{IDToken: "x", IssuedAt: now.Add(-time.Hour), ExpiresAt: now.Add(ExpirySkew / 2)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Valid(now); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

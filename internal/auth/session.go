package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpirySkew is subtracted from the token expiry so a session is never
// used in the last moments of its life.
const ExpirySkew = 60 * time.Second

// Session is the token set returned by the identity provider. It is held in
// memory only and replaced wholesale on refresh.
type Session struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time
}

// Valid reports whether the session can authorize a request at now.
func (s Session) Valid(now time.Time) bool {
	if s.IDToken == "" && s.AccessToken == "" {
		return false
	}
	return now.Before(s.ExpiresAt.Add(-s.skew()))
}

// skew is ExpirySkew, capped at a quarter of the token lifetime so short
// lived tokens are still usable straight after issue.
func (s Session) skew() time.Duration {
	if s.IssuedAt.IsZero() {
		return ExpirySkew
	}
	if quarter := s.ExpiresAt.Sub(s.IssuedAt) / 4; quarter < ExpirySkew {
		return max(quarter, 0)
	}
	return ExpirySkew
}

// Token is the value sent in the Authorization header. The Evnex API
// accepts the ID token; the access token is the fallback.
func (s Session) Token() string {
	if s.IDToken != "" {
		return s.IDToken
	}
	return s.AccessToken
}

// String never includes token material.
func (s Session) String() string {
	return "Session(expires " + s.ExpiresAt.UTC().Format(time.RFC3339) + ")"
}

// tokenExpiry reads the exp claim without verifying the signature; the
// token came straight from the identity provider over TLS.
func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

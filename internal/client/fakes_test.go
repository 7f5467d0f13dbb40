package client

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// fakeBackend serves both the Cognito InitiateAuth endpoint and the Evnex
// API. Tokens are minted against clock so tests can expire them.
type fakeBackend struct {
	t *testing.T

	mu        sync.Mutex
	clock     time.Time
	logins    int
	refreshes int
	issued    int
	password  string
	valid     map[string]bool
	routes    map[string]http.HandlerFunc
	requests  []string

	rejectRefresh bool
	authDelay     time.Duration
	tokenTTL      time.Duration

	auth *httptest.Server
	api  *httptest.Server
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{
		t:        t,
		clock:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		password: "hunter2",
		valid:    make(map[string]bool),
		routes:   make(map[string]http.HandlerFunc),
		tokenTTL: time.Hour,
	}
	f.auth = httptest.NewServer(http.HandlerFunc(f.serveAuth))
	f.api = httptest.NewServer(http.HandlerFunc(f.serveAPI))
	t.Cleanup(f.api.Close)
	t.Cleanup(f.auth.Close)
	return f
}

func (f *fakeBackend) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.clock
}

func (f *fakeBackend) advance(d time.Duration) {
	f.mu.Lock()
	f.clock = f.clock.Add(d)
	f.mu.Unlock()
}

func (f *fakeBackend) counts() (logins, refreshes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logins, f.refreshes
}

// revokeAll makes the API refuse every token issued so far.
func (f *fakeBackend) revokeAll() {
	f.mu.Lock()
	f.valid = make(map[string]bool)
	f.mu.Unlock()
}

func (f *fakeBackend) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	f.routes[path] = h
	f.mu.Unlock()
}

func (f *fakeBackend) handleJSON(path string, status int, body string) {
	f.handle(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

// mint must be called with f.mu held.
func (f *fakeBackend) mint() string {
	f.issued++
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        fmt.Sprintf("token-%d", f.issued),
		ExpiresAt: jwt.NewNumericDate(f.clock.Add(f.tokenTTL)),
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		f.t.Errorf("SignedString failed: %v", err)
	}
	f.valid[signed] = true
	return signed
}

func (f *fakeBackend) serveAuth(w http.ResponseWriter, r *http.Request) {
	var p struct {
		AuthFlow       string
		AuthParameters map[string]string
	}
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		f.t.Errorf("Decode failed: %v", err)
	}

	f.mu.Lock()
	delay := f.authDelay
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	reject := func() {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"__type":"NotAuthorizedException","message":"nope"}`)
	}

	result := map[string]any{"ExpiresIn": 3600}
	switch p.AuthFlow {
	case "USER_PASSWORD_AUTH":
		f.logins++
		if p.AuthParameters["PASSWORD"] != f.password {
			reject()
			return
		}
		result["RefreshToken"] = fmt.Sprintf("refresh-%d", f.logins)
	case "REFRESH_TOKEN_AUTH":
		f.refreshes++
		if f.rejectRefresh {
			reject()
			return
		}
	default:
		f.t.Errorf("Unexpected auth flow %s", p.AuthFlow)
	}
	result["IdToken"] = f.mint()
	result["AccessToken"] = "access"

	_ = json.NewEncoder(w).Encode(map[string]any{"AuthenticationResult": result})
}

func (f *fakeBackend) serveAPI(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	authorized := f.valid[r.Header.Get("Authorization")]
	h, ok := f.routes[r.URL.Path]
	f.mu.Unlock()

	if r.Header.Get("X-Request-Id") == "" {
		f.t.Errorf("Missing X-Request-Id on %s", r.URL.Path)
	}
	if !authorized {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Unauthorized"}`)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not Found"}`)
		return
	}
	h(w, r)
}

func (f *fakeBackend) client(t *testing.T) *Evnex {
	t.Helper()
	c, err := New(Config{
		BaseURL:        f.api.URL,
		AuthURL:        f.auth.URL,
		ClientID:       "test-client",
		Username:       "alice@example.com",
		Password:       "hunter2",
		RequestTimeout: 2 * time.Second,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.now = f.now
	c.auth.Now = f.now
	return c
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"evnex-cli/internal/auth"
	"evnex-cli/pkg/models"
)

const (
	DefaultBaseURL        = "https://client-api.evnex.io"
	DefaultAuthURL        = "https://cognito-idp.ap-southeast-2.amazonaws.com"
	DefaultClientID       = "rol3lsv2vg41783550i18r7vi"
	DefaultRequestTimeout = 30 * time.Second
	DefaultUserAgent      = "evnex-cli"
)

// Evnex is a client for the Evnex charge point API. It logs in on first
// use and keeps the session in memory, refreshing it when it expires.
type Evnex struct {
	HTTP   *resty.Client
	Config Config

	auth *auth.Cognito
	log  *slog.Logger
	now  func() time.Time

	mu      sync.Mutex
	current auth.Session
	group   singleflight.Group
}

type Config struct {
	BaseURL  string
	AuthURL  string // Cognito identity provider endpoint
	ClientID string // Cognito app client
	Username string
	Password string

	// RequestTimeout bounds every API call, including calls against
	// offline charge points that the backend would otherwise hold open.
	RequestTimeout time.Duration
	UserAgent      string
	Logger         *slog.Logger
}

func (cfg Config) withDefaults() Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultAuthURL
	}
	if cfg.ClientID == "" {
		cfg.ClientID = DefaultClientID
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func New(cfg Config) (*Evnex, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, errors.New("evnex: username and password are required")
	}
	cfg = cfg.withDefaults()

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetTimeout(cfg.RequestTimeout)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	r.SetHeader("User-Agent", cfg.UserAgent)

	return &Evnex{
		HTTP:   r,
		Config: cfg,
		auth:   auth.NewCognito(cfg.AuthURL, cfg.ClientID, cfg.RequestTimeout),
		log:    cfg.Logger,
		now:    time.Now,
	}, nil
}

// Login exchanges the configured credentials for a new session and
// replaces whatever session the client held.
func (c *Evnex) Login(ctx context.Context) (auth.Session, error) {
	s, err := c.auth.Login(ctx, c.Config.Username, c.Config.Password)
	if err != nil {
		return auth.Session{}, authError("login", err)
	}
	c.store(s)
	c.log.Info("logged in", "username", c.Config.Username, "expires", s.ExpiresAt)
	return s, nil
}

func (c *Evnex) store(s auth.Session) {
	c.mu.Lock()
	c.current = s
	c.mu.Unlock()
}

func (c *Evnex) snapshot() auth.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// invalidate drops the tokens the API refused but keeps the refresh token
// so the next call can try a refresh before a full login.
func (c *Evnex) invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.Token() == token {
		c.current = auth.Session{RefreshToken: c.current.RefreshToken}
	}
}

// session returns a valid session, refreshing or logging in when needed.
// Concurrent callers share a single round trip to the identity provider.
// The round trip is detached from any one caller's cancellation and bounded
// by RequestTimeout; each caller stops waiting when its own ctx is done.
func (c *Evnex) session(ctx context.Context) (auth.Session, error) {
	if s := c.snapshot(); s.Valid(c.now()) {
		return s, nil
	}

	ch := c.group.DoChan("session", func() (any, error) {
		stale := c.snapshot()
		if stale.Valid(c.now()) {
			return stale, nil
		}
		authCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.Config.RequestTimeout)
		defer cancel()
		return c.reauthenticate(authCtx, stale)
	})

	select {
	case <-ctx.Done():
		return auth.Session{}, &Error{Op: "authenticate", Kind: ErrTransport, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return auth.Session{}, res.Err
		}
		return res.Val.(auth.Session), nil
	}
}

func (c *Evnex) reauthenticate(ctx context.Context, stale auth.Session) (auth.Session, error) {
	if stale.RefreshToken == "" {
		return c.Login(ctx)
	}

	s, err := c.auth.Refresh(ctx, stale.RefreshToken)
	if err == nil {
		c.store(s)
		c.log.Info("session refreshed", "expires", s.ExpiresAt)
		return s, nil
	}
	if !errors.Is(err, auth.ErrRejected) {
		return auth.Session{}, authError("refresh", err)
	}

	c.log.Info("refresh token rejected, logging in again")
	return c.Login(ctx)
}

type request struct {
	op         string
	method     string
	path       string
	pathParams map[string]string
	body       any

	// device marks calls that the backend forwards to the charge point
	// itself; timeouts on these mean the hardware did not answer.
	device bool
}

// do runs req and decodes the response into out. A 401 invalidates the
// session and the request is replayed once with fresh tokens.
func (c *Evnex) do(ctx context.Context, req request, out models.Validator) error {
	resp, token, err := c.send(ctx, req)
	if err != nil {
		return err
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.log.Debug("token refused, re-authenticating", "op", req.op)
		c.invalidate(token)
		if resp, _, err = c.send(ctx, req); err != nil {
			return err
		}
	}

	if resp.IsError() {
		return statusError(req, resp)
	}
	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return schemaError(req.op, resp.StatusCode(), err)
	}
	if err := out.Validate(); err != nil {
		return schemaError(req.op, resp.StatusCode(), err)
	}
	return nil
}

func (c *Evnex) send(ctx context.Context, req request) (*resty.Response, string, error) {
	s, err := c.session(ctx)
	if err != nil {
		return nil, "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.Config.RequestTimeout)
	defer cancel()

	requestID := uuid.NewString()
	start := time.Now()

	r := c.HTTP.R().
		SetContext(ctx).
		SetHeader("Authorization", s.Token()).
		SetHeader("X-Request-Id", requestID).
		SetPathParams(req.pathParams)
	if req.body != nil {
		r.SetBody(req.body)
	}

	resp, err := r.Execute(req.method, req.path)
	if err != nil {
		c.log.Debug("request failed",
			"op", req.op, "request_id", requestID, "duration", time.Since(start), "error", err)
		return nil, "", transportError(req, err)
	}

	c.log.Debug("request",
		"op", req.op,
		"method", req.method,
		"path", resp.Request.URL,
		"status", resp.StatusCode(),
		"request_id", requestID,
		"duration", time.Since(start),
	)
	return resp, s.Token(), nil
}

func requireID(op, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return &Error{Op: op, Kind: ErrRequest, Err: errors.New(name + " is required")}
	}
	return nil
}

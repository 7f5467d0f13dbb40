package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	initiateAuthTarget = "AWSCognitoIdentityProviderService.InitiateAuth"
	amzJSONContentType = "application/x-amz-json-1.1"

	flowUserPassword = "USER_PASSWORD_AUTH"
	flowRefreshToken = "REFRESH_TOKEN_AUTH"
)

var (
	// ErrRejected means the identity provider refused the credentials or
	// refresh token.
	ErrRejected = errors.New("credentials rejected")
	// ErrUnavailable means the identity provider could not be reached or
	// answered with something other than a decision.
	ErrUnavailable = errors.New("identity provider unavailable")
)

// Cognito talks to the AWS Cognito identity provider JSON API.
type Cognito struct {
	HTTP     *resty.Client
	ClientID string
	Now      func() time.Time
}

// InitiateAuthPayload matches the InitiateAuth request body.
type InitiateAuthPayload struct {
	AuthFlow       string            `json:"AuthFlow"`
	ClientID       string            `json:"ClientId"`
	AuthParameters map[string]string `json:"AuthParameters"`
}

// InitiateAuthResponse captures the token set. ChallengeName is set when
// the pool demands MFA or a password change, which this client cannot answer.
type InitiateAuthResponse struct {
	AuthenticationResult *struct {
		AccessToken  string `json:"AccessToken"`
		IDToken      string `json:"IdToken"`
		RefreshToken string `json:"RefreshToken"`
		ExpiresIn    int    `json:"ExpiresIn"`
		TokenType    string `json:"TokenType"`
	} `json:"AuthenticationResult"`
	ChallengeName string `json:"ChallengeName"`
}

type cognitoError struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}

func NewCognito(authURL, clientID string, timeout time.Duration) *Cognito {
	r := resty.New()
	r.SetBaseURL(authURL)
	r.SetTimeout(timeout)
	r.SetHeader("Content-Type", amzJSONContentType)
	r.SetHeader("X-Amz-Target", initiateAuthTarget)

	return &Cognito{
		HTTP:     r,
		ClientID: clientID,
		Now:      time.Now,
	}
}

// Login exchanges username and password for a new Session.
func (c *Cognito) Login(ctx context.Context, username, password string) (Session, error) {
	return c.initiate(ctx, flowUserPassword, map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	}, "")
}

// Refresh exchanges a refresh token for a new Session. Cognito does not
// rotate refresh tokens, so the old one is carried into the result when the
// response omits it.
func (c *Cognito) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, fmt.Errorf("refresh: %w: no refresh token", ErrRejected)
	}
	return c.initiate(ctx, flowRefreshToken, map[string]string{
		"REFRESH_TOKEN": refreshToken,
	}, refreshToken)
}

func (c *Cognito) initiate(ctx context.Context, flow string, params map[string]string, previousRefresh string) (Session, error) {
	payload := InitiateAuthPayload{
		AuthFlow:       flow,
		ClientID:       c.ClientID,
		AuthParameters: params,
	}

	// The x-amz-json content type is not one resty marshals on its own.
	body, err := json.Marshal(payload)
	if err != nil {
		return Session{}, err
	}

	// 1. Make Request
	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(body).
		Post("/")
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w: %w", flow, ErrUnavailable, err)
	}

	if resp.IsError() {
		return Session{}, classify(flow, resp)
	}

	// 2. Extract Tokens
	var result InitiateAuthResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return Session{}, fmt.Errorf("%s: %w: malformed response: %w", flow, ErrUnavailable, err)
	}
	if result.ChallengeName != "" {
		return Session{}, fmt.Errorf("%s: %w: unsupported challenge %s", flow, ErrRejected, result.ChallengeName)
	}
	ar := result.AuthenticationResult
	if ar == nil || (ar.IDToken == "" && ar.AccessToken == "") {
		return Session{}, fmt.Errorf("%s: %w: no tokens returned", flow, ErrUnavailable)
	}

	// 3. Build Session
	s := Session{
		AccessToken:  ar.AccessToken,
		IDToken:      ar.IDToken,
		RefreshToken: ar.RefreshToken,
		IssuedAt:     c.Now(),
	}
	if s.RefreshToken == "" {
		s.RefreshToken = previousRefresh
	}
	if exp, ok := tokenExpiry(s.Token()); ok {
		s.ExpiresAt = exp
	} else {
		s.ExpiresAt = c.Now().Add(time.Duration(ar.ExpiresIn) * time.Second)
	}
	return s, nil
}

func classify(flow string, resp *resty.Response) error {
	var ce cognitoError
	_ = json.Unmarshal(resp.Body(), &ce)

	switch ce.Type {
	case "NotAuthorizedException", "UserNotFoundException", "UserNotConfirmedException",
		"PasswordResetRequiredException":
		return fmt.Errorf("%s: %w: %s", flow, ErrRejected, ce.Message)
	}
	if resp.StatusCode() == 400 || resp.StatusCode() == 401 || resp.StatusCode() == 403 {
		return fmt.Errorf("%s: %w: %s %s", flow, ErrRejected, ce.Type, ce.Message)
	}
	return fmt.Errorf("%s: %w: status %d: %s", flow, ErrUnavailable, resp.StatusCode(), resp.String())
}

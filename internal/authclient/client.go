// Package authclient talks to the authentication and database-status endpoints.
package authclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"retail-mis-console/internal/model"
	"retail-mis-console/internal/service"

	"github.com/go-resty/resty/v2"
)

const (
	loginPath    = "/api/auth/login"
	dbStatusPath = "/api/db/status"
)

// ErrStatusUnavailable wraps every DatabaseStatus failure
var ErrStatusUnavailable = errors.New("database status unavailable")

type tokenKey struct{}

// ContextWithToken attaches the bearer token of the current session to ctx
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token set by ContextWithToken, or ""
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// TokenSource yields the bearer token for an outgoing request. "" means send none.
type TokenSource func(ctx context.Context) string

type Client struct {
	http   *resty.Client
	tokens TokenSource
}

type Option func(*Client)

// WithTokenSource replaces the default context-based token lookup
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.tokens = src }
}

// WithRetries sets how often failed requests are retried on network errors and 5xx
func WithRetries(n int) Option {
	return func(c *Client) { c.http.SetRetryCount(n) }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(retryCondition)

	c := &Client{http: httpClient, tokens: TokenFromContext}
	for _, opt := range opts {
		opt(c)
	}
	httpClient.OnBeforeRequest(c.attachBearer)
	return c
}

// attachBearer adds the Authorization header only when a token is available
func (c *Client) attachBearer(_ *resty.Client, r *resty.Request) error {
	if token := c.tokens(r.Context()); token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

type errorBody struct {
	Error string `json:"error"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token. Every failure is a *service.AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	var result service.AuthResult
	var failure errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginBody{Email: email, Password: password}).
		SetResult(&result).
		SetError(&failure).
		Post(loginPath)
	if err != nil {
		return nil, &service.AuthError{Message: "Authentication service unavailable", Err: err}
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusBadRequest:
		msg := failure.Error
		if msg == "" {
			msg = "Invalid email or password"
		}
		return nil, &service.AuthError{Message: msg, Err: fmt.Errorf("login rejected with status %d", code)}
	case !resp.IsSuccess():
		return nil, &service.AuthError{
			Message: "Unable to sign in. Please try again.",
			Err:     fmt.Errorf("login failed with status %d", code),
		}
	}
	return &result, nil
}

// DatabaseStatus calls the bearer-protected status endpoint
func (c *Client) DatabaseStatus(ctx context.Context) (*model.DBStatus, error) {
	var status model.DBStatus
	var failure errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&status).
		SetError(&failure).
		Get(dbStatusPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatusUnavailable, err)
	}
	if !resp.IsSuccess() {
		msg := failure.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrStatusUnavailable, resp.StatusCode(), msg)
	}
	return &status, nil
}

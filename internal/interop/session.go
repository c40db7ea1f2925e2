// Package interop is the client for the competition judging server. One
// client owns one authenticated session; expired sessions are replaced and
// requests retried transparently.
package interop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Clock supplies generation timestamps for decoded geometry.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// StatusError is a non-2xx, non-forbidden server response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d %s", e.Code, http.StatusText(e.Code))
}

// ErrNoActiveMission means no mission record was flagged active.
var ErrNoActiveMission = errors.New("no active mission")

// Config describes how to reach and authenticate with the server.
type Config struct {
	BaseURL  string
	Username string
	Password string
	// Timeout applies uniformly to every request, including login and the
	// reachability probe.
	Timeout time.Duration
	// Clock defaults to the system clock.
	Clock Clock
}

// Client talks to the interoperability server. Requests are serialized: one
// in flight at a time, so a session replacement never races an in-progress
// request.
type Client struct {
	baseURL string
	creds   url.Values
	timeout time.Duration
	clock   Clock
	logger  zerolog.Logger

	mu      sync.Mutex
	session *http.Client
}

// New builds a client. The caller must WaitForServer and Login before first
// use.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("interop: base URL required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		creds: url.Values{
			"username": {cfg.Username},
			"password": {cfg.Password},
		},
		timeout: cfg.Timeout,
		clock:   clock,
		logger:  logger,
		session: newSession(cfg.Timeout),
	}, nil
}

func newSession(timeout time.Duration) *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{Jar: jar, Timeout: timeout}
}

// WaitForServer blocks until the server answers the unauthenticated probe or
// ctx is canceled. Transport failures are swallowed and retried with capped
// exponential backoff.
func (c *Client) WaitForServer(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 250 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = 0

	probe := &http.Client{Timeout: c.timeout}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
		if err != nil {
			return err
		}
		resp, err := probe.Do(req)
		if err == nil {
			reachable := resp.StatusCode >= 200 && resp.StatusCode < 300
			drain(resp)
			if reachable {
				return nil
			}
		}
		c.logger.Debug().Err(err).Msg("server not reachable yet")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.NextBackOff()):
		}
	}
}

// Login authenticates with the server, binding the current session to the
// cookie it issues.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.login(ctx)
}

// login assumes c.mu is held.
func (c *Client) login(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/login", strings.NewReader(c.creds.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.session.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer drain(resp)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// do sends one request with the current session and returns the response
// body. A forbidden response means the session expired: the session is
// replaced, login runs again and the request is retried, indefinitely,
// bounded only by ctx. Transport failures and other non-2xx statuses
// propagate immediately.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.session.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}

		if resp.StatusCode == http.StatusForbidden {
			drain(resp)
			c.logger.Warn().Str("path", path).Msg("session expired, reauthenticating")
			c.session = newSession(c.timeout)
			if err := c.login(ctx); err != nil {
				return nil, err
			}
			continue
		}

		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &StatusError{Code: resp.StatusCode}
		}
		if readErr != nil {
			return nil, fmt.Errorf("%s %s: read body: %w", method, path, readErr)
		}
		return data, nil
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

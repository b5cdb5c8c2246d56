package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/common"
	"github.com/visahq/visadesk/internal/logging"
)

// HTTPClient is the Client implementation over the backend's REST API.
//
// Every outbound request passes through a RoundTripper that reads the
// persisted token and, when present, attaches it as a bearer credential.
// Unauthenticated requests pass through unchanged; the backend decides
// rejection. A 401 on any response triggers the registered unauthorized
// handler (the session store's invalidation) before the error is returned,
// so session expiry is detected centrally rather than per call site.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger

	mu             sync.Mutex
	onUnauthorized func(ctx context.Context)
}

// bearerTransport attaches the bearer token and a request id to every
// outbound request. It never fails a request because the token could not be
// read; a missing token simply leaves the header unset.
type bearerTransport struct {
	tokens TokenReader
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.tokens != nil {
		if token, err := t.tokens.Token(req.Context()); err == nil && token != "" {
			clone.Header.Set(common.AuthorizationHeader, "Bearer "+token)
		}
	}
	clone.Header.Set(common.RequestIDHeader, uuid.NewString())
	return t.base.RoundTrip(clone)
}

// NewHTTPClient builds a client for the API rooted at baseURL. The timeout
// applies to every request; a timeout surfaces as a generic request error,
// the same as any other network failure.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenReader, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: &bearerTransport{tokens: tokens, base: http.DefaultTransport},
		},
		log: log,
	}
}

// SetUnauthorizedHandler registers the single operation invoked when any
// response comes back 401. The session store registers its Invalidate here;
// keeping the registration post-construction avoids a transport package that
// knows about session state.
func (c *HTTPClient) SetUnauthorizedHandler(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *HTTPClient) notifyUnauthorized(ctx context.Context) {
	c.mu.Lock()
	fn := c.onUnauthorized
	c.mu.Unlock()
	if fn != nil {
		fn(ctx)
	}
}

// do performs one round trip: marshal body, send, map errors, decode out.
// No retries and no backoff; retry policy, if any, belongs to the caller.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := decodeError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			c.log.Warn(ctx, "unauthorized response, invalidating session",
				"method", method, "path", path)
			c.notifyUnauthorized(ctx)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// decodeError extracts the backend's {"message": ...} payload. A body that
// is missing or not JSON still yields an Error carrying the status.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

func (c *HTTPClient) Login(ctx context.Context, in models.LoginInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, in models.RegisterInput) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyToken asks the backend who the persisted token belongs to. Used by
// the session store's startup check.
func (c *HTTPClient) VerifyToken(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *HTTPClient) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+id, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *HTTPClient) SubmitApplication(ctx context.Context, in models.ApplicationInput) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/applications", in, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *HTTPClient) DecideApplication(ctx context.Context, id string, in models.DecisionInput) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPut, "/applications/"+id+"/decision", in, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *HTTPClient) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

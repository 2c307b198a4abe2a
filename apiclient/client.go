// Package apiclient talks to the identity server's admin REST API on behalf of one session.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-console/apipath"
	"github.com/jrsteele09/go-auth-console/authz"
	"github.com/jrsteele09/go-auth-console/internal/errors"
	"github.com/jrsteele09/go-auth-console/internal/metrics"
	"github.com/jrsteele09/go-auth-console/sessions"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
)

const (
	DefaultTimeout  = 30 * time.Second
	RequestIDHeader = "X-Request-ID"
	tracerName      = "go-auth-console/apiclient"
)

// Client is bound to one session. A new login produces a new Client through WithSession.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        *sessions.Session
	store          sessions.TokenStore
	onUnauthorized func()
	timeout        time.Duration
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	paths          apipath.Resolver
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenStore sets the store cleared when the API rejects the session.
func WithTokenStore(store sessions.TokenStore) Option {
	return func(c *Client) { c.store = store }
}

// WithOnUnauthorized registers the hook fired after a 401 cleared the session.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithTimeout bounds every call. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New creates a client for baseURL acting as session. A nil session makes anonymous
// requests, which is only useful for login.
func New(baseURL string, session *sessions.Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		session:    session,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	c.paths = apipath.New(authz.ForSession(session))
	return c
}

// WithSession returns a copy of the client acting as session.
func (c *Client) WithSession(session *sessions.Session) *Client {
	clone := *c
	clone.session = session
	clone.paths = apipath.New(authz.ForSession(session))
	return &clone
}

func (c *Client) Session() *sessions.Session {
	return c.session
}

func (c *Client) Authorization() authz.Context {
	return authz.ForSession(c.session)
}

func (c *Client) Paths() apipath.Resolver {
	return c.paths
}

func (c *Client) Auth() *AuthService {
	return &AuthService{c: c}
}

func (c *Client) Clients() *ClientService {
	return &ClientService{c: c}
}

func (c *Client) Tenants() *TenantService {
	return &TenantService{c: c}
}

func (c *Client) Users() *UserService {
	return &UserService{c: c}
}

func (c *Client) SystemAdmins() *SystemAdminService {
	return &SystemAdminService{c: c}
}

func (c *Client) APIKeys() *APIKeyService {
	return &APIKeyService{c: c}
}

func (c *Client) Logs() *LogService {
	return &LogService{c: c}
}

// do sends one request. body, when not nil, is sent as JSON; out, when not nil, receives
// the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, method+" "+routeOf(path), trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.method", method), attribute.String("url.path", path)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[apiclient %s %s] encode body", method, path)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrapf(err, "[apiclient %s %s] create request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if token := c.session.Token(); token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveAPIRequest(method, 0, start)
		return errors.Wrapf(err, "[apiclient %s %s] send request", method, path)
	}
	defer resp.Body.Close()
	c.metrics.ObserveAPIRequest(method, resp.StatusCode, start)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	log.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("api request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.unauthorized()
		return errors.Wrapf(errors.ErrUnauthorized, "[apiclient %s %s]", method, path)
	case resp.StatusCode >= 300:
		return errors.Wrapf(newAPIError(resp), "[apiclient %s %s]", method, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrapf(errors.ErrDecodeResponse, "[apiclient %s %s] %v", method, path, err)
	}
	return nil
}

// unauthorized ends the session everywhere: the stored token is removed and the hook
// sends the user back to login.
func (c *Client) unauthorized() {
	c.metrics.IncrementSessionsCleared()
	if c.store != nil {
		if err := c.store.Clear(); err != nil {
			log.Err(err).Msg("[apiclient] failed to clear token store")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// routeOf trims the query so span names stay low cardinality.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

func get[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var out T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func list[T any](ctx context.Context, c *Client, path string) ([]*T, error) {
	var out []*T
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []*T{}
	}
	return out, nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var out T
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.Validationf("%s id is required", kind)
	}
	return nil
}

// Package lavatop is a client for the gate.lava.top partner API:
// product/post feed, invoices, subscriptions, sales reports, donation
// links and webhooks.
//
// The client is immutable after construction and safe for concurrent
// use. Every operation performs exactly one request/response cycle;
// there are no retries, no caching and no background work.
package lavatop

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production gate origin.
const DefaultBaseURL = "https://gate.lava.top"

const defaultTimeout = 30 * time.Second

// apiKeyHeader carries the partner API key.
const apiKeyHeader = "X-Api-Key"

type config struct {
	baseURL    string
	apiKey     string
	token      string
	username   string
	password   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	limiter    *rate.Limiter
	meter      metric.MeterProvider
	tracer     trace.TracerProvider
}

type Option func(*config)

// WithAPIKey sets the partner API key, sent as the X-Api-Key header.
func WithAPIKey(key string) Option {
	return func(c *config) { c.apiKey = key }
}

// WithBearerToken sets a token sent as "Authorization: Bearer".
func WithBearerToken(token string) Option {
	return func(c *config) { c.token = token }
}

// WithBasicAuth sets HTTP basic credentials.
func WithBasicAuth(username, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

// WithBaseURL overrides the gate origin (useful for tests and staging).
func WithBaseURL(baseURL string) Option {
	return func(c *config) { c.baseURL = baseURL }
}

// WithHTTPClient supplies a custom transport. The caller keeps
// ownership of connection pooling and TLS settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout of the default transport.
// Ignored when a custom *http.Client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRateLimit caps outgoing requests at rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *config) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithMeterProvider overrides the OpenTelemetry meter provider used for
// request metrics. Defaults to the global provider (a no-op unless the
// application installed one).
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) { c.meter = mp }
}

// WithTracerProvider overrides the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) { c.tracer = tp }
}

// Client talks to gate.lava.top.
//
// All configured credentials are attached to every request: the API-key
// header, the bearer header and basic auth may all be present at once.
// The gate decides which one to honor; the client does not impose a
// precedence of its own.
type Client struct {
	baseURL    string
	apiKey     string
	token      string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
	limiter    *rate.Limiter
	metrics    *instruments
}

// New builds a Client. Without options it targets the production gate
// with no credentials, which is only useful against public endpoints.
func New(opts ...Option) (*Client, error) {
	cfg := &config{
		baseURL: DefaultBaseURL,
		timeout: defaultTimeout,
		logger:  slog.Default(),
		meter:   otel.GetMeterProvider(),
		tracer:  otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if _, err := url.Parse(cfg.baseURL); err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %q", cfg.baseURL)
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	m, err := newInstruments(cfg.meter, cfg.tracer)
	if err != nil {
		return nil, errors.Wrap(err, "init instruments")
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.baseURL, "/"),
		apiKey:     cfg.apiKey,
		token:      cfg.token,
		username:   cfg.username,
		password:   cfg.password,
		httpClient: httpClient,
		logger:     cfg.logger,
		limiter:    cfg.limiter,
		metrics:    m,
	}, nil
}

// do performs one request/response cycle. It returns the raw body on
// any 2xx status and a typed error otherwise.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: encode request body", op)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: build request", op)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}
	// Bearer and basic share the Authorization header; both are added
	// so neither credential is dropped when the caller set both.
	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}
	if c.username != "" && c.password != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(c.username + ":" + c.password))
		req.Header.Add("Authorization", "Basic "+creds)
	}

	ctx, span := c.metrics.start(ctx, op, method)
	defer span.End()

	start := time.Now()
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		c.metrics.record(ctx, op, 0, time.Since(start), err)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.record(ctx, op, resp.StatusCode, time.Since(start), err)
		return nil, &TransportError{Op: op, Err: err}
	}

	c.metrics.record(ctx, op, resp.StatusCode, time.Since(start), nil)
	c.logger.Debug("lava.top request finished",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{Status: resp.StatusCode, Body: respBody}
	}

	return respBody, nil
}

type validatable interface {
	validate() error
}

// decodeJSON unmarshals a 2xx body into dst and runs its schema
// validation. Enum and required-field violations surface as
// ValidationError; malformed JSON surfaces as DecodingError.
func decodeJSON(body []byte, dst any) error {
	if err := json.Unmarshal(body, dst); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return verr
		}
		var derr *DecodingError
		if errors.As(err, &derr) {
			return derr
		}
		return &DecodingError{Err: err}
	}
	if v, ok := dst.(validatable); ok {
		if err := v.validate(); err != nil {
			return err
		}
	}
	return nil
}

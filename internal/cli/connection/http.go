// Package connection provides the HTTP transport for linearcli.
package connection

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/linearcli/internal/infra/buildinfo"
	"github.com/yndnr/linearcli/internal/telemetry/logger"
)

// DefaultEndpoint is Linear's GraphQL endpoint.
const DefaultEndpoint = "https://api.linear.app/graphql"

// DefaultTimeout bounds a single HTTP exchange.
const DefaultTimeout = 30 * time.Second

// Client sends GraphQL requests to Linear.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	limiter  *rate.Limiter
	recorder Recorder
}

// Outcome labels for Recorder observations.
const (
	OutcomeOK           = "ok"
	OutcomeHTTPError    = "http_error"
	OutcomeGraphQLError = "graphql_error"
	OutcomeError        = "error"
)

// Recorder observes finished requests and downloads.
type Recorder interface {
	ObserveRequest(operation, outcome string, latency time.Duration)
	ObserveDownload(outcome string, latency time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, string, time.Duration) {}
func (nopRecorder) ObserveDownload(string, time.Duration)        {}

// Outcome classifies the error returned by Do or Download.
func Outcome(err error) string {
	var se *StatusError
	var ge *GraphQLError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &se):
		return OutcomeHTTPError
	case errors.As(err, &ge):
		return OutcomeGraphQLError
	default:
		return OutcomeError
	}
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the GraphQL endpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less means no cap.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithTransport sets the round tripper of the underlying http.Client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.client.Transport = rt
	}
}

// WithRecorder reports request outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: DefaultTimeout},
		limiter:  rate.NewLimiter(rate.Inf, 0),
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the GraphQL endpoint of the client.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do posts req and decodes the response's data object into out, which may
// be nil. Non-200 statuses yield *StatusError; a non-empty errors array
// yields *GraphQLError.
func (c *Client) Do(ctx context.Context, req Request, out any) (err error) {
	start := time.Now()
	defer func() {
		c.recorder.ObserveRequest(req.OperationName, Outcome(err), time.Since(start))
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter")
	}

	payload, err := json.Marshal(req.body())
	if err != nil {
		return errors.Wrap(err, "marshal request")
	}

	ctx = logger.WithRequestID(ctx, ulid.Make().String())
	log := logger.L(ctx).With("operation", req.OperationName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", buildinfo.UserAgent())
	// Linear takes personal API keys verbatim, without a Bearer scheme.
	httpReq.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return errors.Wrapf(err, "post %s", req.OperationName)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "read %s response", req.OperationName)
	}
	log.Debug("graphql request", "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		err := error(&StatusError{StatusCode: resp.StatusCode, Body: string(raw)})
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			err = errors.WithHint(err, "check the stored api key or run 'linearcli init <apikey>'")
		}
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(err, "decode %s response", req.OperationName)
	}
	if len(env.Errors) > 0 {
		log.Warn("graphql errors", "count", len(env.Errors))
		return &GraphQLError{Operation: req.OperationName, Errors: env.Errors}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "decode %s data", req.OperationName)
	}
	return nil
}

// Download fetches url with a plain GET and writes the body to path.
func (c *Client) Download(ctx context.Context, url, path string) (err error) {
	start := time.Now()
	defer func() {
		c.recorder.ObserveDownload(Outcome(err), time.Since(start))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	httpReq.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return errors.Wrapf(err, "get %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	return writeFile(path, resp.Body)
}

package gameapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mmcdole/gamehub/internal/domain"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	defaultTimeout          = 30 * time.Second
	defaultBreakerThreshold = 5
	userAgent               = "GameHub/1.0"
	requestIDHeader         = "X-Request-ID"
)

// Options configures a Client. Zero values take defaults.
type Options struct {
	Timeout          time.Duration
	BreakerThreshold uint32
	HTTPClient       *http.Client
	Notifier         domain.Notifier
	Logger           *slog.Logger
}

// Client implements domain.GameRepository over the backend JSON API
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[response]
	notifier   domain.Notifier
	logger     *slog.Logger
}

// NewClient creates a new backend API client
func NewClient(baseURL string, opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	threshold := opts.BreakerThreshold
	if threshold == 0 {
		threshold = defaultBreakerThreshold
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		notifier:   opts.Notifier,
		logger:     logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
		Name:    "gameapi",
		Timeout: 15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("api circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// Call performs a JSON request against endpoint and decodes the envelope's
// data into out (which may be nil).
//
// Transport failures (network faults, non-2xx) are logged, notified and
// returned as *domain.APIError. A success=false envelope is returned as
// *domain.RejectedError without error-level logging or notification; the
// caller decides how to surface it.
func (c *Client) Call(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(requestIDHeader, requestID)
	for key, values := range opts.Headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	c.logger.Debug("api request", "method", method, "endpoint", endpoint, "requestID", requestID)

	resp, err := c.breaker.Execute(func() (response, error) {
		return c.do(req)
	})
	if err != nil {
		apiErr := &domain.APIError{Method: method, Endpoint: endpoint, Err: err}
		var statusErr *statusError
		if errors.As(err, &statusErr) {
			apiErr.Status = statusErr.status
			apiErr.Err = nil
		}
		return c.fail(apiErr, requestID)
	}

	if resp.status < 200 || resp.status >= 300 {
		return c.fail(&domain.APIError{Status: resp.status, Method: method, Endpoint: endpoint}, requestID)
	}

	var env Envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		c.logger.Error("JSON parse error", "error", err, "endpoint", endpoint, "bodyLen", len(resp.body), "requestID", requestID)
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !env.Success {
		c.logger.Debug("api request rejected", "endpoint", endpoint, "reason", env.reason(), "requestID", requestID)
		return &domain.RejectedError{Endpoint: endpoint, Message: env.reason()}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.logger.Error("JSON parse error", "error", err, "endpoint", endpoint, "requestID", requestID)
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// statusError marks a server-side status as a breaker failure
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server error: %d", e.status)
}

// do executes the request. Network faults and 5xx count against the breaker;
// 4xx responses are returned normally and mapped by the caller.
func (c *Client) do(req *http.Request) (response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return response{status: resp.StatusCode, body: body}, &statusError{status: resp.StatusCode}
	}
	return response{status: resp.StatusCode, body: body}, nil
}

// fail logs and notifies a transport-level failure, then returns it
func (c *Client) fail(apiErr *domain.APIError, requestID string) error {
	c.logger.Error("api request failed",
		"method", apiErr.Method,
		"endpoint", apiErr.Endpoint,
		"status", apiErr.Status,
		"error", apiErr.Error(),
		"requestID", requestID,
	)
	if c.notifier != nil {
		c.notifier.Notify(domain.Notification{
			Kind:    domain.NotifyError,
			Message: "API call failed: " + apiErr.Error(),
		})
	}
	return apiErr
}

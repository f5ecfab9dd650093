package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hedamo/hedamo-backend/internal/logging"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
	"golang.org/x/time/rate"
)

// Options tunes a Client. Zero values select the defaults.
type Options struct {
	Timeout time.Duration
	// RPS paces outbound calls; zero means unpaced.
	RPS        float64
	Burst      int
	HTTPClient *http.Client
}

// Client handles communication with the external AI service.
// One call per method, never retried; failures come back as *UpstreamError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *Metrics
}

// NewClient creates a new AI service client
func NewClient(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		metrics:    &Metrics{},
	}

	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return c
}

// Metrics exposes the call counters of this client
func (c *Client) Metrics() *Metrics { return c.metrics }

// GenerateQuestions asks the AI service for product questions
func (c *Client) GenerateQuestions(ctx context.Context, req domain.QuestionRequest) (domain.Payload, error) {
	return c.postPayload(ctx, PathGenerateQuestions, req)
}

// ScoreTransparency asks the AI service to score caller answers
func (c *Client) ScoreTransparency(ctx context.Context, req domain.ScoreRequest) (domain.Payload, error) {
	return c.postPayload(ctx, PathTransparencyScore, req)
}

// Forward posts raw caller JSON to path and returns the upstream body verbatim
func (c *Client) Forward(ctx context.Context, path string, raw []byte) (json.RawMessage, error) {
	return c.Post(ctx, path, json.RawMessage(raw))
}

func (c *Client) postPayload(ctx context.Context, path string, body any) (domain.Payload, error) {
	raw, err := c.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	payload, err := domain.DecodePayload(raw)
	if err != nil {
		return nil, &UpstreamError{Path: path, Message: "unexpected response shape from AI service", Err: err}
	}
	return payload, nil
}

// Post sends body as JSON to path and returns the 2xx response body
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	logger := logging.NewLogger(ctx).With("upstream_path", path)
	start := time.Now()

	raw, err := c.do(ctx, path, body)
	duration := time.Since(start)
	c.metrics.record(duration, err)

	if err != nil {
		logger.LogError("upstream_post", err)
		return nil, err
	}

	logger.LogInfof("upstream_post", "upstream call succeeded in %s", duration)
	return raw, nil
}

func (c *Client) do(ctx context.Context, path string, body any) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &UpstreamError{Path: path, Message: fmt.Sprintf("encode request: %v", err), Err: err}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &UpstreamError{Path: path, Message: err.Error(), Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &UpstreamError{Path: path, Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Path: path, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg, ok := detailMessage(errBody)
		if !ok {
			msg = fmt.Sprintf("request failed with status code %d", resp.StatusCode)
		}
		return nil, &UpstreamError{Path: path, Status: resp.StatusCode, Message: msg}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Path: path, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	if !json.Valid(respBody) {
		return nil, &UpstreamError{Path: path, Status: resp.StatusCode, Message: "AI service returned invalid JSON"}
	}

	return json.RawMessage(respBody), nil
}

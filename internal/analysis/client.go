package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/yildizm/spamscope/internal/analysis"

// maxErrorBody caps how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

// Client talks to the analysis service
type Client struct {
	config  *ClientConfig
	client  *http.Client
	baseURL *url.URL
	tracer  trace.Tracer
}

// NewClient creates a new service client
func NewClient(config *ClientConfig) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the configured service root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Endpoint returns the full analysis URL
func (c *Client) Endpoint() string {
	return c.baseURL.JoinPath(AnalyzePath).String()
}

// Analyze posts text to the service and decodes the result. Any transport
// failure, non-2xx status or malformed body is returned as a *ServiceError.
func (c *Client) Analyze(ctx context.Context, text string) (*Result, error) {
	endpoint := c.Endpoint()

	ctx, span := c.tracer.Start(ctx, "analysis.analyze",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.full", endpoint),
			attribute.Int("analysis.text_length", len(text)),
		))
	defer span.End()

	result, err := c.analyze(ctx, endpoint, text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "analysis failed")
		if code := StatusCode(err); code > 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", code))
		}
		return nil, err
	}

	span.SetAttributes(
		attribute.String("analysis.spam_label", result.SpamDetection.Result),
		attribute.Bool("analysis.ai_numeric", result.AIDetection.Percentage.IsNumeric()),
	)
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (c *Client) analyze(ctx context.Context, endpoint, text string) (*Result, error) {
	jsonData, err := json.Marshal(&Request{Text: text})
	if err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeInternal, "failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeInternal, "failed to create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeNetwork, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, NewStatusError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	result, err := DecodeResult(resp.Body)
	if err != nil {
		return nil, NewServiceErrorWithCause(ErrTypeDecode, "failed to decode response", err)
	}

	return result, nil
}

// HealthCheck verifies the service answers on its root path
func (c *Client) HealthCheck(ctx context.Context) error {
	endpoint := c.baseURL.JoinPath(HealthPath).String()

	ctx, span := c.tracer.Start(ctx, "analysis.health_check",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", endpoint)))
	defer span.End()

	err := c.healthCheck(ctx, endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "health check failed")
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

func (c *Client) healthCheck(ctx context.Context, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return NewServiceErrorWithCause(ErrTypeInternal, "failed to create health check request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return NewServiceErrorWithCause(ErrTypeNetwork, "health check failed", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))

	if !isSuccess(resp.StatusCode) {
		herr := NewServiceError(ErrTypeStatus, fmt.Sprintf("health check failed with status %d", resp.StatusCode))
		herr.StatusCode = resp.StatusCode
		return herr
	}
	return nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"fitcoach-api/internal/apperrors"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const (
	responsesPath = "/v1/responses"

	// maxResponseBytes caps how much of an upstream body is read
	maxResponseBytes = 10 << 20
)

// OpenAIConfig configures the OpenAI Responses API client
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClient calls the OpenAI Responses API
type OpenAIClient struct {
	config OpenAIConfig
	client *http.Client
	logger *logrus.Logger
}

// NewOpenAIClient creates a client. A nil httpClient gets a default one; the
// per-call deadline comes from config.Timeout either way.
func NewOpenAIClient(config OpenAIConfig, httpClient *http.Client, logger *logrus.Logger) *OpenAIClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &OpenAIClient{
		config: config,
		client: httpClient,
		logger: logger,
	}
}

// Configured implements Client.Configured
func (c *OpenAIClient) Configured() bool {
	return c.config.APIKey != ""
}

// Model implements Client.Model
func (c *OpenAIClient) Model() string {
	return c.config.Model
}

// CreateResponse implements Client.CreateResponse
func (c *OpenAIClient) CreateResponse(ctx context.Context, req *ResponseRequest) (*Response, error) {
	const op = "completion.CreateResponse"

	if !c.Configured() {
		return nil, apperrors.Configuration(op, "OPENAI_API_KEY is not set", apperrors.ErrMissingCredential)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Internal(op, "failed to encode request", err)
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+responsesPath, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Internal(op, "failed to create request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, c.transportError(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	latency := time.Since(start)
	if err != nil {
		return nil, c.transportError(op, err)
	}

	c.logger.WithFields(logrus.Fields{
		"upstream_status": resp.StatusCode,
		"latency_ms":      float64(latency.Nanoseconds()) / 1000000,
		"model":           req.Model,
	}).Debug("Completion API responded")

	if !gjson.ValidBytes(body) {
		return nil, apperrors.Internal(op, "upstream returned a non-JSON body",
			fmt.Errorf("status %d: %.200q", resp.StatusCode, body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Upstream(op, "OpenAI API error", resp.StatusCode,
			json.RawMessage(body), apperrors.ErrUpstreamStatus)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Latency:    latency,
	}, nil
}

// transportError maps deadline expiry to a 504 upstream error and anything
// else to an internal error
func (c *OpenAIClient) transportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.Upstream(op, "OpenAI API timeout", http.StatusGatewayTimeout,
			map[string]string{"message": fmt.Sprintf("no response within %s", c.config.Timeout)},
			fmt.Errorf("%w: %v", apperrors.ErrUpstreamTimeout, err))
	}
	return apperrors.Internal(op, "request to OpenAI failed", err)
}

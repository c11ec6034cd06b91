package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"fitcoach-api/internal/apperrors"
)

// MockClient is an in-memory implementation of Client for testing
type MockClient struct {
	mu       sync.Mutex
	apiKey   string
	model    string
	status   int
	body     []byte
	err      error
	requests []ResponseRequest
}

// NewMockClient creates a configured MockClient answering 200 with body
func NewMockClient(body string) *MockClient {
	return &MockClient{
		apiKey: "mock-key",
		model:  "mock-model",
		status: http.StatusOK,
		body:   []byte(body),
	}
}

// WithoutCredential makes the mock report itself as unconfigured
func (m *MockClient) WithoutCredential() *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKey = ""
	return m
}

// WithStatus makes the mock answer with the given status and body
func (m *MockClient) WithStatus(status int, body string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
	m.body = []byte(body)
	return m
}

// WithError makes the mock fail every call with err
func (m *MockClient) WithError(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Configured implements Client.Configured
func (m *MockClient) Configured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apiKey != ""
}

// Model implements Client.Model
func (m *MockClient) Model() string {
	return m.model
}

// CreateResponse implements Client.CreateResponse
func (m *MockClient) CreateResponse(ctx context.Context, req *ResponseRequest) (*Response, error) {
	const op = "completion.MockClient"

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, *req)

	if m.apiKey == "" {
		return nil, apperrors.Configuration(op, "OPENAI_API_KEY is not set", apperrors.ErrMissingCredential)
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.status < 200 || m.status > 299 {
		return nil, apperrors.Upstream(op, "OpenAI API error", m.status, rawJSON(m.body), apperrors.ErrUpstreamStatus)
	}

	return &Response{StatusCode: m.status, Body: m.body}, nil
}

// Requests returns every request the mock received
func (m *MockClient) Requests() []ResponseRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ResponseRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

func rawJSON(body []byte) json.RawMessage {
	if !json.Valid(body) {
		b, _ := json.Marshal(string(body))
		return b
	}
	return json.RawMessage(body)
}

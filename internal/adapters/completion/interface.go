package completion

import (
	"context"
	"time"
)

// ResponseRequest is the body sent to the completion endpoint
type ResponseRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// Response is a successful (2xx) answer from the completion endpoint
type Response struct {
	StatusCode int
	Body       []byte        // Raw JSON payload, validated as JSON
	Latency    time.Duration // Time spent waiting on the upstream
}

// Client provides an abstraction over the third-party completion API
type Client interface {
	// Configured reports whether the client holds a credential. Callers check
	// this before parsing input so a misconfigured deployment fails fast.
	Configured() bool

	// Model returns the model identifier sent with every request
	Model() string

	// CreateResponse sends one prompt and returns the raw payload. Non-2xx
	// answers are returned as upstream errors carrying status and payload.
	CreateResponse(ctx context.Context, req *ResponseRequest) (*Response, error)
}

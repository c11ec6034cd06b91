package services

import (
	"context"

	"fitcoach-api/internal/models"
)

// ChatService proxies a single chat message to the completion API
type ChatService interface {
	// Ready reports a configuration error when the service cannot reach the
	// completion API at all. Handlers call it before reading the request body.
	Ready() error

	// Reply validates message, sends it upstream and extracts the reply text
	Reply(ctx context.Context, message string) (*models.ChatResponse, error)
}

// SummaryService renders a member's training and body-composition report
type SummaryService interface {
	// Summarize never fails on malformed input; missing or dirty fields
	// degrade to empty collections and zero values.
	Summarize(ctx context.Context, req *models.SummaryRequest) *models.SummaryResponse
}

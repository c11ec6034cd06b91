package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fitcoach-api/internal/adapters/completion"
	"fitcoach-api/internal/metrics"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	ChatService    ChatService
	SummaryService SummaryService
}

// ServiceConfig holds the dependencies services are built from
type ServiceConfig struct {
	Completion completion.Client
	Location   *time.Location
	Metrics    *metrics.Metrics
	Logger     *logrus.Logger
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(config *ServiceConfig) (*ServiceContainer, error) {
	if config == nil {
		return nil, fmt.Errorf("service config cannot be nil")
	}
	if config.Completion == nil {
		return nil, fmt.Errorf("completion client cannot be nil")
	}

	return &ServiceContainer{
		ChatService:    NewChatService(config.Completion, config.Metrics, config.Logger),
		SummaryService: NewSummaryService(config.Location, config.Logger),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.ChatService == nil {
		return fmt.Errorf("chat service is nil")
	}
	if sc.SummaryService == nil {
		return fmt.Errorf("summary service is nil")
	}
	return nil
}

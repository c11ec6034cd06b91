package server

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"fitcoach-api/internal/adapters/completion"
	"fitcoach-api/internal/config"
	"fitcoach-api/internal/handlers"
	"fitcoach-api/internal/logging"
	"fitcoach-api/internal/metrics"
	"fitcoach-api/internal/services"
)

// Container holds all application dependencies. It is built once and not
// modified afterwards, so Lambda invocations can share it.
type Container struct {
	Config         *config.Config
	Logger         *logrus.Logger
	Metrics        *metrics.Metrics
	ChatService    services.ChatService
	SummaryService services.SummaryService
	ChatHandler    *handlers.ChatHandler
	SummaryHandler *handlers.SummaryHandler
}

// Option customizes container construction
type Option func(*options)

type options struct {
	completion completion.Client
	httpClient *http.Client
	logger     *logrus.Logger
}

// WithCompletionClient replaces the OpenAI client, typically with a mock
func WithCompletionClient(client completion.Client) Option {
	return func(o *options) { o.completion = client }
}

// WithHTTPClient sets the HTTP client used for upstream calls
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithLogger replaces the logger built from configuration
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.New(cfg.Log)
	}

	client := o.completion
	if client == nil {
		client = completion.NewFromConfig(cfg.OpenAI, o.httpClient, logger)
	}
	if !client.Configured() {
		logger.Warn("OPENAI_API_KEY is not set; chat requests will fail with a configuration error")
	}

	m := metrics.New()

	serviceContainer, err := services.NewServiceContainer(&services.ServiceConfig{
		Completion: client,
		Location:   cfg.Summary.Location(),
		Metrics:    m,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}
	if err := serviceContainer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid service container: %w", err)
	}

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Metrics:        m,
		ChatService:    serviceContainer.ChatService,
		SummaryService: serviceContainer.SummaryService,
		ChatHandler:    handlers.NewChatHandler(serviceContainer.ChatService, m, logger),
		SummaryHandler: handlers.NewSummaryHandler(serviceContainer.SummaryService, m, logger),
	}, nil
}

// RouterConfig returns the route configuration for the HTTP server
func (c *Container) RouterConfig() *handlers.RouterConfig {
	return &handlers.RouterConfig{
		ChatService:    c.ChatService,
		SummaryService: c.SummaryService,
		Metrics:        c.Metrics,
		Logger:         c.Logger,
		EnableSwagger:  !c.Config.IsProduction(),
	}
}

// Close cleans up all resources
func (c *Container) Close() error {
	return nil
}

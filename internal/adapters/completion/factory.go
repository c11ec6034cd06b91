package completion

import (
	"net/http"

	"fitcoach-api/internal/config"

	"github.com/sirupsen/logrus"
)

// NewFromConfig creates the OpenAI client described by cfg
func NewFromConfig(cfg config.OpenAIConfig, httpClient *http.Client, logger *logrus.Logger) Client {
	return NewOpenAIClient(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	}, httpClient, logger)
}

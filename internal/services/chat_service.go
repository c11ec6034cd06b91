package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"fitcoach-api/internal/adapters/completion"
	"fitcoach-api/internal/apperrors"
	"fitcoach-api/internal/metrics"
	"fitcoach-api/internal/models"
)

// chatService implements the ChatService interface
type chatService struct {
	client  completion.Client
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewChatService creates a new chat service instance
func NewChatService(client completion.Client, m *metrics.Metrics, logger *logrus.Logger) ChatService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &chatService{
		client:  client,
		metrics: m,
		logger:  logger,
	}
}

// Ready implements ChatService.Ready
func (s *chatService) Ready() error {
	if s.client == nil || !s.client.Configured() {
		return apperrors.Configuration("chat.Ready",
			"OPENAI_API_KEY is not set (check the deployment environment variables)",
			apperrors.ErrMissingCredential)
	}
	return nil
}

// Reply implements ChatService.Reply
func (s *chatService) Reply(ctx context.Context, message string) (*models.ChatResponse, error) {
	const op = "chat.Reply"

	if err := s.Ready(); err != nil {
		return nil, err
	}

	req := &models.ChatRequest{Message: message}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(op, "message field is empty", err)
	}

	start := time.Now()
	resp, err := s.client.CreateResponse(ctx, &completion.ResponseRequest{
		Model: s.client.Model(),
		Input: req.Message,
	})
	s.metrics.ObserveUpstream(upstreamOutcome(err), time.Since(start))
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"error_kind":  apperrors.KindOf(err).String(),
			"status_code": apperrors.HTTPStatus(err),
		}).WithError(err).Warn("Completion request failed")
		return nil, err
	}

	reply := completion.ExtractReply(resp.Body)
	s.metrics.ObserveReplyTier(string(reply.Tier))
	if reply.Tier == completion.TierRaw {
		s.logger.WithField("bytes", len(resp.Body)).Warn("No reply text found, returning raw payload")
	}

	return &models.ChatResponse{Reply: reply.Text}, nil
}

func upstreamOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsTimeout(err):
		return "timeout"
	case apperrors.KindOf(err) == apperrors.KindUpstream:
		return "upstream_error"
	default:
		return "error"
	}
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fitcoach-api/internal/apperrors"
	"fitcoach-api/internal/metrics"
	"fitcoach-api/internal/models"
	"fitcoach-api/internal/services"
	"fitcoach-api/pkg/lambda"
)

const (
	chatHandlerName = "chat"

	internalErrorMessage = "internal server error"
	postOnlyMessage      = "only POST requests are allowed"
)

// ChatHandler proxies chat messages to the completion API
type ChatHandler struct {
	chatService services.ChatService
	metrics     *metrics.Metrics
	logger      *logrus.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService services.ChatService, m *metrics.Metrics, logger *logrus.Logger) *ChatHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ChatHandler{
		chatService: chatService,
		metrics:     m,
		logger:      logger,
	}
}

// @Summary Ask the AI coach
// @Description Proxies one message to the completion API and returns the extracted reply
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat message"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 405 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Router /ai-chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	serveGin(c, h.Handle)
}

// Handle is the framework-agnostic chat endpoint
func (h *ChatHandler) Handle(ctx context.Context, req *lambda.Request) (resp *lambda.Response, err error) {
	log := h.logger.WithFields(logrus.Fields{
		"handler":    chatHandlerName,
		"request_id": req.RequestID,
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Chat handler panicked")
			resp = chatErrorResponse(apperrors.Internal("chat.Handle", internalErrorMessage, fmt.Errorf("%v", r)))
			err = nil
		}
		h.metrics.ObserveRequest(chatHandlerName, resp.StatusCode)
	}()

	switch req.Method {
	case http.MethodOptions:
		return emptyResponse(http.StatusNoContent), nil
	case http.MethodPost:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, contentTypeJSON, models.ErrorResponse{Error: postOnlyMessage}), nil
	}

	if err := h.chatService.Ready(); err != nil {
		log.WithError(err).Error("Chat proxy is not configured")
		return chatErrorResponse(err), nil
	}

	message, err := parseChatMessage(req.Body)
	if err != nil {
		log.WithError(err).Info("Rejected chat request")
		return chatErrorResponse(err), nil
	}

	reply, err := h.chatService.Reply(ctx, message)
	if err != nil {
		status := apperrors.HTTPStatus(err)
		entry := log.WithError(err).WithField("status_code", status)
		if status >= http.StatusInternalServerError {
			entry.Error("Chat request failed")
		} else {
			entry.Info("Chat request rejected")
		}
		return chatErrorResponse(err), nil
	}

	return jsonResponse(http.StatusOK, contentTypeJSON, reply), nil
}

// parseChatMessage reads the message field. An empty body counts as {}, and
// a non-object body or non-string message counts as missing. Only unparsable
// JSON is an error here.
func parseChatMessage(body []byte) (string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", nil
	}
	if !json.Valid(body) {
		return "", apperrors.Validation("chat.parse", "request body is not valid JSON", apperrors.ErrInvalidBody)
	}
	if body[0] != '{' {
		return "", nil
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", apperrors.Validation("chat.parse", "request body is not valid JSON",
			fmt.Errorf("%w: %v", apperrors.ErrInvalidBody, err))
	}

	var message string
	if len(payload.Message) > 0 {
		if err := json.Unmarshal(payload.Message, &message); err != nil {
			return "", nil
		}
	}
	return message, nil
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fitcoach-api/internal/metrics"
	"fitcoach-api/internal/models"
	"fitcoach-api/internal/services"
	"fitcoach-api/pkg/lambda"
)

const (
	summaryHandlerName = "summary"

	// summaryFailureText is the only thing callers see when rendering fails
	summaryFailureText = "internal error, check logs"
)

// SummaryHandler renders workout and body-composition reports
type SummaryHandler struct {
	summaryService services.SummaryService
	metrics        *metrics.Metrics
	logger         *logrus.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService services.SummaryService, m *metrics.Metrics, logger *logrus.Logger) *SummaryHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SummaryHandler{
		summaryService: summaryService,
		metrics:        m,
		logger:         logger,
	}
}

// @Summary Summarize a member's training
// @Description Renders a text report of the selected member's latest session, recent history and Inbody trend. Malformed input never fails the request.
// @Tags summary
// @Accept json
// @Produce json
// @Param request body models.SummaryRequest true "Member data"
// @Success 200 {object} models.SummaryResponse
// @Failure 405 {object} models.SummaryResponse
// @Failure 500 {object} models.SummaryResponse
// @Router /summary [post]
func (h *SummaryHandler) Summary(c *gin.Context) {
	serveGin(c, h.Handle)
}

// Handle is the framework-agnostic summary endpoint
func (h *SummaryHandler) Handle(ctx context.Context, req *lambda.Request) (resp *lambda.Response, err error) {
	log := h.logger.WithFields(logrus.Fields{
		"handler":    summaryHandlerName,
		"request_id": req.RequestID,
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Summary handler panicked")
			resp = jsonResponse(http.StatusInternalServerError, contentTypeJSONUTF8,
				models.SummaryResponse{Text: summaryFailureText})
			err = nil
		}
		h.metrics.ObserveRequest(summaryHandlerName, resp.StatusCode)
	}()

	switch req.Method {
	case http.MethodOptions:
		return emptyResponse(http.StatusOK), nil
	case http.MethodPost:
	default:
		return jsonResponse(http.StatusMethodNotAllowed, contentTypeJSONUTF8,
			models.SummaryResponse{Text: postOnlyMessage}), nil
	}

	summary := h.summaryService.Summarize(ctx, decodeSummaryRequest(req.Body, log))
	return jsonResponse(http.StatusOK, contentTypeJSONUTF8, summary), nil
}

// decodeSummaryRequest never fails: unparsable bodies become an empty request
func decodeSummaryRequest(body []byte, log *logrus.Entry) *models.SummaryRequest {
	var req models.SummaryRequest
	if len(body) == 0 {
		return &req
	}
	if err := json.Unmarshal(body, &req); err != nil {
		log.WithError(err).Debug("Unparsable summary body, treating as empty")
		return &models.SummaryRequest{}
	}
	return &req
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"fitcoach-api/internal/apperrors"
	"fitcoach-api/internal/models"
	"fitcoach-api/pkg/lambda"
)

const (
	contentTypeJSON     = "application/json"
	contentTypeJSONUTF8 = "application/json; charset=utf-8"
)

// corsHeaders returns the headers every response carries
func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
	}
}

// emptyResponse builds a bodiless response, used for preflight requests
func emptyResponse(status int) *lambda.Response {
	return &lambda.Response{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       []byte{},
	}
}

// jsonResponse marshals v into a response with CORS headers
func jsonResponse(status int, contentType string, v interface{}) *lambda.Response {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}

	headers := corsHeaders()
	headers["Content-Type"] = contentType

	return &lambda.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}

// chatErrorResponse maps an error to the chat proxy's error body. Upstream
// failures carry the upstream payload; internal failures carry the error text.
func chatErrorResponse(err error) *lambda.Response {
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return jsonResponse(status, contentTypeJSON, models.ErrorResponse{
			Error:  internalErrorMessage,
			Detail: err.Error(),
		})
	}

	body := models.ErrorResponse{Error: appErr.Message}
	switch appErr.Kind {
	case apperrors.KindUpstream:
		body.Detail = appErr.Detail
	case apperrors.KindInternal:
		body.Error = internalErrorMessage
		if appErr.Err != nil {
			body.Detail = appErr.Err.Error()
		} else {
			body.Detail = appErr.Message
		}
	}

	return jsonResponse(status, contentTypeJSON, body)
}

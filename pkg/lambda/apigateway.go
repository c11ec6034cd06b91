package lambda

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID on every response
const RequestIDHeader = "X-Request-ID"

// FromAPIGateway converts an API Gateway proxy event to a generic request.
// The request ID prefers the caller's header, then the gateway's own ID.
func FromAPIGateway(event events.APIGatewayProxyRequest) *Request {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(event.Body); err == nil {
			body = decoded
		}
	}

	req := &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     event.Headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
	}

	req.RequestID = req.Header(RequestIDHeader)
	if req.RequestID == "" {
		req.RequestID = event.RequestContext.RequestID
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	return req
}

// ToAPIGateway converts a generic response to an API Gateway proxy response
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       string(resp.Body),
	}
}

// Adapt wraps h as an API Gateway handler suitable for lambda.Start. Handler
// errors become a bare 500 so the runtime never sees a failed invocation.
func Adapt(h HandlerFunc) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req := FromAPIGateway(event)

		resp, err := h(ctx, req)
		if err != nil || resp == nil {
			resp = &Response{
				StatusCode: http.StatusInternalServerError,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       []byte(`{"error": "Internal server error"}`),
			}
		}
		resp.SetHeader(RequestIDHeader, req.RequestID)

		return ToAPIGateway(resp), nil
	}
}

package models

// ChatRequest is the body accepted by the AI chat proxy
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the reply extracted from the completion API
type ChatResponse struct {
	Reply string `json:"reply"`
}

// SummaryRequest is the body accepted by the workout summarizer. Every field is
// optional and decodes leniently.
type SummaryRequest struct {
	Message  FlexString         `json:"message"`
	MemberID FlexString         `json:"memberId"`
	Members  List[Member]       `json:"members"`
	Sessions List[Session]      `json:"sessions"`
	Inbody   List[InbodyRecord] `json:"inbody"`
}

// SummaryResponse carries the rendered text report
type SummaryResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the error body of the chat proxy
type ErrorResponse struct {
	Error  string      `json:"error"`
	Detail interface{} `json:"detail,omitempty"`
}

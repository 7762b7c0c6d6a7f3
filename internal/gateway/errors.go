package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/llm"
)

// User-facing error messages.
const (
	msgMethodNotAllowed = "Only POST requests are allowed"
	msgMissingAPIKey    = "API key is not configured on the server. Please contact support."
	msgInvalidBody      = "Request body must be a JSON object."
	msgPromptRequired   = "A prompt is required."
	msgPromptNotString  = "Prompt must be a string."
	msgMalformedOutput  = llm.MalformedOutputMessage
	msgUpstreamFailed   = core.GenerationFailedMessage
	msgUnknownDomain    = "Unknown checklist domain."
	msgStaleGeneration  = "The checklist view changed before generation finished."
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error is returned by Client when the gateway replies with a non-2xx status.
type Error struct {
	Status  int
	Message string
	Details string
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("gateway error (status %d): %s (%s)", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("gateway error (status %d): %s", e.Status, e.Message)
}

// UserMessage returns the gateway's error text.
func (e *Error) UserMessage() string { return e.Message }

// classify maps a generation failure to a status and response body.
func classify(err error) (int, ErrorResponse) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, ErrorResponse{Error: verr.Error()}
	}

	if errors.Is(err, llm.ErrMissingAPIKey) {
		return http.StatusInternalServerError, ErrorResponse{Error: msgMissingAPIKey}
	}

	var malformed *llm.MalformedOutputError
	if errors.As(err, &malformed) {
		return http.StatusInternalServerError, ErrorResponse{Error: msgMalformedOutput, Details: malformed.Detail()}
	}

	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		msg := upstream.Message
		if msg == "" {
			msg = msgUpstreamFailed
		}
		return upstream.HTTPStatus(), ErrorResponse{Error: msg}
	}

	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Status, ErrorResponse{Error: gerr.Message, Details: gerr.Details}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: msgUpstreamFailed}
}

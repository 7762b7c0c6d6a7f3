package llm

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"

	"github.com/dhabedank/genchecklist/internal/core"
)

// ExcerptLimit caps how much of an unparsable response is kept for logs.
const ExcerptLimit = 500

// fencePattern matches a whole-text markdown code fence with an optional
// language tag. The body may share the opening line or start on the next; a
// tag must be followed by whitespace so a bare literal like ```true``` is
// kept as the body.
var fencePattern = regexp.MustCompile("(?s)^```(?:[A-Za-z][\\w+-]*(?:[ \\t]*\\n|[ \\t]+))?[ \\t]*\\n?(.*?)\\n?\\s*```$")

// untaggedFencePattern reads everything inside the fence as the body.
var untaggedFencePattern = regexp.MustCompile("(?s)^```[ \\t]*\\n?(.*?)\\n?\\s*```$")

// MalformedOutputMessage is the user-facing text for a response that did not
// parse as JSON.
const MalformedOutputMessage = "AI response was not valid JSON after cleaning."

// UpstreamError is a failure reported by the model provider.
type UpstreamError struct {
	Status  int // provider HTTP status, 0 when unknown
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
	}
	return "upstream error: " + e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// UserMessage returns the provider's message, or "" when it sent none.
func (e *UpstreamError) UserMessage() string { return e.Message }

// HTTPStatus returns Status when it is a 4xx or 5xx code, else 500.
func (e *UpstreamError) HTTPStatus() int {
	if e.Status >= 400 && e.Status <= 599 {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MalformedOutputError means the model text was not JSON after fence stripping.
// Err and Excerpt quote the model text and belong in logs only.
type MalformedOutputError struct {
	Err     error
	Excerpt string // first ExcerptLimit characters of the cleaned text
	Length  int    // length of the cleaned text in bytes
}

func (e *MalformedOutputError) Error() string {
	return "AI response was not valid JSON after cleaning: " + e.Err.Error()
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) UserMessage() string { return MalformedOutputMessage }

// Detail describes the failure without quoting the model text.
func (e *MalformedOutputError) Detail() string {
	if e.Length == 0 {
		return "the cleaned response was empty"
	}
	return fmt.Sprintf("the cleaned response (%d bytes) is not a JSON document", e.Length)
}

// StripFence trims text and removes a surrounding markdown code fence.
func StripFence(text string) string {
	cleaned := strings.TrimSpace(text)
	m := fencePattern.FindStringSubmatch(cleaned)
	if m == nil {
		return cleaned
	}
	body := strings.TrimSpace(m[1])
	if body == "" {
		// "```true\n```": the only word was taken as a tag.
		if m := untaggedFencePattern.FindStringSubmatch(cleaned); m != nil {
			body = strings.TrimSpace(m[1])
		}
	}
	return body
}

// DecodeResponse strips fences from raw and parses it as JSON. cleaned is
// returned even on failure.
func DecodeResponse(raw string) (value any, cleaned string, err error) {
	cleaned = StripFence(raw)
	if jerr := sonic.UnmarshalString(cleaned, &value); jerr != nil {
		return nil, cleaned, &MalformedOutputError{Err: jerr, Excerpt: excerpt(cleaned, ExcerptLimit), Length: len(cleaned)}
	}
	return value, cleaned, nil
}

func excerpt(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

// Direct satisfies core.Requester by calling a Generator in-process.
type Direct struct {
	Generator Generator
}

func (d Direct) Request(ctx context.Context, req core.GenerationRequest) (any, error) {
	if req.ResponseMimeType == "" {
		req.ResponseMimeType = core.JSONMimeType
	}
	raw, err := d.Generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	value, _, err := DecodeResponse(raw)
	return value, err
}

package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/llm"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	e, _ := newTestEcho(t, opts)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRequest(t *testing.T) {
	gen := &stubGenerator{text: "```json\n" + tripResponse + "\n```"}
	srv := newTestServer(t, Options{Generator: gen})

	temp := 0.5
	value, err := NewClient(srv.URL+"/", 5*time.Second).Request(context.Background(), core.GenerationRequest{
		Prompt:      "pack for the beach",
		ModelName:   "gemini-2.5-flash",
		Temperature: &temp,
	})
	require.NoError(t, err)

	root, ok := value.(map[string]any)
	require.True(t, ok, "value = %T", value)
	assert.Len(t, root["categories"], 2)

	assert.Equal(t, "pack for the beach", gen.Last().Prompt)
	assert.Equal(t, "gemini-2.5-flash", gen.Last().ModelName)
	require.NotNil(t, gen.Last().Temperature)
	assert.InDelta(t, 0.5, *gen.Last().Temperature, 1e-9)
}

func TestClientSurfacesServerError(t *testing.T) {
	srv := newTestServer(t, Options{Generator: &stubGenerator{err: &llm.UpstreamError{Status: 429, Message: "quota exceeded"}}})

	_, err := NewClient(srv.URL, 0).Request(context.Background(), core.GenerationRequest{Prompt: "p"})
	var gerr *Error
	require.True(t, errors.As(err, &gerr), "err = %v", err)
	assert.Equal(t, http.StatusTooManyRequests, gerr.Status)
	assert.Equal(t, "quota exceeded", gerr.Message)

	status, resp := classify(err)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "quota exceeded", resp.Error)
}

func TestClientMalformedOutputDetails(t *testing.T) {
	srv := newTestServer(t, Options{Generator: &stubGenerator{text: "not json"}})

	_, err := NewClient(srv.URL, 0).Request(context.Background(), core.GenerationRequest{Prompt: "p"})
	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusInternalServerError, gerr.Status)
	assert.Equal(t, msgMalformedOutput, gerr.Message)
	assert.NotEmpty(t, gerr.Details)
}

func TestClientNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 0).Request(context.Background(), core.GenerationRequest{Prompt: "p"})
	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusBadGateway, gerr.Status)
	assert.Equal(t, "Bad Gateway", gerr.Message)
}

func TestClientDrivesPipeline(t *testing.T) {
	srv := newTestServer(t, Options{Generator: &stubGenerator{text: `{"timeline":"not an array"}`}})

	cl, err := core.Generate(context.Background(), NewClient(srv.URL, 0), core.MovingDetails{MoveType: core.MoveLocal}, core.GenerateOptions{Logger: quietLogger()})
	require.NoError(t, err)
	assert.True(t, cl.IsEmpty())
	assert.Equal(t, core.DomainMoving, cl.Domain)
}

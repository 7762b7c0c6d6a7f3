package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/dhabedank/genchecklist/internal/core"
)

// GeminiGenerator calls the Gemini API through google.golang.org/genai.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini adapter. The key comes from
// config.APIKey or GEMINI_API_KEY.
func NewGeminiGenerator(ctx context.Context, config Config) (*GeminiGenerator, error) {
	config.Provider = ProviderGemini
	apiKey, err := config.resolveAPIKey()
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultModel(ProviderGemini)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Name() string {
	return "gemini"
}

func (g *GeminiGenerator) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	model := req.ModelName
	if model == "" {
		model = g.model
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: req.ResponseMimeType,
	}
	if req.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*req.Temperature))
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", geminiError(err)
	}
	return resp.Text(), nil
}

// geminiError maps SDK errors to *UpstreamError, keeping the HTTP code when
// the API reported one.
func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Status
		}
		return &UpstreamError{Status: apiErr.Code, Message: msg, Err: err}
	}
	return &UpstreamError{Message: err.Error(), Err: err}
}

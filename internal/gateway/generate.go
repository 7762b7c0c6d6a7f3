package gateway

import (
	"bytes"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/llm"
)

// generate proxies one prompt to the upstream model and replies with the
// model's JSON, unwrapped from any markdown fence.
func (s *Server) generate(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: msgMethodNotAllowed})
	}

	if s.generator == nil {
		s.logger.WithError(s.configErr).Error("generation requested but the upstream API key is not configured")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgMissingAPIKey})
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
	}
	var payload map[string]any
	if len(bytes.TrimSpace(body)) > 0 {
		if err := sonic.Unmarshal(body, &payload); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
		}
	}

	req, msg := parseGenerationRequest(payload)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	}

	fields := log.Fields{
		"generator":    s.generator.Name(),
		"model":        req.ModelName,
		"prompt_chars": len(req.Prompt),
	}
	start := time.Now()
	raw, err := s.generator.Generate(c.Request().Context(), req)
	if err != nil {
		status, resp := classify(err)
		s.logger.WithFields(fields).WithError(err).WithField("status", status).Error("upstream generation failed")
		return c.JSON(status, resp)
	}

	_, cleaned, err := llm.DecodeResponse(raw)
	if err != nil {
		entry := s.logger.WithFields(fields).WithError(err)
		var malformed *llm.MalformedOutputError
		if errors.As(err, &malformed) {
			entry = entry.WithField("excerpt", malformed.Excerpt)
		}
		entry.Error("failed to parse JSON from model response")
		status, resp := classify(err)
		return c.JSON(status, resp)
	}

	s.logger.WithFields(fields).WithFields(log.Fields{
		"response_chars": len(cleaned),
		"duration_ms":    time.Since(start).Milliseconds(),
	}).Info("generation complete")
	return c.JSONBlob(http.StatusOK, []byte(cleaned))
}

// parseGenerationRequest validates the wire body. It returns a user-facing
// message when the prompt is missing or not a string.
func parseGenerationRequest(payload map[string]any) (core.GenerationRequest, string) {
	prompt := payload["prompt"]
	if !truthy(prompt) {
		return core.GenerationRequest{}, msgPromptRequired
	}
	text, ok := prompt.(string)
	if !ok {
		return core.GenerationRequest{}, msgPromptNotString
	}

	req := core.GenerationRequest{
		Prompt:           text,
		ResponseMimeType: core.JSONMimeType,
	}
	if model, ok := payload["modelName"].(string); ok {
		req.ModelName = model
	}
	if mime, ok := payload["responseMimeType"].(string); ok && mime != "" {
		req.ResponseMimeType = mime
	}
	if temp, ok := payload["temperature"].(float64); ok && !math.IsNaN(temp) {
		req.Temperature = &temp
	}
	return req, ""
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

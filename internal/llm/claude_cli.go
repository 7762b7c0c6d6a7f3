package llm

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/dhabedank/genchecklist/internal/core"
)

// ClaudeCLIAdapter uses the Claude Code CLI for generation.
// No API key is needed when the CLI is already authenticated.
type ClaudeCLIAdapter struct {
	model string
}

// NewClaudeCLIAdapter creates a Claude CLI adapter.
func NewClaudeCLIAdapter(config Config) *ClaudeCLIAdapter {
	model := config.Model
	if model == "" {
		model = DefaultModel(ProviderClaudeCLI)
	}
	return &ClaudeCLIAdapter{model: model}
}

func (a *ClaudeCLIAdapter) Name() string {
	return "claude-cli"
}

// IsAvailable checks if the claude CLI is installed.
func (a *ClaudeCLIAdapter) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

// Generate ignores req.Temperature; the CLI does not expose it.
func (a *ClaudeCLIAdapter) Generate(ctx context.Context, req core.GenerationRequest) (string, error) {
	systemFile, err := os.CreateTemp("", "genchecklist-system-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create system prompt file: %w", err)
	}
	defer os.Remove(systemFile.Name())

	if _, err := systemFile.WriteString(jsonSystemPrompt); err != nil {
		systemFile.Close()
		return "", fmt.Errorf("failed to write system prompt: %w", err)
	}
	systemFile.Close()

	model := req.ModelName
	if model == "" {
		model = a.model
	}

	cmd := exec.CommandContext(ctx, "claude",
		"--model", model,
		"--system-prompt-file", systemFile.Name(),
		"--print",
		"--output-format", "text",
	)
	cmd.Stdin = strings.NewReader(req.Prompt)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", &UpstreamError{Message: "claude CLI failed: " + strings.TrimSpace(string(exitErr.Stderr)), Err: err}
		}
		return "", &UpstreamError{Message: "claude CLI failed: " + err.Error(), Err: err}
	}
	return string(output), nil
}

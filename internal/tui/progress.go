package tui

import (
	"fmt"
	"time"

	"github.com/dhabedank/genchecklist/internal/core"
)

// GenerationInfo describes one generation for the non-interactive output.
type GenerationInfo struct {
	Domain      core.Domain
	Model       string
	PromptChars int
	OutputChars int
	Duration    time.Duration
	Groups      int
	Items       int
}

// RenderGenerationStart returns the line printed before a request is sent.
func RenderGenerationStart(domain core.Domain, model string, promptChars int) string {
	return fmt.Sprintf("%s %s  %s  ~%s input tokens",
		SpinnerStyle.Render("→"),
		DomainStyle.Render(domain.String()),
		ModelStyle.Render(displayModel(model)),
		FormatTokens(EstimateTokens(promptChars)),
	)
}

// RenderGenerationComplete returns the line printed after a checklist arrives.
func RenderGenerationComplete(info GenerationInfo) string {
	inputTokens := EstimateTokens(info.PromptChars)
	outputTokens := EstimateTokens(info.OutputChars)
	cost := EstimateCost(info.Model, inputTokens, outputTokens)

	return fmt.Sprintf("%s %s  %d groups / %d items  %s  ~%s tokens  %s",
		SuccessStyle.Render("✓"),
		DomainStyle.Render(info.Domain.String()),
		info.Groups,
		info.Items,
		HelpStyle.Render(info.Duration.Truncate(100*time.Millisecond).String()),
		FormatTokens(inputTokens+outputTokens),
		CostStyle.Render(FormatCost(cost)),
	)
}

// RenderGenerationFailed returns the line printed when a request fails.
func RenderGenerationFailed(domain core.Domain, err error) string {
	return fmt.Sprintf("%s %s  %s",
		ErrorStyle.Render("✗"),
		DomainStyle.Render(domain.String()),
		ErrorStyle.Render(err.Error()),
	)
}

func displayModel(model string) string {
	if model == "" {
		return "default model"
	}
	return model
}

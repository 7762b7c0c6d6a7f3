package llm

import (
	"os"
	"os/exec"
	"strings"
)

// ModelInfo describes a selectable model.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "gemini-2.5-flash")
	Name        string // Human-readable name
	Description string // Brief description
	Provider    string // Provider name (gemini, anthropic)
}

// geminiModels lists Gemini models usable through the genai SDK.
var geminiModels = []ModelInfo{
	{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Description: "Fast, JSON mode, default ($0.30/$2.50 per MTok)", Provider: ProviderGemini},
	{ID: "gemini-2.5-flash-lite", Name: "Gemini 2.5 Flash-Lite", Description: "Cheapest option ($0.10/$0.40 per MTok)", Provider: ProviderGemini},
	{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro", Description: "Most capable Gemini ($1.25/$10 per MTok)", Provider: ProviderGemini},
	{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Description: "Previous generation flash model", Provider: ProviderGemini},
}

// claudeModels lists Claude models for the API and CLI adapters.
var claudeModels = []ModelInfo{
	{ID: "claude-sonnet-4-5-20250929", Name: "Claude Sonnet 4.5", Description: "Best balance of speed and capability ($3/$15 per MTok)", Provider: ProviderAnthropic},
	{ID: "claude-haiku-4-5-20251001", Name: "Claude Haiku 4.5", Description: "Fastest, most cost-effective ($1/$5 per MTok)", Provider: ProviderAnthropic},
	{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet 4", Description: "Previous balanced model ($3/$15 per MTok)", Provider: ProviderAnthropic},
	{ID: "claude-opus-4-1-20250805", Name: "Claude Opus 4.1", Description: "Premium model ($15/$75 per MTok)", Provider: ProviderAnthropic},
}

// AvailableModels returns models grouped by provider, limited to providers
// whose credential or CLI is present.
func AvailableModels() map[string][]ModelInfo {
	result := make(map[string][]ModelInfo)

	if os.Getenv("GEMINI_API_KEY") != "" {
		result[ProviderGemini] = geminiModels
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		result[ProviderAnthropic] = claudeModels
	} else if _, err := exec.LookPath("claude"); err == nil {
		result[ProviderClaudeCLI] = claudeModels
	}

	return result
}

// AllModels returns every catalogued model, Gemini first.
func AllModels() []ModelInfo {
	result := make([]ModelInfo, 0, len(geminiModels)+len(claudeModels))
	result = append(result, geminiModels...)
	return append(result, claudeModels...)
}

// ProviderForModel guesses the provider from a model id.
func ProviderForModel(model string) string {
	if strings.HasPrefix(model, "claude") {
		return ProviderAnthropic
	}
	return ProviderGemini
}

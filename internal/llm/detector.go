package llm

import (
	"fmt"
	"os"
	"os/exec"
)

// ProviderAuto picks the first usable provider at startup.
const ProviderAuto = "auto"

// DetectProvider finds the best configured provider.
// Priority: Gemini API > Anthropic API > Claude CLI
func DetectProvider() (string, error) {
	if os.Getenv(GeminiAPIKeyEnv) != "" {
		return ProviderGemini, nil
	}
	if os.Getenv(AnthropicAPIKeyEnv) != "" {
		return ProviderAnthropic, nil
	}
	if _, err := exec.LookPath("claude"); err == nil {
		return ProviderClaudeCLI, nil
	}
	return "", fmt.Errorf("%w: set GEMINI_API_KEY or ANTHROPIC_API_KEY, or install Claude Code", ErrMissingAPIKey)
}

// ListAvailableProviders returns every provider that could be used.
func ListAvailableProviders() []string {
	models := AvailableModels()
	available := []string{}
	for _, provider := range []string{ProviderGemini, ProviderAnthropic, ProviderClaudeCLI} {
		if _, ok := models[provider]; ok {
			available = append(available, provider)
		}
	}
	return available
}

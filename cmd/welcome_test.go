package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/genchecklist/internal/llm"
)

func TestIsFirstRun(t *testing.T) {
	home := t.TempDir()
	assert.True(t, isFirstRun(home))

	markWelcomed(home)
	assert.False(t, isFirstRun(home))

	withConfig := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(withConfig, ConfigFileName), []byte("model: x\n"), 0644))
	assert.False(t, isFirstRun(withConfig), "a saved config means setup already ran")
}

func TestWelcomeMessage(t *testing.T) {
	none := welcomeMessage(nil)
	assert.Contains(t, none, "No provider found")
	assert.Contains(t, none, llm.GeminiAPIKeyEnv)
	assert.Contains(t, none, llm.AnthropicAPIKeyEnv)

	some := welcomeMessage([]string{llm.ProviderGemini, llm.ProviderClaudeCLI})
	assert.NotContains(t, some, "No provider found")
	assert.Contains(t, some, "Ready to generate with")
	assert.Contains(t, some, "also available: "+llm.ProviderClaudeCLI)
}

func TestWelcomeShownOnce(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	Welcome(ServeCmd)
	assert.True(t, isFirstRun(home), "serve does not consume the welcome")

	Welcome(SetupCmd)
	assert.False(t, isFirstRun(home))
	assert.FileExists(t, filepath.Join(home, welcomeMarker))
}

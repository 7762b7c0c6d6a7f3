package cmd

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhabedank/genchecklist/internal/llm"
)

func TestSetupWizardSelectsModelAndFormat(t *testing.T) {
	var m tea.Model = newSetupModel(llm.AllModels())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	final := m.(setupModel)
	assert.False(t, final.cancelled)
	assert.Equal(t, llm.AllModels()[0].ID, final.model)
	assert.Equal(t, "json", final.format)
	assert.Empty(t, final.View())
}

func TestSetupWizardCancel(t *testing.T) {
	var m tea.Model = newSetupModel(llm.AllModels())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.(setupModel).cancelled)
}

func TestProviderForSetup(t *testing.T) {
	cli := map[string][]llm.ModelInfo{llm.ProviderClaudeCLI: nil}
	api := map[string][]llm.ModelInfo{llm.ProviderAnthropic: nil, llm.ProviderClaudeCLI: nil}

	assert.Equal(t, llm.ProviderGemini, providerForSetup("gemini-2.5-flash", cli))
	assert.Equal(t, llm.ProviderClaudeCLI, providerForSetup("claude-sonnet-4-20250514", cli))
	assert.Equal(t, llm.ProviderAnthropic, providerForSetup("claude-sonnet-4-20250514", api))
	assert.Equal(t, llm.ProviderAnthropic, providerForSetup("claude-sonnet-4-20250514", nil))
}

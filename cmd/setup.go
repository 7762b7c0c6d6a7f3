package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/tui"
)

var resetConfig bool

// SetupCmd represents the setup command.
var SetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	Long: `Configure genchecklist with an interactive wizard.

This wizard asks for:
- Model: the model checklists are generated with
- Export format: what --export and the terminal UI write (pdf or json)

Configuration is saved to ~/.genchecklist.yaml`,
	RunE: runSetup,
}

func init() {
	SetupCmd.Flags().BoolVar(&resetConfig, "reset", false, "Reset configuration to defaults")
}

func runSetup(cmd *cobra.Command, args []string) error {
	configPath := userConfigPath()

	// Handle reset
	if resetConfig {
		if err := os.Remove(configPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove config: %w", err)
		}
		fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration reset to defaults")
		fmt.Printf("  Removed: %s\n", configPath)
		return nil
	}

	if err := loadEnv(); err != nil {
		return err
	}
	available := llm.AvailableModels()
	if providers := llm.ListAvailableProviders(); len(providers) == 0 {
		fmt.Println(tui.WarningStyle.Render("!") + " No provider detected. Set GEMINI_API_KEY or ANTHROPIC_API_KEY, or install Claude Code.")
		fmt.Println("  Showing every model; the choice takes effect once a credential is set.")
	} else {
		fmt.Printf("Detected providers: %s\n", tui.ModelStyle.Render(strings.Join(providers, ", ")))
	}

	p := tea.NewProgram(newSetupModel(llm.AllModels()))
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	finalModel := m.(setupModel)
	if finalModel.cancelled {
		fmt.Println("Setup cancelled")
		return nil
	}

	// Keep unrelated settings from an existing file.
	config := configFileData{}
	if existing, err := readConfigFile(configPath); err == nil {
		config = *existing
	}
	config.Model = finalModel.model
	config.Provider = providerForSetup(finalModel.model, available)
	config.Format = finalModel.format

	if err := saveConfigFile(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println(tui.SuccessStyle.Render("✓") + " Configuration saved to " + configPath)
	fmt.Println()
	fmt.Printf("  Model:    %s (%s)\n", tui.ModelStyle.Render(config.Model), config.Provider)
	fmt.Printf("  Export:   %s\n", tui.ModelStyle.Render(config.Format))

	return nil
}

// providerForSetup picks the provider that can serve model, preferring the
// API over the CLI for Claude models.
func providerForSetup(model string, available map[string][]llm.ModelInfo) string {
	provider := llm.ProviderForModel(model)
	if provider != llm.ProviderAnthropic {
		return provider
	}
	if _, ok := available[llm.ProviderAnthropic]; ok {
		return llm.ProviderAnthropic
	}
	if _, ok := available[llm.ProviderClaudeCLI]; ok {
		return llm.ProviderClaudeCLI
	}
	return llm.ProviderAnthropic
}

// Bubble Tea model for the setup wizard

const (
	stepModel = iota
	stepFormat
	stepCount
)

type setupModel struct {
	step      int
	lists     [stepCount]list.Model
	model     string
	format    string
	cancelled bool
	width     int
	height    int
}

type choiceItem struct {
	id, title, desc string
}

func (c choiceItem) Title() string       { return c.title }
func (c choiceItem) Description() string { return c.desc }
func (c choiceItem) FilterValue() string { return c.title }

func newSetupModel(models []llm.ModelInfo) setupModel {
	modelItems := make([]list.Item, len(models))
	for i, m := range models {
		modelItems[i] = choiceItem{id: m.ID, title: m.Name, desc: m.Description}
	}
	formatItems := []list.Item{
		choiceItem{id: "pdf", title: "PDF", desc: "Printable tables, one per group"},
		choiceItem{id: "json", title: "JSON", desc: "The normalized checklist, for other tools"},
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(tui.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(tui.ColorMuted)

	newList := func(items []list.Item, title string) list.Model {
		l := list.New(items, delegate, 60, 14)
		l.Title = title
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.Styles.Title = tui.TitleStyle
		return l
	}

	var m setupModel
	m.lists[stepModel] = newList(modelItems, "Select Model")
	m.lists[stepFormat] = newList(formatItems, "Select Export Format")
	return m
}

func (m setupModel) Init() tea.Cmd {
	return nil
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.lists {
			m.lists[i].SetWidth(msg.Width)
			m.lists[i].SetHeight(msg.Height - 4)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.lists[m.step].SelectedItem().(choiceItem); ok {
				switch m.step {
				case stepModel:
					m.model = item.id
				case stepFormat:
					m.format = item.id
				}
			}

			m.step++
			if m.step >= stepCount {
				return m, tea.Quit
			}
			return m, nil

		case "left", "h":
			if m.step > 0 {
				m.step--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists[m.step], cmd = m.lists[m.step].Update(msg)
	return m, cmd
}

func (m setupModel) View() string {
	if m.cancelled || m.step >= stepCount {
		return ""
	}

	steps := []string{"Model", "Export"}
	progress := "\n  "
	for i, s := range steps {
		if i == m.step {
			progress += tui.SelectedStyle.Render(fmt.Sprintf("[%s]", s))
		} else if i < m.step {
			progress += tui.SuccessStyle.Render(fmt.Sprintf("✓ %s", s))
		} else {
			progress += tui.UnselectedStyle.Render(fmt.Sprintf("○ %s", s))
		}
		if i < len(steps)-1 {
			progress += " → "
		}
	}
	progress += "\n\n"

	help := tui.HelpStyle.Render("\n  ↑/↓: navigate • enter: select • ←: back • q: quit")

	return progress + m.lists[m.step].View() + help
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/tui"
)

// welcomeMarker is created under $HOME once the welcome has been shown.
const welcomeMarker = ".genchecklist/.initialized"

// Welcome prints a one-time getting-started notice naming the providers that
// are usable right now. It stays quiet for serve, once setup has saved a
// config, and after it has been shown.
func Welcome(c *cobra.Command) {
	if c.Name() == ServeCmd.Name() {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil || !isFirstRun(home) {
		return
	}
	_ = loadEnv()
	fmt.Print(welcomeMessage(llm.ListAvailableProviders()))
	markWelcomed(home)
}

func isFirstRun(home string) bool {
	for _, p := range []string{ConfigFileName, welcomeMarker} {
		if _, err := os.Stat(filepath.Join(home, p)); err == nil {
			return false
		}
	}
	return true
}

func markWelcomed(home string) {
	path := filepath.Join(home, welcomeMarker)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	_ = os.WriteFile(path, []byte{}, 0644)
}

func welcomeMessage(providers []string) string {
	var b strings.Builder
	b.WriteString("\n" + tui.TitleStyle.Render("*") + " Welcome to genchecklist!\n\n")

	if len(providers) == 0 {
		b.WriteString("  " + tui.WarningStyle.Render("!") + " No provider found yet. Set one of:\n")
		fmt.Fprintf(&b, "      %s  (default, Gemini)\n", tui.ModelStyle.Render(llm.GeminiAPIKeyEnv))
		fmt.Fprintf(&b, "      %s  (Claude)\n", tui.ModelStyle.Render(llm.AnthropicAPIKeyEnv))
		b.WriteString("    in the environment or a .env file, or point --gateway at a running server.\n\n")
	} else {
		fmt.Fprintf(&b, "  Ready to generate with %s", tui.ModelStyle.Render(providers[0]))
		if len(providers) > 1 {
			fmt.Fprintf(&b, " (also available: %s)", strings.Join(providers[1:], ", "))
		}
		b.WriteString(".\n\n")
	}

	b.WriteString("  Quick start:\n")
	fmt.Fprintf(&b, "    1. Pick a default model and export format: %s\n", tui.ModelStyle.Render("genchecklist setup"))
	fmt.Fprintf(&b, "    2. Plan something: %s\n", tui.ModelStyle.Render("genchecklist generate --interactive"))
	fmt.Fprintf(&b, "       or: %s\n", tui.ModelStyle.Render("genchecklist generate trip --destination beach --days 5 --export"))
	fmt.Fprintf(&b, "    3. Share it over HTTP: %s\n\n", tui.ModelStyle.Render("genchecklist serve"))
	b.WriteString("  " + tui.HelpStyle.Render("Run 'genchecklist --help' for all options") + "\n\n")
	return b.String()
}

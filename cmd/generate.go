package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dhabedank/genchecklist/internal/core"
	"github.com/dhabedank/genchecklist/internal/gateway"
	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/output"
	"github.com/dhabedank/genchecklist/internal/session"
	"github.com/dhabedank/genchecklist/internal/tui"
)

var (
	details     detailFlags
	interactive bool
	exportFile  bool
	outputDir   string
	exportTitle string
)

// GenerateCmd generates one checklist.
var GenerateCmd = &cobra.Command{
	Use:   "generate [domain]",
	Short: "Generate a checklist",
	Long: `Generate an AI checklist for one of the domains:

  trip            packing list         --destination --days --activities
  moving          moving timeline      --move-type --pets --kids --info
  pet             new pet welcome kit  --pet-type --pet-name --rescue --needs
  event           event plan           --event-type --guests --budget --venue --audience --when --info
  new_beginnings  life transition      --life-event --info
  project_goal    project plan         --goal-type --goal --timeline --considerations

Requests go to the gateway given with --gateway, or straight to the
configured provider. --interactive opens the checklist in a terminal UI
where items can be checked off and exported; without a domain it starts
at the domain picker.`,
	Example: `  genchecklist generate trip --destination beach --days 5 --activities "snorkeling"
  genchecklist generate event --event-type wedding --guests 80 --venue outdoor --audience adults --export
  genchecklist generate --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	details.register(GenerateCmd.Flags())

	GenerateCmd.Flags().StringVar(&gatewayURL, "gateway", "", "Gateway base URL (default: call the provider directly)")
	GenerateCmd.Flags().StringVarP(&llmProvider, "provider", "l", llm.ProviderAuto, "Provider when no gateway is used (auto/gemini/anthropic/claude-cli)")
	GenerateCmd.Flags().StringVarP(&llmModel, "model", "m", "", "Model to request")
	GenerateCmd.Flags().DurationVar(&requestTimeout, "timeout", 0, "Request timeout (0 for none)")

	GenerateCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the checklist in the terminal UI")
	GenerateCmd.Flags().BoolVar(&exportFile, "export", false, "Write the checklist to a file")
	GenerateCmd.Flags().StringVar(&exportFormat, "format", "pdf", "Export format (pdf/json)")
	GenerateCmd.Flags().StringVar(&outputDir, "out-dir", ".", "Directory for exported files")
	GenerateCmd.Flags().StringVar(&exportTitle, "title", "", "Export title (default: the domain title)")

	GenerateCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	GenerateCmd.Flags().StringVar(&configFile, "config", "", "Config file (default: .genchecklist.yaml)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(log.WarnLevel)

	var domain core.Domain
	if len(args) == 1 {
		d, err := core.ParseDomain(args[0])
		if err != nil {
			return err
		}
		domain = d
	} else if !interactive {
		return fmt.Errorf("a domain is required without --interactive (one of: %s)", domainNames())
	}

	ctx := cmd.Context()
	requester, err := newRequester(ctx)
	if err != nil {
		return err
	}
	if requestTimeout > 0 && gatewayURL == "" {
		requester = timeoutRequester{next: requester, timeout: requestTimeout}
	}

	if interactive {
		return runInteractive(ctx, requester, domain, logger)
	}

	d, err := details.build(domain)
	if err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	meter := &meteredRequester{next: requester}
	fmt.Println(tui.RenderGenerationStart(domain, llmModel, len(d.Prompt())))
	start := time.Now()
	checklist, err := core.Generate(ctx, meter, d, core.GenerateOptions{Model: llmModel, Logger: logger})
	if err != nil {
		fmt.Println(tui.RenderGenerationFailed(domain, err))
		return err
	}

	total, _ := checklist.Counts()
	fmt.Println(tui.RenderGenerationComplete(tui.GenerationInfo{
		Domain:      domain,
		Model:       modelForCost(),
		PromptChars: meter.promptChars,
		OutputChars: meter.outputChars,
		Duration:    time.Since(start),
		Groups:      len(checklist.Groups),
		Items:       total,
	}))
	fmt.Println()
	fmt.Println(tui.RenderChecklist(checklist, -1))

	if exportFile {
		path, err := exportChecklist(checklist)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s Exported to %s\n", tui.SuccessStyle.Render("✓"), path)
	}
	return nil
}

func runInteractive(ctx context.Context, requester core.Requester, domain core.Domain, logger *log.Logger) error {
	// Logging would tear the alternate screen.
	logger.SetOutput(io.Discard)

	app := tui.NewApp(tui.AppConfig{
		Session: session.New(""),
		Domain:  domain,
		Details: details.build,
		Generate: func(ctx context.Context, d core.Details) (core.Checklist, error) {
			return core.Generate(ctx, requester, d, core.GenerateOptions{Model: llmModel, Logger: logger})
		},
		Export:  exportChecklist,
		Context: ctx,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

// newRequester returns the gateway client when --gateway is set, otherwise
// an in-process requester for the configured provider.
func newRequester(ctx context.Context) (core.Requester, error) {
	if gatewayURL != "" {
		return gateway.NewClient(gatewayURL, requestTimeout), nil
	}

	config := llm.DefaultConfig()
	config.Provider = llmProvider
	config.Model = llmModel
	generator, err := llm.NewGenerator(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	return llm.Direct{Generator: generator}, nil
}

// exportChecklist writes cl to outputDir using the configured format and the
// export file name convention.
func exportChecklist(cl core.Checklist) (string, error) {
	adapter, err := output.NewAdapter(exportFormat)
	if err != nil {
		return "", err
	}
	config := output.DefaultConfig(cl.Domain)
	if exportTitle != "" {
		config.Title = exportTitle
	}

	path := filepath.Join(outputDir, output.FileName(cl.Domain, config.Title, config.GeneratedAt, adapter.Extension()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if _, err := adapter.Write(f, cl, config); err != nil {
		return "", fmt.Errorf("failed to export checklist: %w", err)
	}
	return path, f.Close()
}

func modelForCost() string {
	if llmModel != "" {
		return llmModel
	}
	if gatewayURL != "" {
		return ""
	}
	provider := llmProvider
	if provider == llm.ProviderAuto {
		provider, _ = llm.DetectProvider()
	}
	return llm.DefaultModel(provider)
}

func domainNames() string {
	names := make([]string, len(core.Domains))
	for i, d := range core.Domains {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}

// meteredRequester records request and response sizes for the cost estimate.
type meteredRequester struct {
	next core.Requester

	mu          sync.Mutex
	promptChars int
	outputChars int
}

func (m *meteredRequester) Request(ctx context.Context, req core.GenerationRequest) (any, error) {
	value, err := m.next.Request(ctx, req)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.promptChars += len(req.Prompt)
	if err == nil {
		if data, merr := sonic.Marshal(value); merr == nil {
			m.outputChars += len(data)
		}
	}
	return value, err
}

// timeoutRequester bounds in-process requests the way the HTTP client's
// timeout bounds gateway requests.
type timeoutRequester struct {
	next    core.Requester
	timeout time.Duration
}

func (t timeoutRequester) Request(ctx context.Context, req core.GenerationRequest) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Request(ctx, req)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dhabedank/genchecklist/internal/gateway"
	"github.com/dhabedank/genchecklist/internal/llm"
	"github.com/dhabedank/genchecklist/internal/session"
	"github.com/dhabedank/genchecklist/internal/tui"
)

// shutdownTimeout bounds how long in-flight requests get on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

// ServeCmd runs the generation gateway and the checklist API.
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the generation gateway and checklist API",
	Long: `Serve the HTTP gateway that forwards checklist prompts to the model.

Routes:
  POST /api/generate                      generation proxy
  GET|POST|DELETE /api/checklists/:domain  checklist state
  POST /api/checklists/:domain/toggle      check off an item
  GET  /api/checklists/:domain/export      PDF or JSON download

The upstream credential comes from GEMINI_API_KEY or ANTHROPIC_API_KEY.
Without one the server still starts and generation requests fail.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	ServeCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "Listen address")
	ServeCmd.Flags().StringVarP(&llmProvider, "provider", "l", llm.ProviderAuto, "Upstream provider (auto/gemini/anthropic/claude-cli)")
	ServeCmd.Flags().StringVarP(&llmModel, "model", "m", "", "Default model when a request names none")
	ServeCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	ServeCmd.Flags().StringVar(&configFile, "config", "", "Config file (default: .genchecklist.yaml)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(log.InfoLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config := llm.DefaultConfig()
	config.Provider = llmProvider
	config.Model = llmModel

	generator, configErr := llm.NewGenerator(ctx, config)
	if configErr != nil {
		if !errors.Is(configErr, llm.ErrMissingAPIKey) {
			return fmt.Errorf("failed to create generator: %w", configErr)
		}
		logger.WithError(configErr).Warn("no upstream credential configured, generation requests will fail")
		generator = nil
	} else {
		model := config.Model
		if model == "" {
			model = llm.DefaultModel(config.Provider)
		}
		logger.WithFields(log.Fields{
			"provider": generator.Name(),
			"model":    model,
		}).Info("upstream generator ready")
	}

	e := gateway.NewEcho(logger)
	gateway.New(gateway.Options{
		Generator: generator,
		ConfigErr: configErr,
		Session:   session.New(""),
		Logger:    logger,
	}).Register(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(listenAddr)
	}()
	fmt.Printf("%s Listening on %s\n", tui.SuccessStyle.Render("✓"), tui.ModelStyle.Render(listenAddr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

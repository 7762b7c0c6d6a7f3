package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the working directory, then in $HOME.
const ConfigFileName = ".genchecklist.yaml"

// Flag values shared by the commands. Config file values fill in whatever
// was not set on the command line.
var (
	configFile     string
	llmProvider    string
	llmModel       string
	exportFormat   string
	gatewayURL     string
	listenAddr     string
	requestTimeout time.Duration
	debug          bool
)

// configFileData is the YAML config file layout. setup writes the same shape.
type configFileData struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	Format   string `yaml:"format,omitempty"`
	Gateway  string `yaml:"gateway,omitempty"`
	Listen   string `yaml:"listen,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`
}

// findConfigFile returns the config path to read, or "" when there is none.
func findConfigFile() string {
	if configFile != "" {
		return configFile
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ConfigFileName)
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}
	return ""
}

// userConfigPath is where setup saves its answers.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(home, ConfigFileName)
}

func readConfigFile(path string) (*configFileData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg configFileData
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

func saveConfigFile(path string, cfg configFileData) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// loadEnv reads .env from the working directory when present.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// loadConfig loads .env and the config file, then applies file values to
// every flag of cmd that was not set explicitly.
func loadConfig(cmd *cobra.Command) error {
	if err := loadEnv(); err != nil {
		return err
	}

	path := findConfigFile()
	if path == "" {
		return nil
	}
	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}
	log.WithField("path", path).Debug("loaded config file")

	apply := func(flag, value string, target *string) {
		if value == "" || cmd.Flags().Lookup(flag) == nil || cmd.Flags().Changed(flag) {
			return
		}
		*target = value
	}
	apply("provider", cfg.Provider, &llmProvider)
	apply("model", cfg.Model, &llmModel)
	apply("format", cfg.Format, &exportFormat)
	apply("gateway", cfg.Gateway, &gatewayURL)
	apply("listen", cfg.Listen, &listenAddr)

	if cfg.Timeout != "" && cmd.Flags().Lookup("timeout") != nil && !cmd.Flags().Changed("timeout") {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		requestTimeout = d
	}
	return nil
}

// newLogger builds the process logger. DEBUG=true has the same effect as
// --debug.
func newLogger(level log.Level) *log.Logger {
	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	logger.SetLevel(level)
	if debug || os.Getenv("DEBUG") == "true" {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

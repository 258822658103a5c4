package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/bevec/v1/bevec"
	"github.com/Aleph-Alpha/bevec/v1/chromem"
	"github.com/Aleph-Alpha/bevec/v1/logger"
	"github.com/Aleph-Alpha/bevec/v1/metrics"
	"github.com/Aleph-Alpha/bevec/v1/tracer"
)

const envProvider = "BEVEC_PROVIDER"

// fileConfig is the CLI config file: the client config plus optional
// tracing and metrics sections.
type fileConfig struct {
	bevec.Config `yaml:",inline"`

	Tracing *tracer.Config  `yaml:"tracing"`
	Metrics *metrics.Config `yaml:"metrics"`
}

// loadConfig reads a YAML config file. An empty path yields an empty config.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// resolveConfig applies the precedence flag > config file > BEVEC_PROVIDER >
// chromem for the provider.
func resolveConfig(cmd *cobra.Command) (fileConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.Provider = p
	}
	if cfg.Provider == "" {
		cfg.Provider = os.Getenv(envProvider)
	}
	if cfg.Provider == "" {
		cfg.Provider = chromem.ProviderName
	}
	return cfg, nil
}

func openClient(cmd *cobra.Command) (*bevec.Client, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	level := logger.Warning
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = logger.Debug
	}
	log := logger.NewLoggerClient(logger.Config{Level: level, ServiceName: "bevec", Console: true})
	opts := []bevec.Option{bevec.WithLogger(log)}

	s := sessionFrom(cmd.Context())
	if cfg.Tracing != nil {
		t, err := tracer.NewClient(*cfg.Tracing, log)
		if err != nil {
			return nil, err
		}
		s.tracer = t
		opts = append(opts, bevec.WithTracerProvider(t.Provider()))
	}
	if stats, _ := cmd.Flags().GetBool("stats"); stats || cfg.Metrics != nil {
		var mc metrics.Config
		if cfg.Metrics != nil {
			mc = *cfg.Metrics
		}
		s.metrics = metrics.NewMetrics(mc)
		opts = append(opts, bevec.WithObserver(s.metrics))
	}
	return bevec.Init(cmd.Context(), cfg.Config, opts...)
}

func wantJSON(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

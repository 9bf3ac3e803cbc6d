// Package cli wires the two pipeline stages into a cobra command tree. All
// configuration resolution (dotenv, YAML file, environment, flags) happens
// here; the components themselves receive an explicit config value.
package cli

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"medetl/internal/config"
	"medetl/internal/metrics"
	"medetl/internal/metrics/prompush"
)

var rootCmd = &cobra.Command{
	Use:   "medetl",
	Short: "Medicines flat-file to SQLite migration pipeline",
	Long: `medetl converts the pipe-delimited medicines metadata table into a JSON
document (convert) and loads that document into a SQLite database with a
fixed schema and secondary indexes (migrate).

The two stages run independently: convert produces data/medicines.json,
migrate consumes it and produces data/medicines.db. The data directory can
be overridden with the ` + config.DataDirEnv + ` environment variable or the
--data-dir flag.`,
	SilenceUsage: true,
}

type rootFlagValues struct {
	configPath     string
	dataDir        string
	batchSize      int
	metricsBackend string
	pushgatewayURL string
}

var rootFlags rootFlagValues

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "path to a YAML config file (default "+config.ConfigFileName+" if present)")
	pf.StringVar(&rootFlags.dataDir, "data-dir", "", "base data directory (overrides config and env)")
	pf.IntVar(&rootFlags.batchSize, "batch-size", 0, "records per insert batch (overrides config)")
	pf.StringVar(&rootFlags.metricsBackend, "metrics-backend", "none", "metrics backend: pushgateway or none")
	pf.StringVar(&rootFlags.pushgatewayURL, "pushgateway-url", "http://localhost:9091", "Pushgateway base URL")
}

// Execute runs the root command.
func Execute() error {
	// A missing .env file is fine; values already in the environment win.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

// resolveConfig builds the effective Config: defaults, then the YAML file,
// then environment overrides, then explicit flags.
func resolveConfig() (config.Config, error) {
	cfg := config.Default()

	path := rootFlags.configPath
	explicit := path != ""
	if !explicit {
		path = config.ConfigFileName
	}
	loaded, err := config.Load(path)
	switch {
	case err == nil:
		cfg = loaded
	case errors.Is(err, config.ErrConfigNotFound) && !explicit:
		// Default file absent: keep defaults. An explicitly named file
		// must exist, so that case falls through to the error below.
	default:
		return config.Config{}, err
	}

	cfg = cfg.ApplyEnv(os.Getenv)

	if rootFlags.dataDir != "" {
		cfg.DataDir = rootFlags.dataDir
	}
	if rootFlags.batchSize > 0 {
		cfg.BatchSize = rootFlags.batchSize
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setupMetrics installs the selected metrics backend. The returned func
// flushes it and is safe to defer unconditionally.
func setupMetrics() func() {
	switch rootFlags.metricsBackend {
	case "pushgateway":
		b, err := prompush.NewBackend("medetl", rootFlags.pushgatewayURL)
		if err != nil {
			log.Printf("metrics: %v; metrics disabled", err)
			return func() {}
		}
		metrics.SetBackend(b)
		return func() {
			if err := metrics.Flush(); err != nil {
				log.Printf("metrics: flush: %v", err)
			}
		}
	case "", "none":
		return func() {}
	default:
		fmt.Fprintf(os.Stderr, "metrics: unknown backend %q; metrics disabled\n", rootFlags.metricsBackend)
		return func() {}
	}
}

package cli

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"medetl/internal/metrics"
	"medetl/internal/normalizer"
	"medetl/internal/report"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the delimited metadata table to a JSON document",
	Long: `Convert reads the pipe-delimited metadata table (first row = field
names), lowercases every field name, trims values, and writes the ordered
record sequence as a single JSON document.

The run fails before writing anything if the source table is missing.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	flush := setupMetrics()
	defer flush()

	start := time.Now()
	n, err := normalizer.Run(cmd.Context(), cfg, report.Log{})
	metrics.RecordStep("convert", err, time.Since(start))
	if err != nil {
		return err
	}

	log.Printf("success: %s (%d records)", cfg.DocumentPath(), n)
	return nil
}

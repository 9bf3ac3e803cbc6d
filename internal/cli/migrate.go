package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"medetl/internal/loader"
	"medetl/internal/metrics"
	"medetl/internal/report"
	"medetl/internal/storage/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Load the JSON document into the SQLite database",
	Long: `Migrate reads the document produced by convert, creates the medicines
table and its secondary indexes if absent, and inserts every record in
batches of --batch-size (default 1000), committing once per batch.

The run fails before the database file is created if the document is
missing. A failure mid-run leaves already-committed batches intact.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	flush := setupMetrics()
	defer flush()

	openStore := func(ctx context.Context) (loader.Store, func(), error) {
		db, err := sqlite.Open(cfg.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return sqlite.New(db), func() { db.Close() }, nil
	}

	start := time.Now()
	n, err := loader.Run(cmd.Context(), cfg, openStore, report.Log{})
	metrics.RecordStep("migrate", err, time.Since(start))
	if err != nil {
		return err
	}

	log.Printf("success: %s (%d rows)", cfg.DatabasePath(), n)
	return nil
}

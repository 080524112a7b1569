package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/invoiceflow/ingest-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoiceflow",
	Short: "Invoice spreadsheet ingest pipeline",
	Long:  "Maps heterogeneous accounting exports (CSV/XLSX) onto a canonical invoice schema, reconstructs invoice records from row groups, and serves them over a REST API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

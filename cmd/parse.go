package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/invoiceflow/ingest-cli/internal/reader"
	"github.com/invoiceflow/ingest-cli/internal/tax"
)

var (
	parseFile        string
	parseOut         string
	parseSave        bool
	parseConcurrency int
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a CSV or XLSX export into invoice records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		eng, err := newEngine(parseConcurrency)
		if err != nil {
			return err
		}

		table, err := reader.ReadFile(parseFile)
		if err != nil {
			return eris.Wrap(err, "read file")
		}

		outcome, err := eng.Parse(ctx, table)
		if err != nil {
			return eris.Wrap(err, "parse")
		}

		if cfg.Tax.AutoApply {
			applied := 0
			for i := range outcome.Invoices {
				if tax.ApplyDefault(&outcome.Invoices[i]) {
					applied++
				}
			}
			if applied > 0 {
				zap.L().Info("applied default state tax", zap.Int("invoices", applied))
			}
		}

		if parseSave {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			info, err := os.Stat(parseFile)
			if err != nil {
				return eris.Wrap(err, "stat file")
			}

			upload, err := st.CreateUpload(ctx, parseFile, info.Size())
			if err != nil {
				return eris.Wrap(err, "create upload")
			}

			saved, err := st.SaveInvoices(ctx, upload.ID, outcome.Invoices)
			if err != nil {
				st.FailUpload(ctx, upload.ID, err.Error())
				return eris.Wrap(err, "save invoices")
			}
			if err := st.CompleteUpload(ctx, upload.ID, len(saved)); err != nil {
				return eris.Wrap(err, "complete upload")
			}
			outcome.Invoices = saved

			zap.L().Info("saved invoices",
				zap.String("upload_id", upload.ID),
				zap.Int("count", len(saved)),
			)
		}

		out := os.Stdout
		if parseOut != "" {
			f, err := os.Create(parseOut)
			if err != nil {
				return eris.Wrap(err, "create output file")
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			return eris.Wrap(err, "encode outcome")
		}

		zap.L().Info("parse complete",
			zap.String("file", parseFile),
			zap.Int("invoices", outcome.Metadata.InvoiceCount),
			zap.Float64("avg_confidence", outcome.Metadata.AvgConfidence),
		)
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseFile, "file", "", "path to CSV or XLSX file (required)")
	parseCmd.Flags().StringVar(&parseOut, "out", "", "write JSON result to file instead of stdout")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "persist parsed invoices to the store")
	parseCmd.Flags().IntVar(&parseConcurrency, "concurrency", 0, "group assembly workers (default from config)")
	_ = parseCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(parseCmd)
}

package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/invoiceflow/ingest-cli/internal/render"
)

var (
	renderID  string
	renderOut string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a stored invoice to PDF",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		invoice, err := st.GetInvoice(ctx, renderID)
		if err != nil {
			return eris.Wrapf(err, "get invoice %s", renderID)
		}

		pdf, err := render.Invoice(*invoice)
		if err != nil {
			return eris.Wrap(err, "render pdf")
		}

		out := renderOut
		if out == "" {
			out = "invoice_" + invoice.InvoiceNumber + ".pdf"
		}
		if err := os.WriteFile(out, pdf, 0644); err != nil {
			return eris.Wrap(err, "write pdf")
		}

		zap.L().Info("rendered invoice",
			zap.String("invoice_id", renderID),
			zap.String("out", out),
			zap.Int("bytes", len(pdf)),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderID, "id", "", "invoice ID (required)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output path (default invoice_<number>.pdf)")
	_ = renderCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(renderCmd)
}

package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/invoiceflow/ingest-cli/internal/model"
	"github.com/invoiceflow/ingest-cli/internal/store"
)

var (
	listStatus   string
	listClient   string
	listUploadID string
	listLimit    int
	listOffset   int
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Query stored invoices",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored invoices",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		invoices, err := st.ListInvoices(ctx, store.InvoiceFilter{
			Status:   model.InvoiceStatus(listStatus),
			Client:   listClient,
			UploadID: listUploadID,
			Limit:    listLimit,
			Offset:   listOffset,
		})
		if err != nil {
			return eris.Wrap(err, "list invoices")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(invoices)
	},
}

var invoicesGetCmd = &cobra.Command{
	Use:   "get <invoice-id>",
	Short: "Show one stored invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		invoice, err := st.GetInvoice(ctx, args[0])
		if err != nil {
			return eris.Wrapf(err, "get invoice %s", args[0])
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(invoice)
	},
}

func init() {
	invoicesListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (draft, sent, paid...)")
	invoicesListCmd.Flags().StringVar(&listClient, "client", "", "filter by client name substring")
	invoicesListCmd.Flags().StringVar(&listUploadID, "upload", "", "filter by upload ID")
	invoicesListCmd.Flags().IntVar(&listLimit, "limit", 0, "max results (default 100)")
	invoicesListCmd.Flags().IntVar(&listOffset, "offset", 0, "skip results")
	invoicesCmd.AddCommand(invoicesListCmd)
	invoicesCmd.AddCommand(invoicesGetCmd)
	rootCmd.AddCommand(invoicesCmd)
}

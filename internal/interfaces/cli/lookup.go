package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/NutriLens/pkg/client"
)

func newLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Fetch and score a product by barcode",
		Long:  "Resolves a product barcode through the Open Food Facts database and prints\nthe scored report. Barcodes are 6 to 14 digits (EAN-8, EAN-13, UPC-A).",
		Example: `  nutrilens lookup 737628064502
  nutrilens lookup 3017620422003 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runLookup,
	}

	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	_, apiClient, err := requireClient(cmd)
	if err != nil {
		return err
	}

	report, err := apiClient.Products().Lookup(cmd.Context(), args[0])
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return fmt.Errorf("product %s was not found; it may not be in Open Food Facts yet", args[0])
		}
		return err
	}

	return PrintResult(cmd, newReportView(report))
}

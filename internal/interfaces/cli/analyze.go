package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/NutriLens/pkg/client"
)

// newAnalyzeCommand groups the two label ingestion paths: pasted ingredient
// text and label photos.
func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a nutrition label from ingredient text or a photo",
		Long:  "Analyze sends label content to the NutriLens server and prints the scored\nreport. Use \"analyze text\" for a pasted ingredient list and \"analyze image\"\nfor a photo of the package.",
	}

	cmd.AddCommand(newAnalyzeTextCommand(), newAnalyzeImageCommand())
	return cmd
}

type analyzeTextOptions struct {
	name  string
	brand string
	file  string
}

func newAnalyzeTextCommand() *cobra.Command {
	opts := &analyzeTextOptions{}

	cmd := &cobra.Command{
		Use:   "text [ingredients]",
		Short: "Score a product from its ingredient list",
		Long:  "Scores a product from raw ingredient text, the way it appears on the\npackage. The text can be passed as a single argument or read from a file.",
		Example: `  nutrilens analyze text "water, sugar, citric acid, aspartame (E951)"
  nutrilens analyze text --file ingredients.txt --name "Fizzy Cola" --brand "Acme"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeText(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "product name to attach to the report")
	cmd.Flags().StringVar(&opts.brand, "brand", "", "product brand to attach to the report")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the ingredient list from a file instead of the argument")

	return cmd
}

func runAnalyzeText(cmd *cobra.Command, opts *analyzeTextOptions, args []string) error {
	_, apiClient, err := requireClient(cmd)
	if err != nil {
		return err
	}

	var text string
	switch {
	case opts.file != "":
		data, readErr := os.ReadFile(opts.file)
		if readErr != nil {
			return fmt.Errorf("failed to read ingredient file: %w", readErr)
		}
		text = string(data)
	case len(args) == 1:
		text = args[0]
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("provide the ingredient list as an argument or via --file")
	}

	report, err := apiClient.Analysis().AnalyzeText(cmd.Context(), client.AnalyzeTextRequest{
		IngredientsText: text,
		Name:            opts.name,
		Brand:           opts.brand,
	})
	if err != nil {
		return err
	}

	return PrintResult(cmd, newReportView(report))
}

func newAnalyzeImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <path>",
		Short: "Score a product from a photo of its label",
		Long:  "Uploads a label photo for OCR extraction and scoring. The server must be\nrunning with an OCR engine configured.",
		Example: `  nutrilens analyze image ./label.jpg
  nutrilens analyze image ~/photos/cereal-back.png -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeImage,
	}

	return cmd
}

func runAnalyzeImage(cmd *cobra.Command, args []string) error {
	_, apiClient, err := requireClient(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	report, err := apiClient.Analysis().AnalyzeImage(cmd.Context(), filepath.Base(args[0]), f)
	if err != nil {
		return err
	}

	return PrintResult(cmd, newReportView(report))
}

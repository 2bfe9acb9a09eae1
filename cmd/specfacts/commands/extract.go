package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/w3c/specfacts/internal/config"
	"github.com/w3c/specfacts/internal/scanner"
	"github.com/w3c/specfacts/pkg/pipeline"
	"github.com/w3c/specfacts/pkg/types"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract facts from a single spec file",
	Long: `Reads one spec source (HTML, WebIDL fragment or value grammar file,
picked by extension) and prints the extracted facts: the WebIDL analysis
report and the parsed CSS property grammars.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		kind := scanner.DetectKind(filepath.Ext(args[0]))
		if kind == "" {
			kind = scanner.KindHTML
		}

		extract := pipeline.Extract(args[0], kind, string(data))

		if format == config.FormatJSON {
			return printJSON(extract)
		}
		printExtract(extract)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringP("format", "f", "", "Output format: json or text")
}

func printExtract(extract *types.SpecExtract) {
	fmt.Printf("Spec: %s\n", extract.Spec)
	if extract.Obsolete {
		fmt.Println("Uses obsolete WebIDL syntax")
	}
	if extract.IDL != nil {
		fmt.Println()
		printReport(extract.IDL)
	}
	if len(extract.Properties) > 0 {
		fmt.Println("\nProperties:")
		for _, prop := range extract.Properties {
			fmt.Printf("  %s: %s\n", prop.Name, prop.Value)
		}
	}
	if len(extract.Errors) > 0 {
		fmt.Println("\nErrors:")
		for _, e := range extract.Errors {
			fmt.Printf("  [%s] %s\n", e.Source, e.Message)
		}
	}
	if !extract.HasFacts() {
		fmt.Println("No facts found")
	}
}

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/w3c/specfacts/internal/config"
	"github.com/w3c/specfacts/pkg/cssvalue"
)

// cssCmd represents the css command
var cssCmd = &cobra.Command{
	Use:   "css <grammar|file>",
	Short: "Parse a CSS value grammar",
	Long: `Parses a CSS value definition (either given inline or read from a
file) and prints the resulting grammar tree.

Examples:
  specfacts css "<length-percentage> | auto"
  specfacts css margin.vds --format text`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grammar := args[0]
		if fileExists(grammar) {
			data, err := os.ReadFile(grammar)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			grammar = strings.TrimSpace(string(data))
		}

		format, err := outputFormat(cmd)
		if err != nil {
			return err
		}

		node, err := cssvalue.Parse(grammar)
		if err != nil {
			return fmt.Errorf("parsing grammar: %w", err)
		}

		if format == config.FormatJSON {
			return printJSON(node)
		}
		printGrammarTree(node, 0)
		return nil
	},
}

func init() {
	cssCmd.Flags().StringP("format", "f", "", "Output format: json or text")
}

func printGrammarTree(node *cssvalue.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s", indent, node.Type)
	if node.Name != "" {
		fmt.Printf(" %s", node.Name)
	}
	if node.Value != "" {
		fmt.Printf(" %q", node.Value)
	}
	if node.MinItems != nil || node.MaxItems != nil {
		fmt.Printf(" {%s,%s}", boundString(node.MinItems), boundString(node.MaxItems))
	}
	if node.Separator != "" {
		fmt.Printf(" sep=%q", node.Separator)
	}
	if node.Optional {
		fmt.Print(" optional")
	}
	fmt.Println()
	if node.Arguments != nil {
		printGrammarTree(node.Arguments, depth+1)
	}
	for _, item := range node.Items {
		printGrammarTree(item, depth+1)
	}
}

func boundString(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

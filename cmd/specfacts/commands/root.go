package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/w3c/specfacts/internal/config"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "specfacts",
	Short: "specfacts - Extract machine-readable facts from web specs",
	Long: `specfacts analyzes the formal definitions that web specs carry:
WebIDL fragments and CSS value definition grammars.

Commands:
  idl         Analyze a WebIDL file
  css         Parse a CSS value definition grammar
  extract     Extract IDL and CSS facts from a saved spec page
  batch       Run extraction over a directory of spec inputs
  init        Create a configuration file interactively
  doctor      Run health checks on the installation

Use "specfacts [command] --help" for more information about a command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(idlCmd)
	RootCmd.AddCommand(cssCmd)
	RootCmd.AddCommand(extractCmd)
	RootCmd.AddCommand(batchCmd)
}

// outputFormat resolves the output format for a command: an explicit
// --format flag wins, otherwise the configured default applies.
func outputFormat(cmd *cobra.Command) (config.OutputFormat, error) {
	if flag, _ := cmd.Flags().GetString("format"); flag != "" {
		format := config.OutputFormat(flag)
		switch format {
		case config.FormatJSON, config.FormatText:
			return format, nil
		}
		return "", fmt.Errorf("invalid format %q (use 'json' or 'text')", flag)
	}

	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}
	return cfg.OutputFormat, nil
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

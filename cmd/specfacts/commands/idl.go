package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/w3c/specfacts/internal/config"
	"github.com/w3c/specfacts/internal/log"
	"github.com/w3c/specfacts/pkg/idlanalyzer"
)

// idlCmd represents the idl command
var idlCmd = &cobra.Command{
	Use:   "idl <file>",
	Short: "Analyze a WebIDL file",
	Long: `Parses a WebIDL fragment and reports the defined names, the
dependency graph between them, external references and the exposure map.`,
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

		report, err := idlanalyzer.Analyze(string(data))
		if err != nil {
			return fmt.Errorf("analyzing %s: %w", args[0], err)
		}

		for _, diag := range report.Diagnostics {
			log.Default().Warn("idl diagnostic", "name", diag.Name, "detail", diag.Message)
		}

		if format == config.FormatJSON {
			return printJSON(report)
		}
		printReport(report)
		return nil
	},
}

func init() {
	idlCmd.Flags().StringP("format", "f", "", "Output format: json or text")
}

func printReport(report *idlanalyzer.Report) {
	names := make([]string, 0, len(report.IDLNames))
	for name := range report.IDLNames {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Defined names:")
	for _, name := range names {
		def := report.IDLNames[name]
		fmt.Printf("  %s (%s)\n", name, def.Kind)
		for _, dep := range report.Dependencies[name] {
			fmt.Printf("    -> %s\n", dep)
		}
	}

	if len(report.IDLExtendedNames) > 0 {
		fmt.Println("\nExtended names:")
		extended := make([]string, 0, len(report.IDLExtendedNames))
		for name := range report.IDLExtendedNames {
			extended = append(extended, name)
		}
		sort.Strings(extended)
		for _, name := range extended {
			fmt.Printf("  %s (%d fragments)\n", name, len(report.IDLExtendedNames[name]))
		}
	}

	if len(report.ExternalDependencies) > 0 {
		fmt.Println("\nExternal dependencies:")
		for _, ext := range report.ExternalDependencies {
			fmt.Printf("  %s\n", ext)
		}
	}

	printExposureBucket("Constructors", report.Exposure.Constructors)
	printExposureBucket("Functions", report.Exposure.Functions)
	printExposureBucket("Objects", report.Exposure.Objects)

	if report.ReallyDependsOnWindow {
		fmt.Println("\nDepends on Window")
	}
}

func printExposureBucket(title string, bucket map[string][]string) {
	if len(bucket) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	contexts := make([]string, 0, len(bucket))
	for ctx := range bucket {
		contexts = append(contexts, ctx)
	}
	sort.Strings(contexts)
	for _, ctx := range contexts {
		fmt.Printf("  %s:", ctx)
		for _, iface := range bucket[ctx] {
			fmt.Printf(" %s", iface)
		}
		fmt.Println()
	}
}

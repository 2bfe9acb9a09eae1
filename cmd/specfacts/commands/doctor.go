package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/w3c/specfacts/internal/config"
	"github.com/w3c/specfacts/internal/healthcheck"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on configuration and cache",
	Long: `Checks the configuration and verifies that the cache directory is
writable and the cache file readable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, configPath, err := loadConfigWithPath()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		result, err := healthcheck.Check(cfg, configPath)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		displayDoctorResult(result)

		if !result.Healthy() {
			return fmt.Errorf("health check failed: one or more checks errored")
		}

		return nil
	},
}

// loadConfigWithPath resolves the effective config the same way Load does,
// but also reports which file it came from. Missing config files are not an
// error: every command works on defaults.
func loadConfigWithPath() (*config.Config, string, error) {
	projectConfigPath := config.ProjectConfigPath()
	globalConfigPath := config.GlobalConfigPath()

	var effectivePath string
	if fileExists(projectConfigPath) {
		effectivePath = projectConfigPath
	} else if globalConfigPath != "" && fileExists(globalConfigPath) {
		effectivePath = globalConfigPath
	} else {
		return config.DefaultConfig(), "", nil
	}

	cfg, err := config.LoadFromFile(effectivePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", effectivePath, err)
	}

	return cfg, effectivePath, nil
}

func displayDoctorResult(result *healthcheck.Result) {
	if result.ConfigPath == "" {
		fmt.Println("Using config: built-in defaults (run 'specfacts init' to create one)")
	} else {
		fmt.Printf("Using config: %s (%s)\n", result.ConfigPath, result.ConfigScope)
	}
	fmt.Println()
	printChecks(result)
}

func printChecks(result *healthcheck.Result) {
	for _, check := range result.Checks {
		fmt.Printf("%s %s", formatStatusIcon(check.Status), check.Name)
		if check.Detail != "" {
			fmt.Printf(": %s", check.Detail)
		}
		fmt.Println()
	}
}

func formatStatusIcon(status string) string {
	switch status {
	case "ok":
		return "✓"
	case "warn":
		return "◐"
	case "error":
		return "✗"
	default:
		return "?"
	}
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

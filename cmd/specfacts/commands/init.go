package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/w3c/specfacts/internal/config"
	"github.com/w3c/specfacts/internal/healthcheck"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize specfacts configuration interactively",
	Long: `Guides you through setting up specfacts configuration step by step.
Creates a config file with cache, concurrency and output settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit()
	},
}

func runInit() error {
	defaults := config.DefaultConfig()

	// === SECTION 1: Cache ===
	cacheDir := defaults.CacheDir
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cache directory").
				Description("Where extract results are cached between runs").
				Placeholder(defaults.CacheDir).
				Value(&cacheDir),
		),
	)
	err := form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}
	if cacheDir == "" {
		cacheDir = defaults.CacheDir
	}

	maxEntries := strconv.Itoa(defaults.CacheMaxEntries)
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Maximum cache entries (0 = unlimited)").
				Placeholder(maxEntries).
				Value(&maxEntries).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 0 {
						return fmt.Errorf("must be a non-negative integer")
					}
					return nil
				}),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 2: Batch Runs ===
	jobs := strconv.Itoa(defaults.Jobs)
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Parallel workers for batch runs").
				Placeholder(jobs).
				Value(&jobs).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return fmt.Errorf("must be a positive integer")
					}
					return nil
				}),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 3: Output ===
	var formatChoice string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default output format").
				Description("Used by idl, css, extract and batch unless --format is given").
				Options(
					huh.NewOption("JSON", string(config.FormatJSON)),
					huh.NewOption("Text", string(config.FormatText)),
				).
				Value(&formatChoice),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var verbose bool
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Verbose logging").
				Description("Log debug detail during batch runs?").
				Affirmative("Yes").
				Negative("No").
				Value(&verbose),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	// === SECTION 4: Config Location ===
	var saveLocationChoice string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Save Configuration").
				Description("Where to save the configuration file?").
				Options(
					huh.NewOption("Global (~/.specfacts/config.yaml)", "global"),
					huh.NewOption("Project (./.specfacts/config.yaml)", "project"),
				).
				Value(&saveLocationChoice),
		),
	)
	err = form.Run()
	if err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var configPath string
	if saveLocationChoice == "global" {
		configPath = config.GlobalConfigPath()
	} else {
		configPath = config.ProjectConfigPath()
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Config file exists").
					Description(fmt.Sprintf("Overwrite existing config at %s?", configPath)).
					Affirmative("Overwrite").
					Negative("Cancel").
					Value(&overwrite),
			),
		)
		err = form.Run()
		if err != nil {
			return fmt.Errorf("interactive prompt failed: %w", err)
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// === Build config struct ===
	cfg := config.DefaultConfig()
	cfg.CacheDir = cacheDir
	if n, err := strconv.Atoi(maxEntries); err == nil {
		cfg.CacheMaxEntries = n
	}
	if n, err := strconv.Atoi(jobs); err == nil {
		cfg.Jobs = n
	}
	cfg.OutputFormat = config.OutputFormat(formatChoice)
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Show config preview
	fmt.Println("\n=== Configuration Preview ===")
	fmt.Printf("Config path: %s\n", configPath)
	fmt.Printf("Cache dir: %s\n", cfg.CacheDir)
	fmt.Printf("Cache max entries: %d\n", cfg.CacheMaxEntries)
	fmt.Printf("Jobs: %d\n", cfg.Jobs)
	fmt.Printf("Output format: %s\n", cfg.OutputFormat)
	fmt.Printf("Verbose: %t\n", cfg.Verbose)
	fmt.Println("================================")

	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Configuration saved to: %s\n", configPath)

	// === SECTION 5: Health Check ===
	fmt.Println("\n=== Running Health Check ===")

	loadedCfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading saved config: %w", err)
	}

	result, err := healthcheck.Check(loadedCfg, configPath)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Printf("\nConfig Scope: %s\n", result.ConfigScope)
	if result.ConfigScope == "global" {
		fmt.Printf("Config Path: %s\n", configPath)
	} else {
		absPath, _ := filepath.Abs(configPath)
		fmt.Printf("Config Path: %s\n", absPath)
	}

	fmt.Println()
	printChecks(result)

	fmt.Println("\n=== Initialization Complete ===")
	return nil
}

func init() {
	RootCmd.AddCommand(initCmd)
}

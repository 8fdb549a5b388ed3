// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"sanctions-normalizer/internal/config"
	"sanctions-normalizer/internal/core"
	"sanctions-normalizer/internal/formatters"
	_ "sanctions-normalizer/internal/formatters/csv"
	_ "sanctions-normalizer/internal/formatters/json"
	_ "sanctions-normalizer/internal/formatters/text"
	_ "sanctions-normalizer/internal/formatters/yaml"
	"sanctions-normalizer/internal/help"
	"sanctions-normalizer/internal/observability"
	"sanctions-normalizer/internal/parallel"
	"sanctions-normalizer/internal/paths"
	"sanctions-normalizer/internal/router"
	"sanctions-normalizer/internal/version"

	"golang.org/x/term"
)

const (
	exitFatal     = 1
	exitNoRecords = 2
)

// debugEnv forces debug logging regardless of flags and config.
const debugEnv = "SANCTIONS_NORMALIZER_DEBUG"

// loadConfiguration loads the configuration file or returns default config.
// The returned path is empty when no config file was found.
func loadConfiguration(configFile string) (*config.Config, string) {
	// If config file is not specified, try to find one in standard locations
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		return config.Default(), ""
	}
	return cfg, configPath
}

// configFlags holds command line flag values
type configFlags struct {
	outputFormat     string
	verbose          bool
	debug            bool
	noColor          bool
	recursive        bool
	quiet            bool
	workers          int
	includeDiscarded bool
	includeRaw       bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format          string
	verbose         bool
	debug           bool
	noColor         bool
	recursive       bool
	quiet           bool
	workers         int
	excludePatterns []string
	options         core.Options
}

// resolveConfiguration resolves final configuration values from config file, profile, and command line flags
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "json" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	// Verbose
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil && activeProfile.Verbose {
		final.verbose = true
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if activeProfile != nil && activeProfile.Debug {
		final.debug = true
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// No color
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil && activeProfile.NoColor {
		final.noColor = true
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	// Recursive
	if cfg != nil {
		final.recursive = cfg.Defaults.Recursive
	}
	if activeProfile != nil && activeProfile.Recursive {
		final.recursive = true
	}
	if isFlagSet("recursive") {
		final.recursive = flags.recursive
	}

	// Quiet
	if cfg != nil {
		final.quiet = cfg.Defaults.Quiet
	}
	if isFlagSet("quiet") {
		final.quiet = flags.quiet
	}

	// Workers
	final.workers = parallel.DefaultWorkers() // default fallback
	if cfg != nil && cfg.Defaults.Workers > 0 {
		final.workers = cfg.Defaults.Workers
	}
	if activeProfile != nil && activeProfile.Workers > 0 {
		final.workers = activeProfile.Workers
	}
	if isFlagSet("workers") && flags.workers > 0 {
		final.workers = flags.workers
	}

	// Exclude patterns accumulate
	if cfg != nil {
		final.excludePatterns = append(final.excludePatterns, cfg.Defaults.ExcludePatterns...)
	}
	if activeProfile != nil {
		final.excludePatterns = append(final.excludePatterns, activeProfile.ExcludePatterns...)
	}

	// Extraction options
	final.options = core.BuildOptions(cfg, activeProfile)
	if isFlagSet("include-discarded") {
		final.options.IncludeDiscarded = flags.includeDiscarded
	}
	if isFlagSet("include-raw") {
		final.options.IncludeRawFields = flags.includeRaw
	}

	return final
}

// handleProfiles lists profiles when asked and returns the active profile.
func handleProfiles(cfg *config.Config, listProfiles bool, profileName, configPath string) *config.Profile {
	if listProfiles {
		if configPath == "" {
			fmt.Println("No configuration file found. Built-in profiles:")
		} else {
			fmt.Printf("Available profiles in %s:\n", configPath)
		}
		for _, name := range cfg.ListProfiles() {
			profile := cfg.GetProfile(name)
			if profile != nil && profile.Description != "" {
				fmt.Printf("  - %s: %s\n", name, profile.Description)
			} else {
				fmt.Printf("  - %s\n", name)
			}
		}
		os.Exit(0)
	}

	if profileName == "" {
		return nil
	}
	activeProfile := cfg.GetProfile(profileName)
	if activeProfile == nil {
		fmt.Fprintf(os.Stderr, "Error: Profile '%s' not found\n", profileName)
		fmt.Fprintf(os.Stderr, "Check available profiles with --list-profiles\n")
		os.Exit(exitFatal)
	}
	return activeProfile
}

// collectInputs expands every input path into the files to normalize.
func collectInputs(inputPaths []string, final *finalConfiguration, fileRouter *router.FileRouter, debugObs *observability.DebugObserver) ([]string, []paths.SkippedFile) {
	var files []string
	var skipped []paths.SkippedFile
	seen := make(map[string]bool)

	for _, inputPath := range inputPaths {
		collection, err := paths.CollectFiles(inputPath, paths.CollectOptions{
			Recursive: final.recursive,
			Exclude:   final.excludePatterns,
			Accept:    fileRouter.IsSupported,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			continue
		}
		for _, f := range collection.Files {
			if seen[f] {
				continue
			}
			seen[f] = true
			files = append(files, f)
		}
		skipped = append(skipped, collection.Skipped...)

		if debugObs != nil {
			debugObs.LogDetail("main", fmt.Sprintf("%s: %d files, %d skipped", inputPath, len(collection.Files), len(collection.Skipped)))
		}
	}
	return files, skipped
}

// writeOutput writes result to outputFile, or stdout when outputFile is empty
func writeOutput(outputFile, result string) error {
	if outputFile == "" {
		fmt.Println(result)
		return nil
	}

	cleanOutputPath, err := filepath.Abs(filepath.Clean(outputFile))
	if err != nil {
		return fmt.Errorf("invalid output file path %s: %w", outputFile, err)
	}
	if err := os.MkdirAll(filepath.Dir(cleanOutputPath), 0o700); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	// Normalized sanctions data stays owner-readable only
	if err := os.WriteFile(cleanOutputPath, []byte(result), 0o600); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	return nil
}

func main() {
	// Parse command line flags
	inputFile := flag.String("file", "", "Path to the input file, directory, or glob pattern (e.g., lists/*.xml)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles")
	outputFormat := flag.String("format", "", "Output format: "+strings.Join(config.Formats, ", ")+" (default: json)")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	verbose := flag.Bool("verbose", false, "Display every extracted section in text output")
	debug := flag.Bool("debug", false, "Enable debug logging of discovery and extraction")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	recursive := flag.Bool("recursive", false, "Recursively walk directories")
	quiet := flag.Bool("quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	workers := flag.Int("workers", 0, "Number of files and records processed concurrently")
	includeDiscarded := flag.Bool("include-discarded", false, "Report additional addresses and discovery candidates that lost a tie")
	includeRaw := flag.Bool("include-raw", false, "Include each record's flattened source fields in the output")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	// Auto-detect non-interactive environment
	isInteractive := isTerminal(os.Stderr)
	if !isInteractive || *quiet || os.Getenv("CI") != "" {
		*noColor = true
	}

	// Handle help commands
	if *showHelp {
		helpSystem := help.NewSystem(*noColor)
		for _, provider := range core.BuildHelpProviders() {
			helpSystem.RegisterProvider(provider)
		}

		args := flag.Args()
		switch {
		case len(args) == 0:
			helpSystem.ShowGeneralHelp()
		case len(args) == 1 && strings.EqualFold(args[0], "normalizers"):
			helpSystem.ShowNormalizersHelp()
		case len(args) == 1:
			if !helpSystem.ShowNormalizerHelp(args[0]) {
				os.Exit(exitFatal)
			}
		default:
			fmt.Println("Error: Too many arguments for help command")
			fmt.Println("Use 'sanctions-normalizer --help', 'sanctions-normalizer --help normalizers', or 'sanctions-normalizer --help <normalizer>'")
			os.Exit(exitFatal)
		}
		return
	}

	cfg, configPath := loadConfiguration(*configFile)
	activeProfile := handleProfiles(cfg, *listProfiles, *profileName, configPath)

	finalConfig := resolveConfiguration(cfg, activeProfile, &configFlags{
		outputFormat:     *outputFormat,
		verbose:          *verbose,
		debug:            *debug,
		noColor:          *noColor,
		recursive:        *recursive,
		quiet:            *quiet,
		workers:          *workers,
		includeDiscarded: *includeDiscarded,
		includeRaw:       *includeRaw,
	})
	if *noColor {
		finalConfig.noColor = true
	}
	if os.Getenv(debugEnv) != "" {
		finalConfig.debug = true
	}
	if finalConfig.workers > config.MaxWorkers {
		fmt.Fprintf(os.Stderr, "Error: --workers must be at most %d\n", config.MaxWorkers)
		os.Exit(exitFatal)
	}

	// Create debug observer early for configuration logging
	var mainDebugObs *observability.DebugObserver
	var observer *observability.StandardObserver
	var reporter observability.Reporter = observability.NopReporter{}
	if finalConfig.debug {
		mainDebugObs = observability.NewDebugObserver(os.Stderr)
		observer = mainDebugObs.StandardObserver
		reporter = mainDebugObs
		mainDebugObs.LogDetail("main", fmt.Sprintf("Command line arguments: %v", os.Args))
		if configPath != "" {
			mainDebugObs.LogDetail("config", fmt.Sprintf("Loaded %s", configPath))
		}
		if activeProfile != nil {
			mainDebugObs.LogDetail("config", fmt.Sprintf("Profile: %s", *profileName))
		}
		mainDebugObs.LogDetail("config", fmt.Sprintf("Format: %s, workers: %d, recursive: %v",
			finalConfig.format, finalConfig.workers, finalConfig.recursive))
		mainDebugObs.LogDetail("config", fmt.Sprintf("ID fields: %v", finalConfig.options.IDFields))
	}

	formatter, exists := formatters.Get(finalConfig.format)
	if !exists {
		fmt.Fprintf(os.Stderr, "Error: Unsupported output format '%s'\n", finalConfig.format)
		fmt.Fprintf(os.Stderr, "Use one of: %s\n", strings.Join(formatters.List(), ", "))
		os.Exit(exitFatal)
	}

	// Handle file arguments, including shell-expanded globs
	var inputPaths []string
	if *inputFile != "" {
		inputPaths = append(inputPaths, *inputFile)
	}
	inputPaths = append(inputPaths, flag.Args()...)
	if len(inputPaths) == 0 {
		fmt.Fprintf(os.Stderr, "Error: Input file or directory is required\n")
		fmt.Fprintf(os.Stderr, "Use 'sanctions-normalizer --help' for usage\n")
		os.Exit(exitFatal)
	}

	fileRouter := router.NewFileRouter(observer)
	var finishCollect func(bool, string)
	if mainDebugObs != nil {
		finishCollect = mainDebugObs.StartStep("main", "collect_files", strings.Join(inputPaths, ", "))
	}
	filesToProcess, skipped := collectInputs(inputPaths, finalConfig, fileRouter, mainDebugObs)
	if finishCollect != nil {
		finishCollect(len(filesToProcess) > 0, fmt.Sprintf("%d files", len(filesToProcess)))
	}
	if len(filesToProcess) == 0 {
		fmt.Fprintf(os.Stderr, "Error: No supported files found (supported: %s)\n", strings.Join(fileRouter.SupportedExtensions(), ", "))
		os.Exit(exitFatal)
	}

	showProgress := !finalConfig.debug && !finalConfig.quiet && isInteractive
	if !finalConfig.quiet {
		fmt.Fprintf(os.Stderr, "Normalizing %d files...\n", len(filesToProcess))
		if len(skipped) > 0 {
			fmt.Fprintf(os.Stderr, "Skipped %d files\n", len(skipped))
		}
	}
	if mainDebugObs != nil {
		for _, s := range skipped {
			mainDebugObs.LogDetail("main", fmt.Sprintf("skipped %s: %s", s.Path, s.Reason))
		}
	}

	// Progress bar function with ETA
	progressStart := time.Now()
	updateProgress := func(current, total int, _ string) {
		if !showProgress {
			return
		}
		percent := float64(current) / float64(total) * 100
		barWidth := 40
		filledWidth := int(float64(barWidth) * float64(current) / float64(total))
		bar := strings.Repeat("█", filledWidth) + strings.Repeat("░", barWidth-filledWidth)

		var etaStr string
		if current > 0 {
			avgTime := time.Since(progressStart) / time.Duration(current)
			etaStr = fmt.Sprintf(" ETA: %s", (time.Duration(total-current) * avgTime).Round(time.Second))
		}

		fmt.Fprintf(os.Stderr, "\r[%s] %d/%d files (%.1f%%)%s", bar, current, total, percent, etaStr)
		if current == total {
			fmt.Fprintf(os.Stderr, "\n")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := core.NormalizeFiles(ctx, core.NormalizeConfig{
		Files:    filesToProcess,
		Workers:  finalConfig.workers,
		Options:  finalConfig.options,
		Observer: observer,
		Reporter: reporter,
		Progress: updateProgress,
		Router:   fileRouter,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFatal)
	}

	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", failure)
	}

	output, err := formatter.Format(formatters.Report{
		Documents: result.Documents,
		Failures:  result.Failures,
	}, formatters.FormatterOptions{
		Verbose: finalConfig.verbose,
		NoColor: finalConfig.noColor || *outputFile != "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(exitFatal)
	}

	if err := writeOutput(*outputFile, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFatal)
	}

	if !finalConfig.quiet {
		fmt.Fprintf(os.Stderr, "Normalized %d records from %d files in %s (%d failed)\n",
			result.RecordCount, len(result.Documents), result.Stats.TotalDuration.Round(time.Millisecond), len(result.Failures))
	}
	if mainDebugObs != nil {
		mainDebugObs.LogMetric("main", "records", result.RecordCount)
		mainDebugObs.LogMetric("main", "avg_file_ms", result.Stats.AvgFileTime.Milliseconds())
	}

	if result.RecordCount == 0 {
		os.Exit(exitNoRecords)
	}
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskutils/of2tw/convert"
	"github.com/taskutils/of2tw/fieldmap"
	"github.com/taskutils/of2tw/omnifocus"
)

const (
	defaultInputPath  = "omnifocus.csv"
	defaultOutputPath = "taskwarrior.json"
)

var cfg = viper.New()

var rootCmd = &cobra.Command{
	Use:   "of2tw",
	Short: "Convert an OmniFocus CSV export to TaskWarrior import JSON",
	Long: `of2tw converts the CSV export produced by OmniFocus into the JSON
format TaskWarrior uses for imports.

OmniFocus nests projects and actions in an outline; TaskWarrior has a
flat project namespace. The converter infers the outline hierarchy from
the export and re-expresses it as dot-notation project names, so the
action "Fix gutter" nested under Home > Maintenance imports with
project "Home.Maintenance".

Column names have changed between OmniFocus versions. If your export
uses different headers, supply a YAML field map via --field-map that
assigns each header to one of: tree-id, name, context, start, due,
completion, flagged, notes, or an empty string to ignore the column.

Configuration sources (in order of precedence): command line flags,
OF2TW_* environment variables, an of2tw.yaml config file in the current
directory or $HOME/.config/of2tw.`,
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	flags := rootCmd.Flags()

	flags.StringP("input", "i", defaultInputPath, "path to the OmniFocus CSV export")
	flags.StringP("output", "o", defaultOutputPath, "path to write TaskWarrior import JSON")
	flags.BoolP("append", "a", false, "append to the output file instead of overwriting")
	flags.BoolP("verbose", "v", false, "log conversion details")
	flags.String("log-level", "warn", "log level: debug|info|warn|error")
	flags.String("field-map", "", "YAML file overriding the CSV column mapping")
	flags.Bool("date-only", false, "truncate dates to local midnight before converting")
	flags.Bool("start-date-is-wait", false, "map start dates to the wait attribute as well as scheduled")
	flags.Bool("context-as-tag", false, "convert contexts to tags")
	flags.Bool("flagged-to-high-priority", false, "convert flagged actions to high priority tasks")
	flags.Bool("flagged-as-tag", false, "convert flagged actions to a 'flagged' tag")
	flags.Bool("standardize-project-names", false, "camel case and strip punctuation from project names")
	flags.Bool("export-notes", false, "export notes to a 'notes' UDA, creating 'Notes' tasks for project notes")

	cobra.OnInitialize(initConfig)
	if err := cfg.BindPFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initConfig wires environment variables and the optional config file
// into viper. Flags keep the highest precedence.
func initConfig() {
	cfg.SetEnvPrefix("OF2TW")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	cfg.SetConfigName("of2tw")
	cfg.SetConfigType("yaml")
	cfg.AddConfigPath(".")
	cfg.AddConfigPath("$HOME/.config/of2tw")

	// A missing config file is fine; only flags and env remain.
	_ = cfg.ReadInConfig()
}

func runConvert(cmd *cobra.Command, args []string) error {
	initLogging(cfg.GetString("log-level"), cfg.GetBool("verbose"))

	opts := convert.Options{
		IncludeContextAsTag:     cfg.GetBool("context-as-tag"),
		IncludeFlaggedAsTag:     cfg.GetBool("flagged-as-tag"),
		MapFlaggedToPriority:    cfg.GetBool("flagged-to-high-priority"),
		IncludeNotes:            cfg.GetBool("export-notes"),
		MapStartDateToWait:      cfg.GetBool("start-date-is-wait"),
		DateOnly:                cfg.GetBool("date-only"),
		StandardizeProjectNames: cfg.GetBool("standardize-project-names"),
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	fields := fieldmap.Default()
	if path := cfg.GetString("field-map"); path != "" {
		var err error
		fields, err = fieldmap.Load(path)
		if err != nil {
			return err
		}
		slog.Debug("loaded field map override", "path", path)
	}

	inputPath := cfg.GetString("input")
	input, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input %s: %w", inputPath, err)
	}
	defer func() { _ = input.Close() }()

	records, err := omnifocus.ReadRecords(input, fields)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	slog.Debug("read outline records", "path", inputPath, "records", len(records))

	result, err := convert.New(opts).Convert(records)
	if err != nil {
		return fmt.Errorf("conversion failed, no output written: %w", err)
	}

	outputPath := cfg.GetString("output")
	if err := writeTasks(outputPath, result.Tasks, cfg.GetBool("append")); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	slog.Info("conversion complete",
		"records", result.Summary.TotalRecords,
		"tasks", result.Summary.Tasks,
		"containers", result.Summary.Containers,
		"note_tasks", result.Summary.NoteTasks,
		"output", outputPath)

	fmt.Printf("Converted %d records into %d tasks (%s)\n",
		result.Summary.TotalRecords, len(result.Tasks), outputPath)
	return nil
}

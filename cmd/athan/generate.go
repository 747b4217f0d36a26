package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/athan/internal/calendar"
	"github.com/Nixie-Tech-LLC/athan/internal/config"
	"github.com/Nixie-Tech-LLC/athan/internal/loader"
)

var genFlags struct {
	year          int
	input         string
	format        string
	output        string
	version       string
	weekStart     string
	events        string
	hadith        string
	granularities string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and publish the calendar documents for one year",
	Example: `  athan generate --year 2024 --input ./data/2024 --events ./data/events.csv
  athan generate --year 2025 --input ./data/2025 --week-start sunday --granularities year,week`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&genFlags.year, "year", 0, "Gregorian year to generate (default ATHAN_YEAR or the current year)")
	f.StringVar(&genFlags.input, "input", "", "directory holding the month files")
	f.StringVar(&genFlags.format, "format", "", "month file format: json or csv")
	f.StringVar(&genFlags.output, "output", "", "output directory for local storage")
	f.StringVar(&genFlags.version, "output-version", "", "version prefix of every document key")
	f.StringVar(&genFlags.weekStart, "week-start", "", "first day of the week, e.g. saturday")
	f.StringVar(&genFlags.events, "events", "", "events CSV (date,ar,en)")
	f.StringVar(&genFlags.hadith, "hadith", "", "weekly hadith CSV (week,text,note)")
	f.StringVar(&genFlags.granularities, "granularities", "", "comma separated subset of day,week,month,year")
}

// applyGenerateFlags overrides the environment with every flag that was set.
func applyGenerateFlags(cmd *cobra.Command, gen *config.Generation) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("year") {
		gen.Year = genFlags.year
	}
	if flags.Changed("input") {
		gen.InputDir = genFlags.input
	}
	if flags.Changed("format") {
		if gen.InputFormat, err = loader.ParseFormat(genFlags.format); err != nil {
			return err
		}
	}
	if flags.Changed("output") {
		gen.OutputDir = genFlags.output
	}
	if flags.Changed("output-version") {
		gen.OutputVersion = genFlags.version
	}
	if flags.Changed("week-start") {
		if gen.WeekStart, err = calendar.ParseWeekday(genFlags.weekStart); err != nil {
			return err
		}
	}
	if flags.Changed("events") {
		gen.EventsFile = genFlags.events
	}
	if flags.Changed("hadith") {
		gen.HadithFile = genFlags.hadith
	}
	if flags.Changed("granularities") {
		if gen.Granularities, err = calendar.ParseGranularities(genFlags.granularities); err != nil {
			return err
		}
	}
	return gen.Validate()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := applyGenerateFlags(cmd, &cfg.Generation); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	report, _, err := b.pipeline.Run(ctx, cfg.Generation)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

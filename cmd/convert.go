// =============================================================================
// dzcb - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which runs the whole pipeline.
//
// COMMAND USAGE:
//   dzcb convert [INPUT_DIR] [OUTPUT_DIR] [flags]
//
// FLAGS:
//   --radio    : Radios to generate: 878, 890 or both (repeatable)
//   --sort     : Zone ordering: alpha, repeaters-first or analog-first
//   --summary  : Write manifest.yaml to the output directory
//   --xlsx     : Write a review workbook per radio
//   --strict   : Fail when validation reports warnings
//
// Arguments and flags override the configuration file and environment.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mycodeplug/dzcb/internal/converter"
	"github.com/mycodeplug/dzcb/internal/models"
)

// convertFlags are the local flags of the convert command.
type convertFlags struct {
	radios  []string
	sort    string
	summary bool
	xlsx    bool
	strict  bool
}

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

func newConvertCmd(a *app) *cobra.Command {
	f := &convertFlags{}

	convertCmd := &cobra.Command{
		Use:   "convert [INPUT_DIR] [OUTPUT_DIR]",
		Short: "Convert K7ABD CSV files to Anytone CPS files",
		Long: `The convert command reads every K7ABD file in INPUT_DIR, assembles the
codeplug and writes one directory of CPS import files per radio under
OUTPUT_DIR:

  OUTPUT_DIR/878/TalkGroups.CSV, Channel.CSV, Zone.CSV, ScanList.CSV
  OUTPUT_DIR/890/TalkGroups.CSV, Channel.CSV, Zone.CSV, ScanList.CSV

Rows that cannot be parsed are skipped with a warning. All input is read
before any file is written.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.apply(cmd, a, args); err != nil {
				return err
			}
			return runConvert(cmd, a)
		},
	}

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	convertCmd.Flags().StringSliceVar(
		&f.radios,
		"radio",
		nil,
		"Radios to generate: 878, 890 or both (default both)",
	)
	convertCmd.Flags().StringVar(
		&f.sort,
		"sort",
		"",
		fmt.Sprintf("Zone ordering: %v (default alpha)", models.SortModes()),
	)
	convertCmd.Flags().BoolVar(
		&f.summary,
		"summary",
		false,
		"Write manifest.yaml to the output directory",
	)
	convertCmd.Flags().BoolVar(
		&f.xlsx,
		"xlsx",
		false,
		"Write a review workbook per radio",
	)
	convertCmd.Flags().BoolVar(
		&f.strict,
		"strict",
		false,
		"Fail when validation reports warnings",
	)

	return convertCmd
}

// apply overrides the loaded configuration with arguments and flags that
// were given explicitly.
func (f *convertFlags) apply(cmd *cobra.Command, a *app, args []string) error {
	cfg := a.cfg
	if len(args) > 0 {
		cfg.InputDir = args[0]
	}
	if len(args) > 1 {
		cfg.OutputDir = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("radio") {
		cfg.Radios = f.radios
	}
	if flags.Changed("sort") {
		cfg.Sort = f.sort
	}
	if flags.Changed("summary") {
		cfg.WriteSummary = f.summary
	}
	if flags.Changed("xlsx") {
		cfg.WriteWorkbook = f.xlsx
	}
	if flags.Changed("strict") {
		cfg.Strict = f.strict
	}

	if cfg.InputDir == "" {
		return errors.New("input directory is required")
	}
	return cfg.Validate()
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()

	result := converter.New(a.cfg, a.log, Version).Run()
	if result.Error != nil {
		return result.Error
	}

	fmt.Fprintln(out, "=== dzcb ===")
	fmt.Fprintf(out, "Run ID:          %s\n", result.RunID)
	fmt.Fprintf(out, "Sources read:    %d\n", result.Stats.Sources)
	fmt.Fprintf(out, "Rows skipped:    %d\n", result.Stats.SkippedRows)
	fmt.Fprintf(out, "Warnings:        %d\n", result.Stats.ValidationWarnings)
	for _, o := range result.Outputs {
		fmt.Fprintf(out, "  ✓ %-16s %d channels, %d zones -> %s\n",
			o.Radio.Name, len(o.Codeplug.Channels), len(o.Codeplug.Zones), o.Dir)
	}
	for _, path := range result.Workbooks {
		fmt.Fprintf(out, "Workbook:        %s\n", path)
	}
	if result.SummaryFile != "" {
		fmt.Fprintf(out, "Summary:         %s\n", filepath.Clean(result.SummaryFile))
	}
	fmt.Fprintf(out, "Time elapsed:    %s\n", result.Stats.ProcessingTime)
	return nil
}

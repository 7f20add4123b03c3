// =============================================================================
// dzcb - Converter Module
// =============================================================================
//
// This module orchestrates one conversion run, from the K7ABD input
// directory to the Anytone CPS files.
//
// CONVERSION PIPELINE:
//   1. Read every input file and workbook sheet
//   2. Assemble the codeplug
//   3. Validate the codeplug against each radio's limits
//   4. Write the CPS files for each radio
//   5. Optionally write a review workbook per radio
//   6. Optionally write the run summary (manifest.yaml)
//
// All input is read before anything is written. Radios are generated one
// after the other.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/mycodeplug/dzcb/internal/anytone"
	"github.com/mycodeplug/dzcb/internal/assembler"
	"github.com/mycodeplug/dzcb/internal/config"
	"github.com/mycodeplug/dzcb/internal/k7abd"
	"github.com/mycodeplug/dzcb/internal/models"
	"github.com/mycodeplug/dzcb/internal/validation"
	"github.com/mycodeplug/dzcb/internal/workbook"
	"github.com/mycodeplug/dzcb/pkg/utils"
)

// ErrValidation is returned when the codeplug fails validation.
var ErrValidation = errors.New("codeplug failed validation")

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion run.
type Result struct {
	// RunID identifies the run in logs and in the summary.
	RunID string

	// Success indicates whether every radio was generated.
	Success bool

	// Error is nil if the run succeeded.
	Error error

	// Codeplug is the assembled codeplug before band filtering.
	Codeplug models.Codeplug

	// Outputs holds one entry per generated radio.
	Outputs []*anytone.Output

	// Workbooks lists the review workbooks written.
	Workbooks []string

	// SummaryFile is the path of manifest.yaml, if written.
	SummaryFile string

	Stats ProcessingStats
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	// Sources is the number of files and sheets read.
	Sources int

	// SkippedRows is the number of input rows dropped with a warning.
	SkippedRows int

	// ValidationWarnings and ValidationErrors count problems across radios.
	ValidationWarnings int
	ValidationErrors   int

	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter runs conversions.
type Converter struct {
	cfg     *config.Config
	log     *zap.Logger
	version string
}

// New creates a Converter. A nil logger discards log output.
//
// PARAMETERS:
//   - cfg: The run settings.
//   - log: The logger. Every line is tagged with the run id.
//   - version: The program version recorded in the summary.
func New(cfg *config.Config, log *zap.Logger, version string) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{cfg: cfg, log: log, version: version}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline.
func (c *Converter) Run() (result Result) {
	start := time.Now()
	result.RunID = utils.NewRunID()
	log := c.log.With(zap.String("run_id", result.RunID))
	defer func() {
		result.Stats.ProcessingTime = time.Since(start)
	}()

	mode, err := models.ParseSortMode(c.cfg.Sort)
	if err != nil {
		result.Error = err
		return result
	}
	radioIDs, err := anytone.ParseRadioIDs(c.cfg.Radios...)
	if err != nil {
		result.Error = err
		return result
	}

	log.Info("Starting conversion",
		zap.String("input", c.cfg.InputDir),
		zap.String("output", c.cfg.OutputDir),
		zap.Strings("radios", radioIDs),
		zap.String("sort", string(mode)),
	)

	// =========================================================================
	// STEP 1: READ INPUTS
	// =========================================================================

	in, err := k7abd.Load(c.cfg.InputDir, mode, log)
	if err != nil {
		result.Error = fmt.Errorf("failed to read inputs: %w", err)
		return result
	}
	result.Stats.Sources = len(in.Sources)
	result.Stats.SkippedRows = len(in.Issues)
	if len(in.Sources) == 0 {
		log.Warn("No K7ABD input files found", zap.String("dir", c.cfg.InputDir))
	}

	// =========================================================================
	// STEP 2: ASSEMBLE
	// =========================================================================

	cp := assembler.New(mode, log).Build(in.RepeaterZones, in.OtherZones)
	result.Codeplug = cp
	log.Info("Loaded codeplug",
		zap.Int("contacts", len(cp.Contacts)),
		zap.Int("channels", len(cp.Channels)),
		zap.Int("zones", len(cp.Zones)),
		zap.Int("scanlists", len(cp.ScanLists)),
	)

	// =========================================================================
	// STEP 3: VALIDATE
	// =========================================================================

	warnings := make(map[string]int, len(radioIDs))
	valid := true
	for _, id := range radioIDs {
		radio, err := anytone.Lookup(id)
		if err != nil {
			result.Error = err
			return result
		}
		vr := c.validator().ValidateAll(radio.Filter(cp))
		for _, v := range vr.Errors {
			fields := []zap.Field{
				zap.String("radio", id),
				zap.String("entity", v.Entity),
				zap.String("name", v.Name),
				zap.String("rule", v.Rule),
				zap.String("value", v.Value),
			}
			if v.Severity == validation.SeverityError {
				log.Error(v.Message, fields...)
			} else {
				log.Warn(v.Message, fields...)
			}
		}
		warnings[id] = vr.WarningCount
		result.Stats.ValidationWarnings += vr.WarningCount
		result.Stats.ValidationErrors += vr.ErrorCount
		valid = valid && vr.IsValid
	}
	if !valid {
		result.Error = fmt.Errorf("%w: %d error(s), %d warning(s)",
			ErrValidation, result.Stats.ValidationErrors, result.Stats.ValidationWarnings)
		return result
	}

	// =========================================================================
	// STEP 4: GENERATE
	// =========================================================================

	fm := utils.NewFileManager(c.cfg.InputDir, c.cfg.OutputDir)
	if _, err := fm.EnsureOutputDir(); err != nil {
		result.Error = err
		return result
	}

	outputs, err := anytone.NewGenerator(log).GenerateAll(cp, c.cfg.OutputDir, radioIDs)
	result.Outputs = outputs
	if err != nil {
		result.Error = fmt.Errorf("failed to generate codeplug: %w", err)
		return result
	}

	// =========================================================================
	// STEP 5: REVIEW WORKBOOKS
	// =========================================================================

	if c.cfg.WriteWorkbook {
		for _, out := range outputs {
			path := filepath.Join(c.cfg.OutputDir, out.Radio.ID+".xlsx")
			if err := workbook.Write(path, sheets(out.Tables)); err != nil {
				result.Error = fmt.Errorf("failed to write review workbook: %w", err)
				return result
			}
			result.Workbooks = append(result.Workbooks, path)
			log.Info("Wrote review workbook", zap.String("file", path))
		}
	}

	// =========================================================================
	// STEP 6: SUMMARY
	// =========================================================================

	if c.cfg.WriteSummary {
		summary := c.summary(result, in, mode, warnings, start)
		path, err := utils.WriteSummary(summary, c.cfg.OutputDir)
		if err != nil {
			result.Error = err
			return result
		}
		result.SummaryFile = path
		log.Info("Wrote run summary", zap.String("file", path))
	}

	result.Success = true
	log.Info("Conversion complete", zap.Duration("elapsed", time.Since(start)))
	return result
}

func (c *Converter) validator() *validation.Validator {
	opts := validation.DefaultValidationOptions()
	opts.TreatWarningsAsErrors = c.cfg.Strict
	return validation.NewValidatorWithOptions(opts)
}

// sheets converts CPS tables to workbook sheets, header row first.
func sheets(tables []anytone.Table) []workbook.Sheet {
	out := make([]workbook.Sheet, 0, len(tables))
	for _, t := range tables {
		rows := make([][]string, 0, len(t.Rows)+1)
		rows = append(rows, t.Header)
		rows = append(rows, t.Rows...)
		out = append(out, workbook.Sheet{Name: t.Name, Rows: rows})
	}
	return out
}

func (c *Converter) summary(result Result, in *k7abd.Input, mode models.SortMode, warnings map[string]int, start time.Time) utils.RunSummary {
	cp := result.Codeplug
	summary := utils.RunSummary{
		RunID:       result.RunID,
		Version:     c.version,
		StartTime:   start.UTC(),
		EndTime:     time.Now().UTC(),
		InputDir:    c.cfg.InputDir,
		OutputDir:   c.cfg.OutputDir,
		SortMode:    string(mode),
		Inputs:      in.Sources,
		SkippedRows: len(in.Issues),
		Contacts:    len(cp.Contacts),
		Channels:    len(cp.Channels),
		Zones:       len(cp.Zones),
		ScanLists:   len(cp.ScanLists),
	}
	for _, out := range result.Outputs {
		rs := utils.RadioSummary{
			ID:        out.Radio.ID,
			Name:      out.Radio.Name,
			Contacts:  out.Contacts(),
			Channels:  len(out.Codeplug.Channels),
			Zones:     len(out.Codeplug.Zones),
			ScanLists: len(out.Codeplug.ScanLists),
			Warnings:  warnings[out.Radio.ID],
		}
		for _, f := range out.Files {
			if rel, err := filepath.Rel(c.cfg.OutputDir, f); err == nil {
				f = filepath.ToSlash(rel)
			}
			rs.Files = append(rs.Files, f)
		}
		summary.Radios = append(summary.Radios, rs)
	}
	return summary
}

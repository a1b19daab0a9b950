// Package pipeline orchestrates one normalization run: read workbook,
// normalize, validate, write artifacts, apply the strict gate. The flow is
// strictly one way and single threaded; the whole table lives in memory.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"loannorm/internal/errors"
	"loannorm/internal/exporter"
	"loannorm/internal/normalize"
	"loannorm/internal/validation"
	"loannorm/pkg/contracts/domain"
)

// Options configures one run.
type Options struct {
	// InputPath is the dirty source workbook.
	InputPath string
	// OutputPath names the requested normalized workbook; the actual file is
	// written under the run directory with the same base name, and the run
	// directory is nested under OutputPath's parent.
	OutputPath string
	// Strict makes the run fail when any ERROR issue exists. Artifacts are
	// written first; the failure is a gate, not a rollback.
	Strict bool
}

// Result reports where a finished run put its artifacts.
type Result struct {
	RunDir     string
	OutputFile string
	IssuesFile string
	Summary    *domain.RunSummary
}

// Runner executes normalization runs.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a runner. A nil logger falls back to slog.Default.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run executes the full pipeline. Precondition failures (unreadable input,
// missing required columns) abort before any artifact directory is created;
// per-row business-rule violations never abort, they are reported in
// issues.csv and, under Strict, turned into a final VALIDATION error after
// all artifacts are on disk.
func (r *Runner) Run(opts Options) (*Result, error) {
	startedAt := time.Now()

	fv := validation.NewFileValidator(r.logger)
	if err := fv.ValidateInputFile(opts.InputPath); err != nil {
		return nil, errors.NewStorageError("input file check failed", err)
	}

	r.logger.Info("Loading workbook", slog.String("input", opts.InputPath))
	table, err := normalize.ReadWorkbook(opts.InputPath)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Rows read", slog.Int("rows", len(table.Rows)))

	r.logger.Info("Normalizing columns")
	stats, err := normalize.Table(table)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Validating business rules")
	issues := validation.Table(table)
	numErrors, numWarn := validation.Count(issues)
	r.logger.Info("Validation finished",
		slog.Int("errors", numErrors),
		slog.Int("warnings", numWarn))

	runDir, err := exporter.MakeRunDir(filepath.Dir(opts.OutputPath))
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunDir:     runDir,
		OutputFile: filepath.Join(runDir, filepath.Base(opts.OutputPath)),
		IssuesFile: filepath.Join(runDir, "issues.csv"),
	}

	hasIssues, err := exporter.WriteIssuesCSV(issues, result.IssuesFile)
	if err != nil {
		return nil, err
	}
	if hasIssues {
		r.logger.Warn("Issues found", slog.String("issues_file", result.IssuesFile))
	}

	r.logger.Info("Writing normalized workbook", slog.String("output", result.OutputFile))
	if err := exporter.WriteWorkbook(table, result.OutputFile); err != nil {
		return nil, err
	}

	summary := &domain.RunSummary{
		RunID:      uuid.NewString(),
		StartedAt:  startedAt.Format("2006-01-02T15:04:05"),
		InputFile:  opts.InputPath,
		OutputFile: result.OutputFile,
		Rows:       len(table.Rows),
		Cols:       len(table.Columns),
		NumErrors:  numErrors,
		NumWarn:    numWarn,
		Notes:      domain.RunNotes{TransformStats: stats},
	}
	result.Summary = summary

	if err := exporter.WriteSummary(summary, filepath.Join(runDir, "summary.json")); err != nil {
		return nil, err
	}

	r.logger.Info("Artifacts written", slog.String("run_dir", runDir))

	// Strict gate runs last so a failing run still leaves its artifacts.
	if opts.Strict && validation.HasErrors(issues) {
		r.logger.Error("Strict mode failure",
			slog.Int("errors", numErrors),
			slog.String("issues_file", result.IssuesFile))
		return result, errors.NewValidationError(
			fmt.Sprintf("strict mode: %d ERROR issues found, see %s", numErrors, result.IssuesFile))
	}

	return result, nil
}

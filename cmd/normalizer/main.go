package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"loannorm/internal/config"
	"loannorm/internal/infrastructure"
	"loannorm/internal/pipeline"
)

func main() {
	in := flag.String("in", "", "input .xlsx file with raw loan-contract records (required)")
	out := flag.String("out", "", "requested output .xlsx path; artifacts go to <parent>/runs/<timestamp>/ (defaults to <data_dir>/normalizado.xlsx)")
	strict := flag.Bool("strict", false, "fail (non-zero exit) when any ERROR issue is found; artifacts are still written")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if *in == "" {
		logger.Error("Missing required -in flag")
		flag.Usage()
		os.Exit(2)
	}
	if *out == "" {
		*out = filepath.Join(cfg.Paths.DataDir, "normalizado.xlsx")
	}

	logger.Info("Starting normalization run",
		slog.String("input", *in),
		slog.String("output", *out),
		slog.Bool("strict", *strict))

	runner := pipeline.NewRunner(logger)
	result, err := runner.Run(pipeline.Options{
		InputPath:  *in,
		OutputPath: *out,
		Strict:     *strict,
	})
	if err != nil {
		logger.Error("Run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Run complete",
		slog.String("run_dir", result.RunDir),
		slog.Int("rows", result.Summary.Rows),
		slog.Int("errors", result.Summary.NumErrors),
		slog.Int("warnings", result.Summary.NumWarn))
}

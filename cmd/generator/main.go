package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"loannorm/internal/config"
	"loannorm/internal/generator"
	"loannorm/internal/infrastructure"
)

func main() {
	rows := flag.Int("rows", 200, "number of rows to generate")
	out := flag.String("out", "", "output .xlsx path (defaults to <data_dir>/exemplo_sujo.xlsx)")
	mode := flag.String("mode", "realistic", "simple | realistic")
	seed := flag.Int64("seed", 0, "random seed; 0 uses the current time")
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

	if *out == "" {
		*out = filepath.Join(cfg.Paths.DataDir, "exemplo_sujo.xlsx")
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		logger.Error("Failed to create output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gen := generator.New(*seed)
	if err := gen.WriteWorkbook(*out, *rows, generator.Mode(*mode)); err != nil {
		logger.Error("Failed to generate fixture", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Fixture generated",
		slog.String("path", *out),
		slog.Int("rows", *rows),
		slog.String("mode", *mode),
		slog.Int64("seed", *seed))
}

package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator provides input/output file checks shared by the CLIs.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateInputFile checks that the input workbook exists, is a regular file
// and carries the .xlsx extension.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input file does not exist", slog.String("path", path))
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected an .xlsx file", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		v.logger.Warn("Input file does not have .xlsx extension", slog.String("path", path))
	}
	return nil
}

// ValidateOutputDirectory ensures the output directory exists or can be
// created, and is writable.
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("test"), 0644); err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	_ = os.Remove(probe)

	return nil
}

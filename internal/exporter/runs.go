// Package exporter writes the per-run artifacts: the timestamped run
// directory, the normalized workbook, issues.csv and summary.json.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"loannorm/internal/errors"
	"loannorm/pkg/contracts/domain"
)

// runDirLayout is the sortable timestamp used for run directory names.
// Resolution is one second; two runs inside the same second share a
// directory and the later one wins.
const runDirLayout = "2006-01-02_15-04-05"

// MakeRunDir creates <base>/runs/<timestamp>/ with parents and returns its
// path.
func MakeRunDir(baseOutputDir string) (string, error) {
	runDir := filepath.Join(baseOutputDir, "runs", time.Now().Format(runDirLayout))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to create run directory %s", runDir), err)
	}
	return runDir, nil
}

// WriteSummary serializes the run summary as indented UTF-8 JSON, creating
// parent directories as needed and overwriting any existing file.
func WriteSummary(summary *domain.RunSummary, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create summary directory", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to marshal run summary", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write summary %s", path), err)
	}
	return nil
}

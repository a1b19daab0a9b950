package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"loannorm/internal/errors"
	"loannorm/pkg/contracts/domain"
)

// issuesHeader matches the vocabulary of the source reports.
var issuesHeader = []string{"Severidade", "Linha", "Contrato", "Cliente", "Mensagem"}

// WriteIssuesCSV writes the issues report. With zero issues it removes any
// stale file at path — absence of issues.csv is how a clean run is signalled
// — and returns false. Otherwise it writes one row per issue, in order, and
// returns true. A UTF-8 BOM is prepended so Excel renders the accented text
// correctly.
func WriteIssuesCSV(issues []domain.Issue, path string) (bool, error) {
	if len(issues) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return false, errors.NewStorageError(fmt.Sprintf("failed to remove stale issues file %s", path), err)
		}
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, errors.NewStorageError("failed to create issues directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return false, errors.NewStorageError(fmt.Sprintf("failed to create issues file %s", path), err)
	}
	defer file.Close()

	// UTF-8 BOM for Excel compatibility.
	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return false, errors.NewStorageError("failed to write BOM", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(issuesHeader); err != nil {
		return false, errors.NewStorageError("failed to write issues header", err)
	}

	for i, issue := range issues {
		record := []string{
			string(issue.Severity),
			strconv.Itoa(issue.Row),
			issue.Contrato,
			issue.Cliente,
			issue.Message,
		}
		if err := writer.Write(record); err != nil {
			return false, errors.NewStorageError(fmt.Sprintf("failed to write issue %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return false, errors.NewStorageError("failed to flush issues file", err)
	}
	return true, nil
}

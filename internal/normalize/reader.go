package normalize

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"loannorm/internal/errors"
	"loannorm/pkg/contracts/domain"
)

// ReadWorkbook loads the first sheet of an xlsx file into an in-memory table.
// The first row is the header; every cell below it starts out as a raw string
// cell for the parsers to work on. Short rows are padded so each row has one
// cell per column.
func ReadWorkbook(filePath string) (*domain.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to open workbook %s", filePath), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("workbook %s has no sheets", filePath), nil)
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("failed to read sheet %s", sheetName), err)
	}
	if len(rows) == 0 {
		return nil, errors.NewParsingError(fmt.Sprintf("sheet %s is empty", sheetName), nil)
	}

	slog.Debug("Workbook loaded",
		slog.String("file", filePath),
		slog.String("sheet", sheetName),
		slog.Int("total_rows", len(rows)))

	table := &domain.Table{Columns: append([]string(nil), rows[0]...)}

	for _, row := range rows[1:] {
		cells := make([]domain.Cell, len(table.Columns))
		for i := range cells {
			if i < len(row) && row[i] != "" {
				cells[i] = domain.StringCell(row[i])
			} else {
				cells[i] = domain.EmptyCell()
			}
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

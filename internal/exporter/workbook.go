package exporter

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"loannorm/internal/errors"
	"loannorm/internal/schema"
	"loannorm/pkg/contracts/domain"
)

const sheetName = "Sheet1"

// maxColumnWidth caps auto-sized column widths in character units.
const maxColumnWidth = 45

// Column classes drive the number format applied to each column.
var (
	dateColumns = map[string]bool{
		schema.ColEmissao:       true,
		schema.ColDataPagamento: true,
	}
	moneyColumns = map[string]bool{
		schema.ColVlrLiberado:    true,
		schema.ColValorCancelado: true,
		schema.ColValorPago:      true,
		schema.ColValorDevolvido: true,
	}
	rateColumns = map[string]bool{schema.ColTaxa: true}
	intColumns  = map[string]bool{schema.ColPrazo: true}
	textColumns = map[string]bool{schema.ColContrato: true}
)

// WriteWorkbook saves the normalized table as a styled xlsx: frozen header
// row, bold centered header, top-aligned body, per-column number formats and
// auto-sized column widths.
func WriteWorkbook(t *domain.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), sheetName)

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.NewStorageError("invalid header coordinates", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to write header %s", col), err)
		}
	}

	for r, row := range t.Rows {
		for c, cellValue := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.NewStorageError("invalid cell coordinates", err)
			}
			if err := setCell(f, cell, t.Columns[c], cellValue); err != nil {
				return err
			}
		}
	}

	if err := applyStyles(f, t); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save workbook %s", path), err)
	}
	return nil
}

// setCell writes one cell with the Go type excelize expects for the column's
// number format. Numeric-looking strings in numeric columns (Prazo arrives as
// text from the reader) are written as numbers so the format applies.
func setCell(f *excelize.File, cell, column string, value domain.Cell) error {
	if value.IsEmpty() {
		return nil
	}

	var v interface{}
	switch value.Kind {
	case domain.CellDate:
		v = value.Date
	case domain.CellNumber:
		v = value.Num
	default:
		s := value.Str
		if (intColumns[column] || moneyColumns[column] || rateColumns[column]) && s != "" {
			if n, err := strconv.ParseFloat(s, 64); err == nil {
				v = n
				break
			}
		}
		v = s
	}

	if err := f.SetCellValue(sheetName, cell, v); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write cell %s", cell), err)
	}
	return nil
}

func applyStyles(f *excelize.File, t *domain.Table) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return errors.NewStorageError("failed to create header style", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return errors.NewStorageError("invalid column count", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return errors.NewStorageError("failed to style header row", err)
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return errors.NewStorageError("failed to freeze header row", err)
	}

	if len(t.Rows) > 0 {
		for i, col := range t.Columns {
			bodyStyle, err := columnBodyStyle(f, col)
			if err != nil {
				return err
			}
			colName, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return errors.NewStorageError("invalid column index", err)
			}
			first := colName + "2"
			last := fmt.Sprintf("%s%d", colName, len(t.Rows)+1)
			if err := f.SetCellStyle(sheetName, first, last, bodyStyle); err != nil {
				return errors.NewStorageError(fmt.Sprintf("failed to style column %s", col), err)
			}
		}
	}

	return setColumnWidths(f, t)
}

// columnBodyStyle builds the body style for one column: top vertical
// alignment plus the column-class number format.
func columnBodyStyle(f *excelize.File, column string) (int, error) {
	style := excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top"},
	}

	switch {
	case dateColumns[column]:
		numFmt := "DD/MM/YYYY"
		style.CustomNumFmt = &numFmt
	case moneyColumns[column]:
		style.NumFmt = 4 // #,##0.00
	case rateColumns[column]:
		style.NumFmt = 2 // 0.00
	case intColumns[column]:
		style.NumFmt = 1 // 0
	case textColumns[column]:
		style.NumFmt = 49 // @ (forced text)
	}

	id, err := f.NewStyle(&style)
	if err != nil {
		return 0, errors.NewStorageError(fmt.Sprintf("failed to create style for column %s", column), err)
	}
	return id, nil
}

// setColumnWidths sizes every column to its longest rendered value plus
// padding, capped at maxColumnWidth.
func setColumnWidths(f *excelize.File, t *domain.Table) error {
	for i, col := range t.Columns {
		maxLen := len(col)
		for _, row := range t.Rows {
			if l := len(row[i].Display()); l > maxLen {
				maxLen = l
			}
		}

		width := float64(maxLen + 2)
		if width > maxColumnWidth {
			width = maxColumnWidth
		}

		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return errors.NewStorageError("invalid column index", err)
		}
		if err := f.SetColWidth(sheetName, colName, colName, width); err != nil {
			return errors.NewStorageError(fmt.Sprintf("failed to set width for column %s", col), err)
		}
	}
	return nil
}

// Package normalize turns a raw loan-contract table into its typed,
// canonical form: headers renamed to the internal column names, dates and
// money parsed out of their mixed source formats, yes/no flags folded to the
// tri-state convention, and per-column transform statistics collected.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"loannorm/internal/errors"
	"loannorm/internal/parsing"
	"loannorm/internal/schema"
	"loannorm/pkg/contracts/domain"
)

// moneyColumns are parsed with ParseMoney but without transform stats.
var moneyColumns = []string{
	schema.ColVlrLiberado,
	schema.ColValorCancelado,
	schema.ColValorPago,
	schema.ColValorDevolvido,
}

// Table normalizes the table in place and returns the per-column transform
// statistics. Stats are recorded only for Taxa and Emissão, the two columns
// where source-format ambiguity has bitten operations before; the asymmetry
// is intentional.
//
// Fails fast with a SCHEMA error when any required column is missing after
// renaming — that is a precondition, not a per-row condition.
func Table(t *domain.Table) (map[string]domain.TransformStats, error) {
	trimHeaders(t)
	renameColumns(t)
	trimHeaders(t)

	if missing := missingRequired(t); len(missing) > 0 {
		return nil, errors.NewSchemaError(
			fmt.Sprintf("missing required columns: %v", missing)).
			WithContext("missing", missing)
	}

	stats := make(map[string]domain.TransformStats)

	if t.HasColumn(schema.ColTaxa) {
		stats[schema.ColTaxa] = applyWithStats(t, schema.ColTaxa, parsing.ParseMoney)
	}
	if t.HasColumn(schema.ColEmissao) {
		stats[schema.ColEmissao] = applyWithStats(t, schema.ColEmissao, parsing.ParseDate)
	}

	applyParser(t, schema.ColDataPagamento, parsing.ParseDate)

	for _, col := range moneyColumns {
		applyParser(t, col, parsing.ParseMoney)
	}

	applyParser(t, schema.ColPago, yesNoCell)
	applyParser(t, schema.ColTEDDevolvida, yesNoCell)

	coerceText(t, schema.ColContrato)

	replaceMissing(t)

	return stats, nil
}

// trimHeaders strips surrounding whitespace from every column name.
func trimHeaders(t *domain.Table) {
	for i, c := range t.Columns {
		t.Columns[i] = strings.TrimSpace(c)
	}
}

// renameColumns maps aliased headers onto internal names. Headers with no
// alias pass through unchanged so unexpected columns survive into the output.
func renameColumns(t *domain.Table) {
	for i, c := range t.Columns {
		if internal, ok := schema.Resolve(c); ok {
			t.Columns[i] = internal
		}
	}
}

func missingRequired(t *domain.Table) []string {
	var missing []string
	for _, col := range schema.RequiredColumns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

// applyWithStats runs the parser over one column and counts how many
// non-empty raw values came out empty.
func applyWithStats(t *domain.Table, column string, parse func(string) domain.Cell) domain.TransformStats {
	var st domain.TransformStats
	idx := t.ColumnIndex(column)
	for _, row := range t.Rows {
		raw := row[idx]
		if !raw.IsEmpty() {
			st.BeforeNonEmpty++
		}
		parsed := parse(raw.Display())
		if !parsed.IsEmpty() {
			st.AfterNonEmpty++
		}
		row[idx] = parsed
	}
	st.BecameEmpty = st.BeforeNonEmpty - st.AfterNonEmpty
	return st
}

// applyParser runs the parser over one column, if present.
func applyParser(t *domain.Table, column string, parse func(string) domain.Cell) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		row[idx] = parse(row[idx].Display())
	}
}

// yesNoCell adapts NormalizeYesNo to the cell parser shape. Empty input stays
// the empty cell so the tri-state "unknown" is preserved.
func yesNoCell(value string) domain.Cell {
	s := parsing.NormalizeYesNo(value)
	if s == "" {
		return domain.EmptyCell()
	}
	return domain.StringCell(s)
}

// coerceText forces a column to trimmed text cells.
func coerceText(t *domain.Table, column string) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return
	}
	for _, row := range t.Rows {
		s := strings.TrimSpace(row[idx].Display())
		if s == "" {
			row[idx] = domain.EmptyCell()
		} else {
			row[idx] = domain.StringCell(s)
		}
	}
}

// replaceMissing collapses every blank-equivalent cell to the explicit
// absent-value sentinel.
func replaceMissing(t *domain.Table) {
	for _, row := range t.Rows {
		for i, cell := range row {
			if cell.IsEmpty() {
				row[i] = domain.EmptyCell()
			}
		}
	}
}

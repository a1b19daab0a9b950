package normalize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"loannorm/internal/errors"
	"loannorm/internal/schema"
	"loannorm/pkg/contracts/domain"
)

// writeWorkbook saves a single-sheet workbook with the given header and rows
// and returns its path.
func writeWorkbook(t *testing.T, header []string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, h))
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t,
		[]string{"Cliente", "Contrato", "Vlr Liberado"},
		[][]interface{}{
			{"MARIA SILVA", "861234567890-3", "3.000,00"},
			{"JOSE SANTOS"}, // short row gets padded
		})

	table, err := ReadWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Cliente", "Contrato", "Vlr Liberado"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "3.000,00", table.CellAt(0, "Vlr Liberado").Str)
	assert.True(t, table.CellAt(1, "Contrato").IsEmpty())
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeParsing))
}

func TestTableRenamesAliasedHeaders(t *testing.T) {
	table := &domain.Table{
		Columns: []string{" nome_cliente ", "Nº Contrato", "Data de Emissão", "VALOR LIBERACAO", "Observações"},
		Rows: [][]domain.Cell{{
			domain.StringCell("MARIA"),
			domain.StringCell("861234567890-3"),
			domain.StringCell("02/01/2026"),
			domain.StringCell("3.000,00"),
			domain.StringCell("nota livre"),
		}},
	}

	_, err := Table(table)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Cliente", "Contrato", "Emissão", "Vlr Liberado", "Observações"},
		table.Columns)

	// Unmapped columns survive untouched.
	assert.Equal(t, "nota livre", table.CellAt(0, "Observações").Str)
}

func TestTableMissingRequiredColumns(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Cliente", "Prazo"},
		Rows:    [][]domain.Cell{},
	}

	_, err := Table(table)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "Contrato")
	assert.Contains(t, err.Error(), "Emissão")
	assert.Contains(t, err.Error(), "Vlr Liberado")
}

func TestTableParsesTypedColumns(t *testing.T) {
	table := &domain.Table{
		Columns: []string{
			"Cliente", "Contrato", "Taxa", "Emissão", "Vlr Liberado",
			"Valor Cancelado", "Pago", "Data Pagamento", "VALOR PAGO",
			"TED/Devolvida", "Valor Devolvido",
		},
		Rows: [][]domain.Cell{{
			domain.StringCell("MARIA"),
			domain.StringCell(" 861234567890-3 "),
			domain.StringCell("9,20"),
			domain.StringCell("() 02/01/2026"),
			domain.StringCell("3,000.00"),
			domain.EmptyCell(),
			domain.StringCell("sim"),
			domain.StringCell("2026-01-10"),
			domain.StringCell("1.500,00"),
			domain.StringCell("nao"),
			domain.EmptyCell(),
		}},
	}

	stats, err := Table(table)
	require.NoError(t, err)

	taxa := table.CellAt(0, schema.ColTaxa)
	require.Equal(t, domain.CellNumber, taxa.Kind)
	assert.InDelta(t, 9.20, taxa.Num, 1e-9)

	emissao := table.CellAt(0, schema.ColEmissao)
	require.Equal(t, domain.CellDate, emissao.Kind)
	assert.Equal(t, "02/01/2026", emissao.Date.Format("02/01/2006"))

	liberado := table.CellAt(0, schema.ColVlrLiberado)
	require.Equal(t, domain.CellNumber, liberado.Kind)
	assert.InDelta(t, 3000.00, liberado.Num, 1e-9)

	assert.Equal(t, "SIM", table.CellAt(0, schema.ColPago).Str)
	assert.Equal(t, "NÃO", table.CellAt(0, schema.ColTEDDevolvida).Str)
	assert.Equal(t, "861234567890-3", table.CellAt(0, schema.ColContrato).Str)

	pagamento := table.CellAt(0, schema.ColDataPagamento)
	require.Equal(t, domain.CellDate, pagamento.Kind)

	// Stats only for Taxa and Emissão.
	assert.Len(t, stats, 2)
	assert.Equal(t, domain.TransformStats{BeforeNonEmpty: 1, AfterNonEmpty: 1}, stats[schema.ColTaxa])
	assert.Equal(t, domain.TransformStats{BeforeNonEmpty: 1, AfterNonEmpty: 1}, stats[schema.ColEmissao])
}

func TestTableCountsBecameEmpty(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Cliente", "Contrato", "Taxa", "Emissão", "Vlr Liberado"},
		Rows: [][]domain.Cell{
			{
				domain.StringCell("A"), domain.StringCell("1"),
				domain.StringCell("7.90"), domain.StringCell("02/01/2026"), domain.StringCell("100"),
			},
			{
				domain.StringCell("B"), domain.StringCell("2"),
				domain.StringCell("isento"), domain.StringCell("sem data"), domain.StringCell("200"),
			},
			{
				domain.StringCell("C"), domain.StringCell("3"),
				domain.EmptyCell(), domain.StringCell("2026-02-01"), domain.StringCell("300"),
			},
		},
	}

	stats, err := Table(table)
	require.NoError(t, err)

	assert.Equal(t, domain.TransformStats{BeforeNonEmpty: 2, AfterNonEmpty: 1, BecameEmpty: 1}, stats[schema.ColTaxa])
	assert.Equal(t, domain.TransformStats{BeforeNonEmpty: 3, AfterNonEmpty: 2, BecameEmpty: 1}, stats[schema.ColEmissao])

	// The unparseable values became explicit empty cells, not errors.
	assert.True(t, table.CellAt(1, schema.ColTaxa).IsEmpty())
	assert.True(t, table.CellAt(1, schema.ColEmissao).IsEmpty())
}

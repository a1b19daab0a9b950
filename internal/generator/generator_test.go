package generator

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"loannorm/internal/parsing"
)

var contractRe = regexp.MustCompile(`^(86|97)\d{10}-\d$`)

func TestRowsShape(t *testing.T) {
	g := New(42)

	rows, err := g.Rows(50, ModeRealistic)
	require.NoError(t, err)
	require.Len(t, rows, 50)

	for _, row := range rows {
		require.Len(t, row, len(Header))

		contrato, ok := row[1].(string)
		require.True(t, ok)
		assert.Regexp(t, contractRe, contrato)

		// Emissão is always set and must be parseable by the date parser.
		emissao, ok := row[3].(string)
		require.True(t, ok)
		assert.False(t, parsing.ParseDate(emissao).IsEmpty(), "unparseable date %q", emissao)

		// Vlr Liberado is always set and must be parseable money.
		liberado, ok := row[5].(string)
		require.True(t, ok)
		assert.False(t, parsing.ParseMoney(liberado).IsEmpty(), "unparseable money %q", liberado)
	}
}

func TestRowsDeterministic(t *testing.T) {
	a, err := New(7).Rows(20, ModeSimple)
	require.NoError(t, err)
	b, err := New(7).Rows(20, ModeSimple)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRowsRejectsUnknownMode(t *testing.T) {
	_, err := New(1).Rows(10, Mode("chaotic"))
	assert.Error(t, err)
}

func TestMod11CheckDigit(t *testing.T) {
	// The digit must be stable and in range for any input.
	for _, base := range []string{"861234567890", "970000000000", "869999999999"} {
		dv := mod11CheckDigit(base)
		require.Len(t, dv, 1)
		assert.Contains(t, "0123456789", dv)
		assert.Equal(t, dv, mod11CheckDigit(base))
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		v           float64
		thousandSep string
		decimalSep  string
		want        string
	}{
		{3000, ".", ",", "3.000,00"},
		{3000, ",", ".", "3,000.00"},
		{1234567.89, ".", ",", "1.234.567,89"},
		{999.5, ",", ".", "999.50"},
		{12.3, ".", ",", "12,30"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.v, tt.thousandSep, tt.decimalSep))
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.xlsx")

	require.NoError(t, New(99).WriteWorkbook(path, 10, ModeRealistic))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 11)
	assert.Equal(t, Header, rows[0])
}

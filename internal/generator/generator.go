// Package generator produces synthetic loan-contract workbooks with the same
// dirt real exports carry: mixed pt-BR/en-US money formats, mixed date
// formats, free-text flags and Mod11 check-digit contract numbers. Used to
// build fixtures for the normalizer.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"loannorm/internal/errors"
	"loannorm/internal/schema"
)

// Mode selects how coherent the generated rows are.
type Mode string

const (
	// ModeSimple draws every field independently; contradictions are common.
	ModeSimple Mode = "simple"
	// ModeRealistic drives each row through a contract lifecycle scenario.
	ModeRealistic Mode = "realistic"
)

// Header is the column order of generated workbooks, matching the upstream
// report layout before any normalization.
var Header = []string{
	schema.ColCliente,
	schema.ColContrato,
	schema.ColTaxa,
	schema.ColEmissao,
	schema.ColPrazo,
	schema.ColVlrLiberado,
	schema.ColValorCancelado,
	schema.ColPago,
	schema.ColDataPagamento,
	schema.ColValorPago,
	schema.ColTEDDevolvida,
	schema.ColValorDevolvido,
}

var (
	firstNames = []string{
		"MARIA", "JOSÉ", "ANA", "JOÃO", "ANTÔNIO", "FRANCISCA", "CARLOS",
		"PAULO", "ADRIANA", "LUCAS", "JULIANA", "MARCOS", "FERNANDA", "RAFAEL",
	}
	lastNames = []string{
		"SILVA", "SANTOS", "OLIVEIRA", "SOUZA", "RODRIGUES", "FERREIRA",
		"ALMEIDA", "PEREIRA", "LIMA", "GOMES", "COSTA", "RIBEIRO", "CARVALHO",
	}
	rateChoices = []string{"7.90", "10.50", "14.93", "9,20"}
	termChoices = []int{6, 12, 15, 18, 24}
)

// Generator produces dirty fixture rows from a seeded source, so fixtures
// are reproducible.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator with the given seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Rows generates n raw rows in Header order. Cells are strings exactly as a
// dirty export would carry them, except Prazo which exports ship as a number.
func (g *Generator) Rows(n int, mode Mode) ([][]interface{}, error) {
	if mode != ModeSimple && mode != ModeRealistic {
		return nil, errors.NewConfigError(fmt.Sprintf("mode must be %q or %q, got %q", ModeSimple, ModeRealistic, mode), nil)
	}

	start := time.Now().AddDate(0, 0, -60)
	rows := make([][]interface{}, 0, n)

	for i := 0; i < n; i++ {
		emissao := start.AddDate(0, 0, g.rng.Intn(61))
		liberado := round2(float64(1500+g.rng.Intn(6501)) + g.rng.Float64())

		var ev events
		if mode == ModeSimple {
			ev = g.simpleEvents(emissao, liberado)
		} else {
			ev = g.lifecycleEvents(emissao, liberado)
		}

		rows = append(rows, []interface{}{
			g.fullName(),
			g.contractNumber(),
			rateChoices[g.rng.Intn(len(rateChoices))],
			g.mixedDate(emissao),
			termChoices[g.rng.Intn(len(termChoices))],
			g.mixedMoney(liberado),
			optMoney(g, ev.valorCancelado),
			ev.pago,
			ev.dataPagamento,
			optMoney(g, ev.valorPago),
			ev.ted,
			optMoney(g, ev.valorDevolvido),
		})
	}

	return rows, nil
}

// WriteWorkbook generates n rows and saves them as a single-sheet xlsx.
func (g *Generator) WriteWorkbook(path string, n int, mode Mode) error {
	rows, err := g.Rows(n, mode)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range Header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.NewStorageError("invalid header coordinates", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return errors.NewStorageError("failed to write header", err)
		}
	}
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.NewStorageError("invalid cell coordinates", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return errors.NewStorageError("failed to write cell", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save fixture %s", path), err)
	}
	return nil
}

// events are the lifecycle-dependent fields of one row.
type events struct {
	pago           string
	dataPagamento  string
	valorPago      float64 // 0 means absent
	valorCancelado float64
	ted            string
	valorDevolvido float64
}

// simpleEvents draws each field independently, the way the legacy fixture
// generator did. Contradictory rows are the point: they exercise validation.
func (g *Generator) simpleEvents(emissao time.Time, liberado float64) events {
	var ev events
	ev.pago = []string{"SIM", "NÃO", "", "NAO"}[g.rng.Intn(4)]

	if g.rng.Float64() >= 0.7 {
		ev.valorCancelado = round2(float64(500+g.rng.Intn(5501)) + g.rng.Float64())
	}

	if ev.pago == "SIM" {
		upper := int(liberado)
		if upper < 200 {
			upper = 200
		}
		ev.valorPago = round2(float64(200+g.rng.Intn(upper-199)) + g.rng.Float64())
		ev.dataPagamento = g.mixedDate(emissao.AddDate(0, 0, g.rng.Intn(11)))
	}

	ev.ted = []string{"SIM", "NÃO", ""}[g.rng.Intn(3)]
	if ev.ted == "SIM" {
		ev.valorDevolvido = round2(float64(50+g.rng.Intn(1451)) + g.rng.Float64())
	}
	return ev
}

// lifecycleEvents picks a contract scenario and derives coherent fields.
//
// Distribution: 25% open, 10% fully canceled, 35% paid, 12% paid+returned,
// 10% refinanced, 8% canceled after payment.
func (g *Generator) lifecycleEvents(emissao time.Time, liberado float64) events {
	var ev events

	setPaid := func() {
		ev.pago = "SIM"
		ev.dataPagamento = g.mixedDate(emissao.AddDate(0, 0, g.rng.Intn(13)))
		ev.valorPago = round2(liberado * (0.2 + g.rng.Float64()*0.8))
	}

	switch r := g.rng.Intn(100) + 1; {
	case r <= 25: // issued, still open
		if g.rng.Float64() < 0.5 {
			ev.pago = "NÃO"
		}

	case r <= 35: // canceled before any payment
		ev.pago = "NÃO"
		fee := 0.0
		if g.rng.Float64() >= 0.85 {
			fee = round2(liberado * 0.01)
		}
		ev.valorCancelado = round2(maxf(liberado-fee, 0))

	case r <= 70: // paid
		setPaid()

	case r <= 82: // paid, then returned via TED
		setPaid()
		ev.ted = "SIM"
		ev.valorDevolvido = round2(ev.valorPago * (0.2 + g.rng.Float64()*0.8))

	case r <= 92: // closed by refinancing
		if g.rng.Float64() < 0.6 {
			setPaid()
			saldo := maxf(liberado-ev.valorPago, 0)
			ev.valorCancelado = round2(maxf(saldo+saldo*(g.rng.Float64()*0.03), 0))
		} else {
			ev.pago = "NÃO"
			ev.valorCancelado = round2(liberado * (0.6 + g.rng.Float64()*0.4))
		}

	default: // canceled after partial payment
		setPaid()
		saldo := maxf(liberado-ev.valorPago, 0)
		ev.valorCancelado = round2(saldo * (0.5 + g.rng.Float64()*0.5))
		if g.rng.Float64() < 0.25 {
			ev.ted = "SIM"
			ev.valorDevolvido = round2(minf(ev.valorPago*(0.1+g.rng.Float64()*0.5), ev.valorPago))
		}
	}

	return ev
}

func (g *Generator) fullName() string {
	return firstNames[g.rng.Intn(len(firstNames))] + " " + lastNames[g.rng.Intn(len(lastNames))]
}

// contractNumber builds a banking-style identifier: 12 digits starting with
// 86 or 97, a dash, and a Mod11 check digit.
func (g *Generator) contractNumber() string {
	prefix := "86"
	if g.rng.Intn(2) == 1 {
		prefix = "97"
	}
	base := prefix + fmt.Sprintf("%010d", g.rng.Int63n(10_000_000_000))
	return base + "-" + mod11CheckDigit(base)
}

// mod11CheckDigit computes a simple Mod11 verification digit over the
// reversed digits with cycling weights 2..9.
func mod11CheckDigit(number string) string {
	weights := []int{2, 3, 4, 5, 6, 7, 8, 9}
	total := 0
	for i := 0; i < len(number); i++ {
		digit := int(number[len(number)-1-i] - '0')
		total += digit * weights[i%len(weights)]
	}
	dv := 11 - total%11
	if dv >= 10 {
		dv = 0
	}
	return fmt.Sprintf("%d", dv)
}

// mixedDate renders a date in one of the formats seen in the wild, including
// the "() " prefixed variant some exports carry.
func (g *Generator) mixedDate(d time.Time) string {
	switch g.rng.Intn(3) {
	case 0:
		return d.Format("02/01/2006")
	case 1:
		return d.Format("2006-01-02")
	default:
		return "() " + d.Format("02/01/2006")
	}
}

// mixedMoney renders a value in one of the money formats seen in the wild.
func (g *Generator) mixedMoney(v float64) string {
	switch g.rng.Intn(4) {
	case 0: // pt-BR: 3.000,00
		return groupThousands(v, ".", ",")
	case 1: // en-US: 3,000.00
		return groupThousands(v, ",", ".")
	case 2: // plain decimal
		return fmt.Sprintf("%.2f", v)
	default: // integer
		return fmt.Sprintf("%d", int64(v+0.5))
	}
}

// groupThousands formats v with two decimals, a thousands separator and a
// decimal separator.
func groupThousands(v float64, thousandSep, decimalSep string) string {
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandSep)
		}
		b.WriteRune(ch)
	}
	return b.String() + decimalSep + decPart
}

func optMoney(g *Generator, v float64) string {
	if v == 0 {
		return ""
	}
	return g.mixedMoney(v)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

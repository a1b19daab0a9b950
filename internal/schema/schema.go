// Package schema maps free-text spreadsheet headers to the fixed internal
// column names the pipeline works with. Source systems export the same
// logical column under many spellings ("Nº Contrato", "numero_contrato",
// "NR CONTRATO"); Canonicalize collapses them to a locale-neutral lookup key
// and the alias table resolves that key to the internal name.
package schema

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Internal column names used after renaming. These match the vocabulary of
// the upstream loan-contract reports, including the inconsistent casing.
const (
	ColCliente        = "Cliente"
	ColContrato       = "Contrato"
	ColTaxa           = "Taxa"
	ColEmissao        = "Emissão"
	ColPrazo          = "Prazo"
	ColVlrLiberado    = "Vlr Liberado"
	ColValorCancelado = "Valor Cancelado"
	ColPago           = "Pago"
	ColDataPagamento  = "Data Pagamento"
	ColValorPago      = "VALOR PAGO"
	ColTEDDevolvida   = "TED/Devolvida"
	ColValorDevolvido = "Valor Devolvido"
)

var (
	reSeparators = regexp.MustCompile(`[_\-/]+`)
	reNonKey     = regexp.MustCompile(`[^a-z0-9 ]+`)
	reSpaces     = regexp.MustCompile(`\s+`)

	// stripMarks removes combining marks after NFKD decomposition, folding
	// accented letters to their base form ("emissão" -> "emissao"). NFKD also
	// resolves compatibility characters such as "º" to plain letters, which
	// headers like "Nº Contrato" depend on.
	stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Canonicalize converts a raw header into the canonical lookup key: lowercase,
// accent-folded, separators collapsed to single spaces, everything outside
// [a-z0-9 ] dropped. Idempotent.
func Canonicalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	s = reSeparators.ReplaceAllString(s, " ")
	s = reNonKey.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// ColumnAliases maps Canonicalize(source header) to the internal column name.
// Loaded once, never mutated.
var ColumnAliases = map[string]string{
	// cliente / contrato
	"cliente":         ColCliente,
	"nome cliente":    ColCliente,
	"contrato":        ColContrato,
	"nr contrato":     ColContrato,
	"no contrato":     ColContrato,
	"numero contrato": ColContrato,

	// taxa
	"taxa": ColTaxa,
	"tx":   ColTaxa,

	// emissão
	"emissao":          ColEmissao,
	"emissao contrato": ColEmissao,
	"data emissao":     ColEmissao,
	"data de emissao":  ColEmissao,

	// prazo
	"prazo":       ColPrazo,
	"prazo meses": ColPrazo,

	// valores
	"vlr liberado":    ColVlrLiberado,
	"valor liberado":  ColVlrLiberado,
	"valor liberacao": ColVlrLiberado,
	"valor cancelado": ColValorCancelado,
	"vlr cancelado":   ColValorCancelado,
	"valor pago":      ColValorPago,
	"vlr pago":        ColValorPago,

	// pagamento
	"data pagamento":    ColDataPagamento,
	"data do pagamento": ColDataPagamento,
	"pago":              ColPago,

	// devolução
	"ted devolvida":   ColTEDDevolvida,
	"ted devolvido":   ColTEDDevolvida,
	"teddevolvida":    ColTEDDevolvida,
	"valor devolvido": ColValorDevolvido,
	"valor devolucao": ColValorDevolvido,
}

// RequiredColumns is the minimum internal column set the pipeline needs.
// Intentionally narrower than what validation inspects: the paid/returned
// amount columns are validated when present but their absence does not abort
// the run.
var RequiredColumns = []string{
	ColCliente,
	ColContrato,
	ColEmissao,
	ColVlrLiberado,
}

// Resolve maps a raw header to its internal name. The second return reports
// whether an alias matched; unmapped headers must be passed through unchanged
// by callers.
func Resolve(header string) (string, bool) {
	internal, ok := ColumnAliases[Canonicalize(header)]
	return internal, ok
}

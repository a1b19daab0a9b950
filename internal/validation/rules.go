// Package validation applies the loan-contract business rules to a
// normalized table. Validation is observational: it never mutates or drops a
// row, it only collects severity-tagged issues.
package validation

import (
	"strings"

	"loannorm/internal/schema"
	"loannorm/pkg/contracts/domain"
)

// Table checks every row and returns the issues in row order. Within a row
// the rules run in a fixed order, so issues for one row are contiguous and
// deterministic:
//
//  1. Contrato empty              -> ERROR
//  2. Cliente empty               -> ERROR
//  3. Pago=SIM, no Data Pagamento -> ERROR
//  4. Pago=SIM, no VALOR PAGO     -> ERROR
//  5. Pago!=SIM, VALOR PAGO set   -> WARN
//  6. TED=SIM, no Valor Devolvido -> ERROR
func Table(t *domain.Table) []domain.Issue {
	var issues []domain.Issue

	for idx := range t.Rows {
		cliente := cellText(t, idx, schema.ColCliente)
		contrato := cellText(t, idx, schema.ColContrato)

		pago := cellText(t, idx, schema.ColPago)
		dataPag := t.CellAt(idx, schema.ColDataPagamento)
		vlrPago := t.CellAt(idx, schema.ColValorPago)

		ted := cellText(t, idx, schema.ColTEDDevolvida)
		vlrDev := t.CellAt(idx, schema.ColValorDevolvido)

		if contrato == "" {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				Row:      idx,
				Cliente:  cliente,
				Message:  "Contrato vazio",
			})
		}
		if cliente == "" {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				Row:      idx,
				Contrato: contrato,
				Message:  "Cliente vazio",
			})
		}

		if pago == "SIM" {
			if dataPag.IsEmpty() {
				issues = append(issues, domain.Issue{
					Severity: domain.SeverityError,
					Row:      idx,
					Contrato: contrato,
					Cliente:  cliente,
					Message:  "Pago=SIM mas Data Pagamento vazio",
				})
			}
			if vlrPago.IsEmpty() {
				issues = append(issues, domain.Issue{
					Severity: domain.SeverityError,
					Row:      idx,
					Contrato: contrato,
					Cliente:  cliente,
					Message:  "Pago=SIM mas VALOR PAGO vazio",
				})
			}
		}

		// Amount without the paid flag is sometimes a pre-posting, so it is
		// only flagged, not rejected.
		if pago != "SIM" && !vlrPago.IsEmpty() {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarn,
				Row:      idx,
				Contrato: contrato,
				Cliente:  cliente,
				Message:  "Pago!=SIM mas VALOR PAGO preenchido",
			})
		}

		if ted == "SIM" && vlrDev.IsEmpty() {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityError,
				Row:      idx,
				Contrato: contrato,
				Cliente:  cliente,
				Message:  "TED/Devolvida=SIM mas Valor Devolvido vazio",
			})
		}
	}

	return issues
}

// HasErrors reports whether any issue carries ERROR severity.
func HasErrors(issues []domain.Issue) bool {
	for _, i := range issues {
		if i.Severity == domain.SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of ERROR and WARN issues.
func Count(issues []domain.Issue) (numErrors, numWarn int) {
	for _, i := range issues {
		switch i.Severity {
		case domain.SeverityError:
			numErrors++
		case domain.SeverityWarn:
			numWarn++
		}
	}
	return numErrors, numWarn
}

func cellText(t *domain.Table, row int, column string) string {
	return strings.TrimSpace(t.CellAt(row, column).Display())
}

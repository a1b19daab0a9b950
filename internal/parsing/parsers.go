// Package parsing holds the pure field parsers for dirty spreadsheet values.
// The disambiguation rules are the contract: money parsing resolves mixed
// pt-BR / en-US separators by "last separator wins", and date parsing defaults
// to day-first for the NN/NN/NNNN pattern. Parsers are total — malformed
// input yields the empty cell, never an error.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"loannorm/pkg/contracts/domain"
)

var reDate = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)

// yesSet and noSet are matched against trimmed, uppercased input.
var (
	yesSet = map[string]bool{"SIM": true, "S": true, "YES": true, "Y": true, "TRUE": true, "1": true}
	noSet  = map[string]bool{"NÃO": true, "NAO": true, "N": true, "NO": true, "FALSE": true, "0": true}
)

// NormalizeYesNo maps free-text yes/no spellings onto the tri-state
// {"SIM", "NÃO", ""}. Unrecognized values pass through trimmed and uppercased
// rather than being coerced, so anomalous source text survives into the
// output where a reviewer can see it. Idempotent.
func NormalizeYesNo(value string) string {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return ""
	}
	if yesSet[s] {
		return "SIM"
	}
	if noSet[s] {
		return "NÃO"
	}
	return s
}

// ParseDate converts mixed-format date text into a date cell.
//
// Accepted inputs:
//   - "02/01/2026" and any text containing that pattern, e.g. "() 02/01/2026"
//   - "2026-01-02"
//   - "2026-01-02T00:00:00"
//
// A DD/MM/YYYY match anywhere in the string is always read day-first; that is
// the dominant locale of the source reports.
func ParseDate(value string) domain.Cell {
	s := strings.TrimSpace(value)
	if s == "" {
		return domain.EmptyCell()
	}

	if m := reDate.FindString(s); m != "" {
		if t, err := time.Parse("02/01/2006", m); err == nil {
			return domain.DateCell(t)
		}
		return domain.EmptyCell()
	}

	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateCell(t)
		}
	}

	return domain.EmptyCell()
}

// ParseMoney converts mixed-locale money text into a number cell.
//
//	"3.000,00" -> 3000.00   (pt-BR)
//	"3,000.00" -> 3000.00   (en-US)
//	"3000.00"  -> 3000.00
//	"3000"     -> 3000.00
//
// When both separators appear, whichever occurs last is the decimal
// separator. A lone comma is a decimal comma. "1.234" is deliberately read as
// the plain decimal 1.234 — with a single dot there is no way to tell
// thousands grouping from a true decimal, and the plain reading wins.
func ParseMoney(value string) domain.Cell {
	s := strings.TrimSpace(value)
	if s == "" {
		return domain.EmptyCell()
	}

	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// pt-BR: dots group thousands, comma is the decimal.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// en-US: commas group thousands.
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.EmptyCell()
	}
	return domain.NumberCell(f)
}

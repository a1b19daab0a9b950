package domain

// Severity classifies a validation issue.
type Severity string

const (
	SeverityError Severity = "ERROR"
	SeverityWarn  Severity = "WARN"
)

// Issue is one business-rule violation found during validation. Row is the
// 0-based index into the parsed table. Contrato and Cliente are best-effort
// identifiers and stay empty when those fields are themselves invalid.
type Issue struct {
	Severity Severity
	Row      int
	Contrato string
	Cliente  string
	Message  string
}

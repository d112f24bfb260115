// Package receipt provides stable evidence artifacts for audit/compliance.
package receipt

// ReceiptSchemaVersion current
const ReceiptSchemaVersion = "1.0"

// Receipt structure
type Receipt struct {
	SchemaVersion string             `json:"schema_version"`
	OpID          string             `json:"op_id"`
	TsStart       string             `json:"ts_start"`
	TsEnd         string             `json:"ts_end"`
	Command       string             `json:"command"`
	Args          []string           `json:"args"`
	ArgsRedacted  bool               `json:"args_redacted,omitempty"` // true if any args were sanitized
	Result        Result             `json:"result"`
	Cib           *CibRef            `json:"cib,omitempty"`
	Validation    *ValidationSummary `json:"validation,omitempty"`
	Changes       *ChangeSummary     `json:"changes,omitempty"`
}

// Result status
type Result struct {
	Status string `json:"status"` // "success" or "fail"
	Error  string `json:"error,omitempty"`
}

// CibRef detail
type CibRef struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256,omitempty"`
}

// ValidationSummary detail
type ValidationSummary struct {
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Forced   bool     `json:"forced,omitempty"`
	Codes    []string `json:"codes,omitempty"`
}

// ChangeSummary detail
type ChangeSummary struct {
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Updated int    `json:"updated"`
	Summary string `json:"summary,omitempty"`
}

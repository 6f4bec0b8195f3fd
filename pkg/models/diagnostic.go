package models

// DiagnosticKind selects which variant of a Diagnostic is active.
type DiagnosticKind string

const (
	// DiagnosticUnresolvedSymbols is a link failure with missing references.
	DiagnosticUnresolvedSymbols DiagnosticKind = "unresolved_symbols"
	// DiagnosticCompileError is a located compiler error.
	DiagnosticCompileError DiagnosticKind = "compile_error"
	// DiagnosticUnclassified is raw build output that matched no known pattern.
	DiagnosticUnclassified DiagnosticKind = "unclassified"
)

// Diagnostic is a classified build failure. Exactly one variant is active,
// selected by Kind; only that variant's fields are populated. A Diagnostic
// is immutable once constructed.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`

	// Unresolved symbols (sorted, deduplicated).
	Symbols []string `json:"symbols,omitempty"`

	// Located compile error.
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message,omitempty"`

	// Unclassified fallback.
	ExitCode *int   `json:"exit_code,omitempty"`
	RawText  string `json:"raw_text,omitempty"`
}

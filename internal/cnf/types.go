package cnf

import "fmt"

// FindingKind identifies one defect class. The set is closed so the repair
// engine can exhaustively switch over the fixable kinds.
type FindingKind int

const (
	MissingHeader FindingKind = iota
	DuplicateHeader
	MissingTerminator
	NonIntegerLiteral
	VariableOutOfRange
	Tautology
	ClauseCountMismatch
	// IOFailure is synthesized by the batch layer for files that could not
	// be read or written. It never comes out of Validate.
	IOFailure
)

// String returns the stable snake_case name used in reports.
func (k FindingKind) String() string {
	switch k {
	case MissingHeader:
		return "missing_header"
	case DuplicateHeader:
		return "duplicate_header"
	case MissingTerminator:
		return "missing_terminator"
	case NonIntegerLiteral:
		return "non_integer_literal"
	case VariableOutOfRange:
		return "variable_out_of_range"
	case Tautology:
		return "tautology"
	case ClauseCountMismatch:
		return "clause_count_mismatch"
	case IOFailure:
		return "io_failure"
	}
	return fmt.Sprintf("FindingKind(%d)", int(k))
}

// Fixable reports whether the repair engine has a rewrite for this kind.
func (k FindingKind) Fixable() bool {
	switch k {
	case DuplicateHeader, MissingTerminator, VariableOutOfRange:
		return true
	}
	return false
}

// Finding is one detected defect. Findings are immutable values; Line is
// 1-based and 0 when the defect has no line to point at (a missing header,
// an unreadable file).
type Finding struct {
	Kind   FindingKind
	Line   int
	Detail string
}

// String renders the finding the way the detail report shows it.
func (f Finding) String() string {
	if f.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", f.Line, f.Kind, f.Detail)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

// Clause is one CNF clause. Literals holds the successfully parsed integer
// tokens of the line, terminator excluded; sign is polarity, magnitude is
// the variable id. Range checking happens in Validate, not here.
type Clause struct {
	Literals []int
	// Line is the 1-based physical line the clause came from, used to
	// target repairs.
	Line int
}

// badToken records a clause-line token that failed integer parsing.
type badToken struct {
	line  int
	token string
}

// Document is the in-memory form of one parsed file. RawLines retains the
// original text (split on '\n', carriage returns kept) so repairs can be
// expressed as line edits and unmodified lines round-trip byte for byte.
type Document struct {
	DeclaredVars    int
	DeclaredClauses int
	// HeaderLine is the 1-based line of the first accepted 'p cnf' header,
	// 0 when the file has none.
	HeaderLine int
	Clauses    []Clause
	RawLines   []string

	// Structural anomalies recorded during parsing, surfaced by Validate.
	dupHeaderLines    []int
	unterminatedLines []int
	badTokens         []badToken
}

// HasHeader reports whether a 'p cnf' header line was accepted.
func (d *Document) HasHeader() bool { return d.HeaderLine > 0 }

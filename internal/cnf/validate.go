package cnf

import (
	"fmt"
	"sort"
)

// Validate inspects a Document and returns every defect it carries, in
// file line order and then kind order within one line. It is a pure
// function of the Document: the same input always yields the same
// findings. No rule short-circuits another; a single line can yield
// several findings.
//
// The range and clause-count rules are defined against the declared
// header values, so they are skipped when no header was accepted; the
// missing_header finding already accounts for the file.
func Validate(doc *Document) []Finding {
	var findings []Finding

	if !doc.HasHeader() {
		findings = append(findings, Finding{
			Kind:   MissingHeader,
			Detail: "no 'p cnf <vars> <clauses>' header line found",
		})
	}

	for _, line := range doc.dupHeaderLines {
		findings = append(findings, Finding{
			Kind:   DuplicateHeader,
			Line:   line,
			Detail: fmt.Sprintf("header redeclared; first header accepted at line %d", doc.HeaderLine),
		})
	}

	for _, line := range doc.unterminatedLines {
		findings = append(findings, Finding{
			Kind:   MissingTerminator,
			Line:   line,
			Detail: "clause line does not end with the terminator '0'",
		})
	}

	for _, bad := range doc.badTokens {
		findings = append(findings, Finding{
			Kind:   NonIntegerLiteral,
			Line:   bad.line,
			Detail: fmt.Sprintf("token %q is not an integer", bad.token),
		})
	}

	if doc.HasHeader() {
		for _, clause := range doc.Clauses {
			for _, lit := range clause.Literals {
				if v := abs(lit); v == 0 || v > doc.DeclaredVars {
					findings = append(findings, Finding{
						Kind:   VariableOutOfRange,
						Line:   clause.Line,
						Detail: fmt.Sprintf("literal %d references variable %d outside 1..%d", lit, v, doc.DeclaredVars),
					})
				}
			}
		}
	}

	for _, clause := range doc.Clauses {
		if v, ok := tautologyVar(clause.Literals); ok {
			findings = append(findings, Finding{
				Kind:   Tautology,
				Line:   clause.Line,
				Detail: fmt.Sprintf("clause contains both %d and -%d", v, v),
			})
		}
	}

	if doc.HasHeader() && len(doc.Clauses) != doc.DeclaredClauses {
		findings = append(findings, Finding{
			Kind:   ClauseCountMismatch,
			Line:   doc.HeaderLine,
			Detail: fmt.Sprintf("header declares %d clauses but %d were found", doc.DeclaredClauses, len(doc.Clauses)),
		})
	}

	// Stable sort keeps occurrence order for findings sharing line and kind.
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Kind < findings[j].Kind
	})

	return findings
}

// tautologyVar returns the first variable appearing with both polarities
// in the literal list. One tautology finding per clause, not per pair.
func tautologyVar(literals []int) (int, bool) {
	seen := make(map[int]bool, len(literals))
	for _, lit := range literals {
		if lit == 0 {
			continue
		}
		if seen[-lit] {
			return abs(lit), true
		}
		seen[lit] = true
	}
	return 0, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

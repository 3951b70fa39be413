package cnf

import (
	"strconv"
	"strings"
)

// Repair applies line-level rewrites for the fixable findings and returns
// the corrected text, the findings it could not fix, and whether any
// rewrite was applied. It works purely on the document's raw lines plus
// the finding list and never re-parses.
//
// Rewrites by kind:
//   - duplicate_header: the line is commented out so a future parse skips
//     it; the accepted header is untouched.
//   - variable_out_of_range: the clause line is rebuilt from its in-range
//     literals, whitespace collapsed, terminator restored. A clause left
//     with no literals becomes a bare '0' line: the empty clause is valid
//     CNF and is preserved as-is.
//   - missing_terminator: ' 0' is appended, unless the line was already
//     rebuilt by the range rewrite (which always terminates it).
//
// All other kinds pass through into remaining unchanged.
func Repair(doc *Document, findings []Finding) (text string, remaining []Finding, fixed bool) {
	lines := make([]string, len(doc.RawLines))
	copy(lines, doc.RawLines)

	outOfRange := make(map[int]bool)
	for _, f := range findings {
		if f.Kind == VariableOutOfRange {
			outOfRange[f.Line] = true
		}
	}

	rebuilt := make(map[int]bool, len(outOfRange))
	for _, clause := range doc.Clauses {
		if !outOfRange[clause.Line] {
			continue
		}
		kept := make([]string, 0, len(clause.Literals)+1)
		for _, lit := range clause.Literals {
			if v := abs(lit); v >= 1 && v <= doc.DeclaredVars {
				kept = append(kept, strconv.Itoa(lit))
			}
		}
		kept = append(kept, "0")
		lines[clause.Line-1] = strings.Join(kept, " ")
		rebuilt[clause.Line] = true
		fixed = true
	}

	for _, f := range findings {
		switch f.Kind {
		case DuplicateHeader:
			lines[f.Line-1] = "c " + lines[f.Line-1]
			fixed = true
		case MissingTerminator:
			if !rebuilt[f.Line] {
				lines[f.Line-1] = strings.TrimRight(lines[f.Line-1], " \t\r") + " 0"
			}
			fixed = true
		case VariableOutOfRange:
			// Handled by the rebuild pass above.
		default:
			remaining = append(remaining, f)
		}
	}

	return strings.Join(lines, "\n"), remaining, fixed
}

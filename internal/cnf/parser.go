package cnf

import (
	"strconv"
	"strings"
)

// Parse turns raw file text into a Document. It never fails on malformed
// content: comment and blank lines are skipped, the first valid 'p cnf'
// line becomes the accepted header, later header candidates are recorded
// as duplicates, and every other non-blank line is read as a clause line.
// Tokens that are not integers are recorded and excluded from the clause;
// a clause line whose last token is not '0' is recorded as unterminated
// and all of its tokens are tentatively treated as literals.
func Parse(text string) *Document {
	lines := strings.Split(text, "\n")
	doc := &Document{RawLines: lines}

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || isComment(line) {
			continue
		}

		if vars, clauses, ok := parseHeader(line); ok {
			if doc.HasHeader() {
				doc.dupHeaderLines = append(doc.dupHeaderLines, lineNo)
			} else {
				doc.HeaderLine = lineNo
				doc.DeclaredVars = vars
				doc.DeclaredClauses = clauses
			}
			continue
		}

		doc.Clauses = append(doc.Clauses, doc.parseClauseLine(lineNo, line))
	}

	return doc
}

// isComment reports whether a trimmed line is a comment: a 'c' followed by
// whitespace or nothing at all. "c2 3 0" is not a comment.
func isComment(line string) bool {
	if line == "c" {
		return true
	}
	return len(line) > 1 && line[0] == 'c' && (line[1] == ' ' || line[1] == '\t')
}

// parseHeader matches 'p cnf <vars> <clauses>' with nonnegative integer
// counts. Anything else is not a header candidate and falls through to
// clause parsing.
func parseHeader(line string) (vars, clauses int, ok bool) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "p" || fields[1] != "cnf" {
		return 0, 0, false
	}
	vars, err := strconv.Atoi(fields[2])
	if err != nil || vars < 0 {
		return 0, 0, false
	}
	clauses, err = strconv.Atoi(fields[3])
	if err != nil || clauses < 0 {
		return 0, 0, false
	}
	return vars, clauses, true
}

// parseClauseLine reads one clause line token by token. A malformed token
// never aborts the line.
func (d *Document) parseClauseLine(lineNo int, line string) Clause {
	tokens := strings.Fields(line)

	terminated := tokens[len(tokens)-1] == "0"
	if terminated {
		tokens = tokens[:len(tokens)-1]
	} else {
		d.unterminatedLines = append(d.unterminatedLines, lineNo)
	}

	clause := Clause{Line: lineNo}
	for _, tok := range tokens {
		lit, err := strconv.Atoi(tok)
		if err != nil {
			d.badTokens = append(d.badTokens, badToken{line: lineNo, token: tok})
			continue
		}
		clause.Literals = append(clause.Literals, lit)
	}
	return clause
}

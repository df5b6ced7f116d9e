// Package decode implements the textual proof-line grammar of §4.5: one
// line per entry, fields separated by runs of spaces, comments beginning
// with '#'. It is the thin seam between the proof text format and the
// formula/proof packages' in-memory types.
package decode

import (
	"fmt"
	"strings"

	"github.com/arborist/ndverify/internal/formula"
	"github.com/arborist/ndverify/internal/proof"
)

// DecodeError is raised when a line fails the grammar's structural
// requirements: malformed field count, duplicate labels, "-" used as a
// label, a citation/dependency naming a label that does not resolve, or
// a line citing its own label.
// It belongs to the same build-abandoning error family as
// formula.ParseError and proof.RuleError.
type DecodeError struct {
	LineNumber int
	SourceText string
	Reason     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error at input line %d (%q): %s", e.LineNumber, e.SourceText, e.Reason)
}

// BuildProof parses a full proof text block into a Proof, or returns the
// first DecodeError/formula.ParseError/proof.RuleError encountered. The
// whole build is abandoned on the first structural error, per the
// total-failure error model.
func BuildProof(text string) (*proof.Proof, error) {
	p := proof.NewProof()
	rawLines := strings.Split(text, "\n")

	for i, raw := range rawLines {
		lineNumber := i + 1
		stripped := stripComment(raw)
		trimmed := strings.TrimSpace(stripped)
		if trimmed == "" {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) != 4 && len(fields) != 5 {
			return nil, &DecodeError{LineNumber: lineNumber, SourceText: raw, Reason: fmt.Sprintf("expected 4 or 5 fields, got %d", len(fields))}
		}

		depsField := fields[0]
		label := fields[1]
		formulaField := fields[2]

		var citesField, symbolField string
		if len(fields) == 5 {
			symbolField = fields[3]
			citesField = fields[4]
		} else {
			symbolField = fields[3]
		}

		if label == "-" {
			return nil, &DecodeError{LineNumber: lineNumber, SourceText: raw, Reason: "\"-\" cannot be used as a line label"}
		}
		if _, exists := p.Lookup(label); exists {
			return nil, &DecodeError{LineNumber: lineNumber, SourceText: raw, Reason: fmt.Sprintf("duplicate line label %q", label)}
		}

		f, err := formula.ParseFormula(formulaField)
		if err != nil {
			return nil, err
		}

		deps, selfDependency, err := resolveLabelList(p, label, depsField, lineNumber, raw, "dependency")
		if err != nil {
			return nil, err
		}

		cited, selfCitation, err := resolveLabelList(p, label, citesField, lineNumber, raw, "citation")
		if err != nil {
			return nil, err
		}
		if selfCitation {
			return nil, &DecodeError{LineNumber: lineNumber, SourceText: raw, Reason: fmt.Sprintf("line %q cannot cite itself", label)}
		}

		rule, err := proof.NewRule(symbolField, cited)
		if err != nil {
			return nil, err
		}

		line := proof.NewLine(label, raw, f, rule, deps, selfDependency)
		p.Append(raw, label, line)
	}

	return p, nil
}

// resolveLabelList splits a comma-separated label list field ("-" or ""
// meaning empty) into resolved Lines. A label equal to ownLabel is a
// self-reference: it is reported via the returned bool rather than
// resolved, since the owning Line does not exist yet. Any other label
// that does not resolve against lines already built is a hard error.
func resolveLabelList(p *proof.Proof, ownLabel, field string, lineNumber int, raw, kind string) ([]*proof.Line, bool, error) {
	if field == "" || field == "-" {
		return nil, false, nil
	}

	labels := strings.Split(field, ",")
	var resolved []*proof.Line
	self := false
	for _, lbl := range labels {
		if lbl == ownLabel {
			self = true
			continue
		}
		l, ok := p.Lookup(lbl)
		if !ok {
			return nil, false, &DecodeError{LineNumber: lineNumber, SourceText: raw, Reason: fmt.Sprintf("%s refers to unknown label %q", kind, lbl)}
		}
		resolved = append(resolved, l)
	}
	return resolved, self, nil
}

func stripComment(s string) string {
	if idx := strings.IndexByte(s, '#'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// Package report collects a verified proof's per-line outcomes and
// renders them as structured YAML/TOML for machine consumption and as a
// glamour-rendered Markdown table for terminal pretty-printing. The
// CLI's colorable plain-text lines are built from a Result by cmd/ndv,
// not by this package.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	glamour "charm.land/glamour/v2"
	"gopkg.in/yaml.v3"

	"github.com/arborist/ndverify/internal/proof"
)

// LineResult is one line's outcome, shaped for serialization.
type LineResult struct {
	Label   string `yaml:"label" toml:"label"`
	Formula string `yaml:"formula" toml:"formula"`
	Rule    string `yaml:"rule" toml:"rule"`
	Valid   bool   `yaml:"valid" toml:"valid"`
}

// Result is a whole proof's verification outcome.
type Result struct {
	Lines    []LineResult `yaml:"lines" toml:"lines"`
	AllValid bool         `yaml:"all_valid" toml:"all_valid"`
}

// FromProof builds a Result by evaluating every line of p.
func FromProof(p *proof.Proof) Result {
	r := Result{}
	allValid := true
	for _, l := range p.Lines() {
		valid := l.IsValid()
		if !valid {
			allValid = false
		}
		r.Lines = append(r.Lines, LineResult{
			Label:   l.Label,
			Formula: l.Formula.String(),
			Rule:    string(l.Rule.Symbol),
			Valid:   valid,
		})
	}
	r.AllValid = allValid
	return r
}

// EncodeYAML writes r as YAML to w.
func (r Result) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

// EncodeTOML writes r as TOML to w.
func (r Result) EncodeTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(r)
}

// Markdown renders r as a Markdown table: one row per line, a checkmark
// or cross for its outcome.
func (r Result) Markdown() string {
	var b strings.Builder
	b.WriteString("| Line | Rule | Formula | Result |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, l := range r.Lines {
		mark := "✓"
		if !l.Valid {
			mark = "✗"
		}
		fmt.Fprintf(&b, "| %s | %s | `%s` | %s |\n", l.Label, l.Rule, l.Formula, mark)
	}
	return b.String()
}

// Pretty renders r's Markdown table through glamour for terminal
// display with syntax-aware styling.
func (r Result) Pretty() (string, error) {
	out, err := glamour.Render(r.Markdown(), "dark")
	if err != nil {
		return "", fmt.Errorf("report: rendering markdown: %w", err)
	}
	return out, nil
}

package formula

import (
	"fmt"
	"strings"
)

// ParseError is raised during tokenization, grouping, or assembly of a
// formula string. It carries the offending source text and a short
// reason so callers can surface a single diagnostic and abandon the
// parse, per the package's total-failure error model.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %q: %s", e.Text, e.Reason)
}

// constituent is the result of Pass 2 grouping: either a bare connective
// token or a run of consecutive atom tokens awaiting Pass 3 interpretation.
type constituent struct {
	connective *rawToken
	run        []rawToken
}

// group implements Pass 2: consecutive atom tokens are merged into runs;
// connective tokens stand alone and separate runs.
func group(tokens []rawToken) []constituent {
	var out []constituent
	var run []rawToken
	flush := func() {
		if len(run) > 0 {
			out = append(out, constituent{run: run})
			run = nil
		}
	}
	for _, tok := range tokens {
		if tok.kind == tokConnective {
			flush()
			t := tok
			out = append(out, constituent{connective: &t})
		} else {
			run = append(run, tok)
		}
	}
	flush()
	return out
}

// ParseFormula parses a formula string into a Formula tree. Shadowing of
// a bound variable already used as a binder anywhere in the formula is
// rejected: a single binder set is shared across the whole parse.
func ParseFormula(text string) (*Formula, error) {
	used := map[string]bool{}
	return parseWithBinders(text, used)
}

func parseWithBinders(text string, used map[string]bool) (*Formula, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	return assemble(text, tokens, used)
}

// assemble implements Pass 3. Quantifiers are special-cased on the raw
// token stream (their bound variable would otherwise merge with the
// body into a single Pass-2 run); everything else is interpreted from
// grouped constituents.
func assemble(text string, tokens []rawToken, used map[string]bool) (*Formula, error) {
	if len(tokens) >= 1 && tokens[0].kind == tokConnective && (tokens[0].ch == 'A' || tokens[0].ch == 'E') {
		return assembleQuantifier(text, tokens, used)
	}

	constituents := group(tokens)

	if len(constituents) == 1 && constituents[0].connective == nil {
		return interpretRun(text, constituents[0].run, used)
	}

	if len(constituents) == 3 && constituents[1].connective != nil {
		c := constituents[1].connective.ch
		if c == '&' || c == 'v' || c == '>' || c == '=' {
			if constituents[0].connective != nil || constituents[2].connective != nil {
				return nil, &ParseError{Text: text, Reason: "malformed binary expression"}
			}
			if c == '=' {
				left, err := equalityTerm(text, constituents[0].run)
				if err != nil {
					return nil, err
				}
				right, err := equalityTerm(text, constituents[2].run)
				if err != nil {
					return nil, err
				}
				return NewPredicate("=", []string{left, right}), nil
			}
			left, err := interpretRun(text, constituents[0].run, used)
			if err != nil {
				return nil, err
			}
			right, err := interpretRun(text, constituents[2].run, used)
			if err != nil {
				return nil, err
			}
			switch c {
			case '&':
				return NewAnd(left, right), nil
			case 'v':
				return NewOr(left, right), nil
			default:
				return NewConditional(left, right), nil
			}
		}
	}

	if len(constituents) == 2 && constituents[0].connective != nil && constituents[0].connective.ch == '~' {
		inner, err := interpretRun(text, constituents[1].run, used)
		if err != nil {
			return nil, err
		}
		return NewNot(inner), nil
	}

	return nil, &ParseError{Text: text, Reason: fmt.Sprintf("malformed formula with %d top-level constituents", len(constituents))}
}

// interpretRun applies the Pass 2 run-length rules: a single atom is a
// subformula (recursively parsed if it was a parenthesized span, else an
// atomic identifier); a run of two is a predicate with a parenthesized
// argument list; a run of three is an infix predicate; longer runs are
// a hard error.
func interpretRun(text string, run []rawToken, used map[string]bool) (*Formula, error) {
	switch len(run) {
	case 0:
		return nil, &ParseError{Text: text, Reason: "empty formula"}
	case 1:
		tok := run[0]
		if tok.isSpan {
			if tok.text == "v" {
				// A parenthesized bare "v" is the literal identifier, not the
				// or-connective.
				return NewAtomic(tok.text), nil
			}
			return parseWithBinders(tok.text, used)
		}
		if tok.text == "" {
			return nil, &ParseError{Text: text, Reason: "empty identifier"}
		}
		return NewAtomic(tok.text), nil
	case 2:
		name := run[0].text
		if name == "" {
			return nil, &ParseError{Text: text, Reason: "predicate name cannot be empty"}
		}
		args := splitArgs(run[1].text)
		if len(args) == 0 {
			return nil, &ParseError{Text: text, Reason: "predicate requires at least one argument"}
		}
		return NewPredicate(name, args), nil
	case 3:
		name := run[1].text
		if name == "" {
			return nil, &ParseError{Text: text, Reason: "predicate name cannot be empty"}
		}
		left := argText(run[0])
		right := argText(run[2])
		return NewPredicate(name, []string{left, right}), nil
	default:
		return nil, &ParseError{Text: text, Reason: fmt.Sprintf("run of %d consecutive terms is malformed", len(run))}
	}
}

// argText extracts the raw term text for a predicate argument: a span's
// stripped content, or a bare identifier's text.
func argText(tok rawToken) string {
	return tok.text
}

// equalityTerm extracts the term text for one side of an `=` predicate.
// Equality operands are terms, not formulas, so the run must reduce to
// a single token.
func equalityTerm(text string, run []rawToken) (string, error) {
	if len(run) != 1 {
		return "", &ParseError{Text: text, Reason: "equality operand must be a single term"}
	}
	if run[0].text == "" {
		return "", &ParseError{Text: text, Reason: "equality operand cannot be empty"}
	}
	return run[0].text, nil
}

func splitArgs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, p)
	}
	return out
}

// assembleQuantifier handles `A`/`E` at the head of a formula: the next
// token is the bound variable (bare identifier, or a span whose content
// is a single bare identifier), and everything after is the body.
func assembleQuantifier(text string, tokens []rawToken, used map[string]bool) (*Formula, error) {
	if len(tokens) < 3 {
		return nil, &ParseError{Text: text, Reason: "quantifier requires a bound variable and a body"}
	}
	quant := tokens[0].ch

	variable, err := quantifierVariable(text, tokens[1])
	if err != nil {
		return nil, err
	}

	if used[variable] {
		return nil, &ParseError{Text: text, Reason: fmt.Sprintf("variable %q is used as a binder more than once (no shadowing)", variable)}
	}
	used[variable] = true

	body, err := parseBodyTokens(text, tokens[2:], used)
	if err != nil {
		return nil, err
	}

	if quant == 'A' {
		return NewUniversal(variable, body), nil
	}
	return NewExistential(variable, body), nil
}

func quantifierVariable(text string, tok rawToken) (string, error) {
	if tok.kind == tokConnective {
		return "", &ParseError{Text: text, Reason: "expected a bound variable after quantifier"}
	}
	name := tok.text
	if tok.isSpan {
		inner, err := tokenize(tok.text)
		if err != nil {
			return "", err
		}
		if len(inner) != 1 || inner[0].kind != tokAtom || inner[0].isSpan {
			return "", &ParseError{Text: text, Reason: "quantifier variable must be a single identifier"}
		}
		name = inner[0].text
	}
	if name == "" {
		return "", &ParseError{Text: text, Reason: "quantifier variable cannot be empty"}
	}
	return name, nil
}

// parseBodyTokens assembles the remaining tokens after a quantifier's
// bound variable as the quantifier's body, reusing the same assembly
// rules as a top-level formula.
func parseBodyTokens(text string, tokens []rawToken, used map[string]bool) (*Formula, error) {
	if len(tokens) == 0 {
		return nil, &ParseError{Text: text, Reason: "quantifier body cannot be empty"}
	}
	if len(tokens) == 1 && tokens[0].isSpan {
		return parseWithBinders(tokens[0].text, used)
	}
	return assemble(text, tokens, used)
}

// Package formula implements parsing and structural analysis for the
// compact first-order formula syntax: propositional connectives, quoted
// predicates, and quantifier binders with shadowing rules.
//
// The syntax, by example:
//   - Atomic: P, Q
//   - Binary: P&Q (and), PvQ (or), P>Q (conditional)
//   - Unary: ~P (negation)
//   - Quantifiers: Ax(F(x)), Ex(G(x)), or the parenthesized-variable form A(x)(F(x))
//   - Predicate with args: F(a,b,c)
//   - Infix predicate: (a)is(b), a=b
//
// Parsing runs in three passes: tokenize (depth-tracked, capturing
// parenthesized spans opaquely), group (merge consecutive atoms into
// runs, separated by connective tokens), and assemble (build the
// Formula tree from the grouped constituents).
package formula

import (
	"fmt"
)

// tokKind distinguishes a reserved single-character connective from an
// atom (a bare identifier run or an opaque parenthesized span).
type tokKind int

const (
	tokAtom tokKind = iota
	tokConnective
)

// rawToken is a single top-level token produced by the tokenizer. Atom
// tokens carry either an identifier's literal text or a parenthesized
// span's inner content (isSpan distinguishes the two, since only spans
// are eligible for recursive re-parsing).
type rawToken struct {
	kind tokKind
	ch   byte // connective character: '(' never appears here, only & v > ~ A E = ,
	text string
	isSpan bool
	pos  int
}

// reserved reports whether r is one of the characters that are never
// part of an identifier: grouping, the argument separator, and the
// connective/quantifier/equality symbols.
func reserved(r byte) bool {
	switch r {
	case '(', ')', ',', '&', 'v', '>', '~', 'A', 'E', '=':
		return true
	default:
		return false
	}
}

func isSpace(r byte) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// tokenize runs Pass 1: it walks the input tracking paren depth,
// recognizing reserved single-character tokens at depth 0 and capturing
// parenthesized spans as opaque substrings with their outer parens
// stripped. Unbalanced parentheses and an empty formula are hard errors.
func tokenize(input string) ([]rawToken, error) {
	if len(input) == 0 {
		return nil, &ParseError{Text: input, Reason: "empty formula"}
	}

	var tokens []rawToken
	pos := 0
	n := len(input)

	for pos < n {
		c := input[pos]

		if isSpace(c) {
			pos++
			continue
		}

		if c == ')' {
			return nil, &ParseError{Text: input, Reason: fmt.Sprintf("unbalanced parentheses at position %d", pos)}
		}

		if c == '(' {
			start := pos
			depth := 1
			pos++
			for pos < n && depth > 0 {
				switch input[pos] {
				case '(':
					depth++
				case ')':
					depth--
				}
				pos++
			}
			if depth != 0 {
				return nil, &ParseError{Text: input, Reason: fmt.Sprintf("unbalanced parentheses starting at position %d", start)}
			}
			inner := input[start+1 : pos-1]
			tokens = append(tokens, rawToken{kind: tokAtom, text: inner, isSpan: true, pos: start})
			continue
		}

		if reserved(c) {
			tokens = append(tokens, rawToken{kind: tokConnective, ch: c, pos: pos})
			pos++
			continue
		}

		start := pos
		for pos < n && !reserved(input[pos]) && !isSpace(input[pos]) {
			pos++
		}
		tokens = append(tokens, rawToken{kind: tokAtom, text: input[start:pos], pos: start})
	}

	if len(tokens) == 0 {
		return nil, &ParseError{Text: input, Reason: "empty formula"}
	}

	return tokens, nil
}

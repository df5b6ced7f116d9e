// Package proof implements the rule engine and the Line/Proof assembly
// that sits on top of it: sixteen inference rules sharing a common
// dependency-discharge validation contract, and the identity-based line
// graph that rules are checked against.
package proof

import (
	"fmt"

	"github.com/arborist/ndverify/internal/formula"
)

// Symbol names one of the sixteen inference rules recognized by the
// engine, keyed by the citation symbol used in the proof text format.
type Symbol string

const (
	SymbolPremise      Symbol = "P"
	SymbolAssumption   Symbol = "A"
	SymbolAndIntro     Symbol = "&I"
	SymbolAndElim      Symbol = "&E"
	SymbolOrIntro      Symbol = "vI"
	SymbolOrElim       Symbol = "vE"
	SymbolCondProof    Symbol = "CP"
	SymbolModusPonens  Symbol = "MP"
	SymbolDNIntro      Symbol = "DNI"
	SymbolDNElim       Symbol = "DNE"
	SymbolModusTollens Symbol = "MT"
	SymbolRAA          Symbol = "RAA"
	SymbolUnivIntro    Symbol = "UI"
	SymbolUnivElim     Symbol = "UE"
	SymbolExistIntro   Symbol = "EI"
	SymbolExistElim    Symbol = "EE"
	SymbolEqIntro      Symbol = "=I"
	SymbolEqElim       Symbol = "=E"
)

// arities is the read-only, process-wide parse table for rule symbols.
// It is fully initialized before first use and never written to again.
var arities = map[Symbol]int{
	SymbolPremise:      0,
	SymbolAssumption:   0,
	SymbolAndIntro:     2,
	SymbolAndElim:      1,
	SymbolOrIntro:      1,
	SymbolOrElim:       5,
	SymbolCondProof:    2,
	SymbolModusPonens:  2,
	SymbolDNIntro:      1,
	SymbolDNElim:       1,
	SymbolModusTollens: 2,
	SymbolRAA:          2,
	SymbolUnivIntro:    1,
	SymbolUnivElim:     1,
	SymbolExistIntro:   1,
	SymbolExistElim:    3,
	SymbolEqIntro:      0,
	SymbolEqElim:       2,
}

// RuleError is raised by NewRule when the symbol is unknown or the cited
// line count mismatches the rule's fixed arity. It belongs to the same
// structural, build-abandoning error family as formula.ParseError.
type RuleError struct {
	Symbol string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule error for symbol %q: %s", e.Symbol, e.Reason)
}

// Rule is a constructed instance of one of the sixteen inference rules,
// carrying the ordered cited lines it was built with.
type Rule struct {
	Symbol Symbol
	Cited  []*Line
}

// NewRule constructs a Rule, verifying the symbol is known and that the
// number of cited lines matches the rule's fixed arity.
func NewRule(symbol string, cited []*Line) (*Rule, error) {
	sym := Symbol(symbol)
	arity, ok := arities[sym]
	if !ok {
		return nil, &RuleError{Symbol: symbol, Reason: "unknown rule symbol"}
	}
	if len(cited) != arity {
		return nil, &RuleError{Symbol: symbol, Reason: fmt.Sprintf("rule %s requires %d cited line(s), got %d", symbol, arity, len(cited))}
	}
	return &Rule{Symbol: sym, Cited: cited}, nil
}

// IsAssumptionRule reports whether sym is Premise or Assumption, the two
// self-dependent rule kinds.
func IsAssumptionRule(sym Symbol) bool {
	return sym == SymbolPremise || sym == SymbolAssumption
}

// ruleDef is the non-assumption half of the common validation protocol:
// which cited lines' dependencies are discharged out of the expected
// set, and the rule-specific structural/variable side condition.
type ruleDef struct {
	discharge  func(cited []*Line) []*Line
	structural func(l *Line) bool
}

func noDischarge([]*Line) []*Line { return nil }

var ruleDefs = map[Symbol]ruleDef{
	SymbolAndIntro: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a, b := l.Rule.Cited[0], l.Rule.Cited[1]
			return l.Formula.Kind() == formula.KindAnd &&
				formula.Equal(l.Formula.Left(), a.Formula) &&
				formula.Equal(l.Formula.Right(), b.Formula)
		},
	},
	SymbolAndElim: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a := l.Rule.Cited[0]
			if a.Formula.Kind() != formula.KindAnd {
				return false
			}
			return formula.Equal(l.Formula, a.Formula.Left()) || formula.Equal(l.Formula, a.Formula.Right())
		},
	},
	SymbolOrIntro: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a := l.Rule.Cited[0]
			if l.Formula.Kind() != formula.KindOr {
				return false
			}
			return formula.Equal(a.Formula, l.Formula.Left()) || formula.Equal(a.Formula, l.Formula.Right())
		},
	},
	SymbolOrElim: {
		discharge: func(cited []*Line) []*Line {
			return []*Line{cited[1], cited[3]}
		},
		structural: func(l *Line) bool {
			d, a1, c1, a2, c2 := l.Rule.Cited[0], l.Rule.Cited[1], l.Rule.Cited[2], l.Rule.Cited[3], l.Rule.Cited[4]
			if d.Formula.Kind() != formula.KindOr {
				return false
			}
			if !a1.IsAssumption || !formula.Equal(a1.Formula, d.Formula.Left()) {
				return false
			}
			if !a2.IsAssumption || !formula.Equal(a2.Formula, d.Formula.Right()) {
				return false
			}
			if !containsIdentity(c1.Dependencies, a1) || !containsIdentity(c2.Dependencies, a2) {
				return false
			}
			return formula.Equal(c1.Formula, l.Formula) && formula.Equal(c2.Formula, l.Formula)
		},
	},
	SymbolCondProof: {
		discharge: func(cited []*Line) []*Line {
			return []*Line{cited[0]}
		},
		structural: func(l *Line) bool {
			a, c := l.Rule.Cited[0], l.Rule.Cited[1]
			if !a.IsAssumption {
				return false
			}
			if l.Formula.Kind() != formula.KindConditional {
				return false
			}
			if !containsIdentity(c.Dependencies, a) {
				return false
			}
			return formula.Equal(l.Formula.Left(), a.Formula) && formula.Equal(l.Formula.Right(), c.Formula)
		},
	},
	SymbolModusPonens: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			i, a := l.Rule.Cited[0], l.Rule.Cited[1]
			if i.Formula.Kind() != formula.KindConditional {
				return false
			}
			return formula.Equal(i.Formula.Left(), a.Formula) && formula.Equal(i.Formula.Right(), l.Formula)
		},
	},
	SymbolDNIntro: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a := l.Rule.Cited[0]
			if l.Formula.Kind() != formula.KindNot || l.Formula.Inner().Kind() != formula.KindNot {
				return false
			}
			return formula.Equal(l.Formula.Inner().Inner(), a.Formula)
		},
	},
	SymbolDNElim: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a := l.Rule.Cited[0]
			if a.Formula.Kind() != formula.KindNot || a.Formula.Inner().Kind() != formula.KindNot {
				return false
			}
			return formula.Equal(a.Formula.Inner().Inner(), l.Formula)
		},
	},
	SymbolModusTollens: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			i, n := l.Rule.Cited[0], l.Rule.Cited[1]
			if i.Formula.Kind() != formula.KindConditional || n.Formula.Kind() != formula.KindNot {
				return false
			}
			if !formula.Equal(n.Formula.Inner(), i.Formula.Right()) {
				return false
			}
			return l.Formula.Kind() == formula.KindNot && formula.Equal(l.Formula.Inner(), i.Formula.Left())
		},
	},
	SymbolRAA: {
		discharge: func(cited []*Line) []*Line {
			return []*Line{cited[0]}
		},
		structural: func(l *Line) bool {
			a, c := l.Rule.Cited[0], l.Rule.Cited[1]
			if !a.IsAssumption {
				return false
			}
			if c.Formula.Kind() != formula.KindAnd || c.Formula.Right().Kind() != formula.KindNot {
				return false
			}
			if !formula.Equal(c.Formula.Left(), c.Formula.Right().Inner()) {
				return false
			}
			if !containsIdentity(c.Dependencies, a) {
				return false
			}
			return l.Formula.Kind() == formula.KindNot && formula.Equal(l.Formula.Inner(), a.Formula)
		},
	},
	SymbolUnivIntro: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a := l.Rule.Cited[0]
			if l.Formula.Kind() != formula.KindUniversal {
				return false
			}
			v, body := l.Formula.Bound(), l.Formula.Inner()
			w, ok := formula.FreeVariableCorrespondence(body, v, a.Formula)
			if !ok {
				return formula.Equal(body, a.Formula)
			}
			if !formula.EqualUnderMap(body, a.Formula, map[string]string{v: w}) {
				return false
			}
			for _, dep := range a.Dependencies {
				if formula.ContainsVariable(dep.Formula, w) {
					return false
				}
			}
			return true
		},
	},
	SymbolUnivElim: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a := l.Rule.Cited[0]
			if a.Formula.Kind() != formula.KindUniversal {
				return false
			}
			v, body := a.Formula.Bound(), a.Formula.Inner()
			w, ok := formula.FreeVariableCorrespondence(body, v, l.Formula)
			if !ok {
				return formula.Equal(body, l.Formula)
			}
			return formula.EqualUnderMap(body, l.Formula, map[string]string{v: w})
		},
	},
	SymbolExistIntro: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			a := l.Rule.Cited[0]
			if l.Formula.Kind() != formula.KindExistential {
				return false
			}
			v, body := l.Formula.Bound(), l.Formula.Inner()
			w, ok := formula.FreeVariableCorrespondence(body, v, a.Formula)
			if !ok {
				return formula.Equal(body, a.Formula)
			}
			return formula.EqualUnderMap(body, a.Formula, map[string]string{v: w})
		},
	},
	SymbolExistElim: {
		discharge: func(cited []*Line) []*Line {
			return []*Line{cited[1]}
		},
		structural: func(l *Line) bool {
			e, t, c := l.Rule.Cited[0], l.Rule.Cited[1], l.Rule.Cited[2]
			if e.Formula.Kind() != formula.KindExistential {
				return false
			}
			if !t.IsAssumption {
				return false
			}
			v, body := e.Formula.Bound(), e.Formula.Inner()
			w, ok := formula.FreeVariableCorrespondence(body, v, t.Formula)
			if ok {
				if !formula.EqualUnderMap(body, t.Formula, map[string]string{v: w}) {
					return false
				}
				if formula.ContainsVariable(c.Formula, w) {
					return false
				}
				for _, dep := range l.Dependencies {
					if formula.ContainsVariable(dep.Formula, w) {
						return false
					}
				}
			} else if !formula.Equal(body, t.Formula) {
				return false
			}
			return formula.Equal(c.Formula, l.Formula)
		},
	},
	SymbolEqIntro: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			if l.Formula.Kind() != formula.KindPredicate || l.Formula.Name() != "=" {
				return false
			}
			args := l.Formula.Args()
			return len(args) == 2 && args[0] == args[1]
		},
	},
	SymbolEqElim: {
		discharge: noDischarge,
		structural: func(l *Line) bool {
			eq, a := l.Rule.Cited[0], l.Rule.Cited[1]
			if eq.Formula.Kind() != formula.KindPredicate || eq.Formula.Name() != "=" || len(eq.Formula.Args()) != 2 {
				return false
			}
			x, y := eq.Formula.Args()[0], eq.Formula.Args()[1]
			forward := formula.EqualUnderMap(a.Formula, l.Formula, map[string]string{x: y})
			backward := formula.EqualUnderMap(a.Formula, l.Formula, map[string]string{y: x})
			return forward || backward
		},
	},
}

package proof

import (
	"github.com/arborist/ndverify/internal/debug"
	"github.com/arborist/ndverify/internal/formula"
)

// Line is one entry of a Proof: a formula asserted by a rule, together
// with the (identity-based) set of open assumption lines it depends on.
// Lines are immutable once constructed; validity is a pure, memoizable
// function of the frozen graph reachable from it.
type Line struct {
	Label      string
	SourceText string
	Formula    *formula.Formula
	Rule       *Rule

	Dependencies []*Line
	IsAssumption bool

	selfDependency bool
	valid          *bool
}

// NewLine constructs a Line from its already-resolved dependency
// references, formula, and rule. If selfDependency is true, the line is
// appended to its own dependency set after construction — the only way
// a Line can depend on itself, reserved for Premise and Assumption.
func NewLine(label, sourceText string, f *formula.Formula, rule *Rule, deps []*Line, selfDependency bool) *Line {
	cp := make([]*Line, len(deps))
	copy(cp, deps)
	l := &Line{
		Label:          label,
		SourceText:     sourceText,
		Formula:        f,
		Rule:           rule,
		Dependencies:   cp,
		IsAssumption:   IsAssumptionRule(rule.Symbol),
		selfDependency: selfDependency,
	}
	if selfDependency {
		l.Dependencies = append(l.Dependencies, l)
	}
	return l
}

// IsValid reports whether l is a correct application of its rule under
// the dependency-discharge and structural side conditions of §4.3. The
// result is memoized: Line is immutable, so caching is safe without
// synchronization in the single-threaded evaluation model.
func (l *Line) IsValid() bool {
	if l.valid != nil {
		return *l.valid
	}
	v := l.computeValid()
	l.valid = &v
	debug.TraceLine(l.Label, string(l.Rule.Symbol), v)
	return v
}

func (l *Line) computeValid() bool {
	if IsAssumptionRule(l.Rule.Symbol) {
		return identitySetEqual(l.Dependencies, []*Line{l})
	}

	for _, c := range l.Rule.Cited {
		if !c.IsValid() {
			return false
		}
	}

	def, ok := ruleDefs[l.Rule.Symbol]
	if !ok {
		return false
	}

	var concatenated []*Line
	for _, c := range l.Rule.Cited {
		concatenated = append(concatenated, c.Dependencies...)
	}
	expected := subtractIdentitySet(concatenated, def.discharge(l.Rule.Cited))

	if !identitySetEqual(l.Dependencies, expected) {
		return false
	}
	return def.structural(l)
}

func containsIdentity(set []*Line, l *Line) bool {
	for _, x := range set {
		if x == l {
			return true
		}
	}
	return false
}

func identitySetEqual(a, b []*Line) bool {
	return isSubsetIdentity(a, b) && isSubsetIdentity(b, a)
}

func isSubsetIdentity(a, b []*Line) bool {
	for _, x := range a {
		if !containsIdentity(b, x) {
			return false
		}
	}
	return true
}

// subtractIdentitySet returns the de-duplicated set of lines in a that
// are not in discharge, by identity.
func subtractIdentitySet(a, discharge []*Line) []*Line {
	var out []*Line
	for _, x := range a {
		if containsIdentity(discharge, x) || containsIdentity(out, x) {
			continue
		}
		out = append(out, x)
	}
	return out
}

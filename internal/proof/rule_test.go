package proof

import (
	"testing"

	"github.com/arborist/ndverify/internal/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// premise builds a self-dependent Premise line asserting f's parse of
// src, for use as a cited fixture in the rule-specific tests below.
func premise(t *testing.T, label, src string) *Line {
	t.Helper()
	rule, err := NewRule("P", nil)
	require.NoError(t, err)
	return NewLine(label, label+" "+label+" "+src+" P", mustFormula(t, src), rule, nil, true)
}

// assumption builds a self-dependent Assumption line, mirroring premise.
func assumption(t *testing.T, label, src string) *Line {
	t.Helper()
	rule, err := NewRule("A", nil)
	require.NoError(t, err)
	return NewLine(label, label+" "+label+" "+src+" A", mustFormula(t, src), rule, nil, true)
}

func TestNewRuleUnknownSymbol(t *testing.T) {
	_, err := NewRule("ZZ", nil)
	require.Error(t, err)
}

func TestNewRuleArityMismatch(t *testing.T) {
	_, err := NewRule("&I", nil)
	require.Error(t, err)
}

func TestNewRuleAcceptsMatchingArity(t *testing.T) {
	premiseRule, err := NewRule("P", nil)
	require.NoError(t, err)
	line := &Line{Rule: premiseRule}

	_, err = NewRule("&E", []*Line{line})
	assert.NoError(t, err)

	_, err = NewRule("&I", []*Line{line})
	require.Error(t, err)
}

func TestIsAssumptionRule(t *testing.T) {
	assert.True(t, IsAssumptionRule(SymbolPremise))
	assert.True(t, IsAssumptionRule(SymbolAssumption))
	assert.False(t, IsAssumptionRule(SymbolModusPonens))
}

func TestOrIntroduction(t *testing.T) {
	p := premise(t, "1", "P")
	rule, err := NewRule("vI", []*Line{p})
	require.NoError(t, err)
	l := NewLine("2", "1 2 PvQ vI 1", mustFormula(t, "PvQ"), rule, p.Dependencies, false)
	assert.True(t, l.IsValid())

	// Neither disjunct matches the cited line's formula: invalid.
	badRule, err := NewRule("vI", []*Line{p})
	require.NoError(t, err)
	bad := NewLine("3", "1 3 QvR vI 1", mustFormula(t, "QvR"), badRule, p.Dependencies, false)
	assert.False(t, bad.IsValid())
}

func TestDoubleNegationIntroduction(t *testing.T) {
	p := premise(t, "1", "P")
	rule, err := NewRule("DNI", []*Line{p})
	require.NoError(t, err)
	l := NewLine("2", "1 2 ~(~(P)) DNI 1", mustFormula(t, "~(~(P))"), rule, p.Dependencies, false)
	assert.True(t, l.IsValid())

	badRule, err := NewRule("DNI", []*Line{p})
	require.NoError(t, err)
	bad := NewLine("3", "1 3 P DNI 1", mustFormula(t, "P"), badRule, p.Dependencies, false)
	assert.False(t, bad.IsValid())
}

func TestDoubleNegationElimination(t *testing.T) {
	p := premise(t, "1", "~(~(P))")
	rule, err := NewRule("DNE", []*Line{p})
	require.NoError(t, err)
	l := NewLine("2", "1 2 P DNE 1", mustFormula(t, "P"), rule, p.Dependencies, false)
	assert.True(t, l.IsValid())

	badRule, err := NewRule("DNE", []*Line{p})
	require.NoError(t, err)
	bad := NewLine("3", "1 3 Q DNE 1", mustFormula(t, "Q"), badRule, p.Dependencies, false)
	assert.False(t, bad.IsValid())
}

func TestModusTollens(t *testing.T) {
	i := premise(t, "1", "P>Q")
	n := premise(t, "2", "~(Q)")
	cited := []*Line{i, n}
	rule, err := NewRule("MT", cited)
	require.NoError(t, err)
	deps := append(append([]*Line{}, i.Dependencies...), n.Dependencies...)
	l := NewLine("3", "1,2 3 ~(P) MT 1,2", mustFormula(t, "~(P)"), rule, deps, false)
	assert.True(t, l.IsValid())

	badRule, err := NewRule("MT", cited)
	require.NoError(t, err)
	bad := NewLine("4", "1,2 4 P MT 1,2", mustFormula(t, "P"), badRule, deps, false)
	assert.False(t, bad.IsValid())
}

func TestConditionalProof(t *testing.T) {
	a := assumption(t, "1", "P")
	dniRule, err := NewRule("DNI", []*Line{a})
	require.NoError(t, err)
	c := NewLine("2", "1 2 ~(~(P)) DNI 1", mustFormula(t, "~(~(P))"), dniRule, a.Dependencies, false)

	cpRule, err := NewRule("CP", []*Line{a, c})
	require.NoError(t, err)
	l := NewLine("3", "- 3 P>(~(~(P))) CP 1,2", mustFormula(t, "P>(~(~(P)))"), cpRule, nil, false)
	assert.True(t, l.IsValid())

	// c does not depend on the cited assumption other: CP's discharge
	// precondition fails.
	other := assumption(t, "4", "Q")
	badCP, err := NewRule("CP", []*Line{other, c})
	require.NoError(t, err)
	bad := NewLine("5", "- 5 Q>(~(~(P))) CP 4,2", mustFormula(t, "Q>(~(~(P)))"), badCP, nil, false)
	assert.False(t, bad.IsValid())
}

func TestReductioAdAbsurdum(t *testing.T) {
	a := assumption(t, "1", "P")
	notP := premise(t, "2", "~(P)")

	andIRule, err := NewRule("&I", []*Line{a, notP})
	require.NoError(t, err)
	conjDeps := append(append([]*Line{}, a.Dependencies...), notP.Dependencies...)
	contradiction := NewLine("3", "1,2 3 P&(~(P)) &I 1,2", mustFormula(t, "P&(~(P))"), andIRule, conjDeps, false)
	require.True(t, contradiction.IsValid())

	raaRule, err := NewRule("RAA", []*Line{a, contradiction})
	require.NoError(t, err)
	expected := append(append([]*Line{}, a.Dependencies...), contradiction.Dependencies...)
	expected = subtractIdentitySet(expected, []*Line{a})
	l := NewLine("4", "2 4 ~(P) RAA 1,3", mustFormula(t, "~(P)"), raaRule, expected, false)
	assert.True(t, l.IsValid())

	// The contradiction does not depend on a: discharge precondition fails.
	other := assumption(t, "5", "R")
	q := premise(t, "6", "Q")
	notQ := premise(t, "7", "~(Q)")
	unrelatedRule, err := NewRule("&I", []*Line{q, notQ})
	require.NoError(t, err)
	unrelatedDeps := append(append([]*Line{}, q.Dependencies...), notQ.Dependencies...)
	unrelated := NewLine("8", "6,7 8 Q&(~(Q)) &I 6,7", mustFormula(t, "Q&(~(Q))"), unrelatedRule, unrelatedDeps, false)

	badRAA, err := NewRule("RAA", []*Line{other, unrelated})
	require.NoError(t, err)
	badExpected := append(append([]*Line{}, other.Dependencies...), unrelated.Dependencies...)
	badExpected = subtractIdentitySet(badExpected, []*Line{other})
	bad := NewLine("9", "6,7 9 ~(R) RAA 5,8", mustFormula(t, "~(R)"), badRAA, badExpected, false)
	assert.False(t, bad.IsValid())
}

func TestExistentialIntroduction(t *testing.T) {
	a := NewLine("1", "- 1 F(c) P", formula.NewPredicate("F", []string{"c"}), mustRule(t, "P", nil), nil, true)
	body := formula.NewPredicate("F", []string{"x"})
	existsFx := formula.NewExistential("x", body)

	rule, err := NewRule("EI", []*Line{a})
	require.NoError(t, err)
	l := NewLine("2", "1 2 Ex(F(x)) EI 1", existsFx, rule, a.Dependencies, false)
	assert.True(t, l.IsValid())

	badRule, err := NewRule("EI", []*Line{a})
	require.NoError(t, err)
	bad := NewLine("3", "1 3 Ex(G(x)) EI 1", formula.NewExistential("x", formula.NewPredicate("G", []string{"x"})), badRule, a.Dependencies, false)
	assert.False(t, bad.IsValid())
}

// TestExistentialEliminationRoundTrip builds Ex(F(x)) via EI from a
// witness "c", then eliminates and reintroduces it via a second,
// genuinely fresh witness "b" — demonstrating that EE honors the
// eigenvariable side condition rather than merely exercising the
// happy structural path.
func TestExistentialEliminationRoundTrip(t *testing.T) {
	a := NewLine("1", "- 1 F(c) P", formula.NewPredicate("F", []string{"c"}), mustRule(t, "P", nil), nil, true)
	body := formula.NewPredicate("F", []string{"x"})
	existsFx := formula.NewExistential("x", body)

	eiRule, err := NewRule("EI", []*Line{a})
	require.NoError(t, err)
	e := NewLine("2", "1 2 Ex(F(x)) EI 1", existsFx, eiRule, a.Dependencies, false)

	tWitness := assumption(t, "3", "F(b)")

	reintroRule, err := NewRule("EI", []*Line{tWitness})
	require.NoError(t, err)
	c := NewLine("4", "3 4 Ex(F(x)) EI 3", existsFx, reintroRule, tWitness.Dependencies, false)

	eeRule, err := NewRule("EE", []*Line{e, tWitness, c})
	require.NoError(t, err)
	l := NewLine("5", "1 5 Ex(F(x)) EE 2,3,4", existsFx, eeRule, a.Dependencies, false)
	assert.True(t, l.IsValid())
}

func mustRule(t *testing.T, symbol string, cited []*Line) *Rule {
	t.Helper()
	r, err := NewRule(symbol, cited)
	require.NoError(t, err)
	return r
}

// TestAndRoundTrip exercises spec's round-trip law: &I followed by &E
// on the left (resp. right) returns the original formula.
func TestAndRoundTrip(t *testing.T) {
	p := premise(t, "1", "P")
	q := premise(t, "2", "Q")

	andIRule, err := NewRule("&I", []*Line{p, q})
	require.NoError(t, err)
	deps := append(append([]*Line{}, p.Dependencies...), q.Dependencies...)
	conj := NewLine("3", "1,2 3 P&Q &I 1,2", mustFormula(t, "P&Q"), andIRule, deps, false)
	require.True(t, conj.IsValid())

	leftRule, err := NewRule("&E", []*Line{conj})
	require.NoError(t, err)
	left := NewLine("4", "1,2 4 P &E 3", mustFormula(t, "P"), leftRule, conj.Dependencies, false)
	assert.True(t, left.IsValid())
	assert.True(t, formula.Equal(left.Formula, p.Formula))

	rightRule, err := NewRule("&E", []*Line{conj})
	require.NoError(t, err)
	right := NewLine("5", "1,2 5 Q &E 3", mustFormula(t, "Q"), rightRule, conj.Dependencies, false)
	assert.True(t, right.IsValid())
	assert.True(t, formula.Equal(right.Formula, q.Formula))
}

// TestDoubleNegationRoundTrip exercises spec's round-trip law: DNI
// followed by DNE returns the original formula, and DNE followed by
// DNI returns to the doubly-negated original, in both directions.
func TestDoubleNegationRoundTrip(t *testing.T) {
	p := premise(t, "1", "P")

	dniRule, err := NewRule("DNI", []*Line{p})
	require.NoError(t, err)
	dni := NewLine("2", "1 2 ~(~(P)) DNI 1", mustFormula(t, "~(~(P))"), dniRule, p.Dependencies, false)
	require.True(t, dni.IsValid())

	dneRule, err := NewRule("DNE", []*Line{dni})
	require.NoError(t, err)
	dne := NewLine("3", "1 3 P DNE 2", mustFormula(t, "P"), dneRule, dni.Dependencies, false)
	assert.True(t, dne.IsValid())
	assert.True(t, formula.Equal(dne.Formula, p.Formula))

	notNotP := premise(t, "4", "~(~(P))")
	dneRule2, err := NewRule("DNE", []*Line{notNotP})
	require.NoError(t, err)
	dne2 := NewLine("5", "4 5 P DNE 4", mustFormula(t, "P"), dneRule2, notNotP.Dependencies, false)
	require.True(t, dne2.IsValid())

	dniRule2, err := NewRule("DNI", []*Line{dne2})
	require.NoError(t, err)
	dni2 := NewLine("6", "4 6 ~(~(P)) DNI 5", mustFormula(t, "~(~(P))"), dniRule2, dne2.Dependencies, false)
	assert.True(t, dni2.IsValid())
	assert.True(t, formula.Equal(dni2.Formula, notNotP.Formula))
}

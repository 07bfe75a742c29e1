package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/anthem/internal/asp"
	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

func translate(t *testing.T, program string) *Context {
	t.Helper()
	rules, err := asp.Parse(program)
	require.NoError(t, err)

	c := NewContext(fol.NewRegistry(nil), nil)
	require.NoError(t, c.TranslateProgram(rules))
	return c
}

func TestTranslateNormalRule(t *testing.T) {
	t.Parallel()

	c := translate(t, "p(X) :- q(X).")
	r := c.Registry()

	p, ok := r.LookupPredicateDeclaration("p", 1)
	require.True(t, ok)
	q, ok := r.LookupPredicateDeclaration("q", 1)
	require.True(t, ok)

	defs, ok := c.Definitions(p)
	require.True(t, ok)
	require.Len(t, defs.Rules, 1)

	// Variables are allocated in order: the body parameter, X, the head parameter.
	z, x, v := fol.VariableID(0), fol.VariableID(1), fol.VariableID(2)
	assert.Equal(t, []fol.VariableID{v}, defs.HeadParams)

	expected := fol.OpenFormula{
		FreeVariables: []fol.VariableID{x},
		Formula: fol.And(
			fol.Exists([]fol.VariableID{z}, fol.And(
				fol.Equals(fol.Var(z), fol.Var(x)),
				fol.Predicate(q, fol.Var(z)),
			)),
			fol.Equals(fol.Var(v), fol.Var(x)),
		),
	}
	assert.Equal(t, expected, defs.Rules[0])

	domain, ok := r.VariableDomain(x)
	require.True(t, ok)
	assert.Equal(t, fol.DomainProgram, domain)

	_, ok = c.Definitions(q)
	assert.False(t, ok)
}

func TestTranslateSharedHeadParameters(t *testing.T) {
	t.Parallel()

	c := translate(t, "p(1).\np(a).\np(X) :- q(X).")
	p, _ := c.Registry().LookupPredicateDeclaration("p", 1)

	defs, ok := c.Definitions(p)
	require.True(t, ok)
	require.Len(t, defs.Rules, 3)

	head := defs.HeadParams[0]
	a, _ := lookupFunction(c.Registry(), "a")

	assert.Equal(t, fol.And(fol.Equals(fol.Var(head), fol.Int(1))), defs.Rules[0].Formula)
	assert.Equal(t, fol.And(fol.Equals(fol.Var(head), fol.Constant(a))), defs.Rules[1].Formula)
	assert.Empty(t, defs.Rules[0].FreeVariables)
}

func lookupFunction(r *fol.Registry, name string) (*fol.FunctionDeclaration, bool) {
	for _, d := range r.FunctionDeclarations() {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

func TestTranslateFactWithoutArguments(t *testing.T) {
	t.Parallel()

	c := translate(t, "a.")
	a, _ := c.Registry().LookupPredicateDeclaration("a", 0)

	defs, ok := c.Definitions(a)
	require.True(t, ok)
	require.Len(t, defs.Rules, 1)
	assert.Equal(t, fol.True(), defs.Rules[0].Formula)
}

func TestTranslateChoiceRule(t *testing.T) {
	t.Parallel()

	c := translate(t, "{p(X)} :- q(X).")
	p, _ := c.Registry().LookupPredicateDeclaration("p", 1)

	defs, ok := c.Definitions(p)
	require.True(t, ok)
	and, ok := defs.Rules[0].Formula.(fol.AndFormula)
	require.True(t, ok)
	require.Len(t, and.Args, 3)
	assert.Equal(t, fol.Predicate(p, fol.Var(defs.HeadParams[0])), and.Args[1])
}

func TestTranslateIntegrityConstraint(t *testing.T) {
	t.Parallel()

	c := translate(t, ":- p, not q.\n#false :- r(X).")
	r := c.Registry()
	p, _ := r.LookupPredicateDeclaration("p", 0)
	q, _ := r.LookupPredicateDeclaration("q", 0)

	constraints := c.IntegrityConstraints()
	require.Len(t, constraints, 2)
	assert.Equal(t, fol.Not(fol.And(fol.Predicate(p), fol.Not(fol.Predicate(q)))), constraints[0])

	forall, ok := constraints[1].(fol.ForAllFormula)
	require.True(t, ok)
	require.Len(t, forall.Params, 1)
	name, _ := r.VariableName(forall.Params[0])
	assert.Equal(t, "X", name)
}

func TestTranslateTrivialRule(t *testing.T) {
	t.Parallel()

	c := translate(t, "#true :- p.")
	assert.Empty(t, c.IntegrityConstraints())

	p, ok := c.Registry().LookupPredicateDeclaration("p", 0)
	require.True(t, ok)
	_, ok = c.Definitions(p)
	assert.False(t, ok)
}

func TestTranslateDoubleNegation(t *testing.T) {
	t.Parallel()

	c := translate(t, ":- not not p.")
	p, _ := c.Registry().LookupPredicateDeclaration("p", 0)
	assert.Equal(t, fol.Not(fol.And(fol.Predicate(p))), c.IntegrityConstraints()[0])
}

func TestTranslateAnonymousVariables(t *testing.T) {
	t.Parallel()

	c := translate(t, "p :- q(_, _).")
	p, _ := c.Registry().LookupPredicateDeclaration("p", 0)

	defs, _ := c.Definitions(p)
	assert.Len(t, defs.Rules[0].FreeVariables, 2)
}

func TestTranslateComparison(t *testing.T) {
	t.Parallel()

	c := translate(t, ":- X < 3.")
	r := c.Registry()

	// Z1, Z2, then X.
	z1, z2, x := fol.VariableID(0), fol.VariableID(1), fol.VariableID(2)
	expected := fol.ForAll([]fol.VariableID{x}, fol.Not(fol.And(
		fol.Exists([]fol.VariableID{z1, z2}, fol.And(
			fol.Equals(fol.Var(z1), fol.Var(x)),
			fol.Equals(fol.Var(z2), fol.Int(3)),
			fol.Compare(fol.Less, fol.Var(z1), fol.Var(z2)),
		)),
	)))
	assert.Equal(t, expected, c.IntegrityConstraints()[0])

	for _, id := range []fol.VariableID{z1, z2} {
		domain, _ := r.VariableDomain(id)
		assert.Equal(t, fol.DomainProgram, domain)
	}
}

func TestChooseValueInArithmetic(t *testing.T) {
	t.Parallel()

	c := translate(t, "p(X + 1) :- q(X).")
	p, _ := c.Registry().LookupPredicateDeclaration("p", 1)
	defs, _ := c.Definitions(p)

	// q's parameter is 0, X is 1, the head parameter is 2, then a and b.
	x, v, a, b := fol.VariableID(1), fol.VariableID(2), fol.VariableID(3), fol.VariableID(4)
	choose := fol.Exists([]fol.VariableID{a, b}, fol.And(
		fol.Equals(fol.Var(v), fol.BinaryTerm{Op: fol.OpAdd, Left: fol.Var(a), Right: fol.Var(b)}),
		fol.Equals(fol.Var(a), fol.Var(x)),
		fol.Equals(fol.Var(b), fol.Int(1)),
	))

	and := defs.Rules[0].Formula.(fol.AndFormula)
	assert.Equal(t, choose, and.Args[1])

	for _, id := range []fol.VariableID{a, b} {
		domain, _ := c.Registry().VariableDomain(id)
		assert.Equal(t, fol.DomainInteger, domain)
	}
}

func TestChooseValueInDivisionAndModulo(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		program string
		modulo  bool
	}{
		{"p(7 / 2).", false},
		{"p(7 \\ 2).", true},
	} {
		c := translate(t, tt.program)
		p, _ := c.Registry().LookupPredicateDeclaration("p", 1)
		defs, _ := c.Definitions(p)

		z := fol.VariableID(0)
		i, j, q, r := fol.Var(1), fol.Var(2), fol.Var(3), fol.Var(4)
		result := fol.Equals(fol.Var(z), q)
		if tt.modulo {
			result = fol.Equals(fol.Var(z), r)
		}

		// The dividend is chosen for both i and j; the divisor is not used.
		expected := fol.And(fol.Exists([]fol.VariableID{1, 2, 3, 4}, fol.And(
			fol.Equals(i, fol.Add(fol.Multiply(j, q), r)),
			fol.Equals(i, fol.Int(7)),
			fol.Equals(j, fol.Int(7)),
			fol.Compare(fol.NotEqual, j, fol.Int(0)),
			fol.Compare(fol.GreaterOrEqual, r, fol.Int(0)),
			fol.Compare(fol.Less, r, q),
			result,
		)))
		assert.Equal(t, expected, defs.Rules[0].Formula, tt.program)
	}
}

func TestChooseValueInIntervalAndNegation(t *testing.T) {
	t.Parallel()

	c := translate(t, "p(1..3).\nq(-a).")
	r := c.Registry()

	p, _ := r.LookupPredicateDeclaration("p", 1)
	defs, _ := c.Definitions(p)

	z := fol.VariableID(0)
	i, j, k := fol.Var(1), fol.Var(2), fol.Var(3)
	assert.Equal(t, fol.And(fol.Exists([]fol.VariableID{1, 2, 3}, fol.And(
		fol.Equals(i, fol.Int(1)),
		fol.Equals(j, fol.Int(3)),
		fol.Compare(fol.LessOrEqual, i, k),
		fol.Compare(fol.LessOrEqual, k, j),
		fol.Equals(fol.Var(z), k),
	))), defs.Rules[0].Formula)

	q, _ := r.LookupPredicateDeclaration("q", 1)
	defs, _ = c.Definitions(q)
	a, _ := lookupFunction(r, "a")
	w, zp := fol.VariableID(4), fol.VariableID(5)
	assert.Equal(t, fol.And(fol.Exists([]fol.VariableID{zp}, fol.And(
		fol.Equals(fol.Var(w), fol.Negative(fol.Var(zp))),
		fol.Equals(fol.Var(zp), fol.Constant(a)),
	))), defs.Rules[0].Formula)
}

func TestTranslateUnsupported(t *testing.T) {
	t.Parallel()
	tests := []struct {
		program string
		message string
	}{
		{"not p(X) :- q(X).", "negated head literals"},
		{"1 {p} :- q.", "aggregates with guards"},
		{"{p; q} :- r.", "aggregates not containing exactly one element"},
		{"{not p}.", "negated literals in aggregates"},
		{"{X < 1}.", "elements other than terms in aggregates"},
		{"{X}.", "elements other than atoms in aggregates"},
		{"p; q.", "elements other than literals and aggregates in rule head"},
		{"1 < 2 :- p.", "elements other than terms in rule head"},
		{"X :- p.", "elements other than atoms in rule head"},
		{"p(|1|).", "absolute value"},
		{"p(2 ** 3).", "exponentiation"},
		{"p(f(1)).", "symbolic functions"},
		{"p(@f).", "external functions"},
		{"p(1;2).", "pools"},
		{":- #count { X : q(X) } > 1.", "only plain body literals supported"},
		{"p :- q(X) : r(X).", "only plain body literals supported"},
		{":- not #count { X : q(X) } > 1.", "signed body literals"},
		{"p :- 1.", "only functions supported as body terms"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()
			rules, err := asp.Parse(tt.program)
			require.NoError(t, err)

			err = NewContext(fol.NewRegistry(nil), nil).TranslateProgram(rules)
			require.Error(t, err)

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, errors.UnsupportedLanguageFeature, e.Kind)
			assert.Equal(t, tt.message, e.Message)
		})
	}
}

func TestTranslateNegatedBoolean(t *testing.T) {
	t.Parallel()

	rules, err := asp.Parse("p :- not #true.")
	require.NoError(t, err)

	err = NewContext(fol.NewRegistry(nil), nil).TranslateProgram(rules)
	assert.True(t, errors.IsKind(err, errors.Logic))
}

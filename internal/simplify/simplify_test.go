package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/anthem/internal/asp"
	"github.com/gnolang/anthem/internal/completion"
	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
	"github.com/gnolang/anthem/internal/translate"
)

type fixture struct {
	r    *fol.Registry
	p, q *fol.PredicateDeclaration
	a    fol.VariableID // integer
	x    fol.VariableID // program
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	r := fol.NewRegistry(nil)
	x := r.NewUserDefinedVariable("X")
	require.NoError(t, r.AssignVariableDomain(x, fol.DomainProgram))
	return fixture{
		r: r,
		p: r.FindOrCreatePredicateDeclaration("p", 1),
		q: r.FindOrCreatePredicateDeclaration("q", 0),
		a: r.NewGeneratedVariable(fol.DomainInteger),
		x: x,
	}
}

func TestSimplifyRules(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	p, q, a, x := fx.p, fx.q, fx.a, fx.x
	y := fx.r.NewGeneratedVariable(fol.DomainProgram)

	tests := []struct {
		name     string
		input    fol.Formula
		expected fol.Formula
	}{
		{
			name:     "integer assignment",
			input:    fol.Exists([]fol.VariableID{a}, fol.And(fol.Equals(fol.Var(a), fol.Int(1)), fol.Predicate(p, fol.Var(a)))),
			expected: fol.Predicate(p, fol.Int(1)),
		},
		{
			name:     "assignment on the left",
			input:    fol.Exists([]fol.VariableID{y}, fol.And(fol.Predicate(p, fol.Var(y)), fol.Equals(fol.Var(x), fol.Var(y)))),
			expected: fol.Predicate(p, fol.Var(x)),
		},
		{
			name: "narrowing assignment is kept",
			input: fol.Exists([]fol.VariableID{a}, fol.And(
				fol.Equals(fol.Var(a), fol.Var(x)),
				fol.Predicate(p, fol.Var(a)),
			)),
			expected: fol.Exists([]fol.VariableID{a}, fol.And(
				fol.Equals(fol.Var(a), fol.Var(x)),
				fol.Predicate(p, fol.Var(a)),
			)),
		},
		{
			name: "recursive assignment is kept",
			input: fol.Exists([]fol.VariableID{a}, fol.And(
				fol.Equals(fol.Var(a), fol.Add(fol.Var(a), fol.Int(1))),
				fol.Predicate(p, fol.Var(a)),
			)),
			expected: fol.Exists([]fol.VariableID{a}, fol.And(
				fol.Equals(fol.Var(a), fol.Add(fol.Var(a), fol.Int(1))),
				fol.Predicate(p, fol.Var(a)),
			)),
		},
		{
			name:     "exists without parameters",
			input:    fol.Exists(nil, fol.Predicate(q)),
			expected: fol.Predicate(q),
		},
		{
			name:     "forall without parameters",
			input:    fol.ForAll(nil, fol.Predicate(q)),
			expected: fol.Predicate(q),
		},
		{
			name:     "empty conjunction",
			input:    fol.Not(fol.And()),
			expected: fol.Not(fol.True()),
		},
		{
			name:     "empty disjunction",
			input:    fol.Implies(fol.Or(), fol.Predicate(q)),
			expected: fol.Implies(fol.False(), fol.Predicate(q)),
		},
		{
			name:     "empty equivalence",
			input:    fol.Iff(),
			expected: fol.True(),
		},
		{
			name:     "nested singletons",
			input:    fol.Or(fol.And(fol.Iff(fol.Predicate(q)))),
			expected: fol.Predicate(q),
		},
	}

	s := New(fx.r, nil)
	for _, tt := range tests {
		result, err := s.Simplify(tt.input)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.expected, result, tt.name)
	}
}

func TestSimplifyIsIdempotent(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	p, q, a, x := fx.p, fx.q, fx.a, fx.x
	s := New(fx.r, nil)

	formulas := []fol.Formula{
		fol.ForAll([]fol.VariableID{x}, fol.Iff(
			fol.Predicate(p, fol.Var(x)),
			fol.Or(fol.Exists([]fol.VariableID{a}, fol.And(
				fol.Equals(fol.Var(a), fol.Int(3)),
				fol.Compare(fol.Less, fol.Var(x), fol.Var(a)),
			))),
		)),
		fol.Not(fol.And(fol.Exists(nil, fol.And()), fol.Predicate(q))),
		fol.Implies(fol.Iff(fol.Predicate(q)), fol.Or()),
	}

	for _, f := range formulas {
		once, err := s.Simplify(f)
		require.NoError(t, err)
		twice, err := s.Simplify(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestSimplifyUnassignedDomain(t *testing.T) {
	t.Parallel()

	r := fol.NewRegistry(nil)
	u := r.NewUserDefinedVariable("U")
	q := r.FindOrCreatePredicateDeclaration("q", 1)

	_, err := New(r, nil).Simplify(fol.Exists([]fol.VariableID{u}, fol.And(
		fol.Equals(fol.Var(u), fol.Int(1)),
		fol.Predicate(q, fol.Var(u)),
	)))
	assert.True(t, errors.IsKind(err, errors.Logic))
}

func TestSimplifyCompletedDefinition(t *testing.T) {
	t.Parallel()

	rules, err := asp.Parse("p(X) :- q(X).")
	require.NoError(t, err)

	r := fol.NewRegistry(nil)
	ctx := translate.NewContext(r, nil)
	require.NoError(t, ctx.TranslateProgram(rules))

	c, err := completion.Complete(ctx, nil)
	require.NoError(t, err)

	p, _ := r.LookupPredicateDeclaration("p", 1)
	q, _ := r.LookupPredicateDeclaration("q", 1)

	d, ok := c.Definition(p)
	require.True(t, ok)
	v := d.Formula.(fol.ForAllFormula).Params[0]

	s := New(r, nil)
	simplified, err := s.Simplify(d.Formula)
	require.NoError(t, err)
	assert.Equal(t, fol.ForAll([]fol.VariableID{v}, fol.Iff(
		fol.Predicate(p, fol.Var(v)),
		fol.Predicate(q, fol.Var(v)),
	)), simplified)

	d, _ = c.Definition(q)
	simplified, err = s.Simplify(d.Formula)
	require.NoError(t, err)
	assert.Equal(t, d.Formula, simplified)
}

func TestSimplifyAll(t *testing.T) {
	t.Parallel()

	fx := newFixture(t)
	formulas := []fol.Formula{fol.And(fol.Predicate(fx.q)), fol.Or()}
	require.NoError(t, New(fx.r, nil).SimplifyAll(formulas))
	assert.Equal(t, []fol.Formula{fol.Predicate(fx.q), fol.False()}, formulas)
}

package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
	"github.com/gnolang/anthem/internal/output"
	"github.com/gnolang/anthem/internal/problem"
)

func TestParseFormulaRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"forall X (p(X) <-> q(X))", "forall X1 (p(X1) <-> q(X1))"},
		{"forall X p(X)", "forall X1 p(X1)"},
		{"exists N (N > 0 and N < 10)", "exists N1 (N1 > 0 and N1 < 10)"},
		{"exists I 0 < I <= 3", "exists N1 (0 < N1 and N1 <= 3)"},
		{"p or q and r", "p or q and r"},
		{"(p or q) and r", "(p or q) and r"},
		{"p -> q -> r", "p -> (q -> r)"},
		{"p <- q <- r", "r -> (q -> p)"},
		{"not not p", "not not p"},
		{"true and #false", "#true and #false"},
		{"forall X Y (X = Y + 1 - 2 * 3)", "forall X1 X2 (X1 = X2 + 1 - 2 * 3)"},
		{"forall N (N \\ 2 = 0 or N / 2 != -1)", "forall N1 (N1 \\ 2 = 0 or N1 / 2 != -1)"},
		{"forall X (a < X or X = |b| or \"s\" != X)", "forall X1 (a < X1 or X1 = |b| or \"s\" != X1)"},
		{"forall X (X >= #inf and #sup > X)", "forall X1 (X1 >= #inf and #sup > X1)"},
		{"forall X (f(X, 1) = X and (X + 1) > 3)", "forall X1 (f(X1, 1) = X1 and X1 + 1 > 3)"},
		{"exists X (exists X p(X))", "exists X1 exists X2 p(X2)"},
		{"exists N (N > 0)", "exists N1 (N1 > 0)"},
		{"forall X exists Y (X != Y)", "forall X1 exists X2 (X1 != X2)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			r := fol.NewRegistry(nil)
			f, err := ParseFormula(tt.input, r)
			require.NoError(t, err)
			out, err := output.HumanReadable(r, f)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)

			// printed formulas parse back to the same text
			reparsed, err := ParseFormula(out, r)
			require.NoError(t, err, out)
			again, err := output.HumanReadable(r, reparsed)
			require.NoError(t, err)
			assert.Equal(t, out, again)
		})
	}
}

func TestParseFormulaStructure(t *testing.T) {
	t.Parallel()

	r := fol.NewRegistry(nil)
	f, err := ParseFormula("forall X (p(X) -> exists N q(X, N))", r)
	require.NoError(t, err)

	p, ok := r.LookupPredicateDeclaration("p", 1)
	require.True(t, ok)
	q, ok := r.LookupPredicateDeclaration("q", 2)
	require.True(t, ok)

	forall := f.(fol.ForAllFormula)
	implies := forall.Arg.(fol.ImpliesFormula)
	exists := implies.Implication.(fol.ExistsFormula)
	x, n := forall.Params[0], exists.Params[0]

	assert.Equal(t, fol.ForAll([]fol.VariableID{x}, fol.Implies(
		fol.Predicate(p, fol.Var(x)),
		fol.Exists([]fol.VariableID{n}, fol.Predicate(q, fol.Var(x), fol.Var(n))),
	)), f)

	domain, _ := r.VariableDomain(n)
	assert.Equal(t, fol.DomainInteger, domain)
	assert.Empty(t, r.FunctionDeclarations())
}

func TestParseFormulaErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		kind  errors.Kind
	}{
		{"p(X)", errors.FormulaNotClosed},
		{"forall A p(A)", errors.VariableNameNotAllowed},
		{"forall X (p(X)", errors.ParseFormula},
		{"forall p", errors.ParseFormula},
		{"X +", errors.ParseFormula},
		{"forall X X", errors.ParseFormula},
		{"p q", errors.ParseFormula},
		{"forall X X X p(X)", errors.ParseFormula},
		{"p(3000000000)", errors.ParseFormula},
		{"p(\"open)", errors.ParseFormula},
	}

	for _, tt := range tests {
		_, err := ParseFormula(tt.input, fol.NewRegistry(nil))
		assert.True(t, errors.IsKind(err, tt.kind), "%s: %v", tt.input, err)
	}

	_, err := ParseFormula("p(X, N) and q(Y, X)", fol.NewRegistry(nil))
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, []string{"X", "N", "Y"}, e.FreeVariables)
}

const specification = `
% declarations
input: p/1, n -> integer, c, d -> program.
output: q/1.

axiom: n > 0.
assume: forall X (p(X) -> X != c).
lemma: forall X (q(X) -> p(X)).
lemma(forward): exists X q(X).
lemma(backward): #true.
lemma(): #true.
assert: forall X (q(X) <-> p(X)).
spec: not q(c).
`

func TestParse(t *testing.T) {
	t.Parallel()

	r := fol.NewRegistry(nil)
	s, err := Parse(specification, r)
	require.NoError(t, err)

	kinds := make([]problem.StatementKind, len(s.Statements))
	directions := make([]problem.ProofDirection, len(s.Statements))
	for i, st := range s.Statements {
		kinds[i] = st.Kind
		directions[i] = st.Direction
	}
	assert.Equal(t, []problem.StatementKind{
		problem.KindAxiom, problem.KindAssumption,
		problem.KindLemma, problem.KindLemma, problem.KindLemma, problem.KindLemma,
		problem.KindAssertion, problem.KindAssertion,
	}, kinds)
	assert.Equal(t, problem.Forward, directions[3])
	assert.Equal(t, problem.Backward, directions[4])
	assert.Equal(t, problem.Both, directions[5])
	assert.Equal(t, 6, s.Statements[0].Line)
	assert.Equal(t, problem.Assumptions, s.Statements[1].Section())
	assert.Len(t, s.Formulas(problem.KindLemma, problem.KindAssertion), 6)

	p, _ := r.LookupPredicateDeclaration("p", 1)
	assert.True(t, p.IsInput)
	q, _ := r.LookupPredicateDeclaration("q", 1)
	assert.True(t, q.IsOutput)

	functions := r.FunctionDeclarations()
	require.Len(t, functions, 3)
	assert.Equal(t, "c", functions[0].Name)
	assert.True(t, functions[0].IsInput)
	assert.Equal(t, fol.DomainProgram, functions[0].Domain)
	assert.Equal(t, "d", functions[1].Name)
	assert.Equal(t, "n", functions[2].Name)
	assert.Equal(t, fol.DomainInteger, functions[2].Domain)

	arithmetic, err := r.IsTermArithmetic(fol.Constant(functions[2]))
	require.NoError(t, err)
	assert.True(t, arithmetic)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		kind   errors.Kind
		line   int
		column int
	}{
		{"42.", errors.ExpectedStatement, 1, 1},
		{"theorem: p.", errors.UnknownStatement, 1, 1},
		{"axiom p.", errors.ExpectedColon, 1, 7},
		{"axiom: p", errors.MissingStatementTerminator, 1, 9},
		{"lemma(sideways): p.", errors.UnknownProofDirection, 1, 7},
		{"lemma(forward: p.", errors.UnmatchedParenthesis, 1, 14},
		{"input: 3.", errors.ExpectedIdentifier, 1, 8},
		{"input: n -> real.", errors.UnknownDomainIdentifier, 1, 13},
		{"input: p/x.", errors.ExpectedPredicateSpecifier, 1, 10},
		{"output: c.", errors.ExpectedPredicateSpecifier, 1, 10},
		{"\naxiom: p(.", errors.ParseFormula, 2, 10},
	}

	for _, tt := range tests {
		_, err := Parse(tt.input, fol.NewRegistry(nil))
		var e *errors.Error
		require.ErrorAs(t, err, &e, tt.input)
		assert.Equal(t, tt.kind, e.Kind, tt.input)
		assert.Equal(t, tt.line, e.Line, tt.input)
		assert.Equal(t, tt.column, e.Column, tt.input)
	}
}

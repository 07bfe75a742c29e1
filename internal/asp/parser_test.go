package asp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/anthem/internal/errors"
)

func TestParseRules(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"fact", "p(1).", "p(1)."},
		{"propositional fact", "a.", "a."},
		{"rule", "p(X) :- q(X), not r(X).", "p(X) :- q(X), not r(X)."},
		{"double negation", "p :- not not q.", "p :- not not q."},
		{"integrity constraint", ":- p, q.", "#false :- p, q."},
		{"boolean head", "#true :- p.", "#true :- p."},
		{"comparison", "p(X) :- X < 3, q(X).", "p(X) :- X < 3, q(X)."},
		{"arithmetic", "p(X + 2 * Y) :- q(X, Y).", "p((X + (2 * Y))) :- q(X, Y)."},
		{"modulo and division", "p(X \\ 2, X / 3) :- q(X).", "p((X \\ 2), (X / 3)) :- q(X)."},
		{"interval", "p(1..N) :- n(N).", "p(1..N) :- n(N)."},
		{"negative literal folded", "p(-1).", "p(-1)."},
		{"unary minus", "p(-X) :- q(X).", "p(-X) :- q(X)."},
		{"choice", "{p(X)} :- q(X).", "{p(X)} :- q(X)."},
		{"guarded choice", "1 {p; q} 2.", "1 <= {p; q} <= 2."},
		{"disjunction", "p; q :- r.", "p; q :- r."},
		{"absolute value", "p(|X|) :- q(X).", "p(|X|) :- q(X)."},
		{"power", "p(2 ** X) :- q(X).", "p((2 ** X)) :- q(X)."},
		{"pool", "p(1;2).", "p((1; 2))."},
		{"external", "p(@f(1)).", "p(@f(1))."},
		{"string and specials", "p(\"a\", #inf, #sup).", "p(\"a\", #inf, #sup)."},
		{"aggregate body", ":- #count { X : p(X) } > 2.", "#false :- #count {  }."},
		{"conditional body literal", "p :- q(X) : r(X).", "p :- q(X) : r(X)."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rules, err := Parse(tt.input)
			require.NoError(t, err)
			require.Len(t, rules, 1)
			assert.Equal(t, tt.expected, rules[0].String())
		})
	}
}

func TestParseStructure(t *testing.T) {
	t.Parallel()

	rules, err := Parse("q(1).\n% comment\np(X) :- q(X), X != 2.\n")
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, 1, rules[0].Line)
	assert.Equal(t, 3, rules[1].Line)

	head, ok := rules[1].Head.(LiteralHead)
	require.True(t, ok)
	atom, ok := head.Literal.Atom.(SymbolicAtom)
	require.True(t, ok)
	assert.Equal(t, Function{Name: "p", Args: []Term{Variable{Name: "X"}}}, atom.Term)

	require.Len(t, rules[1].Body, 2)
	comparison, ok := rules[1].Body[1].Element.(Literal)
	require.True(t, ok)
	assert.Equal(t, ComparisonAtom{Op: NotEqual, Left: Variable{Name: "X"}, Right: Number{Value: 2}}, comparison.Atom)
}

func TestParseNegatedAggregate(t *testing.T) {
	t.Parallel()

	rules, err := Parse(":- not #sum { X : p(X) } < 2.")
	require.NoError(t, err)
	require.Len(t, rules[0].Body, 1)
	assert.Equal(t, SignNegation, rules[0].Body[0].Sign)
	assert.Equal(t, BodyAggregate{Function: "sum"}, rules[0].Body[0].Element)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"missing period", "p(X) :- q(X)", 1, 13},
		{"unclosed parenthesis", "p(X :- q.", 1, 5},
		{"directive", "#show p/1.", 1, 1},
		{"lexer error", "p :- $.", 1, 6},
		{"second line", "p.\nq(.", 2, 3},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.ParseProgram))

			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.line, e.Line)
			assert.Equal(t, tt.column, e.Column)
		})
	}
}

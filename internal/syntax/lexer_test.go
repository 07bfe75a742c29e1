package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "rule",
			input: "p(X) :- not q(X, 1..3).",
			expected: []Token{
				{Type: TokenIdentifier, Value: "p", Line: 1, Col: 1},
				{Type: TokenSymbol, Value: "(", Line: 1, Col: 2},
				{Type: TokenVariable, Value: "X", Line: 1, Col: 3},
				{Type: TokenSymbol, Value: ")", Line: 1, Col: 4},
				{Type: TokenSymbol, Value: ":-", Line: 1, Col: 6},
				{Type: TokenIdentifier, Value: "not", Line: 1, Col: 9},
				{Type: TokenIdentifier, Value: "q", Line: 1, Col: 13},
				{Type: TokenSymbol, Value: "(", Line: 1, Col: 14},
				{Type: TokenVariable, Value: "X", Line: 1, Col: 15},
				{Type: TokenSymbol, Value: ",", Line: 1, Col: 16},
				{Type: TokenNumber, Value: "1", Line: 1, Col: 18},
				{Type: TokenSymbol, Value: "..", Line: 1, Col: 19},
				{Type: TokenNumber, Value: "3", Line: 1, Col: 21},
				{Type: TokenSymbol, Value: ")", Line: 1, Col: 22},
				{Type: TokenSymbol, Value: ".", Line: 1, Col: 23},
				{Type: TokenEOF, Value: "", Line: 1, Col: 24},
			},
		},
		{
			name:  "comments and directives",
			input: "% a comment\n#true %* block\ncomment *% <-> \"s\\\"t\"",
			expected: []Token{
				{Type: TokenDirective, Value: "true", Line: 2, Col: 1},
				{Type: TokenSymbol, Value: "<->", Line: 3, Col: 12},
				{Type: TokenString, Value: "s\"t", Line: 3, Col: 16},
				{Type: TokenEOF, Value: "", Line: 3, Col: 22},
			},
		},
		{
			name:  "anonymous variable and primes",
			input: "_ X' _N",
			expected: []Token{
				{Type: TokenVariable, Value: "_", Line: 1, Col: 1},
				{Type: TokenVariable, Value: "X'", Line: 1, Col: 3},
				{Type: TokenVariable, Value: "_N", Line: 1, Col: 6},
				{Type: TokenEOF, Value: "", Line: 1, Col: 8},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tokens, err := Lex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"\"open", "%* never closed", "p $ q", "# x"} {
		_, err := Lex(input)
		var lexErr *LexError
		assert.ErrorAs(t, err, &lexErr, input)
	}
}

func TestStream(t *testing.T) {
	t.Parallel()

	tokens, err := Lex("a , b")
	require.NoError(t, err)

	s := NewStream(tokens)
	mark := s.Mark()
	assert.Equal(t, "a", s.Next().Value)
	assert.True(t, s.Accept(","))
	assert.False(t, s.Accept(","))
	assert.Equal(t, "b", s.PeekAt(0).Value)
	s.Reset(mark)
	assert.Equal(t, "a", s.Peek().Value)
	s.Next()
	s.Next()
	s.Next()
	assert.True(t, s.AtEOF())
	s.Next()
	assert.True(t, s.AtEOF())
}

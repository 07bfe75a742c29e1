package syntax

import (
	"fmt"
	"strings"
)

// TokenType defines the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	// TokenIdentifier starts with a lowercase letter: constants, predicates, keywords.
	TokenIdentifier
	// TokenVariable starts with an uppercase letter or '_'.
	TokenVariable
	TokenNumber
	TokenString
	// TokenDirective is '#' followed by an identifier, as in #true or #count.
	TokenDirective
	TokenSymbol
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenIdentifier:
		return "Identifier"
	case TokenVariable:
		return "Variable"
	case TokenNumber:
		return "Number"
	case TokenString:
		return "String"
	case TokenDirective:
		return "Directive"
	case TokenSymbol:
		return "Symbol"
	default:
		return "Unknown"
	}
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("“%s”", t.Value)
}

// Is reports whether t is the symbol or identifier value.
func (t Token) Is(value string) bool {
	return (t.Type == TokenSymbol || t.Type == TokenIdentifier) && t.Value == value
}

// LexError is returned for input that cannot be tokenized.
type LexError struct {
	Message string
	Line    int
	Col     int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Message)
}

// symbols ordered so that longer spellings are tried first.
var symbols = []string{
	"<->", ":-", "->", "<-", "..", "<=", ">=", "!=", "<>", "==", "**",
	"(", ")", "{", "}", "[", "]", ",", ";", ".", ":", "/", "<", ">", "=",
	"+", "-", "*", "\\", "|", "@", "&", "^", "?", "~",
}

// Lex performs lexical analysis on the input string and returns a sequence
// of tokens terminated by TokenEOF. `%` starts a line comment and `%*`
// starts a block comment closed by `*%`.
func Lex(input string) ([]Token, error) {
	var tokens []Token

	line, col := 1, 1
	i := 0

	advance := func(n int) {
		for k := 0; k < n && i < len(input); k++ {
			if input[i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			i++
		}
	}

	for i < len(input) {
		c := input[i]

		if isWhitespace(c) {
			advance(1)
			continue
		}

		if c == '%' {
			if strings.HasPrefix(input[i:], "%*") {
				startLine, startCol := line, col
				end := strings.Index(input[i+2:], "*%")
				if end < 0 {
					return nil, &LexError{Message: "block comment is not terminated", Line: startLine, Col: startCol}
				}
				advance(end + 4)
				continue
			}
			for i < len(input) && input[i] != '\n' {
				advance(1)
			}
			continue
		}

		startLine, startCol := line, col
		emit := func(tt TokenType, value string) {
			tokens = append(tokens, Token{Type: tt, Value: value, Line: startLine, Col: startCol})
		}

		switch {
		case isDigit(c):
			start := i
			for i < len(input) && isDigit(input[i]) {
				advance(1)
			}
			emit(TokenNumber, input[start:i])

		case isLower(c):
			start := i
			for i < len(input) && isIdentifierChar(input[i]) {
				advance(1)
			}
			emit(TokenIdentifier, input[start:i])

		case isUpper(c) || c == '_':
			start := i
			for i < len(input) && isIdentifierChar(input[i]) {
				advance(1)
			}
			emit(TokenVariable, input[start:i])

		case c == '#':
			advance(1)
			start := i
			for i < len(input) && isIdentifierChar(input[i]) {
				advance(1)
			}
			if i == start {
				return nil, &LexError{Message: "expected directive name after '#'", Line: startLine, Col: startCol}
			}
			emit(TokenDirective, input[start:i])

		case c == '"':
			advance(1)
			var value strings.Builder
			closed := false
			for i < len(input) {
				ch := input[i]
				if ch == '\\' && i+1 < len(input) {
					switch input[i+1] {
					case 'n':
						value.WriteByte('\n')
					case 't':
						value.WriteByte('\t')
					default:
						value.WriteByte(input[i+1])
					}
					advance(2)
					continue
				}
				if ch == '"' {
					advance(1)
					closed = true
					break
				}
				if ch == '\n' {
					break
				}
				value.WriteByte(ch)
				advance(1)
			}
			if !closed {
				return nil, &LexError{Message: "string literal is not terminated", Line: startLine, Col: startCol}
			}
			emit(TokenString, value.String())

		default:
			matched := ""
			for _, s := range symbols {
				if strings.HasPrefix(input[i:], s) {
					matched = s
					break
				}
			}
			if matched == "" {
				return nil, &LexError{Message: fmt.Sprintf("unexpected character %q", c), Line: startLine, Col: startCol}
			}
			advance(len(matched))
			emit(TokenSymbol, matched)
		}
	}

	tokens = append(tokens, Token{Type: TokenEOF, Line: line, Col: col})
	return tokens, nil
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLower(c byte) bool {
	return 'a' <= c && c <= 'z'
}

func isUpper(c byte) bool {
	return 'A' <= c && c <= 'Z'
}

func isIdentifierChar(c byte) bool {
	return isLower(c) || isUpper(c) || isDigit(c) || c == '_' || c == '\''
}

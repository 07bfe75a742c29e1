package syntax

// Stream is a cursor over a token slice for recursive-descent parsers.
type Stream struct {
	tokens []Token
	pos    int
}

func NewStream(tokens []Token) *Stream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		tokens = append(tokens, Token{Type: TokenEOF})
	}
	return &Stream{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (s *Stream) Peek() Token {
	return s.tokens[s.pos]
}

// PeekAt returns the token n positions ahead of the current one.
func (s *Stream) PeekAt(n int) Token {
	if s.pos+n >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.pos+n]
}

// Next consumes and returns the current token. EOF is never consumed.
func (s *Stream) Next() Token {
	t := s.tokens[s.pos]
	if t.Type != TokenEOF {
		s.pos++
	}
	return t
}

// Accept consumes the current token if it is the symbol or identifier value.
func (s *Stream) Accept(value string) bool {
	if s.Peek().Is(value) {
		s.pos++
		return true
	}
	return false
}

func (s *Stream) AtEOF() bool {
	return s.Peek().Type == TokenEOF
}

// Mark returns the current position for a later Reset.
func (s *Stream) Mark() int {
	return s.pos
}

func (s *Stream) Reset(mark int) {
	s.pos = mark
}

package asp

import (
	goerrors "errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/syntax"
)

// Parse reads a logic program and returns its rules in source order.
func Parse(input string) ([]Rule, error) {
	tokens, err := syntax.Lex(input)
	if err != nil {
		var lexErr *syntax.LexError
		if goerrors.As(err, &lexErr) {
			return nil, errors.NewParseProgram(lexErr.Message).At(lexErr.Line, lexErr.Col)
		}
		return nil, errors.NewParseProgram(err.Error())
	}

	p := &parser{s: syntax.NewStream(tokens)}

	var rules []Rule
	for !p.s.AtEOF() {
		rule, err := p.rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

type parser struct {
	s *syntax.Stream
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.s.Peek()
	return errors.NewParseProgram(fmt.Sprintf(format, args...)).At(t.Line, t.Col)
}

func (p *parser) expect(value string) error {
	if !p.s.Accept(value) {
		return p.errorf("expected “%s”, found %s", value, p.s.Peek())
	}
	return nil
}

func (p *parser) rule() (Rule, error) {
	line := p.s.Peek().Line

	if t := p.s.Peek(); t.Type == syntax.TokenDirective && !isLiteralDirective(t.Value) {
		return Rule{}, p.errorf("directive #%s is not supported", t.Value)
	}

	var head Head
	if p.s.Accept(":-") {
		head = LiteralHead{Literal: Literal{Atom: BooleanAtom{Value: false}}}
		body, err := p.body()
		if err != nil {
			return Rule{}, err
		}
		if err := p.expect("."); err != nil {
			return Rule{}, err
		}
		return Rule{Head: head, Body: body, Line: line}, nil
	}

	head, err := p.head()
	if err != nil {
		return Rule{}, err
	}

	var body []BodyLiteral
	if p.s.Accept(":-") {
		body, err = p.body()
		if err != nil {
			return Rule{}, err
		}
	}

	if err := p.expect("."); err != nil {
		return Rule{}, err
	}
	return Rule{Head: head, Body: body, Line: line}, nil
}

func isLiteralDirective(name string) bool {
	switch name {
	case "true", "false", "inf", "sup", "infimum", "supremum":
		return true
	default:
		return false
	}
}

func (p *parser) head() (Head, error) {
	if p.s.Peek().Is("{") {
		return p.aggregateHead(nil)
	}

	// A left guard is a term, optionally followed by a comparison, before '{'.
	mark := p.s.Mark()
	if guard, ok := p.tryLeftGuard(); ok {
		return p.aggregateHead(guard)
	}
	p.s.Reset(mark)

	first, err := p.conditionalLiteral()
	if err != nil {
		return nil, err
	}

	if !p.s.Peek().Is(";") && !p.s.Peek().Is("|") {
		if len(first.Condition) > 0 {
			return DisjunctionHead{Elements: []ConditionalLiteral{first}}, nil
		}
		return LiteralHead{Literal: first.Literal}, nil
	}

	elements := []ConditionalLiteral{first}
	for p.s.Accept(";") || p.s.Accept("|") {
		next, err := p.conditionalLiteral()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	return DisjunctionHead{Elements: elements}, nil
}

func (p *parser) tryLeftGuard() (*Guard, bool) {
	term, err := p.term()
	if err != nil {
		return nil, false
	}
	if p.s.Peek().Is("{") {
		return &Guard{Op: LessOrEqual, Term: term}, true
	}
	op, ok := comparisonOperator(p.s.Peek())
	if !ok {
		return nil, false
	}
	p.s.Next()
	if !p.s.Peek().Is("{") {
		return nil, false
	}
	return &Guard{Op: op, Term: term}, true
}

func (p *parser) aggregateHead(left *Guard) (Head, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}

	var elements []ConditionalLiteral
	if !p.s.Peek().Is("}") {
		for {
			element, err := p.conditionalLiteral()
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
			if !p.s.Accept(";") {
				break
			}
		}
	}

	if err := p.expect("}"); err != nil {
		return nil, err
	}

	head := AggregateHead{LeftGuard: left, Elements: elements}

	if op, ok := comparisonOperator(p.s.Peek()); ok {
		p.s.Next()
		term, err := p.term()
		if err != nil {
			return nil, err
		}
		head.RightGuard = &Guard{Op: op, Term: term}
	} else if t := p.s.Peek(); t.Type == syntax.TokenNumber || t.Type == syntax.TokenVariable {
		term, err := p.term()
		if err != nil {
			return nil, err
		}
		head.RightGuard = &Guard{Op: LessOrEqual, Term: term}
	}

	return head, nil
}

func (p *parser) conditionalLiteral() (ConditionalLiteral, error) {
	literal, err := p.literal()
	if err != nil {
		return ConditionalLiteral{}, err
	}

	result := ConditionalLiteral{Literal: literal}
	if !p.s.Accept(":") {
		return result, nil
	}

	for {
		condition, err := p.literal()
		if err != nil {
			return ConditionalLiteral{}, err
		}
		result.Condition = append(result.Condition, condition)
		if !p.s.Peek().Is(",") {
			break
		}
		p.s.Next()
	}
	return result, nil
}

func (p *parser) sign() Sign {
	if !p.s.Accept("not") {
		return SignNone
	}
	if p.s.Accept("not") {
		return SignDoubleNegation
	}
	return SignNegation
}

func (p *parser) literal() (Literal, error) {
	sign := p.sign()
	atom, err := p.atom()
	if err != nil {
		return Literal{}, err
	}
	return Literal{Sign: sign, Atom: atom}, nil
}

func (p *parser) atom() (Atom, error) {
	if t := p.s.Peek(); t.Type == syntax.TokenDirective {
		switch t.Value {
		case "true":
			p.s.Next()
			return BooleanAtom{Value: true}, nil
		case "false":
			p.s.Next()
			return BooleanAtom{Value: false}, nil
		}
	}

	left, err := p.term()
	if err != nil {
		return nil, err
	}

	if op, ok := comparisonOperator(p.s.Peek()); ok {
		p.s.Next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		return ComparisonAtom{Op: op, Left: left, Right: right}, nil
	}

	return SymbolicAtom{Term: left}, nil
}

func (p *parser) body() ([]BodyLiteral, error) {
	var body []BodyLiteral
	for {
		literal, err := p.bodyLiteral()
		if err != nil {
			return nil, err
		}
		body = append(body, literal)
		if !p.s.Accept(",") && !p.s.Accept(";") {
			return body, nil
		}
	}
}

func (p *parser) bodyLiteral() (BodyLiteral, error) {
	t := p.s.Peek()
	if (t.Type == syntax.TokenDirective && !isLiteralDirective(t.Value)) ||
		(t.Is("not") && p.s.PeekAt(1).Type == syntax.TokenDirective && !isLiteralDirective(p.s.PeekAt(1).Value)) {
		sign := p.sign()
		aggregate, err := p.bodyAggregate()
		if err != nil {
			return BodyLiteral{}, err
		}
		return BodyLiteral{Sign: sign, Element: aggregate}, nil
	}

	literal, err := p.literal()
	if err != nil {
		return BodyLiteral{}, err
	}

	if !p.s.Accept(":") {
		return BodyLiteral{Element: literal}, nil
	}

	// The condition of a body conditional literal extends over ',' up to
	// the next ';' or '.'.
	element := ConditionalLiteral{Literal: literal}
	for {
		condition, err := p.literal()
		if err != nil {
			return BodyLiteral{}, err
		}
		element.Condition = append(element.Condition, condition)
		if !p.s.Accept(",") {
			break
		}
	}
	return BodyLiteral{Element: element}, nil
}

// bodyAggregate reads `#function { ... } [op term]`. Aggregate elements are
// skipped since aggregates in rule bodies are never translated.
func (p *parser) bodyAggregate() (BodyAggregate, error) {
	function := p.s.Next().Value

	if err := p.expect("{"); err != nil {
		return BodyAggregate{}, err
	}
	for depth := 1; depth > 0; {
		t := p.s.Next()
		switch {
		case t.Type == syntax.TokenEOF:
			return BodyAggregate{}, p.errorf("aggregate is not closed")
		case t.Is("{"):
			depth++
		case t.Is("}"):
			depth--
		}
	}

	if _, ok := comparisonOperator(p.s.Peek()); ok {
		p.s.Next()
		if _, err := p.term(); err != nil {
			return BodyAggregate{}, err
		}
	}

	return BodyAggregate{Function: function}, nil
}

func comparisonOperator(t syntax.Token) (ComparisonOperator, bool) {
	if t.Type != syntax.TokenSymbol {
		return 0, false
	}
	switch t.Value {
	case "<":
		return Less, true
	case "<=":
		return LessOrEqual, true
	case ">":
		return Greater, true
	case ">=":
		return GreaterOrEqual, true
	case "=", "==":
		return Equal, true
	case "!=", "<>":
		return NotEqual, true
	default:
		return 0, false
	}
}

func (p *parser) term() (Term, error) {
	from, err := p.additive()
	if err != nil {
		return nil, err
	}
	if !p.s.Accept("..") {
		return from, nil
	}
	to, err := p.additive()
	if err != nil {
		return nil, err
	}
	return Interval{From: from, To: to}, nil
}

func (p *parser) additive() (Term, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOperator
		switch t := p.s.Peek(); {
		case t.Is("+"):
			op = OpAdd
		case t.Is("-"):
			op = OpSubtract
		case t.Is("&"):
			op = OpBitAnd
		case t.Is("?"):
			op = OpBitOr
		case t.Is("^"):
			op = OpBitXor
		default:
			return left, nil
		}
		p.s.Next()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = BinaryOperation{Op: op, Left: left, Right: right}
	}
}

func (p *parser) multiplicative() (Term, error) {
	left, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOperator
		switch t := p.s.Peek(); {
		case t.Is("*"):
			op = OpMultiply
		case t.Is("/"):
			op = OpDivide
		case t.Is("\\"):
			op = OpModulo
		default:
			return left, nil
		}
		p.s.Next()
		right, err := p.power()
		if err != nil {
			return nil, err
		}
		left = BinaryOperation{Op: op, Left: left, Right: right}
	}
}

func (p *parser) power() (Term, error) {
	base, err := p.unary()
	if err != nil {
		return nil, err
	}
	if !p.s.Accept("**") {
		return base, nil
	}
	exponent, err := p.power()
	if err != nil {
		return nil, err
	}
	return BinaryOperation{Op: OpPower, Left: base, Right: exponent}, nil
}

func (p *parser) unary() (Term, error) {
	switch {
	case p.s.Accept("-"):
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		if n, ok := arg.(Number); ok {
			return Number{Value: -n.Value}, nil
		}
		return UnaryOperation{Op: OpMinus, Arg: arg}, nil
	case p.s.Accept("~"):
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		return UnaryOperation{Op: OpBitNegation, Arg: arg}, nil
	default:
		return p.primary()
	}
}

func (p *parser) primary() (Term, error) {
	t := p.s.Peek()

	switch t.Type {
	case syntax.TokenNumber:
		p.s.Next()
		value, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil || value > math.MaxInt32 {
			return nil, errors.NewParseProgram(fmt.Sprintf("integer %s out of range", t.Value)).At(t.Line, t.Col)
		}
		return Number{Value: int32(value)}, nil

	case syntax.TokenString:
		p.s.Next()
		return String{Value: t.Value}, nil

	case syntax.TokenVariable:
		p.s.Next()
		return Variable{Name: t.Value}, nil

	case syntax.TokenDirective:
		switch t.Value {
		case "inf", "infimum":
			p.s.Next()
			return Infimum{}, nil
		case "sup", "supremum":
			p.s.Next()
			return Supremum{}, nil
		}
		return nil, p.errorf("unexpected %s", t)

	case syntax.TokenIdentifier:
		if t.Value == "not" {
			return nil, p.errorf("unexpected “not”")
		}
		p.s.Next()
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		return Function{Name: t.Value, Args: args}, nil
	}

	switch {
	case p.s.Accept("@"):
		name := p.s.Peek()
		if name.Type != syntax.TokenIdentifier {
			return nil, p.errorf("expected function name after “@”")
		}
		p.s.Next()
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		return Function{Name: name.Value, Args: args, External: true}, nil

	case p.s.Accept("|"):
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		if err := p.expect("|"); err != nil {
			return nil, err
		}
		return UnaryOperation{Op: OpAbsolute, Arg: arg}, nil

	case p.s.Accept("("):
		alternatives, err := p.pool()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		if len(alternatives) == 1 {
			return alternatives[0], nil
		}
		return Pool{Args: alternatives}, nil
	}

	return nil, p.errorf("expected term, found %s", t)
}

// arguments parses an optional parenthesized argument list. A ';' inside
// the list makes the call a pool of alternative argument tuples.
func (p *parser) arguments() ([]Term, error) {
	if !p.s.Accept("(") {
		return nil, nil
	}
	if p.s.Accept(")") {
		return nil, nil
	}

	args, err := p.pool()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if len(args) > 1 {
		return []Term{Pool{Args: args}}, nil
	}
	if tuple, ok := args[0].(Function); ok && tuple.Name == "" {
		return tuple.Args, nil
	}
	return args, nil
}

// pool parses `t1, ..., tn ; ... ; s1, ..., sm`. Each comma-separated group
// with more than one element becomes an anonymous tuple.
func (p *parser) pool() ([]Term, error) {
	var alternatives []Term
	for {
		var group []Term
		for {
			term, err := p.term()
			if err != nil {
				return nil, err
			}
			group = append(group, term)
			if !p.s.Accept(",") {
				break
			}
		}
		if len(group) == 1 {
			alternatives = append(alternatives, group[0])
		} else {
			alternatives = append(alternatives, Function{Args: group})
		}
		if !p.s.Accept(";") {
			return alternatives, nil
		}
	}
}

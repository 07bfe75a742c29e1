package spec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
	"github.com/gnolang/anthem/internal/syntax"
)

// ParseFormula parses a single closed formula, optionally followed by '.'.
func ParseFormula(input string, r *fol.Registry) (fol.Formula, error) {
	s, err := stream(input)
	if err != nil {
		return nil, err
	}

	p := &parser{s: s, registry: r}
	f, err := p.closedFormula()
	if err != nil {
		return nil, err
	}
	p.s.Accept(".")
	if !p.s.AtEOF() {
		return nil, p.errorf("unexpected %s after formula", p.s.Peek())
	}
	return f, nil
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.s.Peek()
	return errors.NewParseFormula(fmt.Sprintf(format, args...)).At(t.Line, t.Col)
}

func (p *parser) expect(value string) error {
	if !p.s.Accept(value) {
		return p.errorf("expected “%s”, found %s", value, p.s.Peek())
	}
	return nil
}

// closedFormula parses a formula and fails with FormulaNotClosed if it
// mentions variables that no quantifier binds.
func (p *parser) closedFormula() (fol.Formula, error) {
	p.scopes = nil
	p.free = make(map[string]fol.VariableID)
	p.freeList = nil

	f, err := p.iff()
	if err != nil {
		return nil, err
	}
	if len(p.freeList) > 0 {
		return nil, errors.NewFormulaNotClosed(p.freeList)
	}
	return f, nil
}

func (p *parser) iff() (fol.Formula, error) {
	f, err := p.implies()
	if err != nil {
		return nil, err
	}
	if !p.s.Peek().Is("<->") {
		return f, nil
	}

	args := []fol.Formula{f}
	for p.s.Accept("<->") {
		next, err := p.implies()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return fol.Iff(args...), nil
}

// implies handles "->", which associates to the right, and "<-", which
// associates to the left.
func (p *parser) implies() (fol.Formula, error) {
	f, err := p.or()
	if err != nil {
		return nil, err
	}

	if p.s.Accept("->") {
		implication, err := p.implies()
		if err != nil {
			return nil, err
		}
		return fol.Implies(f, implication), nil
	}

	for p.s.Accept("<-") {
		antecedent, err := p.or()
		if err != nil {
			return nil, err
		}
		f = fol.Implies(antecedent, f)
	}
	return f, nil
}

func (p *parser) or() (fol.Formula, error) {
	f, err := p.and()
	if err != nil {
		return nil, err
	}
	if !p.s.Peek().Is("or") {
		return f, nil
	}

	args := []fol.Formula{f}
	for p.s.Accept("or") {
		next, err := p.and()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return fol.Or(args...), nil
}

func (p *parser) and() (fol.Formula, error) {
	f, err := p.unary()
	if err != nil {
		return nil, err
	}
	if !p.s.Peek().Is("and") {
		return f, nil
	}

	args := []fol.Formula{f}
	for p.s.Accept("and") {
		next, err := p.unary()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return fol.And(args...), nil
}

func (p *parser) unary() (fol.Formula, error) {
	switch {
	case p.s.Accept("not"):
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		return fol.Not(arg), nil
	case p.s.Peek().Is("forall"), p.s.Peek().Is("exists"):
		return p.quantified()
	default:
		return p.primary()
	}
}

func (p *parser) quantified() (fol.Formula, error) {
	keyword := p.s.Next().Value

	scope := make(map[string]fol.VariableID)
	var params []fol.VariableID
	for p.s.Peek().Type == syntax.TokenVariable {
		t := p.s.Next()
		if _, ok := scope[t.Value]; ok {
			return nil, errors.NewParseFormula(fmt.Sprintf("variable %s is bound twice", t.Value)).At(t.Line, t.Col)
		}
		v, err := p.newVariable(t.Value)
		if err != nil {
			return nil, err
		}
		scope[t.Value] = v
		params = append(params, v)
	}
	if len(params) == 0 {
		return nil, p.errorf("expected variable after “%s”, found %s", keyword, p.s.Peek())
	}

	p.scopes = append(p.scopes, scope)
	arg, err := p.unary()
	p.scopes = p.scopes[:len(p.scopes)-1]
	if err != nil {
		return nil, err
	}

	if keyword == "forall" {
		return fol.ForAll(params, arg), nil
	}
	return fol.Exists(params, arg), nil
}

func (p *parser) newVariable(name string) (fol.VariableID, error) {
	domain, err := fol.DomainForVariableName(name)
	if err != nil {
		return 0, err
	}
	v := p.registry.NewUserDefinedVariable(name)
	if err := p.registry.AssignVariableDomain(v, domain); err != nil {
		return 0, err
	}
	return v, nil
}

// variable resolves name against the innermost binding quantifier. Unbound
// names are recorded as free variables.
func (p *parser) variable(name string) (fol.VariableID, error) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if v, ok := p.scopes[i][name]; ok {
			return v, nil
		}
	}
	if v, ok := p.free[name]; ok {
		return v, nil
	}

	v, err := p.newVariable(name)
	if err != nil {
		return 0, err
	}
	p.free[name] = v
	p.freeList = append(p.freeList, name)
	return v, nil
}

var comparisonOperators = map[string]fol.ComparisonOperator{
	"<":  fol.Less,
	"<=": fol.LessOrEqual,
	">":  fol.Greater,
	">=": fol.GreaterOrEqual,
	"=":  fol.Equal,
	"!=": fol.NotEqual,
}

func (p *parser) comparisonOperator() (fol.ComparisonOperator, bool) {
	t := p.s.Peek()
	if t.Type != syntax.TokenSymbol {
		return 0, false
	}
	op, ok := comparisonOperators[t.Value]
	return op, ok
}

func (p *parser) primary() (fol.Formula, error) {
	t := p.s.Peek()

	switch {
	case t.Is("(") && !p.startsTerm():
		p.s.Next()
		f, err := p.iff()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return f, nil
	case t.Is("true"), t.Type == syntax.TokenDirective && t.Value == "true":
		p.s.Next()
		return fol.True(), nil
	case t.Is("false"), t.Type == syntax.TokenDirective && t.Value == "false":
		p.s.Next()
		return fol.False(), nil
	case t.Type == syntax.TokenIdentifier && !p.startsTerm():
		return p.predicate()
	default:
		return p.comparison()
	}
}

// startsTerm reports whether the identifier or parenthesized group at the
// current position is followed by a comparison or arithmetic operator, so
// that it has to be read as a term.
func (p *parser) startsTerm() bool {
	mark := p.s.Mark()
	defer p.s.Reset(mark)

	if p.s.Next().Type == syntax.TokenIdentifier && !p.s.Accept("(") {
		return p.atTermContinuation()
	}
	depth := 1
	for depth > 0 && !p.s.AtEOF() {
		switch t := p.s.Next(); {
		case t.Is("("):
			depth++
		case t.Is(")"):
			depth--
		}
	}
	return p.atTermContinuation()
}

func (p *parser) atTermContinuation() bool {
	if _, ok := p.comparisonOperator(); ok {
		return true
	}
	t := p.s.Peek()
	return t.Is("+") || t.Is("-") || t.Is("*") || t.Is("/") || t.Is("\\")
}

func (p *parser) predicate() (fol.Formula, error) {
	name := p.s.Next().Value
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	decl := p.registry.FindOrCreatePredicateDeclaration(name, len(args))
	return fol.Predicate(decl, args...), nil
}

// comparison parses t1 op t2 [op t3 ...]. A chain is the conjunction of
// its neighbouring comparisons.
func (p *parser) comparison() (fol.Formula, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}

	var comparisons []fol.Formula
	for {
		op, ok := p.comparisonOperator()
		if !ok {
			break
		}
		p.s.Next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		comparisons = append(comparisons, fol.Compare(op, left, right))
		left = right
	}

	switch len(comparisons) {
	case 0:
		return nil, p.errorf("expected comparison operator, found %s", p.s.Peek())
	case 1:
		return comparisons[0], nil
	default:
		return fol.And(comparisons...), nil
	}
}

func (p *parser) arguments() ([]fol.Term, error) {
	if !p.s.Accept("(") {
		return nil, nil
	}
	var args []fol.Term
	for {
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.s.Accept(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) term() (fol.Term, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op fol.BinaryOperator
		switch {
		case p.s.Accept("+"):
			op = fol.OpAdd
		case p.s.Accept("-"):
			op = fol.OpSubtract
		default:
			return left, nil
		}
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = fol.BinaryTerm{Op: op, Left: left, Right: right}
	}
}

func (p *parser) multiplicative() (fol.Term, error) {
	left, err := p.unaryTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op fol.BinaryOperator
		switch {
		case p.s.Accept("*"):
			op = fol.OpMultiply
		case p.s.Accept("/"):
			op = fol.OpDivide
		case p.s.Accept("\\"):
			op = fol.OpModulo
		default:
			return left, nil
		}
		right, err := p.unaryTerm()
		if err != nil {
			return nil, err
		}
		left = fol.BinaryTerm{Op: op, Left: left, Right: right}
	}
}

func (p *parser) unaryTerm() (fol.Term, error) {
	if !p.s.Accept("-") {
		return p.primaryTerm()
	}
	if t := p.s.Peek(); t.Type == syntax.TokenNumber {
		p.s.Next()
		n, err := strconv.ParseInt("-"+t.Value, 10, 64)
		if err != nil || n < math.MinInt32 {
			return nil, errors.NewParseFormula("integer out of range").At(t.Line, t.Col)
		}
		return fol.Int(int32(n)), nil
	}
	arg, err := p.unaryTerm()
	if err != nil {
		return nil, err
	}
	return fol.Negative(arg), nil
}

func (p *parser) primaryTerm() (fol.Term, error) {
	t := p.s.Peek()

	switch t.Type {
	case syntax.TokenNumber:
		p.s.Next()
		n, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil || n > math.MaxInt32 {
			return nil, errors.NewParseFormula("integer out of range").At(t.Line, t.Col)
		}
		return fol.Int(int32(n)), nil
	case syntax.TokenString:
		p.s.Next()
		return fol.StringTerm{Value: t.Value}, nil
	case syntax.TokenVariable:
		p.s.Next()
		v, err := p.variable(t.Value)
		if err != nil {
			return nil, err
		}
		return fol.Var(v), nil
	case syntax.TokenDirective:
		switch t.Value {
		case "inf", "infimum":
			p.s.Next()
			return fol.SpecialIntegerTerm{Value: fol.Infimum}, nil
		case "sup", "supremum":
			p.s.Next()
			return fol.SpecialIntegerTerm{Value: fol.Supremum}, nil
		case "true", "false":
			p.s.Next()
			return fol.BooleanTerm{Value: t.Value == "true"}, nil
		}
	case syntax.TokenIdentifier:
		p.s.Next()
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		decl := p.registry.FindOrCreateFunctionDeclaration(t.Value, len(args))
		return fol.FunctionTerm{Decl: decl, Args: args}, nil
	case syntax.TokenSymbol:
		switch t.Value {
		case "(":
			p.s.Next()
			inner, err := p.term()
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return inner, nil
		case "|":
			p.s.Next()
			inner, err := p.term()
			if err != nil {
				return nil, err
			}
			if err := p.expect("|"); err != nil {
				return nil, err
			}
			return fol.UnaryTerm{Op: fol.OpAbsoluteValue, Arg: inner}, nil
		}
	}
	return nil, p.errorf("expected term, found %s", t)
}

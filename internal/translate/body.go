package translate

import (
	"github.com/gnolang/anthem/internal/asp"
	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

func (c *Context) translateBody(body []asp.BodyLiteral) ([]fol.Formula, error) {
	out := make([]fol.Formula, 0, len(body))
	for _, b := range body {
		f, err := c.translateBodyLiteral(b)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *Context) translateBodyLiteral(b asp.BodyLiteral) (fol.Formula, error) {
	if b.Sign != asp.SignNone {
		return nil, errors.NewUnsupportedLanguageFeature("signed body literals")
	}

	literal, ok := b.Element.(asp.Literal)
	if !ok {
		return nil, errors.NewUnsupportedLanguageFeature("only plain body literals supported")
	}

	switch atom := literal.Atom.(type) {
	case asp.BooleanAtom:
		if literal.Sign != asp.SignNone {
			return nil, errors.NewLogic("unexpected negated Boolean value")
		}
		return fol.BooleanFormula{Value: atom.Value}, nil

	case asp.SymbolicAtom:
		return c.translateBodyAtom(atom.Term, literal.Sign)

	case asp.ComparisonAtom:
		params := c.registry.NewGeneratedVariables(2, fol.DomainProgram)

		left, err := c.chooseValueInTerm(atom.Left, params[0])
		if err != nil {
			return nil, err
		}
		right, err := c.chooseValueInTerm(atom.Right, params[1])
		if err != nil {
			return nil, err
		}

		compare := fol.Compare(comparisonOperator(atom.Op), fol.Var(params[0]), fol.Var(params[1]))
		return fol.Exists(params, fol.And(left, right, compare)), nil

	default:
		return nil, errors.NewUnsupportedLanguageFeature("body literals other than Booleans, terms, or comparisons")
	}
}

// translateBodyAtom turns p(t1, ..., tn) into
// ∃ Z1 ... Zn (choose(t1, Z1) ∧ ... ∧ choose(tn, Zn) ∧ p(Z1, ..., Zn)).
func (c *Context) translateBodyAtom(term asp.Term, sign asp.Sign) (fol.Formula, error) {
	function, ok := term.(asp.Function)
	if !ok || function.External {
		return nil, errors.NewUnsupportedLanguageFeature("only functions supported as body terms")
	}

	decl := c.registry.FindOrCreatePredicateDeclaration(function.Name, len(function.Args))
	params := c.registry.NewGeneratedVariables(len(function.Args), fol.DomainProgram)

	var literal fol.Formula = fol.Predicate(decl, fol.Vars(params)...)
	if sign == asp.SignNegation {
		literal = fol.Not(literal)
	}

	if len(function.Args) == 0 {
		return literal, nil
	}

	args := make([]fol.Formula, 0, len(function.Args)+1)
	for i, arg := range function.Args {
		choose, err := c.chooseValueInTerm(arg, params[i])
		if err != nil {
			return nil, err
		}
		args = append(args, choose)
	}
	args = append(args, literal)

	return fol.Exists(params, fol.And(args...)), nil
}

func comparisonOperator(op asp.ComparisonOperator) fol.ComparisonOperator {
	switch op {
	case asp.Less:
		return fol.Less
	case asp.LessOrEqual:
		return fol.LessOrEqual
	case asp.Greater:
		return fol.Greater
	case asp.GreaterOrEqual:
		return fol.GreaterOrEqual
	case asp.NotEqual:
		return fol.NotEqual
	default:
		return fol.Equal
	}
}

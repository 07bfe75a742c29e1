package translate

import (
	"github.com/gnolang/anthem/internal/asp"
	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// chooseValueInTerm builds a formula stating that target takes one of the
// values of term. Arithmetic is unfolded over fresh integer variables so that
// the result only ever compares variables with primitive terms.
func (c *Context) chooseValueInTerm(term asp.Term, target fol.VariableID) (fol.Formula, error) {
	z := fol.Var(target)

	switch term := term.(type) {
	case asp.Number:
		return fol.Equals(z, fol.Int(term.Value)), nil

	case asp.String:
		return fol.Equals(z, fol.StringTerm{Value: term.Value}), nil

	case asp.Infimum:
		return fol.Equals(z, fol.SpecialIntegerTerm{Value: fol.Infimum}), nil

	case asp.Supremum:
		return fol.Equals(z, fol.SpecialIntegerTerm{Value: fol.Supremum}), nil

	case asp.Variable:
		v := c.scope.findOrCreate(c.registry, term.Name)
		if err := c.registry.AssignVariableDomain(v, fol.DomainProgram); err != nil {
			return nil, err
		}
		return fol.Equals(z, fol.Var(v)), nil

	case asp.Function:
		switch {
		case term.External:
			return nil, errors.NewUnsupportedLanguageFeature("external functions")
		case len(term.Args) > 0:
			return nil, errors.NewUnsupportedLanguageFeature("symbolic functions")
		}
		decl := c.registry.FindOrCreateFunctionDeclaration(term.Name, 0)
		return fol.Equals(z, fol.Constant(decl)), nil

	case asp.BinaryOperation:
		return c.chooseValueInBinaryOperation(term, z)

	case asp.UnaryOperation:
		switch term.Op {
		case asp.OpMinus:
			params := c.registry.NewGeneratedVariables(1, fol.DomainInteger)
			choose, err := c.chooseValueInTerm(term.Arg, params[0])
			if err != nil {
				return nil, err
			}
			return fol.Exists(params, fol.And(
				fol.Equals(z, fol.Negative(fol.Var(params[0]))),
				choose,
			)), nil
		case asp.OpAbsolute:
			return nil, errors.NewUnsupportedLanguageFeature("absolute value")
		default:
			return nil, errors.NewUnsupportedLanguageFeature("bitwise negation")
		}

	case asp.Interval:
		params := c.registry.NewGeneratedVariables(3, fol.DomainInteger)
		i, j, k := fol.Var(params[0]), fol.Var(params[1]), fol.Var(params[2])

		chooseI, err := c.chooseValueInTerm(term.From, params[0])
		if err != nil {
			return nil, err
		}
		chooseJ, err := c.chooseValueInTerm(term.To, params[1])
		if err != nil {
			return nil, err
		}

		return fol.Exists(params, fol.And(
			chooseI,
			chooseJ,
			fol.Compare(fol.LessOrEqual, i, k),
			fol.Compare(fol.LessOrEqual, k, j),
			fol.Equals(z, k),
		)), nil

	case asp.Pool:
		return nil, errors.NewUnsupportedLanguageFeature("pools")

	default:
		return nil, errors.NewLogic("unknown term")
	}
}

func (c *Context) chooseValueInBinaryOperation(term asp.BinaryOperation, z fol.Term) (fol.Formula, error) {
	switch term.Op {
	case asp.OpAdd, asp.OpSubtract, asp.OpMultiply:
		params := c.registry.NewGeneratedVariables(2, fol.DomainInteger)

		left, err := c.chooseValueInTerm(term.Left, params[0])
		if err != nil {
			return nil, err
		}
		right, err := c.chooseValueInTerm(term.Right, params[1])
		if err != nil {
			return nil, err
		}

		op := fol.OpAdd
		switch term.Op {
		case asp.OpSubtract:
			op = fol.OpSubtract
		case asp.OpMultiply:
			op = fol.OpMultiply
		}

		value := fol.BinaryTerm{Op: op, Left: fol.Var(params[0]), Right: fol.Var(params[1])}
		return fol.Exists(params, fol.And(fol.Equals(z, value), left, right)), nil

	case asp.OpDivide, asp.OpModulo:
		params := c.registry.NewGeneratedVariables(4, fol.DomainInteger)
		i, j, q, r := fol.Var(params[0]), fol.Var(params[1]), fol.Var(params[2]), fol.Var(params[3])

		// Both i and j are chosen from the dividend.
		chooseI, err := c.chooseValueInTerm(term.Left, params[0])
		if err != nil {
			return nil, err
		}
		chooseJ, err := c.chooseValueInTerm(term.Left, params[1])
		if err != nil {
			return nil, err
		}

		result := fol.Equals(z, q)
		if term.Op == asp.OpModulo {
			result = fol.Equals(z, r)
		}

		return fol.Exists(params, fol.And(
			fol.Equals(i, fol.Add(fol.Multiply(j, q), r)),
			chooseI,
			chooseJ,
			fol.Compare(fol.NotEqual, j, fol.Int(0)),
			fol.Compare(fol.GreaterOrEqual, r, fol.Int(0)),
			fol.Compare(fol.Less, r, q),
			result,
		)), nil

	case asp.OpPower:
		return nil, errors.NewUnsupportedLanguageFeature("exponentiation")

	default:
		return nil, errors.NewUnsupportedLanguageFeature("binary operator " + term.Op.String())
	}
}

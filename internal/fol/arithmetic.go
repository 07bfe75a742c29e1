package fol

import (
	"github.com/gnolang/anthem/internal/errors"
)

// IsTermArithmetic reports whether t denotes an integer. Variable domains
// must have been assigned before calling it.
func (r *Registry) IsTermArithmetic(t Term) (bool, error) {
	switch t := t.(type) {
	case IntegerTerm:
		return true, nil
	case BooleanTerm, SpecialIntegerTerm, StringTerm:
		return false, nil
	case FunctionTerm:
		if len(t.Args) > 0 {
			return false, errors.NewUnsupportedLanguageFeature("functions with arguments")
		}
		return t.Decl.Domain == DomainInteger, nil
	case VariableTerm:
		domain, ok := r.VariableDomain(t.Decl)
		if !ok {
			return false, errors.NewLogic("unspecified domain of variable " + r.VariableLabel(t.Decl))
		}
		return domain == DomainInteger, nil
	case BinaryTerm:
		left, err := r.IsTermArithmetic(t.Left)
		if err != nil || !left {
			return false, err
		}
		return r.IsTermArithmetic(t.Right)
	case UnaryTerm:
		return r.IsTermArithmetic(t.Arg)
	case IntervalTerm:
		return false, errors.NewLogic("intervals cannot occur in formulas")
	default:
		return false, errors.NewLogic("unknown term")
	}
}

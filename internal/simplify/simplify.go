package simplify

import (
	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// Simplifier rewrites formulas to a fixpoint of three local rules:
//
//   - an existential parameter v is dropped together with a conjunct v = t
//     (or t = v) of its scope, substituting t for v, unless t mentions v or
//     v is an integer and t is not arithmetic;
//   - a quantifier without parameters is replaced by its argument;
//   - an n-ary connective with no arguments becomes true (false for or) and
//     one with a single argument becomes that argument.
type Simplifier struct {
	registry *fol.Registry
	logger   *zap.Logger
}

func New(registry *fol.Registry, logger *zap.Logger) *Simplifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simplifier{registry: registry, logger: logger}
}

// Simplify applies the rules in order, restarting after every pass that
// changed something. Variable domains must be assigned.
func (s *Simplifier) Simplify(f fol.Formula) (fol.Formula, error) {
	passes := 0
	for {
		passes++

		next, changed, err := s.removeUnnecessaryExistsParameters(f)
		if err != nil {
			return nil, err
		}
		if !changed {
			next, changed = removeQuantifiersWithoutParameters(f)
		}
		if !changed {
			next, changed = removeTrivialConnectives(f)
		}
		if !changed {
			s.logger.Debug("simplified formula", zap.Int("passes", passes))
			return f, nil
		}
		f = next
	}
}

// SimplifyAll simplifies every formula in place.
func (s *Simplifier) SimplifyAll(formulas []fol.Formula) error {
	for i, f := range formulas {
		simplified, err := s.Simplify(f)
		if err != nil {
			return err
		}
		formulas[i] = simplified
	}
	return nil
}

func (s *Simplifier) removeUnnecessaryExistsParameters(f fol.Formula) (fol.Formula, bool, error) {
	all := func(args []fol.Formula) ([]fol.Formula, bool, error) {
		out := make([]fol.Formula, len(args))
		changed := false
		for i, arg := range args {
			r, c, err := s.removeUnnecessaryExistsParameters(arg)
			if err != nil {
				return nil, false, err
			}
			out[i] = r
			changed = changed || c
		}
		return out, changed, nil
	}

	switch f := f.(type) {
	case fol.AndFormula:
		args, changed, err := all(f.Args)
		return fol.AndFormula{Args: args}, changed, err
	case fol.OrFormula:
		args, changed, err := all(f.Args)
		return fol.OrFormula{Args: args}, changed, err
	case fol.IffFormula:
		args, changed, err := all(f.Args)
		return fol.IffFormula{Args: args}, changed, err
	case fol.ImpliesFormula:
		antecedent, c1, err := s.removeUnnecessaryExistsParameters(f.Antecedent)
		if err != nil {
			return nil, false, err
		}
		implication, c2, err := s.removeUnnecessaryExistsParameters(f.Implication)
		if err != nil {
			return nil, false, err
		}
		return fol.ImpliesFormula{Antecedent: antecedent, Implication: implication}, c1 || c2, nil
	case fol.NotFormula:
		arg, changed, err := s.removeUnnecessaryExistsParameters(f.Arg)
		return fol.NotFormula{Arg: arg}, changed, err
	case fol.ForAllFormula:
		arg, changed, err := s.removeUnnecessaryExistsParameters(f.Arg)
		return fol.ForAllFormula{Params: f.Params, Arg: arg}, changed, err
	case fol.ExistsFormula:
		return s.removeAssignedParameters(f)
	default:
		return f, false, nil
	}
}

func (s *Simplifier) removeAssignedParameters(f fol.ExistsFormula) (fol.Formula, bool, error) {
	arg, changed, err := s.removeUnnecessaryExistsParameters(f.Arg)
	if err != nil {
		return nil, false, err
	}

	and, ok := arg.(fol.AndFormula)
	if !ok {
		return fol.ExistsFormula{Params: f.Params, Arg: arg}, changed, nil
	}

	args := append([]fol.Formula(nil), and.Args...)
	params := make([]fol.VariableID, 0, len(f.Params))

	for _, param := range f.Params {
		index, term, err := s.findAssignment(param, args)
		if err != nil {
			return nil, false, err
		}
		if index < 0 {
			params = append(params, param)
			continue
		}

		args = append(args[:index], args[index+1:]...)
		for i := range args {
			args[i] = fol.ReplaceVariableInFormula(args[i], param, term)
		}
		changed = true
	}

	return fol.ExistsFormula{Params: params, Arg: fol.AndFormula{Args: args}}, changed, nil
}

// findAssignment returns the index of the first conjunct v = t or t = v that
// can be used to eliminate v, and t. The index is -1 if there is none.
func (s *Simplifier) findAssignment(v fol.VariableID, args []fol.Formula) (int, fol.Term, error) {
	for i, arg := range args {
		compare, ok := arg.(fol.CompareFormula)
		if !ok || compare.Op != fol.Equal {
			continue
		}

		var term fol.Term
		if isVariable(compare.Left, v) {
			term = compare.Right
		} else if isVariable(compare.Right, v) {
			term = compare.Left
		} else {
			continue
		}

		if fol.TermContainsVariable(term, v) {
			continue
		}

		domain, ok := s.registry.VariableDomain(v)
		if !ok {
			return -1, nil, errors.NewLogic("unspecified domain of variable " + s.registry.VariableLabel(v))
		}
		if domain == fol.DomainInteger {
			arithmetic, err := s.registry.IsTermArithmetic(term)
			if err != nil {
				return -1, nil, err
			}
			// Replacing an integer by a non-arithmetic term would narrow it.
			if !arithmetic {
				continue
			}
		}

		return i, term, nil
	}
	return -1, nil, nil
}

func isVariable(t fol.Term, v fol.VariableID) bool {
	variable, ok := t.(fol.VariableTerm)
	return ok && variable.Decl == v
}

func removeQuantifiersWithoutParameters(f fol.Formula) (fol.Formula, bool) {
	switch f := f.(type) {
	case fol.AndFormula:
		args, changed := mapFormulas(f.Args, removeQuantifiersWithoutParameters)
		return fol.AndFormula{Args: args}, changed
	case fol.OrFormula:
		args, changed := mapFormulas(f.Args, removeQuantifiersWithoutParameters)
		return fol.OrFormula{Args: args}, changed
	case fol.IffFormula:
		args, changed := mapFormulas(f.Args, removeQuantifiersWithoutParameters)
		return fol.IffFormula{Args: args}, changed
	case fol.ImpliesFormula:
		antecedent, c1 := removeQuantifiersWithoutParameters(f.Antecedent)
		implication, c2 := removeQuantifiersWithoutParameters(f.Implication)
		return fol.ImpliesFormula{Antecedent: antecedent, Implication: implication}, c1 || c2
	case fol.NotFormula:
		arg, changed := removeQuantifiersWithoutParameters(f.Arg)
		return fol.NotFormula{Arg: arg}, changed
	case fol.ExistsFormula:
		arg, changed := removeQuantifiersWithoutParameters(f.Arg)
		if len(f.Params) == 0 {
			return arg, true
		}
		return fol.ExistsFormula{Params: f.Params, Arg: arg}, changed
	case fol.ForAllFormula:
		arg, changed := removeQuantifiersWithoutParameters(f.Arg)
		if len(f.Params) == 0 {
			return arg, true
		}
		return fol.ForAllFormula{Params: f.Params, Arg: arg}, changed
	default:
		return f, false
	}
}

func removeTrivialConnectives(f fol.Formula) (fol.Formula, bool) {
	switch f := f.(type) {
	case fol.AndFormula:
		switch len(f.Args) {
		case 0:
			return fol.True(), true
		case 1:
			arg, _ := removeTrivialConnectives(f.Args[0])
			return arg, true
		}
		args, changed := mapFormulas(f.Args, removeTrivialConnectives)
		return fol.AndFormula{Args: args}, changed
	case fol.IffFormula:
		switch len(f.Args) {
		case 0:
			return fol.True(), true
		case 1:
			arg, _ := removeTrivialConnectives(f.Args[0])
			return arg, true
		}
		args, changed := mapFormulas(f.Args, removeTrivialConnectives)
		return fol.IffFormula{Args: args}, changed
	case fol.OrFormula:
		switch len(f.Args) {
		case 0:
			return fol.False(), true
		case 1:
			arg, _ := removeTrivialConnectives(f.Args[0])
			return arg, true
		}
		args, changed := mapFormulas(f.Args, removeTrivialConnectives)
		return fol.OrFormula{Args: args}, changed
	case fol.ImpliesFormula:
		antecedent, c1 := removeTrivialConnectives(f.Antecedent)
		implication, c2 := removeTrivialConnectives(f.Implication)
		return fol.ImpliesFormula{Antecedent: antecedent, Implication: implication}, c1 || c2
	case fol.NotFormula:
		arg, changed := removeTrivialConnectives(f.Arg)
		return fol.NotFormula{Arg: arg}, changed
	case fol.ExistsFormula:
		arg, changed := removeTrivialConnectives(f.Arg)
		return fol.ExistsFormula{Params: f.Params, Arg: arg}, changed
	case fol.ForAllFormula:
		arg, changed := removeTrivialConnectives(f.Arg)
		return fol.ForAllFormula{Params: f.Params, Arg: arg}, changed
	default:
		return f, false
	}
}

func mapFormulas(args []fol.Formula, fn func(fol.Formula) (fol.Formula, bool)) ([]fol.Formula, bool) {
	out := make([]fol.Formula, len(args))
	changed := false
	for i, arg := range args {
		r, c := fn(arg)
		out[i] = r
		changed = changed || c
	}
	return out, changed
}

package completion

import (
	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// HidePredicate replaces every atom of the predicate defined by definition
// in f with a copy of the definition's body, instantiated with the atom's
// arguments. Bound variables of the body are renamed in every copy.
func HidePredicate(r *fol.Registry, definition, f fol.Formula) (fol.Formula, error) {
	head, body, err := Split(definition)
	if err != nil {
		return nil, err
	}

	// A body that still mentions the predicate can only be inlined into
	// formulas that do not.
	if fol.FormulaContainsPredicate(body, head.Decl) && fol.FormulaContainsPredicate(f, head.Decl) {
		return nil, errors.NewCannotHidePredicate(head.Decl.Name, head.Decl.Arity)
	}

	params := make([]fol.VariableID, len(head.Args))
	for i, arg := range head.Args {
		v, ok := arg.(fol.VariableTerm)
		if !ok {
			return nil, errors.NewLogic("invalid completed definition")
		}
		params[i] = v.Decl
	}

	return fol.ReplacePredicate(f, head.Decl, func(args []fol.Term) (fol.Formula, error) {
		replacement := r.CopyFormula(body)
		for i, param := range params {
			replacement = fol.ReplaceVariableInFormula(replacement, param, args[i])
		}
		return replacement, nil
	})
}

// RestrictToOutputPredicates eliminates every private predicate if any
// predicate is an output predicate. The completed definition of each hidden
// predicate is removed and inlined into the remaining definitions, the
// integrity constraints, and the given formulas, which are returned rewritten.
func (c *Completion) RestrictToOutputPredicates(formulas []fol.Formula) ([]fol.Formula, error) {
	predicates := c.registry.PredicateDeclarations()

	hasOutput := false
	for _, p := range predicates {
		if p.IsOutput {
			hasOutput = true
			break
		}
	}
	if !hasOutput {
		return formulas, nil
	}

	formulas = append([]fol.Formula(nil), formulas...)

	for _, p := range predicates {
		if p.IsPublic() || p.IsBuiltIn() {
			continue
		}
		if err := c.hide(p, formulas); err != nil {
			return nil, err
		}
	}
	return formulas, nil
}

func (c *Completion) hide(p *fol.PredicateDeclaration, formulas []fol.Formula) error {
	if HasPrivateDependencyCycle(p) {
		return errors.NewPrivatePredicateCycle(p.Name, p.Arity)
	}

	index := -1
	for i, d := range c.Definitions {
		if d.Predicate == p {
			index = i
			break
		}
	}
	if index < 0 {
		return errors.NewNoCompletedDefinitionFound(p.Name, p.Arity)
	}

	definition := c.Definitions[index].Formula
	c.Definitions = append(c.Definitions[:index:index], c.Definitions[index+1:]...)

	c.logger.Info("hiding predicate", zap.Stringer("predicate", p))

	for i := range c.Definitions {
		f, err := HidePredicate(c.registry, definition, c.Definitions[i].Formula)
		if err != nil {
			return err
		}
		c.Definitions[i].Formula = f
	}

	for i, constraint := range c.IntegrityConstraints {
		f, err := HidePredicate(c.registry, definition, constraint)
		if err != nil {
			return err
		}
		c.IntegrityConstraints[i] = f
	}

	for i, formula := range formulas {
		f, err := HidePredicate(c.registry, definition, formula)
		if err != nil {
			return err
		}
		formulas[i] = f
	}

	return nil
}

package completion

import (
	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// CheckConsistency validates the program interface before private predicates
// are hidden. It does nothing unless some predicate is an output predicate.
// specification holds the formulas of assertions and lemmas, which may only
// mention public predicates.
func (c *Completion) CheckConsistency(specification []fol.Formula) error {
	predicates := c.registry.PredicateDeclarations()

	hasOutput := false
	for _, p := range predicates {
		if p.IsOutput {
			hasOutput = true
			break
		}
	}
	if !hasOutput {
		return nil
	}

	for _, f := range specification {
		for _, p := range fol.CollectPredicates(f) {
			if !p.IsPublic() && !p.IsBuiltIn() {
				return errors.NewPredicateShouldNotOccurInSpecification(p.Name, p.Arity)
			}
		}
	}

	for _, p := range predicates {
		if p.IsPublic() || p.IsBuiltIn() {
			continue
		}
		if HasPrivateDependencyCycle(p) {
			return errors.NewPrivatePredicateCycle(p.Name, p.Arity)
		}
		for _, dep := range sortedDependencies(p) {
			if dep.IsOutput {
				return errors.NewPrivatePredicateDependingOnPublicPredicate(p.Name, p.Arity, dep.String())
			}
		}
	}

	return nil
}

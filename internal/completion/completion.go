package completion

import (
	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
	"github.com/gnolang/anthem/internal/translate"
)

// CompletedDefinition is the biconditional definition of a single predicate.
type CompletedDefinition struct {
	Predicate *fol.PredicateDeclaration
	Formula   fol.Formula
}

// Completion is the Clark completion of a translated program.
type Completion struct {
	Definitions          []CompletedDefinition
	IntegrityConstraints []fol.Formula

	registry *fol.Registry
	logger   *zap.Logger
}

// Complete builds one completed definition per predicate that is neither an
// input nor built in, in name order, and records predicate dependencies.
func Complete(c *translate.Context, logger *zap.Logger) (*Completion, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := c.Registry()

	result := &Completion{
		IntegrityConstraints: append([]fol.Formula(nil), c.IntegrityConstraints()...),
		registry:             r,
		logger:               logger,
	}

	for _, p := range r.PredicateDeclarations() {
		if p.IsInput || p.IsBuiltIn() {
			continue
		}

		var formula fol.Formula
		if defs, ok := c.Definitions(p); ok {
			disjuncts := make([]fol.Formula, len(defs.Rules))
			for i, rule := range defs.Rules {
				disjuncts[i] = fol.ExistentialClosure(rule)
			}
			formula = fol.UniversalClosure(fol.OpenFormula{
				FreeVariables: defs.HeadParams,
				Formula: fol.Iff(
					fol.Predicate(p, fol.Vars(defs.HeadParams)...),
					fol.Or(disjuncts...),
				),
			})
		} else {
			params := r.NewGeneratedVariables(p.Arity, fol.DomainProgram)
			formula = fol.UniversalClosure(fol.OpenFormula{
				FreeVariables: params,
				Formula:       fol.Not(fol.Predicate(p, fol.Vars(params)...)),
			})
		}

		logger.Debug("completed definition", zap.Stringer("predicate", p))
		result.Definitions = append(result.Definitions, CompletedDefinition{Predicate: p, Formula: formula})
	}

	if err := result.computeDependencies(); err != nil {
		return nil, err
	}
	return result, nil
}

// Definition returns the completed definition of p.
func (c *Completion) Definition(p *fol.PredicateDeclaration) (CompletedDefinition, bool) {
	for _, d := range c.Definitions {
		if d.Predicate == p {
			return d, true
		}
	}
	return CompletedDefinition{}, false
}

func (c *Completion) computeDependencies() error {
	for _, d := range c.Definitions {
		_, body, err := Split(d.Formula)
		if err != nil {
			return err
		}

		p := d.Predicate
		p.Dependencies = make(map[*fol.PredicateDeclaration]fol.Sign)
		fol.VisitPredicates(body, func(atom fol.PredicateFormula, sign fol.Sign) {
			if atom.Decl.IsBuiltIn() {
				return
			}
			p.AddDependency(atom.Decl, sign)
		})
	}
	return nil
}

// Split returns the defined atom and the defining body of a completed
// definition. A definition of the form ∀X ¬p(X) has the body false.
func Split(definition fol.Formula) (fol.PredicateFormula, fol.Formula, error) {
	if forall, ok := definition.(fol.ForAllFormula); ok {
		definition = forall.Arg
	}

	switch f := definition.(type) {
	case fol.IffFormula:
		if len(f.Args) == 2 {
			if atom, ok := f.Args[0].(fol.PredicateFormula); ok {
				return atom, f.Args[1], nil
			}
		}
	case fol.NotFormula:
		if atom, ok := f.Arg.(fol.PredicateFormula); ok {
			return atom, fol.False(), nil
		}
	}

	return fol.PredicateFormula{}, nil, errors.NewLogic("invalid completed definition")
}

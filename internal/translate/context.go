package translate

import (
	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/asp"
	"github.com/gnolang/anthem/internal/fol"
)

// Definitions are the rule contributions collected for one head predicate.
type Definitions struct {
	// HeadParams are the variables standing for the predicate's arguments.
	// Every rule defining the predicate shares them.
	HeadParams []fol.VariableID

	// Rules holds one open formula per rule; its free variables are the
	// variables of that rule.
	Rules []fol.OpenFormula
}

// Context accumulates the translation of a whole program, one rule at a time.
type Context struct {
	registry *fol.Registry
	logger   *zap.Logger

	definitions          map[*fol.PredicateDeclaration]*Definitions
	integrityConstraints []fol.Formula

	scope *variableScope
}

func NewContext(registry *fol.Registry, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		registry:    registry,
		logger:      logger,
		definitions: make(map[*fol.PredicateDeclaration]*Definitions),
	}
}

func (c *Context) Registry() *fol.Registry {
	return c.registry
}

// Definitions returns the rule contributions of p, if any rule defines it.
func (c *Context) Definitions(p *fol.PredicateDeclaration) (*Definitions, bool) {
	d, ok := c.definitions[p]
	return d, ok
}

// IntegrityConstraints returns the translated constraints in program order.
func (c *Context) IntegrityConstraints() []fol.Formula {
	return c.integrityConstraints
}

// TranslateProgram translates rules in order, stopping at the first error.
func (c *Context) TranslateProgram(rules []asp.Rule) error {
	for _, rule := range rules {
		if err := c.TranslateRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// TranslateRule translates a single rule and records its contribution.
func (c *Context) TranslateRule(rule asp.Rule) error {
	c.scope = &variableScope{}
	defer func() { c.scope = nil }()

	c.logger.Debug("translating rule", zap.Stringer("rule", rule), zap.Int("line", rule.Line))

	body, err := c.translateBody(rule.Body)
	if err != nil {
		return err
	}

	head, err := determineHeadType(rule.Head, c.registry)
	if err != nil {
		return err
	}

	switch head.Kind {
	case HeadTrivial:
		c.logger.Debug("skipping trivial rule")
		return nil

	case HeadIntegrityConstraint:
		c.logger.Debug("translating integrity constraint")
		constraint := fol.UniversalClosure(fol.OpenFormula{
			FreeVariables: c.scope.variables,
			Formula:       fol.Not(fol.And(body...)),
		})
		c.integrityConstraints = append(c.integrityConstraints, constraint)
		return nil
	}

	definitions := c.definitionsFor(head.Atom.Decl)

	if head.Kind == HeadChoiceWithSingleAtom {
		c.logger.Debug("translating choice rule with single atom")
		body = append(body, fol.Predicate(head.Atom.Decl, fol.Vars(definitions.HeadParams)...))
	}

	for i, arg := range head.Atom.Args {
		choose, err := c.chooseValueInTerm(arg, definitions.HeadParams[i])
		if err != nil {
			return err
		}
		body = append(body, choose)
	}

	formula := fol.True()
	if len(body) > 0 {
		formula = fol.And(body...)
	}

	definitions.Rules = append(definitions.Rules, fol.OpenFormula{
		FreeVariables: c.scope.variables,
		Formula:       formula,
	})
	return nil
}

func (c *Context) definitionsFor(p *fol.PredicateDeclaration) *Definitions {
	if d, ok := c.definitions[p]; ok {
		return d
	}
	d := &Definitions{HeadParams: c.registry.NewGeneratedVariables(p.Arity, fol.DomainProgram)}
	c.definitions[p] = d
	return d
}

// variableScope holds the user-defined variables of the rule being translated.
type variableScope struct {
	variables []fol.VariableID
}

// findOrCreate returns the variable called name in the current rule.
// Every occurrence of the anonymous variable is a new variable.
func (s *variableScope) findOrCreate(r *fol.Registry, name string) fol.VariableID {
	if name != "_" {
		for _, id := range s.variables {
			if existing, _ := r.VariableName(id); existing == name {
				return id
			}
		}
	}
	id := r.NewUserDefinedVariable(name)
	s.variables = append(s.variables, id)
	return id
}

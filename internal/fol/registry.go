package fol

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/errors"
)

// FunctionDeclaration is a function symbol. Identity is the pointer;
// the registry hands out exactly one per (name, arity).
type FunctionDeclaration struct {
	Name  string
	Arity int

	// Domain is the sort of the function's value. Defaults to DomainProgram.
	Domain  Domain
	IsInput bool
}

func (d *FunctionDeclaration) String() string {
	return fmt.Sprintf("%s/%d", d.Name, d.Arity)
}

// IsBuiltIn reports whether d is an internal f__name__ symbol.
func (d *FunctionDeclaration) IsBuiltIn() bool {
	return isBuiltInName(d.Name, "f__")
}

// PredicateDeclaration is a predicate symbol. Identity is the pointer.
type PredicateDeclaration struct {
	Name  string
	Arity int

	IsInput  bool
	IsOutput bool

	// Dependencies is nil until completion has run.
	Dependencies map[*PredicateDeclaration]Sign
}

func (d *PredicateDeclaration) String() string {
	return fmt.Sprintf("%s/%d", d.Name, d.Arity)
}

// IsBuiltIn reports whether d is an internal p__name__ symbol.
func (d *PredicateDeclaration) IsBuiltIn() bool {
	return isBuiltInName(d.Name, "p__")
}

// IsPublic reports whether d is part of the interface of the program.
func (d *PredicateDeclaration) IsPublic() bool {
	return d.IsInput || d.IsOutput
}

// AddDependency records that d's definition mentions dependency under sign.
// A sign that was already recorded is only ever widened.
func (d *PredicateDeclaration) AddDependency(dependency *PredicateDeclaration, sign Sign) {
	if d.Dependencies == nil {
		d.Dependencies = make(map[*PredicateDeclaration]Sign)
	}
	d.Dependencies[dependency] = Join(d.Dependencies[dependency], sign)
}

func isBuiltInName(name, prefix string) bool {
	return len(name) > len(prefix)+2 && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, "__")
}

// VariableID is a stable handle to a variable declaration in a Registry.
// Two handles are the same variable iff they are equal.
type VariableID int

type variableRecord struct {
	// name is empty for generated variables.
	name   string
	domain Domain
}

// Registry owns all declarations of a translation. Function and predicate
// declarations are found or created by (name, arity); variable declarations
// live in an arena and are referred to by VariableID.
type Registry struct {
	functions  []*FunctionDeclaration
	predicates []*PredicateDeclaration
	variables  []variableRecord

	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		variables: make([]variableRecord, 0, 256),
		logger:    logger,
	}
}

func (r *Registry) FindOrCreateFunctionDeclaration(name string, arity int) *FunctionDeclaration {
	for _, d := range r.functions {
		if d.Name == name && d.Arity == arity {
			return d
		}
	}

	d := &FunctionDeclaration{Name: name, Arity: arity, Domain: DomainProgram}
	r.functions = append(r.functions, d)
	r.logger.Debug("new function declaration", zap.String("name", name), zap.Int("arity", arity))
	return d
}

func (r *Registry) FindOrCreatePredicateDeclaration(name string, arity int) *PredicateDeclaration {
	for _, d := range r.predicates {
		if d.Name == name && d.Arity == arity {
			return d
		}
	}

	d := &PredicateDeclaration{Name: name, Arity: arity}
	r.predicates = append(r.predicates, d)
	r.logger.Debug("new predicate declaration", zap.String("name", name), zap.Int("arity", arity))
	return d
}

// LookupPredicateDeclaration returns the declaration for (name, arity) if
// one has been created.
func (r *Registry) LookupPredicateDeclaration(name string, arity int) (*PredicateDeclaration, bool) {
	for _, d := range r.predicates {
		if d.Name == name && d.Arity == arity {
			return d, true
		}
	}
	return nil, false
}

// FunctionDeclarations returns all function declarations ordered by name, then arity.
func (r *Registry) FunctionDeclarations() []*FunctionDeclaration {
	out := append([]*FunctionDeclaration(nil), r.functions...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Arity < out[j].Arity
	})
	return out
}

// PredicateDeclarations returns all predicate declarations ordered by name, then arity.
func (r *Registry) PredicateDeclarations() []*PredicateDeclaration {
	out := append([]*PredicateDeclaration(nil), r.predicates...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Arity < out[j].Arity
	})
	return out
}

// NewUserDefinedVariable adds a named variable declaration with no domain.
func (r *Registry) NewUserDefinedVariable(name string) VariableID {
	id := VariableID(len(r.variables))
	r.variables = append(r.variables, variableRecord{name: name})
	return id
}

// NewGeneratedVariable adds an anonymous variable declaration in domain.
func (r *Registry) NewGeneratedVariable(domain Domain) VariableID {
	id := VariableID(len(r.variables))
	r.variables = append(r.variables, variableRecord{domain: domain})
	return id
}

// NewGeneratedVariables adds n anonymous variable declarations in domain.
func (r *Registry) NewGeneratedVariables(n int, domain Domain) []VariableID {
	ids := make([]VariableID, n)
	for i := range ids {
		ids[i] = r.NewGeneratedVariable(domain)
	}
	return ids
}

// CloneVariable adds a new declaration with the same name and domain as id.
func (r *Registry) CloneVariable(id VariableID) VariableID {
	rec := r.variables[id]
	clone := VariableID(len(r.variables))
	r.variables = append(r.variables, rec)
	return clone
}

// AssignVariableDomain sets the domain of id. Assigning the domain a
// variable already has is a no-op; assigning a different one fails.
func (r *Registry) AssignVariableDomain(id VariableID, domain Domain) error {
	rec := &r.variables[id]
	switch rec.domain {
	case DomainUnknown:
		rec.domain = domain
		return nil
	case domain:
		return nil
	default:
		return errors.NewInconsistentDomain(r.VariableLabel(id),
			fmt.Sprintf("already %s, cannot become %s", rec.domain, domain))
	}
}

// VariableDomain returns the domain of id, or false if none was assigned.
func (r *Registry) VariableDomain(id VariableID) (Domain, bool) {
	d := r.variables[id].domain
	return d, d != DomainUnknown
}

// VariableName returns the user-given name of id, or false for generated variables.
func (r *Registry) VariableName(id VariableID) (string, bool) {
	name := r.variables[id].name
	return name, name != ""
}

// IsGenerated reports whether id was created without a user-given name.
func (r *Registry) IsGenerated(id VariableID) bool {
	return r.variables[id].name == ""
}

// VariableLabel is a name for id suitable for diagnostics.
func (r *Registry) VariableLabel(id VariableID) string {
	if name, ok := r.VariableName(id); ok {
		return name
	}
	return fmt.Sprintf("<generated %d>", int(id))
}

package output

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

var (
	//go:embed preamble/types.tptp
	preambleTypes string

	//go:embed preamble/axioms.tptp
	preambleAxioms string
)

// Role is the TPTP role of an annotated formula.
type Role string

const (
	RoleAxiom      Role = "axiom"
	RoleConjecture Role = "conjecture"
)

// Annotated is a formula ready to be written as tff(name, role, formula).
type Annotated struct {
	Name        string
	Description string
	Role        Role
	Formula     fol.Formula
}

// Section is a titled group of annotated formulas.
type Section struct {
	Title    string
	Formulas []Annotated
}

// WriteTPTPProblem writes a complete TFF problem: the fixed preamble, type
// declarations for every symbol in r, the order of symbolic constants, and
// sections in order. Empty sections are left out. Failures to write are
// wrapped as WriteTPTPProgram.
func WriteTPTPProblem(w io.Writer, r *fol.Registry, sections []Section) error {
	pw := &problemWriter{w: w}

	pw.title("anthem types")
	pw.raw(preambleTypes)
	pw.title("anthem axioms")
	pw.raw(preambleAxioms)

	pw.types(r)

	for _, section := range sections {
		if len(section.Formulas) == 0 {
			continue
		}
		pw.title(section.Title)
		for _, a := range section.Formulas {
			formula, err := TPTP(r, a.Formula)
			if err != nil {
				return err
			}
			if a.Description != "" {
				pw.printf("%% %s\n", a.Description)
			}
			pw.printf("tff(%s, %s, %s).\n", a.Name, a.Role, formula)
		}
	}

	if pw.err != nil {
		return errors.NewWriteTPTPProgram(pw.err)
	}
	return nil
}

// WriteHumanReadableProblem writes the sections with the same titles as
// WriteTPTPProblem, one human-readable formula per line. Roles and names are
// left out.
func WriteHumanReadableProblem(w io.Writer, r *fol.Registry, sections []Section) error {
	pw := &problemWriter{w: w}
	for _, section := range sections {
		if len(section.Formulas) == 0 {
			continue
		}
		pw.title(section.Title)
		for _, a := range section.Formulas {
			formula, err := HumanReadable(r, a.Formula)
			if err != nil {
				return err
			}
			if a.Description != "" {
				pw.printf("%% %s\n", a.Description)
			}
			pw.printf("%s\n", formula)
		}
	}

	if pw.err != nil {
		return fmt.Errorf("failed to write problem: %w", pw.err)
	}
	return nil
}

type problemWriter struct {
	w      io.Writer
	err    error
	titled bool
}

func (pw *problemWriter) printf(format string, args ...any) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}

func (pw *problemWriter) raw(s string) {
	pw.printf("%s", s)
	if !strings.HasSuffix(s, "\n") {
		pw.printf("\n")
	}
}

func (pw *problemWriter) title(title string) {
	rule := strings.Repeat("%", 72)
	if pw.titled {
		pw.printf("\n")
	}
	pw.titled = true
	pw.printf("%s\n%% %s\n%s\n", rule, title, rule)
}

func (pw *problemWriter) types(r *fol.Registry) {
	var predicates []*fol.PredicateDeclaration
	for _, p := range r.PredicateDeclarations() {
		if !p.IsBuiltIn() {
			predicates = append(predicates, p)
		}
	}
	var functions []*fol.FunctionDeclaration
	for _, f := range r.FunctionDeclarations() {
		if !f.IsBuiltIn() {
			functions = append(functions, f)
		}
	}
	if len(predicates) == 0 && len(functions) == 0 {
		return
	}

	pw.title("types")
	if len(predicates) > 0 {
		pw.printf("%% predicate types\n")
		for _, p := range predicates {
			pw.printf("tff(type, type, %s).\n", PredicateType(p))
		}
	}
	if len(functions) == 0 {
		return
	}

	pw.printf("%% function types\n")
	for _, f := range functions {
		pw.printf("tff(type, type, %s).\n", FunctionType(f))
	}

	var constants []*fol.FunctionDeclaration
	for _, f := range functions {
		if IsSymbolicConstant(f) {
			constants = append(constants, f)
		}
	}
	if len(constants) == 0 {
		return
	}

	pw.printf("%% symbolic constants\n")
	for _, c := range constants {
		pw.printf("tff(symbolic_constant, axiom, p__is_symbolic__(%s)).\n", c.Name)
	}
	if len(constants) > 1 {
		pw.printf("%% axioms for order of symbolic constants\n")
		for i := 1; i < len(constants); i++ {
			pw.printf("tff(symbolic_constant_order, axiom, p__less__(%s, %s)).\n", constants[i-1].Name, constants[i].Name)
		}
	}
}

// IsSymbolicConstant reports whether f stands for a fixed symbol of the
// program rather than an input placeholder.
func IsSymbolicConstant(f *fol.FunctionDeclaration) bool {
	return f.Arity == 0 && !f.IsInput && f.Domain == fol.DomainProgram
}

package spec

import (
	goerrors "errors"
	"strconv"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
	"github.com/gnolang/anthem/internal/problem"
	"github.com/gnolang/anthem/internal/syntax"
)

// Statement is one formula statement of a specification.
type Statement struct {
	Kind problem.StatementKind
	// Direction is only set for lemmas.
	Direction problem.ProofDirection
	Formula   fol.Formula
	Line      int
}

// Section is the problem section the statement belongs to.
func (s Statement) Section() problem.SectionKind {
	switch s.Kind {
	case problem.KindAxiom:
		return problem.Axioms
	case problem.KindAssumption:
		return problem.Assumptions
	case problem.KindLemma:
		return problem.Lemmas
	default:
		return problem.Assertions
	}
}

// Specification is the parsed content of a specification file. Input and
// output declarations are recorded directly on the registry.
type Specification struct {
	Statements []Statement
}

// Formulas returns the formulas of the statements of the given kinds.
func (s *Specification) Formulas(kinds ...problem.StatementKind) []fol.Formula {
	var out []fol.Formula
	for _, st := range s.Statements {
		for _, k := range kinds {
			if st.Kind == k {
				out = append(out, st.Formula)
				break
			}
		}
	}
	return out
}

// Parse reads a specification. Its statements are terminated by '.':
//
//	axiom: F.          assume: F.
//	lemma: F.          lemma(forward|backward|both): F.
//	assert: F.         spec: F.
//	input: p/2, n -> integer, c.
//	output: q/1.
//
// Declarations of predicates and constants are created in r.
func Parse(input string, r *fol.Registry) (*Specification, error) {
	s, err := stream(input)
	if err != nil {
		return nil, err
	}

	p := &parser{s: s, registry: r}
	spec := &Specification{}
	for !p.s.AtEOF() {
		st, ok, err := p.statement()
		if err != nil {
			return nil, err
		}
		if ok {
			spec.Statements = append(spec.Statements, st)
		}
	}
	return spec, nil
}

func stream(input string) (*syntax.Stream, error) {
	tokens, err := syntax.Lex(input)
	if err != nil {
		var lexErr *syntax.LexError
		if goerrors.As(err, &lexErr) {
			return nil, errors.NewParseFormula(lexErr.Message).At(lexErr.Line, lexErr.Col)
		}
		return nil, errors.NewParseFormula(err.Error())
	}
	return syntax.NewStream(tokens), nil
}

type parser struct {
	s        *syntax.Stream
	registry *fol.Registry
	scopes   []map[string]fol.VariableID
	free     map[string]fol.VariableID
	freeList []string
}

// fail returns an error of kind located at the current token.
func (p *parser) fail(kind errors.Kind, name string) error {
	t := p.s.Peek()
	return (&errors.Error{Kind: kind, Name: name}).At(t.Line, t.Col)
}

func (p *parser) statement() (Statement, bool, error) {
	t := p.s.Peek()
	if t.Type != syntax.TokenIdentifier {
		return Statement{}, false, p.fail(errors.ExpectedStatement, "")
	}

	st := Statement{Line: t.Line}
	switch t.Value {
	case "axiom":
		st.Kind = problem.KindAxiom
	case "assume":
		st.Kind = problem.KindAssumption
	case "lemma":
		st.Kind = problem.KindLemma
	case "assert", "spec":
		st.Kind = problem.KindAssertion
	case "input":
		p.s.Next()
		return Statement{}, false, p.inputBody()
	case "output":
		p.s.Next()
		return Statement{}, false, p.outputBody()
	default:
		return Statement{}, false, p.fail(errors.UnknownStatement, t.Value)
	}
	p.s.Next()

	if st.Kind == problem.KindLemma && p.s.Accept("(") {
		direction, err := p.proofDirection()
		if err != nil {
			return Statement{}, false, err
		}
		st.Direction = direction
	}

	if !p.s.Accept(":") {
		return Statement{}, false, p.fail(errors.ExpectedColon, "")
	}

	formula, err := p.closedFormula()
	if err != nil {
		return Statement{}, false, err
	}
	st.Formula = formula

	if err := p.terminator(); err != nil {
		return Statement{}, false, err
	}
	return st, true, nil
}

func (p *parser) proofDirection() (problem.ProofDirection, error) {
	direction := problem.Both
	if t := p.s.Peek(); t.Type == syntax.TokenIdentifier {
		d, err := problem.ParseProofDirection(t.Value)
		if err != nil {
			return 0, p.fail(errors.UnknownProofDirection, t.Value)
		}
		direction = d
		p.s.Next()
	}
	if !p.s.Accept(")") {
		return 0, p.fail(errors.UnmatchedParenthesis, "")
	}
	return direction, nil
}

func (p *parser) terminator() error {
	if !p.s.Accept(".") {
		return p.fail(errors.MissingStatementTerminator, "")
	}
	return nil
}

// arity parses an optional "/n" suffix.
func (p *parser) arity() (int, bool, error) {
	if !p.s.Accept("/") {
		return 0, false, nil
	}
	t := p.s.Peek()
	if t.Type != syntax.TokenNumber {
		return 0, false, p.fail(errors.ExpectedPredicateSpecifier, "")
	}
	n, err := strconv.Atoi(t.Value)
	if err != nil {
		return 0, false, p.fail(errors.ExpectedPredicateSpecifier, "")
	}
	p.s.Next()
	return n, true, nil
}

func (p *parser) inputBody() error {
	if !p.s.Accept(":") {
		return p.fail(errors.ExpectedColon, "")
	}

	for {
		t := p.s.Peek()
		if t.Type != syntax.TokenIdentifier {
			return p.fail(errors.ExpectedIdentifier, "")
		}
		p.s.Next()

		arity, isPredicate, err := p.arity()
		if err != nil {
			return err
		}

		if isPredicate {
			p.registry.FindOrCreatePredicateDeclaration(t.Value, arity).IsInput = true
		} else {
			domain := fol.DomainProgram
			if p.s.Accept("->") {
				d := p.s.Peek()
				if d.Type != syntax.TokenIdentifier {
					return p.fail(errors.ExpectedIdentifier, "")
				}
				switch d.Value {
				case "integer":
					domain = fol.DomainInteger
				case "program":
				default:
					return p.fail(errors.UnknownDomainIdentifier, d.Value)
				}
				p.s.Next()
			}
			c := p.registry.FindOrCreateFunctionDeclaration(t.Value, 0)
			c.IsInput = true
			c.Domain = domain
		}

		if !p.s.Accept(",") {
			break
		}
	}
	return p.terminator()
}

func (p *parser) outputBody() error {
	if !p.s.Accept(":") {
		return p.fail(errors.ExpectedColon, "")
	}

	for {
		t := p.s.Peek()
		if t.Type != syntax.TokenIdentifier {
			return p.fail(errors.ExpectedIdentifier, "")
		}
		p.s.Next()

		arity, isPredicate, err := p.arity()
		if err != nil {
			return err
		}
		if !isPredicate {
			return p.fail(errors.ExpectedPredicateSpecifier, "")
		}
		p.registry.FindOrCreatePredicateDeclaration(t.Value, arity).IsOutput = true

		if !p.s.Accept(",") {
			break
		}
	}
	return p.terminator()
}

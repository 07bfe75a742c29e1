package problem

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
	"github.com/gnolang/anthem/internal/output"
	"github.com/gnolang/anthem/internal/prover"
)

// Problem is the set of statements to verify against one registry.
type Problem struct {
	registry *fol.Registry
	prover   prover.Prover
	logger   *zap.Logger
	reporter Reporter

	sections map[SectionKind][]*Statement

	mutex   sync.Mutex
	proving bool
}

type Option func(*Problem)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Problem) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithReporter(reporter Reporter) Option {
	return func(p *Problem) {
		if reporter != nil {
			p.reporter = reporter
		}
	}
}

func New(registry *fol.Registry, pr prover.Prover, opts ...Option) *Problem {
	p := &Problem{
		registry: registry,
		prover:   pr,
		logger:   zap.NewNop(),
		reporter: nopReporter{},
		sections: make(map[SectionKind][]*Statement),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Problem) Registry() *fol.Registry {
	return p.registry
}

// AddStatement appends s to section.
func (p *Problem) AddStatement(section SectionKind, s *Statement) {
	p.sections[section] = append(p.sections[section], s)
}

// Statements returns the statements of section in insertion order.
func (p *Problem) Statements(section SectionKind) []*Statement {
	return p.sections[section]
}

// Prove runs the proof directions selected by direction in turn and returns
// Proven if every one of them proved all of its pending statements.
// Otherwise it returns the status that stopped the first failing direction;
// later directions still run. Only one Prove may run at a time.
func (p *Problem) Prove(ctx context.Context, direction ProofDirection) (ProofStatus, error) {
	p.mutex.Lock()
	if p.proving {
		p.mutex.Unlock()
		return 0, errors.NewLogic("a proof is already running on this problem")
	}
	p.proving = true
	p.mutex.Unlock()

	defer func() {
		p.mutex.Lock()
		p.proving = false
		p.mutex.Unlock()
	}()

	overall := Proven
	for _, d := range direction.directions() {
		status, err := p.proveDirection(ctx, d)
		if err != nil {
			return 0, err
		}
		if overall == Proven {
			overall = status
		}
	}
	return overall, nil
}

func (p *Problem) proveDirection(ctx context.Context, direction ProofDirection) (ProofStatus, error) {
	pending := 0
	for _, kind := range sectionKinds {
		for _, s := range p.sections[kind] {
			s.reset(direction)
			if s.Status.IsPending() {
				pending++
			}
		}
	}

	p.logger.Info("performing proof", zap.Stringer("direction", direction), zap.Int("pending", pending))
	p.reporter.DirectionStarted(direction, pending)

	for _, kind := range sectionKinds {
		for _, s := range p.sections[kind] {
			if s.Status != AssumedProven {
				continue
			}
			formula, err := output.HumanReadable(p.registry, s.Formula)
			if err != nil {
				return 0, err
			}
			p.reporter.StatementAssumed(kind, s, formula)
		}
	}

	for {
		kind, s, ok := p.nextPending()
		if !ok {
			break
		}
		s.Status = ToProveNow

		status, err := p.proveStatement(ctx, kind, s)
		if err != nil {
			return 0, err
		}
		if status != Proven {
			p.reporter.DirectionFinished(direction, status)
			return status, nil
		}
	}

	p.reporter.DirectionFinished(direction, Proven)
	return Proven, nil
}

func (p *Problem) nextPending() (SectionKind, *Statement, bool) {
	for _, kind := range sectionKinds {
		for _, s := range p.sections[kind] {
			if s.Status.IsPending() {
				return kind, s, true
			}
		}
	}
	return 0, nil, false
}

func (p *Problem) proveStatement(ctx context.Context, kind SectionKind, s *Statement) (ProofStatus, error) {
	formula, err := output.HumanReadable(p.registry, s.Formula)
	if err != nil {
		return 0, err
	}
	p.reporter.StatementStarted(kind, s, formula)

	var b strings.Builder
	if err := p.WriteTPTP(&b); err != nil {
		return 0, err
	}
	p.logger.Debug("TPTP problem", zap.String("statement", formula), zap.String("problem", b.String()))

	result, err := p.prover.Prove(ctx, b.String())
	if err != nil {
		return 0, fmt.Errorf("failed to prove %s: %w", kind.Singular(), err)
	}

	switch result.Outcome {
	case prover.Proven:
		s.Status = Proven
	case prover.Disproven:
		s.Status = Disproven
	default:
		s.Status = NotProven
	}
	p.reporter.StatementFinished(kind, s, result)
	return s.Status, nil
}

// WriteTPTP writes the current proof obligation: every assumed or proven
// statement as an axiom and the statement being proven as the conjecture.
// Other statements are left out.
func (p *Problem) WriteTPTP(w io.Writer) error {
	return output.WriteTPTPProblem(w, p.registry, p.annotatedSections(func(s *Statement) (output.Role, bool) {
		switch {
		case s.Status.IsAxiom():
			return output.RoleAxiom, true
		case s.Status == ToProveNow:
			return output.RoleConjecture, true
		default:
			return "", false
		}
	}))
}

// Write prints every statement in format. In TPTP every statement is written
// as an axiom.
func (p *Problem) Write(w io.Writer, format output.Format) error {
	sections := p.annotatedSections(func(*Statement) (output.Role, bool) {
		return output.RoleAxiom, true
	})
	if format == output.FormatTPTP {
		return output.WriteTPTPProblem(w, p.registry, sections)
	}
	return output.WriteHumanReadableProblem(w, p.registry, sections)
}

// annotatedSections names unnamed statements statement_1, statement_2, ...
// counting per section over all unnamed statements, so names are stable
// across proof obligations.
func (p *Problem) annotatedSections(role func(*Statement) (output.Role, bool)) []output.Section {
	sections := make([]output.Section, 0, len(sectionKinds))
	for _, kind := range sectionKinds {
		section := output.Section{Title: kind.String()}
		unnamed := 0
		for _, s := range p.sections[kind] {
			name := s.Name
			if name == "" {
				unnamed++
				name = fmt.Sprintf("statement_%d", unnamed)
			}
			r, ok := role(s)
			if !ok {
				continue
			}
			section.Formulas = append(section.Formulas, output.Annotated{
				Name:        name,
				Description: s.Description,
				Role:        r,
				Formula:     s.Formula,
			})
		}
		sections = append(sections, section)
	}
	return sections
}

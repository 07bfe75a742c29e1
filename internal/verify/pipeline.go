package verify

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/asp"
	"github.com/gnolang/anthem/internal/completion"
	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
	"github.com/gnolang/anthem/internal/problem"
	"github.com/gnolang/anthem/internal/prover"
	"github.com/gnolang/anthem/internal/simplify"
	"github.com/gnolang/anthem/internal/spec"
	"github.com/gnolang/anthem/internal/translate"
)

// Pipeline turns a logic program and a specification into a proof problem
// and drives the prover over it.
type Pipeline struct {
	config   Config
	logger   *zap.Logger
	prover   prover.Prover
	reporter problem.Reporter
}

type Option func(*Pipeline)

func WithReporter(reporter problem.Reporter) Option {
	return func(p *Pipeline) {
		p.reporter = reporter
	}
}

// WithProver replaces the configured prover and its cache.
func WithProver(pr prover.Prover) Option {
	return func(p *Pipeline) {
		p.prover = pr
	}
}

func NewPipeline(config Config, logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pipeline{config: config, logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	if p.prover == nil {
		vampire := prover.NewVampire(config.ProverOptions(), logger)
		p.prover = vampire
		if config.Cache.Directory != "" {
			cache, err := prover.NewCache(config.Cache.Directory, config.Cache.MaxAge, vampire.Fingerprint(), vampire, logger)
			if err != nil {
				return nil, fmt.Errorf("failed to open proof cache: %w", err)
			}
			p.prover = cache
		}
	}
	return p, nil
}

// Translate builds the completed definitions and integrity constraints of
// program. The returned problem has no prover and is meant for Write.
func (p *Pipeline) Translate(program string) (*problem.Problem, error) {
	r := fol.NewRegistry(p.logger)
	c, err := p.complete(r, program)
	if err != nil {
		return nil, err
	}
	if err := p.simplify(r, c); err != nil {
		return nil, err
	}
	return p.newProblem(r, c, nil), nil
}

// Verify proves that program satisfies specification in direction.
func (p *Pipeline) Verify(ctx context.Context, program, specification string, direction problem.ProofDirection) (problem.ProofStatus, error) {
	pr, err := p.Problem(program, specification)
	if err != nil {
		return 0, err
	}
	return pr.Prove(ctx, direction)
}

// Problem builds the full proof problem without proving it.
func (p *Pipeline) Problem(program, specification string) (*problem.Problem, error) {
	r := fol.NewRegistry(p.logger)

	// input and output declarations must be known before the completion
	s, err := spec.Parse(specification, r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse specification: %w", err)
	}

	c, err := p.complete(r, program)
	if err != nil {
		return nil, err
	}

	if err := c.CheckConsistency(s.Formulas(problem.KindLemma, problem.KindAssertion)); err != nil {
		return nil, err
	}

	formulas := make([]fol.Formula, len(s.Statements))
	for i, st := range s.Statements {
		formulas[i] = st.Formula
	}
	formulas, err = c.RestrictToOutputPredicates(formulas)
	if err != nil {
		return nil, err
	}
	for i := range s.Statements {
		s.Statements[i].Formula = formulas[i]
	}

	if err := p.simplify(r, c); err != nil {
		return nil, err
	}
	return p.newProblem(r, c, s), nil
}

// VerifyFiles reads the program and specification files and runs Verify.
func (p *Pipeline) VerifyFiles(ctx context.Context, programPath, specificationPath string, direction problem.ProofDirection) (problem.ProofStatus, error) {
	program, err := os.ReadFile(programPath)
	if err != nil {
		return 0, errors.NewReadFile(programPath, err)
	}
	specification, err := os.ReadFile(specificationPath)
	if err != nil {
		return 0, errors.NewReadFile(specificationPath, err)
	}

	p.logger.Info("verifying program",
		zap.String("program", programPath),
		zap.String("specification", specificationPath),
		zap.Stringer("direction", direction))
	return p.Verify(ctx, string(program), string(specification), direction)
}

func (p *Pipeline) complete(r *fol.Registry, program string) (*completion.Completion, error) {
	rules, err := asp.Parse(program)
	if err != nil {
		return nil, fmt.Errorf("failed to parse program: %w", err)
	}

	t := translate.NewContext(r, p.logger)
	if err := t.TranslateProgram(rules); err != nil {
		return nil, fmt.Errorf("failed to translate program: %w", err)
	}

	c, err := completion.Complete(t, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to complete program: %w", err)
	}
	return c, nil
}

func (p *Pipeline) simplify(r *fol.Registry, c *completion.Completion) error {
	if !p.config.Simplify {
		return nil
	}

	s := simplify.New(r, p.logger)
	for i := range c.Definitions {
		f, err := s.Simplify(c.Definitions[i].Formula)
		if err != nil {
			return err
		}
		c.Definitions[i].Formula = f
	}
	return s.SimplifyAll(c.IntegrityConstraints)
}

func (p *Pipeline) newProblem(r *fol.Registry, c *completion.Completion, s *spec.Specification) *problem.Problem {
	pr := problem.New(r, p.prover, problem.WithLogger(p.logger), problem.WithReporter(p.reporter))

	for _, d := range c.Definitions {
		pr.AddStatement(problem.CompletedDefinitions,
			problem.NewStatement(problem.KindProgram, d.Formula).
				WithDescription("completed definition of "+d.Predicate.String()))
	}
	for _, f := range c.IntegrityConstraints {
		pr.AddStatement(problem.IntegrityConstraints, problem.NewStatement(problem.KindProgram, f))
	}

	if s == nil {
		return pr
	}
	for _, st := range s.Statements {
		statement := problem.NewStatement(st.Kind, st.Formula)
		if st.Kind == problem.KindLemma {
			statement.WithDirection(st.Direction)
		}
		pr.AddStatement(st.Section(), statement)
	}
	return pr
}

package problem

import (
	"github.com/gnolang/anthem/internal/prover"
)

// Reporter receives progress events from Prove. Formulas are passed in
// human-readable form.
type Reporter interface {
	DirectionStarted(direction ProofDirection, pending int)
	StatementAssumed(section SectionKind, s *Statement, formula string)
	StatementStarted(section SectionKind, s *Statement, formula string)
	StatementFinished(section SectionKind, s *Statement, result prover.Result)
	DirectionFinished(direction ProofDirection, status ProofStatus)
}

type nopReporter struct{}

func (nopReporter) DirectionStarted(ProofDirection, int)                     {}
func (nopReporter) StatementAssumed(SectionKind, *Statement, string)         {}
func (nopReporter) StatementStarted(SectionKind, *Statement, string)         {}
func (nopReporter) StatementFinished(SectionKind, *Statement, prover.Result) {}
func (nopReporter) DirectionFinished(ProofDirection, ProofStatus)            {}

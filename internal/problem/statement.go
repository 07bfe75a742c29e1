package problem

import (
	"strings"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// SectionKind groups statements. Sections are proven and written in the
// order of their kinds.
type SectionKind int

const (
	CompletedDefinitions SectionKind = iota
	IntegrityConstraints
	Axioms
	Assumptions
	Lemmas
	Assertions
)

var sectionKinds = []SectionKind{CompletedDefinitions, IntegrityConstraints, Axioms, Assumptions, Lemmas, Assertions}

// String is the section title.
func (k SectionKind) String() string {
	switch k {
	case CompletedDefinitions:
		return "completed definitions"
	case IntegrityConstraints:
		return "integrity constraints"
	case Axioms:
		return "axioms"
	case Assumptions:
		return "assumptions"
	case Lemmas:
		return "lemmas"
	case Assertions:
		return "assertions"
	default:
		return "unknown"
	}
}

// Singular names one statement of the section, as in "verifying lemma".
func (k SectionKind) Singular() string {
	switch k {
	case CompletedDefinitions:
		return "completed definition"
	case IntegrityConstraints:
		return "integrity constraint"
	case Axioms:
		return "axiom"
	case Assumptions:
		return "assumption"
	case Lemmas:
		return "lemma"
	case Assertions:
		return "assertion"
	default:
		return "statement"
	}
}

type ProofDirection int

const (
	Both ProofDirection = iota
	Forward
	Backward
)

func (d ProofDirection) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "both"
	}
}

// ParseProofDirection accepts forward, backward and both.
func ParseProofDirection(s string) (ProofDirection, error) {
	switch strings.ToLower(s) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	case "both":
		return Both, nil
	default:
		return 0, &errors.Error{Kind: errors.UnknownProofDirection, Name: s}
	}
}

// directions expands Both into Forward followed by Backward.
func (d ProofDirection) directions() []ProofDirection {
	if d == Both {
		return []ProofDirection{Forward, Backward}
	}
	return []ProofDirection{d}
}

type ProofStatus int

const (
	ToProveLater ProofStatus = iota
	ToProveNow
	AssumedProven
	Proven
	NotProven
	Disproven
	Ignored
)

func (s ProofStatus) String() string {
	switch s {
	case ToProveLater:
		return "to prove later"
	case ToProveNow:
		return "to prove now"
	case AssumedProven:
		return "assumed proven"
	case Proven:
		return "proven"
	case NotProven:
		return "not proven"
	case Disproven:
		return "disproven"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// IsAxiom reports whether statements with status s are axioms of the next
// proof obligation.
func (s ProofStatus) IsAxiom() bool {
	return s == AssumedProven || s == Proven
}

// IsPending reports whether a statement with status s still has to be proven.
func (s ProofStatus) IsPending() bool {
	return s == ToProveLater || s == ToProveNow
}

type StatementKind int

const (
	// KindProgram marks completed definitions and integrity constraints.
	KindProgram StatementKind = iota
	KindAxiom
	KindAssumption
	KindLemma
	KindAssertion
)

// Statement is a formula together with its proof bookkeeping.
type Statement struct {
	Kind StatementKind
	// Direction restricts a lemma to one proof direction. Both for every
	// other kind.
	Direction   ProofDirection
	Name        string
	Description string
	Formula     fol.Formula
	Status      ProofStatus
}

func NewStatement(kind StatementKind, formula fol.Formula) *Statement {
	return &Statement{Kind: kind, Formula: formula}
}

func (s *Statement) WithName(name string) *Statement {
	s.Name = name
	return s
}

func (s *Statement) WithDescription(description string) *Statement {
	s.Description = description
	return s
}

func (s *Statement) WithDirection(direction ProofDirection) *Statement {
	s.Direction = direction
	return s
}

// reset sets the initial status of s for a proof in direction d.
func (s *Statement) reset(d ProofDirection) {
	switch d {
	case Forward:
		switch {
		case s.Kind == KindAxiom || s.Kind == KindAssumption || s.Kind == KindProgram:
			s.Status = AssumedProven
		case s.Kind == KindLemma && s.Direction == Backward:
			s.Status = Ignored
		default:
			s.Status = ToProveLater
		}
	case Backward:
		switch {
		case s.Kind == KindAxiom || s.Kind == KindAssumption || s.Kind == KindAssertion:
			s.Status = AssumedProven
		case s.Kind == KindLemma && s.Direction == Forward:
			s.Status = Ignored
		default:
			s.Status = ToProveLater
		}
	}
}

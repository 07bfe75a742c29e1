package translate

import (
	"github.com/gnolang/anthem/internal/asp"
	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

type HeadKind int

const (
	_ HeadKind = iota
	// HeadSingleAtom is a plain atom p(t1, ..., tn).
	HeadSingleAtom
	// HeadChoiceWithSingleAtom is an unguarded choice {p(t1, ..., tn)}.
	HeadChoiceWithSingleAtom
	// HeadIntegrityConstraint is #false or an empty head.
	HeadIntegrityConstraint
	// HeadTrivial is #true; such rules contribute nothing.
	HeadTrivial
)

func (k HeadKind) String() string {
	switch k {
	case HeadSingleAtom:
		return "single atom"
	case HeadChoiceWithSingleAtom:
		return "choice with single atom"
	case HeadIntegrityConstraint:
		return "integrity constraint"
	case HeadTrivial:
		return "trivial"
	default:
		return "unknown"
	}
}

type HeadAtom struct {
	Decl *fol.PredicateDeclaration
	Args []asp.Term
}

// HeadType is the classification of a rule head. Atom is only set for
// HeadSingleAtom and HeadChoiceWithSingleAtom.
type HeadType struct {
	Kind HeadKind
	Atom HeadAtom
}

func determineHeadType(head asp.Head, registry *fol.Registry) (HeadType, error) {
	headAtom := func(term asp.Term, what string) (HeadAtom, error) {
		function, ok := term.(asp.Function)
		if !ok || function.External {
			return HeadAtom{}, errors.NewUnsupportedLanguageFeature("elements other than atoms in " + what)
		}
		return HeadAtom{
			Decl: registry.FindOrCreatePredicateDeclaration(function.Name, len(function.Args)),
			Args: function.Args,
		}, nil
	}

	switch head := head.(type) {
	case nil:
		return HeadType{Kind: HeadIntegrityConstraint}, nil

	case asp.LiteralHead:
		if head.Literal.Sign != asp.SignNone {
			return HeadType{}, errors.NewUnsupportedLanguageFeature("negated head literals")
		}

		var term asp.Term
		switch atom := head.Literal.Atom.(type) {
		case asp.BooleanAtom:
			if atom.Value {
				return HeadType{Kind: HeadTrivial}, nil
			}
			return HeadType{Kind: HeadIntegrityConstraint}, nil
		case asp.SymbolicAtom:
			term = atom.Term
		default:
			return HeadType{}, errors.NewUnsupportedLanguageFeature("elements other than terms in rule head")
		}

		atom, err := headAtom(term, "rule head")
		if err != nil {
			return HeadType{}, err
		}
		return HeadType{Kind: HeadSingleAtom, Atom: atom}, nil

	case asp.AggregateHead:
		if head.LeftGuard != nil || head.RightGuard != nil {
			return HeadType{}, errors.NewUnsupportedLanguageFeature("aggregates with guards")
		}
		if len(head.Elements) != 1 {
			return HeadType{}, errors.NewUnsupportedLanguageFeature("aggregates not containing exactly one element")
		}

		element := head.Elements[0]
		if len(element.Condition) > 0 {
			return HeadType{}, errors.NewUnsupportedLanguageFeature("conditional literals in aggregates")
		}
		if element.Literal.Sign != asp.SignNone {
			return HeadType{}, errors.NewUnsupportedLanguageFeature("negated literals in aggregates")
		}

		symbolic, ok := element.Literal.Atom.(asp.SymbolicAtom)
		if !ok {
			return HeadType{}, errors.NewUnsupportedLanguageFeature("elements other than terms in aggregates")
		}

		atom, err := headAtom(symbolic.Term, "aggregates")
		if err != nil {
			return HeadType{}, err
		}
		return HeadType{Kind: HeadChoiceWithSingleAtom, Atom: atom}, nil

	default:
		return HeadType{}, errors.NewUnsupportedLanguageFeature("elements other than literals and aggregates in rule head")
	}
}

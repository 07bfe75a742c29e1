package output

import (
	"strconv"
	"strings"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// HumanReadable renders f in the notation accepted by the specification
// parser, naming variables with a fresh Namer.
func HumanReadable(r *fol.Registry, f fol.Formula) (string, error) {
	p := &humanPrinter{namer: NewNamer(r)}
	if err := p.formula(f); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

// HumanReadableTerm renders t. Variables are named with n.
func HumanReadableTerm(n *Namer, t fol.Term) (string, error) {
	p := &humanPrinter{namer: n}
	if err := p.term(t); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

type humanPrinter struct {
	namer *Namer
	b     strings.Builder
}

// formula precedence, lower binds tighter
func formulaPrecedence(f fol.Formula) int {
	switch f.(type) {
	case fol.PredicateFormula, fol.CompareFormula, fol.BooleanFormula:
		return 0
	case fol.NotFormula, fol.ExistsFormula, fol.ForAllFormula:
		return 1
	case fol.AndFormula:
		return 2
	case fol.OrFormula:
		return 3
	case fol.ImpliesFormula:
		return 4
	case fol.IffFormula:
		return 5
	default:
		return 6
	}
}

func (p *humanPrinter) child(f fol.Formula, parens bool) error {
	if parens {
		p.b.WriteByte('(')
	}
	if err := p.formula(f); err != nil {
		return err
	}
	if parens {
		p.b.WriteByte(')')
	}
	return nil
}

func (p *humanPrinter) connective(args []fol.Formula, parent int, separator, empty string) error {
	if len(args) == 0 {
		p.b.WriteString(empty)
		return nil
	}
	for i, arg := range args {
		if i > 0 {
			p.b.WriteString(separator)
		}
		if err := p.child(arg, formulaPrecedence(arg) >= parent); err != nil {
			return err
		}
	}
	return nil
}

func (p *humanPrinter) quantifier(keyword string, params []fol.VariableID, arg fol.Formula) error {
	p.b.WriteString(keyword)
	for _, v := range params {
		name, err := p.namer.Name(v)
		if err != nil {
			return err
		}
		p.b.WriteByte(' ')
		p.b.WriteString(name)
	}
	p.b.WriteByte(' ')
	// a bare comparison would start with a variable and extend the list
	_, compare := arg.(fol.CompareFormula)
	return p.child(arg, compare || formulaPrecedence(arg) > 1)
}

func (p *humanPrinter) formula(f fol.Formula) error {
	switch f := f.(type) {
	case fol.BooleanFormula:
		if f.Value {
			p.b.WriteString("#true")
		} else {
			p.b.WriteString("#false")
		}
	case fol.PredicateFormula:
		p.b.WriteString(f.Decl.Name)
		return p.arguments(f.Args)
	case fol.CompareFormula:
		if err := p.term(f.Left); err != nil {
			return err
		}
		p.b.WriteString(" " + f.Op.String() + " ")
		return p.term(f.Right)
	case fol.NotFormula:
		p.b.WriteString("not ")
		return p.child(f.Arg, formulaPrecedence(f.Arg) > 1)
	case fol.ExistsFormula:
		return p.quantifier("exists", f.Params, f.Arg)
	case fol.ForAllFormula:
		return p.quantifier("forall", f.Params, f.Arg)
	case fol.AndFormula:
		return p.connective(f.Args, 2, " and ", "#true")
	case fol.OrFormula:
		return p.connective(f.Args, 3, " or ", "#false")
	case fol.IffFormula:
		return p.connective(f.Args, 5, " <-> ", "#true")
	case fol.ImpliesFormula:
		if err := p.child(f.Antecedent, formulaPrecedence(f.Antecedent) >= 4); err != nil {
			return err
		}
		p.b.WriteString(" -> ")
		return p.child(f.Implication, formulaPrecedence(f.Implication) >= 4)
	default:
		return errors.NewLogic("unknown formula")
	}
	return nil
}

func (p *humanPrinter) arguments(args []fol.Term) error {
	if len(args) == 0 {
		return nil
	}
	p.b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		if err := p.term(arg); err != nil {
			return err
		}
	}
	p.b.WriteByte(')')
	return nil
}

func termPrecedence(t fol.Term) int {
	switch t := t.(type) {
	case fol.UnaryTerm:
		if t.Op == fol.OpAbsoluteValue {
			return 0
		}
		return 1
	case fol.BinaryTerm:
		switch t.Op {
		case fol.OpExponentiate:
			return 2
		case fol.OpMultiply, fol.OpDivide, fol.OpModulo:
			return 3
		default:
			return 4
		}
	case fol.IntervalTerm:
		return 5
	case fol.IntegerTerm:
		if t.Value < 0 {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func (p *humanPrinter) subterm(t fol.Term, parens bool) error {
	if parens {
		p.b.WriteByte('(')
	}
	if err := p.term(t); err != nil {
		return err
	}
	if parens {
		p.b.WriteByte(')')
	}
	return nil
}

func (p *humanPrinter) term(t fol.Term) error {
	switch t := t.(type) {
	case fol.IntegerTerm:
		p.b.WriteString(strconv.FormatInt(int64(t.Value), 10))
	case fol.BooleanTerm:
		if t.Value {
			p.b.WriteString("#true")
		} else {
			p.b.WriteString("#false")
		}
	case fol.StringTerm:
		p.b.WriteString(strconv.Quote(t.Value))
	case fol.SpecialIntegerTerm:
		if t.Value == fol.Infimum {
			p.b.WriteString("#inf")
		} else {
			p.b.WriteString("#sup")
		}
	case fol.VariableTerm:
		name, err := p.namer.Name(t.Decl)
		if err != nil {
			return err
		}
		p.b.WriteString(name)
	case fol.FunctionTerm:
		p.b.WriteString(t.Decl.Name)
		return p.arguments(t.Args)
	case fol.UnaryTerm:
		if t.Op == fol.OpAbsoluteValue {
			p.b.WriteByte('|')
			if err := p.term(t.Arg); err != nil {
				return err
			}
			p.b.WriteByte('|')
			return nil
		}
		p.b.WriteByte('-')
		return p.subterm(t.Arg, termPrecedence(t.Arg) > 0)
	case fol.BinaryTerm:
		precedence := termPrecedence(t)
		// exponentiation associates to the right, everything else to the left
		leftParens := termPrecedence(t.Left) > precedence
		rightParens := termPrecedence(t.Right) >= precedence
		if t.Op == fol.OpExponentiate {
			leftParens = termPrecedence(t.Left) >= precedence
			rightParens = termPrecedence(t.Right) > precedence
		}
		if err := p.subterm(t.Left, leftParens); err != nil {
			return err
		}
		p.b.WriteString(" " + t.Op.String() + " ")
		return p.subterm(t.Right, rightParens)
	case fol.IntervalTerm:
		if err := p.subterm(t.From, termPrecedence(t.From) >= 5); err != nil {
			return err
		}
		p.b.WriteString("..")
		return p.subterm(t.To, termPrecedence(t.To) >= 5)
	default:
		return errors.NewLogic("unknown term")
	}
	return nil
}

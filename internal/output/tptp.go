package output

import (
	"strconv"
	"strings"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// TPTP renders f as a TFF formula, naming variables with a fresh Namer.
// Strings, division, modulo, exponentiation and absolute values have no
// encoding and are reported as UnsupportedLanguageFeature.
func TPTP(r *fol.Registry, f fol.Formula) (string, error) {
	p := &tptpPrinter{registry: r, namer: NewNamer(r)}
	if err := p.formula(f); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

type tptpPrinter struct {
	registry *fol.Registry
	namer    *Namer
	b        strings.Builder
}

func domainType(d fol.Domain) string {
	if d == fol.DomainInteger {
		return "$int"
	}
	return "object"
}

func (p *tptpPrinter) formula(f fol.Formula) error {
	switch f := f.(type) {
	case fol.BooleanFormula:
		if f.Value {
			p.b.WriteString("$true")
		} else {
			p.b.WriteString("$false")
		}
	case fol.PredicateFormula:
		p.b.WriteString(f.Decl.Name)
		return p.arguments(f.Args)
	case fol.CompareFormula:
		return p.compare(f)
	case fol.NotFormula:
		// an infix equation cannot follow ~ directly
		if c, ok := f.Arg.(fol.CompareFormula); ok && (c.Op == fol.Equal || c.Op == fol.NotEqual) {
			p.b.WriteString("~(")
			if err := p.formula(f.Arg); err != nil {
				return err
			}
			p.b.WriteByte(')')
			return nil
		}
		p.b.WriteByte('~')
		return p.formula(f.Arg)
	case fol.ExistsFormula:
		return p.quantifier("?", f.Params, f.Arg)
	case fol.ForAllFormula:
		return p.quantifier("!", f.Params, f.Arg)
	case fol.AndFormula:
		return p.connective(f.Args, " & ", "$true")
	case fol.OrFormula:
		return p.connective(f.Args, " | ", "$false")
	case fol.ImpliesFormula:
		return p.connective([]fol.Formula{f.Antecedent, f.Implication}, " => ", "")
	case fol.IffFormula:
		return p.iff(f.Args)
	default:
		return errors.NewLogic("unknown formula")
	}
	return nil
}

func (p *tptpPrinter) connective(args []fol.Formula, separator, empty string) error {
	switch len(args) {
	case 0:
		p.b.WriteString(empty)
		return nil
	case 1:
		return p.formula(args[0])
	}
	p.b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			p.b.WriteString(separator)
		}
		if err := p.formula(arg); err != nil {
			return err
		}
	}
	p.b.WriteByte(')')
	return nil
}

// iff writes a chain of equivalences as the conjunction of its neighbouring
// pairs, since TPTP's <=> is binary and non-associative.
func (p *tptpPrinter) iff(args []fol.Formula) error {
	switch len(args) {
	case 0:
		p.b.WriteString("$true")
		return nil
	case 1:
		return p.formula(args[0])
	}

	p.b.WriteByte('(')
	for i := 0; i+1 < len(args); i++ {
		if i > 0 {
			p.b.WriteString(" & ")
		}
		if len(args) > 2 {
			p.b.WriteByte('(')
		}
		if err := p.formula(args[i]); err != nil {
			return err
		}
		p.b.WriteString(" <=> ")
		if err := p.formula(args[i+1]); err != nil {
			return err
		}
		if len(args) > 2 {
			p.b.WriteByte(')')
		}
	}
	p.b.WriteByte(')')
	return nil
}

func (p *tptpPrinter) quantifier(symbol string, params []fol.VariableID, arg fol.Formula) error {
	if len(params) == 0 {
		return p.formula(arg)
	}
	p.b.WriteString(symbol + "[")
	for i, v := range params {
		if i > 0 {
			p.b.WriteString(", ")
		}
		name, err := p.namer.Name(v)
		if err != nil {
			return err
		}
		domain, err := p.namer.Domain(v)
		if err != nil {
			return err
		}
		p.b.WriteString(name + ": " + domainType(domain))
	}
	p.b.WriteString("]: ")
	return p.formula(arg)
}

var (
	arithmeticComparisons = map[fol.ComparisonOperator]string{
		fol.Less:           "$less",
		fol.LessOrEqual:    "$lesseq",
		fol.Greater:        "$greater",
		fol.GreaterOrEqual: "$greatereq",
	}
	objectComparisons = map[fol.ComparisonOperator]string{
		fol.Less:           "p__less__",
		fol.LessOrEqual:    "p__less_equal__",
		fol.Greater:        "p__greater__",
		fol.GreaterOrEqual: "p__greater_equal__",
	}
)

// compare picks the integer comparison when both sides are arithmetic and
// the order predicates on objects otherwise. In the mixed case the
// arithmetic side is embedded with f__integer__.
func (p *tptpPrinter) compare(f fol.CompareFormula) error {
	leftArithmetic, err := p.registry.IsTermArithmetic(f.Left)
	if err != nil {
		return err
	}
	rightArithmetic, err := p.registry.IsTermArithmetic(f.Right)
	if err != nil {
		return err
	}

	mixed := leftArithmetic != rightArithmetic
	side := func(t fol.Term, arithmetic bool) error {
		if mixed && arithmetic {
			p.b.WriteString("f__integer__(")
			defer p.b.WriteByte(')')
		}
		return p.term(t)
	}

	switch f.Op {
	case fol.Equal, fol.NotEqual:
		if err := side(f.Left, leftArithmetic); err != nil {
			return err
		}
		p.b.WriteString(" " + f.Op.String() + " ")
		return side(f.Right, rightArithmetic)
	}

	name, ok := objectComparisons[f.Op]
	if leftArithmetic && rightArithmetic {
		name, ok = arithmeticComparisons[f.Op]
	}
	if !ok {
		return errors.NewLogic("unknown comparison operator")
	}

	p.b.WriteString(name + "(")
	if err := side(f.Left, leftArithmetic); err != nil {
		return err
	}
	p.b.WriteString(", ")
	if err := side(f.Right, rightArithmetic); err != nil {
		return err
	}
	p.b.WriteByte(')')
	return nil
}

func (p *tptpPrinter) arguments(args []fol.Term) error {
	if len(args) == 0 {
		return nil
	}
	p.b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			p.b.WriteString(", ")
		}
		if err := p.object(arg); err != nil {
			return err
		}
	}
	p.b.WriteByte(')')
	return nil
}

// object prints t where an object is expected, embedding arithmetic terms
// with f__integer__.
func (p *tptpPrinter) object(t fol.Term) error {
	var arithmetic bool
	// applications have the declared result sort
	if f, ok := t.(fol.FunctionTerm); ok && len(f.Args) > 0 {
		arithmetic = f.Decl.Domain == fol.DomainInteger
	} else {
		var err error
		if arithmetic, err = p.registry.IsTermArithmetic(t); err != nil {
			return err
		}
	}
	if !arithmetic {
		return p.term(t)
	}
	p.b.WriteString("f__integer__(")
	if err := p.term(t); err != nil {
		return err
	}
	p.b.WriteByte(')')
	return nil
}

func (p *tptpPrinter) term(t fol.Term) error {
	switch t := t.(type) {
	case fol.IntegerTerm:
		if t.Value < 0 {
			p.b.WriteString("$uminus(" + strconv.FormatInt(-int64(t.Value), 10) + ")")
		} else {
			p.b.WriteString(strconv.FormatInt(int64(t.Value), 10))
		}
	case fol.SpecialIntegerTerm:
		if t.Value == fol.Infimum {
			p.b.WriteString("c__infimum__")
		} else {
			p.b.WriteString("c__supremum__")
		}
	case fol.BooleanTerm:
		if t.Value {
			p.b.WriteString("$true")
		} else {
			p.b.WriteString("$false")
		}
	case fol.StringTerm:
		return errors.NewUnsupportedLanguageFeature("strings in TPTP output")
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
		if t.Op != fol.OpNegative {
			return errors.NewUnsupportedLanguageFeature("absolute value in TPTP output")
		}
		p.b.WriteString("$uminus(")
		if err := p.term(t.Arg); err != nil {
			return err
		}
		p.b.WriteByte(')')
	case fol.BinaryTerm:
		var name string
		switch t.Op {
		case fol.OpAdd:
			name = "$sum"
		case fol.OpSubtract:
			name = "$difference"
		case fol.OpMultiply:
			name = "$product"
		default:
			return errors.NewUnsupportedLanguageFeature("binary operator " + t.Op.String() + " in TPTP output")
		}
		p.b.WriteString(name + "(")
		if err := p.term(t.Left); err != nil {
			return err
		}
		p.b.WriteString(", ")
		if err := p.term(t.Right); err != nil {
			return err
		}
		p.b.WriteByte(')')
	case fol.IntervalTerm:
		return errors.NewLogic("intervals cannot occur in formulas")
	default:
		return errors.NewLogic("unknown term")
	}
	return nil
}

// PredicateType is the TFF type declaration of d, e.g. "p: (object * object) > $o".
func PredicateType(d *fol.PredicateDeclaration) string {
	if d.Arity == 0 {
		return d.Name + ": $o"
	}
	return d.Name + ": (" + strings.TrimSuffix(strings.Repeat("object * ", d.Arity), " * ") + ") > $o"
}

// FunctionType is the TFF type declaration of d.
func FunctionType(d *fol.FunctionDeclaration) string {
	if d.Arity == 0 {
		return d.Name + ": " + domainType(d.Domain)
	}
	return d.Name + ": (" + strings.TrimSuffix(strings.Repeat("object * ", d.Arity), " * ") + ") > " + domainType(d.Domain)
}

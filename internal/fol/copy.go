package fol

// CopyFormula returns a deep copy of f in which every bound variable is
// replaced by a fresh declaration of the same name and domain. Free
// variables are shared with f.
func (r *Registry) CopyFormula(f Formula) Formula {
	c := copier{registry: r, renamed: make(map[VariableID]VariableID)}
	return c.formula(f)
}

type copier struct {
	registry *Registry
	renamed  map[VariableID]VariableID
}

func (c *copier) bind(params []VariableID) []VariableID {
	out := make([]VariableID, len(params))
	for i, p := range params {
		fresh := c.registry.CloneVariable(p)
		c.renamed[p] = fresh
		out[i] = fresh
	}
	return out
}

func (c *copier) formulas(args []Formula) []Formula {
	out := make([]Formula, len(args))
	for i, arg := range args {
		out[i] = c.formula(arg)
	}
	return out
}

func (c *copier) formula(f Formula) Formula {
	switch f := f.(type) {
	case AndFormula:
		return AndFormula{Args: c.formulas(f.Args)}
	case OrFormula:
		return OrFormula{Args: c.formulas(f.Args)}
	case IffFormula:
		return IffFormula{Args: c.formulas(f.Args)}
	case ImpliesFormula:
		return ImpliesFormula{Antecedent: c.formula(f.Antecedent), Implication: c.formula(f.Implication)}
	case NotFormula:
		return NotFormula{Arg: c.formula(f.Arg)}
	case ExistsFormula:
		params := c.bind(f.Params)
		return ExistsFormula{Params: params, Arg: c.formula(f.Arg)}
	case ForAllFormula:
		params := c.bind(f.Params)
		return ForAllFormula{Params: params, Arg: c.formula(f.Arg)}
	case CompareFormula:
		return CompareFormula{Op: f.Op, Left: c.term(f.Left), Right: c.term(f.Right)}
	case PredicateFormula:
		return PredicateFormula{Decl: f.Decl, Args: c.terms(f.Args)}
	default:
		return f
	}
}

func (c *copier) terms(ts []Term) []Term {
	if ts == nil {
		return nil
	}
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = c.term(t)
	}
	return out
}

func (c *copier) term(t Term) Term {
	switch t := t.(type) {
	case VariableTerm:
		if fresh, ok := c.renamed[t.Decl]; ok {
			return VariableTerm{Decl: fresh}
		}
		return t
	case BinaryTerm:
		return BinaryTerm{Op: t.Op, Left: c.term(t.Left), Right: c.term(t.Right)}
	case UnaryTerm:
		return UnaryTerm{Op: t.Op, Arg: c.term(t.Arg)}
	case FunctionTerm:
		return FunctionTerm{Decl: t.Decl, Args: c.terms(t.Args)}
	case IntervalTerm:
		return IntervalTerm{From: c.term(t.From), To: c.term(t.To)}
	default:
		return t
	}
}

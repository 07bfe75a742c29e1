package fol

// TermContainsVariable reports whether v occurs anywhere in t.
func TermContainsVariable(t Term, v VariableID) bool {
	switch t := t.(type) {
	case VariableTerm:
		return t.Decl == v
	case BinaryTerm:
		return TermContainsVariable(t.Left, v) || TermContainsVariable(t.Right, v)
	case UnaryTerm:
		return TermContainsVariable(t.Arg, v)
	case FunctionTerm:
		for _, arg := range t.Args {
			if TermContainsVariable(arg, v) {
				return true
			}
		}
		return false
	case IntervalTerm:
		return TermContainsVariable(t.From, v) || TermContainsVariable(t.To, v)
	default:
		return false
	}
}

// FormulaContainsPredicate reports whether an atom of p occurs in f.
func FormulaContainsPredicate(f Formula, p *PredicateDeclaration) bool {
	found := false
	VisitPredicates(f, func(atom PredicateFormula, _ Sign) {
		if atom.Decl == p {
			found = true
		}
	})
	return found
}

// CollectPredicates returns the distinct predicates occurring in f in
// order of first occurrence.
func CollectPredicates(f Formula) []*PredicateDeclaration {
	var out []*PredicateDeclaration
	seen := make(map[*PredicateDeclaration]bool)
	VisitPredicates(f, func(atom PredicateFormula, _ Sign) {
		if !seen[atom.Decl] {
			seen[atom.Decl] = true
			out = append(out, atom.Decl)
		}
	})
	return out
}

// VisitPredicates calls fn for every atom in f together with the polarity
// it occurs under. Negation and implication antecedents flip polarity;
// arguments of an equivalence occur under both.
func VisitPredicates(f Formula, fn func(PredicateFormula, Sign)) {
	visitPredicates(f, OnlyPositive, fn)
}

func flip(s Sign) Sign {
	switch s {
	case OnlyPositive:
		return OnlyNegative
	case OnlyNegative:
		return OnlyPositive
	default:
		return s
	}
}

func visitPredicates(f Formula, polarity Sign, fn func(PredicateFormula, Sign)) {
	switch f := f.(type) {
	case PredicateFormula:
		fn(f, polarity)
	case AndFormula:
		for _, arg := range f.Args {
			visitPredicates(arg, polarity, fn)
		}
	case OrFormula:
		for _, arg := range f.Args {
			visitPredicates(arg, polarity, fn)
		}
	case IffFormula:
		for _, arg := range f.Args {
			visitPredicates(arg, PositiveAndNegative, fn)
		}
	case ImpliesFormula:
		visitPredicates(f.Antecedent, flip(polarity), fn)
		visitPredicates(f.Implication, polarity, fn)
	case NotFormula:
		visitPredicates(f.Arg, flip(polarity), fn)
	case ExistsFormula:
		visitPredicates(f.Arg, polarity, fn)
	case ForAllFormula:
		visitPredicates(f.Arg, polarity, fn)
	}
}

// FreeVariables returns the variables occurring free in f in order of
// first occurrence.
func FreeVariables(f Formula) []VariableID {
	var out []VariableID
	seen := make(map[VariableID]bool)
	bound := make(map[VariableID]int)

	var visitTerm func(Term)
	visitTerm = func(t Term) {
		switch t := t.(type) {
		case VariableTerm:
			if bound[t.Decl] == 0 && !seen[t.Decl] {
				seen[t.Decl] = true
				out = append(out, t.Decl)
			}
		case BinaryTerm:
			visitTerm(t.Left)
			visitTerm(t.Right)
		case UnaryTerm:
			visitTerm(t.Arg)
		case FunctionTerm:
			for _, arg := range t.Args {
				visitTerm(arg)
			}
		case IntervalTerm:
			visitTerm(t.From)
			visitTerm(t.To)
		}
	}

	var visit func(Formula)
	quantified := func(params []VariableID, arg Formula) {
		for _, p := range params {
			bound[p]++
		}
		visit(arg)
		for _, p := range params {
			bound[p]--
		}
	}
	visit = func(f Formula) {
		switch f := f.(type) {
		case AndFormula:
			for _, arg := range f.Args {
				visit(arg)
			}
		case OrFormula:
			for _, arg := range f.Args {
				visit(arg)
			}
		case IffFormula:
			for _, arg := range f.Args {
				visit(arg)
			}
		case ImpliesFormula:
			visit(f.Antecedent)
			visit(f.Implication)
		case NotFormula:
			visit(f.Arg)
		case ExistsFormula:
			quantified(f.Params, f.Arg)
		case ForAllFormula:
			quantified(f.Params, f.Arg)
		case CompareFormula:
			visitTerm(f.Left)
			visitTerm(f.Right)
		case PredicateFormula:
			for _, arg := range f.Args {
				visitTerm(arg)
			}
		}
	}

	visit(f)
	return out
}

// ReplaceVariableInTerm substitutes with for every occurrence of v in t.
func ReplaceVariableInTerm(t Term, v VariableID, with Term) Term {
	switch t := t.(type) {
	case VariableTerm:
		if t.Decl == v {
			return with
		}
		return t
	case BinaryTerm:
		return BinaryTerm{Op: t.Op, Left: ReplaceVariableInTerm(t.Left, v, with), Right: ReplaceVariableInTerm(t.Right, v, with)}
	case UnaryTerm:
		return UnaryTerm{Op: t.Op, Arg: ReplaceVariableInTerm(t.Arg, v, with)}
	case FunctionTerm:
		return FunctionTerm{Decl: t.Decl, Args: replaceVariableInTerms(t.Args, v, with)}
	case IntervalTerm:
		return IntervalTerm{From: ReplaceVariableInTerm(t.From, v, with), To: ReplaceVariableInTerm(t.To, v, with)}
	default:
		return t
	}
}

func replaceVariableInTerms(ts []Term, v VariableID, with Term) []Term {
	if ts == nil {
		return nil
	}
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = ReplaceVariableInTerm(t, v, with)
	}
	return out
}

// ReplaceVariableInFormula substitutes with for every free occurrence of v in f.
func ReplaceVariableInFormula(f Formula, v VariableID, with Term) Formula {
	replaceAll := func(args []Formula) []Formula {
		out := make([]Formula, len(args))
		for i, arg := range args {
			out[i] = ReplaceVariableInFormula(arg, v, with)
		}
		return out
	}

	switch f := f.(type) {
	case AndFormula:
		return AndFormula{Args: replaceAll(f.Args)}
	case OrFormula:
		return OrFormula{Args: replaceAll(f.Args)}
	case IffFormula:
		return IffFormula{Args: replaceAll(f.Args)}
	case ImpliesFormula:
		return ImpliesFormula{
			Antecedent:  ReplaceVariableInFormula(f.Antecedent, v, with),
			Implication: ReplaceVariableInFormula(f.Implication, v, with),
		}
	case NotFormula:
		return NotFormula{Arg: ReplaceVariableInFormula(f.Arg, v, with)}
	case ExistsFormula:
		if containsVariable(f.Params, v) {
			return f
		}
		return ExistsFormula{Params: f.Params, Arg: ReplaceVariableInFormula(f.Arg, v, with)}
	case ForAllFormula:
		if containsVariable(f.Params, v) {
			return f
		}
		return ForAllFormula{Params: f.Params, Arg: ReplaceVariableInFormula(f.Arg, v, with)}
	case CompareFormula:
		return CompareFormula{Op: f.Op, Left: ReplaceVariableInTerm(f.Left, v, with), Right: ReplaceVariableInTerm(f.Right, v, with)}
	case PredicateFormula:
		return PredicateFormula{Decl: f.Decl, Args: replaceVariableInTerms(f.Args, v, with)}
	default:
		return f
	}
}

func containsVariable(ids []VariableID, v VariableID) bool {
	for _, id := range ids {
		if id == v {
			return true
		}
	}
	return false
}

// ReplacePredicate rebuilds f with every atom of p replaced by the result of
// replace, which receives the atom's arguments.
func ReplacePredicate(f Formula, p *PredicateDeclaration, replace func(args []Term) (Formula, error)) (Formula, error) {
	replaceAll := func(args []Formula) ([]Formula, error) {
		out := make([]Formula, len(args))
		for i, arg := range args {
			r, err := ReplacePredicate(arg, p, replace)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	}

	switch f := f.(type) {
	case PredicateFormula:
		if f.Decl == p {
			return replace(f.Args)
		}
		return f, nil
	case AndFormula:
		args, err := replaceAll(f.Args)
		if err != nil {
			return nil, err
		}
		return AndFormula{Args: args}, nil
	case OrFormula:
		args, err := replaceAll(f.Args)
		if err != nil {
			return nil, err
		}
		return OrFormula{Args: args}, nil
	case IffFormula:
		args, err := replaceAll(f.Args)
		if err != nil {
			return nil, err
		}
		return IffFormula{Args: args}, nil
	case ImpliesFormula:
		antecedent, err := ReplacePredicate(f.Antecedent, p, replace)
		if err != nil {
			return nil, err
		}
		implication, err := ReplacePredicate(f.Implication, p, replace)
		if err != nil {
			return nil, err
		}
		return ImpliesFormula{Antecedent: antecedent, Implication: implication}, nil
	case NotFormula:
		arg, err := ReplacePredicate(f.Arg, p, replace)
		if err != nil {
			return nil, err
		}
		return NotFormula{Arg: arg}, nil
	case ExistsFormula:
		arg, err := ReplacePredicate(f.Arg, p, replace)
		if err != nil {
			return nil, err
		}
		return ExistsFormula{Params: f.Params, Arg: arg}, nil
	case ForAllFormula:
		arg, err := ReplacePredicate(f.Arg, p, replace)
		if err != nil {
			return nil, err
		}
		return ForAllFormula{Params: f.Params, Arg: arg}, nil
	default:
		return f, nil
	}
}

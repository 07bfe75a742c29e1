package fol

// Formula is a first-order formula.
type Formula interface {
	isFormula()
}

type ComparisonOperator int

const (
	_ ComparisonOperator = iota
	Less
	LessOrEqual
	Greater
	GreaterOrEqual
	Equal
	NotEqual
)

func (op ComparisonOperator) String() string {
	switch op {
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	case Equal:
		return "="
	case NotEqual:
		return "!="
	default:
		return "?"
	}
}

// AndFormula is an n-ary conjunction. With no arguments it is true.
type AndFormula struct {
	Args []Formula
}

// OrFormula is an n-ary disjunction. With no arguments it is false.
type OrFormula struct {
	Args []Formula
}

// IffFormula is an n-ary chain of equivalences.
type IffFormula struct {
	Args []Formula
}

type ImpliesFormula struct {
	Antecedent  Formula
	Implication Formula
}

type NotFormula struct {
	Arg Formula
}

type ExistsFormula struct {
	Params []VariableID
	Arg    Formula
}

type ForAllFormula struct {
	Params []VariableID
	Arg    Formula
}

type CompareFormula struct {
	Op    ComparisonOperator
	Left  Term
	Right Term
}

type PredicateFormula struct {
	Decl *PredicateDeclaration
	Args []Term
}

type BooleanFormula struct {
	Value bool
}

func (AndFormula) isFormula()       {}
func (OrFormula) isFormula()        {}
func (IffFormula) isFormula()       {}
func (ImpliesFormula) isFormula()   {}
func (NotFormula) isFormula()       {}
func (ExistsFormula) isFormula()    {}
func (ForAllFormula) isFormula()    {}
func (CompareFormula) isFormula()   {}
func (PredicateFormula) isFormula() {}
func (BooleanFormula) isFormula()   {}

func And(args ...Formula) Formula {
	return AndFormula{Args: args}
}

func Or(args ...Formula) Formula {
	return OrFormula{Args: args}
}

func Iff(args ...Formula) Formula {
	return IffFormula{Args: args}
}

func Implies(antecedent, implication Formula) Formula {
	return ImpliesFormula{Antecedent: antecedent, Implication: implication}
}

func Not(arg Formula) Formula {
	return NotFormula{Arg: arg}
}

func Exists(params []VariableID, arg Formula) Formula {
	return ExistsFormula{Params: params, Arg: arg}
}

func ForAll(params []VariableID, arg Formula) Formula {
	return ForAllFormula{Params: params, Arg: arg}
}

func Compare(op ComparisonOperator, left, right Term) Formula {
	return CompareFormula{Op: op, Left: left, Right: right}
}

func Equals(left, right Term) Formula {
	return CompareFormula{Op: Equal, Left: left, Right: right}
}

func Predicate(decl *PredicateDeclaration, args ...Term) Formula {
	return PredicateFormula{Decl: decl, Args: args}
}

func True() Formula {
	return BooleanFormula{Value: true}
}

func False() Formula {
	return BooleanFormula{Value: false}
}

// OpenFormula is a formula together with the variables that are still free in it.
type OpenFormula struct {
	FreeVariables []VariableID
	Formula       Formula
}

// ExistentialClosure binds the free variables of f existentially.
// It is the identity when there are none.
func ExistentialClosure(f OpenFormula) Formula {
	if len(f.FreeVariables) == 0 {
		return f.Formula
	}
	return Exists(f.FreeVariables, f.Formula)
}

// UniversalClosure binds the free variables of f universally.
// It is the identity when there are none.
func UniversalClosure(f OpenFormula) Formula {
	if len(f.FreeVariables) == 0 {
		return f.Formula
	}
	return ForAll(f.FreeVariables, f.Formula)
}

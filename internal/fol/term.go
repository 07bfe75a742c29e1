package fol

// Term is a first-order term.
type Term interface {
	isTerm()
}

type BinaryOperator int

const (
	_ BinaryOperator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpExponentiate
)

func (op BinaryOperator) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpModulo:
		return "\\"
	case OpExponentiate:
		return "**"
	default:
		return "?"
	}
}

type UnaryOperator int

const (
	_ UnaryOperator = iota
	OpNegative
	OpAbsoluteValue
)

type SpecialInteger int

const (
	_ SpecialInteger = iota
	Infimum
	Supremum
)

type BinaryTerm struct {
	Op    BinaryOperator
	Left  Term
	Right Term
}

type UnaryTerm struct {
	Op  UnaryOperator
	Arg Term
}

type IntegerTerm struct {
	Value int32
}

type BooleanTerm struct {
	Value bool
}

type StringTerm struct {
	Value string
}

type SpecialIntegerTerm struct {
	Value SpecialInteger
}

type FunctionTerm struct {
	Decl *FunctionDeclaration
	Args []Term
}

type VariableTerm struct {
	Decl VariableID
}

type IntervalTerm struct {
	From Term
	To   Term
}

func (BinaryTerm) isTerm()         {}
func (UnaryTerm) isTerm()          {}
func (IntegerTerm) isTerm()        {}
func (BooleanTerm) isTerm()        {}
func (StringTerm) isTerm()         {}
func (SpecialIntegerTerm) isTerm() {}
func (FunctionTerm) isTerm()       {}
func (VariableTerm) isTerm()       {}
func (IntervalTerm) isTerm()       {}

func Var(id VariableID) Term {
	return VariableTerm{Decl: id}
}

func Int(v int32) Term {
	return IntegerTerm{Value: v}
}

func Constant(decl *FunctionDeclaration) Term {
	return FunctionTerm{Decl: decl}
}

func Add(l, r Term) Term {
	return BinaryTerm{Op: OpAdd, Left: l, Right: r}
}

func Multiply(l, r Term) Term {
	return BinaryTerm{Op: OpMultiply, Left: l, Right: r}
}

func Negative(t Term) Term {
	return UnaryTerm{Op: OpNegative, Arg: t}
}

// Vars turns variable handles into variable terms. It returns nil for no handles.
func Vars(ids []VariableID) []Term {
	if len(ids) == 0 {
		return nil
	}
	out := make([]Term, len(ids))
	for i, id := range ids {
		out[i] = Var(id)
	}
	return out
}

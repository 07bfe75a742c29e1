package asp

import (
	"fmt"
	"strings"
)

// Sign is the default-negation prefix of a literal.
type Sign int

const (
	SignNone Sign = iota
	SignNegation
	SignDoubleNegation
)

func (s Sign) String() string {
	switch s {
	case SignNegation:
		return "not "
	case SignDoubleNegation:
		return "not not "
	default:
		return ""
	}
}

// Term is a term of a logic program.
type Term interface {
	isTerm()
	String() string
}

type BinaryOperator int

const (
	_ BinaryOperator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpPower
	OpBitAnd
	OpBitOr
	OpBitXor
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
	case OpPower:
		return "**"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "?"
	case OpBitXor:
		return "^"
	default:
		return "?"
	}
}

type UnaryOperator int

const (
	_ UnaryOperator = iota
	OpMinus
	OpAbsolute
	OpBitNegation
)

// Number is an integer literal.
type Number struct {
	Value int32
}

// String is a quoted string literal.
type String struct {
	Value string
}

// Infimum is #inf.
type Infimum struct{}

// Supremum is #sup.
type Supremum struct{}

// Variable is a named variable; "_" is anonymous.
type Variable struct {
	Name string
}

// Function is a symbolic constant (no arguments) or a function term.
// External functions are written @name(...).
type Function struct {
	Name     string
	Args     []Term
	External bool
}

type BinaryOperation struct {
	Op    BinaryOperator
	Left  Term
	Right Term
}

type UnaryOperation struct {
	Op  UnaryOperator
	Arg Term
}

type Interval struct {
	From Term
	To   Term
}

// Pool is a semicolon-separated alternative of terms, as in p(1;2).
type Pool struct {
	Args []Term
}

func (Number) isTerm()          {}
func (String) isTerm()          {}
func (Infimum) isTerm()         {}
func (Supremum) isTerm()        {}
func (Variable) isTerm()        {}
func (Function) isTerm()        {}
func (BinaryOperation) isTerm() {}
func (UnaryOperation) isTerm()  {}
func (Interval) isTerm()        {}
func (Pool) isTerm()            {}

func (t Number) String() string   { return fmt.Sprintf("%d", t.Value) }
func (t String) String() string   { return fmt.Sprintf("%q", t.Value) }
func (Infimum) String() string    { return "#inf" }
func (Supremum) String() string   { return "#sup" }
func (t Variable) String() string { return t.Name }

func (t Function) String() string {
	name := t.Name
	if t.External {
		name = "@" + name
	}
	if len(t.Args) == 0 {
		return name
	}
	return name + "(" + joinTerms(t.Args, ", ") + ")"
}

func (t BinaryOperation) String() string {
	return "(" + t.Left.String() + " " + t.Op.String() + " " + t.Right.String() + ")"
}

func (t UnaryOperation) String() string {
	switch t.Op {
	case OpAbsolute:
		return "|" + t.Arg.String() + "|"
	case OpBitNegation:
		return "~" + t.Arg.String()
	default:
		return "-" + t.Arg.String()
	}
}

func (t Interval) String() string { return t.From.String() + ".." + t.To.String() }
func (t Pool) String() string     { return "(" + joinTerms(t.Args, "; ") + ")" }

func joinTerms(ts []Term, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}

// ComparisonOperator relates two terms in a comparison literal.
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

// Atom is what a literal asserts.
type Atom interface {
	isAtom()
	String() string
}

// BooleanAtom is #true or #false.
type BooleanAtom struct {
	Value bool
}

// SymbolicAtom is an atom p(t1, ..., tn); its term is normally a Function.
type SymbolicAtom struct {
	Term Term
}

type ComparisonAtom struct {
	Op    ComparisonOperator
	Left  Term
	Right Term
}

func (BooleanAtom) isAtom()    {}
func (SymbolicAtom) isAtom()   {}
func (ComparisonAtom) isAtom() {}

func (a BooleanAtom) String() string {
	if a.Value {
		return "#true"
	}
	return "#false"
}

func (a SymbolicAtom) String() string { return a.Term.String() }

func (a ComparisonAtom) String() string {
	return a.Left.String() + " " + a.Op.String() + " " + a.Right.String()
}

// Literal is a possibly negated atom.
type Literal struct {
	Sign Sign
	Atom Atom
}

func (l Literal) String() string {
	return l.Sign.String() + l.Atom.String()
}

// ConditionalLiteral is an aggregate element `literal : condition`.
type ConditionalLiteral struct {
	Literal   Literal
	Condition []Literal
}

func (c ConditionalLiteral) String() string {
	if len(c.Condition) == 0 {
		return c.Literal.String()
	}
	parts := make([]string, len(c.Condition))
	for i, l := range c.Condition {
		parts[i] = l.String()
	}
	return c.Literal.String() + " : " + strings.Join(parts, ", ")
}

// Guard bounds an aggregate, as in `1 { ... }` or `{ ... } <= 2`.
type Guard struct {
	Op   ComparisonOperator
	Term Term
}

// Head is the head of a rule.
type Head interface {
	isHead()
	String() string
}

// LiteralHead is a plain literal head. Integrity constraints have the
// head #false.
type LiteralHead struct {
	Literal Literal
}

// AggregateHead is a choice head `{ e1; ...; en }` with optional guards.
type AggregateHead struct {
	LeftGuard  *Guard
	RightGuard *Guard
	Elements   []ConditionalLiteral
}

// DisjunctionHead is a disjunctive head `a ; b`.
type DisjunctionHead struct {
	Elements []ConditionalLiteral
}

func (LiteralHead) isHead()     {}
func (AggregateHead) isHead()   {}
func (DisjunctionHead) isHead() {}

func (h LiteralHead) String() string { return h.Literal.String() }

func (h AggregateHead) String() string {
	parts := make([]string, len(h.Elements))
	for i, e := range h.Elements {
		parts[i] = e.String()
	}
	s := "{" + strings.Join(parts, "; ") + "}"
	if h.LeftGuard != nil {
		s = h.LeftGuard.Term.String() + " " + h.LeftGuard.Op.String() + " " + s
	}
	if h.RightGuard != nil {
		s = s + " " + h.RightGuard.Op.String() + " " + h.RightGuard.Term.String()
	}
	return s
}

func (h DisjunctionHead) String() string {
	parts := make([]string, len(h.Elements))
	for i, e := range h.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}

// BodyElement is what a body literal contains.
type BodyElement interface {
	isBodyElement()
	String() string
}

// BodyAggregate is an aggregate in a rule body, as in `#count { ... } > 1`.
type BodyAggregate struct {
	Function string
	Elements []ConditionalLiteral
}

func (Literal) isBodyElement()            {}
func (BodyAggregate) isBodyElement()      {}
func (ConditionalLiteral) isBodyElement() {}

func (a BodyAggregate) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "#" + a.Function + " { " + strings.Join(parts, "; ") + " }"
}

// BodyLiteral is an element of a rule body. Sign is the negation applied to
// the element as a whole (as for negated aggregates); negation of an atom
// is carried by the Literal itself.
type BodyLiteral struct {
	Sign    Sign
	Element BodyElement
}

func (b BodyLiteral) String() string {
	return b.Sign.String() + b.Element.String()
}

// Rule is a logic-program rule `head :- body.`.
type Rule struct {
	Head Head
	Body []BodyLiteral

	// Line is the source line the rule starts on, zero if unknown.
	Line int
}

func (r Rule) String() string {
	if len(r.Body) == 0 {
		return r.Head.String() + "."
	}
	parts := make([]string, len(r.Body))
	for i, b := range r.Body {
		parts[i] = b.String()
	}
	return r.Head.String() + " :- " + strings.Join(parts, ", ") + "."
}

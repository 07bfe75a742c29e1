package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the error variant. Each kind carries its own payload
// fields on Error and is rendered by a single switch in Error().
type Kind int

const (
	_ Kind = iota
	Logic
	UnsupportedLanguageFeature
	NotYetImplemented
	ReadFile

	// specification grammar
	ExpectedStatement
	ExpectedColon
	UnknownStatement
	UnmatchedParenthesis
	MissingStatementTerminator
	ExpectedIdentifier
	ExpectedPredicateSpecifier
	UnknownProofDirection
	UnknownDomainIdentifier
	UnknownColorChoice
	ParseFormula
	ParseProgram

	// semantic
	VariableNameNotAllowed
	InconsistentDomain
	FormulaNotClosed
	NoCompletedDefinitionFound
	CannotHidePredicate
	PrivatePredicateCycle
	PredicateShouldNotOccurInSpecification
	PrivatePredicateDependingOnPublicPredicate

	// prover integration
	WriteTPTPProgram
	RunProver
	ProveProgram
	ParseProverOutput

	Configuration
)

func (k Kind) String() string {
	switch k {
	case Logic:
		return "Logic"
	case UnsupportedLanguageFeature:
		return "UnsupportedLanguageFeature"
	case NotYetImplemented:
		return "NotYetImplemented"
	case ReadFile:
		return "ReadFile"
	case ExpectedStatement:
		return "ExpectedStatement"
	case ExpectedColon:
		return "ExpectedColon"
	case UnknownStatement:
		return "UnknownStatement"
	case UnmatchedParenthesis:
		return "UnmatchedParenthesis"
	case MissingStatementTerminator:
		return "MissingStatementTerminator"
	case ExpectedIdentifier:
		return "ExpectedIdentifier"
	case ExpectedPredicateSpecifier:
		return "ExpectedPredicateSpecifier"
	case UnknownProofDirection:
		return "UnknownProofDirection"
	case UnknownDomainIdentifier:
		return "UnknownDomainIdentifier"
	case UnknownColorChoice:
		return "UnknownColorChoice"
	case ParseFormula:
		return "ParseFormula"
	case ParseProgram:
		return "ParseProgram"
	case VariableNameNotAllowed:
		return "VariableNameNotAllowed"
	case InconsistentDomain:
		return "InconsistentDomain"
	case FormulaNotClosed:
		return "FormulaNotClosed"
	case NoCompletedDefinitionFound:
		return "NoCompletedDefinitionFound"
	case CannotHidePredicate:
		return "CannotHidePredicate"
	case PrivatePredicateCycle:
		return "PrivatePredicateCycle"
	case PredicateShouldNotOccurInSpecification:
		return "PredicateShouldNotOccurInSpecification"
	case PrivatePredicateDependingOnPublicPredicate:
		return "PrivatePredicateDependingOnPublicPredicate"
	case WriteTPTPProgram:
		return "WriteTPTPProgram"
	case RunProver:
		return "RunProver"
	case ProveProgram:
		return "ProveProgram"
	case ParseProverOutput:
		return "ParseProverOutput"
	case Configuration:
		return "Configuration"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by every fallible operation of the
// translator and the proof orchestrator.
type Error struct {
	Kind Kind

	// Message is the free-form description carried by Logic,
	// UnsupportedLanguageFeature, NotYetImplemented, ParseFormula,
	// ParseProgram and Configuration errors.
	Message string

	// Path is set for ReadFile.
	Path string

	// Name is the offending identifier, token or predicate name.
	Name  string
	Arity int

	// Line and Column locate specification and program parse errors.
	// Zero means unknown.
	Line   int
	Column int

	// FreeVariables lists the names reported by FormulaNotClosed.
	FreeVariables []string

	// Dependency is the public predicate reported by
	// PrivatePredicateDependingOnPublicPredicate.
	Dependency string

	// ExitCode, Stdout and Stderr describe a failed prover run.
	ExitCode int
	Stdout   string
	Stderr   string

	Cause error
}

func (e *Error) Error() string {
	var msg string

	switch e.Kind {
	case Logic:
		msg = fmt.Sprintf("logic error, please report to bug tracker (%s)", e.Message)
	case UnsupportedLanguageFeature:
		msg = fmt.Sprintf("language feature not yet supported (%s)", e.Message)
	case NotYetImplemented:
		msg = fmt.Sprintf("not yet implemented (%s)", e.Message)
	case ReadFile:
		msg = fmt.Sprintf("could not read file “%s”", e.Path)
	case ExpectedStatement:
		msg = e.located("expected statement")
	case ExpectedColon:
		msg = e.located("expected ‘:’")
	case UnknownStatement:
		msg = e.located(fmt.Sprintf("unknown statement “%s”", e.Name))
	case UnmatchedParenthesis:
		msg = e.located("unmatched parenthesis")
	case MissingStatementTerminator:
		msg = e.located("statement not terminated with ‘.’ character")
	case ExpectedIdentifier:
		msg = e.located("expected constant or predicate specifier")
	case ExpectedPredicateSpecifier:
		msg = e.located("expected predicate specifier")
	case UnknownProofDirection:
		msg = e.located(fmt.Sprintf("unknown proof direction “%s”", e.Name))
	case UnknownDomainIdentifier:
		msg = e.located(fmt.Sprintf("unknown domain “%s”", e.Name))
	case UnknownColorChoice:
		msg = fmt.Sprintf("unknown color choice “%s”", e.Name)
	case ParseFormula:
		msg = e.located(fmt.Sprintf("could not parse formula (%s)", e.Message))
	case ParseProgram:
		msg = e.located(fmt.Sprintf("could not parse program (%s)", e.Message))
	case VariableNameNotAllowed:
		msg = fmt.Sprintf("variable name “%s” not allowed (program variables must start with X, Y, or Z and integer variables with I, J, K, L, M, or N)", e.Name)
	case InconsistentDomain:
		msg = fmt.Sprintf("inconsistent domain for variable “%s” (%s)", e.Name, e.Message)
	case FormulaNotClosed:
		msg = fmt.Sprintf("formula may not contain free variables (free variables in this formula: %s)", strings.Join(e.FreeVariables, ", "))
	case NoCompletedDefinitionFound:
		msg = fmt.Sprintf("no completed definition found for %s/%d", e.Name, e.Arity)
	case CannotHidePredicate:
		msg = fmt.Sprintf("cannot hide predicate %s/%d (the completed definition transitively depends on itself)", e.Name, e.Arity)
	case PrivatePredicateCycle:
		msg = fmt.Sprintf("program is not supertight (private predicate %s/%d transitively depends on itself)", e.Name, e.Arity)
	case PredicateShouldNotOccurInSpecification:
		msg = fmt.Sprintf("%s/%d should not occur in specification because it’s a private predicate (consider declaring it an input or output predicate)", e.Name, e.Arity)
	case PrivatePredicateDependingOnPublicPredicate:
		msg = fmt.Sprintf("private predicate %s/%d should not depend on public predicate %s", e.Name, e.Arity, e.Dependency)
	case WriteTPTPProgram:
		msg = "error writing TPTP program"
	case RunProver:
		msg = "could not run the prover"
	case ProveProgram:
		code := "unknown"
		if e.ExitCode >= 0 {
			code = fmt.Sprintf("%d", e.ExitCode)
		}
		msg = fmt.Sprintf("error proving program (exit code: %s)\n==== stdout ====\n%s\n==== stderr ====\n%s", code, e.Stdout, e.Stderr)
	case ParseProverOutput:
		msg = fmt.Sprintf("could not parse prover output\n==== stdout ====\n%s\n==== stderr ====\n%s", e.Stdout, e.Stderr)
	case Configuration:
		msg = fmt.Sprintf("invalid configuration (%s)", e.Message)
	default:
		msg = "unknown error"
	}

	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) located(msg string) string {
	if e.Line == 0 {
		return msg
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, msg)
}

// WithCause attaches an underlying error and returns e.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// At attaches a source location and returns e.
func (e *Error) At(line, column int) *Error {
	e.Line = line
	e.Column = column
	return e
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	if e.Kind == kind {
		return true
	}
	return e.Cause != nil && IsKind(e.Cause, kind)
}

func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

func NewLogic(msg string) *Error {
	return &Error{Kind: Logic, Message: msg}
}

func NewUnsupportedLanguageFeature(desc string) *Error {
	return &Error{Kind: UnsupportedLanguageFeature, Message: desc}
}

func NewNotYetImplemented(desc string) *Error {
	return &Error{Kind: NotYetImplemented, Message: desc}
}

func NewReadFile(path string, cause error) *Error {
	return &Error{Kind: ReadFile, Path: path, Cause: cause}
}

func NewParseFormula(msg string) *Error {
	return &Error{Kind: ParseFormula, Message: msg}
}

func NewParseProgram(msg string) *Error {
	return &Error{Kind: ParseProgram, Message: msg}
}

func NewVariableNameNotAllowed(name string) *Error {
	return &Error{Kind: VariableNameNotAllowed, Name: name}
}

func NewInconsistentDomain(name, detail string) *Error {
	return &Error{Kind: InconsistentDomain, Name: name, Message: detail}
}

func NewFormulaNotClosed(freeVariables []string) *Error {
	return &Error{Kind: FormulaNotClosed, FreeVariables: freeVariables}
}

func NewNoCompletedDefinitionFound(name string, arity int) *Error {
	return &Error{Kind: NoCompletedDefinitionFound, Name: name, Arity: arity}
}

func NewCannotHidePredicate(name string, arity int) *Error {
	return &Error{Kind: CannotHidePredicate, Name: name, Arity: arity}
}

func NewPrivatePredicateCycle(name string, arity int) *Error {
	return &Error{Kind: PrivatePredicateCycle, Name: name, Arity: arity}
}

func NewPredicateShouldNotOccurInSpecification(name string, arity int) *Error {
	return &Error{Kind: PredicateShouldNotOccurInSpecification, Name: name, Arity: arity}
}

func NewPrivatePredicateDependingOnPublicPredicate(name string, arity int, dependency string) *Error {
	return &Error{Kind: PrivatePredicateDependingOnPublicPredicate, Name: name, Arity: arity, Dependency: dependency}
}

func NewWriteTPTPProgram(cause error) *Error {
	return &Error{Kind: WriteTPTPProgram, Cause: cause}
}

func NewRunProver(cause error) *Error {
	return &Error{Kind: RunProver, Cause: cause}
}

// NewProveProgram reports a prover that exited unsuccessfully for a reason
// other than the time limit. exitCode is -1 when the process was killed by
// a signal.
func NewProveProgram(exitCode int, stdout, stderr string) *Error {
	return &Error{Kind: ProveProgram, ExitCode: exitCode, Stdout: stdout, Stderr: stderr}
}

func NewParseProverOutput(stdout, stderr string) *Error {
	return &Error{Kind: ParseProverOutput, Stdout: stdout, Stderr: stderr}
}

func NewConfiguration(msg string) *Error {
	return &Error{Kind: Configuration, Message: msg}
}

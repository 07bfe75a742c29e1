package fol

import (
	"strings"

	"github.com/gnolang/anthem/internal/errors"
)

// Domain is the sort a variable or constant ranges over.
type Domain int

const (
	// DomainUnknown marks a variable whose domain has not been assigned yet.
	DomainUnknown Domain = iota
	DomainProgram
	DomainInteger
)

func (d Domain) String() string {
	switch d {
	case DomainProgram:
		return "program"
	case DomainInteger:
		return "integer"
	default:
		return "unknown"
	}
}

// DomainForVariableName derives the domain of a user-defined variable from
// its first character after any leading underscores.
func DomainForVariableName(name string) (Domain, error) {
	trimmed := strings.TrimLeft(name, "_")
	if trimmed == "" {
		return DomainUnknown, errors.NewVariableNameNotAllowed(name)
	}

	switch trimmed[0] {
	case 'X', 'Y', 'Z':
		return DomainProgram, nil
	case 'I', 'J', 'K', 'L', 'M', 'N':
		return DomainInteger, nil
	default:
		return DomainUnknown, errors.NewVariableNameNotAllowed(name)
	}
}

// Sign records under which polarity one predicate depends on another.
type Sign int

const (
	OnlyPositive Sign = iota + 1
	OnlyNegative
	PositiveAndNegative
)

func (s Sign) String() string {
	switch s {
	case OnlyPositive:
		return "positive"
	case OnlyNegative:
		return "negative"
	case PositiveAndNegative:
		return "positive and negative"
	default:
		return "none"
	}
}

// Join returns the least upper bound of two signs. The zero Sign acts as
// bottom, so Join(0, s) == s.
func Join(a, b Sign) Sign {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	if a == b {
		return a
	}
	return PositiveAndNegative
}

// IsPositive reports whether s includes a positive occurrence.
func (s Sign) IsPositive() bool {
	return s == OnlyPositive || s == PositiveAndNegative
}

// IsNegative reports whether s includes a negative occurrence.
func (s Sign) IsNegative() bool {
	return s == OnlyNegative || s == PositiveAndNegative
}

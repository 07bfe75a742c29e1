package output

import (
	"fmt"
	"strings"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/fol"
)

// Format selects how formulas are rendered.
type Format int

const (
	FormatHumanReadable Format = iota
	FormatTPTP
)

func (f Format) String() string {
	switch f {
	case FormatTPTP:
		return "tptp"
	default:
		return "human-readable"
	}
}

// ParseFormat accepts the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "human-readable", "human":
		return FormatHumanReadable, nil
	case "tptp":
		return FormatTPTP, nil
	default:
		return 0, errors.NewConfiguration(fmt.Sprintf("unknown output format “%s”", s))
	}
}

// Formula renders f in the given format.
func Formula(format Format, r *fol.Registry, f fol.Formula) (string, error) {
	if format == FormatTPTP {
		return TPTP(r, f)
	}
	return HumanReadable(r, f)
}

// Namer assigns printable names to variables in order of first appearance:
// X1, X2, ... for program variables and N1, N2, ... for integer variables.
type Namer struct {
	registry *fol.Registry
	names    map[fol.VariableID]string
	program  int
	integer  int
}

func NewNamer(r *fol.Registry) *Namer {
	return &Namer{registry: r, names: make(map[fol.VariableID]string)}
}

// Name returns the name of v, assigning one on first use.
func (n *Namer) Name(v fol.VariableID) (string, error) {
	if name, ok := n.names[v]; ok {
		return name, nil
	}

	domain, ok := n.registry.VariableDomain(v)
	if !ok {
		return "", errors.NewLogic("unspecified domain of variable " + n.registry.VariableLabel(v))
	}

	var name string
	switch domain {
	case fol.DomainInteger:
		n.integer++
		name = fmt.Sprintf("N%d", n.integer)
	default:
		n.program++
		name = fmt.Sprintf("X%d", n.program)
	}
	n.names[v] = name
	return name, nil
}

// Domain returns the domain of v.
func (n *Namer) Domain(v fol.VariableID) (fol.Domain, error) {
	domain, ok := n.registry.VariableDomain(v)
	if !ok {
		return 0, errors.NewLogic("unspecified domain of variable " + n.registry.VariableLabel(v))
	}
	return domain, nil
}

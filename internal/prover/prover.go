package prover

import (
	"bytes"
	"context"
	goerrors "errors"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gnolang/anthem/internal/errors"
)

// Outcome is the verdict of one prover run.
type Outcome int

const (
	_ Outcome = iota
	Proven
	NotProven
	Disproven
)

func (o Outcome) String() string {
	switch o {
	case Proven:
		return "proven"
	case NotProven:
		return "not proven"
	case Disproven:
		return "disproven"
	default:
		return "unknown"
	}
}

// Result is the classified output of a prover run. Seconds is only
// meaningful when Timed is set.
type Result struct {
	Outcome Outcome
	Seconds float64
	Timed   bool
}

// Prover decides whether the conjecture of a TPTP problem follows from its
// axioms.
type Prover interface {
	Prove(ctx context.Context, problem string) (Result, error)
}

// Options configures the Vampire runner.
type Options struct {
	// Command is the executable, looked up in PATH.
	Command   string
	Arguments []string
	// TimeLimit is passed to the prover as --time_limit. Zero omits it.
	TimeLimit time.Duration
}

func DefaultOptions() Options {
	return Options{
		Command:   "vampire",
		Arguments: []string{"--mode", "casc", "--cores", "8"},
		TimeLimit: 300 * time.Second,
	}
}

// Args returns the full argument list passed to the prover.
func (o Options) Args() []string {
	args := append([]string(nil), o.Arguments...)
	if o.TimeLimit > 0 {
		args = append(args, "--time_limit", strconv.Itoa(int(o.TimeLimit.Seconds())))
	}
	return args
}

// Vampire runs the vampire theorem prover as a subprocess, writing the
// problem to its standard input.
type Vampire struct {
	options Options
	logger  *zap.Logger
}

func NewVampire(options Options, logger *zap.Logger) *Vampire {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Vampire{options: options, logger: logger}
}

// Fingerprint identifies the prover configuration, for caching.
func (v *Vampire) Fingerprint() string {
	return v.options.Command + " " + strings.Join(v.options.Args(), " ")
}

func (v *Vampire) Prove(ctx context.Context, problem string) (Result, error) {
	args := v.options.Args()
	v.logger.Debug("running prover", zap.String("command", v.options.Command), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, v.options.Command, args...)
	cmd.Stdin = strings.NewReader(problem)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !goerrors.As(err, &exitErr) {
			return Result{}, errors.NewRunProver(err)
		}
		if ctx.Err() != nil {
			return Result{}, errors.NewRunProver(ctx.Err())
		}
		exitCode = exitErr.ExitCode()
	}

	result, err := Classify(exitCode, stdout.String(), stderr.String())
	if err != nil {
		return Result{}, err
	}

	v.logger.Info("prover finished",
		zap.Stringer("status", result.Outcome),
		zap.Float64("seconds", result.Seconds),
	)
	return result, nil
}

var (
	proofNotFoundPattern = regexp.MustCompile(`% (?:\(\d+\))?Proof not found in time`)
	successTimePattern   = regexp.MustCompile(`% (?:\(\d+\))?Success in time (\d+(?:\.\d+)?) s`)
	refutationPattern    = regexp.MustCompile(`% (?:\(\d+\))?Termination reason: Refutation\b`)
	satisfiablePattern   = regexp.MustCompile(`% (?:\(\d+\))?Termination reason: Satisfiable\b`)
)

// Classify maps vampire's exit code and output to a Result. A nonzero exit
// is only accepted when the prover ran out of time; any other failure is a
// ProveProgram error. Output without a known termination reason is a
// ParseProverOutput error.
func Classify(exitCode int, stdout, stderr string) (Result, error) {
	if exitCode != 0 {
		if proofNotFoundPattern.MatchString(stdout) {
			return Result{Outcome: NotProven}, nil
		}
		return Result{}, errors.NewProveProgram(exitCode, stdout, stderr)
	}

	var result Result
	if m := successTimePattern.FindStringSubmatch(stdout); m != nil {
		if seconds, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.Seconds = seconds
			result.Timed = true
		}
	}

	switch {
	case refutationPattern.MatchString(stdout):
		result.Outcome = Proven
	case satisfiablePattern.MatchString(stdout):
		result.Outcome = Disproven
	case proofNotFoundPattern.MatchString(stdout):
		result.Outcome = NotProven
	default:
		return Result{}, errors.NewParseProverOutput(stdout, stderr)
	}
	return result, nil
}

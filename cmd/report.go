package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/gnolang/anthem/internal/problem"
	"github.com/gnolang/anthem/internal/prover"
)

var (
	directionStyle = color.New(color.FgCyan, color.Bold)
	sectionStyle   = color.New(color.FgBlue, color.Bold)
	assumedStyle   = color.New(color.Faint)
	provenStyle    = color.New(color.FgGreen, color.Bold)
	failedStyle    = color.New(color.FgRed, color.Bold)
)

// terminalReporter prints the progress of a proof. With a progress bar only
// the bar and failed statements are shown.
type terminalReporter struct {
	w        io.Writer
	progress bool
	bar      *progressbar.ProgressBar
	formula  string
}

func newTerminalReporter(w io.Writer, progress bool) *terminalReporter {
	return &terminalReporter{w: w, progress: progress}
}

func (r *terminalReporter) DirectionStarted(direction problem.ProofDirection, pending int) {
	fmt.Fprintln(r.w, directionStyle.Sprintf("performing %s proof", direction))

	if r.progress {
		r.bar = progressbar.NewOptions(pending,
			progressbar.OptionSetWriter(r.w),
			progressbar.OptionSetDescription(direction.String()),
			progressbar.OptionEnableColorCodes(!color.NoColor),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}
}

func (r *terminalReporter) StatementAssumed(section problem.SectionKind, _ *problem.Statement, formula string) {
	if r.progress {
		return
	}
	fmt.Fprintf(r.w, "  - %s %s\n", assumedStyle.Sprintf("assuming %s:", section.Singular()), formula)
}

func (r *terminalReporter) StatementStarted(section problem.SectionKind, _ *problem.Statement, formula string) {
	r.formula = fmt.Sprintf("%s: %s", section.Singular(), formula)
	if r.progress {
		r.bar.Describe("verifying " + section.Singular())
		return
	}
	fmt.Fprintf(r.w, "  - %s %s\n", sectionStyle.Sprintf("verifying %s:", section.Singular()), formula)
}

func (r *terminalReporter) StatementFinished(_ problem.SectionKind, s *problem.Statement, result prover.Result) {
	if r.progress {
		_ = r.bar.Add(1)
		if s.Status == problem.Proven {
			return
		}
		_ = r.bar.Clear()
		fmt.Fprintf(r.w, "  - %s\n", r.formula)
	}

	switch {
	case s.Status == problem.Proven && result.Timed:
		fmt.Fprintf(r.w, "    → %s\n", provenStyle.Sprintf("statement proven in %.2f seconds", result.Seconds))
	case s.Status == problem.Proven:
		fmt.Fprintf(r.w, "    → %s\n", provenStyle.Sprint("statement proven"))
	default:
		fmt.Fprintf(r.w, "    → %s\n", failedStyle.Sprintf("statement %s", s.Status))
	}
}

func (r *terminalReporter) DirectionFinished(direction problem.ProofDirection, status problem.ProofStatus) {
	if r.bar != nil {
		_ = r.bar.Finish()
		fmt.Fprintln(r.w)
		r.bar = nil
	}

	style := provenStyle
	if status != problem.Proven {
		style = failedStyle
	}
	fmt.Fprintf(r.w, "%s %s\n\n", directionStyle.Sprintf("%s proof:", direction), style.Sprint(status))
}

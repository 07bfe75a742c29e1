package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/problem"
	"github.com/gnolang/anthem/internal/prover"
	"github.com/gnolang/anthem/internal/verify"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestTerminalReporter(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminalReporter(&buf, false)

	axiom := problem.NewStatement(problem.KindAxiom, nil)
	lemma := problem.NewStatement(problem.KindLemma, nil)
	assertion := problem.NewStatement(problem.KindAssertion, nil)

	r.DirectionStarted(problem.Forward, 2)
	r.StatementAssumed(problem.Axioms, axiom, "p")
	r.StatementStarted(problem.Lemmas, lemma, "q")
	lemma.Status = problem.Proven
	r.StatementFinished(problem.Lemmas, lemma, prover.Result{Outcome: prover.Proven, Seconds: 0.5, Timed: true})
	r.StatementStarted(problem.Assertions, assertion, "r")
	assertion.Status = problem.NotProven
	r.StatementFinished(problem.Assertions, assertion, prover.Result{Outcome: prover.NotProven})
	r.DirectionFinished(problem.Forward, problem.NotProven)

	assert.Equal(t, "performing forward proof\n"+
		"  - assuming axiom: p\n"+
		"  - verifying lemma: q\n"+
		"    → statement proven in 0.50 seconds\n"+
		"  - verifying assertion: r\n"+
		"    → statement not proven\n"+
		"forward proof: not proven\n\n", buf.String())
}

func TestTerminalReporterProgress(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminalReporter(&buf, true)

	s := problem.NewStatement(problem.KindAssertion, nil)
	r.DirectionStarted(problem.Backward, 1)
	r.StatementAssumed(problem.Axioms, s, "p")
	r.StatementStarted(problem.Assertions, s, "q")
	s.Status = problem.Disproven
	r.StatementFinished(problem.Assertions, s, prover.Result{Outcome: prover.Disproven})
	r.DirectionFinished(problem.Backward, problem.Disproven)

	out := buf.String()
	assert.NotContains(t, out, "assuming")
	assert.Contains(t, out, "  - assertion: q\n    → statement disproven\n")
	assert.Contains(t, out, "backward proof: disproven\n")
}

func TestVerifyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anthem.yaml")
	require.NoError(t, os.WriteFile(path, []byte("direction: backward\nprover:\n  time_limit: 10\n"), 0o644))

	cfgFile = path
	defer func() { cfgFile = "" }()

	config, err := verifyConfig(verifyCmd)
	require.NoError(t, err)
	assert.Equal(t, problem.Backward, config.ProofDirection())
	assert.Equal(t, 10, config.Prover.TimeLimit)

	require.NoError(t, verifyCmd.Flags().Set("direction", "forward"))
	require.NoError(t, verifyCmd.Flags().Set("time-limit", "20"))
	require.NoError(t, verifyCmd.Flags().Set("no-simplify", "true"))
	require.NoError(t, verifyCmd.Flags().Set("prover", "/opt/vampire"))
	defer func() {
		_ = verifyCmd.Flags().Set("direction", "")
		_ = verifyCmd.Flags().Set("no-simplify", "false")
		_ = verifyCmd.Flags().Set("prover", "")
	}()

	config, err = verifyConfig(verifyCmd)
	require.NoError(t, err)
	assert.Equal(t, problem.Forward, config.ProofDirection())
	assert.Equal(t, 20, config.Prover.TimeLimit)
	assert.False(t, config.Simplify)
	assert.Equal(t, "/opt/vampire", config.Prover.Command)
	assert.Equal(t, verify.ColorAuto, config.Color)

	require.NoError(t, verifyCmd.Flags().Set("direction", "sideways"))
	_, err = verifyConfig(verifyCmd)
	assert.True(t, errors.IsKind(err, errors.UnknownProofDirection))
}

func TestInitConfigurationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anthem.yaml")
	written, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	config, err := verify.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, verify.DefaultConfig(), config)

	_, err = initConfigurationFile(filepath.Join(t.TempDir(), "missing", "anthem.yaml"))
	assert.Error(t, err)
}

package verify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/anthem/internal/errors"
	"github.com/gnolang/anthem/internal/output"
	"github.com/gnolang/anthem/internal/problem"
	"github.com/gnolang/anthem/internal/prover"
)

type mockProver struct {
	mock.Mock
}

func (m *mockProver) Prove(ctx context.Context, problem string) (prover.Result, error) {
	args := m.Called(ctx, problem)
	return args.Get(0).(prover.Result), args.Error(1)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "anthem.yaml", `
prover:
  command: /opt/vampire
  arguments: [--mode, casc]
  time_limit: 60
cache:
  directory: /tmp/anthem
  max_age: 24h
simplify: false
color: never
direction: forward
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/vampire", config.Prover.Command)
	assert.Equal(t, []string{"--mode", "casc"}, config.Prover.Arguments)
	assert.Equal(t, 24*time.Hour, config.Cache.MaxAge)
	assert.False(t, config.Simplify)
	assert.Equal(t, ColorNever, config.Color)
	assert.Equal(t, problem.Forward, config.ProofDirection())

	options := config.ProverOptions()
	assert.Equal(t, time.Minute, options.TimeLimit)
	assert.Equal(t, []string{"--mode", "casc", "--time_limit", "60"}, options.Args())
}

func TestLoadConfigPartial(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "anthem.yaml", "prover:\n  time_limit: 5\n")
	config, err := LoadConfig(path)
	require.NoError(t, err)

	expected := DefaultConfig()
	expected.Prover.TimeLimit = 5
	assert.Equal(t, expected, config)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		kind    errors.Kind
	}{
		{"color", "color: sometimes\n", errors.UnknownColorChoice},
		{"direction", "direction: sideways\n", errors.UnknownProofDirection},
		{"unknown field", "prover:\n  timeout: 3\n", errors.Configuration},
		{"time limit", "prover:\n  time_limit: 0\n", errors.Configuration},
		{"command", "prover:\n  command: \"\"\n", errors.Configuration},
		{"max age", "cache:\n  max_age: -1s\n", errors.Configuration},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".yaml", tt.content)
		_, err := LoadConfig(path)
		assert.True(t, errors.IsKind(err, tt.kind), "%s: %v", tt.name, err)
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.IsKind(err, errors.ReadFile))
}

func TestWriteDefaultConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "anthem.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestParseColorChoice(t *testing.T) {
	t.Parallel()

	for _, c := range []ColorChoice{ColorAuto, ColorAlways, ColorNever} {
		parsed, err := ParseColorChoice(strings.ToUpper(string(c)))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseColorChoice("rainbow")
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.UnknownColorChoice, e.Kind)
	assert.Equal(t, "rainbow", e.Name)
}

func newPipeline(t *testing.T, pr prover.Prover) *Pipeline {
	t.Helper()
	p, err := NewPipeline(DefaultConfig(), nil, WithProver(pr))
	require.NoError(t, err)
	return p
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	pr, err := newPipeline(t, nil).Translate("p(X) :- q(X).\n:- p(1).")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pr.Write(&buf, output.FormatHumanReadable))
	rule := strings.Repeat("%", 72)
	assert.Equal(t,
		rule+"\n% completed definitions\n"+rule+"\n"+
			"% completed definition of p/1\nforall X1 (p(X1) <-> q(X1))\n"+
			"% completed definition of q/1\nforall X1 not q(X1)\n"+
			"\n"+rule+"\n% integrity constraints\n"+rule+"\n"+
			"not p(1)\n",
		buf.String())
}

func TestTranslateWithoutSimplification(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Simplify = false
	p, err := NewPipeline(config, nil, WithProver(new(mockProver)))
	require.NoError(t, err)

	pr, err := p.Translate("p(X) :- q(X).")
	require.NoError(t, err)

	statements := pr.Statements(problem.CompletedDefinitions)
	require.Len(t, statements, 2)
	formula, err := output.HumanReadable(pr.Registry(), statements[0].Formula)
	require.NoError(t, err)
	assert.Contains(t, formula, "exists")
}

const (
	program       = "p(X) :- r(X).\nr(X) :- q(X).\n"
	specification = "input: q/1.\noutput: p/1.\nassert: forall X (p(X) <-> q(X)).\n"
)

func TestProblemHidesPrivatePredicates(t *testing.T) {
	t.Parallel()

	pr, err := newPipeline(t, nil).Problem(program, specification)
	require.NoError(t, err)

	definitions := pr.Statements(problem.CompletedDefinitions)
	require.Len(t, definitions, 1)
	assert.Equal(t, "completed definition of p/1", definitions[0].Description)

	formula, err := output.HumanReadable(pr.Registry(), definitions[0].Formula)
	require.NoError(t, err)
	assert.Equal(t, "forall X1 (p(X1) <-> q(X1))", formula)

	assertions := pr.Statements(problem.Assertions)
	require.Len(t, assertions, 1)
	assert.Equal(t, problem.KindAssertion, assertions[0].Kind)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pr := new(mockProver)
	pr.On("Prove", ctx, mock.MatchedBy(func(problem string) bool {
		return strings.Contains(problem, ", conjecture, ")
	})).Return(prover.Result{Outcome: prover.Proven}, nil).Twice()

	status, err := newPipeline(t, pr).Verify(ctx, program, specification, problem.Both)
	require.NoError(t, err)
	assert.Equal(t, problem.Proven, status)
	pr.AssertExpectations(t)
}

func TestVerifyNotProven(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pr := new(mockProver)
	pr.On("Prove", ctx, mock.Anything).Return(prover.Result{Outcome: prover.NotProven}, nil).Once()

	status, err := newPipeline(t, pr).Verify(ctx, program, specification, problem.Forward)
	require.NoError(t, err)
	assert.Equal(t, problem.NotProven, status)
	pr.AssertExpectations(t)
}

func TestVerifyErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		program       string
		specification string
		kind          errors.Kind
	}{
		{"specification syntax", "p.", "axiom p.", errors.ExpectedColon},
		{"program syntax", "p(.", "", errors.ParseProgram},
		{"private predicate in assertion", program, "input: q/1.\noutput: p/1.\nassert: forall X (r(X) -> q(X)).", errors.PredicateShouldNotOccurInSpecification},
		{"private cycle", "p :- r.\nr :- not s.\ns :- not r.", "output: p/0.", errors.PrivatePredicateCycle},
	}

	for _, tt := range tests {
		pr := new(mockProver)
		_, err := newPipeline(t, pr).Verify(context.Background(), tt.program, tt.specification, problem.Forward)
		assert.True(t, errors.IsKind(err, tt.kind), "%s: %v", tt.name, err)
		pr.AssertNotCalled(t, "Prove", mock.Anything, mock.Anything)
	}
}

func TestVerifyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	programPath := writeFile(t, dir, "program.lp", program)
	specificationPath := writeFile(t, dir, "program.spec", specification)

	ctx := context.Background()
	pr := new(mockProver)
	pr.On("Prove", ctx, mock.Anything).Return(prover.Result{Outcome: prover.Proven}, nil).Once()

	status, err := newPipeline(t, pr).VerifyFiles(ctx, programPath, specificationPath, problem.Backward)
	require.NoError(t, err)
	assert.Equal(t, problem.Proven, status)

	_, err = newPipeline(t, pr).VerifyFiles(ctx, filepath.Join(dir, "missing.lp"), specificationPath, problem.Backward)
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.ReadFile, e.Kind)
	assert.Equal(t, filepath.Join(dir, "missing.lp"), e.Path)
}

func TestNewPipelineWithCache(t *testing.T) {
	t.Parallel()

	config := DefaultConfig()
	config.Cache.Directory = filepath.Join(t.TempDir(), "cache")

	p, err := NewPipeline(config, nil)
	require.NoError(t, err)
	_, ok := p.prover.(*prover.Cache)
	assert.True(t, ok)

	config.Cache.Directory = ""
	p, err = NewPipeline(config, nil)
	require.NoError(t, err)
	_, ok = p.prover.(*prover.Vampire)
	assert.True(t, ok)
}

func TestWatcherLoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "program.lp")

	var mu sync.Mutex
	runs := 0
	ran := make(chan struct{}, 4)
	w, err := NewWatcher([]string{watched}, func(context.Context) {
		mu.Lock()
		runs++
		mu.Unlock()
		ran <- struct{}{}
	}, nil)
	require.NoError(t, err)
	w.debounce = 200 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	done := make(chan error)
	go func() {
		done <- w.loop(ctx, events, errs)
	}()

	events <- fsnotify.Event{Name: filepath.Join(dir, "other.lp"), Op: fsnotify.Write}
	events <- fsnotify.Event{Name: watched, Op: fsnotify.Chmod}
	events <- fsnotify.Event{Name: watched, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: watched, Op: fsnotify.Write}

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not rerun")
	}

	errs <- assert.AnError
	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, runs)
}

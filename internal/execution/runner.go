package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"jtr/internal/domain"
	"jtr/internal/launch"
	"jtr/internal/parser"
)

// DefaultAttachDelay is how long after spawn the debugger-attach request
// is issued in debug mode.
const DefaultAttachDelay = 500 * time.Millisecond

// State of the process runner for one run.
type State int

// Runner states, in lifecycle order. Terminated is absorbing.
const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateDraining
	StateTerminated
)

// Attacher requests an external debugger session against a spawned
// process. Implementations must be safe to call fire-and-forget.
type Attacher interface {
	Attach(rootDir, host string, port int) error
}

// ResultSink is notified when a run's reconstructed outcomes change.
type ResultSink interface {
	ResultsChanged(outcomes []domain.TestOutcome)
}

// subprocess events, funneled through one channel so handler ordering
// matches OS event ordering.
type eventKind int

const (
	eventOut eventKind = iota
	eventErr
	eventClose
	eventExit
)

type procEvent struct {
	kind eventKind
	data string
	err  error
}

// Runner owns the subprocess lifecycle for one run at a time: spawn,
// stream output into the parser, optional delayed debugger attach, and
// guaranteed cleanup of the run's storage directory.
type Runner struct {
	guard       *Guard
	builder     *launch.Builder
	attacher    Attacher
	sink        ResultSink
	log         logrus.FieldLogger
	attachDelay time.Duration
	onOutcome   func(domain.TestOutcome)

	state State
}

// NewRunner creates a Runner. attacher and sink may be nil.
func NewRunner(guard *Guard, builder *launch.Builder, attacher Attacher, sink ResultSink, log logrus.FieldLogger) *Runner {
	return &Runner{
		guard:       guard,
		builder:     builder,
		attacher:    attacher,
		sink:        sink,
		log:         log,
		attachDelay: DefaultAttachDelay,
	}
}

// SetOnOutcome sets a callback invoked for every completed record in
// stream order (e.g. to drive a progress bar).
func (r *Runner) SetOnOutcome(fn func(domain.TestOutcome)) {
	r.onOutcome = fn
}

// State returns the runner's last observed lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run executes one request end to end. A second request while one is
// active returns ErrRunActive without touching the guard's flag. A nil
// result with a nil error means the launcher was not found and no
// process was started. Non-empty stderr output fails the run with the
// accumulated text even when the process exits cleanly.
func (r *Runner) Run(ctx context.Context, req *domain.RunRequest, javaBin string, entries []string, debugPort int) ([]domain.TestOutcome, error) {
	if !r.guard.TryAcquire() {
		return nil, ErrRunActive
	}
	defer r.guard.Release()
	r.state = StateStarting

	spec, err := r.builder.Build(javaBin, entries, req.SuiteNames(), req.StoragePath, debugPort, req.Debug)
	if err != nil {
		// Partial storage (e.g. a half-written manifest jar) is removed
		// before the error propagates; no process was spawned.
		r.removeStorage(req.StoragePath)
		r.state = StateIdle
		return nil, err
	}
	if spec == nil {
		r.state = StateIdle
		return nil, nil
	}

	outcomes, err := r.spawn(ctx, req, spec, debugPort)
	r.state = StateTerminated
	return outcomes, err
}

// spawn runs the subprocess and drives the event loop until exit.
func (r *Runner) spawn(ctx context.Context, req *domain.RunRequest, spec *domain.LaunchSpec, debugPort int) ([]domain.TestOutcome, error) {
	cmd := shellCommand(ctx, spec.CommandLine())
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		r.log.WithError(err).Error("failed to spawn test runner")
		r.removeStorage(req.StoragePath)
		return nil, fmt.Errorf("spawn test runner: %w", err)
	}
	r.state = StateRunning

	if req.Debug && r.attacher != nil {
		port := debugPort
		time.AfterFunc(r.attachDelay, func() {
			if err := r.attacher.Attach(req.Document, "localhost", port); err != nil {
				r.log.WithError(err).WithField("port", port).Error("debugger attach request failed")
			}
		})
	}

	events := make(chan procEvent)
	var readers sync.WaitGroup
	readers.Add(2)
	go r.pump(stdout, eventOut, events, &readers)
	go r.pump(stderr, eventErr, events, &readers)
	go func() {
		// All streams ended before exit is acted upon.
		readers.Wait()
		events <- procEvent{kind: eventClose}
		events <- procEvent{kind: eventExit, err: cmd.Wait()}
		close(events)
	}()

	streamParser := parser.NewStreamParser(r.onOutcome)
	var stderrText strings.Builder
	var outcomes []domain.TestOutcome
	var waitErr error

	for ev := range events {
		switch ev.kind {
		case eventOut:
			r.log.Debug(ev.data)
			streamParser.Feed(ev.data)
		case eventErr:
			r.log.Debug(ev.data)
			stderrText.WriteString(ev.data)
			streamParser.Feed(ev.data)
		case eventClose:
			r.state = StateDraining
			outcomes = reconcile(streamParser.Finalize(), req.Suites)
			if r.sink != nil {
				r.sink.ResultsChanged(outcomes)
			}
			go r.removeStorage(req.StoragePath)
		case eventExit:
			waitErr = ev.err
		}
	}

	if stderrText.Len() > 0 {
		return outcomes, errors.New(stderrText.String())
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			// A non-zero exit with a clean stderr is not a run failure;
			// the parsed outcomes carry the verdicts.
			r.log.WithField("code", exitErr.ExitCode()).Debug("test runner exited non-zero")
		} else {
			r.log.WithError(waitErr).Error("test runner wait failed")
			return outcomes, fmt.Errorf("wait for test runner: %w", waitErr)
		}
	}
	return outcomes, nil
}

// pump forwards raw chunks from one stream in arrival order.
func (r *Runner) pump(src io.Reader, kind eventKind, events chan<- procEvent, wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, 4096)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			events <- procEvent{kind: kind, data: string(buf[:n])}
		}
		if err != nil {
			return
		}
	}
}

// reconcile appends an incomplete outcome for every requested suite the
// stream never covered, so no request is silently dropped.
func reconcile(outcomes []domain.TestOutcome, requested []domain.TestSuite) []domain.TestOutcome {
	for _, suite := range requested {
		if covered(outcomes, suite.Name) {
			continue
		}
		outcomes = append(outcomes, domain.TestOutcome{
			Suite:  suite.Name,
			Status: domain.StatusIncomplete,
		})
	}
	return outcomes
}

// covered reports whether an outcome matches the suite name exactly or,
// for class-granularity suites, any of its methods.
func covered(outcomes []domain.TestOutcome, name string) bool {
	for _, o := range outcomes {
		if o.Suite == name || strings.HasPrefix(o.Suite, name+"#") {
			return true
		}
	}
	return false
}

// removeStorage deletes the run's storage directory. Failures are
// logged, never propagated, never retried.
func (r *Runner) removeStorage(path string) {
	if path == "" {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		r.log.WithError(err).WithField("dir", path).Error("failed to remove run storage")
	}
}

// shellCommand executes the joined command line through the platform shell.
func shellCommand(ctx context.Context, commandLine string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", commandLine)
	}
	return exec.CommandContext(ctx, "/bin/sh", "-c", commandLine)
}

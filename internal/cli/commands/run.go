package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jtr/internal/config"
	"jtr/internal/debugger"
	"jtr/internal/domain"
	"jtr/internal/execution"
	"jtr/internal/index"
	"jtr/internal/launch"
	"jtr/internal/storage"
	"jtr/internal/telemetry"
	"jtr/internal/ui"
)

// RunCommand handles the run and debug commands
type RunCommand struct {
	config    *config.Config
	index     *index.Index
	guard     *execution.Guard
	builder   *launch.Builder
	storage   storage.Storage
	formatter *ui.Formatter
	log       logrus.FieldLogger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	ix *index.Index,
	guard *execution.Guard,
	builder *launch.Builder,
	st storage.Storage,
	formatter *ui.Formatter,
	log logrus.FieldLogger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		index:     ix,
		guard:     guard,
		builder:   builder,
		storage:   st,
		formatter: formatter,
		log:       log,
	}
}

// storageSink persists reconstructed outcomes whenever they change, so
// the details renderer always sees the latest run.
type storageSink struct {
	storage storage.Storage
	start   time.Time
	debug   bool
	log     logrus.FieldLogger
}

func (s *storageSink) ResultsChanged(outcomes []domain.TestOutcome) {
	if err := s.storage.Save(outcomes, time.Since(s.start), s.debug); err != nil {
		s.log.WithError(err).Error("failed to save test results")
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	return rc.execute(cmd, args, false)
}

// ExecuteDebug runs the command in debug-attach mode
func (rc *RunCommand) ExecuteDebug(cmd *cobra.Command, args []string) error {
	return rc.execute(cmd, args, true)
}

func (rc *RunCommand) execute(cmd *cobra.Command, args []string, isDebug bool) error {
	suites, err := rc.resolveSuites(args)
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	debugPort := 0
	if isDebug {
		debugPort = rc.config.Flags.DebugPort
		if debugPort == 0 {
			port, err := debugger.FreePort()
			if err != nil {
				color.Red("Could not resolve a debug port: %v", err)
				return err
			}
			debugPort = port
		}
	}

	document := rc.config.ProjectPath
	if len(suites) > 0 && suites[0].Document != "" {
		document = suites[0].Document
	}
	req := domain.NewRunRequest(suites, document, isDebug, rc.config.GetStorageRoot())

	sink := &storageSink{storage: rc.storage, start: time.Now(), debug: isDebug, log: rc.log}
	var attacher execution.Attacher
	if isDebug {
		attacher = debugger.NewEmitAttacher(cmd.OutOrStdout(), rc.log)
	}
	runner := execution.NewRunner(rc.guard, rc.builder, attacher, sink, rc.log)

	progressBar := ui.NewProgressBar(len(suites))
	var passed, failed int
	runner.SetOnOutcome(func(o domain.TestOutcome) {
		if o.Status == domain.StatusFail {
			failed++
		} else {
			passed++
		}
		progressBar.Update(passed, failed)
	})

	label := "run"
	if isDebug {
		label = "debug"
	}
	var outcomes []domain.TestOutcome
	started := time.Now()
	err = telemetry.Measure(rc.log, label, func() error {
		var runErr error
		outcomes, runErr = runner.Run(cmd.Context(), req, rc.config.GetJavaBin(), rc.index.Classpath(), debugPort)
		return runErr
	})
	progressBar.Finish()

	if errors.Is(err, execution.ErrRunActive) {
		color.Yellow("A test session is already running; the request was dropped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("test run failed: %w", err)
	}
	if outcomes == nil {
		// Launcher archive missing; already logged, nothing ran.
		return nil
	}

	output := domain.NewRunOutput(outcomes, time.Since(started), isDebug)
	rc.formatter.PrintRunStats(output)

	if rc.config.Flags.OpenViewer && output.Meta.Failed > 0 {
		viewer := ui.NewOutcomeViewer(rc.formatter)
		return viewer.View(output)
	}
	return nil
}

// resolveSuites maps command arguments to discovered suites. With no
// arguments every discovered test class runs, honoring the name filter.
func (rc *RunCommand) resolveSuites(args []string) ([]domain.TestSuite, error) {
	if len(args) == 0 {
		files, err := rc.index.TestFiles(rc.config.Flags.NameFilter)
		if err != nil {
			return nil, err
		}
		var suites []domain.TestSuite
		for _, file := range files {
			fileSuites, err := rc.index.Suites(file)
			if err != nil {
				return nil, err
			}
			for _, s := range fileSuites {
				if s.Granularity == domain.GranularityClass {
					suites = append(suites, s)
				}
			}
		}
		return suites, nil
	}

	all, err := rc.index.AllSuites()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]domain.TestSuite, len(all))
	for _, s := range all {
		byName[s.Name] = s
	}

	suites := make([]domain.TestSuite, 0, len(args))
	for _, name := range args {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown test suite: %s", name)
		}
		suites = append(suites, s)
	}
	return suites, nil
}

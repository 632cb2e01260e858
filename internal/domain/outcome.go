package domain

import "time"

// Status is the terminal state of one test.
type Status string

// Status values emitted by the result parser.
const (
	StatusPass Status = "passed"
	StatusFail Status = "failed"
	StatusSkip Status = "skipped"
	// StatusIncomplete marks a test that was still in progress when the
	// output stream ended, or that the requested run never reached.
	StatusIncomplete Status = "incomplete"
)

// Assertion is one pass/fail check reported inside a test.
type Assertion struct {
	Passed  bool     `json:"passed"`
	Message string   `json:"message"`
	Trace   []string `json:"trace,omitempty"`
}

// TestOutcome is one reconstructed test result.
type TestOutcome struct {
	Suite      string        `json:"suite"`
	Status     Status        `json:"status"`
	Duration   time.Duration `json:"duration"`
	Assertions []Assertion   `json:"assertions,omitempty"`
	// Output collects free-form lines the runner printed while this
	// test was in progress.
	Output []string `json:"output,omitempty"`
}

// RunMeta contains metadata about one completed run.
type RunMeta struct {
	TotalSuites  int     `json:"total_suites"`
	Passed       int     `json:"passed"`
	Failed       int     `json:"failed"`
	Skipped      int     `json:"skipped"`
	Incomplete   int     `json:"incomplete"`
	Duration     string  `json:"duration"`
	DurationSecs float64 `json:"duration_seconds"`
	Debug        bool    `json:"debug"`
	Timestamp    string  `json:"timestamp"`
}

// RunOutput is the complete persisted record of a run.
type RunOutput struct {
	Meta     RunMeta       `json:"meta"`
	Outcomes []TestOutcome `json:"outcomes"`
}

// NewRunOutput assembles the persisted record for one run, tallying the
// outcome counts into the meta block.
func NewRunOutput(outcomes []TestOutcome, duration time.Duration, debug bool) *RunOutput {
	meta := RunMeta{
		TotalSuites:  len(outcomes),
		Duration:     duration.String(),
		DurationSecs: duration.Seconds(),
		Debug:        debug,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	for _, o := range outcomes {
		switch o.Status {
		case StatusPass:
			meta.Passed++
		case StatusFail:
			meta.Failed++
		case StatusSkip:
			meta.Skipped++
		default:
			meta.Incomplete++
		}
	}
	return &RunOutput{Meta: meta, Outcomes: outcomes}
}

// Outcome returns the recorded outcome for a suite name, or nil.
func (o *RunOutput) Outcome(suite string) *TestOutcome {
	for i := range o.Outcomes {
		if o.Outcomes[i].Suite == suite {
			return &o.Outcomes[i]
		}
	}
	return nil
}

package domain

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// RunRequest is the set of suites for one invocation, in request order,
// plus the run mode and a storage path unique to this run. Created at
// invocation time, consumed by the launch builder, discarded (with
// storage cleanup) when the run finishes or fails to build.
type RunRequest struct {
	Suites      []TestSuite
	Document    string // owning source document
	Debug       bool
	StoragePath string
}

// NewRunRequest derives the run's storage directory from a millisecond
// timestamp token under the given storage root.
func NewRunRequest(suites []TestSuite, document string, debug bool, storageRoot string) *RunRequest {
	token := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return &RunRequest{
		Suites:      suites,
		Document:    document,
		Debug:       debug,
		StoragePath: filepath.Join(storageRoot, token),
	}
}

// SuiteNames returns the suite identifiers in request order.
func (r *RunRequest) SuiteNames() []string {
	names := make([]string, len(r.Suites))
	for i, s := range r.Suites {
		names[i] = s.Name
	}
	return names
}

// LaunchSpec is the fully resolved command-line token sequence for one
// invocation. Immutable and single-use; owned by the process runner.
type LaunchSpec struct {
	Tokens []string
}

// CommandLine joins the tokens into a single command string.
func (s *LaunchSpec) CommandLine() string {
	return strings.Join(s.Tokens, " ")
}

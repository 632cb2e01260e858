// Package parser reconstructs structured test outcomes from the
// runner's interleaved, line-oriented output stream.
package parser

import (
	"strconv"
	"strings"
	"time"

	"jtr/internal/domain"
)

// Line markers of the runner protocol. The grammar is append-only:
// unrecognized lines attach to the open record as free-form output,
// never discarded, never fatal.
const (
	markerStart     = "@@TESTSTART@@"
	markerAssertion = "@@ASSERTION@@"
	markerEnd       = "@@TESTEND@@"
)

// StreamParser consumes arbitrary chunks of runner output and emits one
// TestOutcome per completed record. Chunk boundaries may fall mid-line
// or mid-record; only newline-terminated lines are reduced, the tail
// stays buffered until the next chunk or Finalize.
type StreamParser struct {
	tail     string
	current  *domain.TestOutcome
	prelude  []string
	outcomes []domain.TestOutcome
	onRecord func(domain.TestOutcome)
}

// NewStreamParser creates a parser. onRecord, if non-nil, is invoked for
// every completed record in stream order.
func NewStreamParser(onRecord func(domain.TestOutcome)) *StreamParser {
	return &StreamParser{onRecord: onRecord}
}

// Feed accumulates a chunk and reduces every complete line in it.
func (p *StreamParser) Feed(chunk string) {
	data := p.tail + chunk
	for {
		idx := strings.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		p.reduce(strings.TrimSuffix(data[:idx], "\r"))
		data = data[idx+1:]
	}
	p.tail = data
}

// Finalize flushes the buffered tail and resolves any record still in
// progress as incomplete. Returns all outcomes in stream order.
func (p *StreamParser) Finalize() []domain.TestOutcome {
	if p.tail != "" {
		p.reduce(strings.TrimSuffix(p.tail, "\r"))
		p.tail = ""
	}
	if p.current != nil {
		p.complete(domain.StatusIncomplete, 0)
	}
	return p.outcomes
}

// Outcomes returns the records completed so far.
func (p *StreamParser) Outcomes() []domain.TestOutcome {
	return p.outcomes
}

// Prelude returns free-form lines seen outside any record.
func (p *StreamParser) Prelude() []string {
	return p.prelude
}

// reduce applies one line to the parse state.
func (p *StreamParser) reduce(line string) {
	switch {
	case strings.HasPrefix(line, markerStart):
		p.reduceStart(line)
	case strings.HasPrefix(line, markerAssertion):
		p.reduceAssertion(line)
	case strings.HasPrefix(line, markerEnd):
		p.reduceEnd(line)
	case isStackFrame(line):
		p.reduceFrame(line)
	default:
		p.freeform(line)
	}
}

func (p *StreamParser) reduceStart(line string) {
	suite := strings.TrimSpace(strings.TrimPrefix(line, markerStart))
	if suite == "" {
		p.freeform(line)
		return
	}
	// A start while a record is open means the runner never closed the
	// previous test; resolve it rather than lose it.
	if p.current != nil {
		p.complete(domain.StatusIncomplete, 0)
	}
	p.current = &domain.TestOutcome{Suite: suite}
}

func (p *StreamParser) reduceAssertion(line string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, markerAssertion))
	verdict, message, _ := strings.Cut(rest, " ")
	var passed bool
	switch verdict {
	case "PASS":
		passed = true
	case "FAIL":
		passed = false
	default:
		p.freeform(line)
		return
	}
	if p.current == nil {
		p.freeform(line)
		return
	}
	p.current.Assertions = append(p.current.Assertions, domain.Assertion{
		Passed:  passed,
		Message: message,
	})
}

func (p *StreamParser) reduceEnd(line string) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, markerEnd))
	fields := strings.Fields(rest)
	if p.current == nil || len(fields) < 3 {
		p.freeform(line)
		return
	}
	status, ok := parseStatus(fields[1])
	if !ok {
		p.freeform(line)
		return
	}
	millis, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		millis = 0
	}
	p.complete(status, time.Duration(millis)*time.Millisecond)
}

// reduceFrame attaches a stack frame to the last failed assertion, or to
// the record's free-form output when there is none.
func (p *StreamParser) reduceFrame(line string) {
	if p.current != nil && len(p.current.Assertions) > 0 {
		last := &p.current.Assertions[len(p.current.Assertions)-1]
		if !last.Passed {
			last.Trace = append(last.Trace, strings.TrimSpace(line))
			return
		}
	}
	p.freeform(line)
}

func (p *StreamParser) freeform(line string) {
	if p.current != nil {
		p.current.Output = append(p.current.Output, line)
		return
	}
	p.prelude = append(p.prelude, line)
}

func (p *StreamParser) complete(status domain.Status, duration time.Duration) {
	rec := *p.current
	rec.Status = status
	rec.Duration = duration
	p.current = nil
	p.outcomes = append(p.outcomes, rec)
	if p.onRecord != nil {
		p.onRecord(rec)
	}
}

func parseStatus(s string) (domain.Status, bool) {
	switch s {
	case "PASS":
		return domain.StatusPass, true
	case "FAIL":
		return domain.StatusFail, true
	case "SKIP":
		return domain.StatusSkip, true
	}
	return "", false
}

// isStackFrame reports whether a line looks like a stack trace
// continuation ("    at pkg.Cls.method(File.java:42)").
func isStackFrame(line string) bool {
	if line == "" || (line[0] != ' ' && line[0] != '\t') {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(line), "at ")
}

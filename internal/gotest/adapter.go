// Package gotest drives a reporter from `go test -json` output, mapping test
// completion events to SpecDone and the end of the stream to SuiteDone.
package gotest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metadata"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/reporter"
	"github.com/sirupsen/logrus"
)

// test2json actions.
const (
	ActionRun    = "run"
	ActionOutput = "output"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionPause  = "pause"
	ActionCont   = "cont"
)

// Spec statuses handed to the reporter.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

const maxLineSize = 4 * 1024 * 1024

// failureLine matches "    file_test.go:12: message" as printed by t.Error and friends.
var failureLine = regexp.MustCompile(`^\s+([\w./\\-]+\.go:\d+): (.*)$`)

// Event is a single line of `go test -json` output.
type Event struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Output  string    `json:"Output"`
	Elapsed float64   `json:"Elapsed"`
}

type testRun struct {
	output []string
}

// Adapter converts test events into reporter calls.
type Adapter struct {
	log      logrus.FieldLogger
	reporter reporter.Reporter
	tests    map[string]*testRun
}

// NewAdapter creates an adapter feeding rep.
func NewAdapter(log logrus.FieldLogger, rep reporter.Reporter) *Adapter {
	return &Adapter{
		log:      log.WithField("component", "gotest_adapter"),
		reporter: rep,
		tests:    make(map[string]*testRun),
	}
}

// Run consumes events from r until EOF and then signals the end of the suite.
// Lines that are not JSON (build output, for instance) are skipped.
func (a *Adapter) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			a.log.WithError(err).WithField("line", string(line)).Debug("skipping non-JSON line")
			continue
		}

		a.handle(ctx, &ev)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading test events: %w", err)
	}

	a.reporter.SuiteDone()

	return nil
}

func (a *Adapter) handle(ctx context.Context, ev *Event) {
	if ev.Test == "" {
		return
	}

	key := ev.Package + "." + ev.Test

	switch ev.Action {
	case ActionRun:
		a.tests[key] = &testRun{}
	case ActionOutput:
		run, ok := a.tests[key]
		if !ok {
			run = &testRun{}
			a.tests[key] = run
		}
		run.output = append(run.output, ev.Output)
	case ActionPass, ActionFail, ActionSkip:
		run := a.tests[key]
		delete(a.tests, key)

		result := a.result(ev, run)
		if err := a.reporter.SpecDone(ctx, result); err != nil {
			a.log.WithError(err).WithField("test", key).Warn("reporting spec failed")
		}
	}
}

func (a *Adapter) result(ev *Event, run *testRun) reporter.TestResult {
	result := reporter.TestResult{
		ID:       ev.Package + "." + ev.Test,
		FullName: ev.Package + " " + ev.Test,
		Duration: time.Duration(ev.Elapsed * float64(time.Second)),
	}

	switch ev.Action {
	case ActionPass:
		result.Status = StatusPassed
	case ActionSkip:
		result.Status = StatusSkipped
	default:
		result.Status = StatusFailed

		var output []string
		if run != nil {
			output = run.output
		}
		result.FailedExpectations = expectations(ev.Test, output)
	}

	return result
}

// expectations extracts one expectation per reported failure location;
// indented lines that follow belong to the previous message.
func expectations(test string, output []string) []metadata.Expectation {
	var (
		found   []metadata.Expectation
		current = -1
		rest    []string
	)

	for _, raw := range output {
		line := strings.TrimRight(raw, "\n")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "=== ") || strings.HasPrefix(trimmed, "--- ") {
			current = -1
			continue
		}

		if m := failureLine.FindStringSubmatch(line); m != nil {
			found = append(found, metadata.Expectation{Stack: m[1], Message: m[2]})
			current = len(found) - 1
			continue
		}

		if current >= 0 && strings.HasPrefix(line, "        ") {
			found[current].Message += "\n" + trimmed
			continue
		}

		current = -1
		if trimmed != "" {
			rest = append(rest, trimmed)
		}
	}

	if len(found) > 0 {
		return found
	}

	msg := strings.Join(rest, "\n")
	if msg == "" {
		msg = test + " failed"
	}

	return []metadata.Expectation{{Message: msg}}
}

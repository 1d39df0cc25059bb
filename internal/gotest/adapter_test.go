package gotest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metadata"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/reporter"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

type recordingReporter struct {
	specs       []reporter.TestResult
	suiteDone   int
	specDoneErr error
}

func (r *recordingReporter) SpecDone(_ context.Context, result reporter.TestResult) error {
	r.specs = append(r.specs, result)
	return r.specDoneErr
}

func (r *recordingReporter) SuiteDone() {
	r.suiteDone++
}

func (r *recordingReporter) State() reporter.State {
	return reporter.StateIdle
}

const stream = `{"Time":"2024-03-01T10:00:00Z","Action":"start","Package":"example.com/e2e"}
{"Time":"2024-03-01T10:00:00Z","Action":"run","Package":"example.com/e2e","Test":"TestLogin"}
{"Time":"2024-03-01T10:00:00Z","Action":"output","Package":"example.com/e2e","Test":"TestLogin","Output":"=== RUN   TestLogin\n"}
{"Time":"2024-03-01T10:00:01Z","Action":"output","Package":"example.com/e2e","Test":"TestLogin","Output":"--- PASS: TestLogin (1.00s)\n"}
{"Time":"2024-03-01T10:00:01Z","Action":"pass","Package":"example.com/e2e","Test":"TestLogin","Elapsed":1}
this is not json
{"Time":"2024-03-01T10:00:01Z","Action":"run","Package":"example.com/e2e","Test":"TestCheckout"}
{"Time":"2024-03-01T10:00:01Z","Action":"output","Package":"example.com/e2e","Test":"TestCheckout","Output":"=== RUN   TestCheckout\n"}
{"Time":"2024-03-01T10:00:02Z","Action":"output","Package":"example.com/e2e","Test":"TestCheckout","Output":"    checkout_test.go:42: expected total 10, got 12\n"}
{"Time":"2024-03-01T10:00:02Z","Action":"output","Package":"example.com/e2e","Test":"TestCheckout","Output":"        cart had 3 items\n"}
{"Time":"2024-03-01T10:00:02Z","Action":"output","Package":"example.com/e2e","Test":"TestCheckout","Output":"    checkout_test.go:50: button missing\n"}
{"Time":"2024-03-01T10:00:02Z","Action":"output","Package":"example.com/e2e","Test":"TestCheckout","Output":"--- FAIL: TestCheckout (1.50s)\n"}
{"Time":"2024-03-01T10:00:02Z","Action":"fail","Package":"example.com/e2e","Test":"TestCheckout","Elapsed":1.5}
{"Time":"2024-03-01T10:00:02Z","Action":"skip","Package":"example.com/e2e","Test":"TestLegacy","Elapsed":0}
{"Time":"2024-03-01T10:00:02Z","Action":"fail","Package":"example.com/e2e","Elapsed":2.5}
`

func TestAdapter_Run(t *testing.T) {
	rep := &recordingReporter{}

	err := NewAdapter(newTestLogger(), rep).Run(context.Background(), strings.NewReader(stream))
	require.NoError(t, err)

	require.Len(t, rep.specs, 3)
	assert.Equal(t, 1, rep.suiteDone)

	login := rep.specs[0]
	assert.Equal(t, "example.com/e2e.TestLogin", login.ID)
	assert.Equal(t, "example.com/e2e TestLogin", login.FullName)
	assert.Equal(t, StatusPassed, login.Status)
	assert.Equal(t, time.Second, login.Duration)
	assert.False(t, login.Failed())

	checkout := rep.specs[1]
	assert.Equal(t, StatusFailed, checkout.Status)
	assert.Equal(t, 1500*time.Millisecond, checkout.Duration)
	assert.Equal(t, []metadata.Expectation{
		{Stack: "checkout_test.go:42", Message: "expected total 10, got 12\ncart had 3 items"},
		{Stack: "checkout_test.go:50", Message: "button missing"},
	}, checkout.FailedExpectations)

	legacy := rep.specs[2]
	assert.Equal(t, StatusSkipped, legacy.Status)
	assert.Empty(t, legacy.FailedExpectations)
}

func TestAdapter_SpecDoneErrorDoesNotStopStream(t *testing.T) {
	rep := &recordingReporter{specDoneErr: errors.New("driver gone")}

	err := NewAdapter(newTestLogger(), rep).Run(context.Background(), strings.NewReader(stream))
	require.NoError(t, err)

	assert.Len(t, rep.specs, 3)
	assert.Equal(t, 1, rep.suiteDone)
}

func TestAdapter_CancelledContext(t *testing.T) {
	rep := &recordingReporter{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewAdapter(newTestLogger(), rep).Run(ctx, strings.NewReader(stream))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rep.suiteDone)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestAdapter_ReadError(t *testing.T) {
	rep := &recordingReporter{}

	err := NewAdapter(newTestLogger(), rep).Run(context.Background(), failingReader{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading test events")
	assert.Zero(t, rep.suiteDone)
}

func TestExpectations(t *testing.T) {
	tests := []struct {
		name     string
		output   []string
		expected []metadata.Expectation
	}{
		{
			name:     "no output",
			output:   nil,
			expected: []metadata.Expectation{{Message: "TestX failed"}},
		},
		{
			name:     "panic without location",
			output:   []string{"=== RUN   TestX\n", "panic: boom\n", "\n", "goroutine 1 [running]:\n"},
			expected: []metadata.Expectation{{Message: "panic: boom\ngoroutine 1 [running]:"}},
		},
		{
			name:   "subtest indentation",
			output: []string{"    --- FAIL: TestX/sub (0.00s)\n", "        x_test.go:9: nope\n"},
			expected: []metadata.Expectation{
				{Stack: "x_test.go:9", Message: "nope"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expectations("TestX", tt.output))
		})
	}
}

package metrics

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func TestCollector_Summary(t *testing.T) {
	c := NewCollector(newTestLogger())
	require.NoError(t, c.Start(context.Background()))

	c.RecordSpec(SpecMetric{ID: "a", Status: "passed"})
	c.RecordSpec(SpecMetric{ID: "b", Status: "failed", Failed: true})
	c.RecordSpec(SpecMetric{ID: "c", Status: "passed"})
	c.RecordReport(&ReportMetric{SpecID: "b", Path: "out/report.json", ConsoleLogs: 2})

	summary := c.GetSummary()
	assert.Equal(t, 3, summary.TotalSpecs)
	assert.Equal(t, 2, summary.PassedSpecs)
	assert.Equal(t, 1, summary.FailedSpecs)
	assert.Equal(t, 1, summary.ReportsWritten)
	assert.Equal(t, 0, summary.ReportsFailed)
	assert.GreaterOrEqual(t, summary.TotalDuration.Nanoseconds(), int64(0))

	require.NoError(t, c.Stop())
}

func TestCollector_FailedReport(t *testing.T) {
	c := NewCollector(newTestLogger())
	c.RecordReport(&ReportMetric{SpecID: "x", Error: "disk full"})

	summary := c.GetSummary()
	assert.Equal(t, 0, summary.ReportsWritten)
	assert.Equal(t, 1, summary.ReportsFailed)
	assert.Zero(t, summary.TotalDuration)
}

func TestCollector_ReturnsCopies(t *testing.T) {
	c := NewCollector(newTestLogger())
	c.RecordSpec(SpecMetric{ID: "a"})

	specs := c.GetSpecMetrics()
	specs[0].ID = "mutated"

	assert.Equal(t, "a", c.GetSpecMetrics()[0].ID)
}

func TestCollector_Concurrent(t *testing.T) {
	c := NewCollector(newTestLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.RecordSpec(SpecMetric{ID: "x"})
			_ = c.GetSummary()
		}()
	}
	wg.Wait()

	assert.Len(t, c.GetSpecMetrics(), 20)
}

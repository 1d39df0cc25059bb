// Package output renders reports and run summaries for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metadata"
	"github.com/ovh-ux/ovh-protractor-jasmine2-logs-reporter/internal/metrics"
)

const maxMessageWidth = 80

// Formatter provides clean, human-friendly output
type Formatter interface {
	PrintSuccess(message string)
	PrintError(message string, err error)
	PrintReport(md *metadata.MetaData)
	PrintSpecs(specs []metrics.SpecMetric)
	PrintSummary(summary metrics.SummaryMetric, reports []metrics.ReportMetric)
}

type formatter struct {
	writer   io.Writer
	renderer Renderer
	colors   *ColorHelper

	green *color.Color
	red   *color.Color
}

// NewFormatter creates a new output formatter
func NewFormatter(writer io.Writer, renderer Renderer) Formatter {
	if renderer == nil {
		renderer = NewRenderer()
	}

	return &formatter{
		writer:   writer,
		renderer: renderer,
		colors:   NewColorHelper(),
		green:    color.New(color.FgGreen),
		red:      color.New(color.FgRed),
	}
}

// PrintSuccess prints message in green.
func (f *formatter) PrintSuccess(message string) {
	f.green.Fprintf(f.writer, "%s\n", message)
}

// PrintError prints message and err in red.
func (f *formatter) PrintError(message string, err error) {
	f.red.Fprintf(f.writer, "%s", message)
	if err != nil {
		f.red.Fprintf(f.writer, ": %v", err)
	}
	fmt.Fprintf(f.writer, "\n")
}

// PrintReport prints a report file: the spec, its failed expectations, the
// console logs and the HTTP logs when they were collected.
func (f *formatter) PrintReport(md *metadata.MetaData) {
	var (
		headers = []string{"Field", "Value"}
		rows    = [][]string{
			{"Spec", md.Description},
			{"ID", md.ID},
			{"Status", f.colors.FormatStatus(md.Status, len(md.FailedExpectations) > 0)},
			{"Date", md.Date},
			{"Duration", fmt.Sprintf("%dms", md.Duration)},
			{"Browser", strings.TrimSpace(md.Browser.Name + " " + md.Browser.Version)},
			{"OS", md.OS},
		}
	)

	fmt.Fprintln(f.writer, "\n"+f.colors.Header("▸ Report")+"\n")
	f.renderer.RenderToWriter(f.writer, headers, rows)

	if len(md.FailedExpectations) > 0 {
		fmt.Fprintln(f.writer, "\n"+f.colors.Header("▸ Failed Expectations")+"\n")

		for _, exp := range md.FailedExpectations {
			fmt.Fprintf(f.writer, "  %s %s\n", f.colors.Failure("✗"), exp.Message)
			if exp.Stack != "" {
				fmt.Fprintf(f.writer, "    %s\n", f.colors.Muted(Truncate(exp.Stack, maxMessageWidth)))
			}
		}
	}

	f.printConsoleLogs(md.ConsoleLogs)

	if md.HTTPLogs != nil {
		f.printHTTPLogs(*md.HTTPLogs)
	}
}

func (f *formatter) printConsoleLogs(logs []metadata.ConsoleLog) {
	fmt.Fprintln(f.writer, "\n"+f.colors.Header("▸ Console Logs")+"\n")

	if len(logs) == 0 {
		fmt.Fprintln(f.writer, f.colors.Muted("No console logs"))
		return
	}

	rows := make([][]string, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, []string{
			log.Date,
			f.colors.FormatLevel(log.Level),
			Truncate(log.Stack.URL+" "+log.Stack.Position, maxMessageWidth),
			Truncate(log.Stack.Message, maxMessageWidth),
		})
	}

	f.renderer.RenderToWriter(f.writer, []string{"Date", "Level", "Source", "Message"}, rows)
}

func (f *formatter) printHTTPLogs(logs []metadata.HTTPLog) {
	fmt.Fprintln(f.writer, "\n"+f.colors.Header("▸ HTTP Logs")+"\n")

	if len(logs) == 0 {
		fmt.Fprintln(f.writer, f.colors.Muted("No failed requests"))
		return
	}

	rows := make([][]string, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, []string{
			log.Date,
			log.Stack.Method,
			f.colors.FormatHTTPStatus(log.Stack.Status),
			Truncate(log.Stack.URL, maxMessageWidth),
		})
	}

	f.renderer.RenderToWriter(f.writer, []string{"Date", "Method", "Status", "URL"}, rows)
}

// PrintSpecs prints one row per spec seen during the run.
func (f *formatter) PrintSpecs(specs []metrics.SpecMetric) {
	if len(specs) == 0 {
		fmt.Fprintln(f.writer, "No specs executed")
		return
	}

	rows := make([][]string, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, []string{
			spec.Name,
			f.colors.FormatStatus(spec.Status, spec.Failed),
			Duration(spec.Duration),
		})
	}

	fmt.Fprintln(f.writer, "\n"+f.colors.Header("▸ Specs")+"\n")
	f.renderer.RenderToWriter(f.writer, []string{"Spec", "Status", "Duration"}, rows)
}

// PrintSummary prints aggregate statistics and where the report went.
func (f *formatter) PrintSummary(summary metrics.SummaryMetric, reports []metrics.ReportMetric) {
	failedValue := fmt.Sprintf("%d", summary.FailedSpecs)
	if summary.FailedSpecs > 0 {
		failedValue = f.colors.Failure(failedValue)
	} else {
		failedValue = f.colors.Success(failedValue)
	}

	rows := [][]string{
		{"Total Specs", f.colors.Bold(fmt.Sprintf("%d", summary.TotalSpecs))},
		{"Passed", f.colors.Success(fmt.Sprintf("%d", summary.PassedSpecs))},
		{"Failed", failedValue},
		{"Total Duration", Duration(summary.TotalDuration)},
	}

	for _, report := range reports {
		if report.Error != "" {
			rows = append(rows, []string{"Report", f.colors.Failure(Truncate(report.Error, maxMessageWidth))})
			continue
		}

		rows = append(rows,
			[]string{"Report", f.colors.Success(report.Path)},
			[]string{"Console Logs", fmt.Sprintf("%d", report.ConsoleLogs)},
			[]string{"HTTP Logs", fmt.Sprintf("%d", report.HTTPLogs)},
		)
	}

	fmt.Fprintln(f.writer, "\n"+f.colors.Header("▸ Summary")+"\n")
	f.renderer.RenderToWriter(f.writer, []string{"Metric", "Value"}, rows)
}

var _ Formatter = (*formatter)(nil)

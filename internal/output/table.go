package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/aryankumar/parex/pkg/parex"
)

// TableFormatter formats output as a table (kubectl-style)
type TableFormatter struct {
	options *Options
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(opts *Options) *TableFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &TableFormatter{
		options: opts,
	}
}

// Format outputs a single data item as a table
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case map[string]string:
		return f.formatMap(w, v)
	default:
		fmt.Fprintln(w, v)
		return nil
	}
}

// FormatResult outputs matched paths, then collected failures in wide
// mode, then a one-line summary
func (f *TableFormatter) FormatResult(w io.Writer, result *parex.Result, runErr error) error {
	colors := NewColorScheme(w, f.options.NoColor)
	report := NewReport(result, runErr)

	if len(report.Paths) > 0 {
		table := f.createTable(w)
		f.setHeader(table, colors, "PATH")
		for _, p := range report.Paths {
			table.Append([]string{colors.Path("%s", p)})
		}
		table.Render()
	}

	if f.options.Wide && len(report.Errors) > 0 {
		if len(report.Paths) > 0 {
			fmt.Fprintln(w, "")
		}
		table := f.createTable(w)
		f.setHeader(table, colors, "FAILED", "REASON")
		for _, e := range report.Errors {
			table.Append([]string{colors.Warning("%s", e.Path), e.Code})
		}
		table.Render()
	}

	f.printSummary(w, report, result, colors)
	return nil
}

func (f *TableFormatter) setHeader(table *tablewriter.Table, colors *ColorScheme, headers ...string) {
	if f.options.NoHeaders {
		return
	}
	if colors.Disabled {
		table.SetHeader(headers)
		return
	}
	colored := make([]string, len(headers))
	for i, h := range headers {
		colored[i] = colors.Header("%s", h)
	}
	table.SetHeader(colored)
}

// formatMap formats a map as a two-column table (key-value pairs)
func (f *TableFormatter) formatMap(w io.Writer, data map[string]string) error {
	table := f.createTable(w)
	if !f.options.NoHeaders {
		table.SetHeader([]string{"KEY", "VALUE"})
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		table.Append([]string{k, data[k]})
	}

	table.Render()
	return nil
}

// createTable creates a new table with kubectl-style configuration
func (f *TableFormatter) createTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t") // Tab-separated like kubectl
	table.SetNoWhiteSpace(true)

	return table
}

// printSummary prints a summary of the run
func (f *TableFormatter) printSummary(w io.Writer, report Report, result *parex.Result, colors *ColorScheme) {
	if len(report.Paths) > 0 || (f.options.Wide && len(report.Errors) > 0) {
		fmt.Fprintln(w, "")
	}

	matches := fmt.Sprintf("%d matches", report.Matches)
	if report.Matches > 0 {
		matches = colors.Success("%s", matches)
	}

	failures := fmt.Sprintf("%d failures", report.Stats.Failures)
	if report.Stats.Failures > 0 {
		failures = colors.Warning("%s", failures)
	}

	var elapsed time.Duration
	if result != nil {
		elapsed = result.Stats.Duration
	}
	timing := colors.Duration("%s, %d/s", elapsed.Round(time.Millisecond), report.Stats.ItemsPerSec)

	fmt.Fprintf(w, "Summary: %s, %d seen, %s, %s\n", matches, report.Stats.Seen, failures, timing)

	if report.Status == StatusStopped {
		fmt.Fprintf(w, "%s\n", colors.Error("Stopped early: %s", report.Error))
	}
}

// Package output renders parex run results for the CLI.
//
// Three formats are supported: a kubectl-style table, JSON and YAML. The
// table lists matched paths, optionally the collected failures (wide mode),
// and ends with a one-line summary. JSON and YAML encode a Report, which is
// the result with sorted paths and a printable duration, so output is stable
// across runs even though workers finish in no particular order.
//
//	formatter := output.NewFormatter(output.FormatTable, output.WithWide(true))
//	formatter.FormatResult(os.Stdout, result, err)
//
// Colors are enabled only for TTY outputs and can be turned off with
// WithNoColor(true).
package output

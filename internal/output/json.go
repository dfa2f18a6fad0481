package output

import (
	"encoding/json"
	"io"

	"github.com/aryankumar/parex/pkg/parex"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	options *Options
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(opts *Options) *JSONFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &JSONFormatter{
		options: opts,
	}
}

// Format outputs a single data item as JSON
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// FormatResult outputs a run result as JSON
func (f *JSONFormatter) FormatResult(w io.Writer, result *parex.Result, runErr error) error {
	return f.Format(w, NewReport(result, runErr))
}

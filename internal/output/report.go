package output

import (
	"sort"

	"github.com/aryankumar/parex/pkg/parex"
)

// Report is the serialisable form of a run result
type Report struct {
	Status  string          `json:"status" yaml:"status"`
	Error   string          `json:"error,omitempty" yaml:"error,omitempty"`
	Matches int             `json:"matches" yaml:"matches"`
	Paths   []string        `json:"paths,omitempty" yaml:"paths,omitempty"`
	Stats   StatsReport     `json:"stats" yaml:"stats"`
	Errors  []FailureReport `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// StatsReport mirrors parex.Stats with a printable duration
type StatsReport struct {
	Seen        int    `json:"seen" yaml:"seen"`
	Primary     int    `json:"primary" yaml:"primary"`
	Containers  int    `json:"containers" yaml:"containers"`
	Links       int    `json:"links" yaml:"links"`
	Other       int    `json:"other" yaml:"other"`
	Failures    int    `json:"failures" yaml:"failures"`
	Duration    string `json:"duration" yaml:"duration"`
	ItemsPerSec int    `json:"itemsPerSec" yaml:"itemsPerSec"`
}

// FailureReport is one recoverable failure
type FailureReport struct {
	Code    string `json:"code" yaml:"code"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Run status values
const (
	StatusCompleted = "completed"
	StatusStopped   = "stopped"
)

// NewReport converts a result into a report. Paths and failures are
// sorted so that output is stable between runs.
func NewReport(result *parex.Result, runErr error) Report {
	r := Report{Status: StatusCompleted}
	if runErr != nil {
		r.Status = StatusStopped
		r.Error = runErr.Error()
	}
	if result == nil {
		return r
	}

	r.Matches = result.Matches
	r.Paths = append([]string(nil), result.Paths...)
	sort.Strings(r.Paths)

	s := result.Stats
	r.Stats = StatsReport{
		Seen:        s.Seen(),
		Primary:     s.Primary,
		Containers:  s.Containers,
		Links:       s.Links,
		Other:       s.Other,
		Failures:    s.Failures,
		Duration:    s.Duration.String(),
		ItemsPerSec: s.ItemsPerSec,
	}

	for _, e := range result.Errors {
		path, _ := e.Path()
		r.Errors = append(r.Errors, FailureReport{
			Code:    e.Code.String(),
			Path:    path,
			Message: e.Error(),
		})
	}
	sort.Slice(r.Errors, func(i, j int) bool {
		return r.Errors[i].Path < r.Errors[j].Path
	})

	return r
}

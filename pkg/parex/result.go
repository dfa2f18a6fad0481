package parex

import (
	"fmt"
	"strings"
	"time"
)

// Stats holds the performance statistics of a completed run
type Stats struct {
	// Primary is the number of KindPrimary items seen (matched or not)
	Primary int `json:"primary" yaml:"primary"`

	// Containers is the number of KindContainer items seen
	Containers int `json:"containers" yaml:"containers"`

	// Links is the number of KindLink items seen
	Links int `json:"links" yaml:"links"`

	// Other is the number of KindOther items seen
	Other int `json:"other" yaml:"other"`

	// Failures is the number of recoverable failures observed, collected or not
	Failures int `json:"failures" yaml:"failures"`

	// Duration is the wall-clock time of the run
	Duration time.Duration `json:"duration" yaml:"duration"`

	// ItemsPerSec is Seen()/Duration, clamped to 0 on zero-duration runs
	ItemsPerSec int `json:"itemsPerSec" yaml:"itemsPerSec"`
}

// Seen returns the total number of items seen across all kinds
func (s Stats) Seen() int {
	return s.Primary + s.Containers + s.Links + s.Other
}

// Add records one item of the given kind
func (s *Stats) Add(k Kind) {
	switch k {
	case KindPrimary:
		s.Primary++
	case KindContainer:
		s.Containers++
	case KindLink:
		s.Links++
	default:
		s.Other++
	}
}

// Merge folds other into s. Duration and rate are left untouched.
func (s *Stats) Merge(other Stats) {
	s.Primary += other.Primary
	s.Containers += other.Containers
	s.Links += other.Links
	s.Other += other.Other
	s.Failures += other.Failures
}

// Finish freezes the timing fields
func (s *Stats) Finish(d time.Duration) {
	s.Duration = d
	s.ItemsPerSec = 0
	if secs := d.Seconds(); secs > 0 {
		s.ItemsPerSec = int(float64(s.Seen()) / secs)
	}
}

// Result is the output of a completed run.
// It is produced once and owned by the caller thereafter.
type Result struct {
	// Matches is the number of accepted matches
	Matches int

	// Paths holds the matched paths in no particular order.
	// Only populated when path collection is enabled.
	Paths []string

	// Stats are the run statistics
	Stats Stats

	// Errors holds recoverable failures in no particular order.
	// Only populated when error collection is enabled.
	Errors []*Error
}

// Seen returns the total number of items seen during the run
func (r *Result) Seen() int {
	return r.Stats.Seen()
}

// HasErrors returns true if any recoverable failure was observed
func (r *Result) HasErrors() bool {
	return r.Stats.Failures > 0
}

// Summary returns a one-line human-readable summary of the run
func (r *Result) Summary() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Matches: %d, ", r.Matches))
	sb.WriteString(fmt.Sprintf("Seen: %d, ", r.Seen()))
	sb.WriteString(fmt.Sprintf("Failures: %d", r.Stats.Failures))

	if r.Stats.Duration > 0 {
		sb.WriteString(fmt.Sprintf(", Duration: %s", r.Stats.Duration.Round(time.Millisecond)))
		sb.WriteString(fmt.Sprintf(", Rate: %d/s", r.Stats.ItemsPerSec))
	}

	return sb.String()
}

package output

import (
	"errors"
	"time"

	"github.com/aryankumar/parex/pkg/parex"
)

// sampleResult is a run that matched two paths and skipped two locked directories
func sampleResult() *parex.Result {
	return &parex.Result{
		Matches: 2,
		Paths:   []string{"docs/invoice_jan.pdf", "archive/invoice_2019.pdf"},
		Stats: parex.Stats{
			Primary:     40,
			Containers:  8,
			Links:       1,
			Other:       1,
			Failures:    2,
			Duration:    1500 * time.Millisecond,
			ItemsPerSec: 33,
		},
		Errors: []*parex.Error{
			parex.PermissionDenied("secret"),
			parex.IOError("broken", errors.New("input/output error")),
		},
	}
}

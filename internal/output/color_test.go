package output

import (
	"bytes"
	"testing"
)

func TestNewColorScheme(t *testing.T) {
	tests := []struct {
		name    string
		noColor bool
	}{
		{name: "no color requested", noColor: true},
		{name: "non tty writer", noColor: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := NewColorScheme(&bytes.Buffer{}, tt.noColor)
			if !cs.Disabled {
				t.Error("expected colors to be disabled")
			}
			if got := cs.Path("%s/%d", "a", 1); got != "a/1" {
				t.Errorf("expected plain text, got %q", got)
			}
			if got := cs.StatusColor(true)("failed"); got != "failed" {
				t.Errorf("expected plain text, got %q", got)
			}
		})
	}
}

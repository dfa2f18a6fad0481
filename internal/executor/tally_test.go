package executor

import (
	"testing"
	"time"

	"github.com/aryankumar/parex/pkg/parex"
)

func TestMerge(t *testing.T) {
	cfg := parex.DefaultRunConfig(2)
	cfg.CollectPaths = true
	cfg.CollectErrors = true

	a := newTally(cfg)
	a.addItem(parex.Item{Path: "a/1", Kind: parex.KindPrimary})
	a.addItem(parex.Item{Path: "a", Kind: parex.KindContainer})
	a.addMatch(parex.Item{Path: "a/1"})
	a.addFailure(parex.NotFound("a/2"))

	b := newTally(cfg)
	b.addItem(parex.Item{Path: "b", Kind: parex.KindLink})
	b.addItem(parex.Item{Path: "b/x", Kind: parex.KindOther})
	b.addMatch(parex.Item{Path: "b"})

	result := merge([]*tally{a, b}, time.Second)

	if result.Matches != 2 {
		t.Errorf("expected 2 matches, got %d", result.Matches)
	}
	if len(result.Paths) != 2 {
		t.Errorf("expected 2 paths, got %d", len(result.Paths))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}

	want := parex.Stats{Primary: 1, Containers: 1, Links: 1, Other: 1, Failures: 1, Duration: time.Second, ItemsPerSec: 4}
	if result.Stats != want {
		t.Errorf("expected stats %+v, got %+v", want, result.Stats)
	}
}

func TestMerge_CollectionDisabled(t *testing.T) {
	cfg := parex.DefaultRunConfig(1)

	a := newTally(cfg)
	a.addMatch(parex.Item{Path: "x"})
	a.addFailure(parex.PermissionDenied("y"))

	result := merge([]*tally{a}, 0)

	if result.Matches != 1 {
		t.Errorf("expected 1 match, got %d", result.Matches)
	}
	if len(result.Paths) != 0 {
		t.Errorf("expected no paths, got %v", result.Paths)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected no errors, got %v", result.Errors)
	}
	if result.Stats.Failures != 1 {
		t.Errorf("expected failure to be counted, got %d", result.Stats.Failures)
	}
	if result.Stats.ItemsPerSec != 0 {
		t.Errorf("expected zero rate on zero duration, got %d", result.Stats.ItemsPerSec)
	}
}

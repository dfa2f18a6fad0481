package executor

import (
	"time"

	"github.com/aryankumar/parex/pkg/parex"
)

// tally is the private aggregate of a single worker.
// It is only touched by its owner until the merge step.
type tally struct {
	stats   parex.Stats
	matches int
	paths   []string
	errors  []*parex.Error

	collectPaths  bool
	collectErrors bool
}

func newTally(cfg parex.RunConfig) *tally {
	return &tally{
		collectPaths:  cfg.CollectPaths,
		collectErrors: cfg.CollectErrors,
	}
}

func (t *tally) addItem(item parex.Item) {
	t.stats.Add(item.Kind)
}

func (t *tally) addMatch(item parex.Item) {
	t.matches++
	if t.collectPaths {
		t.paths = append(t.paths, item.Path)
	}
}

func (t *tally) addFailure(err *parex.Error) {
	t.stats.Failures++
	if t.collectErrors {
		t.errors = append(t.errors, err)
	}
}

// merge reduces the worker tallies into a single result.
// It runs single-threaded after every worker has exited.
func merge(tallies []*tally, elapsed time.Duration) *parex.Result {
	result := &parex.Result{}

	var pathCount, errCount int
	for _, t := range tallies {
		pathCount += len(t.paths)
		errCount += len(t.errors)
	}
	if pathCount > 0 {
		result.Paths = make([]string, 0, pathCount)
	}
	if errCount > 0 {
		result.Errors = make([]*parex.Error, 0, errCount)
	}

	for _, t := range tallies {
		result.Matches += t.matches
		result.Stats.Merge(t.stats)
		result.Paths = append(result.Paths, t.paths...)
		result.Errors = append(result.Errors, t.errors...)
	}

	result.Stats.Finish(elapsed)
	return result
}

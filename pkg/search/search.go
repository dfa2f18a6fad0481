// Package search is the public entry point for parex runs.
//
// A Builder collects a producer, a predicate and the run parameters, then
// hands them to the executor:
//
//	result, err := search.New().
//		Source(fsys.New(afero.NewOsFs(), ".")).
//		Matching("invoice").
//		Limit(10).
//		Run(ctx)
package search

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/aryankumar/parex/internal/executor"
	"github.com/aryankumar/parex/pkg/match"
	"github.com/aryankumar/parex/pkg/parex"
)

// Builder assembles a run. It is not safe for concurrent configuration,
// but a configured builder may be Run more than once.
type Builder struct {
	producer parex.Producer
	explicit parex.Predicate
	fallback parex.Predicate
	buildErr error
	cfg      parex.RunConfig
	logger   *slog.Logger
}

// New creates a builder with one thread per CPU, no limit and no depth bound
func New() *Builder {
	return &Builder{
		cfg: parex.DefaultRunConfig(runtime.NumCPU()),
	}
}

// Source sets the producer to traverse
func (b *Builder) Source(p parex.Producer) *Builder {
	b.producer = p
	return b
}

// Matching accepts items whose name contains pattern, ignoring case
func (b *Builder) Matching(pattern string) *Builder {
	b.setFallback(match.NewSubstring(pattern), nil)
	return b
}

// MatchingRegexp accepts items whose name matches a regular expression.
// A bad expression is reported by Run.
func (b *Builder) MatchingRegexp(expr string) *Builder {
	re, err := match.NewRegexp(expr)
	if err != nil {
		b.setFallback(nil, err)
		return b
	}
	b.setFallback(re, nil)
	return b
}

// MatchingExpr accepts items for which a CEL expression is true.
// A bad expression is reported by Run.
func (b *Builder) MatchingExpr(expr string) *Builder {
	e, err := match.NewExpr(expr)
	if err != nil {
		b.setFallback(nil, err)
		return b
	}
	b.setFallback(e, nil)
	return b
}

// the last convenience predicate replaces earlier ones, including their errors
func (b *Builder) setFallback(p parex.Predicate, err error) {
	b.fallback = p
	b.buildErr = err
}

// WithMatcher sets an explicit predicate.
// It takes precedence over Matching, MatchingRegexp and MatchingExpr
// regardless of call order.
func (b *Builder) WithMatcher(p parex.Predicate) *Builder {
	b.explicit = p
	return b
}

// Limit caps the number of accepted matches; parex.NoLimit removes the cap
func (b *Builder) Limit(n int) *Builder {
	b.cfg.Limit = n
	return b
}

// Threads sets the number of workers
func (b *Builder) Threads(n int) *Builder {
	b.cfg.Threads = n
	return b
}

// MaxDepth bounds traversal depth; parex.NoMaxDepth removes the bound
func (b *Builder) MaxDepth(d int) *Builder {
	b.cfg.MaxDepth = d
	return b
}

// CollectPaths records the path of every match in the result
func (b *Builder) CollectPaths(on bool) *Builder {
	b.cfg.CollectPaths = on
	return b
}

// CollectErrors records every recoverable failure in the result
func (b *Builder) CollectErrors(on bool) *Builder {
	b.cfg.CollectErrors = on
	return b
}

// Logger sets the logger used by the run
func (b *Builder) Logger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Config returns a copy of the run parameters
func (b *Builder) Config() parex.RunConfig {
	return b.cfg
}

// Predicate returns the predicate Run will use, or the error that prevents building it
func (b *Builder) Predicate() (parex.Predicate, error) {
	if b.explicit != nil {
		return b.explicit, nil
	}
	if b.buildErr != nil {
		return nil, b.buildErr
	}
	if b.fallback != nil {
		return b.fallback, nil
	}
	return parex.MatchAll, nil
}

// Run validates the configuration and executes the run synchronously.
// On a fatal failure the partial result is returned alongside the error.
func (b *Builder) Run(ctx context.Context) (*parex.Result, error) {
	if b.producer == nil {
		return nil, parex.InvalidSource("no source provided")
	}
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	predicate, err := b.Predicate()
	if err != nil {
		return nil, err
	}

	return executor.NewPool(b.logger).Execute(ctx, executor.Job{
		Producer:  b.producer,
		Predicate: predicate,
		Config:    b.cfg,
	})
}

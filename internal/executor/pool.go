package executor

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/aryankumar/parex/pkg/parex"
)

// queueFactor sizes the feeder queue relative to the worker count
const queueFactor = 2

// Job describes a single run: what to traverse, what to accept and how
type Job struct {
	// Producer supplies the items to traverse
	Producer parex.Producer

	// Predicate decides which items are matches (nil accepts everything)
	Predicate parex.Predicate

	// Config holds the run parameters
	Config parex.RunConfig
}

// envelope carries either an item or a failure from the feeder to a worker
type envelope struct {
	item parex.Item
	err  *parex.Error
}

// Pool runs jobs with one feeder goroutine and a bounded set of workers.
// A pool executes one job at a time.
type Pool struct {
	// logger for structured logging
	logger *slog.Logger

	// running indicates if the pool is currently executing
	running atomic.Bool

	// runs counts completed executions
	runs atomic.Int64
}

// NewPool creates a new pool
func NewPool(logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.Default()
	}

	return &Pool{
		logger: logger,
	}
}

// Execute runs job to completion and returns the merged result.
//
// The run ends when the producer is exhausted, when the match limit is
// reached, or when a fatal failure is observed. On a fatal failure the
// partial result is returned together with the first fatal *parex.Error.
// If ctx is cancelled the partial result is returned with ctx.Err().
func (p *Pool) Execute(ctx context.Context, job Job) (*parex.Result, error) {
	if job.Producer == nil {
		return nil, parex.InvalidSource("no source provided")
	}
	if err := job.Config.Validate(); err != nil {
		return nil, err
	}

	predicate := job.Predicate
	if predicate == nil {
		predicate = parex.MatchAll
	}

	if !p.running.CompareAndSwap(false, true) {
		return nil, parex.ThreadPool("pool is already running")
	}
	defer p.running.Store(false)
	defer p.runs.Add(1)

	cfg := job.Config
	startTime := time.Now()

	p.logger.Info("starting run",
		"threads", cfg.Threads,
		"limit", cfg.Limit,
		"max_depth", cfg.MaxDepth)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := newController(cfg.Limit, cancel)
	stopWatch := context.AfterFunc(runCtx, ctrl.stop)
	defer stopWatch()

	iter, err := job.Producer.Walk(runCtx, cfg.Walk())
	if err != nil {
		fatal := sourceFailure(err)
		p.logger.Warn("producer failed to start", "error", fatal)
		return merge(nil, time.Since(startTime)), fatal
	}

	queue := make(chan envelope, cfg.Threads*queueFactor)
	tallies := make([]*tally, cfg.Threads)

	var wg conc.WaitGroup
	wg.Go(func() {
		p.feed(runCtx, iter, queue, ctrl)
	})

	p.logger.Debug("starting workers", "count", cfg.Threads)

	for i := range tallies {
		t := newTally(cfg)
		tallies[i] = t
		workerID := i
		wg.Go(func() {
			p.worker(workerID, queue, predicate, ctrl, t)
		})
	}

	wg.Wait()

	result := merge(tallies, time.Since(startTime))

	if fatal := ctrl.failure(); fatal != nil {
		p.logger.Warn("run halted by fatal failure",
			"error", fatal,
			"matches", result.Matches,
			"seen", result.Seen(),
			"duration", result.Stats.Duration)
		return result, fatal
	}

	if err := ctx.Err(); err != nil {
		p.logger.Warn("run cancelled",
			"error", err,
			"matches", result.Matches,
			"seen", result.Seen())
		return result, err
	}

	p.logger.Info("run completed",
		"matches", result.Matches,
		"seen", result.Seen(),
		"failures", result.Stats.Failures,
		"duration", result.Stats.Duration)

	return result, nil
}

// feed pulls from the producer and publishes into the bounded queue.
// It blocks when workers fall behind and closes the queue on exit.
func (p *Pool) feed(ctx context.Context, iter parex.Iterator, queue chan<- envelope, ctrl *controller) {
	defer close(queue)
	defer iter.Stop()

	recovered := panics.Try(func() {
		p.pull(ctx, iter, queue, ctrl)
	})
	if recovered != nil {
		ctrl.fail(parex.SourceError(recovered.AsError(), false))
	}

	p.logger.Debug("feeder finished")
}

func (p *Pool) pull(ctx context.Context, iter parex.Iterator, queue chan<- envelope, ctrl *controller) {
	for !ctrl.isStopped() {
		item, err := iter.Next(ctx)

		var env envelope
		switch {
		case err == nil:
			env.item = item
		case errors.Is(err, parex.ErrIteratorDone):
			return
		case ctx.Err() != nil:
			// the producer gave up because the run was cancelled
			return
		default:
			env.err = parex.AsError(err)
		}

		select {
		case queue <- env:
		case <-ctx.Done():
			return
		}
	}
}

// worker drains the queue into its private tally until the queue closes
// or the run is stopped
func (p *Pool) worker(
	workerID int,
	queue <-chan envelope,
	predicate parex.Predicate,
	ctrl *controller,
	t *tally,
) {
	p.logger.Debug("worker started", "worker_id", workerID)

	recovered := panics.Try(func() {
		p.process(queue, predicate, ctrl, t)
	})
	if recovered != nil {
		ctrl.fail(parex.MatcherError(recovered.AsError(), false))
	}

	p.logger.Debug("worker finished",
		"worker_id", workerID,
		"matches", t.matches,
		"seen", t.stats.Seen())
}

func (p *Pool) process(queue <-chan envelope, predicate parex.Predicate, ctrl *controller, t *tally) {
	for {
		if ctrl.isStopped() {
			return
		}

		env, ok := <-queue
		if !ok {
			return
		}

		if env.err != nil {
			if env.err.Fatal() {
				if ctrl.fail(env.err) {
					p.logger.Debug("fatal failure observed", "error", env.err)
				}
				return
			}
			t.addFailure(env.err)
			continue
		}

		t.addItem(env.item)
		if !predicate.Match(env.item) {
			continue
		}

		if !ctrl.reserve() {
			// limit exhausted: drop the match and stop siblings
			ctrl.halt()
			return
		}
		t.addMatch(env.item)
	}
}

// IsRunning returns true if the pool is currently executing a job
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}

// Runs returns the number of completed executions
func (p *Pool) Runs() int64 {
	return p.runs.Load()
}

// sourceFailure turns an error returned by Producer.Walk into a fatal failure
func sourceFailure(err error) *parex.Error {
	var pe *parex.Error
	if errors.As(err, &pe) {
		if pe.Fatal() {
			return pe
		}
		// a recoverable failure before the first item still leaves nothing to traverse
		return &parex.Error{Code: parex.CodeInvalidSource, Detail: "producer failed to start", Err: pe}
	}
	return &parex.Error{Code: parex.CodeInvalidSource, Detail: "producer failed to start", Err: err}
}

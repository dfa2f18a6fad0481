// Package executor is the parallel traversal-and-match engine behind parex.
//
// A run has one feeder goroutine and N worker goroutines. The feeder pulls
// items from a single parex.Producer and publishes them into a bounded queue
// sized to twice the worker count, so a slow pool applies backpressure to
// the producer instead of buffering without bound. Each worker tests items
// with the shared parex.Predicate and accumulates counts, matched paths and
// recoverable failures in a private tally that is merged once after join.
//
// # Basic Usage
//
//	pool := executor.NewPool(logger)
//
//	result, err := pool.Execute(ctx, executor.Job{
//	    Producer:  producer,
//	    Predicate: predicate,
//	    Config:    cfg,
//	})
//
// # Limit Enforcement
//
// Every accepted match must first reserve a slot with an atomic
// decrement-if-positive on the remaining-limit counter. Result.Matches
// therefore never exceeds the configured limit. Which matches win the last
// slots is unspecified.
//
// # Cancellation
//
// A single atomic flag is checked by every worker between items and by the
// feeder between pulls. It is raised when the limit is exhausted, when a
// fatal failure is observed, or when the caller's context is cancelled.
// At most one in-flight item per worker is processed after the flag is set.
//
// # Error Handling
//
// Recoverable failures never halt a run. They are counted in
// Stats.Failures and, when collection is enabled, returned verbatim in
// Result.Errors. The first fatal failure wins the run's single error slot,
// halts every goroutine and is returned alongside the partial result.
// Panics raised by a producer or predicate are converted into fatal
// failures instead of crashing the process.
//
// # Concurrency Guarantees
//
//   - Bounded concurrency (exactly Threads workers plus one feeder)
//   - No goroutine leaks
//   - No ordering guarantee for Result.Paths or Result.Errors
//   - One Execute per Pool at a time
package executor

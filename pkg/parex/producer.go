package parex

import (
	"context"
	"errors"
)

// ErrIteratorDone is returned by Iterator.Next once the sequence is exhausted
var ErrIteratorDone = errors.New("parex: iterator done")

// Iterator is a pull-based, possibly infinite sequence of items.
//
// Next returns the next item. Any error other than ErrIteratorDone describes
// a single item that could not be produced; iteration continues after it.
// If ctx is done, Next should return ErrIteratorDone or ctx.Err().
type Iterator interface {
	Next(ctx context.Context) (Item, error)
	// Stop releases resources held by the iterator
	Stop()
}

// Producer supplies the items a run traverses.
//
// Implementations are shared across goroutines and must not hold
// unsynchronized mutable state. Walk itself is called once per run, and
// the returned iterator is only ever driven by a single goroutine.
// Producers must not spawn goroutines of their own.
type Producer interface {
	Walk(ctx context.Context, cfg WalkConfig) (Iterator, error)
}

// ProducerFunc adapts a function to the Producer interface
type ProducerFunc func(ctx context.Context, cfg WalkConfig) (Iterator, error)

// Walk calls f(ctx, cfg)
func (f ProducerFunc) Walk(ctx context.Context, cfg WalkConfig) (Iterator, error) {
	return f(ctx, cfg)
}

// Predicate decides whether an item is a match.
//
// Match is called concurrently from every worker and must be safe for
// concurrent use without external locking. It has no error channel:
// failures belong to the producer.
type Predicate interface {
	Match(item Item) bool
}

// PredicateFunc adapts a function to the Predicate interface
type PredicateFunc func(item Item) bool

// Match calls f(item)
func (f PredicateFunc) Match(item Item) bool {
	return f(item)
}

// MatchAll accepts every item
var MatchAll Predicate = PredicateFunc(func(Item) bool { return true })

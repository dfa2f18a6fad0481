// Package source provides in-memory producers for parex.
//
// Slice replays a fixed script of items and failures, and Generator builds
// items on demand from an index, which makes it suitable for very large or
// infinite sequences. Both honour the MaxDepth hint.
package source

import (
	"context"
	"path"
	"strconv"

	"github.com/aryankumar/parex/pkg/parex"
)

// Entry is one scripted element of a producer: an item or a failure
type Entry struct {
	Item parex.Item
	Err  error
}

// Item builds a scripted item entry. Name defaults to the base of p.
func Item(p string, kind parex.Kind) Entry {
	return Entry{Item: parex.Item{
		Path: p,
		Name: path.Base(p),
		Kind: kind,
	}}
}

// Fail builds a scripted failure entry
func Fail(err error) Entry {
	return Entry{Err: err}
}

// Slice is a producer over a fixed list of entries.
// It is safe to Walk concurrently; each walk gets its own cursor.
type Slice struct {
	entries []Entry
}

var _ parex.Producer = (*Slice)(nil)

// NewSlice creates a producer that yields entries in order
func NewSlice(entries ...Entry) *Slice {
	return &Slice{entries: entries}
}

// Names creates a producer yielding one primary item per name
func Names(names ...string) *Slice {
	entries := make([]Entry, len(names))
	for i, n := range names {
		entries[i] = Item(n, parex.KindPrimary)
	}
	return NewSlice(entries...)
}

// Len returns the number of scripted entries
func (s *Slice) Len() int {
	return len(s.entries)
}

// Walk returns an iterator over the scripted entries
func (s *Slice) Walk(_ context.Context, cfg parex.WalkConfig) (parex.Iterator, error) {
	return &sliceIter{entries: s.entries, cfg: cfg}, nil
}

type sliceIter struct {
	entries []Entry
	cfg     parex.WalkConfig
	pos     int
	stopped bool
}

func (it *sliceIter) Next(ctx context.Context) (parex.Item, error) {
	for !it.stopped && it.pos < len(it.entries) {
		if ctx.Err() != nil {
			return parex.Item{}, parex.ErrIteratorDone
		}

		e := it.entries[it.pos]
		it.pos++

		if e.Err != nil {
			return parex.Item{}, e.Err
		}
		if !it.cfg.DepthAllowed(e.Item.Depth) {
			continue
		}
		return e.Item, nil
	}
	return parex.Item{}, parex.ErrIteratorDone
}

func (it *sliceIter) Stop() {
	it.stopped = true
}

// Generator is a producer that builds entries on demand.
// Fn must be safe for concurrent use when the generator is walked concurrently.
type Generator struct {
	// N is the number of entries to produce; a negative N never ends
	N int

	// Fn builds the entry at index i
	Fn func(i int) Entry
}

var _ parex.Producer = (*Generator)(nil)

// Counter returns an infinite generator of primary items named "item-<i>"
func Counter() *Generator {
	return &Generator{N: -1, Fn: func(i int) Entry {
		return Item("item-"+strconv.Itoa(i), parex.KindPrimary)
	}}
}

// Walk returns an iterator calling Fn for each index
func (g *Generator) Walk(_ context.Context, cfg parex.WalkConfig) (parex.Iterator, error) {
	if g.Fn == nil {
		return nil, parex.InvalidSource("generator has no Fn")
	}
	return &genIter{gen: g, cfg: cfg}, nil
}

type genIter struct {
	gen     *Generator
	cfg     parex.WalkConfig
	next    int
	stopped bool
}

func (it *genIter) Next(ctx context.Context) (parex.Item, error) {
	for !it.stopped && (it.gen.N < 0 || it.next < it.gen.N) {
		if ctx.Err() != nil {
			return parex.Item{}, parex.ErrIteratorDone
		}

		e := it.gen.Fn(it.next)
		it.next++

		if e.Err != nil {
			return parex.Item{}, e.Err
		}
		if !it.cfg.DepthAllowed(e.Item.Depth) {
			continue
		}
		return e.Item, nil
	}
	return parex.Item{}, parex.ErrIteratorDone
}

func (it *genIter) Stop() {
	it.stopped = true
}

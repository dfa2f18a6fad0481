package fsys

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/aryankumar/parex/pkg/parex"
)

var errNotDir = errors.New("not a directory")

// frame is one directory being listed
type frame struct {
	dir     string
	depth   int
	entries []fs.FileInfo
	pos     int
}

type iterator struct {
	walker   *Walker
	cfg      parex.WalkConfig
	rootItem *parex.Item
	stack    []*frame
	pending  error
	stopped  bool
}

// open lists dir and pushes it; a listing failure is reported on the next call
func (it *iterator) open(dir string, depth int) {
	entries, err := afero.ReadDir(it.walker.fs, dir)
	if err != nil {
		it.pending = parex.FromPathError(dir, err)
		return
	}
	it.stack = append(it.stack, &frame{dir: dir, depth: depth, entries: entries})
}

func (it *iterator) Next(ctx context.Context) (parex.Item, error) {
	if it.rootItem != nil {
		root := *it.rootItem
		it.rootItem = nil
		return root, nil
	}

	for !it.stopped {
		if ctx.Err() != nil {
			return parex.Item{}, parex.ErrIteratorDone
		}

		if it.pending != nil {
			err := it.pending
			it.pending = nil
			return parex.Item{}, err
		}

		if len(it.stack) == 0 {
			break
		}

		top := it.stack[len(it.stack)-1]
		if top.pos >= len(top.entries) {
			it.stack[len(it.stack)-1] = nil
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		info := top.entries[top.pos]
		top.pos++

		path := filepath.Join(top.dir, info.Name())
		item := it.walker.item(path, info, top.depth)
		if item.Kind == parex.KindContainer && it.cfg.Descend(top.depth) {
			it.open(path, top.depth+1)
		}
		return item, nil
	}
	return parex.Item{}, parex.ErrIteratorDone
}

func (it *iterator) Stop() {
	it.stopped = true
	it.stack = nil
}

// Package fsys is a parex producer over an afero filesystem.
//
// Traversal is a lazy depth-first walk: a directory is only read when the
// iterator reaches it, so memory stays proportional to the depth of the tree
// rather than its size. Entries within a directory are visited in name order.
// Symbolic links are reported as links and never followed.
package fsys

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/aryankumar/parex/pkg/parex"
)

// Walker walks a directory tree rooted at a path of an afero.Fs
type Walker struct {
	fs          afero.Fs
	root        string
	metadata    bool
	includeRoot bool
}

var _ parex.Producer = (*Walker)(nil)

// Option configures a Walker
type Option func(*Walker)

// WithMetadata attaches the entry's fs.FileInfo as item metadata
func WithMetadata(on bool) Option {
	return func(w *Walker) {
		w.metadata = on
	}
}

// IncludeRoot emits the root directory itself as a container at depth 0.
// By default only its descendants are emitted, starting at depth 1.
func IncludeRoot(on bool) Option {
	return func(w *Walker) {
		w.includeRoot = on
	}
}

// New creates a walker over root in fsys
func New(fsys afero.Fs, root string, opts ...Option) *Walker {
	w := &Walker{
		fs:   fsys,
		root: filepath.Clean(root),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewOS creates a read-only walker over the host filesystem
func NewOS(root string, opts ...Option) *Walker {
	return New(afero.NewReadOnlyFs(afero.NewOsFs()), root, opts...)
}

// Root returns the cleaned root path
func (w *Walker) Root() string {
	return w.root
}

// Walk starts a traversal. A missing or non-directory root is fatal.
func (w *Walker) Walk(_ context.Context, cfg parex.WalkConfig) (parex.Iterator, error) {
	info, err := w.fs.Stat(w.root)
	if err != nil {
		return nil, parex.InvalidSourcePath(w.root, err)
	}
	if !info.IsDir() {
		return nil, parex.InvalidSourcePath(w.root, &fs.PathError{Op: "walk", Path: w.root, Err: errNotDir})
	}

	it := &iterator{walker: w, cfg: cfg}
	if w.includeRoot {
		root := w.item(w.root, info, 0)
		it.rootItem = &root
	}
	if cfg.Descend(0) {
		it.open(w.root, 1)
	}
	return it, nil
}

func (w *Walker) item(path string, info fs.FileInfo, depth int) parex.Item {
	item := parex.Item{
		Path:  path,
		Name:  info.Name(),
		Kind:  kindOf(info.Mode()),
		Depth: depth,
	}
	if w.metadata {
		item.Metadata = info
	}
	return item
}

func kindOf(mode fs.FileMode) parex.Kind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return parex.KindLink
	case mode.IsDir():
		return parex.KindContainer
	case mode.IsRegular():
		return parex.KindPrimary
	default:
		return parex.KindOther
	}
}

package parex

import "fmt"

// Kind is the coarse classification of an Item.
// Producers map their own notion of "file", "directory", "row", "pod" onto
// these four buckets so statistics stay comparable across sources.
type Kind int

const (
	// KindPrimary is a leaf item such as a regular file, a row or a pod
	KindPrimary Kind = iota
	// KindContainer is an item that holds other items such as a directory or namespace
	KindContainer
	// KindLink is a reference to another item such as a symbolic link
	KindLink
	// KindOther is anything that does not fit the buckets above
	KindOther
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case KindPrimary:
		return "primary"
	case KindContainer:
		return "container"
	case KindLink:
		return "link"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a kind name back into a Kind.
// Unknown names map to KindOther.
func ParseKind(s string) Kind {
	switch s {
	case "primary", "file":
		return KindPrimary
	case "container", "dir", "directory":
		return KindContainer
	case "link", "symlink":
		return KindLink
	default:
		return KindOther
	}
}

// Item is one unit seen during traversal
type Item struct {
	// Path identifies the item (a filesystem path, a record key, "namespace/pod")
	Path string

	// Name is the human-readable name of the item
	Name string

	// Kind is the coarse item classification
	Kind Kind

	// Depth is how deep in the traversal the item was found
	Depth int

	// Metadata is nil unless the producer chose to populate it.
	// The engine never fetches it on its own.
	Metadata any
}

// String returns the item path
func (i Item) String() string {
	return i.Path
}

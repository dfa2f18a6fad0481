package parex

const (
	// NoLimit disables the match limit
	NoLimit = -1

	// NoMaxDepth disables the depth hint
	NoMaxDepth = -1
)

// RunConfig is the frozen set of run parameters.
// It is built once by the assembly layer and shared read-only by every worker.
type RunConfig struct {
	// Threads is the number of worker goroutines (>= 1)
	Threads int

	// MaxDepth is forwarded to the producer as a hint; NoMaxDepth means unlimited
	MaxDepth int

	// Limit caps the number of accepted matches; NoLimit means unlimited.
	// A limit of zero accepts nothing.
	Limit int

	// CollectPaths records the path of every accepted match
	CollectPaths bool

	// CollectErrors records every recoverable failure
	CollectErrors bool
}

// DefaultRunConfig returns a config with the given thread count and no limits
func DefaultRunConfig(threads int) RunConfig {
	return RunConfig{
		Threads:  threads,
		MaxDepth: NoMaxDepth,
		Limit:    NoLimit,
	}
}

// Validate checks the config before any goroutine starts
func (c RunConfig) Validate() error {
	if c.Threads < 1 {
		return InvalidThreadCount(c.Threads)
	}
	return nil
}

// HasLimit reports whether a match limit is configured
func (c RunConfig) HasLimit() bool {
	return c.Limit >= 0
}

// HasMaxDepth reports whether a depth hint is configured
func (c RunConfig) HasMaxDepth() bool {
	return c.MaxDepth >= 0
}

// Walk returns the read-only view handed to producers
func (c RunConfig) Walk() WalkConfig {
	return WalkConfig{
		Threads:  c.Threads,
		MaxDepth: c.MaxDepth,
	}
}

// WalkConfig carries the traversal hints a producer may honour
type WalkConfig struct {
	Threads  int
	MaxDepth int
}

// DepthAllowed reports whether an item at depth may be emitted
func (w WalkConfig) DepthAllowed(depth int) bool {
	return w.MaxDepth < 0 || depth <= w.MaxDepth
}

// Descend reports whether a container at depth should be expanded
func (w WalkConfig) Descend(depth int) bool {
	return w.MaxDepth < 0 || depth < w.MaxDepth
}

// Package parex defines the contracts of the parallel traversal-and-match
// engine: the Item that flows through a run, the Producer and Predicate
// capabilities collaborators implement, the Error taxonomy, the frozen
// RunConfig and the aggregate Result.
//
// Failures are classified as recoverable or fatal. Callers should branch on
// Recoverable/Fatal (or IsRecoverable/IsFatal for arbitrary error chains)
// instead of switching over every Code, since new codes may be added.
//
// Whether a producer fills Item.Metadata eagerly or leaves it nil is the
// producer's choice; the engine never fetches it.
package parex

// Package match provides ready-made parex predicates.
//
// All predicates here are immutable after construction and safe for
// concurrent use by every worker of a run.
package match

import (
	"regexp"
	"strings"

	"github.com/aryankumar/parex/pkg/parex"
)

// All accepts every item
func All() parex.Predicate {
	return parex.MatchAll
}

// Substring matches items whose name contains pattern, ignoring case
type Substring struct {
	pattern string
}

// NewSubstring creates a case-insensitive substring predicate.
// The pattern is lower-cased once here rather than per item.
func NewSubstring(pattern string) *Substring {
	return &Substring{pattern: strings.ToLower(pattern)}
}

// Match implements parex.Predicate
func (s *Substring) Match(item parex.Item) bool {
	return strings.Contains(strings.ToLower(item.Name), s.pattern)
}

// Regexp matches items whose name matches a regular expression
type Regexp struct {
	re *regexp.Regexp
}

// NewRegexp compiles expr into a predicate.
// A bad expression yields a fatal invalid-pattern failure.
func NewRegexp(expr string) (*Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, parex.InvalidPattern(expr, err)
	}
	return &Regexp{re: re}, nil
}

// Match implements parex.Predicate
func (r *Regexp) Match(item parex.Item) bool {
	return r.re.MatchString(item.Name)
}

// Kinds matches items of any of the given kinds
func Kinds(kinds ...parex.Kind) parex.Predicate {
	set := make(map[parex.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return parex.PredicateFunc(func(item parex.Item) bool {
		_, ok := set[item.Kind]
		return ok
	})
}

// And matches when every predicate matches. An empty And matches everything.
func And(preds ...parex.Predicate) parex.Predicate {
	return parex.PredicateFunc(func(item parex.Item) bool {
		for _, p := range preds {
			if !p.Match(item) {
				return false
			}
		}
		return true
	})
}

// Or matches when any predicate matches. An empty Or matches nothing.
func Or(preds ...parex.Predicate) parex.Predicate {
	return parex.PredicateFunc(func(item parex.Item) bool {
		for _, p := range preds {
			if p.Match(item) {
				return true
			}
		}
		return false
	})
}

// Not inverts a predicate
func Not(pred parex.Predicate) parex.Predicate {
	return parex.PredicateFunc(func(item parex.Item) bool {
		return !pred.Match(item)
	})
}

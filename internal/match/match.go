// Package match decides whether a header set hits a forbidden reference set.
package match

import (
	"sort"

	"github.com/vvka-141/csvsweep/internal/files/header"
	"github.com/vvka-141/csvsweep/internal/registry"
)

// Result describes the first reference set that reached the threshold.
type Result struct {
	// SetIndex is the 1-based position of the set in registry order.
	SetIndex int
	SetName  string

	// Count is the size of the intersection.
	Count int

	// Matched lists the shared names in lexical order.
	Matched []string
}

// Evaluate checks headers against sets in order and returns the first set
// whose intersection with headers has at least threshold names. Later sets
// are not considered once one matches, even if they would score higher.
//
// Evaluate has no side effects.
func Evaluate(headers header.Set, sets []registry.ReferenceSet, threshold int) (Result, bool) {
	for i, set := range sets {
		shared := Intersect(headers, set)
		if len(shared) >= threshold {
			return Result{
				SetIndex: i + 1,
				SetName:  set.Name(),
				Count:    len(shared),
				Matched:  shared,
			}, true
		}
	}
	return Result{}, false
}

// Intersect returns the names present in both headers and set, sorted.
func Intersect(headers header.Set, set registry.ReferenceSet) []string {
	shared := make([]string, 0)
	for name := range headers {
		if set.Contains(name) {
			shared = append(shared, name)
		}
	}
	sort.Strings(shared)
	return shared
}

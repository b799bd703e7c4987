// Package sortutil merges and deduplicates the partial result runs spec.md
// §4.H's glob driver produces per sub-pattern (one per brace alternative,
// one per recursive descent branch) into the single sorted, duplicate-free
// result list the driver returns.
//
// Grounded on bmatcuk/doublestar's sortAndRemoveDups: running independent
// alternatives (one doGlob per brace expansion) can yield results that are
// individually sorted but, concatenated, are neither sorted nor unique.
// sortutil concatenates the runs and re-sorts the whole result, using Go
// generics instead of duplicating the helper once per element type.
package sortutil

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// SortDedup sorts s in place and removes consecutive duplicates, returning
// the (possibly shorter) result slice.
func SortDedup[T constraints.Ordered](s []T) []T {
	slices.Sort(s)

	return dedupSorted(s)
}

// MergeDedup concatenates any number of runs into a new slice, then sorts it
// and removes duplicates. The runs need not be sorted themselves. Grounded on
// doublestar's sortAndRemoveDups, generalized to return a new slice rather
// than shifting one in place, since the driver's partial runs are
// independently allocated per sub-pattern.
func MergeDedup[T constraints.Ordered](runs ...[]T) []T {
	total := 0
	for _, r := range runs {
		total += len(r)
	}

	out := make([]T, 0, total)
	for _, r := range runs {
		out = append(out, r...)
	}

	return SortDedup(out)
}

func dedupSorted[T constraints.Ordered](s []T) []T {
	if len(s) < 2 {
		return s
	}

	j := 1

	for i := 1; i < len(s); i++ {
		if s[i] != s[j-1] {
			s[j] = s[i]
			j++
		}
	}

	return s[:j]
}

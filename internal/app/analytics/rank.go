package analytics

import (
	"cmp"
	"slices"
)

// Scored pairs an item with its ranking score
type Scored[T any] struct {
	Item  T
	Score int
}

// Rank scores items, sorts them by score descending and keeps the first limit.
// Equal scores keep their input order. A limit <= 0 keeps everything.
func Rank[T any](items []T, score func(T) int, limit int) []Scored[T] {
	ranked := make([]Scored[T], len(items))
	for i, item := range items {
		ranked[i] = Scored[T]{Item: item, Score: score(item)}
	}
	SortDesc(ranked, func(s Scored[T]) int { return s.Score })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SortDesc stable-sorts items by key descending
func SortDesc[T any, K cmp.Ordered](items []T, key func(T) K) {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(key(b), key(a))
	})
}

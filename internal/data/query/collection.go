package query

import "sort"

// Group is one bucket produced by GroupBy.
type Group[K comparable, T any] struct {
	Key  K
	Rows []T
}

func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func Map[T, U any](rows []T, fn func(T) U) []U {
	out := make([]U, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

// IndexBy builds a join index keyed by key. Later rows win on duplicate keys.
func IndexBy[T any, K comparable](rows []T, key func(T) K) map[K]T {
	out := make(map[K]T, len(rows))
	for _, r := range rows {
		out[key(r)] = r
	}
	return out
}

// GroupBy buckets rows by key. Groups come out in the order their key was
// first seen and rows keep their input order inside a group.
func GroupBy[T any, K comparable](rows []T, key func(T) K) []Group[K, T] {
	pos := make(map[K]int)
	var out []Group[K, T]
	for _, r := range rows {
		k := key(r)
		i, ok := pos[k]
		if !ok {
			i = len(out)
			pos[k] = i
			out = append(out, Group[K, T]{Key: k})
		}
		out[i].Rows = append(out[i].Rows, r)
	}
	return out
}

// Lookup is GroupBy as a map, for left joins from an owning collection.
func Lookup[T any, K comparable](rows []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, r := range rows {
		k := key(r)
		out[k] = append(out[k], r)
	}
	return out
}

// SortStableDesc orders rows by descending rank in place; rows with equal rank
// keep their input order.
func SortStableDesc[T any](rows []T, greater func(a, b T) bool) {
	sort.SliceStable(rows, func(i, j int) bool { return greater(rows[i], rows[j]) })
}

// First returns the first row, or the zero value and false when rows is empty.
func First[T any](rows []T) (T, bool) {
	if len(rows) == 0 {
		var zero T
		return zero, false
	}
	return rows[0], true
}

// DistinctBy drops rows whose key was already seen, keeping first occurrences.
func DistinctBy[T any, K comparable](rows []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Pluck collects key(r) for every row, deduplicated, in first-seen order. The
// result is never nil, so it can be fed straight into an id filter.
func Pluck[T any](rows []T, key func(T) uint) []uint {
	seen := make(map[uint]struct{}, len(rows))
	out := make([]uint, 0, len(rows))
	for _, r := range rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

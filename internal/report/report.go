// Package report provides small aggregation helpers used by the stats
// endpoints. All helpers operate on in-memory slices already filtered by the
// repositories; an empty input always yields a zero value, never an error.
package report

// Count returns the number of items.
func Count[T any](items []T) int {
	return len(items)
}

// CountWhere returns the number of items satisfying pred.
func CountWhere[T any](items []T, pred func(T) bool) int {
	n := 0
	for _, item := range items {
		if pred(item) {
			n++
		}
	}
	return n
}

// Mean averages the values extracted from items. Empty input yields 0.
func Mean[T any](items []T, value func(T) float64) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, item := range items {
		sum += value(item)
	}
	return sum / float64(len(items))
}

// Frequencies tallies items by the extracted key.
func Frequencies[T any, K comparable](items []T, key func(T) K) map[K]int {
	freq := make(map[K]int, len(items))
	for _, item := range items {
		freq[key(item)]++
	}
	return freq
}

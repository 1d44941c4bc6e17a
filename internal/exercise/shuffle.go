package exercise

import (
	"math/rand"
	"time"
)

// Rand is the subset of rand.Rand the engine needs. Runs are
// non-reproducible by design; tests inject a seeded source.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a time-seeded random source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// shuffled returns a Fisher-Yates shuffled copy of items. The input slice is
// never mutated; the output is always a permutation of the input.
func shuffled[T any](r Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// window returns at most n leading items, or all items when n <= 0 or n
// exceeds the slice length.
func window[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}

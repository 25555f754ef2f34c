// Package shuffle provides the unbiased permutation primitive behind every
// randomization in the card engine.
package shuffle

import "math/rand/v2"

// Shuffle returns a new slice holding the elements of s in uniformly random
// order (Fisher–Yates). The input is never mutated.
func Shuffle[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Indices returns the integers [0, n) in uniformly random order.
func Indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return Shuffle(idx)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package extrude

// Order selects the sequence in which walls are revealed.
type Order int

const (
	// OrderIndex reveals walls in outline order.
	OrderIndex Order = iota

	// OrderShuffled reveals walls in a random permutation fixed at start.
	OrderShuffled
)

// String returns the order name.
func (o Order) String() string {
	switch o {
	case OrderIndex:
		return "index"
	case OrderShuffled:
		return "shuffled"
	default:
		return "unknown"
	}
}

// Intn is the random source used for shuffling. *rand.Rand from
// math/rand/v2 satisfies it via IntN.
type Intn interface {
	IntN(n int) int
}

// WallOrder returns the reveal rank of each of n walls: rank[i] is the slot
// at which wall i appears. OrderIndex yields the identity; OrderShuffled
// yields a Fisher-Yates permutation drawn from r.
func WallOrder(n int, o Order, r Intn) []int {
	if n <= 0 {
		return nil
	}
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i
	}
	if o != OrderShuffled || r == nil {
		return seq
	}
	for i := n - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		seq[i], seq[j] = seq[j], seq[i]
	}
	// seq is the draw sequence; invert it into per-wall ranks.
	rank := make([]int, n)
	for slot, wall := range seq {
		rank[wall] = slot
	}
	return rank
}

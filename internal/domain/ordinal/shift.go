// Package ordinal computes how the ordinals of an ordered collection change
// when one item is moved.
//
// A collection is any set of items ranked by a non-negative integer ordinal:
// the tasks of one list, or the lists in one member's list-of-lists. Ordinals
// are unique within a collection but need not be contiguous.
package ordinal

import "fmt"

// Shift describes the minimal update that moves one item from position From
// to position To.
//
// The moved item receives ordinal To. Every other item whose ordinal lies in
// [Lower, Upper] is shifted by Sign. Items outside that range are untouched.
type Shift struct {
	From  int
	To    int
	Lower int
	Upper int
	// Sign is +1 when the item moves towards the front (From > To),
	// -1 when it moves towards the back, and 0 for a no-op.
	Sign int
}

// NewShift computes the Shift for moving an item from fromIndex to toIndex.
// Positions are the ones the caller observed, not necessarily stored ordinals;
// the shift is relative, so gaps in the sequence are tolerated.
//
// Returns an error if either position is negative.
func NewShift(fromIndex, toIndex int) (Shift, error) {
	if fromIndex < 0 || toIndex < 0 {
		return Shift{}, fmt.Errorf("positions must be non-negative, got from=%d to=%d", fromIndex, toIndex)
	}

	return Shift{
		From:  fromIndex,
		To:    toIndex,
		Lower: min(fromIndex, toIndex),
		Upper: max(fromIndex, toIndex),
		Sign:  signum(fromIndex - toIndex),
	}, nil
}

// IsNoop reports whether the move leaves every ordinal unchanged.
func (s Shift) IsNoop() bool {
	return s.Sign == 0
}

// Span is the number of items whose ordinal the shift rewrites, the moved
// item included, assuming the collection is contiguous over [Lower, Upper].
func (s Shift) Span() int {
	if s.IsNoop() {
		return 0
	}
	return s.Upper - s.Lower + 1
}

// Next returns the new ordinal for an item that currently has ordinal
// current. moved must be true for the item being moved.
func (s Shift) Next(current int, moved bool) int {
	if moved {
		return s.To
	}
	if current >= s.Lower && current <= s.Upper {
		return current + s.Sign
	}
	return current
}

func signum(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// Package arrange builds and validates the 25-slot grid arrangement that
// maps card positions to term indices.
package arrange

import (
	"fmt"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/shuffle"
)

const (
	// Size is the number of grid slots on a card.
	Size = 25
	// FreeSlot is the fixed center slot (row 2, col 2, zero-indexed).
	FreeSlot = 12
	// FreeSpace is the sentinel stored in the free slot.
	FreeSpace = -1
	// MinTerms is the smallest term pool that can fill a card.
	MinTerms = Size - 1
)

// Generate returns a fresh arrangement over a term pool of poolSize:
// 24 distinct indices drawn uniformly from [0, poolSize) laid into the 25
// slots in shuffled order, with the free slot forced to the sentinel.
// This is the only place that assigns meaning to the free slot.
func Generate(poolSize int) ([]int, error) {
	if poolSize < MinTerms {
		return nil, &apperr.InsufficientTermsError{Have: poolSize, Need: MinTerms}
	}
	picked := shuffle.Indices(poolSize)[:MinTerms]
	arr := make([]int, Size)
	next := 0
	for slot := range arr {
		if slot == FreeSlot {
			arr[slot] = FreeSpace
			continue
		}
		arr[slot] = picked[next]
		next++
	}
	return arr, nil
}

// Sequential returns the default mapping used when a card carries no
// explicit arrangement: slot i maps to term i before the free slot and to
// term i-1 after it.
func Sequential(poolSize int) ([]int, error) {
	if poolSize < MinTerms {
		return nil, &apperr.InsufficientTermsError{Have: poolSize, Need: MinTerms}
	}
	arr := make([]int, Size)
	for slot := range arr {
		switch {
		case slot == FreeSlot:
			arr[slot] = FreeSpace
		case slot < FreeSlot:
			arr[slot] = slot
		default:
			arr[slot] = slot - 1
		}
	}
	return arr, nil
}

// Validate checks that arr is a well-formed arrangement over a pool of
// poolSize terms: length 25, sentinel exactly at the free slot, and 24
// pairwise-distinct indices within [0, poolSize).
func Validate(arr []int, poolSize int) error {
	if len(arr) != Size {
		return fmt.Errorf("arrangement has %d slots, want %d", len(arr), Size)
	}
	seen := make(map[int]bool, MinTerms)
	for slot, v := range arr {
		if slot == FreeSlot {
			if v != FreeSpace {
				return fmt.Errorf("slot %d must hold the free-space sentinel, got %d", FreeSlot, v)
			}
			continue
		}
		if v < 0 || v >= poolSize {
			return fmt.Errorf("slot %d index %d out of range [0, %d)", slot, v, poolSize)
		}
		if seen[v] {
			return fmt.Errorf("term index %d appears twice", v)
		}
		seen[v] = true
	}
	return nil
}

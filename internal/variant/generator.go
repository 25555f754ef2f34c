// Package variant generates independent re-arrangements ("variants") of a
// base card in cancellable, progress-reporting batches.
package variant

import (
	"context"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/arrange"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
)

const (
	// MinCount and MaxCount bound a single generation request.
	MinCount = 1
	MaxCount = 50
	// DefaultBatchSize is the number of arrangements generated between
	// progress reports and cancellation checks.
	DefaultBatchSize = 5
)

// Variant is a card-like record sharing the base card's fields but
// carrying its own arrangement and no identity or timestamps.
type Variant struct {
	Title          string   `json:"title"`
	Terms          []string `json:"terms"`
	FreeSpaceImage string   `json:"freeSpaceImage,omitempty"`
	FreeSpaceIcon  string   `json:"freeSpaceIcon,omitempty"`
	Arrangement    []int    `json:"arrangement"`
}

// Options tune a generation run. A nil Progress is allowed.
type Options struct {
	// BatchSize caps how many arrangements are generated per batch;
	// zero or negative means DefaultBatchSize. The effective size never
	// exceeds the requested count.
	BatchSize int
	// Progress receives a percentage in [0, 100]: once at the start and
	// once after each batch. Reported values are monotonically
	// non-decreasing and end at 100 on success.
	Progress func(pct int)
}

// Generate produces count variants of base, in batches, checking ctx
// between arrangements. On cancellation it discards any partial batch and
// returns apperr.ErrCancelled (callers must not treat that as a user-facing
// failure). Variants appear in generation order.
func Generate(ctx context.Context, base *card.Card, count int, opts Options) ([]Variant, error) {
	if base == nil {
		return nil, apperr.ErrNoCard
	}
	if count < MinCount || count > MaxCount {
		return nil, &apperr.RangeError{Name: "count", Value: count, Min: MinCount, Max: MaxCount}
	}

	// Same check the card builder runs, so both paths fail identically.
	terms, err := card.ValidateTerms(base.Terms)
	if err != nil {
		return nil, err
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if batchSize > count {
		batchSize = count
	}

	report := func(done int) {
		if opts.Progress != nil {
			opts.Progress(done * 100 / count)
		}
	}

	variants := make([]Variant, 0, count)
	report(0)
	for len(variants) < count {
		remaining := count - len(variants)
		if remaining > batchSize {
			remaining = batchSize
		}
		for i := 0; i < remaining; i++ {
			select {
			case <-ctx.Done():
				return nil, apperr.ErrCancelled
			default:
			}
			arr, err := arrange.Generate(len(terms))
			if err != nil {
				return nil, err
			}
			variants = append(variants, Variant{
				Title:          base.Title,
				Terms:          terms,
				FreeSpaceImage: base.FreeSpaceImage,
				FreeSpaceIcon:  base.FreeSpaceIcon,
				Arrangement:    arr,
			})
		}
		report(len(variants))
	}
	return variants, nil
}

package variant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/arrange"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
)

func baseCard(t *testing.T) *card.Card {
	t.Helper()
	terms := make([]string, 24)
	for i := range terms {
		terms[i] = fmt.Sprintf("pivot-%d", i)
	}
	c, err := card.Build(card.Input{Title: "Variant Bingo", Terms: terms})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGenerate_CountBounds(t *testing.T) {
	base := baseCard(t)
	ctx := context.Background()

	for _, bad := range []int{0, 51, -1} {
		_, err := Generate(ctx, base, bad, Options{})
		var re *apperr.RangeError
		if !errors.As(err, &re) {
			t.Errorf("count %d: error = %v (%T), want RangeError", bad, err, err)
		}
	}

	for _, ok := range []int{1, 50} {
		vs, err := Generate(ctx, base, ok, Options{})
		if err != nil {
			t.Fatalf("count %d: %v", ok, err)
		}
		if len(vs) != ok {
			t.Errorf("count %d: got %d variants", ok, len(vs))
		}
	}
}

func TestGenerate_VariantShape(t *testing.T) {
	base := baseCard(t)
	vs, err := Generate(context.Background(), base, 3, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vs {
		if v.Title != base.Title {
			t.Errorf("variant %d title = %q", i, v.Title)
		}
		if err := arrange.Validate(v.Arrangement, len(base.Terms)); err != nil {
			t.Errorf("variant %d arrangement: %v", i, err)
		}
	}
}

func TestGenerate_VariantsIndependent(t *testing.T) {
	base := baseCard(t)
	vs, err := Generate(context.Background(), base, 5, Options{})
	if err != nil {
		t.Fatal(err)
	}
	allEqual := true
	for _, v := range vs[1:] {
		for i := range v.Arrangement {
			if v.Arrangement[i] != vs[0].Arrangement[i] {
				allEqual = false
			}
		}
	}
	if allEqual {
		t.Error("all 5 variant arrangements identical")
	}
}

func TestGenerate_ProgressMonotone(t *testing.T) {
	base := baseCard(t)
	var reports []int
	_, err := Generate(context.Background(), base, 12, Options{
		BatchSize: 5,
		Progress:  func(pct int) { reports = append(reports, pct) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 4 {
		t.Fatalf("reports = %v, want initial report plus 3 batches", reports)
	}
	if reports[0] != 0 {
		t.Errorf("first progress = %d, want 0", reports[0])
	}
	last := -1
	for _, pct := range reports {
		if pct < last {
			t.Fatalf("progress went backwards: %v", reports)
		}
		last = pct
	}
	if reports[len(reports)-1] != 100 {
		t.Errorf("final progress = %d, want 100", reports[len(reports)-1])
	}
}

func TestGenerate_CancelledMidRun(t *testing.T) {
	base := baseCard(t)
	ctx, cancel := context.WithCancel(context.Background())

	var progressed bool
	vs, err := Generate(ctx, base, 3, Options{
		BatchSize: 1,
		Progress: func(pct int) {
			// Cancel after the first progress report.
			if !progressed {
				progressed = true
				cancel()
			}
		},
	})
	if !errors.Is(err, apperr.ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
	if vs != nil {
		t.Errorf("partial variants delivered on cancel: %d", len(vs))
	}
}

func TestGenerate_TermPoolChecked(t *testing.T) {
	base := baseCard(t)
	base.Terms = base.Terms[:23]
	_, err := Generate(context.Background(), base, 2, Options{})
	var ie *apperr.InsufficientTermsError
	if !errors.As(err, &ie) {
		t.Fatalf("error = %v (%T), want InsufficientTermsError", err, err)
	}
}

func TestGenerate_NoBaseCard(t *testing.T) {
	_, err := Generate(context.Background(), nil, 2, Options{})
	if !errors.Is(err, apperr.ErrNoCard) {
		t.Fatalf("error = %v, want ErrNoCard", err)
	}
}

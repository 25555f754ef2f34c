package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/variant"
)

// fakeRenderer renders a card title as a text page.
type fakeRenderer struct {
	rendered int
	failAt   int // 0 means never fail
}

func (r *fakeRenderer) Render(_ context.Context, c *card.Card) (*Page, error) {
	r.rendered++
	if r.failAt > 0 && r.rendered == r.failAt {
		return nil, errors.New("render exploded")
	}
	return &Page{Title: c.Title, MIME: "text/plain", Data: []byte(c.Title)}, nil
}

// fakeWriter concatenates pages.
type fakeWriter struct{}

func (fakeWriter) Write(_ context.Context, pages []*Page) ([]byte, error) {
	var buf bytes.Buffer
	for _, p := range pages {
		buf.Write(p.Data)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func exportCard(t *testing.T) *card.Card {
	t.Helper()
	terms := make([]string, 24)
	for i := range terms {
		terms[i] = fmt.Sprintf("okr-%d", i)
	}
	c, err := card.Build(card.Input{Title: "Export Bingo", Terms: terms})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestExport_StagesInOrder(t *testing.T) {
	base := exportCard(t)
	vs, err := variant.Generate(context.Background(), base, 2, variant.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var stages []Stage
	p := NewPipeline(&fakeRenderer{}, fakeWriter{}, func(pr Progress) {
		stages = append(stages, pr.Stage)
	})
	doc, err := p.Export(context.Background(), base, vs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(doc) == 0 {
		t.Error("empty document")
	}

	want := []Stage{StageValidating, StageRendering, StageRendering, StageRendering, StageGenerating, StageComplete}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v", stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", stages, want)
		}
	}
}

func TestExport_Cancelled(t *testing.T) {
	base := exportCard(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(&fakeRenderer{}, fakeWriter{}, nil)
	_, err := p.Export(ctx, base, nil)
	if !errors.Is(err, apperr.ErrCancelled) {
		t.Fatalf("error = %v, want ErrCancelled", err)
	}
}

func TestExport_NoCard(t *testing.T) {
	p := NewPipeline(&fakeRenderer{}, fakeWriter{}, nil)
	if _, err := p.Export(context.Background(), nil, nil); !errors.Is(err, apperr.ErrNoCard) {
		t.Fatalf("error = %v, want ErrNoCard", err)
	}
}

func TestExport_RenderFailurePropagates(t *testing.T) {
	base := exportCard(t)
	p := NewPipeline(&fakeRenderer{failAt: 1}, fakeWriter{}, nil)
	if _, err := p.Export(context.Background(), base, nil); err == nil {
		t.Fatal("render failure swallowed")
	}
}

func TestExport_VariantPagesInGenerationOrder(t *testing.T) {
	base := exportCard(t)
	vs, err := variant.Generate(context.Background(), base, 3, variant.Options{})
	if err != nil {
		t.Fatal(err)
	}

	r := &fakeRenderer{}
	p := NewPipeline(r, fakeWriter{}, nil)
	if _, err := p.Export(context.Background(), base, vs); err != nil {
		t.Fatal(err)
	}
	if r.rendered != 4 {
		t.Errorf("rendered %d pages, want 4 (base + 3 variants)", r.rendered)
	}
}

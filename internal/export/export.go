// Package export defines the contract between the card core and the
// document-export collaborator, plus the orchestrator that drives a
// renderer and writer through the staged, cancellable export flow. The
// pixel pipeline itself lives outside the core; this package only fixes
// its interface.
package export

import (
	"context"
	"fmt"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/arrange"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/variant"
)

// Stage is a discrete phase of an export run.
type Stage string

const (
	StageValidating Stage = "validating"
	StageRendering  Stage = "rendering"
	StageGenerating Stage = "generating"
	StageComplete   Stage = "complete"
)

// Progress is one progress report from the orchestrator.
type Progress struct {
	Stage   Stage `json:"stage"`
	Percent int   `json:"percent"`
}

// Page is one rendered card surface, opaque to the core.
type Page struct {
	Title string
	MIME  string
	Data  []byte
}

// Renderer turns a card record into a visual surface.
type Renderer interface {
	Render(ctx context.Context, c *card.Card) (*Page, error)
}

// Writer assembles rendered pages into one downloadable document.
type Writer interface {
	Write(ctx context.Context, pages []*Page) ([]byte, error)
}

// Pipeline orchestrates renderer and writer through the staged flow.
// Cancellation is cooperative: ctx is checked between pages, mirroring the
// variant generator, and a cancelled run yields apperr.ErrCancelled.
type Pipeline struct {
	renderer Renderer
	writer   Writer
	progress func(Progress)
}

// NewPipeline creates an export pipeline. progress may be nil.
func NewPipeline(r Renderer, w Writer, progress func(Progress)) *Pipeline {
	return &Pipeline{renderer: r, writer: w, progress: progress}
}

// Export renders the base card followed by its variants, in order, and
// writes them into a single document.
func (p *Pipeline) Export(ctx context.Context, base *card.Card, variants []variant.Variant) ([]byte, error) {
	p.report(StageValidating, 0)
	if base == nil {
		return nil, apperr.ErrNoCard
	}
	if err := arrange.Validate(base.Arrangement, len(base.Terms)); err != nil {
		return nil, &apperr.ValidationError{Field: "arrangement", Message: err.Error()}
	}

	cards := make([]*card.Card, 0, 1+len(variants))
	cards = append(cards, base)
	for i := range variants {
		cards = append(cards, variantCard(base, &variants[i]))
	}

	pages := make([]*Page, 0, len(cards))
	for i, c := range cards {
		select {
		case <-ctx.Done():
			return nil, apperr.ErrCancelled
		default:
		}
		page, err := p.renderer.Render(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("export: render page %d: %w", i+1, err)
		}
		pages = append(pages, page)
		p.report(StageRendering, (i+1)*100/len(cards))
	}

	select {
	case <-ctx.Done():
		return nil, apperr.ErrCancelled
	default:
	}

	p.report(StageGenerating, 100)
	doc, err := p.writer.Write(ctx, pages)
	if err != nil {
		return nil, fmt.Errorf("export: write document: %w", err)
	}

	p.report(StageComplete, 100)
	return doc, nil
}

// variantCard projects a variant onto a card record for the renderer.
// Variants have no identity, so the base card's is reused.
func variantCard(base *card.Card, v *variant.Variant) *card.Card {
	c := base.Clone()
	c.Title = v.Title
	c.Terms = append([]string(nil), v.Terms...)
	c.FreeSpaceImage = v.FreeSpaceImage
	c.FreeSpaceIcon = v.FreeSpaceIcon
	c.Arrangement = append([]int(nil), v.Arrangement...)
	return c
}

func (p *Pipeline) report(stage Stage, pct int) {
	if p.progress != nil {
		p.progress(Progress{Stage: stage, Percent: pct})
	}
}

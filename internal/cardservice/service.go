// Package cardservice owns the single current card, applies validation
// before every mutation, and manages the variant batch lifecycle. It is
// the one writer of its slots; readers get defensive copies.
package cardservice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/arrange"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/history"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/variant"
)

// Events is the notification surface the service publishes to. The SSE
// broker satisfies it; tests pass nil or a recorder.
type Events interface {
	PublishCardEvent(kind, id string)
	PublishVariantProgress(pct int)
	PublishVariantsDone(kind string, count int)
}

// Patch carries partial card fields for Update. Nil pointers (and a nil
// Terms slice) leave the corresponding field untouched.
type Patch struct {
	Title          *string  `json:"title,omitempty"`
	Terms          []string `json:"terms,omitempty"`
	FreeSpaceImage *string  `json:"freeSpaceImage,omitempty"`
	FreeSpaceIcon  *string  `json:"freeSpaceIcon,omitempty"`
}

// Service is the card state store.
type Service struct {
	log       history.Log
	events    Events
	batchSize int

	mu            sync.Mutex
	current       *card.Card
	fieldErrors   []string
	variants      []variant.Variant
	variantCancel context.CancelFunc
}

// New creates a card service. log and events may be nil; batchSize <= 0
// uses the generator default.
func New(log history.Log, events Events, batchSize int) *Service {
	return &Service{log: log, events: events, batchSize: batchSize}
}

// Create builds a card from raw input and, on success, makes it the
// current card (dropping any in-flight variants). On failure the prior
// card is retained and the validation errors are surfaced.
func (s *Service) Create(in card.Input) (*card.Card, error) {
	c, err := card.Build(in)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}
	s.install(c, "created")
	return c.Clone(), nil
}

// Load makes an existing card record (a history restore) the current card.
func (s *Service) Load(c *card.Card) {
	s.install(c.Clone(), "created")
}

// Update merges patch into the current card, re-validates the merged
// result, and bumps UpdatedAt. Identity and CreatedAt are preserved. When
// the term pool changes the arrangement is regenerated; otherwise it is
// kept.
func (s *Service) Update(patch Patch) (*card.Card, error) {
	s.mu.Lock()
	cur := s.current.Clone()
	s.mu.Unlock()
	if cur == nil {
		return nil, apperr.ErrNoCard
	}

	in := card.Input{
		Title:          cur.Title,
		Terms:          cur.Terms,
		FreeSpaceImage: cur.FreeSpaceImage,
		FreeSpaceIcon:  cur.FreeSpaceIcon,
		Arrangement:    cur.Arrangement,
	}
	if patch.Title != nil {
		in.Title = *patch.Title
	}
	if patch.Terms != nil {
		in.Terms = patch.Terms
		in.Arrangement = nil // pool changed, deal a fresh arrangement
	}
	if patch.FreeSpaceImage != nil {
		in.FreeSpaceImage = *patch.FreeSpaceImage
	}
	if patch.FreeSpaceIcon != nil {
		in.FreeSpaceIcon = *patch.FreeSpaceIcon
	}

	merged, err := card.Build(in)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}
	merged.ID = cur.ID
	merged.CreatedAt = cur.CreatedAt
	merged.UpdatedAt = time.Now().UTC()

	s.install(merged, "updated")
	return merged.Clone(), nil
}

// Randomize replaces only the arrangement of the current card, preserving
// identity and CreatedAt and bumping UpdatedAt.
func (s *Service) Randomize() (*card.Card, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, apperr.ErrNoCard
	}
	arr, err := arrange.Generate(len(s.current.Terms))
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.current.Arrangement = arr
	s.current.UpdatedAt = time.Now().UTC()
	out := s.current.Clone()
	s.mu.Unlock()

	s.publishCard("randomized", out.ID.String())
	return out, nil
}

// Clear drops the current card, cancels and drops any in-flight variants,
// and resets the error set.
func (s *Service) Clear() {
	s.mu.Lock()
	id := ""
	if s.current != nil {
		id = s.current.ID.String()
	}
	cancel := s.variantCancel
	s.current = nil
	s.fieldErrors = nil
	s.variants = nil
	s.variantCancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if id != "" {
		s.publishCard("cleared", id)
	}
}

// RequestVariants generates count variants of the current card, replacing
// any previous batch. Progress is streamed to the events sink. A second
// call cancels the run still in flight. Cancellation (via ctx or
// CancelVariants) yields apperr.ErrCancelled, which callers must not
// present as a failure.
func (s *Service) RequestVariants(ctx context.Context, count int) ([]variant.Variant, error) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return nil, apperr.ErrNoCard
	}
	base := s.current.Clone()
	if s.variantCancel != nil {
		s.variantCancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.variantCancel = cancel
	s.mu.Unlock()
	defer cancel()

	vs, err := variant.Generate(runCtx, base, count, variant.Options{
		BatchSize: s.batchSize,
		Progress:  s.publishProgress,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrCancelled) {
			s.publishDone("cancelled", 0)
			return nil, err
		}
		s.recordFailure(err)
		return nil, err
	}

	s.mu.Lock()
	s.variants = vs
	if s.variantCancel != nil {
		s.variantCancel = nil
	}
	s.mu.Unlock()

	s.publishDone("complete", len(vs))
	return append([]variant.Variant(nil), vs...), nil
}

// CancelVariants requests cooperative cancellation of the in-flight
// variant run, if any.
func (s *Service) CancelVariants() {
	s.mu.Lock()
	cancel := s.variantCancel
	s.variantCancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Current returns a copy of the current card, or nil when none is loaded.
func (s *Service) Current() *card.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Variants returns a copy of the last completed variant batch.
func (s *Service) Variants() []variant.Variant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]variant.Variant(nil), s.variants...)
}

// Errors returns the validation errors from the most recent failed
// mutation. A successful mutation clears them.
func (s *Service) Errors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.fieldErrors...)
}

// install makes c the current card, clears errors, drops stale variants,
// records history, and publishes the lifecycle event.
func (s *Service) install(c *card.Card, kind string) {
	s.mu.Lock()
	cancel := s.variantCancel
	s.current = c
	s.fieldErrors = nil
	s.variants = nil
	s.variantCancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if s.log != nil {
		if err := s.log.Record(c); err != nil {
			slog.Warn("card history record failed",
				slog.String("id", c.ID.String()),
				slog.String("error", err.Error()))
		}
	}
	s.publishCard(kind, c.ID.String())
}

func (s *Service) recordFailure(err error) {
	s.mu.Lock()
	s.fieldErrors = []string{err.Error()}
	s.mu.Unlock()
}

func (s *Service) publishCard(kind, id string) {
	if s.events != nil {
		s.events.PublishCardEvent(kind, id)
	}
}

func (s *Service) publishProgress(pct int) {
	if s.events != nil {
		s.events.PublishVariantProgress(pct)
	}
}

func (s *Service) publishDone(kind string, count int) {
	if s.events != nil {
		s.events.PublishVariantsDone(kind, count)
	}
}

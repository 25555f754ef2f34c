package api

import (
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/cardservice"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/catalog"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/history"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/variant"
)

// CreateCardRequest is the request body for creating a card.
type CreateCardRequest = card.Input

// UpdateCardRequest is the request body for a partial card update.
type UpdateCardRequest = cardservice.Patch

// VariantsRequest is the request body for generating print variants.
type VariantsRequest struct {
	Count int `json:"count"`
}

// VariantsResponse wraps a completed (or cancelled) variant run.
type VariantsResponse struct {
	Variants  []variant.Variant `json:"variants"`
	Cancelled bool              `json:"cancelled,omitempty"`
}

// ShareResponse carries a shareable link and its raw token.
type ShareResponse struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// IconsResponse wraps the fixed icon catalog.
type IconsResponse struct {
	Icons []catalog.Icon `json:"icons"`
}

// ExamplesResponse wraps the example-card catalog.
type ExamplesResponse struct {
	Examples []catalog.Example `json:"examples"`
}

// RecentResponse wraps the session history listing.
type RecentResponse struct {
	Cards []history.Entry `json:"cards"`
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/apperr"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/card"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/cardservice"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/catalog"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/history"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/share"
)

const maxBodySize = 1 << 20

// Handler holds API route handlers.
type Handler struct {
	svc      *cardservice.Service
	codec    *share.Codec
	examples *catalog.Store
	log      history.Log
}

// NewHandler creates a new Handler.
func NewHandler(svc *cardservice.Service, codec *share.Codec, examples *catalog.Store, log history.Log) *Handler {
	return &Handler{svc: svc, codec: codec, examples: examples, log: log}
}

// CreateCard handles POST /cards.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GetCurrentCard handles GET /cards/current.
func (h *Handler) GetCurrentCard(w http.ResponseWriter, _ *http.Request) {
	c := h.svc.Current()
	if c == nil {
		writeError(w, apperr.ErrNoCard)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// UpdateCurrentCard handles PATCH /cards/current.
func (h *Handler) UpdateCurrentCard(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	c, err := h.svc.Update(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ClearCurrentCard handles DELETE /cards/current.
func (h *Handler) ClearCurrentCard(w http.ResponseWriter, _ *http.Request) {
	h.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// RandomizeCard handles POST /cards/current/randomize.
func (h *Handler) RandomizeCard(w http.ResponseWriter, _ *http.Request) {
	c, err := h.svc.Randomize()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// GenerateVariants handles POST /cards/current/variants. Cancellation
// (client disconnect or DELETE on the variants resource) is reported as a
// cancelled outcome, not an error.
func (h *Handler) GenerateVariants(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	var req VariantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	vs, err := h.svc.RequestVariants(r.Context(), req.Count)
	if err != nil {
		if errors.Is(err, apperr.ErrCancelled) {
			writeJSON(w, http.StatusOK, VariantsResponse{Cancelled: true})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VariantsResponse{Variants: vs})
}

// ListVariants handles GET /cards/current/variants.
func (h *Handler) ListVariants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, VariantsResponse{Variants: h.svc.Variants()})
}

// CancelVariants handles DELETE /cards/current/variants.
func (h *Handler) CancelVariants(w http.ResponseWriter, _ *http.Request) {
	h.svc.CancelVariants()
	w.WriteHeader(http.StatusNoContent)
}

// ShareCard handles GET /cards/current/share. The play query flag
// defaults to true: share links open in read-only play mode.
func (h *Handler) ShareCard(w http.ResponseWriter, r *http.Request) {
	c := h.svc.Current()
	if c == nil {
		writeError(w, apperr.ErrNoCard)
		return
	}
	play := r.URL.Query().Get("play") != "false"
	link, err := h.codec.ShareURL(c, play)
	if err != nil {
		writeError(w, err)
		return
	}
	token, err := h.codec.Encode(c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ShareResponse{URL: link, Token: token})
}

// PlayCard handles GET /play?data=<token>: decode a share token and run
// the decoded payload through the same card builder the editor uses. The
// store is untouched; play mode is read-only.
func (h *Handler) PlayCard(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(share.ParamData)
	if token == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'data' is required"))
		return
	}
	payload, err := share.Decode(token)
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := card.Build(payload.Input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// ListIcons handles GET /icons.
func (h *Handler) ListIcons(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, IconsResponse{Icons: catalog.Icons()})
}

// ListExamples handles GET /examples.
func (h *Handler) ListExamples(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ExamplesResponse{Examples: h.examples.List()})
}

// UseExample handles POST /examples/{slug}/use: build a card from an
// example template and make it current.
func (h *Handler) UseExample(w http.ResponseWriter, r *http.Request) {
	ex, err := h.examples.Get(chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	c, err := h.svc.Create(ex.Input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// RecentCards handles GET /cards/recent.
func (h *Handler) RecentCards(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.log.Recent(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecentResponse{Cards: entries})
}

// GetRecentCard handles GET /cards/recent/{id}.
func (h *Handler) GetRecentCard(w http.ResponseWriter, r *http.Request) {
	c, err := h.recentByID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// RestoreRecentCard handles POST /cards/recent/{id}/restore: make a card
// from this session's history the current card again.
func (h *Handler) RestoreRecentCard(w http.ResponseWriter, r *http.Request) {
	c, err := h.recentByID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.svc.Load(c)
	writeJSON(w, http.StatusOK, h.svc.Current())
}

func (h *Handler) recentByID(r *http.Request) (*card.Card, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return h.log.Get(id)
}

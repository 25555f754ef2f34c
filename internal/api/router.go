package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/cardservice"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/catalog"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/history"
	"github.com/AdamBissonnette/kiro-buzzword-bingo-sub000/internal/share"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *cardservice.Service, codec *share.Codec, examples *catalog.Store, log history.Log,
	authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, codec, examples, log)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Current card lifecycle.
	r.Post("/cards", h.CreateCard)
	r.Get("/cards/current", h.GetCurrentCard)
	r.Patch("/cards/current", h.UpdateCurrentCard)
	r.Delete("/cards/current", h.ClearCurrentCard)
	r.Post("/cards/current/randomize", h.RandomizeCard)

	// Variants.
	r.Post("/cards/current/variants", h.GenerateVariants)
	r.Get("/cards/current/variants", h.ListVariants)
	r.Delete("/cards/current/variants", h.CancelVariants)

	// Sharing.
	r.Get("/cards/current/share", h.ShareCard)
	r.Get("/cards/current/share/qr", h.ShareQR)
	r.Get("/play", h.PlayCard)

	// Session history.
	r.Get("/cards/recent", h.RecentCards)
	r.Get("/cards/recent/{id}", h.GetRecentCard)
	r.Post("/cards/recent/{id}/restore", h.RestoreRecentCard)

	// Catalogs.
	r.Get("/icons", h.ListIcons)
	r.Get("/examples", h.ListExamples)
	r.Post("/examples/{slug}/use", h.UseExample)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

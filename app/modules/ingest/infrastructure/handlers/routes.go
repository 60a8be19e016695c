package ingesthandlers

import "github.com/go-chi/chi/v5"

// Mount registers the admin upload routes on the root router r.
func Mount(r chi.Router, h Handlers) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/{flow}/preview", h.HandlePreview)
		r.Post("/leaderboard/sync", h.HandleSyncLeaderboard)
		r.Post("/mvp/sync", h.HandleSyncMVP)
	})
}

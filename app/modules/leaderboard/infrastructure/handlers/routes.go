package leaderboardhandlers

import "github.com/go-chi/chi/v5"

// Mount registers the leaderboard routes on the root router r.
func Mount(r chi.Router, h Handlers) {
	r.Get("/api/leaderboard", h.HandleGetStandings)
}

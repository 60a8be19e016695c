package mvphandlers

import "github.com/go-chi/chi/v5"

// Mount registers the MVP read routes on the root router r.
func Mount(r chi.Router, h Handlers) {
	r.Get("/api/divisions", h.HandleListDivisions)
	r.Route("/api/mvp", func(r chi.Router) {
		r.Get("/periods", h.HandleListPeriods)
		r.Get("/periods/{periodID}/entries", h.HandlePeriodEntries)
		r.Get("/rank-movement", h.HandleRankMovement)
		r.Get("/players/{playerID}/chart.png", h.HandlePlayerChart)
	})
}

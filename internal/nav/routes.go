package nav

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agroconsult/painel/internal/catalog"
	"github.com/agroconsult/painel/internal/prefs"
)

// RegisterRoutes mounts the navigation resolution routes.
func RegisterRoutes(r chi.Router, resolver *Resolver, store prefs.Store) {
	r.Get("/api/nav/{sector}", handleResolve(resolver))
	r.Get("/api/sector", handleSectorContext(store, resolver.fallback))
}

func handleResolve(resolver *Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		items := resolver.Resolve(r.Context(), sector)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

type sectorContextResponse struct {
	Sector string `json:"sector"`
	Label  string `json:"label"`
}

func handleSectorContext(store prefs.Store, defaultSector string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Query().Get("path")
		sector := catalog.SectorFromPath(path, store, defaultSector)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sectorContextResponse{
			Sector: sector,
			Label:  catalog.Label(sector),
		})
	}
}

package powerbi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agroconsult/painel/internal/catalog"
)

// RegisterRoutes mounts the link binding API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Get("/api/sectors", handleSectors(store))
	r.Get("/api/link", handleResolve(store))
	r.Route("/api/links/{sector}/{panel}", func(r chi.Router) {
		r.Get("/", handleGetBinding(store))
		r.Put("/", handleBind(store))
	})
}

type sectorInfo struct {
	Slug       string `json:"slug"`
	Label      string `json:"label"`
	Registered bool   `json:"registered"`
}

// handleSectors lists the known catalog sectors, flagging those that
// already have a persisted sector row (i.e. at least one bound link).
func handleSectors(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.Sectors(r.Context())
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		registered := make(map[string]bool, len(rows))
		for _, row := range rows {
			registered[row.Slug] = true
		}

		infos := []sectorInfo{}
		for _, slug := range catalog.Sectors() {
			infos = append(infos, sectorInfo{
				Slug:       slug,
				Label:      catalog.Label(slug),
				Registered: registered[slug],
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(infos)
	}
}

func handleResolve(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			http.Error(w, `{"error":"key is required"}`, http.StatusBadRequest)
			return
		}

		url, err := store.LinkFor(r.Context(), key)
		if errors.Is(err, ErrNotConfigured) {
			http.Error(w, `{"error":"not configured"}`, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": url})
	}
}

func handleGetBinding(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		panel := chi.URLParam(r, "panel")
		if !IsPanel(panel) {
			http.Error(w, `{"error":"unknown panel"}`, http.StatusBadRequest)
			return
		}

		link, err := store.LinkBySectorAndPanel(r.Context(), sector, panel)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if link == nil {
			http.Error(w, `{"error":"not configured"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(link)
	}
}

type bindRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

func handleBind(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		panel := chi.URLParam(r, "panel")
		if !IsPanel(panel) {
			http.Error(w, `{"error":"unknown panel"}`, http.StatusBadRequest)
			return
		}

		var req bindRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		url, err := store.Bind(r.Context(), sector, panel, req.URL, req.Name)
		if errors.Is(err, ErrInvalidLink) {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": url})
	}
}

package overlay

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agroconsult/painel/internal/powerbi"
)

// RegisterRoutes mounts the sidebar overlay API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Post("/api/nav/{sector}/items", handleAddCustom(store))
	r.Post("/api/nav/{sector}/hide", handleHide(store))
	r.Get("/api/nav/{sector}/hidden", handleListHidden(store))
	r.Delete("/api/nav/{sector}/hidden", handleUnhide(store))
	r.Put("/api/nav/{sector}/rename", handleRenameBaseline(store))

	r.Get("/api/items/{id}", handleGetItem(store))
	r.Delete("/api/items/{id}", handleRemoveCustom(store))
	r.Put("/api/items/{id}/title", handleRenameCustom(store))
	r.Put("/api/items/{id}/link", handleSetLink(store))
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyTitle), errors.Is(err, powerbi.ErrInvalidLink):
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusNotFound)
	default:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
	}
}

type titleRequest struct {
	Title string `json:"title"`
}

func handleAddCustom(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		var req titleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		item, err := store.AddCustom(r.Context(), sector, req.Title)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(item)
	}
}

type hideRequest struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

func handleHide(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		var req hideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Path == "" {
			http.Error(w, `{"error":"path is required"}`, http.StatusBadRequest)
			return
		}

		if err := store.HideBaseline(r.Context(), sector, req.Path, req.Title); err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "hidden"})
	}
}

func handleListHidden(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		items, err := store.HiddenItems(r.Context(), sector)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if items == nil {
			items = []Item{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

type unhideRequest struct {
	Path string `json:"path"`
}

func handleUnhide(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		var req unhideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Path == "" {
			http.Error(w, `{"error":"path is required"}`, http.StatusBadRequest)
			return
		}

		if err := store.Unhide(r.Context(), sector, req.Path); err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "restored"})
	}
}

type renameBaselineRequest struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

func handleRenameBaseline(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sector := chi.URLParam(r, "sector")
		var req renameBaselineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Path == "" {
			http.Error(w, `{"error":"path is required"}`, http.StatusBadRequest)
			return
		}

		title, err := store.RenameBaseline(r.Context(), sector, req.Path, req.Title)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"title": title})
	}
}

func handleGetItem(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sector := r.URL.Query().Get("sector")

		item, err := store.CustomByID(r.Context(), id, sector)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		if item == nil {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(item)
	}
}

func handleRemoveCustom(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.RemoveCustom(r.Context(), id); err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "removed"})
	}
}

func handleRenameCustom(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req titleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		title, err := store.RenameCustom(r.Context(), id, req.Title)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"title": title})
	}
}

type linkRequest struct {
	URL string `json:"url"`
}

func handleSetLink(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req linkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}

		url, err := store.SetCustomLink(r.Context(), id, req.URL)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": url})
	}
}

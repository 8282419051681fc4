package catalog

import (
	"log"
	"strings"

	"github.com/agroconsult/painel/internal/prefs"
)

// SectorFromPath derives the active sector from an /app/...-rooted
// location path. Successful resolutions are persisted as the last known
// sector; unresolvable paths fall back to that persisted sector and
// finally to defaultSector (the built-in default when unset or
// unknown).
func SectorFromPath(path string, store prefs.Store, defaultSector string) string {
	def := fallbackSector(defaultSector)

	parts := splitPath(path)
	if len(parts) == 0 || parts[0] != "app" {
		return def
	}
	if len(parts) < 2 {
		return storedSector(store, def)
	}

	first := parts[1]
	switch {
	case first == "setor":
		sector := def
		if len(parts) > 2 {
			sector = parts[2]
		}
		if IsKnown(sector) {
			persistSector(store, sector)
			return sector
		}
		return storedSector(store, def)
	case first == "comercial" || first == "operacional":
		persistSector(store, def)
		return def
	case first == "financeiro":
		persistSector(store, "financeiro")
		return "financeiro"
	case IsKnown(first):
		persistSector(store, first)
		return first
	}

	return storedSector(store, def)
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// storedSector returns the persisted last known sector when it is still
// a known sector, else def.
func storedSector(store prefs.Store, def string) string {
	if store == nil {
		return def
	}
	if v, ok := store.Get(prefs.KeyCurrentSector); ok && IsKnown(v) {
		return v
	}
	return def
}

func persistSector(store prefs.Store, sector string) {
	if store == nil {
		return
	}
	if err := store.Set(prefs.KeyCurrentSector, sector); err != nil {
		log.Printf("catalog: persisting sector %q: %v", sector, err)
	}
}

// Package nav merges the immutable baseline catalog with a sector's
// persisted overlay into the ordered navigation list the sector
// actually sees.
package nav

import (
	"context"
	"log"

	"github.com/agroconsult/painel/internal/catalog"
	"github.com/agroconsult/painel/internal/overlay"
)

// Item is one resolved navigation entry. Derived, never persisted.
type Item struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Path       string `json:"path"`
	PowerBiKey string `json:"powerBiKey,omitempty"`
	IsCustom   bool   `json:"isCustom"`
}

// OverlaySource supplies a sector's overlay state.
type OverlaySource interface {
	OverlayFor(ctx context.Context, sector string) (overlay.Overlay, error)
}

// Resolver merges baseline and overlay navigation state.
type Resolver struct {
	overlays OverlaySource
	fallback string
}

// NewResolver creates a resolver reading overlays from the given
// source. defaultSector is the configured fallback sector for unknown
// sectors and unresolvable paths; empty keeps the built-in default.
func NewResolver(overlays OverlaySource, defaultSector string) *Resolver {
	return &Resolver{overlays: overlays, fallback: defaultSector}
}

// Resolve returns the navigation list for a sector: baseline entries in
// catalog order, minus hidden paths, with renamed titles applied,
// followed by custom entries in creation order. The concatenation order
// is a contract. Resolve never fails: an overlay fetch error degrades
// to the baseline-only menu so navigation is never blank.
func (r *Resolver) Resolve(ctx context.Context, sector string) []Item {
	base := catalog.BaseItems(sector, r.fallback)

	ov, err := r.overlays.OverlayFor(ctx, sector)
	if err != nil {
		log.Printf("nav: overlay fetch for %q failed, using baseline only: %v", sector, err)
		ov = overlay.Overlay{}
	}

	items := make([]Item, 0, len(base)+len(ov.CustomItems))
	for _, b := range base {
		if ov.HiddenPaths[b.Path] {
			continue
		}
		title := b.Title
		if renamed, ok := ov.RenamedTitles[b.Path]; ok {
			title = renamed
		}
		items = append(items, Item{
			ID:         b.Path,
			Title:      title,
			Path:       b.Path,
			PowerBiKey: b.PowerBiKey,
		})
	}
	for _, c := range ov.CustomItems {
		items = append(items, Item{
			ID:       c.ID,
			Title:    c.Title,
			Path:     c.Path,
			IsCustom: true,
		})
	}
	return items
}

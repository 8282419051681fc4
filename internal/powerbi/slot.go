package powerbi

import (
	"strings"

	"github.com/agroconsult/painel/internal/catalog"
)

// Panels a sector can bind links to. "principal" is the single
// undivided panel of sectors that do not split by area.
const (
	PanelComercial   = "comercial"
	PanelOperacional = "operacional"
	PanelFinanceiro  = "financeiro"
	PanelPrincipal   = "principal"
)

var knownPanels = map[string]bool{
	PanelComercial:   true,
	PanelOperacional: true,
	PanelFinanceiro:  true,
	PanelPrincipal:   true,
}

// IsPanel reports whether s names a bindable panel.
func IsPanel(s string) bool {
	return knownPanels[s]
}

// ParseSlot splits a link-slot key of the form "{sector}-{panel}" into
// its parts. Sector slugs themselves contain hyphens, so the panel is
// taken from the last hyphen-separated segment. A key that is exactly a
// known sector slug is the legacy single-panel form and maps to the
// principal panel. Returns ok=false for anything else (notably custom
// item UUIDs).
func ParseSlot(key string) (sector, panel string, ok bool) {
	if catalog.IsKnown(key) {
		return key, PanelPrincipal, true
	}

	i := strings.LastIndex(key, "-")
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	sector, panel = key[:i], key[i+1:]
	if !knownPanels[panel] {
		return "", "", false
	}
	return sector, panel, true
}

// SlotKey builds the canonical link-slot key for a sector panel.
func SlotKey(sector, panel string) string {
	if panel == PanelPrincipal && sector == "avaliacao-ativos" {
		// Legacy key: this sector predates the slot naming scheme.
		return sector
	}
	return sector + "-" + panel
}

// Package catalog defines the baseline navigation entries for each
// organizational sector and resolves the active sector from a location
// path. The catalog is compile-time data; per-sector customization lives
// in the overlay store and is merged by the nav package.
package catalog

import (
	"fmt"
	"strings"
)

// DefaultSector is used whenever a sector cannot be resolved.
const DefaultSector = "consultoria"

// BaseItem is an immutable baseline navigation entry. PowerBiKey names
// the bound-link slot for entries backed by an embedded report; it is
// empty for plain links such as the shared reports entry.
type BaseItem struct {
	Title      string `json:"title"`
	Path       string `json:"path"`
	PowerBiKey string `json:"powerBiKey,omitempty"`
}

// sharedItems are appended to every sector's menu.
var sharedItems = []BaseItem{
	{Title: "Relatórios", Path: "/app/relatorios"},
}

// sectorMenus lists the explicitly defined entries per sector, in
// display order. Sectors without an entry here still get a menu through
// the standard-panel synthesis in BaseItems.
var sectorMenus = map[string][]BaseItem{
	"consultoria": {
		{Title: "Painel Comercial", Path: "/app/comercial", PowerBiKey: "consultoria-comercial"},
		{Title: "Painel Operacional", Path: "/app/operacional", PowerBiKey: "consultoria-operacional"},
		{Title: "Painel Financeiro", Path: "/app/consultoria/financeiro", PowerBiKey: "consultoria-financeiro"},
	},
	"financeiro": {
		{Title: "Painel Financeiro", Path: "/app/financeiro", PowerBiKey: "financeiro-principal"},
	},
	"avaliacao-ativos": {
		{Title: "Avaliação de Ativos", Path: "/app/setor/avaliacao-ativos", PowerBiKey: "avaliacao-ativos"},
	},
	"comunicacao": {
		{Title: "Comunicação", Path: "/app/setor/comunicacao"},
	},
	"levantamento-safra": {
		{Title: "Levantamento de Safra", Path: "/app/setor/levantamento-safra"},
	},
	"projetos": {
		{Title: "Projetos", Path: "/app/setor/projetos"},
	},
	"desenvolvimento-inovacao": {
		{Title: "Desenvolvimento e Inovação", Path: "/app/setor/desenvolvimento-inovacao"},
	},
	"agroeconomics": {
		{Title: "AgroEconomics", Path: "/app/setor/agroeconomics"},
	},
}

// sectorLabels maps sector slugs to display names.
var sectorLabels = map[string]string{
	"consultoria":              "Consultoria",
	"financeiro":               "Financeiro",
	"avaliacao-ativos":         "Avaliação de Ativos",
	"comunicacao":              "Comunicação",
	"levantamento-safra":       "Levantamento de Safra",
	"projetos":                 "Projetos",
	"desenvolvimento-inovacao": "Desenvolvimento e Inovação",
	"agroeconomics":            "AgroEconomics",
}

// sectorOrder fixes the listing order of known sectors.
var sectorOrder = []string{
	"consultoria",
	"financeiro",
	"avaliacao-ativos",
	"comunicacao",
	"levantamento-safra",
	"projetos",
	"desenvolvimento-inovacao",
	"agroeconomics",
}

// IsKnown reports whether the slug names a sector with a baseline menu.
func IsKnown(sector string) bool {
	_, ok := sectorMenus[sector]
	return ok
}

// fallbackSector returns the configured default sector when it names a
// known sector, else the built-in default.
func fallbackSector(defaultSector string) string {
	if IsKnown(defaultSector) {
		return defaultSector
	}
	return DefaultSector
}

// Sectors returns the known sector slugs in listing order.
func Sectors() []string {
	out := make([]string, len(sectorOrder))
	copy(out, sectorOrder)
	return out
}

// Label returns the display name for a sector slug, falling back to the
// slug itself for unknown sectors.
func Label(sector string) string {
	if label, ok := sectorLabels[sector]; ok {
		return label
	}
	return sector
}

// standardPanels synthesizes the three standard panel entries for a
// sector by templating its slug into path and link-slot key.
func standardPanels(sector string) []BaseItem {
	return []BaseItem{
		{
			Title:      "Painel Comercial",
			Path:       fmt.Sprintf("/app/setor/%s/comercial", sector),
			PowerBiKey: sector + "-comercial",
		},
		{
			Title:      "Painel Operacional",
			Path:       fmt.Sprintf("/app/setor/%s/operacional", sector),
			PowerBiKey: sector + "-operacional",
		},
		{
			Title:      "Painel Financeiro",
			Path:       fmt.Sprintf("/app/setor/%s/financeiro", sector),
			PowerBiKey: sector + "-financeiro",
		},
	}
}

// BaseItems returns the ordered baseline menu for a sector: explicit
// entries first, then synthesized standard panels (skipping titles
// already present, case-insensitively), then shared entries. Entries
// whose title matches the sector's own label are dropped, and duplicate
// paths keep their first occurrence. Unknown sectors fall back to the
// explicit list of defaultSector (the built-in default when unset or
// unknown); the result is never empty.
func BaseItems(sector, defaultSector string) []BaseItem {
	explicit, ok := sectorMenus[sector]
	if !ok {
		explicit = sectorMenus[fallbackSector(defaultSector)]
	}

	label := strings.ToLower(sectorLabels[sector])
	filtered := make([]BaseItem, 0, len(explicit))
	for _, item := range explicit {
		if label != "" && strings.ToLower(item.Title) == label {
			continue
		}
		filtered = append(filtered, item)
	}

	seenTitles := make(map[string]bool, len(filtered))
	for _, item := range filtered {
		seenTitles[strings.ToLower(item.Title)] = true
	}

	merged := make([]BaseItem, 0, len(filtered)+3+len(sharedItems))
	merged = append(merged, filtered...)
	for _, panel := range standardPanels(sector) {
		if !seenTitles[strings.ToLower(panel.Title)] {
			merged = append(merged, panel)
		}
	}
	merged = append(merged, sharedItems...)

	seenPaths := make(map[string]bool, len(merged))
	out := merged[:0]
	for _, item := range merged {
		if seenPaths[item.Path] {
			continue
		}
		seenPaths[item.Path] = true
		out = append(out, item)
	}
	return out
}

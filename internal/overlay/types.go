package overlay

import (
	"errors"
	"fmt"
	"time"
)

// Errors surfaced to callers. Backend failures are wrapped and
// propagated verbatim.
var (
	ErrEmptyTitle = errors.New("title must not be empty")
	ErrNotFound   = errors.New("sidebar item not found")
)

// Item is one persisted sidebar_items row. Three kinds share the table:
// hidden markers and renamed titles for baseline entries (synthetic ids),
// and user-created custom entries (UUID ids with their own path space).
type Item struct {
	ID         string    `json:"id"`
	Sector     string    `json:"sector"`
	Title      string    `json:"title"`
	Path       string    `json:"path"`
	IsCustom   bool      `json:"is_custom"`
	IsHidden   bool      `json:"is_hidden"`
	PowerBiURL string    `json:"powerbi_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Overlay is a sector's overlay state, partitioned by kind. CustomItems
// preserves creation order.
type Overlay struct {
	HiddenPaths   map[string]bool
	RenamedTitles map[string]string
	CustomItems   []Item
}

// HiddenID is the synthetic row id marking a baseline path as hidden.
func HiddenID(sector, path string) string {
	return fmt.Sprintf("hidden:%s:%s", sector, path)
}

// RenamedID is the synthetic row id overriding a baseline entry's title.
func RenamedID(sector, path string) string {
	return fmt.Sprintf("renamed:%s:%s", sector, path)
}

// CustomPath builds the canonical path of a custom entry. The id is
// embedded so id and path stay mutually derivable.
func CustomPath(sector, id string) string {
	return fmt.Sprintf("/app/setor/%s/custom/%s", sector, id)
}

const renamedIDPrefix = "renamed:"

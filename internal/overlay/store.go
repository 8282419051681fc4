// Package overlay persists per-sector navigation customizations: hidden
// baseline entries, renamed baseline titles and user-created custom
// entries with their own report links.
package overlay

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agroconsult/painel/internal/db"
	"github.com/agroconsult/painel/internal/events"
	"github.com/agroconsult/painel/internal/powerbi"
)

// Store manages persistence of sidebar overlay records. Every
// successful mutation publishes a change tick on the bus.
type Store struct {
	db  *db.DB
	bus *events.Bus
}

// NewStore creates a new overlay store. The bus may be nil in tests
// that do not care about notifications.
func NewStore(database *db.DB, bus *events.Bus) *Store {
	return &Store{db: database, bus: bus}
}

func (s *Store) publish() {
	if s.bus != nil {
		s.bus.Publish()
	}
}

const itemColumns = `id, sector, title, path, is_custom, is_hidden, powerbi_url, created_at, updated_at`

func scanItem(scan func(dest ...interface{}) error) (Item, error) {
	var it Item
	var isCustom, isHidden int
	var url sql.NullString
	err := scan(&it.ID, &it.Sector, &it.Title, &it.Path, &isCustom, &isHidden, &url, &it.CreatedAt, &it.UpdatedAt)
	it.IsCustom = isCustom != 0
	it.IsHidden = isHidden != 0
	it.PowerBiURL = url.String
	return it, err
}

// ItemsBySector returns every overlay row for the sector in creation
// order, all kinds mixed.
func (s *Store) ItemsBySector(ctx context.Context, sector string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM sidebar_items WHERE sector = ? ORDER BY created_at ASC, rowid ASC`, sector,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sidebar items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning sidebar item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// OverlayFor fetches the sector's overlay rows in a single query and
// partitions them by kind. Hidden custom items are excluded.
func (s *Store) OverlayFor(ctx context.Context, sector string) (Overlay, error) {
	ov := Overlay{
		HiddenPaths:   map[string]bool{},
		RenamedTitles: map[string]string{},
	}

	items, err := s.ItemsBySector(ctx, sector)
	if err != nil {
		return ov, err
	}

	for _, it := range items {
		switch {
		case !it.IsCustom && it.IsHidden:
			ov.HiddenPaths[it.Path] = true
		case !it.IsCustom && strings.HasPrefix(it.ID, renamedIDPrefix):
			ov.RenamedTitles[it.Path] = it.Title
		case it.IsCustom && !it.IsHidden:
			ov.CustomItems = append(ov.CustomItems, it)
		}
	}
	return ov, nil
}

// CustomByID returns a visible custom item by id, optionally scoped to
// a sector. Returns nil when no such item exists.
func (s *Store) CustomByID(ctx context.Context, id, sector string) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM sidebar_items WHERE id = ? AND is_custom = 1 AND is_hidden = 0`
	args := []interface{}{id}
	if sector != "" {
		query += ` AND sector = ?`
		args = append(args, sector)
	}

	it, err := scanItem(s.db.QueryRowContext(ctx, query, args...).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting sidebar item: %w", err)
	}
	return &it, nil
}

// AddCustom creates a user-defined navigation entry for the sector. The
// generated id is embedded in the entry's path, so duplicate titles stay
// harmless: paths remain unique because ids are.
func (s *Store) AddCustom(ctx context.Context, sector, title string) (*Item, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrEmptyTitle
	}

	now := time.Now().UTC()
	it := Item{
		ID:        uuid.New().String(),
		Sector:    sector,
		Title:     trimmed,
		IsCustom:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	it.Path = CustomPath(sector, it.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sidebar_items (id, sector, title, path, is_custom, is_hidden, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 1, 0, ?, ?)`,
		it.ID, it.Sector, it.Title, it.Path, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting sidebar item: %w", err)
	}

	s.publish()
	return &it, nil
}

// RemoveCustom hard-deletes a custom item. Removing a nonexistent id is
// not an error; only a delete that actually removed a row publishes.
func (s *Store) RemoveCustom(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sidebar_items WHERE id = ? AND is_custom = 1`, id,
	)
	if err != nil {
		return fmt.Errorf("deleting sidebar item: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		s.publish()
	}
	return nil
}

// HideBaseline marks a baseline path as suppressed for the sector.
// Re-hiding an already hidden path is a no-op success.
func (s *Store) HideBaseline(ctx context.Context, sector, path, title string) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sidebar_items (id, sector, title, path, is_custom, is_hidden, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, 1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		HiddenID(sector, path), sector, title, path, now, now,
	)
	if err != nil {
		return fmt.Errorf("hiding sidebar item: %w", err)
	}
	s.publish()
	return nil
}

// Unhide removes the hidden marker for a baseline path, restoring the
// entry at its catalog position. Idempotent; only a delete that
// actually removed a marker publishes.
func (s *Store) Unhide(ctx context.Context, sector, path string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sidebar_items WHERE id = ?`, HiddenID(sector, path),
	)
	if err != nil {
		return fmt.Errorf("unhiding sidebar item: %w", err)
	}
	if n, _ := result.RowsAffected(); n > 0 {
		s.publish()
	}
	return nil
}

// HiddenItems lists the sector's hidden baseline markers so a UI can
// offer restoring them.
func (s *Store) HiddenItems(ctx context.Context, sector string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM sidebar_items
		 WHERE sector = ? AND is_custom = 0 AND is_hidden = 1
		 ORDER BY created_at ASC, rowid ASC`, sector,
	)
	if err != nil {
		return nil, fmt.Errorf("listing hidden items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning hidden item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RenameBaseline overrides the display title of a baseline entry
// without hiding it. At most one override exists per (sector, path).
func (s *Store) RenameBaseline(ctx context.Context, sector, path, newTitle string) (string, error) {
	trimmed := strings.TrimSpace(newTitle)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sidebar_items (id, sector, title, path, is_custom, is_hidden, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, 0, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET title = excluded.title, updated_at = excluded.updated_at`,
		RenamedID(sector, path), sector, trimmed, path, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("renaming baseline item: %w", err)
	}

	s.publish()
	return trimmed, nil
}

// RenameCustom changes a custom item's title.
func (s *Store) RenameCustom(ctx context.Context, id, newTitle string) (string, error) {
	trimmed := strings.TrimSpace(newTitle)
	if trimmed == "" {
		return "", ErrEmptyTitle
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE sidebar_items SET title = ?, updated_at = ? WHERE id = ? AND is_custom = 1`,
		trimmed, time.Now().UTC(), id,
	)
	if err != nil {
		return "", fmt.Errorf("renaming sidebar item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.publish()
	return trimmed, nil
}

// SetCustomLink sanitizes and persists the report link bound to a
// custom item. An empty link clears the binding.
func (s *Store) SetCustomLink(ctx context.Context, id, rawLink string) (string, error) {
	safeURL, err := powerbi.Sanitize(rawLink)
	if err != nil {
		return "", err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE sidebar_items SET powerbi_url = ?, updated_at = ? WHERE id = ? AND is_custom = 1`,
		safeURL, time.Now().UTC(), id,
	)
	if err != nil {
		return "", fmt.Errorf("updating sidebar item link: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s.publish()
	return safeURL, nil
}

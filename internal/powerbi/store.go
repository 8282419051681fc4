package powerbi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agroconsult/painel/internal/db"
	"github.com/agroconsult/painel/internal/events"
)

// ErrNotConfigured is the "nothing bound yet" outcome of a link lookup.
// It is a normal state, not a failure.
var ErrNotConfigured = errors.New("no Power BI link configured")

// Sector is a persisted sectors row. Rows are created implicitly the
// first time a link is bound for a new sector.
type Sector struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link is a persisted powerbi_links row: the URL bound to one sector
// panel. At most one row exists per (sector_id, panel).
type Link struct {
	ID        string    `json:"id"`
	SectorID  string    `json:"sector_id"`
	Panel     string    `json:"panel"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store manages sector rows and panel link bindings. Successful binds
// publish a change tick on the bus. defaults supplies fallback URLs per
// slot key for installations that configure links in painel.yml.
type Store struct {
	db       *db.DB
	bus      *events.Bus
	defaults map[string]string
}

// NewStore creates a new link binding store. bus and defaults may be nil.
func NewStore(database *db.DB, bus *events.Bus, defaults map[string]string) *Store {
	return &Store{db: database, bus: bus, defaults: defaults}
}

func (s *Store) publish() {
	if s.bus != nil {
		s.bus.Publish()
	}
}

// Sectors returns every persisted sector row.
func (s *Store) Sectors(ctx context.Context) ([]Sector, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM sectors ORDER BY slug ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sectors: %w", err)
	}
	defer rows.Close()

	var sectors []Sector
	for rows.Next() {
		var sec Sector
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.Slug, &sec.CreatedAt, &sec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning sector: %w", err)
		}
		sectors = append(sectors, sec)
	}
	return sectors, rows.Err()
}

// SectorBySlug returns the sector row with the given slug, or nil.
func (s *Store) SectorBySlug(ctx context.Context, slug string) (*Sector, error) {
	var sec Sector
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM sectors WHERE slug = ?`, slug,
	).Scan(&sec.ID, &sec.Name, &sec.Slug, &sec.CreatedAt, &sec.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting sector: %w", err)
	}
	return &sec, nil
}

// ensureSector returns the sector row for slug, creating it when
// missing. Two concurrent first-binds race on the slug's UNIQUE
// constraint; the loser treats the violation as "already created" and
// re-reads.
func (s *Store) ensureSector(ctx context.Context, slug, name string) (*Sector, error) {
	sec, err := s.SectorBySlug(ctx, slug)
	if err != nil || sec != nil {
		return sec, err
	}

	now := time.Now().UTC()
	created := Sector{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sectors (id, name, slug, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		created.ID, created.Name, created.Slug, created.CreatedAt, created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return s.SectorBySlug(ctx, slug)
		}
		return nil, fmt.Errorf("inserting sector: %w", err)
	}
	return &created, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// LinkBySectorAndPanel returns the binding for (sector slug, panel), or
// nil when either the sector or the binding does not exist.
func (s *Store) LinkBySectorAndPanel(ctx context.Context, sectorSlug, panel string) (*Link, error) {
	sec, err := s.SectorBySlug(ctx, sectorSlug)
	if err != nil {
		return nil, err
	}
	if sec == nil {
		return nil, nil
	}

	var l Link
	err = s.db.QueryRowContext(ctx,
		`SELECT id, sector_id, panel, url, created_at, updated_at FROM powerbi_links
		 WHERE sector_id = ? AND panel = ?`, sec.ID, panel,
	).Scan(&l.ID, &l.SectorID, &l.Panel, &l.URL, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting link binding: %w", err)
	}
	return &l, nil
}

// Bind sanitizes raw and upserts it as the link for (sector, panel),
// implicitly registering the sector on first use. displayName names a
// sector created this way; it defaults to the slug. Returns the
// sanitized URL.
func (s *Store) Bind(ctx context.Context, sectorSlug, panel, raw, displayName string) (string, error) {
	safeURL, err := Sanitize(raw)
	if err != nil {
		return "", err
	}

	slug := strings.TrimSpace(sectorSlug)
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = slug
	}

	sec, err := s.ensureSector(ctx, slug, name)
	if err != nil {
		return "", err
	}
	if sec == nil {
		return "", fmt.Errorf("creating sector %q: row vanished after insert", slug)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO powerbi_links (id, sector_id, panel, url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(sector_id, panel) DO UPDATE SET url = excluded.url, updated_at = excluded.updated_at`,
		uuid.New().String(), sec.ID, panel, safeURL, now, now,
	)
	if err != nil {
		return "", fmt.Errorf("upserting link binding: %w", err)
	}

	s.publish()
	return safeURL, nil
}

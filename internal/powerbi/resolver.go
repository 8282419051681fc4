package powerbi

import (
	"context"
	"database/sql"
	"fmt"
)

// LinkFor resolves the embeddable URL currently bound to key, which is
// either a link-slot key ("{sector}-{panel}" or the legacy sector-only
// form) or a custom sidebar item id. Resolution is independent of
// navigation visibility. A missing binding is ErrNotConfigured, never a
// failure; configured defaults are consulted after a database miss.
func (s *Store) LinkFor(ctx context.Context, key string) (string, error) {
	if sector, panel, ok := ParseSlot(key); ok {
		link, err := s.LinkBySectorAndPanel(ctx, sector, panel)
		if err != nil {
			return "", err
		}
		if link != nil && link.URL != "" {
			return link.URL, nil
		}
		if url := s.defaults[key]; url != "" {
			return url, nil
		}
		return "", fmt.Errorf("%w: slot %s", ErrNotConfigured, key)
	}

	return s.customLink(ctx, key)
}

// customLink looks up the inline link of a custom sidebar item.
func (s *Store) customLink(ctx context.Context, id string) (string, error) {
	var url sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT powerbi_url FROM sidebar_items WHERE id = ? AND is_custom = 1`, id,
	).Scan(&url)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: item %s", ErrNotConfigured, id)
	}
	if err != nil {
		return "", fmt.Errorf("getting item link: %w", err)
	}
	if url.String == "" {
		return "", fmt.Errorf("%w: item %s", ErrNotConfigured, id)
	}
	return url.String, nil
}

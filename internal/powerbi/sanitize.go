// Package powerbi validates Power BI embed links and resolves which
// link is bound to a given (sector, panel) slot or custom sidebar item.
package powerbi

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidLink marks user input that is not a valid Power BI URL.
var ErrInvalidLink = errors.New("invalid Power BI link")

// providerHost must appear in the hostname of every accepted link.
const providerHost = "powerbi.com"

var srcAttrPattern = regexp.MustCompile(`(?i)src=["']([^"']+)["']`)

// Sanitize extracts and validates an embeddable URL from raw user
// input, which may be a bare URL or a full iframe snippet. An empty
// input returns the empty string with no error: it means "clear the
// configured link". The accepted URL is returned verbatim — the query
// string carries a signed view token and must not be re-encoded.
func Sanitize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}

	value := trimmed
	if m := srcAttrPattern.FindStringSubmatch(trimmed); m != nil {
		value = m[1]
	}

	// A bare "app.powerbi.com/..." without a scheme is rejected rather
	// than silently upgraded to https.
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: malformed URL", ErrInvalidLink)
	}
	if !strings.Contains(u.Hostname(), providerHost) {
		return "", fmt.Errorf("%w: host %q is not a %s address", ErrInvalidLink, u.Hostname(), providerHost)
	}

	return value, nil
}

// Package slug derives URL slugs from page request fields. Slugs are never
// taken from LLM output; they double as the dedup surface for imports, so
// the derivation must stay deterministic.
package slug

import (
	"regexp"
	"strings"
)

// MaxLength bounds the slug before trailing hyphens are trimmed.
const MaxLength = 60

var (
	// Pattern is the shape every derived slug satisfies.
	Pattern = regexp.MustCompile(`^[a-z0-9-]+$`)

	nonAlnum   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Make builds the canonical slug for a service+city page, e.g.
// ("Gutter Repair", "Tulsa") -> "gutter-repair-tulsa".
func Make(service, city string) string {
	return FromParts(service, city)
}

// FromParts cleans each part, joins the non-empty ones with hyphens,
// truncates to MaxLength and trims boundary hyphens. Total: any input maps
// to a (possibly empty) slug, and equal inputs always map to equal slugs.
func FromParts(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, p := range parts {
		c := clean(p)
		if c != "" {
			cleaned = append(cleaned, c)
		}
	}

	s := strings.Join(cleaned, "-")
	if len(s) > MaxLength {
		s = s[:MaxLength]
	}
	return strings.Trim(s, "-")
}

// IsValid reports whether s looks like a derived slug.
func IsValid(s string) bool {
	return Pattern.MatchString(s)
}

func clean(s string) string {
	s = nonAlnum.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespace.ReplaceAllString(s, "-")
}

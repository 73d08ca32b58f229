package slug

import (
	"regexp"
	"strings"
)

// Fallback is returned when the input has no alphanumeric content.
const Fallback = "spool"

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRun   = regexp.MustCompile(`-+`)
	validSlug   = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify lower-cases text and joins its alphanumeric runs with single hyphens,
// e.g. "PolyMaker  PLA+" -> "polymaker-pla". It never returns an empty string.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = strings.Trim(hyphenRun.ReplaceAllString(s, "-"), "-")
	if s == "" {
		return Fallback
	}
	return s
}

// ForSpool derives the catalog id of a spool. Brand and type are joined before
// normalization, so the boundary between them is not recoverable from the slug.
func ForSpool(brand, spoolType string) string {
	return Slugify(brand + "-" + spoolType)
}

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return validSlug.MatchString(s)
}

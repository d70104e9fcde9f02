package events

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9 -]`)
	slugSpaces     = regexp.MustCompile(`\s+`)
	slugHyphens    = regexp.MustCompile(`-+`)
)

// slugSuffixLen is the number of id characters appended to every slug.
const slugSuffixLen = 8

// Slug derives the permanent URL identifier of an event from its title and id.
// Titles with no latin letters or digits (an Arabic-only title) yield the id suffix alone.
func Slug(title string, id uuid.UUID) string {
	s := strings.ToLower(title)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	suffix := id.String()[:slugSuffixLen]
	if s == "" {
		return suffix
	}
	return s + "-" + suffix
}

package export

import "strings"

// Fallbacks used when the name fields are blank at export time.
const (
	fallbackFirstName = "prenom"
	fallbackLastName  = "nom"
)

// Filename derives the artifact name from the document's first and last
// name: CV-<firstName>-<lastName>.pdf, with placeholders for blank parts.
func Filename(firstName, lastName string) string {
	return "CV-" + namePart(firstName, fallbackFirstName) + "-" + namePart(lastName, fallbackLastName) + ".pdf"
}

func namePart(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	// Keep the name readable but safe in a Content-Disposition header and
	// on every filesystem: spaces become dashes, separators are dropped.
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return fallback
	}
	return s
}

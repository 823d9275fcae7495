// Package slug turns display names into URL-safe identifiers.
package slug

import (
	"regexp"
	"strings"
)

const (
	minUsername = 3
	maxUsername = 30
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

var fold = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"à", "a", "á", "a", "â", "a", "ã", "a", "å", "a", "æ", "ae",
	"ç", "c", "č", "c", "ć", "c",
	"è", "e", "é", "e", "ê", "e", "ë", "e",
	"ì", "i", "í", "i", "î", "i", "ï", "i", "ı", "i",
	"ñ", "n", "ń", "n",
	"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ø", "o", "œ", "oe",
	"ù", "u", "ú", "u", "û", "u",
	"ý", "y", "ÿ", "y",
	"ğ", "g", "ş", "s", "š", "s", "ž", "z", "ł", "l",
)

// Generate lowercases name, folds common Latin accents to ASCII and joins
// the remaining alphanumeric runs with single hyphens.
//
//	"Mara Schöne"     -> "mara-schoene"
//	"  Élise & Co.  " -> "elise-co"
func Generate(name string) string {
	s := fold.Replace(strings.ToLower(strings.TrimSpace(name)))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Username derives a username candidate from a display name. The result is
// cut to 30 characters at a hyphen boundary when possible; "" means the name
// has too few usable characters.
func Username(name string) string {
	s := Generate(name)
	if len(s) > maxUsername {
		s = s[:maxUsername]
		if i := strings.LastIndexByte(s, '-'); i >= minUsername {
			s = s[:i]
		}
		s = strings.TrimRight(s, "-")
	}
	if len(s) < minUsername {
		return ""
	}
	return s
}

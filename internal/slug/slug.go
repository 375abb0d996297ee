// Package slug builds URL-safe article identifiers.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Rand is the random source used for slug salts.
type Rand interface {
	IntN(n int) int
}

// SaltRange bounds the numeric salt appended by Unique.
const SaltRange = 1_000_000

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	valid    = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slugify lowercases text, drops accents and joins words with dashes.
// Text without any usable character yields "artigo-<unix millis>".
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}

	s := strings.ToLower(stripped)
	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return fmt.Sprintf("artigo-%d", time.Now().UnixMilli())
	}
	return s
}

// Unique builds a slug from the title, the calendar date and a random salt so
// that identical titles published on the same day do not collide.
func Unique(title string, now time.Time, rnd Rand) string {
	salt := rnd.IntN(SaltRange)
	return Slugify(fmt.Sprintf("%s-%s-%d", title, now.UTC().Format("2006-01-02"), salt))
}

// Valid reports whether s is already in canonical slug form.
func Valid(s string) bool {
	return valid.MatchString(s)
}

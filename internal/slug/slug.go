// Package slug turns arbitrary text into the URL-safe identifiers used for trips.
//
// Normalization rules:
//  1. Lowercase.
//  2. Unicode-decompose (NFKD) and strip combining diacritical marks (U+0300..U+036F).
//  3. Drop every character outside [a-z0-9], whitespace, "-" and "_".
//  4. Trim surrounding whitespace.
//  5. Replace each whitespace run with a single "-".
//  6. Collapse repeated "-".
//  7. Trim leading/trailing "-" and "_".
//  8. Truncate to MaxLength, trimming again if the cut lands on a separator.
//
// Examples:
//
//	"Café Crawl"         → "cafe-crawl"
//	"  Leh   Ride!! "    → "leh-ride"
//	"__hidden__"         → "hidden"
//	"🏔️🏔️"                → ""
//
// An empty result means no slug could be derived; callers must reject it.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest slug Normalize produces.
const MaxLength = 60

// reserved slugs name static routes under /trips and would never be reachable.
var reserved = map[string]bool{
	"live":   true,
	"export": true,
}

// Reserved reports whether s is a normalized slug no trip may claim.
func Reserved(s string) bool {
	return reserved[s]
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	hyphenRun     = regexp.MustCompile(`-{2,}`)
)

// whitespace is the ECMAScript WhiteSpace and LineTerminator set. It differs
// from unicode.IsSpace: U+FEFF is whitespace here and U+0085 is not.
var whitespace = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0009, Hi: 0x000d, Stride: 1},
		{Lo: 0x0020, Hi: 0x0020, Stride: 1},
		{Lo: 0x00a0, Hi: 0x00a0, Stride: 1},
		{Lo: 0x1680, Hi: 0x1680, Stride: 1},
		{Lo: 0x2000, Hi: 0x200a, Stride: 1},
		{Lo: 0x2028, Hi: 0x2029, Stride: 1},
		{Lo: 0x202f, Hi: 0x202f, Stride: 1},
		{Lo: 0x205f, Hi: 0x205f, Stride: 1},
		{Lo: 0x3000, Hi: 0x3000, Stride: 1},
		{Lo: 0xfeff, Hi: 0xfeff, Stride: 1},
	},
	LatinOffset: 3,
}

// Normalize converts input into a slug. It never fails; see the package doc for the rules.
// Normalize(Normalize(x)) == Normalize(x) for every x.
func Normalize(input string) string {
	s := strings.ToLower(input)

	// The chained transformer is stateful, so build one per call.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isCombiningMark)))
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.Is(whitespace, r):
			b.WriteByte(' ')
		}
	}

	s = strings.TrimSpace(b.String())
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = hyphenRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-_")

	if len(s) > MaxLength {
		s = strings.Trim(s[:MaxLength], "-_")
	}
	return s
}

// Derive picks the slug for a new trip. An explicit slug wins when the user
// typed one; a blank explicit slug falls back to title, start location,
// destination and start date joined together.
//
// An explicit slug that normalizes to "" is not replaced: the user asked for
// that slug, so the caller should reject it instead of silently choosing another.
func Derive(explicit, title, startLocation, destination, startDate string) string {
	if strings.TrimSpace(explicit) != "" {
		return Normalize(explicit)
	}
	return Normalize(strings.Join([]string{title, startLocation, destination, startDate}, " "))
}

func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
}

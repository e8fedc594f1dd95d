package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctPattern matches non-alphanumeric character sequences for collapsing.
var punctPattern = regexp.MustCompile(`[^a-z0-9]+`)

// connectiveReplacer expands connective symbols before punctuation collapsing
// so "Fast & Furious" and "Fast and Furious" normalize identically.
var connectiveReplacer = strings.NewReplacer("&", "and", "+", "and")

// diacriticFolder strips combining marks so accented characters compare equal
// to their base forms ("Amélie" and "Amelie" are the same title).
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a title for duplicate detection and search:
// diacritics folded, lowercased, "&"/"+" expanded to "and", every
// non-alphanumeric run collapsed to a single space, edges trimmed.
func Normalize(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if folded, _, err := transform.String(diacriticFolder, title); err == nil {
		title = folded
	}
	title = strings.ToLower(title)
	title = connectiveReplacer.Replace(title)
	title = punctPattern.ReplaceAllString(title, " ")
	return strings.TrimSpace(title)
}

// NormalizeWords returns the normalized form of text split into single words.
func NormalizeWords(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// Truncate shortens s to at most max runes, replacing the tail with "..."
// when text was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

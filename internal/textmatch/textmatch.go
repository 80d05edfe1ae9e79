// Package textmatch folds and collates display strings for item search and
// ordering. Matching ignores case and diacritics; ordering follows the
// collation rules of a locale with case differences ignored.
package textmatch

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var folder = cases.Fold()

// Fold returns s with diacritics removed and case folded, so that
// "Café" and "CAFE" fold to the same string.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return folder.String(stripped)
}

// Contains reports whether sub occurs in s after folding both.
// An empty sub matches everything.
func Contains(s, sub string) bool {
	if sub == "" {
		return true
	}
	return strings.Contains(Fold(s), Fold(sub))
}

// Sorter orders strings by a locale collation, ignoring case.
type Sorter struct {
	tag language.Tag
}

// NewSorter returns a Sorter for the BCP 47 locale. An empty or
// unparseable locale falls back to the root collation.
func NewSorter(locale string) *Sorter {
	tag := language.Und
	if locale != "" {
		if t, err := language.Parse(locale); err == nil {
			tag = t
		}
	}
	return &Sorter{tag: tag}
}

// Locale returns the language tag the sorter collates with.
func (s *Sorter) Locale() string {
	return s.tag.String()
}

// Compare returns -1, 0 or 1 comparing a and b.
func (s *Sorter) Compare(a, b string) int {
	return s.collator().CompareString(a, b)
}

// SortStable sorts n elements by the string key(i), keeping the original
// order of elements that collate equal.
func (s *Sorter) SortStable(n int, key func(i int) string, swap func(i, j int)) {
	c := s.collator()
	sort.Stable(keyed{n: n, key: key, swap: swap, c: c})
}

// collator is built per call; collate.Collator keeps internal buffers and
// must not be shared between goroutines.
func (s *Sorter) collator() *collate.Collator {
	return collate.New(s.tag, collate.IgnoreCase)
}

type keyed struct {
	n    int
	key  func(i int) string
	swap func(i, j int)
	c    *collate.Collator
}

func (k keyed) Len() int           { return k.n }
func (k keyed) Less(i, j int) bool { return k.c.CompareString(k.key(i), k.key(j)) < 0 }
func (k keyed) Swap(i, j int)      { k.swap(i, j) }

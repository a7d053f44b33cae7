package albums

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewComparer returns a locale-aware string comparator for the undetermined
// locale, folding case, width, and diacritics so "Ärger" sorts next to
// "Arger" the way users expect from an alphabetical listing.
//
// A collator is not safe for concurrent use, so each call allocates a fresh
// one; [BuildTree] calls this once per build.
func NewComparer() func(a, b string) int {
	return NewComparerForTag(language.Und)
}

// NewComparerForTag returns a comparator collating under the given language tag.
func NewComparerForTag(tag language.Tag) func(a, b string) int {
	c := collate.New(tag, collate.Loose)
	return c.CompareString
}

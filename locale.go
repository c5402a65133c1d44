package c2cgpx

import "strings"

// DefaultLanguages is the locale preference used when none is configured:
// French first, then English.
var DefaultLanguages = []string{"fr", "en"}

// ResolveLocale returns the block of the first language in langs that the
// document carries. Returns ENOLOCALE if none of langs is available.
func ResolveLocale(doc *Document, langs []string) (*Locale, error) {
	for _, lang := range langs {
		if l := doc.Locale(lang); l != nil {
			return l, nil
		}
	}
	return nil, Errorf(ENOLOCALE, "document %d (%s) has no locale in [%s]",
		doc.ID, doc.Type, strings.Join(langs, ", "))
}

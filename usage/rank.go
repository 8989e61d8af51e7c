package usage

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/FlorianRuen/langs-badge/model"
)

// ColorLookup returns the display color of a language
type ColorLookup func(language string) string

// Rank converts the aggregated usage into entries sorted by descending percentage
// equal percentages are ordered by language name so the output is stable between runs
// when limit is greater than zero, only the first limit entries are returned (the cut is done after sorting)
func Rank(usage model.AggregatedUsage, lookup ColorLookup, limit int) ([]model.LanguageEntry, error) {
	if usage.Total <= 0 {
		return nil, model.ErrDivisionUndefined
	}

	entries := make([]model.LanguageEntry, 0, len(usage.Languages))
	for name, bytes := range usage.Languages {
		h := Hundredths(bytes, usage.Total)

		entries = append(entries, model.LanguageEntry{
			Name:       name,
			Color:      lookup(name),
			Percentage: fmt.Sprintf("%d.%02d", h/100, h%100),
			Share:      float64(h) / 100,
		})
	}

	slices.SortFunc(entries, func(a, b model.LanguageEntry) int {
		if c := cmp.Compare(b.Share, a.Share); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	return entries, nil
}

// Hundredths returns bytes/total as a percentage expressed in hundredths, halves going up
// the computation stays on integers so 23/160 (14.375%) gives 1438 and not 1437
func Hundredths(bytes, total int) int64 {
	b, t := int64(bytes), int64(total)
	return (b*20000 + t) / (2 * t)
}

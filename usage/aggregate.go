// Package usage merges the per-repository language maps and ranks the result
package usage

import (
	"fmt"

	"github.com/FlorianRuen/langs-badge/model"
)

// Aggregate sums the byte counts of every map, key by key
// the result does not depend on the order of maps, an empty input gives an empty usage with a zero total
func Aggregate(maps []model.LanguageByteMap) (model.AggregatedUsage, error) {
	aggregated := model.AggregatedUsage{
		Languages: make(model.LanguageByteMap),
	}

	for _, languages := range maps {
		for name, bytes := range languages {
			if bytes < 0 {
				return model.AggregatedUsage{}, fmt.Errorf("%w: %d bytes for language %q", model.ErrInvalidUsageValue, bytes, name)
			}

			aggregated.Languages[name] += bytes
			aggregated.Total += bytes
		}
	}

	return aggregated, nil
}

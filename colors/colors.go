// Package colors exposes the language → color table used by the badges
// the table is embedded in the binary and loaded once, on first use
package colors

import (
	_ "embed"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Default is used for languages without a known color
const Default = "#CCCCCC"

//go:embed colors.json
var rawTable []byte

type languageColor struct {
	Color *string `json:"color"`
	URL   string  `json:"url"`
}

var table = sync.OnceValue(func() map[string]string {
	var parsed map[string]languageColor
	if err := json.Unmarshal(rawTable, &parsed); err != nil {
		log.WithError(err).Error("unable to parse embedded language colors, default color will be used")
		return map[string]string{}
	}

	colors := make(map[string]string, len(parsed))
	for name, c := range parsed {
		// some languages are registered without any color
		if c.Color != nil && *c.Color != "" {
			colors[name] = *c.Color
		}
	}

	return colors
})

// Lookup returns the display color of a language, or Default when unknown
func Lookup(language string) string {
	if c, found := table()[language]; found {
		return c
	}

	return Default
}

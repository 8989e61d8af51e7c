package model

// LanguageByteMap maps a language name to the number of bytes written in it
// this is the payload returned by the upstream languages endpoint for one repository
type LanguageByteMap map[string]int

// AggregatedUsage is the sum of several LanguageByteMap
// Total is always the sum of all values in Languages
type AggregatedUsage struct {
	Languages LanguageByteMap
	Total     int
}

// LanguageEntry is a single ranked language, ready to be rendered
// Percentage is formatted with exactly two decimals (ex: "51.85")
type LanguageEntry struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Percentage string  `json:"percentage"`
	Share      float64 `json:"-"`
}

package extract

import (
	"encoding/json"
	"strings"
)

// TripIntent is the structured reading of a travel query. Duration is nil
// when the query does not state a trip length.
type TripIntent struct {
	SourceCity string   `json:"source_city"`
	DestCities []string `json:"dest_cities"`
	Duration   *int     `json:"duration"`
}

// DefaultTripIntent is what extraction falls back to when the model output
// cannot be read as a trip intent.
func DefaultTripIntent() TripIntent {
	return TripIntent{SourceCity: "", DestCities: []string{}, Duration: nil}
}

// ParseTripIntent reads model output into a TripIntent. It slices the
// outermost object literal, parses it strictly as JSON, and retries once
// with single quotes rewritten to double quotes since models prompted for a
// dict tend to answer in that shape. Output that fails both parses, or
// parses into the wrong shape, yields the default intent. It never returns
// an error and never evaluates the text as code.
func ParseTripIntent(text string) TripIntent {
	raw := sliceDelimited(strings.TrimSpace(text), '{', '}')
	if raw == "" {
		return DefaultTripIntent()
	}

	var fields struct {
		SourceCity any `json:"source_city"`
		DestCities any `json:"dest_cities"`
		Duration   any `json:"duration"`
	}
	if !unmarshalWithQuoteRetry(raw, &fields) {
		return DefaultTripIntent()
	}

	source, ok := asString(fields.SourceCity)
	if !ok {
		return DefaultTripIntent()
	}
	cities, ok := asStringList(fields.DestCities)
	if !ok {
		return DefaultTripIntent()
	}
	duration, ok := asOptionalDays(fields.Duration)
	if !ok {
		return DefaultTripIntent()
	}

	return TripIntent{SourceCity: source, DestCities: cities, Duration: duration}
}

// ParseCityList reads model output into a list of city names via the same
// chain over the outermost array literal. The fallback is an empty list.
func ParseCityList(text string) []string {
	raw := sliceDelimited(strings.TrimSpace(text), '[', ']')
	if raw == "" {
		return []string{}
	}

	var items any
	if !unmarshalWithQuoteRetry(raw, &items) {
		return []string{}
	}
	cities, ok := asStringList(items)
	if !ok {
		return []string{}
	}
	return cities
}

// sliceDelimited returns the substring from the first open delimiter to the
// last close delimiter, or "" when no such span exists.
func sliceDelimited(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	end := strings.LastIndexByte(s, close)
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func unmarshalWithQuoteRetry(raw string, v any) bool {
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return true
	}
	normalized := strings.ReplaceAll(raw, "'", `"`)
	return json.Unmarshal([]byte(normalized), v) == nil
}

func asString(v any) (string, bool) {
	if v == nil {
		return "", true
	}
	s, ok := v.(string)
	return s, ok
}

func asStringList(v any) ([]string, bool) {
	if v == nil {
		return []string{}, true
	}
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func asOptionalDays(v any) (*int, bool) {
	if v == nil {
		return nil, true
	}
	f, ok := v.(float64)
	if !ok {
		return nil, false
	}
	days := int(f)
	return &days, true
}

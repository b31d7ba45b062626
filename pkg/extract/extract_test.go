package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestParseTripIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want TripIntent
	}{
		{
			name: "valid json round trips",
			text: `{"source_city": "Delhi", "dest_cities": ["Mumbai", "Pune"], "duration": 15}`,
			want: TripIntent{SourceCity: "Delhi", DestCities: []string{"Mumbai", "Pune"}, Duration: intPtr(15)},
		},
		{
			name: "single quoted dict recovers via normalization",
			text: `{'source_city': 'Delhi', 'dest_cities': ['Mumbai'], 'duration': 7}`,
			want: TripIntent{SourceCity: "Delhi", DestCities: []string{"Mumbai"}, Duration: intPtr(7)},
		},
		{
			name: "surrounding prose is sliced away",
			text: "Here is the extraction:\n{\"source_city\": \"Goa\", \"dest_cities\": [], \"duration\": null}\nHope that helps.",
			want: TripIntent{SourceCity: "Goa", DestCities: []string{}, Duration: nil},
		},
		{
			name: "null duration stays nil",
			text: `{"source_city": "Delhi", "dest_cities": ["Jaipur"], "duration": null}`,
			want: TripIntent{SourceCity: "Delhi", DestCities: []string{"Jaipur"}, Duration: nil},
		},
		{
			name: "missing fields keep zero values",
			text: `{"dest_cities": ["Mumbai"]}`,
			want: TripIntent{SourceCity: "", DestCities: []string{"Mumbai"}, Duration: nil},
		},
		{
			name: "wrong shape falls back to default",
			text: `{"source_city": 42, "dest_cities": ["Mumbai"], "duration": 3}`,
			want: DefaultTripIntent(),
		},
		{
			name: "non string city list falls back to default",
			text: `{"source_city": "Delhi", "dest_cities": [1, 2], "duration": 3}`,
			want: DefaultTripIntent(),
		},
		{
			name: "string duration falls back to default",
			text: `{"source_city": "Delhi", "dest_cities": ["Mumbai"], "duration": "15 days"}`,
			want: DefaultTripIntent(),
		},
		{
			name: "no object literal falls back to default",
			text: "I could not find any cities in that query.",
			want: DefaultTripIntent(),
		},
		{
			name: "empty input falls back to default",
			text: "",
			want: DefaultTripIntent(),
		},
		{
			name: "unparseable after retry falls back to default",
			text: `{'source_city': 'It''s complicated'}`,
			want: DefaultTripIntent(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTripIntent(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTripIntentNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{
		"{{{{",
		"}{",
		`{"source_city": }`,
		"{'a': {'b': 'c'}}",
	}
	for _, in := range inputs {
		got := ParseTripIntent(in)
		require.NotNil(t, got.DestCities)
	}
}

func TestParseCityList(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "valid json list",
			text: `["Mumbai", "Pune"]`,
			want: []string{"Mumbai", "Pune"},
		},
		{
			name: "single quoted list recovers",
			text: `['Mumbai', 'Pune']`,
			want: []string{"Mumbai", "Pune"},
		},
		{
			name: "prose around the list is sliced away",
			text: "The destinations are: ['Jaipur'] as requested.",
			want: []string{"Jaipur"},
		},
		{
			name: "empty list",
			text: `[]`,
			want: []string{},
		},
		{
			name: "mixed element types fall back to empty",
			text: `["Mumbai", 42]`,
			want: []string{},
		},
		{
			name: "no list falls back to empty",
			text: "no cities here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCityList(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "unset", formatDuration(nil))
	assert.Equal(t, "15", formatDuration(intPtr(15)))
	assert.Equal(t, "0", formatDuration(intPtr(0)))
}

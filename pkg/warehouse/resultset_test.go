package warehouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultSetMarkdown(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"AIRLINE", "PRICE"},
		Rows: [][]string{
			{"IndiGo", "4200"},
			{"Vistara", "5100"},
		},
	}

	want := "| AIRLINE | PRICE |\n" +
		"|---|---|\n" +
		"| IndiGo | 4200 |\n" +
		"| Vistara | 5100 |\n"
	assert.Equal(t, want, rs.Markdown())
}

func TestResultSetMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", (&ResultSet{}).Markdown())

	var nilSet *ResultSet
	assert.Equal(t, "", nilSet.Markdown())
	assert.True(t, nilSet.Empty())
}

func TestResultSetMerge(t *testing.T) {
	agg := &ResultSet{}
	agg.Merge(&ResultSet{
		Columns: []string{"NAME", "CATEGORY"},
		Rows:    [][]string{{"Gateway of India", "sightseeing"}},
	})
	agg.Merge(&ResultSet{
		Columns: []string{"NAME", "CATEGORY"},
		Rows:    [][]string{{"Shaniwar Wada", "heritage"}},
	})

	assert.Equal(t, []string{"NAME", "CATEGORY"}, agg.Columns)
	assert.Len(t, agg.Rows, 2)
	assert.False(t, agg.Empty())
}

func TestResultSetMergeSkipsMismatchedLayout(t *testing.T) {
	agg := &ResultSet{
		Columns: []string{"NAME"},
		Rows:    [][]string{{"Baga Beach"}},
	}
	agg.Merge(&ResultSet{
		Columns: []string{"NAME", "CITY"},
		Rows:    [][]string{{"Fort Kochi", "Kochi"}},
	})

	assert.Len(t, agg.Rows, 1)
}

func TestResultSetPrependColumn(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"NAME", "RATING"},
		Rows:    [][]string{{"Calangute Walk", "4.5"}},
	}
	rs.PrependColumn("CITY", "Goa")

	assert.Equal(t, []string{"CITY", "NAME", "RATING"}, rs.Columns)
	assert.Equal(t, []string{"Goa", "Calangute Walk", "4.5"}, rs.Rows[0])
}

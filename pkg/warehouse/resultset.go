package warehouse

import "strings"

// ResultSet is the canonical tabular shape every downstream query produces.
// Rows hold display strings; NULLs are rendered as empty strings.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Rows) == 0
}

// Markdown renders the result set as a pipe table for ranking prompts.
func (rs *ResultSet) Markdown() string {
	if rs == nil || len(rs.Columns) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(strings.Join(rs.Columns, " | "))
	b.WriteString(" |\n|")
	for range rs.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for _, row := range rs.Rows {
		b.WriteString("| ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString(" |\n")
	}
	return b.String()
}

// Merge appends another result set's rows under a shared header. The first
// non-empty set fixes the column layout; later sets with a different layout
// are skipped.
func (rs *ResultSet) Merge(other *ResultSet) {
	if other == nil || len(other.Columns) == 0 {
		return
	}
	if len(rs.Columns) == 0 {
		rs.Columns = other.Columns
	}
	if len(other.Columns) != len(rs.Columns) {
		return
	}
	rs.Rows = append(rs.Rows, other.Rows...)
}

// PrependColumn adds a constant-valued leading column to every row.
func (rs *ResultSet) PrependColumn(name, value string) {
	rs.Columns = append([]string{name}, rs.Columns...)
	for i, row := range rs.Rows {
		rs.Rows[i] = append([]string{value}, row...)
	}
}

package tabular

import "strings"

// Table is an in-memory view of one tabular file: a header row plus data
// rows. Rows may be ragged when the source is; consumers should treat
// Columns as authoritative for width.
type Table struct {
	Columns []string
	Rows    [][]string
}

func (t *Table) RowCount() int {
	return len(t.Rows)
}

func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Markdown renders the table as a GitHub-style markdown table, the format
// the LLM prompt embeds.
func (t *Table) Markdown() string {
	var b strings.Builder
	if len(t.Columns) == 0 {
		return ""
	}

	b.WriteString("| " + strings.Join(t.Columns, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(t.Columns)) + "\n")
	for _, row := range t.Rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return b.String()
}

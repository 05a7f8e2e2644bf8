package sheets

// Table is a spreadsheet tab read into memory: a header row plus data
// rows, each padded to the header's width.
type Table struct {
	Header []string
	Rows   [][]string
}

// RowCount returns the number of data rows (the header is not counted).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Record returns data row i keyed by column header. Duplicate headers keep
// the first column, matching how the sheet is read downstream.
func (t *Table) Record(i int) map[string]string {
	record := make(map[string]string, len(t.Header))
	for col := len(t.Header) - 1; col >= 0; col-- {
		record[t.Header[col]] = t.Rows[i][col]
	}
	return record
}

// Records returns every data row keyed by column header.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for i := range t.Rows {
		records = append(records, t.Record(i))
	}
	return records
}

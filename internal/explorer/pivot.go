package explorer

// LongRow is one cell of a wide table after pivoting: the identifying
// columns plus a single (variable, value) pair.
type LongRow struct {
	IDs      map[string]string
	Variable string
	Value    string
}

// Pivot reshapes header-keyed records from wide to long form: each record
// yields one LongRow per value column, carrying the id columns unchanged.
// Row order is preserved, with value columns emitted in the given order.
func Pivot(records []map[string]string, idCols, valueCols []string) []LongRow {
	long := make([]LongRow, 0, len(records)*len(valueCols))
	for _, record := range records {
		ids := make(map[string]string, len(idCols))
		for _, col := range idCols {
			ids[col] = record[col]
		}
		for _, col := range valueCols {
			long = append(long, LongRow{
				IDs:      ids,
				Variable: col,
				Value:    record[col],
			})
		}
	}
	return long
}

package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRecordKeysByHeader(t *testing.T) {
	table := &Table{
		Header: []string{"Ad Name", "Brand", "Product"},
		Rows: [][]string{
			{"Pierre", "Mars", "M&M's"},
			{"Skydive", "Mars", "Snickers"},
		},
	}

	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, map[string]string{
		"Ad Name": "Pierre",
		"Brand":   "Mars",
		"Product": "M&M's",
	}, table.Record(0))

	records := table.Records()
	assert.Len(t, records, 2)
	assert.Equal(t, "Snickers", records[1]["Product"])
}

func TestTableRecordDuplicateHeaderKeepsFirstColumn(t *testing.T) {
	table := &Table{
		Header: []string{"Score", "Score"},
		Rows:   [][]string{{"80", "60"}},
	}
	assert.Equal(t, "80", table.Record(0)["Score"])
}

func TestStringifyRowPadsRaggedRows(t *testing.T) {
	row := stringifyRow([]interface{}{"a", 42, nil}, 5)
	assert.Equal(t, []string{"a", "42", "", "", ""}, row)
}

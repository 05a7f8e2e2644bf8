package explorer

import (
	"errors"
	"time"
)

// DateColumn is the only filterable column that takes a min/max range
// instead of a value set.
const DateColumn = "Date Submitted"

// FilterableColumns lists the columns every filterable view exposes.
func FilterableColumns() []string {
	return []string{"Ad Name", "Brand", "Product", "Content Type", DateColumn}
}

// ErrNoResults marks a filter combination that matched nothing. It is not
// fatal; views render the uniform try-different-filters message.
var ErrNoResults = errors.New("no results with these filters")

// NoResultsMessage is the uniform copy shown for ErrNoResults.
const NoResultsMessage = "Hmm... we couldn't find any existing assets with those filters applied. " +
	"Please try again with a different set of filters applied."

// Filter is a two-stage selection: pick a column, then either a value set
// (categorical columns) or a date range (the date column). A zero Filter
// selects everything.
type Filter struct {
	Column  string     `json:"column"`
	Values  []string   `json:"values,omitempty"`
	MinDate *time.Time `json:"min_date,omitempty"`
	MaxDate *time.Time `json:"max_date,omitempty"`
}

// Active reports whether any filtering was requested.
func (f Filter) Active() bool {
	return f.Column != ""
}

// FilterCells applies f to the long-form cells. An active filter that
// matches nothing returns ErrNoResults rather than a silent empty render.
func FilterCells(cells []Cell, f Filter) ([]Cell, error) {
	if !f.Active() {
		return cells, nil
	}

	var kept []Cell
	if f.Column == DateColumn {
		for _, cell := range cells {
			if f.MinDate != nil && cell.DateSubmitted.Before(*f.MinDate) {
				continue
			}
			if f.MaxDate != nil && cell.DateSubmitted.After(*f.MaxDate) {
				continue
			}
			kept = append(kept, cell)
		}
	} else {
		selected := make(map[string]bool, len(f.Values))
		for _, value := range f.Values {
			selected[value] = true
		}
		for _, cell := range cells {
			if selected[cell.columnValue(f.Column)] {
				kept = append(kept, cell)
			}
		}
	}

	if len(kept) == 0 {
		return nil, ErrNoResults
	}
	return kept, nil
}

func (c *Cell) columnValue(column string) string {
	switch column {
	case "Ad Name":
		return c.AdName
	case "Brand":
		return c.Brand
	case "Product":
		return c.Product
	case "Content Type":
		return c.ContentType
	}
	return ""
}

package explorer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"rep-score-portal/internal/models"
)

// Cell is one square of the score heatmap: an asset identity, one score
// variable, and its display bucket.
type Cell struct {
	AdName        string    `json:"ad_name"`
	Brand         string    `json:"brand"`
	Product       string    `json:"product"`
	ContentType   string    `json:"content_type"`
	DateSubmitted time.Time `json:"date_submitted"`
	QualNotes     string    `json:"-"`
	Variable      string    `json:"variable"`
	Score         string    `json:"score"`
	Bucket        Bucket    `json:"bucket"`
	Color         string    `json:"color"`
}

// Heatmap is the color-map view: total scores per asset, optionally
// broken down by identity category.
type Heatmap struct {
	Overall       []Cell   `json:"overall"`
	Identity      []Cell   `json:"identity,omitempty"`
	CategoryOrder []string `json:"category_order"`
}

// BuildHeatmap deduplicates to the most recent version of each asset,
// pivots the per-category score columns long, buckets every cell, and
// applies the user's filter.
func BuildHeatmap(records []ScoreRecord, filter Filter, breakdown bool) (*Heatmap, error) {
	cells, err := FilterCells(buildCells(LatestVersions(records)), filter)
	if err != nil {
		return nil, err
	}

	heatmap := &Heatmap{CategoryOrder: Categories()}
	for _, cell := range cells {
		if cell.Variable == TotalVariable {
			heatmap.Overall = append(heatmap.Overall, cell)
		} else if breakdown {
			heatmap.Identity = append(heatmap.Identity, cell)
		}
	}
	return heatmap, nil
}

// buildCells pivots records into bucketed long-form cells, one per score
// variable per asset.
func buildCells(records []ScoreRecord) []Cell {
	idCols := []string{"Ad Name", "Brand", "Product", "Content Type", "Date Submitted", "Qual Notes"}
	valueCols := append(Categories(), TotalVariable)

	wide := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := map[string]string{
			"Ad Name":        record.AdName,
			"Brand":          record.Brand,
			"Product":        record.Product,
			"Content Type":   record.ContentType,
			"Date Submitted": record.DateSubmitted.Format(models.DateLayout),
			"Qual Notes":     record.QualNotes,
			TotalVariable:    record.Total,
		}
		for _, category := range Categories() {
			row[category] = record.Scores[category]
		}
		wide = append(wide, row)
	}

	long := Pivot(wide, idCols, valueCols)
	cells := make([]Cell, 0, len(long))
	for _, row := range long {
		bucket := Classify(row.Value)
		cell := Cell{
			AdName:      row.IDs["Ad Name"],
			Brand:       row.IDs["Brand"],
			Product:     row.IDs["Product"],
			ContentType: row.IDs["Content Type"],
			QualNotes:   row.IDs["Qual Notes"],
			Variable:    row.Variable,
			Score:       row.Value,
			Bucket:      bucket,
			Color:       bucket.Color(),
		}
		if date, err := models.ParseSheetDate(row.IDs["Date Submitted"]); err == nil {
			cell.DateSubmitted = date
		}
		cells = append(cells, cell)
	}
	return cells
}

// CategoryAverage is one row of the portfolio rollup.
type CategoryAverage struct {
	Category string  `json:"category"`
	Average  float64 `json:"average"`
	Assets   int     `json:"assets"`
}

// PortfolioAverages aggregates bucketable cells per category: non-numeric
// and baseline cells are dropped, so the baseline category never reaches
// the aggregate. Means are rounded to one decimal place.
func PortfolioAverages(cells []Cell) []CategoryAverage {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, cell := range cells {
		score, err := strconv.ParseFloat(cell.Score, 64)
		if err != nil {
			continue
		}
		sums[cell.Variable] += score
		counts[cell.Variable]++
	}

	order := append(Categories(), TotalVariable)
	averages := make([]CategoryAverage, 0, len(order))
	for _, category := range order {
		if counts[category] == 0 {
			continue
		}
		averages = append(averages, CategoryAverage{
			Category: category,
			Average:  math.Round(sums[category]/float64(counts[category])*10) / 10,
			Assets:   counts[category],
		})
	}
	return averages
}

// Portfolio aggregates the filtered cells of the most recent versions
// into per-category averages.
func Portfolio(records []ScoreRecord, filter Filter) ([]CategoryAverage, error) {
	cells, err := FilterCells(buildCells(LatestVersions(records)), filter)
	if err != nil {
		return nil, err
	}
	return PortfolioAverages(cells), nil
}

// ProgressAxis selects the x-axis of the progress-over-time view.
type ProgressAxis string

const (
	AxisContentType    ProgressAxis = "content_type"
	AxisMonth          ProgressAxis = "month"
	AxisPortfolioMonth ProgressAxis = "portfolio_month"
)

const monthLayout = "Jan 2006"

// ProgressPoint is one plotted point of the progress view.
type ProgressPoint struct {
	AdName        string    `json:"ad_name"`
	Brand         string    `json:"brand,omitempty"`
	Product       string    `json:"product,omitempty"`
	X             string    `json:"x"`
	DateSubmitted time.Time `json:"date_submitted"`
	Score         float64   `json:"score"`
}

// ProgressSeries builds the progress-over-time view: only assets with at
// least two submitted versions qualify, and rows whose total score is
// uncodeable or non-numeric are dropped.
func ProgressSeries(records []ScoreRecord, axis ProgressAxis) ([]ProgressPoint, error) {
	switch axis {
	case AxisContentType, AxisMonth, AxisPortfolioMonth:
	default:
		return nil, fmt.Errorf("unknown progress axis %q", axis)
	}

	repeated := multiVersionKeys(records)

	var points []ProgressPoint
	for _, record := range records {
		if !repeated[record.key()] || containsNoCodeable(record.Total) {
			continue
		}
		score, err := strconv.ParseFloat(record.Total, 64)
		if err != nil {
			continue
		}

		point := ProgressPoint{
			AdName:        record.AdName,
			Brand:         record.Brand,
			Product:       record.Product,
			DateSubmitted: record.DateSubmitted,
			Score:         score,
		}
		switch axis {
		case AxisContentType:
			point.X = record.ContentType
		default:
			point.X = record.DateSubmitted.Format(monthLayout)
		}
		points = append(points, point)
	}

	if axis == AxisPortfolioMonth {
		points = averageByMonth(points)
	}
	return points, nil
}

// averageByMonth collapses points into one portfolio-wide average per
// submission month, in chronological order.
func averageByMonth(points []ProgressPoint) []ProgressPoint {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	firstDate := make(map[string]time.Time)
	for _, point := range points {
		sums[point.X] += point.Score
		counts[point.X]++
		if existing, ok := firstDate[point.X]; !ok || point.DateSubmitted.Before(existing) {
			firstDate[point.X] = point.DateSubmitted
		}
	}

	months := make([]string, 0, len(sums))
	for month := range sums {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return firstDate[months[i]].Before(firstDate[months[j]])
	})

	averaged := make([]ProgressPoint, 0, len(months))
	for _, month := range months {
		averaged = append(averaged, ProgressPoint{
			AdName:        "Portfolio",
			X:             month,
			DateSubmitted: firstDate[month],
			Score:         math.Round(sums[month]/float64(counts[month])*10) / 10,
		})
	}
	return averaged
}

// NoteEntry is one asset's qualitative notes.
type NoteEntry struct {
	AdName        string    `json:"ad_name"`
	Brand         string    `json:"brand"`
	Product       string    `json:"product"`
	DateSubmitted time.Time `json:"date_submitted"`
	Notes         string    `json:"notes"`
}

// QualitativeNotes lists notes for the most recent version of each asset.
func QualitativeNotes(records []ScoreRecord) []NoteEntry {
	entries := make([]NoteEntry, 0, len(records))
	for _, record := range LatestVersions(records) {
		entries = append(entries, NoteEntry{
			AdName:        record.AdName,
			Brand:         record.Brand,
			Product:       record.Product,
			DateSubmitted: record.DateSubmitted,
			Notes:         record.QualNotes,
		})
	}
	return entries
}

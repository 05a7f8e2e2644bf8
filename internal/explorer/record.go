// Package explorer reshapes the scored-asset spreadsheet into the three
// Explore Your Data views: score heatmap, progress over time, and
// qualitative notes.
package explorer

import (
	"strings"
	"time"

	"rep-score-portal/internal/models"
	"rep-score-portal/internal/sheets"
)

// TotalVariable is the aggregate score column, kept alongside the
// per-identity categories in the long relation.
const TotalVariable = "Ad Total Score"

// Categories returns the per-identity score categories in display order.
func Categories() []string {
	return []string{"GENDER", "RACE", "LGBTQ+", "DISABILITY", "BODY SIZE", "AGE"}
}

// The scoring team's sheet headers carry legacy names (and in two cases a
// trailing space); they are normalized on read.
var scoreColumnRenames = map[string]string{
	"Product ":           "Product",
	"TOTAL (GENDER)":     "GENDER",
	"TOTAL (RACE)":       "RACE",
	"TOTAL (LGBTQ)":      "LGBTQ+",
	"TOTAL (Disability)": "DISABILITY",
	"TOTAL (50+)":        "AGE",
	"TOTAL (Fat)":        "BODY SIZE",
}

const catalogNumberColumn = "Cat No. "

// ScoreRecord is one read-only row of the scoring spreadsheet: one scored
// version of one asset.
type ScoreRecord struct {
	CatNo         string            `json:"cat_no"`
	AdName        string            `json:"ad_name"`
	Brand         string            `json:"brand"`
	Product       string            `json:"product"`
	ContentType   string            `json:"content_type"`
	DateSubmitted time.Time         `json:"date_submitted"`
	QualNotes     string            `json:"qual_notes"`
	Scores        map[string]string `json:"scores"`
	Total         string            `json:"total"`
}

func (r *ScoreRecord) key() string {
	return r.AdName + "\x00" + r.Brand + "\x00" + r.Product
}

// RecordsFromTable parses the scoring sheet, discarding rows without a
// catalog number (rows the scoring team has not processed yet).
func RecordsFromTable(table *sheets.Table) []ScoreRecord {
	records := make([]ScoreRecord, 0, table.RowCount())
	for _, raw := range table.Records() {
		normalized := make(map[string]string, len(raw))
		for column, value := range raw {
			if renamed, ok := scoreColumnRenames[column]; ok {
				column = renamed
			}
			normalized[column] = value
		}

		if strings.TrimSpace(normalized[catalogNumberColumn]) == "" {
			continue
		}

		record := ScoreRecord{
			CatNo:       strings.TrimSpace(normalized[catalogNumberColumn]),
			AdName:      normalized["Ad Name"],
			Brand:       normalized["Brand"],
			Product:     normalized["Product"],
			ContentType: normalized["Content Type"],
			QualNotes:   normalized["Qual Notes"],
			Total:       normalized[TotalVariable],
			Scores:      make(map[string]string, len(Categories())),
		}
		for _, category := range Categories() {
			record.Scores[category] = normalized[category]
		}
		if date, err := models.ParseSheetDate(normalized["Date Submitted"]); err == nil {
			record.DateSubmitted = date
		}

		records = append(records, record)
	}
	return records
}

// LatestVersions deduplicates to one record per (ad name, brand, product),
// keeping the row with the maximum submission date. Date ties resolve to
// the later input row; output preserves first-appearance order of keys.
func LatestVersions(records []ScoreRecord) []ScoreRecord {
	order := make([]string, 0, len(records))
	latest := make(map[string]ScoreRecord, len(records))

	for _, record := range records {
		key := record.key()
		existing, seen := latest[key]
		if !seen {
			order = append(order, key)
			latest[key] = record
			continue
		}
		if !record.DateSubmitted.Before(existing.DateSubmitted) {
			latest[key] = record
		}
	}

	out := make([]ScoreRecord, 0, len(order))
	for _, key := range order {
		out = append(out, latest[key])
	}
	return out
}

// multiVersionKeys returns the keys submitted more than once.
func multiVersionKeys(records []ScoreRecord) map[string]bool {
	counts := make(map[string]int, len(records))
	for _, record := range records {
		counts[record.key()]++
	}
	keys := make(map[string]bool, len(counts))
	for key, count := range counts {
		if count >= 2 {
			keys[key] = true
		}
	}
	return keys
}

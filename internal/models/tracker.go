package models

import (
	"strconv"
	"strings"
	"time"
)

// Tracker statuses as the external review process records them. Rows are
// created with StatusUploaded and never mutated by this system afterward.
const (
	StatusUploaded   = "Uploaded"
	StatusInProgress = "In progress"
	StatusComplete   = "Complete"
)

// Tracker sheet column headers, in sheet order.
const (
	ColAssetName       = "Asset Name"
	ColStatus          = "Status"
	ColSubmittedBy     = "Submitted By"
	ColBrand           = "Brand"
	ColProduct         = "Product"
	ColCountries       = "Region / Countries This Creative Will Air In"
	ColContentType     = "Content Type"
	ColVersion         = "Version"
	ColPointOfContact  = "Point of Contact Email"
	ColCreativeBrief   = "Creative Brief Filename"
	ColAssetFilename   = "Asset Filename"
	ColFileUploaded    = "File Uploaded to S3"
	ColDateSubmitted   = "Date Submitted"
	ColNotes           = "Notes"
	colMarketingPrefix = "Marketing Brief Notes"
	colAgencyPrefix    = "Agency Creative Brief Notes"
	colReviewPrefix    = "Creative Reviews Notes"
)

// DateLayout is the submission-date format used across both spreadsheets.
const DateLayout = "01/02/2006"

// AssetTrackerRow is one persisted row of the asset tracker spreadsheet,
// representing a submitted asset version.
type AssetTrackerRow struct {
	AssetName             string      `json:"asset_name"`
	Status                string      `json:"status"`
	SubmittedBy           string      `json:"submitted_by"`
	Brand                 string      `json:"brand"`
	Product               string      `json:"product"`
	CountriesAiring       []string    `json:"countries_airing"`
	ContentType           ContentType `json:"content_type"`
	Version               int         `json:"version"`
	PointOfContact        string      `json:"point_of_contact"`
	CreativeBriefFilename string      `json:"creative_brief_filename"`
	AssetFilename         string      `json:"asset_filename"`
	FileUploaded          bool        `json:"file_uploaded_to_s3"`
	DateSubmitted         time.Time   `json:"date_submitted"`
	MarketingNotes        [4]string   `json:"marketing_notes"`
	AgencyNotes           [5]string   `json:"agency_creative_notes"`
	ReviewNotes           [5]string   `json:"creative_review_notes"`
	Notes                 string      `json:"notes"`
}

// TrackerHeader returns the tracker sheet header row in column order.
func TrackerHeader() []string {
	header := []string{
		ColAssetName,
		ColStatus,
		ColSubmittedBy,
		ColBrand,
		ColProduct,
		ColCountries,
		ColContentType,
		ColVersion,
		ColPointOfContact,
		ColCreativeBrief,
		ColAssetFilename,
		ColFileUploaded,
		ColDateSubmitted,
	}
	header = append(header, MarketingChecklist()...)
	header = append(header, AgencyChecklist()...)
	header = append(header, ReviewChecklist()...)
	header = append(header, ColNotes)
	return header
}

// Values renders the row in tracker column order, ready for an append.
func (r *AssetTrackerRow) Values() []string {
	values := []string{
		r.AssetName,
		r.Status,
		r.SubmittedBy,
		r.Brand,
		r.Product,
		strings.Join(r.CountriesAiring, ", "),
		string(r.ContentType),
		strconv.Itoa(r.Version),
		r.PointOfContact,
		r.CreativeBriefFilename,
		r.AssetFilename,
		strconv.FormatBool(r.FileUploaded),
		r.DateSubmitted.Format(DateLayout),
	}
	values = append(values, r.MarketingNotes[:]...)
	values = append(values, r.AgencyNotes[:]...)
	values = append(values, r.ReviewNotes[:]...)
	values = append(values, r.Notes)
	return values
}

// TrackerRowFromRecord parses a header-keyed sheet record into a tracker
// row. Unparseable versions default to 1 and unparseable dates to the zero
// time; neither aborts the read since the sheet is hand-edited downstream.
func TrackerRowFromRecord(record map[string]string) AssetTrackerRow {
	row := AssetTrackerRow{
		AssetName:             record[ColAssetName],
		Status:                record[ColStatus],
		SubmittedBy:           record[ColSubmittedBy],
		Brand:                 record[ColBrand],
		Product:               record[ColProduct],
		ContentType:           ContentType(record[ColContentType]),
		PointOfContact:        record[ColPointOfContact],
		CreativeBriefFilename: record[ColCreativeBrief],
		AssetFilename:         record[ColAssetFilename],
		Notes:                 record[ColNotes],
	}

	if countries := strings.TrimSpace(record[ColCountries]); countries != "" {
		row.CountriesAiring = NormalizeCountries(strings.Split(countries, ", "))
	}

	row.Version = 1
	if v, err := strconv.Atoi(strings.TrimSpace(record[ColVersion])); err == nil && v > 0 {
		row.Version = v
	}

	row.FileUploaded = strings.EqualFold(strings.TrimSpace(record[ColFileUploaded]), "true")

	if date, err := ParseSheetDate(record[ColDateSubmitted]); err == nil {
		row.DateSubmitted = date
	}

	for i, label := range MarketingChecklist() {
		row.MarketingNotes[i] = record[label]
	}
	for i, label := range AgencyChecklist() {
		row.AgencyNotes[i] = record[label]
	}
	for i, label := range ReviewChecklist() {
		row.ReviewNotes[i] = record[label]
	}

	return row
}

// ParseSheetDate parses a spreadsheet date cell. Both zero-padded and
// unpadded month/day forms show up depending on who last edited the sheet.
func ParseSheetDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	date, err := time.Parse(DateLayout, value)
	if err == nil {
		return date, nil
	}
	return time.Parse("1/2/2006", value)
}

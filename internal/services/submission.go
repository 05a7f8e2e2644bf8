package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"rep-score-portal/internal/config"
	"rep-score-portal/internal/models"
	"rep-score-portal/internal/sheets"
	"rep-score-portal/internal/storage"
)

// ErrConflictingSource is returned when a step supplies both an uploaded
// file and an external URL for the same artifact.
var ErrConflictingSource = errors.New("provide either an uploaded file or a URL, not both")

// ErrMissingSource is returned when a step supplies neither a file nor a URL.
var ErrMissingSource = errors.New("provide an uploaded file or a URL")

// TableStore is the slice of the spreadsheet client the services need.
type TableStore interface {
	ReadTable(ctx context.Context, spreadsheetID, sheetName string) (*sheets.Table, error)
	AppendRow(ctx context.Context, spreadsheetID, sheetName string, expectedRows int, row []string) error
}

// BlobStore uploads asset files and returns the stored filename.
type BlobStore interface {
	Upload(ctx context.Context, category, filename string, body io.Reader) (string, error)
}

// UploadFile is one multipart file handed to the submission service.
type UploadFile struct {
	Filename string
	Body     io.Reader
}

// SubmissionService turns a completed draft into a tracker row, uploading
// any attached files along the way.
type SubmissionService struct {
	store TableStore
	blobs BlobStore
	cfg   *config.Config
	log   *zap.Logger
	now   func() time.Time
}

func NewSubmissionService(store TableStore, blobs BlobStore, cfg *config.Config, log *zap.Logger) *SubmissionService {
	return &SubmissionService{
		store: store,
		blobs: blobs,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// ResolveSource validates the file-or-URL choice for an artifact and
// returns the URL when that is the chosen source. Exactly one of the two
// must be present.
func ResolveSource(hasFile bool, url string) (string, error) {
	url = strings.TrimSpace(url)
	switch {
	case hasFile && url != "":
		return "", ErrConflictingSource
	case !hasFile && url == "":
		return "", ErrMissingSource
	}
	return url, nil
}

// UploadCreativeBrief stores a creative brief file and returns the
// timestamped filename recorded in the draft.
func (s *SubmissionService) UploadCreativeBrief(ctx context.Context, filename string, body io.Reader) (string, error) {
	stored, err := s.blobs.Upload(ctx, storage.CategoryCreativeBriefs, filename, body)
	if err != nil {
		return "", fmt.Errorf("uploading creative brief: %w", err)
	}
	return stored, nil
}

// UploadAssets stores each asset file and returns the stored filenames
// joined with ", " for the tracker's single filename column.
func (s *SubmissionService) UploadAssets(ctx context.Context, files []UploadFile) (string, error) {
	stored := make([]string, 0, len(files))
	for _, f := range files {
		name, err := s.blobs.Upload(ctx, storage.CategoryUploads, f.Filename, f.Body)
		if err != nil {
			return "", fmt.Errorf("uploading asset %q: %w", f.Filename, err)
		}
		stored = append(stored, name)
	}
	return strings.Join(stored, ", "), nil
}

// Submit appends the draft to the asset tracker as a new "Uploaded" row.
// The append is guarded by the row count observed just before it; if
// another submission lands in between, the read-and-append is retried once
// against the fresh count.
func (s *SubmissionService) Submit(ctx context.Context, username string, draft *models.AssetDraft) (*models.AssetTrackerRow, error) {
	row := s.buildRow(username, draft)

	appendOnce := func() error {
		table, err := s.store.ReadTable(ctx, s.cfg.TrackerSpreadsheetID, s.cfg.TrackerSheetName)
		if err != nil {
			return fmt.Errorf("reading tracker before append: %w", err)
		}
		return s.store.AppendRow(ctx, s.cfg.TrackerSpreadsheetID, s.cfg.TrackerSheetName, table.RowCount(), row.Values())
	}

	err := appendOnce()
	if errors.Is(err, sheets.ErrRowCountChanged) {
		s.log.Warn("tracker grew during append, retrying",
			zap.String("asset", row.AssetName),
			zap.Int("version", row.Version))
		err = appendOnce()
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("asset submitted",
		zap.String("asset", row.AssetName),
		zap.String("brand", row.Brand),
		zap.Int("version", row.Version),
		zap.String("submitted_by", username))

	return row, nil
}

func (s *SubmissionService) buildRow(username string, draft *models.AssetDraft) *models.AssetTrackerRow {
	return &models.AssetTrackerRow{
		AssetName:             draft.Name,
		Status:                models.StatusUploaded,
		SubmittedBy:           username,
		Brand:                 draft.Brand,
		Product:               draft.Product,
		CountriesAiring:       draft.CountriesAiring,
		ContentType:           draft.ContentType,
		Version:               draft.Version,
		PointOfContact:        draft.PointOfContact,
		CreativeBriefFilename: draft.CreativeBriefFilename,
		AssetFilename:         draft.AssetFilename,
		FileUploaded:          draft.FileUploaded,
		DateSubmitted:         s.now(),
		MarketingNotes:        draft.MarketingNotes,
		AgencyNotes:           draft.AgencyNotes,
		ReviewNotes:           draft.ReviewNotes,
		Notes:                 draft.Notes,
	}
}

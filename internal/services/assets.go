package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"rep-score-portal/internal/config"
	"rep-score-portal/internal/models"
	"rep-score-portal/internal/sheets"
)

// ErrAssetNotFound is returned when autofill names an asset the user has
// no tracker row for.
var ErrAssetNotFound = errors.New("no prior submission found for that asset")

// Assignments sheet column headers.
const (
	assignmentUserColumn  = "Username"
	assignmentAssetColumn = "Asset Name"
)

// AssetService reads the asset tracker and the per-user assignment tab.
// The tracker table is cached until a submission or an explicit refresh
// invalidates it.
type AssetService struct {
	store TableStore
	cfg   *config.Config
	log   *zap.Logger

	mu     sync.Mutex
	cached *sheets.Table
}

func NewAssetService(store TableStore, cfg *config.Config, log *zap.Logger) *AssetService {
	return &AssetService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Invalidate drops the cached tracker table so the next read hits the
// spreadsheet again.
func (s *AssetService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Refresh drops the cache and warms it back up.
func (s *AssetService) Refresh(ctx context.Context) error {
	s.Invalidate()
	_, err := s.trackerTable(ctx)
	return err
}

func (s *AssetService) trackerTable(ctx context.Context) (*sheets.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached, nil
	}

	table, err := s.store.ReadTable(ctx, s.cfg.TrackerSpreadsheetID, s.cfg.TrackerSheetName)
	if err != nil {
		return nil, err
	}
	s.cached = table
	return table, nil
}

// AssignedAssets returns the asset names assigned to username in the
// assignments tab. Admins are not special-cased here; callers decide
// whether the assignment filter applies at all.
func (s *AssetService) AssignedAssets(ctx context.Context, username string) ([]string, error) {
	table, err := s.store.ReadTable(ctx, s.cfg.TrackerSpreadsheetID, s.cfg.AssignmentsSheetName)
	if err != nil {
		return nil, err
	}

	var assets []string
	for _, record := range table.Records() {
		if !strings.EqualFold(strings.TrimSpace(record[assignmentUserColumn]), username) {
			continue
		}
		if name := strings.TrimSpace(record[assignmentAssetColumn]); name != "" {
			assets = append(assets, name)
		}
	}
	return assets, nil
}

// RowsFor returns the tracker rows visible to the user: every row for
// admins, assigned assets only for everyone else. An empty result with a
// nil error means the user simply has nothing assigned yet.
func (s *AssetService) RowsFor(ctx context.Context, username string, isAdmin bool) ([]models.AssetTrackerRow, error) {
	table, err := s.trackerTable(ctx)
	if err != nil {
		return nil, err
	}

	var assigned map[string]bool
	if !isAdmin {
		names, err := s.AssignedAssets(ctx, username)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return []models.AssetTrackerRow{}, nil
		}
		assigned = make(map[string]bool, len(names))
		for _, name := range names {
			assigned[name] = true
		}
	}

	rows := make([]models.AssetTrackerRow, 0, table.RowCount())
	for _, record := range table.Records() {
		row := models.TrackerRowFromRecord(record)
		if row.AssetName == "" {
			continue
		}
		if assigned != nil && !assigned[row.AssetName] {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AutofillDraft builds a new draft from the most recent visible tracker
// row for assetName, bumping the version. Checklist notes carry over so a
// resubmission only has to revise what changed.
func (s *AssetService) AutofillDraft(ctx context.Context, username string, isAdmin bool, assetName string) (models.AssetDraft, error) {
	rows, err := s.RowsFor(ctx, username, isAdmin)
	if err != nil {
		return models.AssetDraft{}, err
	}

	// Sheet order is append order, so the last match is the most recent
	// submission of that asset.
	var prior *models.AssetTrackerRow
	for i := range rows {
		if rows[i].AssetName == assetName {
			prior = &rows[i]
		}
	}
	if prior == nil {
		return models.AssetDraft{}, ErrAssetNotFound
	}

	draft := models.NewAssetDraft()
	draft.SeenAssetBefore = true
	draft.Name = prior.AssetName
	draft.Brand = prior.Brand
	draft.Product = prior.Product
	draft.CountriesAiring = models.NormalizeCountries(prior.CountriesAiring)
	draft.PointOfContact = prior.PointOfContact
	draft.CreativeBriefFilename = prior.CreativeBriefFilename
	draft.Version = prior.Version + 1
	draft.MarketingNotes = prior.MarketingNotes
	draft.AgencyNotes = prior.AgencyNotes
	draft.ReviewNotes = prior.ReviewNotes
	draft.Notes = prior.Notes

	return draft, nil
}

// AssetNames returns the distinct asset names visible to the user, in
// first-appearance order. Used to offer autofill choices.
func (s *AssetService) AssetNames(ctx context.Context, username string, isAdmin bool) ([]string, error) {
	rows, err := s.RowsFor(ctx, username, isAdmin)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rows))
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if !seen[row.AssetName] {
			seen[row.AssetName] = true
			names = append(names, row.AssetName)
		}
	}
	return names, nil
}

// StatusProgress maps a tracker status to the overview progress fraction.
func StatusProgress(status string) float64 {
	switch status {
	case models.StatusUploaded:
		return 1.0 / 3.0
	case models.StatusInProgress:
		return 2.0 / 3.0
	case models.StatusComplete:
		return 1.0
	default:
		return 0
	}
}

package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"rep-score-portal/internal/config"
	"rep-score-portal/internal/explorer"
)

// ScoreService reads the qualitative score spreadsheet and caches the
// parsed records until invalidated.
type ScoreService struct {
	store TableStore
	cfg   *config.Config
	log   *zap.Logger

	mu     sync.Mutex
	cached []explorer.ScoreRecord
	warm   bool
}

func NewScoreService(store TableStore, cfg *config.Config, log *zap.Logger) *ScoreService {
	return &ScoreService{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Invalidate drops the cached score records.
func (s *ScoreService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.warm = false
	s.mu.Unlock()
}

// Refresh drops the cache and warms it back up.
func (s *ScoreService) Refresh(ctx context.Context) error {
	s.Invalidate()
	_, err := s.Records(ctx)
	return err
}

// Records returns the parsed score records, fetching the sheet on a cold
// cache. The returned slice is shared; callers must not mutate it.
func (s *ScoreService) Records(ctx context.Context) ([]explorer.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.warm {
		return s.cached, nil
	}

	table, err := s.store.ReadTable(ctx, s.cfg.ScoresSpreadsheetID, s.cfg.ScoresSheetName)
	if err != nil {
		return nil, err
	}

	records := explorer.RecordsFromTable(table)
	s.log.Debug("score sheet fetched",
		zap.Int("rows", table.RowCount()),
		zap.Int("records", len(records)))

	s.cached = records
	s.warm = true
	return records, nil
}

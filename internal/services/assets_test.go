package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rep-score-portal/internal/models"
	"rep-score-portal/internal/sheets"
)

func trackerRowValues(name, brand, product, countries, version, date string) []string {
	row := make([]string, len(models.TrackerHeader()))
	row[0] = name
	row[1] = models.StatusUploaded
	row[2] = "alice"
	row[3] = brand
	row[4] = product
	row[5] = countries
	row[6] = "Script"
	row[7] = version
	row[8] = "poc@example.com"
	row[12] = date
	return row
}

func seededStore() *fakeTableStore {
	return &fakeTableStore{tables: map[string]*sheets.Table{
		"tracker-id/Sheet1": {
			Header: models.TrackerHeader(),
			Rows: [][]string{
				trackerRowValues("Spring Launch", "Acme", "Widget", "US", "1", "01/05/2024"),
				trackerRowValues("Holiday Spot", "Acme", "Gadget", "Canada", "1", "02/01/2024"),
				trackerRowValues("Spring Launch", "Acme", "Widget", "US, Canada", "2", "03/09/2024"),
			},
		},
		"tracker-id/Assignments": {
			Header: []string{"Username", "Asset Name"},
			Rows: [][]string{
				{"alice", "Spring Launch"},
				{"bob", "Holiday Spot"},
			},
		},
	}}
}

func TestRowsForAdminSeesEverything(t *testing.T) {
	svc := NewAssetService(seededStore(), testConfig(), zap.NewNop())

	rows, err := svc.RowsFor(context.Background(), "carol", true)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestRowsForFiltersByAssignment(t *testing.T) {
	svc := NewAssetService(seededStore(), testConfig(), zap.NewNop())

	rows, err := svc.RowsFor(context.Background(), "alice", false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "Spring Launch", row.AssetName)
	}
}

func TestRowsForNoAssignmentsIsEmptyNotError(t *testing.T) {
	svc := NewAssetService(seededStore(), testConfig(), zap.NewNop())

	rows, err := svc.RowsFor(context.Background(), "carol", false)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAutofillDraftUsesMostRecentRow(t *testing.T) {
	svc := NewAssetService(seededStore(), testConfig(), zap.NewNop())

	draft, err := svc.AutofillDraft(context.Background(), "alice", false, "Spring Launch")
	require.NoError(t, err)

	assert.True(t, draft.SeenAssetBefore)
	assert.Equal(t, "Spring Launch", draft.Name)
	assert.Equal(t, 3, draft.Version)
	// "US" in the sheet reads back as the catalog name.
	assert.Equal(t, []string{"United States of America", "Canada"}, draft.CountriesAiring)
}

func TestAutofillDraftUnknownAsset(t *testing.T) {
	svc := NewAssetService(seededStore(), testConfig(), zap.NewNop())

	_, err := svc.AutofillDraft(context.Background(), "alice", false, "Nonexistent")
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestAssetNamesDeduplicatesInOrder(t *testing.T) {
	svc := NewAssetService(seededStore(), testConfig(), zap.NewNop())

	names, err := svc.AssetNames(context.Background(), "carol", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Spring Launch", "Holiday Spot"}, names)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store := seededStore()
	svc := NewAssetService(store, testConfig(), zap.NewNop())

	rows, err := svc.RowsFor(context.Background(), "carol", true)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	grown := *store.tables["tracker-id/Sheet1"]
	grown.Rows = append(append([][]string{}, grown.Rows...),
		trackerRowValues("New Asset", "Acme", "Widget", "Canada", "1", "04/01/2024"))
	store.tables["tracker-id/Sheet1"] = &grown

	// Cached table still serves the old view.
	rows, err = svc.RowsFor(context.Background(), "carol", true)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	svc.Invalidate()
	rows, err = svc.RowsFor(context.Background(), "carol", true)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestStatusProgress(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, StatusProgress(models.StatusUploaded), 1e-9)
	assert.InDelta(t, 2.0/3.0, StatusProgress(models.StatusInProgress), 1e-9)
	assert.InDelta(t, 1.0, StatusProgress(models.StatusComplete), 1e-9)
	assert.Zero(t, StatusProgress("Unknown"))
}

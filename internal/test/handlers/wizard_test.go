package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rep-score-portal/internal/config"
	"rep-score-portal/internal/handlers"
	"rep-score-portal/internal/middleware"
	"rep-score-portal/internal/models"
	"rep-score-portal/internal/services"
	"rep-score-portal/internal/session"
	"rep-score-portal/internal/sheets"
)

// stubTableStore serves canned tables and records appended rows.
type stubTableStore struct {
	tables   map[string]*sheets.Table
	appended [][]string
}

func (s *stubTableStore) ReadTable(_ context.Context, spreadsheetID, sheetName string) (*sheets.Table, error) {
	table, ok := s.tables[spreadsheetID+"/"+sheetName]
	if !ok {
		return nil, fmt.Errorf("no such sheet %s", sheetName)
	}
	return table, nil
}

func (s *stubTableStore) AppendRow(_ context.Context, spreadsheetID, sheetName string, _ int, row []string) error {
	s.appended = append(s.appended, row)
	table := s.tables[spreadsheetID+"/"+sheetName]
	table.Rows = append(table.Rows, row)
	return nil
}

type stubBlobStore struct {
	uploads []string
}

func (s *stubBlobStore) Upload(_ context.Context, category, filename string, _ io.Reader) (string, error) {
	s.uploads = append(s.uploads, category+"/"+filename)
	return filename + "_1700000000", nil
}

type wizardFixture struct {
	router   *gin.Engine
	sessions session.Store
	store    *stubTableStore
	blobs    *stubBlobStore
}

func newWizardFixture(t *testing.T, trackerRows [][]string, assignmentRows [][]string) *wizardFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		TrackerSpreadsheetID: "tracker-id",
		TrackerSheetName:     "Sheet1",
		AssignmentsSheetName: "Assignments",
		ScoresSpreadsheetID:  "scores-id",
		ScoresSheetName:      "Sheet1",
	}

	store := &stubTableStore{tables: map[string]*sheets.Table{
		"tracker-id/Sheet1": {Header: models.TrackerHeader(), Rows: trackerRows},
		"tracker-id/Assignments": {
			Header: []string{"Username", "Asset Name"},
			Rows:   assignmentRows,
		},
	}}
	blobs := &stubBlobStore{}
	sessions := session.NewMemoryStore()
	log := zap.NewNop()

	assets := services.NewAssetService(store, cfg, log)
	submissions := services.NewSubmissionService(store, blobs, cfg, log)
	handler := handlers.NewWizardHandler(sessions, assets, submissions, log)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UsernameKey, "alice")
		c.Set(middleware.IsAdminKey, false)
	})
	router.GET("/wizard", handler.GetState)
	router.POST("/wizard/steps/seen-before", handler.SeenBefore)
	router.POST("/wizard/steps/identity", handler.Identity)
	router.POST("/wizard/steps/marketing", handler.Marketing)
	router.POST("/wizard/steps/agency", handler.Agency)
	router.POST("/wizard/steps/review", handler.Review)
	router.POST("/wizard/steps/upload", handler.Upload)
	router.POST("/wizard/back", handler.Back)
	router.POST("/wizard/reset", handler.Reset)

	return &wizardFixture{router: router, sessions: sessions, store: store, blobs: blobs}
}

func (f *wizardFixture) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *wizardFixture) postJSON(t *testing.T, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return f.do(t, "POST", path, bytes.NewReader(body), "application/json")
}

func (f *wizardFixture) postForm(t *testing.T, path string, fields map[string][]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, values := range fields {
		for _, value := range values {
			require.NoError(t, writer.WriteField(field, value))
		}
	}
	require.NoError(t, writer.Close())
	return f.do(t, "POST", path, &buf, writer.FormDataContentType())
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) handlers.WizardState {
	t.Helper()
	var state handlers.WizardState
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func identityFields() map[string][]string {
	return map[string][]string{
		"name":               {"Spring Launch"},
		"brand":              {"Acme"},
		"product":            {"Widget"},
		"countries_airing":   {"US", "Canada"},
		"point_of_contact":   {"poc@example.com"},
		"creative_brief_url": {"https://example.com/brief.pdf"},
	}
}

func TestWizardEntryStepWithoutHistory(t *testing.T) {
	f := newWizardFixture(t, nil, nil)

	w := f.do(t, "GET", "/wizard", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	assert.Equal(t, "identity", state.Step)
	assert.False(t, state.OfferAutofill)
	assert.Empty(t, state.Markers)
}

func TestWizardOffersAutofillWithHistory(t *testing.T) {
	row := make([]string, len(models.TrackerHeader()))
	row[0] = "Spring Launch"
	f := newWizardFixture(t, [][]string{row}, [][]string{{"alice", "Spring Launch"}})

	w := f.do(t, "GET", "/wizard", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	state := decodeState(t, w)
	assert.Equal(t, "seen_before", state.Step)
	assert.True(t, state.OfferAutofill)
	assert.Equal(t, []string{"Spring Launch"}, state.PriorAssets)
}

func TestWizardStepOutOfOrder(t *testing.T) {
	f := newWizardFixture(t, nil, nil)

	w := f.postJSON(t, "/wizard/steps/marketing", models.ChecklistStepRequest{Notes: []string{"x"}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "step out of order")
}

func TestWizardIdentityValidation(t *testing.T) {
	f := newWizardFixture(t, nil, nil)

	fields := identityFields()
	delete(fields, "brand")
	w := f.postForm(t, "/wizard/steps/identity", fields)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp handlers.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Missing, "brand")

	// Entered fields survive the failed transition.
	state, err := f.sessions.Load(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Spring Launch", state.Draft.Name)
	assert.Empty(t, state.Markers)
}

func TestWizardFullFlow(t *testing.T) {
	f := newWizardFixture(t, nil, nil)

	w := f.postForm(t, "/wizard/steps/identity", identityFields())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state := decodeState(t, w)
	assert.Equal(t, "marketing", state.Step)
	assert.Equal(t, []string{"United States of America", "Canada"}, state.Draft.CountriesAiring)

	w = f.postJSON(t, "/wizard/steps/marketing", models.ChecklistStepRequest{Notes: []string{"m1", "m2", "m3", "m4"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "agency", decodeState(t, w).Step)

	w = f.postJSON(t, "/wizard/steps/agency", models.ChecklistStepRequest{Notes: []string{"a1", "a2", "a3", "a4", "a5"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "review", decodeState(t, w).Step)

	w = f.postJSON(t, "/wizard/steps/review", models.ChecklistStepRequest{Notes: []string{"r1", "r2", "r3", "r4", "r5"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "upload", decodeState(t, w).Step)

	w = f.postForm(t, "/wizard/steps/upload", map[string][]string{
		"content_type": {"Final Cut"},
		"version":      {"1"},
		"asset_url":    {"https://example.com/cut.mp4"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state = decodeState(t, w)
	assert.Equal(t, "summary", state.Step)

	// Exactly one tracker row was appended, marked "Uploaded".
	require.Len(t, f.store.appended, 1)
	values := f.store.appended[0]
	assert.Equal(t, "Spring Launch", values[0])
	assert.Equal(t, models.StatusUploaded, values[1])
	assert.Equal(t, "alice", values[2])
	assert.Equal(t, "m1", values[13])

	// The flow is terminal now.
	w = f.postForm(t, "/wizard/steps/upload", map[string][]string{
		"content_type": {"Final Cut"},
		"asset_url":    {"https://example.com/cut.mp4"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWizardUploadRejectsConflictingSources(t *testing.T) {
	f := newWizardFixture(t, nil, nil)

	require.Equal(t, http.StatusOK, f.postForm(t, "/wizard/steps/identity", identityFields()).Code)
	f.postJSON(t, "/wizard/steps/marketing", models.ChecklistStepRequest{})
	f.postJSON(t, "/wizard/steps/agency", models.ChecklistStepRequest{})
	f.postJSON(t, "/wizard/steps/review", models.ChecklistStepRequest{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("content_type", "Video"))
	require.NoError(t, writer.WriteField("asset_url", "https://example.com/cut.mp4"))
	part, err := writer.CreateFormFile("assets", "cut.mp4")
	require.NoError(t, err)
	_, err = part.Write([]byte("video bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := f.do(t, "POST", "/wizard/steps/upload", &buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not both")
	assert.Empty(t, f.store.appended)
}

func TestWizardUploadStoresFiles(t *testing.T) {
	f := newWizardFixture(t, nil, nil)

	require.Equal(t, http.StatusOK, f.postForm(t, "/wizard/steps/identity", identityFields()).Code)
	f.postJSON(t, "/wizard/steps/marketing", models.ChecklistStepRequest{})
	f.postJSON(t, "/wizard/steps/agency", models.ChecklistStepRequest{})
	f.postJSON(t, "/wizard/steps/review", models.ChecklistStepRequest{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("content_type", "Video"))
	for _, name := range []string{"cut_a.mp4", "cut_b.mp4"} {
		part, err := writer.CreateFormFile("assets", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("video bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := f.do(t, "POST", "/wizard/steps/upload", &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	state := decodeState(t, w)
	assert.True(t, state.Draft.FileUploaded)
	assert.Equal(t, "cut_a.mp4_1700000000, cut_b.mp4_1700000000", state.Draft.AssetFilename)
	assert.Equal(t, []string{"uploads/cut_a.mp4", "uploads/cut_b.mp4"}, f.blobs.uploads)
}

func TestWizardSeenBeforeAutofillsDraft(t *testing.T) {
	prior := make([]string, len(models.TrackerHeader()))
	prior[0] = "Spring Launch"
	prior[1] = models.StatusComplete
	prior[3] = "Acme"
	prior[4] = "Widget"
	prior[5] = "US"
	prior[7] = "2"
	prior[8] = "poc@example.com"
	f := newWizardFixture(t, [][]string{prior}, [][]string{{"alice", "Spring Launch"}})

	w := f.postJSON(t, "/wizard/steps/seen-before", models.SeenBeforeRequest{
		SeenAssetBefore: true,
		AssetName:       "Spring Launch",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	state := decodeState(t, w)
	assert.Equal(t, "identity", state.Step)
	assert.True(t, state.Draft.SeenAssetBefore)
	assert.Equal(t, "Spring Launch", state.Draft.Name)
	assert.Equal(t, 3, state.Draft.Version)
	assert.Equal(t, []string{"United States of America"}, state.Draft.CountriesAiring)
}

func TestWizardBackAndReset(t *testing.T) {
	f := newWizardFixture(t, nil, nil)

	require.Equal(t, http.StatusOK, f.postForm(t, "/wizard/steps/identity", identityFields()).Code)

	w := f.do(t, "POST", "/wizard/back", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	state := decodeState(t, w)
	assert.Equal(t, "identity", state.Step)
	// Entered values survive going back.
	assert.Equal(t, "Spring Launch", state.Draft.Name)

	w = f.do(t, "POST", "/wizard/reset", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	state = decodeState(t, w)
	assert.Equal(t, "identity", state.Step)
	assert.Empty(t, state.Draft.Name)
}

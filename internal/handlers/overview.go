package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rep-score-portal/internal/middleware"
	"rep-score-portal/internal/models"
	"rep-score-portal/internal/services"
	"rep-score-portal/internal/session"
	"rep-score-portal/internal/wizard"
)

// NoAssignedAssetsMessage is shown when the user has nothing to look at
// yet; it is informational, not an error.
const NoAssignedAssetsMessage = "You have not been assigned to view a submitted asset yet. " +
	"Please either 1) submit a new asset or 2) contact your portal administrator to be " +
	"assigned to an existing asset."

// NoMatchingAssetsMessage is shown when the overview filter excludes
// every visible asset.
const NoMatchingAssetsMessage = "Hmm... we couldn't find any existing assets with those " +
	"filters applied. Please try again with a different set of filters."

// Overview filter columns, matching the tracker's display columns.
var overviewFilterColumns = []string{
	models.ColAssetName,
	models.ColBrand,
	models.ColProduct,
	models.ColContentType,
	models.ColVersion,
}

// AssetSummary is one tracker row plus its review progress fraction.
type AssetSummary struct {
	models.AssetTrackerRow
	Progress float64 `json:"progress"`
}

// InProgressDraft is the user's unsubmitted draft as shown at the top of
// the overview.
type InProgressDraft struct {
	Name        string             `json:"name"`
	Brand       string             `json:"brand"`
	Product     string             `json:"product"`
	ContentType models.ContentType `json:"content_type,omitempty"`
	Version     int                `json:"version"`
	Status      string             `json:"status"`
	Progress    float64            `json:"progress"`
}

// OverviewResponse is the asset overview page payload.
type OverviewResponse struct {
	Assets        []AssetSummary   `json:"assets"`
	InProgress    *InProgressDraft `json:"in_progress,omitempty"`
	FilterColumns []string         `json:"filter_columns"`
	Message       string           `json:"message,omitempty"`
}

// OverviewHandler serves the tracker view of submitted assets.
type OverviewHandler struct {
	assets   *services.AssetService
	sessions session.Store
	log      *zap.Logger
}

func NewOverviewHandler(assets *services.AssetService, sessions session.Store, log *zap.Logger) *OverviewHandler {
	return &OverviewHandler{
		assets:   assets,
		sessions: sessions,
		log:      log,
	}
}

// Overview godoc
// @Summary     Asset overview
// @Description Lists the tracker rows visible to the user (all rows for admins, assigned assets otherwise), each with a review progress fraction, plus any in-progress draft. Optionally filtered by one tracker column.
// @Tags        overview
// @Produce     json
// @Security    Bearer
// @Param       filter_column query string false "Tracker column to filter by" Enums(Asset Name, Brand, Product, Content Type, Version)
// @Param       filter_values query []string false "Values to keep (repeatable)"
// @Success     200 {object} OverviewResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /assets [get]
func (h *OverviewHandler) Overview(c *gin.Context) {
	username := middleware.Username(c)

	rows, err := h.assets.RowsFor(c.Request.Context(), username, middleware.IsAdmin(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}

	response := OverviewResponse{
		Assets:        []AssetSummary{},
		FilterColumns: overviewFilterColumns,
	}

	if draft := h.inProgressDraft(c, username); draft != nil {
		response.InProgress = draft
	}

	if len(rows) == 0 {
		response.Message = NoAssignedAssetsMessage
		c.JSON(http.StatusOK, response)
		return
	}

	filtered, ok := filterRows(c, rows)
	if !ok {
		return
	}
	if len(filtered) == 0 {
		response.Message = NoMatchingAssetsMessage
		c.JSON(http.StatusOK, response)
		return
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].DateSubmitted.After(filtered[j].DateSubmitted)
	})

	for _, row := range filtered {
		response.Assets = append(response.Assets, AssetSummary{
			AssetTrackerRow: row,
			Progress:        services.StatusProgress(row.Status),
		})
	}
	c.JSON(http.StatusOK, response)
}

// inProgressDraft surfaces the unsubmitted draft, if the user has one
// with at least a name.
func (h *OverviewHandler) inProgressDraft(c *gin.Context, username string) *InProgressDraft {
	state, err := h.sessions.Load(c.Request.Context(), username)
	if err != nil {
		h.log.Warn("loading session for overview", zap.String("username", username), zap.Error(err))
		return nil
	}
	if state.Draft.Name == "" {
		return nil
	}

	m := wizard.FromMarkers(state.Markers, false)
	if m.Step() == wizard.StepSummary {
		// Already submitted; the tracker row covers it.
		return nil
	}

	return &InProgressDraft{
		Name:        state.Draft.Name,
		Brand:       state.Draft.Brand,
		Product:     state.Draft.Product,
		ContentType: state.Draft.ContentType,
		Version:     state.Draft.Version,
		Status:      "Not yet uploaded",
		Progress:    m.Progress(),
	}
}

func filterRows(c *gin.Context, rows []models.AssetTrackerRow) ([]models.AssetTrackerRow, bool) {
	column := strings.TrimSpace(c.Query("filter_column"))
	if column == "" {
		return rows, true
	}

	valid := false
	for _, known := range overviewFilterColumns {
		if column == known {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown filter column",
			Message: column,
		})
		return nil, false
	}

	selected := make(map[string]bool)
	for _, value := range c.QueryArray("filter_values") {
		selected[value] = true
	}

	var kept []models.AssetTrackerRow
	for _, row := range rows {
		if selected[overviewColumnValue(row, column)] {
			kept = append(kept, row)
		}
	}
	return kept, true
}

func overviewColumnValue(row models.AssetTrackerRow, column string) string {
	switch column {
	case models.ColAssetName:
		return row.AssetName
	case models.ColBrand:
		return row.Brand
	case models.ColProduct:
		return row.Product
	case models.ColContentType:
		return string(row.ContentType)
	case models.ColVersion:
		return strconv.Itoa(row.Version)
	}
	return ""
}

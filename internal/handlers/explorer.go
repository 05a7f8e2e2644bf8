package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rep-score-portal/internal/explorer"
	"rep-score-portal/internal/middleware"
	"rep-score-portal/internal/models"
	"rep-score-portal/internal/services"
)

// NoNotesMessage is shown when no asset has qualitative notes yet.
const NoNotesMessage = "No notes! 🎉"

// HeatmapResponse is the color-map view payload. NoResults flags an
// over-filtered (but otherwise healthy) query.
type HeatmapResponse struct {
	Heatmap   *explorer.Heatmap `json:"heatmap,omitempty"`
	NoResults bool              `json:"no_results,omitempty"`
	Message   string            `json:"message,omitempty"`
}

// ProgressResponse is the progress-over-time view payload.
type ProgressResponse struct {
	Axis    explorer.ProgressAxis    `json:"axis"`
	Points  []explorer.ProgressPoint `json:"points"`
	Message string                   `json:"message,omitempty"`
}

// NotesResponse lists qualitative notes per asset.
type NotesResponse struct {
	Notes   []explorer.NoteEntry `json:"notes"`
	Message string               `json:"message,omitempty"`
}

// PortfolioResponse is the per-category rollup payload.
type PortfolioResponse struct {
	Averages  []explorer.CategoryAverage `json:"averages"`
	NoResults bool                       `json:"no_results,omitempty"`
	Message   string                     `json:"message,omitempty"`
}

// ExplorerHandler serves the score-exploration views.
type ExplorerHandler struct {
	scores *services.ScoreService
	assets *services.AssetService
	log    *zap.Logger
}

func NewExplorerHandler(scores *services.ScoreService, assets *services.AssetService, log *zap.Logger) *ExplorerHandler {
	return &ExplorerHandler{
		scores: scores,
		assets: assets,
		log:    log,
	}
}

// visibleRecords fetches the score records the requesting user may see:
// every record for admins, records for assigned assets otherwise. An
// empty assignment list is reported separately so each view can answer
// with its call-to-action payload instead of an empty render.
func (h *ExplorerHandler) visibleRecords(c *gin.Context) (records []explorer.ScoreRecord, emptyAssignment, ok bool) {
	records, err := h.scores.Records(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return nil, false, false
	}

	if middleware.IsAdmin(c) {
		return records, false, true
	}

	assigned, err := h.assets.AssignedAssets(c.Request.Context(), middleware.Username(c))
	if err != nil {
		respondStoreError(c, err)
		return nil, false, false
	}
	if len(assigned) == 0 {
		return nil, true, true
	}

	allowed := make(map[string]bool, len(assigned))
	for _, name := range assigned {
		allowed[name] = true
	}
	kept := make([]explorer.ScoreRecord, 0, len(records))
	for _, record := range records {
		if allowed[record.AdName] {
			kept = append(kept, record)
		}
	}
	return kept, false, true
}

// parseFilter reads the shared filter query parameters. Dates use the
// same mm/dd/yyyy layout as the spreadsheets.
func parseFilter(c *gin.Context) (explorer.Filter, bool) {
	filter := explorer.Filter{
		Column: strings.TrimSpace(c.Query("filter_column")),
		Values: c.QueryArray("filter_values"),
	}

	for _, bound := range []struct {
		param  string
		target **time.Time
	}{
		{"min_date", &filter.MinDate},
		{"max_date", &filter.MaxDate},
	} {
		raw := strings.TrimSpace(c.Query(bound.param))
		if raw == "" {
			continue
		}
		parsed, err := models.ParseSheetDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid " + bound.param,
				Message: "expected mm/dd/yyyy",
			})
			return explorer.Filter{}, false
		}
		*bound.target = &parsed
	}

	return filter, true
}

// Heatmap godoc
// @Summary     Score heatmap
// @Description Total rep scores per asset (most recent version of each), bucketed into good/fair/poor colors, optionally broken down by identity category. Non-admins only see assets they are assigned to. A filter that matches nothing returns the uniform no-results message, not an error.
// @Tags        explore
// @Produce     json
// @Security    Bearer
// @Param       breakdown query bool false "Include the per-identity breakdown"
// @Param       filter_column query string false "Column to filter by"
// @Param       filter_values query []string false "Values to keep (repeatable)"
// @Param       min_date query string false "Earliest submission date (mm/dd/yyyy)"
// @Param       max_date query string false "Latest submission date (mm/dd/yyyy)"
// @Success     200 {object} HeatmapResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /explore/heatmap [get]
func (h *ExplorerHandler) Heatmap(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	records, emptyAssignment, ok := h.visibleRecords(c)
	if !ok {
		return
	}
	if emptyAssignment {
		c.JSON(http.StatusOK, HeatmapResponse{Message: NoAssignedAssetsMessage})
		return
	}

	breakdown := c.Query("breakdown") == "true"
	heatmap, err := explorer.BuildHeatmap(records, filter, breakdown)
	if err != nil {
		if errors.Is(err, explorer.ErrNoResults) {
			c.JSON(http.StatusOK, HeatmapResponse{NoResults: true, Message: explorer.NoResultsMessage})
			return
		}
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, HeatmapResponse{Heatmap: heatmap})
}

// Progress godoc
// @Summary     Progress over time
// @Description Score trajectories for assets with at least two submitted versions, plotted against the chosen axis.
// @Tags        explore
// @Produce     json
// @Security    Bearer
// @Param       axis query string false "X axis" Enums(content_type, month, portfolio_month) default(content_type)
// @Success     200 {object} ProgressResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /explore/progress [get]
func (h *ExplorerHandler) Progress(c *gin.Context) {
	axis := explorer.ProgressAxis(c.DefaultQuery("axis", string(explorer.AxisContentType)))

	records, emptyAssignment, ok := h.visibleRecords(c)
	if !ok {
		return
	}
	if emptyAssignment {
		c.JSON(http.StatusOK, ProgressResponse{
			Axis:    axis,
			Points:  []explorer.ProgressPoint{},
			Message: NoAssignedAssetsMessage,
		})
		return
	}

	points, err := explorer.ProgressSeries(records, axis)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid axis", Message: err.Error()})
		return
	}
	if points == nil {
		points = []explorer.ProgressPoint{}
	}
	c.JSON(http.StatusOK, ProgressResponse{Axis: axis, Points: points})
}

// Notes godoc
// @Summary     Qualitative notes
// @Description Reviewer notes for the most recent version of each asset.
// @Tags        explore
// @Produce     json
// @Security    Bearer
// @Success     200 {object} NotesResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /explore/notes [get]
func (h *ExplorerHandler) Notes(c *gin.Context) {
	records, emptyAssignment, ok := h.visibleRecords(c)
	if !ok {
		return
	}
	if emptyAssignment {
		c.JSON(http.StatusOK, NotesResponse{
			Notes:   []explorer.NoteEntry{},
			Message: NoAssignedAssetsMessage,
		})
		return
	}

	entries := explorer.QualitativeNotes(records)
	withNotes := entries[:0]
	for _, entry := range entries {
		if strings.TrimSpace(entry.Notes) != "" {
			withNotes = append(withNotes, entry)
		}
	}

	response := NotesResponse{Notes: withNotes}
	if len(withNotes) == 0 {
		response.Notes = []explorer.NoteEntry{}
		response.Message = NoNotesMessage
	}
	c.JSON(http.StatusOK, response)
}

// Portfolio godoc
// @Summary     Portfolio averages
// @Description Mean score per identity category across the most recent version of every asset, rounded to one decimal place.
// @Tags        explore
// @Produce     json
// @Security    Bearer
// @Param       filter_column query string false "Column to filter by"
// @Param       filter_values query []string false "Values to keep (repeatable)"
// @Param       min_date query string false "Earliest submission date (mm/dd/yyyy)"
// @Param       max_date query string false "Latest submission date (mm/dd/yyyy)"
// @Success     200 {object} PortfolioResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /explore/portfolio [get]
func (h *ExplorerHandler) Portfolio(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	records, emptyAssignment, ok := h.visibleRecords(c)
	if !ok {
		return
	}
	if emptyAssignment {
		c.JSON(http.StatusOK, PortfolioResponse{
			Averages: []explorer.CategoryAverage{},
			Message:  NoAssignedAssetsMessage,
		})
		return
	}

	averages, err := explorer.Portfolio(records, filter)
	if err != nil {
		if errors.Is(err, explorer.ErrNoResults) {
			c.JSON(http.StatusOK, PortfolioResponse{NoResults: true, Message: explorer.NoResultsMessage})
			return
		}
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, PortfolioResponse{Averages: averages})
}

// Refresh godoc
// @Summary     Refresh cached spreadsheet data
// @Description Drops and rewarms the tracker and score caches. The two fetches run concurrently.
// @Tags        explore
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.MessageResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /refresh [post]
func (h *ExplorerHandler) Refresh(c *gin.Context) {
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error { return h.assets.Refresh(ctx) })
	g.Go(func() error { return h.scores.Refresh(ctx) })

	if err := g.Wait(); err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "data refreshed"})
}

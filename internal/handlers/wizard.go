package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rep-score-portal/internal/middleware"
	"rep-score-portal/internal/models"
	"rep-score-portal/internal/services"
	"rep-score-portal/internal/session"
	"rep-score-portal/internal/sheets"
	"rep-score-portal/internal/wizard"
)

// maxUploadMemory caps the in-memory portion of multipart parsing (32MB).
const maxUploadMemory = 32 << 20

// WizardState is the rendered view of the submission flow for one user.
type WizardState struct {
	Step          string            `json:"step"`
	Markers       []string          `json:"markers"`
	Progress      float64           `json:"progress"`
	OfferAutofill bool              `json:"offer_autofill"`
	PriorAssets   []string          `json:"prior_assets,omitempty"`
	Draft         models.AssetDraft `json:"draft"`
}

// ValidationResponse reports which required fields stopped a forward
// transition. The draft keeps everything already entered.
type ValidationResponse struct {
	Error   string   `json:"error"`
	Step    string   `json:"step"`
	Missing []string `json:"missing"`
}

// WizardHandler drives the six-step submission flow. All state lives in
// the session store; every request rebuilds the machine from it.
type WizardHandler struct {
	sessions    session.Store
	assets      *services.AssetService
	submissions *services.SubmissionService
	log         *zap.Logger
}

func NewWizardHandler(sessions session.Store, assets *services.AssetService, submissions *services.SubmissionService, log *zap.Logger) *WizardHandler {
	return &WizardHandler{
		sessions:    sessions,
		assets:      assets,
		submissions: submissions,
		log:         log,
	}
}

// machineFor rebuilds the wizard machine from stored state. The autofill
// branch is only offered to users who have prior submissions to copy.
func (h *WizardHandler) machineFor(c *gin.Context, state session.State) (*wizard.Machine, []string, error) {
	priorAssets, err := h.assets.AssetNames(c.Request.Context(), middleware.Username(c), middleware.IsAdmin(c))
	if err != nil {
		return nil, nil, err
	}
	return wizard.FromMarkers(state.Markers, len(priorAssets) > 0), priorAssets, nil
}

func (h *WizardHandler) loadState(c *gin.Context) (session.State, bool) {
	state, err := h.sessions.Load(c.Request.Context(), middleware.Username(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load session",
			Message: err.Error(),
		})
		return session.State{}, false
	}
	return state, true
}

func (h *WizardHandler) saveState(c *gin.Context, state session.State) bool {
	if err := h.sessions.Save(c.Request.Context(), middleware.Username(c), state); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save session",
			Message: err.Error(),
		})
		return false
	}
	return true
}

func renderState(m *wizard.Machine, priorAssets []string, draft models.AssetDraft) WizardState {
	return WizardState{
		Step:          m.Step().String(),
		Markers:       m.Markers(),
		Progress:      m.Progress(),
		OfferAutofill: len(priorAssets) > 0,
		PriorAssets:   priorAssets,
		Draft:         draft,
	}
}

// respondStoreError maps spreadsheet connectivity failures to the uniform
// "please refresh" 503.
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, sheets.ErrStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "spreadsheet temporarily unavailable",
			Message: "Please refresh the page and try again.",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal error",
		Message: err.Error(),
	})
}

// wrongStep rejects a step endpoint called out of order.
func wrongStep(c *gin.Context, want wizard.Step, m *wizard.Machine) bool {
	if m.Step() == want {
		return false
	}
	c.JSON(http.StatusConflict, models.ErrorResponse{
		Error:   "step out of order",
		Message: fmt.Sprintf("current step is %s, not %s", m.Step(), want),
	})
	return true
}

// GetState godoc
// @Summary     Current wizard state
// @Description Returns the step to render, the in-progress draft, and the accumulated progress.
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Success     200 {object} WizardState
// @Failure     401 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /wizard [get]
func (h *WizardHandler) GetState(c *gin.Context) {
	state, ok := h.loadState(c)
	if !ok {
		return
	}
	m, priorAssets, err := h.machineFor(c, state)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderState(m, priorAssets, state.Draft))
}

// SeenBefore godoc
// @Summary     Answer the seen-before branch
// @Description Optionally autofills the draft from the most recent prior submission of the chosen asset, then advances to the identity step.
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.SeenBeforeRequest true "Branch answer"
// @Success     200 {object} WizardState
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /wizard/steps/seen-before [post]
func (h *WizardHandler) SeenBefore(c *gin.Context) {
	var req models.SeenBeforeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	state, ok := h.loadState(c)
	if !ok {
		return
	}
	m, priorAssets, err := h.machineFor(c, state)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if wrongStep(c, wizard.StepSeenBefore, m) {
		return
	}

	if req.SeenAssetBefore {
		if strings.TrimSpace(req.AssetName) == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "asset_name is required when seen_asset_before is true"})
			return
		}
		draft, err := h.assets.AutofillDraft(c.Request.Context(), middleware.Username(c), middleware.IsAdmin(c), req.AssetName)
		if err != nil {
			if errors.Is(err, services.ErrAssetNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "asset not found", Message: err.Error()})
				return
			}
			respondStoreError(c, err)
			return
		}
		state.Draft = draft
	}

	if err := m.Advance(&state.Draft); err != nil {
		respondAdvanceError(c, err)
		return
	}
	state.Markers = m.Markers()

	if !h.saveState(c, state) {
		return
	}
	c.JSON(http.StatusOK, renderState(m, priorAssets, state.Draft))
}

// Identity godoc
// @Summary     Submit the identity step
// @Description Records the asset's name, brand, product, airing countries, and point of contact, plus the creative brief as either an uploaded file or a URL (never both).
// @Tags        wizard
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       name formData string true "Asset name"
// @Param       brand formData string true "Brand"
// @Param       product formData string true "Product"
// @Param       countries_airing formData string true "Countries the creative will air in (repeatable)"
// @Param       point_of_contact formData string true "Point of contact email"
// @Param       creative_brief formData file false "Creative brief file"
// @Param       creative_brief_url formData string false "Creative brief URL, exclusive with the file"
// @Success     200 {object} WizardState
// @Failure     400 {object} ValidationResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /wizard/steps/identity [post]
func (h *WizardHandler) Identity(c *gin.Context) {
	var req models.IdentityStepRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid form", Message: err.Error()})
		return
	}

	state, ok := h.loadState(c)
	if !ok {
		return
	}
	m, priorAssets, err := h.machineFor(c, state)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if wrongStep(c, wizard.StepIdentity, m) {
		return
	}

	file, _ := c.FormFile("creative_brief")
	briefURL, err := services.ResolveSource(file != nil, req.CreativeBriefURL)
	if err != nil && !errors.Is(err, services.ErrMissingSource) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid creative brief source", Message: err.Error()})
		return
	}

	state.Draft.Name = strings.TrimSpace(req.Name)
	state.Draft.Brand = strings.TrimSpace(req.Brand)
	state.Draft.Product = strings.TrimSpace(req.Product)
	state.Draft.CountriesAiring = models.NormalizeCountries(req.CountriesAiring)
	state.Draft.PointOfContact = strings.TrimSpace(req.PointOfContact)

	switch {
	case file != nil:
		stored, err := h.uploadBrief(c, file)
		if err != nil {
			respondStoreError(c, err)
			return
		}
		state.Draft.CreativeBriefFilename = stored
	case briefURL != "":
		state.Draft.CreativeBriefFilename = briefURL
	}

	if err := m.Advance(&state.Draft); err != nil {
		// The draft keeps what was entered even when validation fails.
		h.saveState(c, state)
		respondAdvanceError(c, err)
		return
	}
	state.Markers = m.Markers()

	if !h.saveState(c, state) {
		return
	}
	c.JSON(http.StatusOK, renderState(m, priorAssets, state.Draft))
}

func (h *WizardHandler) uploadBrief(c *gin.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening creative brief: %w", err)
	}
	defer src.Close()
	return h.submissions.UploadCreativeBrief(c.Request.Context(), file.Filename, src)
}

// checklist handles the three free-text checklist steps, which differ
// only in which step they confirm and which note slots they fill.
func (h *WizardHandler) checklist(c *gin.Context, step wizard.Step, apply func(*models.AssetDraft, []string)) {
	var req models.ChecklistStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	state, ok := h.loadState(c)
	if !ok {
		return
	}
	m, priorAssets, err := h.machineFor(c, state)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if wrongStep(c, step, m) {
		return
	}

	apply(&state.Draft, req.Notes)

	if err := m.Advance(&state.Draft); err != nil {
		respondAdvanceError(c, err)
		return
	}
	state.Markers = m.Markers()

	if !h.saveState(c, state) {
		return
	}
	c.JSON(http.StatusOK, renderState(m, priorAssets, state.Draft))
}

// Marketing godoc
// @Summary     Submit the marketing brief checklist
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ChecklistStepRequest true "Checklist answers in prompt order"
// @Success     200 {object} WizardState
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /wizard/steps/marketing [post]
func (h *WizardHandler) Marketing(c *gin.Context) {
	h.checklist(c, wizard.StepMarketing, func(d *models.AssetDraft, notes []string) {
		copyNotes(d.MarketingNotes[:], notes)
	})
}

// Agency godoc
// @Summary     Submit the agency creative brief checklist
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ChecklistStepRequest true "Checklist answers in prompt order"
// @Success     200 {object} WizardState
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /wizard/steps/agency [post]
func (h *WizardHandler) Agency(c *gin.Context) {
	h.checklist(c, wizard.StepAgency, func(d *models.AssetDraft, notes []string) {
		copyNotes(d.AgencyNotes[:], notes)
	})
}

// Review godoc
// @Summary     Submit the creative review checklist
// @Tags        wizard
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.ChecklistStepRequest true "Checklist answers in prompt order"
// @Success     200 {object} WizardState
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /wizard/steps/review [post]
func (h *WizardHandler) Review(c *gin.Context) {
	h.checklist(c, wizard.StepReview, func(d *models.AssetDraft, notes []string) {
		copyNotes(d.ReviewNotes[:], notes)
	})
}

func copyNotes(dst []string, src []string) {
	for i := range dst {
		if i < len(src) {
			dst[i] = src[i]
		}
	}
}

// Upload godoc
// @Summary     Submit the final upload step
// @Description Uploads the asset file(s) or records an external URL (never both), then appends the completed draft to the asset tracker as a new "Uploaded" row.
// @Tags        wizard
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       content_type formData string true "Content type" Enums(Script, Storyboard, Animatic, Rough Cut, Final Cut, Video)
// @Param       version formData int false "Version, defaults to the draft's current version"
// @Param       notes formData string false "Free-text notes"
// @Param       assets formData file false "Asset files (repeatable)"
// @Param       asset_url formData string false "Asset URL, exclusive with files"
// @Success     200 {object} WizardState
// @Failure     400 {object} ValidationResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /wizard/steps/upload [post]
func (h *WizardHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to parse multipart form", Message: err.Error()})
		return
	}

	var req models.UploadStepRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid form", Message: err.Error()})
		return
	}

	state, ok := h.loadState(c)
	if !ok {
		return
	}
	m, priorAssets, err := h.machineFor(c, state)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if wrongStep(c, wizard.StepUpload, m) {
		return
	}

	files := c.Request.MultipartForm.File["assets"]
	assetURL, err := services.ResolveSource(len(files) > 0, req.AssetURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid asset source", Message: err.Error()})
		return
	}

	state.Draft.ContentType = models.ContentType(req.ContentType)
	if req.Version >= 1 {
		state.Draft.Version = req.Version
	}
	state.Draft.Notes = req.Notes

	if len(files) > 0 {
		joined, err := h.uploadAssets(c, files)
		if err != nil {
			h.saveState(c, state)
			respondStoreError(c, err)
			return
		}
		state.Draft.AssetFilename = joined
		state.Draft.FileUploaded = true
	} else {
		state.Draft.AssetFilename = assetURL
		state.Draft.FileUploaded = false
	}

	if err := m.Advance(&state.Draft); err != nil {
		h.saveState(c, state)
		respondAdvanceError(c, err)
		return
	}

	if _, err := h.submissions.Submit(c.Request.Context(), middleware.Username(c), &state.Draft); err != nil {
		// The append never happened; keep the draft at the upload step.
		h.saveState(c, state)
		respondStoreError(c, err)
		return
	}
	h.assets.Invalidate()

	state.Markers = m.Markers()
	if !h.saveState(c, state) {
		return
	}
	c.JSON(http.StatusOK, renderState(m, priorAssets, state.Draft))
}

func (h *WizardHandler) uploadAssets(c *gin.Context, files []*multipart.FileHeader) (string, error) {
	uploads := make([]services.UploadFile, 0, len(files))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, header := range files {
		src, err := header.Open()
		if err != nil {
			return "", fmt.Errorf("opening asset %q: %w", header.Filename, err)
		}
		opened = append(opened, src)
		uploads = append(uploads, services.UploadFile{Filename: header.Filename, Body: src})
	}
	return h.submissions.UploadAssets(c.Request.Context(), uploads)
}

// Back godoc
// @Summary     Step backwards
// @Description Returns to the previous wizard step without discarding anything already entered.
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Success     200 {object} WizardState
// @Failure     401 {object} models.ErrorResponse
// @Router      /wizard/back [post]
func (h *WizardHandler) Back(c *gin.Context) {
	state, ok := h.loadState(c)
	if !ok {
		return
	}
	m, priorAssets, err := h.machineFor(c, state)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	m.Back()
	state.Markers = m.Markers()

	if !h.saveState(c, state) {
		return
	}
	c.JSON(http.StatusOK, renderState(m, priorAssets, state.Draft))
}

// Reset godoc
// @Summary     Discard the in-progress submission
// @Description Clears the draft and every completion marker, returning the user to the entry step.
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Success     200 {object} WizardState
// @Failure     401 {object} models.ErrorResponse
// @Router      /wizard/reset [post]
func (h *WizardHandler) Reset(c *gin.Context) {
	if err := h.sessions.Reset(c.Request.Context(), middleware.Username(c)); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to reset session",
			Message: err.Error(),
		})
		return
	}

	state := session.NewState()
	m, priorAssets, err := h.machineFor(c, state)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderState(m, priorAssets, state.Draft))
}

// Catalog godoc
// @Summary     Selectable field values
// @Description Lists the content types and countries the wizard offers.
// @Tags        wizard
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.CatalogResponse
// @Router      /catalog [get]
func (h *WizardHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, models.CatalogResponse{
		ContentTypes: models.ContentTypes(),
		Countries:    models.Countries(),
	})
}

func respondAdvanceError(c *gin.Context, err error) {
	var validation *wizard.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, ValidationResponse{
			Error:   "missing required fields",
			Step:    validation.Step.String(),
			Missing: validation.Missing,
		})
		return
	}
	if errors.Is(err, wizard.ErrTerminalStep) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "submission already complete",
			Message: "Reset the flow to submit another asset.",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
}

package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/services"
	"github.com/moftahak/studio-service/internal/utils"
)

type OverlayController struct {
	engine *services.OverlayService
}

func NewOverlayController(engine *services.OverlayService) *OverlayController {
	return &OverlayController{engine: engine}
}

// -----------------------------------------------------------------------------
// GET /api/v1/studies/{studyID}/slides/{slideID}/overlays
// -----------------------------------------------------------------------------
func (c *OverlayController) ListOverlays(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	list, ok := c.engine.ListForSlide(id, pathVar(r, "slideID"))
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Slide not found", nil, utils.ErrSlideNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OverlayListResponse{Overlays: list})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/overlays
// -----------------------------------------------------------------------------
func (c *OverlayController) AddOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.AddOverlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Overlay kind required (src required for images)", nil, err)
		return
	}
	slideIDVar := pathVar(r, "slideID")
	pos := models.Point{X: req.X, Y: req.Y}

	var item models.OverlayItem
	var added bool
	if req.Kind == string(models.OverlayKindText) {
		item, added = c.engine.AddText(id, slideIDVar, pos)
	} else {
		item, added = c.engine.AddImage(id, slideIDVar, req.Src, req.Width, req.Height, pos)
	}
	if !added {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Slide not found", nil, utils.ErrSlideNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.OverlayResponse{Overlay: item})
}

// -----------------------------------------------------------------------------
// PUT /api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}
// -----------------------------------------------------------------------------
func (c *OverlayController) UpdateOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	// the body is one kind-tagged overlay record; reuse the list decoder
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	var list models.OverlayList
	if err := list.UnmarshalJSON([]byte("[" + string(body) + "]")); err != nil || len(list) != 1 {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Malformed overlay record", nil, err)
		return
	}
	item := list[0]
	services.SetOverlayID(item, pathVar(r, "overlayID"))
	if !c.engine.Update(id, pathVar(r, "slideID"), item) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Overlay not found", nil, utils.ErrOverlayNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OverlayResponse{Overlay: item})
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}
// -----------------------------------------------------------------------------
func (c *OverlayController) DeleteOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	if !c.engine.Delete(id, pathVar(r, "slideID"), pathVar(r, "overlayID")) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Overlay not found", nil, utils.ErrOverlayNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/drag
// -----------------------------------------------------------------------------
// Single-shot drag: begin at the overlay's stored position, move to the
// supplied pointer, end. The client sends screen-space coordinates plus
// its current zoom scale.
func (c *OverlayController) DragOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.OverlayDragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Zoom must be positive", nil, err)
		return
	}
	zoom := req.Zoom
	if zoom == 0 {
		zoom = 1
	}
	slideIDVar := pathVar(r, "slideID")
	overlayIDVar := pathVar(r, "overlayID")
	item, moved := c.engine.MoveTo(id, slideIDVar, overlayIDVar, models.Point{X: req.PointerX, Y: req.PointerY}, zoom)
	if !moved {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Overlay not found", nil, utils.ErrOverlayNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OverlayResponse{Overlay: item})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/resize
// -----------------------------------------------------------------------------
func (c *OverlayController) ResizeOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.OverlayResizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Zoom must be positive", nil, err)
		return
	}
	zoom := req.Zoom
	if zoom == 0 {
		zoom = 1
	}
	if !c.engine.BeginResize(id, pathVar(r, "slideID"), pathVar(r, "overlayID"), zoom) {
		respondRejected(w, "Overlay is not a resizable image")
		return
	}
	item, resized := c.engine.ResizeTo(req.Delta)
	c.engine.EndResize()
	if !resized {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Overlay not found", nil, utils.ErrOverlayNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OverlayResponse{Overlay: item})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/rotate
// -----------------------------------------------------------------------------
func (c *OverlayController) RotateOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	if _, ok := c.engine.Rotate(id, pathVar(r, "slideID"), pathVar(r, "overlayID")); !ok {
		respondRejected(w, "Overlay is not a rotatable image")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/font-size
// -----------------------------------------------------------------------------
func (c *OverlayController) StepFontSize(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.StepFontSizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Delta required", nil, err)
		return
	}
	size, ok := c.engine.StepFontSize(id, pathVar(r, "slideID"), pathVar(r, "overlayID"), req.Delta)
	if !ok {
		respondRejected(w, "Overlay is not a text element")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]float64{"font_size": size})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/overlays/{overlayID}/rename
// -----------------------------------------------------------------------------
func (c *OverlayController) RenameOverlay(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.RenameOverlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Content must not be empty", nil, err)
		return
	}
	if _, ok := c.engine.BeginRename(id, pathVar(r, "slideID"), pathVar(r, "overlayID")); !ok {
		respondRejected(w, "Overlay is not a text element")
		return
	}
	if !c.engine.CommitRename(req.Content) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Content must not be empty", nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

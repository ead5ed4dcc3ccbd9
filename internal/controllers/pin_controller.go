package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/services"
	"github.com/moftahak/studio-service/internal/utils"
)

// PinController exposes the map-slide pin operations: the subject
// apartment and its comparables, derived price statistics, and the
// nearby-landmark selection.
type PinController struct {
	svc *services.PinService
}

func NewPinController(svc *services.PinService) *PinController {
	return &PinController{svc: svc}
}

// -----------------------------------------------------------------------------
// GET /api/v1/studies/{studyID}/slides/{slideID}/pins
// -----------------------------------------------------------------------------
func (c *PinController) ListPins(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	pins, found := c.svc.ListPins(id, pathVar(r, "slideID"))
	if !found {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Map slide not found", nil, utils.ErrNotAMapSlide)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PinListResponse{Pins: pins})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/pins
// -----------------------------------------------------------------------------
func (c *PinController) AddPin(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.UpsertPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid pin coordinates", nil, err)
		return
	}
	pin := models.Pin{ID: req.ID, Lat: req.Lat, Lng: req.Lng, Apartment: req.Apartment}
	stored, added := c.svc.AddPin(id, pathVar(r, "slideID"), pin)
	if !added {
		respondRejected(w, "A client apartment pin already exists on this slide")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.PinResponse{Pin: stored})
}

// -----------------------------------------------------------------------------
// PUT /api/v1/studies/{studyID}/slides/{slideID}/pins/{pinID}
// -----------------------------------------------------------------------------
func (c *PinController) UpdatePin(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.UpsertPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid pin coordinates", nil, err)
		return
	}
	pin := models.Pin{ID: pathVar(r, "pinID"), Lat: req.Lat, Lng: req.Lng, Apartment: req.Apartment}
	if !c.svc.UpdatePin(id, pathVar(r, "slideID"), pin) {
		respondRejected(w, "Pin not found or a client apartment pin already exists")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.PinResponse{Pin: pin})
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/studies/{studyID}/slides/{slideID}/pins/{pinID}
// -----------------------------------------------------------------------------
func (c *PinController) RemovePin(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	if !c.svc.RemovePin(id, pathVar(r, "slideID"), pathVar(r, "pinID")) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Pin not found", nil, utils.ErrPinNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// GET /api/v1/studies/{studyID}/slides/{slideID}/pins/stats
// -----------------------------------------------------------------------------
func (c *PinController) Stats(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	stats, found := c.svc.Stats(id, pathVar(r, "slideID"))
	if !found {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Map slide not found", nil, utils.ErrNotAMapSlide)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ComparableStatsResponse{Stats: stats})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/pins/{pinID}/landmarks
// -----------------------------------------------------------------------------
func (c *PinController) NearestLandmarks(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.NearestLandmarksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid landmark list", nil, err)
		return
	}
	pin, found := c.svc.GetPin(id, pathVar(r, "slideID"), pathVar(r, "pinID"))
	if !found {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Pin not found", nil, utils.ErrPinNotFound)
		return
	}
	matches := c.svc.NearestLandmarks(pin, req.Landmarks, req.K)
	utils.RespondWithJSON(w, http.StatusOK, dtos.NearestLandmarksResponse{Landmarks: matches})
}

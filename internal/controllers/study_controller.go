package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/services"
	"github.com/moftahak/studio-service/internal/utils"
)

type StudyController struct {
	svc *services.StudyService
}

func NewStudyController(svc *services.StudyService) *StudyController {
	return &StudyController{svc: svc}
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies
// -----------------------------------------------------------------------------
func (c *StudyController) CreateStudy(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateStudyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Study name required", nil, err)
		return
	}
	st := c.svc.CreateStudy(req.Name)
	utils.RespondWithJSON(w, http.StatusCreated, dtos.StudyResponse{Study: st})
}

// -----------------------------------------------------------------------------
// GET /api/v1/studies
// -----------------------------------------------------------------------------
func (c *StudyController) ListStudies(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.StudyListResponse{StudyIDs: c.svc.ListStudyIDs()})
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/studies/{studyID}
// -----------------------------------------------------------------------------
func (c *StudyController) DeleteStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	if !c.svc.DeleteStudy(id) {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Study not found", nil, utils.ErrStudyNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// GET /api/v1/studies/{studyID}
// -----------------------------------------------------------------------------
func (c *StudyController) GetStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	st, ok := c.svc.GetStudy(id)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Study not found", nil, utils.ErrStudyNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.StudyResponse{Study: st})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides
// -----------------------------------------------------------------------------
func (c *StudyController) AddSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.AddSlideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Slide type required", nil, err)
		return
	}
	slideType := models.SlideType(req.Type)
	if !slideType.Valid() {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Unknown slide type", nil, utils.ErrUnknownSlideType)
		return
	}
	slide, ok := c.svc.AddSlide(id, slideType, req.AfterIndex)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Study not found", nil, utils.ErrStudyNotFound)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.SlideResponse{Slide: slide})
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/studies/{studyID}/slides/{slideID}
// -----------------------------------------------------------------------------
func (c *StudyController) RemoveSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	if !c.svc.RemoveSlide(id, pathVar(r, "slideID")) {
		respondRejected(w, "Slide is locked or does not exist")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/duplicate
// -----------------------------------------------------------------------------
func (c *StudyController) DuplicateSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	slide, ok := c.svc.DuplicateSlide(id, pathVar(r, "slideID"))
	if !ok {
		respondRejected(w, "Slide is locked or does not exist")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.SlideResponse{Slide: slide})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/reorder
// -----------------------------------------------------------------------------
func (c *StudyController) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.ReorderSlidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid reorder indices", nil, err)
		return
	}
	if !c.svc.ReorderSlides(id, req.From, req.To) {
		respondRejected(w, "Slide is locked or indices out of range")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// PATCH /api/v1/studies/{studyID}/slides/{slideID}
// -----------------------------------------------------------------------------
func (c *StudyController) UpdateSlideData(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateSlideDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Patch body required", nil, err)
		return
	}
	var err error
	if req.Deep {
		err = c.svc.DeepPatchSlideData(id, pathVar(r, "slideID"), req.Patch)
	} else {
		err = c.svc.UpdateSlideData(id, pathVar(r, "slideID"), req.Patch)
	}
	switch {
	case err == nil:
		utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
	case errors.Is(err, utils.ErrSlideNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Slide not found", nil, err)
	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Patch does not fit the slide payload", nil, err)
	}
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/rooms/regenerate
// -----------------------------------------------------------------------------
func (c *StudyController) RegenerateRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.RegenerateRoomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Room counts must be non-negative", nil, err)
		return
	}
	counts := models.RoomCounts{
		Kitchens:    req.Kitchens,
		Bedrooms:    req.Bedrooms,
		LivingRooms: req.LivingRooms,
		Bathrooms:   req.Bathrooms,
	}
	inserted, ok := c.svc.RegenerateRoomSlides(id, counts)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Study has no room-setup slide", nil)
		return
	}
	st, _ := c.svc.GetStudy(id)
	utils.RespondWithJSON(w, http.StatusOK, dtos.RegenerateRoomsResponse{Inserted: inserted, Study: st})
}

// -----------------------------------------------------------------------------
// PUT /api/v1/studies/{studyID}/active-slide
// -----------------------------------------------------------------------------
func (c *StudyController) SetActiveSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if !c.svc.SetActiveSlide(id, req.Index) {
		respondRejected(w, "Index out of range")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

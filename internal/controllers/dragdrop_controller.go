package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/services"
	"github.com/moftahak/studio-service/internal/utils"
)

// DragDropController exposes the per-study drag session: drop-target
// registration plus the pointer event stream that drives the gesture
// state machine.
type DragDropController struct {
	svc *services.DragDropService
}

func NewDragDropController(svc *services.DragDropService) *DragDropController {
	return &DragDropController{svc: svc}
}

func dragState(coord *services.DragDropCoordinator) dtos.DragStateResponse {
	resp := dtos.DragStateResponse{Phase: int(coord.Phase())}
	if target, rejecting, ok := coord.CurrentTarget(); ok {
		resp.TargetID = target
		resp.Rejecting = rejecting
	}
	return resp
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/drag/targets
// -----------------------------------------------------------------------------
func (c *DragDropController) RegisterTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.RegisterTargetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid drop target", nil, err)
		return
	}
	rect := models.Rect{X: req.X, Y: req.Y, W: req.W, H: req.H}
	c.svc.RegisterRoomTarget(id, req.SlideID, rect, req.Accepts)
	utils.RespondWithJSON(w, http.StatusCreated, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/studies/{studyID}/drag/targets/{slideID}
// -----------------------------------------------------------------------------
func (c *DragDropController) UnregisterTarget(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	c.svc.UnregisterTarget(id, pathVar(r, "slideID"))
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/drag/down
// -----------------------------------------------------------------------------
func (c *DragDropController) PointerDown(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.PointerDownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Invalid pointer event", nil, err)
		return
	}
	coord := c.svc.Coordinator(id)
	coord.PointerDown(
		services.PointerKind(req.Kind),
		req.Payload,
		models.Point{X: req.PointerX, Y: req.PointerY},
		models.Rect{X: req.ItemX, Y: req.ItemY, W: req.ItemW, H: req.ItemH},
	)
	utils.RespondWithJSON(w, http.StatusOK, dragState(coord))
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/drag/move
// -----------------------------------------------------------------------------
func (c *DragDropController) PointerMove(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.PointerMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	coord := c.svc.Coordinator(id)
	coord.PointerMove(models.Point{X: req.PointerX, Y: req.PointerY})
	utils.RespondWithJSON(w, http.StatusOK, dragState(coord))
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/drag/up
// -----------------------------------------------------------------------------
func (c *DragDropController) PointerUp(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	coord := c.svc.Coordinator(id)
	placed := coord.PointerUp()
	utils.RespondWithJSON(w, http.StatusOK, dtos.DropResponse{Placed: placed})
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/drag/cancel
// -----------------------------------------------------------------------------
func (c *DragDropController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	c.svc.Coordinator(id).Cancel()
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

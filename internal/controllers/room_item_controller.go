package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/services"
	"github.com/moftahak/studio-service/internal/utils"
)

// RoomItemController exposes the room-item aggregation operations of a
// room slide: placement, price/quantity edits, removal.
type RoomItemController struct {
	svc     *services.StudyService
	library *services.LibraryCacheService
}

func NewRoomItemController(svc *services.StudyService, library *services.LibraryCacheService) *RoomItemController {
	return &RoomItemController{svc: svc, library: library}
}

// -----------------------------------------------------------------------------
// POST /api/v1/studies/{studyID}/slides/{slideID}/items
// -----------------------------------------------------------------------------
func (c *RoomItemController) PlaceItem(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.PlaceItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Library item id required", nil, err)
		return
	}
	def, found := c.library.FindItem(req.LibraryItemID)
	if !found {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Unknown library item", nil, utils.ErrLibraryItemNotFound)
		return
	}
	slideID := pathVar(r, "slideID")
	item, placed := c.svc.PlaceItem(id, slideID, def)
	if !placed {
		respondRejected(w, "Target slide is not a room")
		return
	}
	st, _ := c.svc.GetStudy(id)
	utils.RespondWithJSON(w, http.StatusCreated, dtos.RoomItemResponse{Item: item, TotalCost: st.TotalCost})
}

// -----------------------------------------------------------------------------
// PATCH /api/v1/studies/{studyID}/slides/{slideID}/items/{itemID}
// -----------------------------------------------------------------------------
func (c *RoomItemController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateRoomItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Price must be >= 0 and quantity >= 1", nil, err)
		return
	}
	if req.Price == nil && req.Quantity == nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Nothing to update", nil)
		return
	}
	slideID := pathVar(r, "slideID")
	itemID := pathVar(r, "itemID")
	if req.Price != nil && !c.svc.UpdateItemPrice(id, slideID, itemID, *req.Price) {
		respondRejected(w, "Item not found or price rejected")
		return
	}
	if req.Quantity != nil && !c.svc.UpdateItemQuantity(id, slideID, itemID, *req.Quantity) {
		respondRejected(w, "Item not found or quantity rejected")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/studies/{studyID}/slides/{slideID}/items/{itemID}
// -----------------------------------------------------------------------------
func (c *RoomItemController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := studyID(w, r)
	if !ok {
		return
	}
	if !c.svc.RemoveItem(id, pathVar(r, "slideID"), pathVar(r, "itemID")) {
		respondRejected(w, "Item not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.OperationResponse{OK: true})
}

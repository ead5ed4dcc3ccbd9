package controllers

import (
	"net/http"

	"github.com/moftahak/studio-service/internal/dtos"
	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/services"
	"github.com/moftahak/studio-service/internal/utils"
)

// LibraryController serves the per-room content library that feeds the
// drag sources.
type LibraryController struct {
	svc *services.LibraryCacheService
}

func NewLibraryController(svc *services.LibraryCacheService) *LibraryController {
	return &LibraryController{svc: svc}
}

// -----------------------------------------------------------------------------
// GET /api/v1/library/{roomType}
// -----------------------------------------------------------------------------
func (c *LibraryController) ListItems(w http.ResponseWriter, r *http.Request) {
	roomType := models.SlideType(pathVar(r, "roomType"))
	if !roomType.IsRoom() {
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, "Unknown room type", nil)
		return
	}
	items := c.svc.ListItems(roomType)
	utils.RespondWithJSON(w, http.StatusOK, dtos.LibraryListResponse{RoomType: roomType, Items: items})
}

package dtos

import (
	"github.com/moftahak/studio-service/internal/models"
)

type LibraryListResponse struct {
	RoomType models.SlideType     `json:"room_type"`
	Items    []models.LibraryItem `json:"items"`
}

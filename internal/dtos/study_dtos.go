package dtos

import (
	"github.com/google/uuid"

	"github.com/moftahak/studio-service/internal/models"
)

type CreateStudyRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type StudyResponse struct {
	Study *models.Study `json:"study"`
}

type StudyListResponse struct {
	StudyIDs []uuid.UUID `json:"study_ids"`
}

type AddSlideRequest struct {
	Type       string `json:"type" validate:"required"`
	AfterIndex *int   `json:"after_index,omitempty" validate:"omitempty,gte=0"`
}

type SlideResponse struct {
	Slide models.Slide `json:"slide"`
}

type ReorderSlidesRequest struct {
	From int `json:"from" validate:"gte=0"`
	To   int `json:"to" validate:"gte=0"`
}

// UpdateSlideDataRequest carries a shallow data patch: each top-level
// key replaces the stored key wholesale. Deep=true switches to the
// recursive merge helper.
type UpdateSlideDataRequest struct {
	Patch map[string]any `json:"patch" validate:"required"`
	Deep  bool           `json:"deep,omitempty"`
}

type RegenerateRoomsRequest struct {
	Kitchens    int `json:"kitchens" validate:"gte=0,lte=20"`
	Bedrooms    int `json:"bedrooms" validate:"gte=0,lte=20"`
	LivingRooms int `json:"living_rooms" validate:"gte=0,lte=20"`
	Bathrooms   int `json:"bathrooms" validate:"gte=0,lte=20"`
}

type RegenerateRoomsResponse struct {
	Inserted int           `json:"inserted"`
	Study    *models.Study `json:"study"`
}

type PlaceItemRequest struct {
	LibraryItemID string `json:"library_item_id" validate:"required"`
}

type RoomItemResponse struct {
	Item      models.RoomItem `json:"item"`
	TotalCost float64         `json:"total_cost"`
}

type UpdateRoomItemRequest struct {
	Price    *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity,omitempty" validate:"omitempty,gte=1"`
}

type OperationResponse struct {
	OK bool `json:"ok"`
}

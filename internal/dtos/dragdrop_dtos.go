package dtos

import (
	"github.com/moftahak/studio-service/internal/services"
)

type RegisterTargetRequest struct {
	SlideID string   `json:"slide_id" validate:"required"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	W       float64  `json:"w" validate:"gt=0"`
	H       float64  `json:"h" validate:"gt=0"`
	Accepts []string `json:"accepts,omitempty"`
}

type PointerDownRequest struct {
	Kind     string               `json:"kind" validate:"required,oneof=mouse touch"`
	Payload  services.DragPayload `json:"payload" validate:"required"`
	PointerX float64              `json:"pointer_x"`
	PointerY float64              `json:"pointer_y"`
	ItemX    float64              `json:"item_x"`
	ItemY    float64              `json:"item_y"`
	ItemW    float64              `json:"item_w" validate:"gt=0"`
	ItemH    float64              `json:"item_h" validate:"gt=0"`
}

type PointerMoveRequest struct {
	PointerX float64 `json:"pointer_x"`
	PointerY float64 `json:"pointer_y"`
}

type DragStateResponse struct {
	Phase     int    `json:"phase"`
	TargetID  string `json:"target_id,omitempty"`
	Rejecting bool   `json:"rejecting,omitempty"`
}

type DropResponse struct {
	Placed bool `json:"placed"`
}

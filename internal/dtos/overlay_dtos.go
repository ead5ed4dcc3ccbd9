package dtos

import (
	"github.com/moftahak/studio-service/internal/models"
)

type AddOverlayRequest struct {
	Kind   string  `json:"kind" validate:"required,oneof=text image"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Src    string  `json:"src,omitempty" validate:"required_if=Kind image"`
	Width  float64 `json:"width,omitempty" validate:"omitempty,gt=0"`
	Height float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
}

type OverlayResponse struct {
	Overlay models.OverlayItem `json:"overlay"`
}

type OverlayListResponse struct {
	Overlays models.OverlayList `json:"overlays"`
}

type OverlayDragRequest struct {
	PointerX float64 `json:"pointer_x"`
	PointerY float64 `json:"pointer_y"`
	Zoom     float64 `json:"zoom" validate:"omitempty,gt=0"`
}

type OverlayResizeRequest struct {
	Delta float64 `json:"delta"`
	Zoom  float64 `json:"zoom" validate:"omitempty,gt=0"`
}

type StepFontSizeRequest struct {
	Delta float64 `json:"delta" validate:"required"`
}

type RenameOverlayRequest struct {
	Content string `json:"content" validate:"required"`
}

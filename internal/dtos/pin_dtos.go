package dtos

import (
	"github.com/moftahak/studio-service/internal/models"
)

type UpsertPinRequest struct {
	ID        string           `json:"id,omitempty"`
	Lat       float64          `json:"lat" validate:"gte=-90,lte=90"`
	Lng       float64          `json:"lng" validate:"gte=-180,lte=180"`
	Apartment models.Apartment `json:"apartment"`
}

type PinResponse struct {
	Pin models.Pin `json:"pin"`
}

type PinListResponse struct {
	Pins []models.Pin `json:"pins"`
}

type ComparableStatsResponse struct {
	Stats models.ComparableStats `json:"stats"`
}

type NearestLandmarksRequest struct {
	Landmarks []models.Landmark `json:"landmarks" validate:"required,dive"`
	K         int               `json:"k,omitempty" validate:"omitempty,gte=1,lte=10"`
}

type NearestLandmarksResponse struct {
	Landmarks []models.LandmarkMatch `json:"landmarks"`
}

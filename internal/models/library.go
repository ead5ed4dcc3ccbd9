package models

// LibraryItem is a placeable fixture definition from the content
// library. DefaultPrice seeds the RoomItem price on placement.
type LibraryItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Icon         string  `json:"icon"`
	DefaultPrice float64 `json:"default_price"`
	Category     string  `json:"category"`
}

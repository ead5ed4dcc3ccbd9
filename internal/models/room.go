package models

// RoomItem is a priced, quantified fixture placed inside one room slide.
// It is owned exclusively by that slide's RoomData payload.
type RoomItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// RoomData is the payload of the four room slide kinds. TotalCost is
// derived from Items and recomputed after every mutation; it is never
// ground truth on its own.
type RoomData struct {
	Items     []RoomItem `json:"items"`
	TotalCost float64    `json:"total_cost"`
}

func (d *RoomData) isSlideData() {}

func (d *RoomData) Clone() SlideData {
	c := &RoomData{TotalCost: d.TotalCost}
	if d.Items != nil {
		c.Items = make([]RoomItem, len(d.Items))
		copy(c.Items, d.Items)
	}
	return c
}

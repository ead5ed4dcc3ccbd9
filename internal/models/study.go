package models

import (
	"time"

	"github.com/google/uuid"
)

// Study is the full document: the ordered slide collection, the
// active-slide cursor, and the per-slide overlay map. This in-memory
// shape is also the unit handed to the persistence layer.
type Study struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Slides      []Slide                `json:"slides"`
	ActiveIndex int                    `json:"active_index"`
	Overlays    map[string]OverlayList `json:"overlays"`
	TotalCost   float64                `json:"total_cost"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func (st *Study) Clone() *Study {
	c := &Study{
		ID:          st.ID,
		Name:        st.Name,
		ActiveIndex: st.ActiveIndex,
		TotalCost:   st.TotalCost,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   st.UpdatedAt,
	}
	c.Slides = make([]Slide, len(st.Slides))
	for i, s := range st.Slides {
		c.Slides[i] = s.Clone()
	}
	if st.Overlays != nil {
		c.Overlays = make(map[string]OverlayList, len(st.Overlays))
		for id, list := range st.Overlays {
			c.Overlays[id] = list.Clone()
		}
	}
	return c
}

package services

import (
	"sort"

	"github.com/google/uuid"

	"github.com/moftahak/studio-service/internal/models"
	"github.com/moftahak/studio-service/internal/utils"
)

const (
	// landmarks farther than this are never offered
	landmarkCutoffKm = 30.0

	DefaultLandmarkCount = 3
)

// PinService manages the geo-anchored pins nested in a map slide's
// payload: the subject property plus comparable listings, with derived
// statistics.
type PinService struct {
	store *StudyService
}

func NewPinService(store *StudyService) *PinService {
	return &PinService{store: store}
}

// AddPin appends a pin. A second client-apartment pin violates the
// single-subject invariant and is refused.
func (s *PinService) AddPin(studyID uuid.UUID, slideID string, pin models.Pin) (models.Pin, bool) {
	stored := pin.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	ok := s.store.WithMapData(studyID, slideID, func(m *models.MapData) bool {
		if stored.Apartment.IsClientApartment && clientPinIndex(m.Pins) >= 0 {
			return false
		}
		m.Pins = append(m.Pins, stored)
		sortPins(m.Pins)
		return true
	})
	return stored, ok
}

// UpdatePin fully replaces the pin with the same id, still holding the
// at-most-one-client invariant.
func (s *PinService) UpdatePin(studyID uuid.UUID, slideID string, pin models.Pin) bool {
	return s.store.WithMapData(studyID, slideID, func(m *models.MapData) bool {
		idx := -1
		for i := range m.Pins {
			if m.Pins[i].ID == pin.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		if pin.Apartment.IsClientApartment {
			if ci := clientPinIndex(m.Pins); ci >= 0 && ci != idx {
				return false
			}
		}
		m.Pins[idx] = pin.Clone()
		sortPins(m.Pins)
		return true
	})
}

func (s *PinService) RemovePin(studyID uuid.UUID, slideID, pinID string) bool {
	return s.store.WithMapData(studyID, slideID, func(m *models.MapData) bool {
		for i := range m.Pins {
			if m.Pins[i].ID == pinID {
				m.Pins = append(m.Pins[:i], m.Pins[i+1:]...)
				return true
			}
		}
		return false
	})
}

func (s *PinService) GetPin(studyID uuid.UUID, slideID, pinID string) (models.Pin, bool) {
	m, ok := s.store.ReadMapData(studyID, slideID)
	if !ok {
		return models.Pin{}, false
	}
	for _, p := range m.Pins {
		if p.ID == pinID {
			return p, true
		}
	}
	return models.Pin{}, false
}

func (s *PinService) ListPins(studyID uuid.UUID, slideID string) ([]models.Pin, bool) {
	m, ok := s.store.ReadMapData(studyID, slideID)
	if !ok {
		return nil, false
	}
	return m.Pins, true
}

// Stats aggregates prices over the comparable pins; the client
// apartment never participates, even when it is the only other pin.
func (s *PinService) Stats(studyID uuid.UUID, slideID string) (models.ComparableStats, bool) {
	m, ok := s.store.ReadMapData(studyID, slideID)
	if !ok {
		return models.ComparableStats{}, false
	}
	stats := models.ComparableStats{}
	sum := 0.0
	for _, p := range m.Pins {
		if p.Apartment.IsClientApartment {
			continue
		}
		price := p.Apartment.Price
		if stats.Count == 0 || price < stats.MinPrice {
			stats.MinPrice = price
		}
		if stats.Count == 0 || price > stats.MaxPrice {
			stats.MaxPrice = price
		}
		sum += price
		stats.Count++
	}
	if stats.Count > 0 {
		stats.AveragePrice = sum / float64(stats.Count)
	}
	return stats, true
}

// clientPinIndex returns the index of the client-apartment pin, -1 when
// absent.
func clientPinIndex(pins []models.Pin) int {
	for i := range pins {
		if pins[i].Apartment.IsClientApartment {
			return i
		}
	}
	return -1
}

// sortPins keeps the client apartment first; comparables follow ordered
// by distance from it (insertion order when there is no client pin).
func sortPins(pins []models.Pin) {
	ci := clientPinIndex(pins)
	if ci < 0 {
		return
	}
	client := pins[ci]
	sort.SliceStable(pins, func(i, j int) bool {
		if pins[i].Apartment.IsClientApartment != pins[j].Apartment.IsClientApartment {
			return pins[i].Apartment.IsClientApartment
		}
		di := utils.DistanceKm(client.Lat, client.Lng, pins[i].Lat, pins[i].Lng)
		dj := utils.DistanceKm(client.Lat, client.Lng, pins[j].Lat, pins[j].Lng)
		return di < dj
	})
}

// NearestLandmarks picks up to k landmarks around the pin, biased for
// category diversity: the overall nearest goes first, then the nearest
// landmark of each category not yet represented, and the chosen set is
// re-sorted by distance ascending.
func (s *PinService) NearestLandmarks(pin models.Pin, landmarks []models.Landmark, k int) []models.LandmarkMatch {
	if k <= 0 {
		k = DefaultLandmarkCount
	}
	candidates := make([]models.LandmarkMatch, 0, len(landmarks))
	for _, lm := range landmarks {
		d := utils.DistanceKm(pin.Lat, pin.Lng, lm.Lat, lm.Lng)
		if d > landmarkCutoffKm {
			continue
		}
		candidates = append(candidates, models.LandmarkMatch{Landmark: lm, DistanceKm: d})
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	chosen := make([]models.LandmarkMatch, 0, k)
	used := map[string]bool{}

	// the overall nearest always takes the first slot and is never
	// displaced by the diversity pass below
	first := candidates[0]
	chosen = append(chosen, first)
	used[first.Landmark.Category] = true

	for _, cand := range candidates[1:] {
		if len(chosen) >= k {
			break
		}
		if used[cand.Landmark.Category] {
			continue
		}
		chosen = append(chosen, cand)
		used[cand.Landmark.Category] = true
	}

	sort.Slice(chosen, func(i, j int) bool {
		return chosen[i].DistanceKm < chosen[j].DistanceKm
	})
	return chosen
}

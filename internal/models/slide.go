package models

import (
	"encoding/json"
	"fmt"
)

// SlideType is the closed set of slide kinds a study can contain.
type SlideType string

const (
	SlideTypeCover        SlideType = "cover"
	SlideTypeIntroduction SlideType = "introduction"
	SlideTypeRoomSetup    SlideType = "room-setup"
	SlideTypeKitchen      SlideType = "kitchen"
	SlideTypeBedroom      SlideType = "bedroom"
	SlideTypeLivingRoom   SlideType = "living-room"
	SlideTypeBathroom     SlideType = "bathroom"
	SlideTypeCostSummary  SlideType = "cost-summary"
	SlideTypeAreaStudy    SlideType = "area-study"
	SlideTypeMap          SlideType = "map"
	SlideTypeStatistics   SlideType = "statistics"
	SlideTypeFooter       SlideType = "footer"
)

func (t SlideType) Valid() bool {
	switch t {
	case SlideTypeCover, SlideTypeIntroduction, SlideTypeRoomSetup,
		SlideTypeKitchen, SlideTypeBedroom, SlideTypeLivingRoom, SlideTypeBathroom,
		SlideTypeCostSummary, SlideTypeAreaStudy, SlideTypeMap,
		SlideTypeStatistics, SlideTypeFooter:
		return true
	}
	return false
}

// IsRoom reports whether the type is one of the four room kinds driven
// by the room-count configuration.
func (t SlideType) IsRoom() bool {
	switch t {
	case SlideTypeKitchen, SlideTypeBedroom, SlideTypeLivingRoom, SlideTypeBathroom:
		return true
	}
	return false
}

// RoomCounts is the room-setup configuration that deterministically
// generates the run of room slides.
type RoomCounts struct {
	Bedrooms    int `json:"bedrooms"`
	LivingRooms int `json:"living_rooms"`
	Kitchens    int `json:"kitchens"`
	Bathrooms   int `json:"bathrooms"`
}

func (c RoomCounts) Total() int {
	return c.Kitchens + c.Bedrooms + c.LivingRooms + c.Bathrooms
}

// SlideData is the tagged payload union keyed by the owning slide's
// type. Concrete payloads live in this package; DecodeSlideData is the
// single place a raw payload becomes typed.
type SlideData interface {
	isSlideData()
	Clone() SlideData
}

type CoverData struct {
	ProjectName string `json:"project_name"`
	ClientName  string `json:"client_name"`
	ImageURL    string `json:"image_url"`
	Date        string `json:"date"`
}

func (d *CoverData) isSlideData()     {}
func (d *CoverData) Clone() SlideData { c := *d; return &c }

type IntroductionData struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

func (d *IntroductionData) isSlideData()     {}
func (d *IntroductionData) Clone() SlideData { c := *d; return &c }

type RoomSetupData struct {
	Counts RoomCounts `json:"counts"`
}

func (d *RoomSetupData) isSlideData()     {}
func (d *RoomSetupData) Clone() SlideData { c := *d; return &c }

type CostSummaryData struct {
	Notes    string `json:"notes"`
	Currency string `json:"currency"`
}

func (d *CostSummaryData) isSlideData()     {}
func (d *CostSummaryData) Clone() SlideData { c := *d; return &c }

type AreaStudyData struct {
	Location string  `json:"location"`
	AreaSqm  float64 `json:"area_sqm"`
	Notes    string  `json:"notes"`
}

func (d *AreaStudyData) isSlideData()     {}
func (d *AreaStudyData) Clone() SlideData { c := *d; return &c }

// MapData nests the pin sub-document of a map slide; the pins live and
// die with the slide.
type MapData struct {
	CenterLat float64 `json:"center_lat"`
	CenterLng float64 `json:"center_lng"`
	Zoom      int     `json:"zoom"`
	Pins      []Pin   `json:"pins"`
}

func (d *MapData) isSlideData() {}

func (d *MapData) Clone() SlideData {
	c := &MapData{CenterLat: d.CenterLat, CenterLng: d.CenterLng, Zoom: d.Zoom}
	if d.Pins != nil {
		c.Pins = make([]Pin, len(d.Pins))
		for i, p := range d.Pins {
			c.Pins[i] = p.Clone()
		}
	}
	return c
}

type StatisticsData struct {
	OccupancyRate float64 `json:"occupancy_rate"`
	NightlyRate   float64 `json:"nightly_rate"`
	Notes         string  `json:"notes"`
}

func (d *StatisticsData) isSlideData()     {}
func (d *StatisticsData) Clone() SlideData { c := *d; return &c }

type FooterData struct {
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
}

func (d *FooterData) isSlideData()     {}
func (d *FooterData) Clone() SlideData { c := *d; return &c }

// NewSlideData returns the empty payload for a slide type.
func NewSlideData(t SlideType) (SlideData, error) {
	switch t {
	case SlideTypeCover:
		return &CoverData{}, nil
	case SlideTypeIntroduction:
		return &IntroductionData{}, nil
	case SlideTypeRoomSetup:
		return &RoomSetupData{}, nil
	case SlideTypeKitchen, SlideTypeBedroom, SlideTypeLivingRoom, SlideTypeBathroom:
		return &RoomData{Items: []RoomItem{}}, nil
	case SlideTypeCostSummary:
		return &CostSummaryData{}, nil
	case SlideTypeAreaStudy:
		return &AreaStudyData{}, nil
	case SlideTypeMap:
		return &MapData{Pins: []Pin{}}, nil
	case SlideTypeStatistics:
		return &StatisticsData{}, nil
	case SlideTypeFooter:
		return &FooterData{}, nil
	default:
		return nil, fmt.Errorf("unknown slide type %q", t)
	}
}

// DecodeSlideData decodes a raw payload into the typed form for t.
func DecodeSlideData(t SlideType, raw json.RawMessage) (SlideData, error) {
	data, err := NewSlideData(t)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", t, err)
	}
	return data, nil
}

// Slide is one titled section of the study document. Order is dense and
// zero-based, matching array position after every mutation. Locked
// slides (cover, introduction, footer) can never be removed or
// reordered.
type Slide struct {
	ID       string    `json:"id"`
	Type     SlideType `json:"type"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Data     SlideData `json:"data"`
	IsLocked bool      `json:"is_locked"`
}

func (s Slide) Clone() Slide {
	c := s
	if s.Data != nil {
		c.Data = s.Data.Clone()
	}
	return c
}

func (s *Slide) UnmarshalJSON(data []byte) error {
	var shadow struct {
		ID       string          `json:"id"`
		Type     SlideType       `json:"type"`
		Title    string          `json:"title"`
		Order    int             `json:"order"`
		Data     json.RawMessage `json:"data"`
		IsLocked bool            `json:"is_locked"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return err
	}
	payload, err := DecodeSlideData(shadow.Type, shadow.Data)
	if err != nil {
		return err
	}
	s.ID = shadow.ID
	s.Type = shadow.Type
	s.Title = shadow.Title
	s.Order = shadow.Order
	s.Data = payload
	s.IsLocked = shadow.IsLocked
	return nil
}

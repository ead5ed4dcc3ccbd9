package models

// Apartment is the listing detail carried by a map pin. The pin flagged
// IsClientApartment is the subject property of the study; all others are
// comparables pulled from listing search.
type Apartment struct {
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	Rooms             int      `json:"rooms"`
	Guests            int      `json:"guests"`
	Beds              int      `json:"beds"`
	Bathrooms         int      `json:"bathrooms"`
	Rating            float64  `json:"rating"`
	ReviewsCount      int      `json:"reviews_count"`
	ThumbnailURL      string   `json:"thumbnail_url"`
	Features          []string `json:"features"`
	IsClientApartment bool     `json:"is_client_apartment"`
}

// Pin is a geo-anchored marker on a map slide.
type Pin struct {
	ID        string    `json:"id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Apartment Apartment `json:"apartment"`
}

func (p Pin) Clone() Pin {
	c := p
	if p.Apartment.Features != nil {
		c.Apartment.Features = make([]string, len(p.Apartment.Features))
		copy(c.Apartment.Features, p.Apartment.Features)
	}
	return c
}

// Landmark is a named point of interest used for the nearby-landmark
// lookup around a pin.
type Landmark struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// LandmarkMatch is one landmark paired with its distance from the pin.
type LandmarkMatch struct {
	Landmark   Landmark `json:"landmark"`
	DistanceKm float64  `json:"distance_km"`
}

// ComparableStats aggregates listing prices over the comparable pins
// (the client apartment is excluded).
type ComparableStats struct {
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`
}

package entities

import (
	"time"
)

// Place represents a candidate destination in the catalog. Places are
// ingested from an external provider and are read-only to the feed engine.
type Place struct {
	ID              string       `json:"id" db:"id"`
	ProviderPlaceID string       `json:"place_id" db:"place_id"`
	Name            string       `json:"name" db:"name"`
	Location        Location     `json:"location" db:"-"`
	Rating          *float64     `json:"rating,omitempty" db:"rating"`
	Types           []PlaceType  `json:"types" db:"-"`
	Images          []PlaceImage `json:"images" db:"-"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// PlaceType is a categorical tag attached to a place
type PlaceType struct {
	Type string `json:"type" db:"type"`
}

// PlaceImage is an image URL attached to a place
type PlaceImage struct {
	ImageURL string `json:"image_url" db:"image_url"`
}

// TypeNames returns the place's tags as a flat string slice
func (p *Place) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type)
	}
	return names
}

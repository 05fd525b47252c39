package entity

import (
	"time"

	"github.com/google/uuid"
)

// Location is a public-art spot from the catalog. The catalog itself
// (geocoding, search, curation) is managed elsewhere; this module only
// resolves ids for event stops.
type Location struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   *string   `db:"address" json:"address,omitempty"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

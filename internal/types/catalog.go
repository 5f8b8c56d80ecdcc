package types

import (
	"time"

	"github.com/google/uuid"
)

// Category groups spots for browsing (nature, heritage, dining, ...).
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Spot is a named point of interest with nested activity and dining
// sub-collections.
type Spot struct {
	ID          uuid.UUID  `json:"id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SpotActivity is something to do at a spot.
type SpotActivity struct {
	ID          uuid.UUID `json:"id"`
	SpotID      uuid.UUID `json:"spot_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpotDining is a place to eat at or near a spot.
type SpotDining struct {
	ID          uuid.UUID `json:"id"`
	SpotID      uuid.UUID `json:"spot_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cuisine     string    `json:"cuisine"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSpotParams holds the fields accepted on spot creation.
type CreateSpotParams struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	ImageURL    string     `json:"image_url"`
}

// UpdateSpotParams allows partial updates; nil fields are left untouched.
type UpdateSpotParams struct {
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Address     *string    `json:"address,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
}

// Option is one entry of an admin-configured choice list (budget, duration).
type Option struct {
	ID       uuid.UUID `json:"id"`
	Label    string    `json:"label"`
	Position int       `json:"position"`
}

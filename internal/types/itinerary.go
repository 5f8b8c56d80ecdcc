package types

import (
	"time"

	"github.com/google/uuid"
)

// ItineraryRequest carries the trip preferences submitted on the generation
// form. Budget and duration must match the admin-configured option lists.
type ItineraryRequest struct {
	Budget              string `json:"budget"`
	Duration            string `json:"duration"`
	HasAccommodation    bool   `json:"has_accommodation"`
	Accommodation       string `json:"accommodation,omitempty"`
	MustSeeAttractions  string `json:"must_see_attractions,omitempty"`
	OptionalPreferences string `json:"optional_preferences,omitempty"`
	AdditionalNotes     string `json:"additional_notes,omitempty"`
}

// GeocodedPlace is one resolved stop of a generated itinerary. The order of
// the coordinate list follows the first-appearance order of the place names
// in the generated text.
type GeocodedPlace struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Feedback values a user can attach when marking an itinerary planned.
const (
	FeedbackLiked    = "liked"
	FeedbackDisliked = "disliked"
)

// Itinerary is a persisted generation result plus its lifecycle flags.
// Lifecycle: created -> optionally planned (feedback captured) -> optionally
// used -> deleted (only while not planned).
type Itinerary struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Itinerary   string          `json:"itinerary"`
	Coordinates []GeocodedPlace `json:"coordinates"`
	Request     ItineraryRequest `json:"request"`
	Planned     bool            `json:"planned"`
	Used        bool            `json:"used"`
	Feedback    string          `json:"feedback,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PlanItineraryRequest marks an itinerary planned, optionally recording
// feedback ("liked" or "disliked").
type PlanItineraryRequest struct {
	Feedback string `json:"feedback,omitempty"`
}

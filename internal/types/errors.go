package types

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist or is
	// not visible to the caller.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write collides with an existing record
	// (duplicate email, duplicate option label).
	ErrConflict = errors.New("record already exists")

	// ErrItineraryPlanned is returned when deleting an itinerary that has
	// been marked planned. Planned itineraries cannot be removed.
	ErrItineraryPlanned = errors.New("itinerary is marked planned and cannot be deleted")

	// ErrEmptyCompletion is returned when the completion endpoint answers
	// without usable text.
	ErrEmptyCompletion = errors.New("completion endpoint returned no valid response")

	// ErrPlaceNotFound is returned when the geocoding endpoint resolves a
	// place name to zero results.
	ErrPlaceNotFound = errors.New("place could not be geocoded")
)

package itinerary

import (
	"fmt"
	"strings"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

// systemInstruction steers the completion endpoint toward the markdown shape
// the extractor understands: day headers and place names in bold.
const systemInstruction = `You are a travel planner for Baguio City, Philippines. ` +
	`Write a detailed day-by-day itinerary in markdown. Start each day with a bold ` +
	`header like **Day 1**. Put the name of every attraction, park, museum or ` +
	`viewpoint in bold (e.g. **Burnham Park**). Mention meals as **Breakfast at ...**, ` +
	`**Lunch at ...** and **Dinner at ...**. Keep recommendations inside Baguio City.`

const (
	noAccommodation = "No accommodation booked yet"
	noMustSee       = "No specific spots mentioned"
	noPreferences   = "No additional preferences"
	noNotes         = "None"
)

// buildPrompt assembles the user instruction from the trip preferences.
// Absent optional fields are replaced with fixed placeholder phrases.
func buildPrompt(req types.ItineraryRequest) string {
	accommodation := noAccommodation
	if req.HasAccommodation && strings.TrimSpace(req.Accommodation) != "" {
		accommodation = fmt.Sprintf("Staying at %s", req.Accommodation)
	}

	mustSee := strings.TrimSpace(req.MustSeeAttractions)
	if mustSee == "" {
		mustSee = noMustSee
	}

	preferences := strings.TrimSpace(req.OptionalPreferences)
	if preferences == "" {
		preferences = noPreferences
	}

	notes := strings.TrimSpace(req.AdditionalNotes)
	if notes == "" {
		notes = noNotes
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s travel itinerary for Baguio City with a budget of %s.\n", req.Duration, req.Budget)
	fmt.Fprintf(&b, "Accommodation: %s.\n", accommodation)
	fmt.Fprintf(&b, "Must-see attractions: %s.\n", mustSee)
	fmt.Fprintf(&b, "Preferences: %s.\n", preferences)
	fmt.Fprintf(&b, "Additional notes: %s.", notes)
	return b.String()
}

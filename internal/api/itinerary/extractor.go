package itinerary

import (
	"regexp"
	"strings"
)

var boldSpanRe = regexp.MustCompile(`\*\*([^*]+?)\*\*`)

// mealPrefixes mark bold spans that name a meal stop, not a place.
var mealPrefixes = []string{"Breakfast at", "Lunch at", "Dinner at"}

// nonPlaceKeywords appear in section headers and narrative spans
// ("Day 2", "Morning", "Stay at ..."), never in bare place names.
var nonPlaceKeywords = []string{"day", "morning", "afternoon", "evening", "stay"}

// extractPlaces scans generated itinerary text for bold spans and returns the
// candidate place names in first-appearance order. The first span is always
// discarded: by convention it is the itinerary's day or section title. Spans
// with meal prefixes, non-place keywords or a trailing colon are dropped.
// Duplicates are kept.
func extractPlaces(text string) []string {
	matches := boldSpanRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var places []string
	for i, m := range matches {
		if i == 0 {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" || isNonPlace(candidate) {
			continue
		}
		places = append(places, candidate)
	}
	return places
}

func isNonPlace(candidate string) bool {
	for _, prefix := range mealPrefixes {
		if strings.HasPrefix(candidate, prefix) {
			return true
		}
	}

	lower := strings.ToLower(candidate)
	for _, kw := range nonPlaceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	return strings.HasSuffix(candidate, ":")
}

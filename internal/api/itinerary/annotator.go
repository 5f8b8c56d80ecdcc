package itinerary

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

const directionsBaseURL = "https://www.google.com/maps/dir/?api=1"

// annotateRoutes appends one "Travel from A to B" markdown line per adjacent
// pair of GEOCODED places, each with a driving-directions deep link. Pairs are
// taken from the geocoded sequence as-is: when a candidate failed to geocode,
// its neighbors are linked directly. With fewer than two geocoded places the
// text is returned unchanged.
func annotateRoutes(text string, places []types.GeocodedPlace, cityQualifier string) string {
	if len(places) < 2 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	for i := 0; i < len(places)-1; i++ {
		origin := places[i].Name + ", " + cityQualifier
		destination := places[i+1].Name + ", " + cityQualifier
		link := fmt.Sprintf("%s&origin=%s&destination=%s",
			directionsBaseURL,
			url.QueryEscape(origin),
			url.QueryEscape(destination))
		fmt.Fprintf(&b, "\n\nTravel from **%s** to **%s**. [View Directions](%s)",
			places[i].Name, places[i+1].Name, link)
	}
	return b.String()
}

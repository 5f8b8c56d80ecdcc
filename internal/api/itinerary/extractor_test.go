package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPlaces(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "drops leading header and meal stops",
			text: "**Day 1** Visit **Burnham Park** then **Breakfast at Good Taste** then explore **Mines View Park**",
			want: []string{"Burnham Park", "Mines View Park"},
		},
		{
			name: "no bold spans",
			text: "A plain paragraph with no formatting at all.",
			want: nil,
		},
		{
			name: "single span is treated as the header",
			text: "**Day 1: Arrival** and nothing else in bold.",
			want: nil,
		},
		{
			name: "keywords filtered case-insensitively",
			text: "**Itinerary** **MORNING walk** **Burnham Park** **Evening stroll** **Stay at The Manor**",
			want: []string{"Burnham Park"},
		},
		{
			name: "trailing colon marks a section label",
			text: "**Overview** head to **Tips:** then **Camp John Hay**",
			want: []string{"Camp John Hay"},
		},
		{
			name: "duplicates kept in appearance order",
			text: "**Plan** see **Burnham Park**, **Session Road**, back to **Burnham Park**",
			want: []string{"Burnham Park", "Session Road", "Burnham Park"},
		},
		{
			name: "all meal prefixes filtered",
			text: "**Plan** **Breakfast at Oh My Gulay** **Lunch at Hill Station** **Dinner at Canto** **Wright Park**",
			want: []string{"Wright Park"},
		},
		{
			name: "whitespace inside spans trimmed",
			text: "**Plan** visit ** Tam-Awan Village ** next",
			want: []string{"Tam-Awan Village"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPlaces(tt.text))
		})
	}
}

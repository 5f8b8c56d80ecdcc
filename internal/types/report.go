package types

// MonthlyCount is one bucket of a per-month aggregate, with Month formatted
// as "2006-01".
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// FeedbackBreakdown counts itineraries by the feedback recorded at the
// planned transition.
type FeedbackBreakdown struct {
	Liked    int64 `json:"liked"`
	Disliked int64 `json:"disliked"`
	None     int64 `json:"none"`
}

// CategorySpotCount counts spots per category for the back-office charts.
type CategorySpotCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// UsageReport aggregates the figures backing the admin dashboard.
type UsageReport struct {
	GenerationsPerMonth []MonthlyCount    `json:"generations_per_month"`
	Feedback            FeedbackBreakdown `json:"feedback"`
	PlannedCount        int64             `json:"planned_count"`
	UsedCount           int64             `json:"used_count"`
	SpotsPerCategory    []CategorySpotCount `json:"spots_per_category"`
	TotalUsers          int64             `json:"total_users"`
}

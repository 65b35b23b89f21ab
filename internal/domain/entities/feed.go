package entities

// FeedState identifies which ranking strategy produced a feed page.
type FeedState string

const (
	// FeedStateColdStart serves globally top-rated places to users with too
	// little reaction history to personalize.
	FeedStateColdStart FeedState = "COLD_START"

	// FeedStateWarmScored serves places ranked by the user's tag preferences.
	FeedStateWarmScored FeedState = "WARM_START_SCORED"

	// FeedStateWarmFallback serves top-rated places to warm users whose
	// history produced no positive tag preference.
	FeedStateWarmFallback FeedState = "WARM_START_FALLBACK"
)

// Feed is one page of recommendations for a user.
type Feed struct {
	State  FeedState `json:"state"`
	Places []*Place  `json:"places"`
}

package entities

// TagScore is a scored per-user preference for one place tag. Derived and
// ephemeral: recomputed on every feed request, never persisted.
type TagScore struct {
	Tag   string  `json:"tag"`
	Score float64 `json:"score"`
}

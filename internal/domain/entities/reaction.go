package entities

import (
	"time"
)

// ReactionPolarity is the user's sentiment toward a place
type ReactionPolarity string

const (
	ReactionLike    ReactionPolarity = "like"
	ReactionDislike ReactionPolarity = "dislike"
)

// Valid reports whether the polarity is one of the known values
func (p ReactionPolarity) Valid() bool {
	return p == ReactionLike || p == ReactionDislike
}

// Reaction is a single like/dislike fact. Immutable once created; repeated
// reactions by the same user on the same place create additional rows.
type Reaction struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	PlaceID   string           `json:"place_id" db:"place_id"`
	Reaction  ReactionPolarity `json:"reaction" db:"reaction"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`

	// Place is materialized for listings; nil elsewhere
	Place *Place `json:"place,omitempty" db:"-"`
}

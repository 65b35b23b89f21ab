package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ReactionEventType represents the type of reaction event
type ReactionEventType string

const (
	ReactionEventTypeCreated ReactionEventType = "reaction_created"
)

// ReactionEvent is published when a user reacts to a place, so that
// derived per-user state (cached feeds) can be invalidated.
type ReactionEvent struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	PlaceID   string            `json:"place_id"`
	EventType ReactionEventType `json:"event_type"`
	Reaction  ReactionPolarity  `json:"reaction"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewReactionEvent creates a new reaction event
func NewReactionEvent(userID, placeID string, polarity ReactionPolarity) *ReactionEvent {
	return &ReactionEvent{
		ID:        generateEventID(),
		UserID:    userID,
		PlaceID:   placeID,
		EventType: ReactionEventTypeCreated,
		Reaction:  polarity,
		Timestamp: time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}

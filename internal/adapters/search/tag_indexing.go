package search

import (
	"strings"

	"github.com/vacationvibes/places-backend/internal/domain/entities"
)

const MaxIndexedTags = 50

// buildIndexTags produces the deduplicated, lowercased tag bag indexed for a
// place. Provider type strings arrive in inconsistent casing and occasionally
// duplicated, so everything is normalized before it reaches the index.
func buildIndexTags(place *entities.Place) []string {
	if place == nil {
		return nil
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0, len(place.Types))
	for _, pt := range place.Types {
		tag := strings.ToLower(strings.TrimSpace(pt.Type))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
		if len(tags) >= MaxIndexedTags {
			break
		}
	}
	return tags
}

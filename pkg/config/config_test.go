package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_FeedConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("FEED_COLD_START_THRESHOLD", "25")
	os.Setenv("FEED_LIKE_WEIGHT", "2.0")
	os.Setenv("FEED_DISLIKE_WEIGHT", "-1.0")
	os.Setenv("FEED_TOP_TAG_COUNT", "3")
	defer func() {
		os.Unsetenv("FEED_COLD_START_THRESHOLD")
		os.Unsetenv("FEED_LIKE_WEIGHT")
		os.Unsetenv("FEED_DISLIKE_WEIGHT")
		os.Unsetenv("FEED_TOP_TAG_COUNT")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify feed config
	assert.Equal(t, 25, cfg.Feed.ColdStartThreshold)
	assert.Equal(t, 2.0, cfg.Feed.LikeWeight)
	assert.Equal(t, -1.0, cfg.Feed.DislikeWeight)
	assert.Equal(t, 3, cfg.Feed.TopTagCount)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("FEED_COLD_START_THRESHOLD")
	os.Unsetenv("FEED_TOP_TAG_COUNT")
	os.Unsetenv("FEED_PAGE_LIMIT")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, 50, cfg.Feed.ColdStartThreshold)
	assert.Equal(t, 1.0, cfg.Feed.LikeWeight)
	assert.Equal(t, -0.5, cfg.Feed.DislikeWeight)
	assert.Equal(t, 5, cfg.Feed.TopTagCount)
	assert.Equal(t, 10, cfg.Feed.PageLimit)
	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
}

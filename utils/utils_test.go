package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestParseServerTime(t *testing.T) {
	parsed, err := ParseServerTime("2026-08-28T10:00:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 2026, parsed.Year())

	// Zone-less timestamps show up too.
	_, err = ParseServerTime("2026-08-28 10:00:00")
	assert.NoError(t, err)

	_, err = ParseServerTime("")
	assert.Error(t, err)

	_, err = ParseServerTime("not a date")
	assert.Error(t, err)
}

func TestRelativeLabel(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Just now", RelativeLabel(now.Add(-30*time.Second), now))
	assert.Equal(t, "5 minutes ago", RelativeLabel(now.Add(-5*time.Minute), now))
	assert.Equal(t, "2 hours ago", RelativeLabel(now.Add(-2*time.Hour), now))
	assert.Equal(t, "3 days ago", RelativeLabel(now.Add(-72*time.Hour), now))
	assert.Equal(t, "Recently", RelativeLabel(time.Time{}, now))
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowFollowsCurrentDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2018, 3, 2, 17, 45, 0, 0, loc)

	start, end := window(time.Time{}, now, 7)
	assert.Equal(t, time.Date(2018, 3, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2018, 3, 9, 0, 0, 0, 0, loc).Add(-time.Nanosecond), end)

	// The next render after midnight starts a fresh window.
	start2, _ := window(time.Time{}, now.Add(8*time.Hour), 7)
	assert.Equal(t, time.Date(2018, 3, 3, 0, 0, 0, 0, loc), start2)
}

func TestWindowFixedStartIgnoresNow(t *testing.T) {
	fixed := time.Date(2018, 4, 1, 0, 0, 0, 0, time.UTC)

	start, end := window(fixed, time.Date(2018, 3, 2, 12, 0, 0, 0, time.UTC), 3)
	assert.Equal(t, fixed, start)
	assert.Equal(t, fixed.AddDate(0, 0, 3).Add(-time.Nanosecond), end)
}

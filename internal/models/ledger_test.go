package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int
		level  int
	}{
		{0, 1},
		{25, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{2499, 5},
		{-10, 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForPoints(tc.points), "points=%d", tc.points)
	}
}

func TestPointsToNextLevel(t *testing.T) {
	assert.Equal(t, 500, PointsToNextLevel(0, 1))
	assert.Equal(t, 1, PointsToNextLevel(499, 1))
	assert.Equal(t, 500, PointsToNextLevel(500, 2))
	// Redemption spend can leave the recorded level above the raw total;
	// pointsToNext never goes negative.
	assert.Equal(t, 0, PointsToNextLevel(1200, 2))
}

func TestNextStreak(t *testing.T) {
	today := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	threeDaysAgo := today.AddDate(0, 0, -3)

	t.Run("no previous activity starts at one", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(0, nil, today))
	})

	t.Run("same day leaves streak unchanged", func(t *testing.T) {
		assert.Equal(t, 4, NextStreak(4, &today, today))
	})

	t.Run("consecutive day increments", func(t *testing.T) {
		assert.Equal(t, 5, NextStreak(4, &yesterday, today))
	})

	t.Run("gap resets to one", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(9, &threeDaysAgo, today))
	})

	t.Run("day boundary is UTC midnight", func(t *testing.T) {
		lateYesterday := time.Date(2025, 6, 14, 23, 59, 59, 0, time.UTC)
		earlyToday := time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC)
		assert.Equal(t, 3, NextStreak(2, &lateYesterday, earlyToday))
	})

	t.Run("seeded zero streak becomes one on same-day action", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(0, &today, today))
	})
}

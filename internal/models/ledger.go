package models

import "time"

// LevelForPoints derives the level for a point total. Levels start at 1 and
// each level spans exactly PointsPerLevel points.
func LevelForPoints(totalPoints int) int {
	if totalPoints < 0 {
		return 1
	}
	return totalPoints/PointsPerLevel + 1
}

// PointsToNextLevel returns how many points remain until the next level,
// never negative.
func PointsToNextLevel(totalPoints, currentLevel int) int {
	remaining := currentLevel*PointsPerLevel - totalPoints
	if remaining < 0 {
		return 0
	}
	return remaining
}

// NextStreak computes the streak after an action on `day`, given the
// previous streak and last activity date. Days compare at UTC calendar-day
// granularity: a same-day action leaves the streak unchanged, an action the
// day after the last one extends it, anything else resets it to 1.
func NextStreak(currentStreak int, lastActivity *time.Time, day time.Time) int {
	today := utcDay(day)

	if lastActivity == nil {
		return 1
	}

	switch utcDay(*lastActivity) {
	case today:
		if currentStreak < 1 {
			return 1
		}
		return currentStreak
	case today.AddDate(0, 0, -1):
		return currentStreak + 1
	default:
		return 1
	}
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

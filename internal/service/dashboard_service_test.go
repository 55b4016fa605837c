package service

import (
	"mcquiz_backend/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImprovement(t *testing.T) {
	assert.Equal(t, 0.0, Improvement(nil))
	assert.Equal(t, 0.0, Improvement([]int{80}))

	// Ten or fewer scores have no previous window to compare against.
	assert.Equal(t, 0.0, Improvement([]int{90, 80, 70}))

	// Newest-first: latest ten average 80, preceding ten average 60.
	scores := make([]int, 0, 20)
	for i := 0; i < 10; i++ {
		scores = append(scores, 80)
	}
	for i := 0; i < 10; i++ {
		scores = append(scores, 60)
	}
	assert.Equal(t, 20.0, Improvement(scores))

	// Declining performance goes negative, rounded to one decimal.
	assert.Equal(t, -16.7, Improvement([]int{40, 40, 40, 40, 40, 40, 40, 40, 40, 40, 50, 60, 60}))
}

func TestWeeklyActivityMondayFirstBuckets(t *testing.T) {
	// Wednesday 2026-08-26 in Colombo. The week runs Mon 24th to Sun 30th.
	now := time.Date(2026, 8, 26, 14, 0, 0, 0, colomboTZ)

	points := []repository.ScorePoint{
		{CreatedAt: time.Date(2026, 8, 24, 9, 0, 0, 0, colomboTZ)},  // Monday
		{CreatedAt: time.Date(2026, 8, 24, 21, 0, 0, 0, colomboTZ)}, // Monday
		{CreatedAt: time.Date(2026, 8, 30, 23, 0, 0, 0, colomboTZ)}, // Sunday
		{CreatedAt: time.Date(2026, 8, 23, 12, 0, 0, 0, colomboTZ)}, // previous week
		{CreatedAt: time.Date(2026, 8, 31, 1, 0, 0, 0, colomboTZ)},  // next week
	}

	activity := WeeklyActivity(points, now, colomboTZ)
	require.Len(t, activity, 7)
	assert.Equal(t, "Monday", activity[0].Day)
	assert.Equal(t, 2, activity[0].Attempts)
	assert.Equal(t, "Sunday", activity[6].Day)
	assert.Equal(t, 1, activity[6].Attempts)
	for i := 1; i < 6; i++ {
		assert.Zero(t, activity[i].Attempts, activity[i].Day)
	}
}

func TestWeeklyActivityUsesLocalDayBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 26, 14, 0, 0, 0, colomboTZ)

	// 23:30 UTC Sunday is already 05:00 Monday in Colombo.
	points := []repository.ScorePoint{
		{CreatedAt: time.Date(2026, 8, 23, 23, 30, 0, 0, time.UTC)},
	}

	activity := WeeklyActivity(points, now, colomboTZ)
	assert.Equal(t, 1, activity[0].Attempts)
}

func TestMonthlyActivitySixMonthWindow(t *testing.T) {
	now := time.Date(2026, 8, 15, 10, 0, 0, 0, colomboTZ)

	points := []repository.ScorePoint{
		{CreatedAt: time.Date(2026, 8, 1, 8, 0, 0, 0, colomboTZ), Score: 70},
		{CreatedAt: time.Date(2026, 8, 10, 8, 0, 0, 0, colomboTZ), Score: 81},
		{CreatedAt: time.Date(2026, 3, 5, 8, 0, 0, 0, colomboTZ), Score: 50},
		{CreatedAt: time.Date(2026, 2, 5, 8, 0, 0, 0, colomboTZ), Score: 90}, // before window
	}

	months := MonthlyActivity(points, now, colomboTZ)
	require.Len(t, months, 6)

	assert.Equal(t, "2026-03", months[0].Month)
	assert.Equal(t, 1, months[0].Attempts)
	assert.Equal(t, 50.0, months[0].AverageScore)

	// Empty months are present with zeroes.
	assert.Equal(t, "2026-04", months[1].Month)
	assert.Zero(t, months[1].Attempts)
	assert.Zero(t, months[1].AverageScore)

	assert.Equal(t, "2026-08", months[5].Month)
	assert.Equal(t, 2, months[5].Attempts)
	// (70+81)/2 = 75.5 rounds to 76.
	assert.Equal(t, 76.0, months[5].AverageScore)
}

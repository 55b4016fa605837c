package service

import (
	"context"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedbackFixture(t *testing.T) *FeedbackService {
	db := newTestDB(t)
	// No script configured, so classification runs on keywords alone.
	return NewFeedbackService(
		repository.NewFeedbackRepository(db),
		NewSentimentService(&config.SentimentConfig{}),
	)
}

func TestFeedbackSubmitClassifiesText(t *testing.T) {
	svc := newFeedbackFixture(t)

	fb, err := svc.Submit(context.Background(), 1, "  Great practice papers!  ")
	require.NoError(t, err)
	assert.Equal(t, "Great practice papers!", fb.Text)
	assert.Equal(t, model.SentimentPositive, fb.Sentiment)
	assert.Equal(t, 0.6, fb.Confidence)
	assert.True(t, fb.IsActive)

	_, err = svc.Submit(context.Background(), 1, "   ")
	assert.True(t, util.IsValidation(err))
}

func TestFeedbackDeleteOwnership(t *testing.T) {
	svc := newFeedbackFixture(t)

	fb, err := svc.Submit(context.Background(), 7, "too many server errors")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(fb.ID, 8, model.RoleUser), util.ErrPermissionDenied)
	assert.NoError(t, svc.Delete(fb.ID, 8, model.RoleAdmin))

	// Soft-deleted rows drop out of listings.
	items, total, err := svc.ListByUser(7, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	assert.ErrorIs(t, svc.Delete(999, 1, model.RoleAdmin), util.ErrFeedbackNotFound)
}

func TestFeedbackStatsPercentages(t *testing.T) {
	svc := newFeedbackFixture(t)

	for _, text := range []string{"good stuff", "love it", "excellent site"} {
		_, err := svc.Submit(context.Background(), 1, text)
		require.NoError(t, err)
	}
	_, err := svc.Submit(context.Background(), 2, "the app is slow")
	require.NoError(t, err)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.AllTime.Positive)
	assert.Equal(t, int64(1), stats.AllTime.Negative)
	assert.Equal(t, int64(4), stats.AllTime.Total)
	assert.Equal(t, 75.0, stats.AllTime.PositivePercentage)
	assert.Equal(t, 25.0, stats.AllTime.NegativePercentage)

	// Everything just written falls inside the trailing week.
	assert.Equal(t, int64(4), stats.Weekly.Total)
}

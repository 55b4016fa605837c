package service

import (
	"context"
	"errors"
	"math"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"strings"
	"time"

	"gorm.io/gorm"
)

type FeedbackService struct {
	FeedbackRepo *repository.FeedbackRepository
	Classifier   SentimentClassifier
}

func NewFeedbackService(feedbackRepo *repository.FeedbackRepository, classifier SentimentClassifier) *FeedbackService {
	return &FeedbackService{
		FeedbackRepo: feedbackRepo,
		Classifier:   classifier,
	}
}

func (s *FeedbackService) Submit(ctx context.Context, userID uint, text string) (*model.Feedback, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, util.Validationf("feedback text is required")
	}

	verdict := s.Classifier.Classify(ctx, text)

	feedback := &model.Feedback{
		UserID:     userID,
		Text:       text,
		Sentiment:  verdict.Sentiment,
		Confidence: verdict.Confidence,
		IsActive:   true,
	}
	if err := s.FeedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *FeedbackService) ListByUser(userID uint, page, limit int) ([]model.Feedback, int64, error) {
	return s.FeedbackRepo.ListByUser(userID, page, limit)
}

func (s *FeedbackService) ListAll(page, limit int) ([]model.Feedback, int64, error) {
	return s.FeedbackRepo.ListAll(page, limit)
}

// Delete soft-deletes; only the owner or an admin may do it.
func (s *FeedbackService) Delete(id uint, requesterID uint, requesterRole model.UserRole) error {
	feedback, err := s.FeedbackRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrFeedbackNotFound
	} else if err != nil {
		return err
	}

	if feedback.UserID != requesterID && requesterRole != model.RoleAdmin {
		return util.ErrPermissionDenied
	}

	return s.FeedbackRepo.Deactivate(feedback.ID)
}

// SentimentWindow is one positive/negative split with percentages.
type SentimentWindow struct {
	Positive           int64   `json:"positive"`
	Negative           int64   `json:"negative"`
	Total              int64   `json:"total"`
	PositivePercentage float64 `json:"positivePercentage"`
	NegativePercentage float64 `json:"negativePercentage"`
}

// FeedbackStats covers all time and the trailing 7 days.
type FeedbackStats struct {
	AllTime SentimentWindow `json:"allTime"`
	Weekly  SentimentWindow `json:"lastSevenDays"`
}

func (s *FeedbackService) Stats() (*FeedbackStats, error) {
	allTime, err := s.window(nil)
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	weekly, err := s.window(&weekAgo)
	if err != nil {
		return nil, err
	}

	return &FeedbackStats{AllTime: *allTime, Weekly: *weekly}, nil
}

func (s *FeedbackService) window(since *time.Time) (*SentimentWindow, error) {
	positive, err := s.FeedbackRepo.CountBySentiment(model.SentimentPositive, since)
	if err != nil {
		return nil, err
	}
	negative, err := s.FeedbackRepo.CountBySentiment(model.SentimentNegative, since)
	if err != nil {
		return nil, err
	}

	w := &SentimentWindow{
		Positive: positive,
		Negative: negative,
		Total:    positive + negative,
	}
	if w.Total > 0 {
		w.PositivePercentage = math.Round(float64(positive)/float64(w.Total)*10000) / 100
		w.NegativePercentage = math.Round(float64(negative)/float64(w.Total)*10000) / 100
	}
	return w, nil
}

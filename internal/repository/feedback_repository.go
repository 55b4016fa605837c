package repository

import (
	"mcquiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) Create(feedback *model.Feedback) error {
	return r.DB.Create(feedback).Error
}

func (r *FeedbackRepository) FindByID(id uint) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.DB.Where("is_active = ?", true).First(&feedback, id).Error
	return &feedback, err
}

func (r *FeedbackRepository) ListByUser(userID uint, page, limit int) ([]model.Feedback, int64, error) {
	q := r.DB.Model(&model.Feedback{}).
		Where("user_id = ? AND is_active = ?", userID, true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Feedback
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *FeedbackRepository) ListAll(page, limit int) ([]model.Feedback, int64, error) {
	q := r.DB.Model(&model.Feedback{}).Where("is_active = ?", true)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.Feedback
	err := q.Order("created_at DESC").
		Preload("User").
		Offset((page - 1) * limit).Limit(limit).
		Find(&items).Error
	return items, total, err
}

// Deactivate soft-deletes; inactive rows drop out of listings and stats.
func (r *FeedbackRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Feedback{}).
		Where("id = ?", id).
		Update("is_active", false).
		Error
}

func (r *FeedbackRepository) CountBySentiment(sentiment string, since *time.Time) (int64, error) {
	q := r.DB.Model(&model.Feedback{}).
		Where("is_active = ? AND sentiment = ?", true, sentiment)
	if since != nil {
		q = q.Where("created_at >= ?", *since)
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

package repository

import (
	"mcquiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	DB *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.DB.Create(sub).Error
}

func (r *SubscriptionRepository) FindByOrderID(orderID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.DB.Where("order_id = ?", orderID).First(&sub).Error
	return &sub, err
}

func (r *SubscriptionRepository) Update(sub *model.Subscription) error {
	return r.DB.Save(sub).Error
}

// LatestActiveForUser returns the most recent successful subscription
// still inside its validity window, or gorm.ErrRecordNotFound.
func (r *SubscriptionRepository) LatestActiveForUser(userID uint, now time.Time) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.DB.Where("user_id = ? AND status = ? AND end_date > ?", userID, model.SubscriptionSuccess, now).
		Order("created_at DESC").
		First(&sub).Error
	return &sub, err
}

// ActivePlanTypes lists the distinct plan types of the user's currently
// valid successful subscriptions.
func (r *SubscriptionRepository) ActivePlanTypes(userID uint, now time.Time) ([]string, error) {
	var plans []string
	err := r.DB.Model(&model.Subscription{}).
		Where("user_id = ? AND status = ? AND end_date > ?", userID, model.SubscriptionSuccess, now).
		Distinct().
		Pluck("plan_type", &plans).Error
	return plans, err
}

func (r *SubscriptionRepository) TotalRevenue() (float64, error) {
	var total float64
	err := r.DB.Model(&model.Subscription{}).
		Where("status = ?", model.SubscriptionSuccess).
		Select("COALESCE(SUM(amount),0)").
		Scan(&total).Error
	return total, err
}

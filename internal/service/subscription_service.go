package service

import (
	"errors"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"time"

	"gorm.io/gorm"
)

// SubscriptionService resolves what content tiers a user can reach. It
// backs the subscription middleware.
type SubscriptionService struct {
	UserRepo         *repository.UserRepository
	SubscriptionRepo *repository.SubscriptionRepository
}

func NewSubscriptionService(userRepo *repository.UserRepository, subscriptionRepo *repository.SubscriptionRepository) *SubscriptionService {
	return &SubscriptionService{
		UserRepo:         userRepo,
		SubscriptionRepo: subscriptionRepo,
	}
}

// LevelsForUser unions the profile's subscriptionLevel with the plan
// types of currently valid successful subscriptions, defaulting to Basic.
func (s *SubscriptionService) LevelsForUser(userID uint) ([]string, error) {
	seen := map[string]bool{}
	levels := []string{}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && user.SubscriptionLevel != "" {
		seen[user.SubscriptionLevel] = true
		levels = append(levels, user.SubscriptionLevel)
	}

	plans, err := s.SubscriptionRepo.ActivePlanTypes(userID, time.Now())
	if err != nil {
		return nil, err
	}
	for _, p := range plans {
		if !seen[p] {
			seen[p] = true
			levels = append(levels, p)
		}
	}

	if len(levels) == 0 {
		levels = append(levels, model.LevelBasic)
	}
	return levels, nil
}

// ActiveSubscription returns the latest valid successful subscription or
// nil when the user has none.
func (s *SubscriptionService) ActiveSubscription(userID uint) (*model.Subscription, error) {
	sub, err := s.SubscriptionRepo.LatestActiveForUser(userID, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return sub, nil
}

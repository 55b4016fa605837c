package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionPending     SubscriptionStatus = "pending"
	SubscriptionSuccess     SubscriptionStatus = "success"
	SubscriptionFailed      SubscriptionStatus = "failed"
	SubscriptionCanceled    SubscriptionStatus = "canceled"
	SubscriptionChargedback SubscriptionStatus = "chargedback"
)

// Subscription starts in pending at checkout initiation and transitions
// only via a signature-verified gateway notification.
// swagger:model Subscription
type Subscription struct {
	BaseModel
	UserID    uint               `gorm:"not null;index" json:"userId"`
	PlanType  string             `gorm:"size:20;not null" json:"planType"`
	StartDate time.Time          `gorm:"not null" json:"startDate"`
	EndDate   time.Time          `gorm:"not null" json:"endDate"`
	OrderID   string             `gorm:"size:64;uniqueIndex;not null" json:"orderId"`
	PaymentID string             `gorm:"size:64" json:"paymentId"`
	Amount    float64            `gorm:"not null" json:"amount"`
	Status    SubscriptionStatus `gorm:"size:15;default:'pending'" json:"status"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) ActiveAt(t time.Time) bool {
	return s.Status == SubscriptionSuccess && s.EndDate.After(t)
}

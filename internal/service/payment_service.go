package service

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"mcquiz_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService implements the PayHere checkout lifecycle: a pending
// subscription plus a signed initiation payload, then a signature-checked
// notification webhook that moves the subscription through its states.
//
// The signature scheme is the gateway's two-level md5 and carries no
// nonce, so a captured notification could be replayed. Known gap.
type PaymentService struct {
	SubscriptionRepo *repository.SubscriptionRepository
	UserRepo         *repository.UserRepository
	Cfg              *config.Config
}

func NewPaymentService(subscriptionRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository, cfg *config.Config) *PaymentService {
	return &PaymentService{
		SubscriptionRepo: subscriptionRepo,
		UserRepo:         userRepo,
		Cfg:              cfg,
	}
}

func md5Upper(s string) string {
	sum := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// CheckoutHash signs the initiation payload:
// upper(md5(merchantId + orderId + amount + currency + upper(md5(secret)))).
func CheckoutHash(merchantID, orderID, formattedAmount, currency, merchantSecret string) string {
	return md5Upper(merchantID + orderID + formattedAmount + currency + md5Upper(merchantSecret))
}

// NotificationHash signs the webhook payload; the status code joins the
// digest so a status cannot be swapped under a valid signature.
func NotificationHash(merchantID, orderID, amount, currency, statusCode, merchantSecret string) string {
	return md5Upper(merchantID + orderID + amount + currency + statusCode + md5Upper(merchantSecret))
}

var statusByCode = map[string]model.SubscriptionStatus{
	"2":  model.SubscriptionSuccess,
	"0":  model.SubscriptionPending,
	"-1": model.SubscriptionCanceled,
	"-2": model.SubscriptionFailed,
	"-3": model.SubscriptionChargedback,
}

// PaymentData is the payload the frontend forwards to the gateway.
type PaymentData struct {
	MerchantID string `json:"merchant_id"`
	ReturnURL  string `json:"return_url"`
	CancelURL  string `json:"cancel_url"`
	NotifyURL  string `json:"notify_url"`
	OrderID    string `json:"order_id"`
	Items      string `json:"items"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	Hash       string `json:"hash"`
	Custom1    uint   `json:"custom_1"`
}

// Initialize creates the pending subscription and the signed payload.
func (s *PaymentService) Initialize(userID uint, planType string, amount float64) (*PaymentData, error) {
	user, err := s.UserRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	orderID := fmt.Sprintf("MC-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
	now := time.Now()

	subscription := &model.Subscription{
		UserID:    userID,
		PlanType:  planType,
		StartDate: now,
		EndDate:   now.Add(365 * 24 * time.Hour),
		OrderID:   orderID,
		Amount:    amount,
		Status:    model.SubscriptionPending,
	}
	if err := s.SubscriptionRepo.Create(subscription); err != nil {
		return nil, err
	}

	formattedAmount := fmt.Sprintf("%.2f", amount)
	currency := s.Cfg.Payment.Currency
	hash := CheckoutHash(s.Cfg.Payment.MerchantID, orderID, formattedAmount, currency, s.Cfg.Payment.MerchantSecret)

	return &PaymentData{
		MerchantID: s.Cfg.Payment.MerchantID,
		ReturnURL:  s.Cfg.Payment.ReturnURL,
		CancelURL:  s.Cfg.Payment.CancelURL,
		NotifyURL:  s.Cfg.Payment.NotifyURL,
		OrderID:    orderID,
		Items:      planType,
		Amount:     formattedAmount,
		Currency:   currency,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Phone:      user.Phone,
		Address:    user.Address,
		City:       user.City,
		Country:    "Sri Lanka",
		Hash:       hash,
		Custom1:    userID,
	}, nil
}

// Notification is the form payload posted by the gateway.
type Notification struct {
	MerchantID string `form:"merchant_id"`
	OrderID    string `form:"order_id"`
	PaymentID  string `form:"payment_id"`
	Amount     string `form:"payhere_amount"`
	Currency   string `form:"payhere_currency"`
	StatusCode string `form:"status_code"`
	MD5Sig     string `form:"md5sig"`
}

// HandleNotification verifies the signature, maps the status code and
// updates the matching subscription. A bad signature changes nothing.
func (s *PaymentService) HandleNotification(n Notification) error {
	expected := NotificationHash(n.MerchantID, n.OrderID, n.Amount, n.Currency, n.StatusCode, s.Cfg.Payment.MerchantSecret)
	if expected != n.MD5Sig {
		logger.Log.Warn("Rejected payment notification with invalid signature",
			zap.String("orderId", n.OrderID))
		return util.ErrInvalidSignature
	}

	subscription, err := s.SubscriptionRepo.FindByOrderID(n.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrSubscriptionNotFound
	} else if err != nil {
		return err
	}

	status, ok := statusByCode[n.StatusCode]
	if !ok {
		status = model.SubscriptionPending
	}

	subscription.Status = status
	subscription.PaymentID = n.PaymentID
	if err := s.SubscriptionRepo.Update(subscription); err != nil {
		return err
	}

	logger.Log.Info("Applied payment notification",
		zap.String("orderId", n.OrderID),
		zap.String("status", string(status)))
	return nil
}

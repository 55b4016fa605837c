package controller

import (
	"errors"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"
	"mcquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	PaymentService      *service.PaymentService
	SubscriptionService *service.SubscriptionService
}

func NewPaymentController(paymentService *service.PaymentService, subscriptionService *service.SubscriptionService) *PaymentController {
	return &PaymentController{
		PaymentService:      paymentService,
		SubscriptionService: subscriptionService,
	}
}

// swagger:model InitializePaymentRequest
type InitializePaymentRequest struct {
	PlanType string  `json:"planType" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

// Initialize godoc
// @Summary Start a subscription checkout
// @Description Creates a pending subscription and returns the signed gateway payload
// @Tags payments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body InitializePaymentRequest true "plan and amount"
// @Success 200 {object} service.PaymentData
// @Failure 400 {object} util.ErrorResponse
// @Router /api/payment/initialize [post]
func (c *PaymentController) Initialize(ctx *gin.Context) {
	var req InitializePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	data, err := c.PaymentService.Initialize(claims.UserID, req.PlanType, req.Amount)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "User not found")
		} else {
			util.LogInternalError(ctx, "Payment initialization failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"paymentData": data})
}

// Notify godoc
// @Summary Payment gateway webhook
// @Description Unauthenticated; trust comes from the md5 signature
// @Tags payments
// @Accept x-www-form-urlencoded
// @Produce json
// @Param merchant_id formData string true "merchant id"
// @Param order_id formData string true "order id"
// @Param status_code formData string true "gateway status code"
// @Param md5sig formData string true "signature"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/payment/notify [post]
func (c *PaymentController) Notify(ctx *gin.Context) {
	var n service.Notification
	if err := ctx.ShouldBind(&n); err != nil {
		monitoring.PaymentNotifications.WithLabelValues("malformed").Inc()
		util.BadRequest(ctx, "Malformed notification")
		return
	}

	if err := c.PaymentService.HandleNotification(n); err != nil {
		if errors.Is(err, util.ErrInvalidSignature) {
			monitoring.PaymentNotifications.WithLabelValues("invalid_signature").Inc()
			util.BadRequest(ctx, "Invalid signature")
		} else if errors.Is(err, util.ErrSubscriptionNotFound) {
			monitoring.PaymentNotifications.WithLabelValues("unknown_order").Inc()
			util.NotFound(ctx, "Subscription not found")
		} else {
			monitoring.PaymentNotifications.WithLabelValues("error").Inc()
			util.LogInternalError(ctx, "Payment notification failed", err)
		}
		return
	}

	monitoring.PaymentNotifications.WithLabelValues("applied").Inc()
	util.Success(ctx, gin.H{"message": "Notification processed"})
}

// Subscription godoc
// @Summary The caller's current subscription
// @Tags payments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/payment/subscription [get]
func (c *PaymentController) Subscription(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	sub, err := c.SubscriptionService.ActiveSubscription(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "Subscription lookup failed", err)
		return
	}
	levels, err := c.SubscriptionService.LevelsForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, "Subscription lookup failed", err)
		return
	}

	body := gin.H{"levels": levels, "hasActiveSubscription": sub != nil}
	if sub != nil {
		body["subscription"] = sub
	}
	util.Success(ctx, body)
}

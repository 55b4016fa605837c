package controller

import (
	"errors"
	"mcquiz_backend/internal/service"
	"mcquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PasswordResetController struct {
	ResetService *service.PasswordResetService
}

func NewPasswordResetController(resetService *service.PasswordResetService) *PasswordResetController {
	return &PasswordResetController{ResetService: resetService}
}

// swagger:model RequestResetRequest
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestReset godoc
// @Summary Request a password reset code
// @Description Emails a 6-digit code valid for 10 minutes
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RequestResetRequest true "account email"
// @Success 200 {object} map[string]string
// @Failure 404 {object} util.ErrorResponse
// @Router /api/password-reset/request-reset [post]
func (c *PasswordResetController) RequestReset(ctx *gin.Context) {
	var req RequestResetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ResetService.RequestReset(req.Email); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "No account found for this email")
		} else {
			util.LogInternalError(ctx, "Password reset request failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Reset code sent"})
}

// swagger:model VerifyOTPRequest
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP godoc
// @Summary Verify a reset code
// @Description A code verifies once; reuse fails
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "email and code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Router /api/password-reset/verify-otp [post]
func (c *PasswordResetController) VerifyOTP(ctx *gin.Context) {
	var req VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ResetService.VerifyOTP(req.Email, req.OTP); err != nil {
		if errors.Is(err, util.ErrInvalidOTP) {
			util.BadRequest(ctx, "Invalid or expired code")
		} else {
			util.LogInternalError(ctx, "OTP verification failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Code verified"})
}

// swagger:model ResetPasswordRequest
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ResetPassword godoc
// @Summary Set a new password after verification
// @Description Requires a code verified within the last 15 minutes
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ResetPasswordRequest true "email and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /api/password-reset/reset-password [post]
func (c *PasswordResetController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ResetService.ResetPassword(req.Email, req.NewPassword); err != nil {
		if errors.Is(err, util.ErrOTPNotVerified) {
			util.BadRequest(ctx, "Verify your reset code first")
		} else if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "No account found for this email")
		} else if util.IsValidation(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, "Password reset failed", err)
		}
		return
	}

	util.Success(ctx, gin.H{"message": "Password updated"})
}

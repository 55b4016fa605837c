package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"mcquiz_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	otpValidity      = 10 * time.Minute
	otpResetWindow   = 15 * time.Minute
	minPasswordChars = 8
)

// PasswordResetService drives the three-step OTP flow: request a code by
// email, verify it, then set a new password within the reset window.
// Both users and admins reset through the same flow.
type PasswordResetService struct {
	UserRepo  *repository.UserRepository
	AdminRepo *repository.AdminRepository
	OTPRepo   *repository.OTPRepository
	Email     *EmailService
}

func NewPasswordResetService(userRepo *repository.UserRepository, adminRepo *repository.AdminRepository, otpRepo *repository.OTPRepository, email *EmailService) *PasswordResetService {
	return &PasswordResetService{
		UserRepo:  userRepo,
		AdminRepo: adminRepo,
		OTPRepo:   otpRepo,
		Email:     email,
	}
}

func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// accountExists checks both identity spaces.
func (s *PasswordResetService) accountExists(email string) (bool, error) {
	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if _, err := s.AdminRepo.FindByEmail(email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	return false, nil
}

// RequestReset issues a fresh 6-digit code and mails it. If the mail
// cannot be sent the code is discarded so a stale code never lingers.
func (s *PasswordResetService) RequestReset(email string) error {
	exists, err := s.accountExists(email)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrUserNotFound
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}

	otp := &model.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpValidity),
	}
	if err := s.OTPRepo.Create(otp); err != nil {
		return err
	}

	if err := s.Email.SendPasswordResetOTP(email, code); err != nil {
		if cleanupErr := s.OTPRepo.DeleteByEmail(email); cleanupErr != nil {
			logger.Log.Warn("Failed to discard reset code after mail failure",
				zap.String("email", email), zap.Error(cleanupErr))
		}
		return err
	}
	return nil
}

// VerifyOTP consumes a matching, unexpired, unused code. A second verify
// with the same code fails.
func (s *PasswordResetService) VerifyOTP(email, code string) error {
	otp, err := s.OTPRepo.FindValid(email, code, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrInvalidOTP
	} else if err != nil {
		return err
	}

	if err := s.OTPRepo.IncrementAttempts(otp.ID); err != nil {
		return err
	}
	return s.OTPRepo.MarkUsed(otp.ID)
}

// ResetPassword requires a code consumed within the last 15 minutes. On
// success all codes for the email are dropped.
func (s *PasswordResetService) ResetPassword(email, newPassword string) error {
	if len(newPassword) < minPasswordChars {
		return util.Validationf("password must be at least %d characters", minPasswordChars)
	}

	cutoff := time.Now().Add(-otpResetWindow)
	if _, err := s.OTPRepo.FindRecentUsed(email, cutoff); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrOTPNotVerified
	} else if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	updated := false
	if _, err := s.UserRepo.FindByEmail(email); err == nil {
		if err := s.UserRepo.UpdatePassword(email, string(hashed)); err != nil {
			return err
		}
		updated = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.AdminRepo.FindByEmail(email); err == nil {
		if err := s.AdminRepo.UpdatePassword(email, string(hashed)); err != nil {
			return err
		}
		updated = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if !updated {
		return util.ErrUserNotFound
	}

	return s.OTPRepo.DeleteByEmail(email)
}

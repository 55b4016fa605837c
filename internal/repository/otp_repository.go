package repository

import (
	"mcquiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type OTPRepository struct {
	DB *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{DB: db}
}

func (r *OTPRepository) Create(otp *model.OTP) error {
	return r.DB.Create(otp).Error
}

// FindValid returns the newest unexpired, unused row matching email+code.
func (r *OTPRepository) FindValid(email, code string, now time.Time) (*model.OTP, error) {
	var otp model.OTP
	err := r.DB.Where("email = ? AND code = ? AND is_used = ? AND expires_at > ?", email, code, false, now).
		Order("created_at DESC").
		First(&otp).Error
	return &otp, err
}

func (r *OTPRepository) MarkUsed(id uint) error {
	return r.DB.Model(&model.OTP{}).
		Where("id = ?", id).
		Update("is_used", true).
		Error
}

func (r *OTPRepository) IncrementAttempts(id uint) error {
	return r.DB.Model(&model.OTP{}).
		Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).
		Error
}

// FindRecentUsed returns the newest consumed OTP for the email created
// after the cutoff. A used OTP within the window is the proof of identity
// required to reset the password.
func (r *OTPRepository) FindRecentUsed(email string, createdAfter time.Time) (*model.OTP, error) {
	var otp model.OTP
	err := r.DB.Where("email = ? AND is_used = ? AND created_at >= ?", email, true, createdAfter).
		Order("created_at DESC").
		First(&otp).Error
	return &otp, err
}

func (r *OTPRepository) DeleteByEmail(email string) error {
	return r.DB.Where("email = ?", email).Delete(&model.OTP{}).Error
}

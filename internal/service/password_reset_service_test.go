package service

import (
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newResetFixture(t *testing.T) (*PasswordResetService, *gorm.DB) {
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db)

	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(&model.User{
		FirstName: "Kamala",
		Email:     "kamala@example.com",
		Password:  string(hashed),
		Role:      model.RoleUser,
	}))

	// Empty SMTP host: sends are skipped, codes still land in the table.
	svc := NewPasswordResetService(
		userRepo,
		repository.NewAdminRepository(db),
		repository.NewOTPRepository(db),
		NewEmailService(&config.SMTPConfig{}),
	)
	return svc, db
}

func latestOTP(t *testing.T, db *gorm.DB, email string) *model.OTP {
	var otp model.OTP
	require.NoError(t, db.Where("email = ?", email).Order("id DESC").First(&otp).Error)
	return &otp
}

func TestRequestResetIssuesSixDigitCode(t *testing.T) {
	svc, db := newResetFixture(t)

	require.NoError(t, svc.RequestReset("kamala@example.com"))

	otp := latestOTP(t, db, "kamala@example.com")
	assert.Len(t, otp.Code, 6)
	assert.False(t, otp.IsUsed)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), otp.ExpiresAt, time.Minute)
}

func TestRequestResetUnknownEmail(t *testing.T) {
	svc, _ := newResetFixture(t)

	assert.ErrorIs(t, svc.RequestReset("nobody@example.com"), util.ErrUserNotFound)
}

func TestVerifyOTPConsumesCode(t *testing.T) {
	svc, db := newResetFixture(t)

	require.NoError(t, svc.RequestReset("kamala@example.com"))
	code := latestOTP(t, db, "kamala@example.com").Code

	require.NoError(t, svc.VerifyOTP("kamala@example.com", code))

	// A code verifies exactly once.
	assert.ErrorIs(t, svc.VerifyOTP("kamala@example.com", code), util.ErrInvalidOTP)
}

func TestVerifyOTPRejectsWrongAndExpired(t *testing.T) {
	svc, db := newResetFixture(t)

	require.NoError(t, svc.RequestReset("kamala@example.com"))
	otp := latestOTP(t, db, "kamala@example.com")

	assert.ErrorIs(t, svc.VerifyOTP("kamala@example.com", "000000"), util.ErrInvalidOTP)

	require.NoError(t, db.Model(otp).Update("expires_at", time.Now().Add(-time.Minute)).Error)
	assert.ErrorIs(t, svc.VerifyOTP("kamala@example.com", otp.Code), util.ErrInvalidOTP)
}

func TestResetPasswordRequiresVerifiedCode(t *testing.T) {
	svc, _ := newResetFixture(t)

	err := svc.ResetPassword("kamala@example.com", "newpassword1")
	assert.ErrorIs(t, err, util.ErrOTPNotVerified)
}

func TestResetPasswordHappyPath(t *testing.T) {
	svc, db := newResetFixture(t)

	require.NoError(t, svc.RequestReset("kamala@example.com"))
	code := latestOTP(t, db, "kamala@example.com").Code
	require.NoError(t, svc.VerifyOTP("kamala@example.com", code))

	require.NoError(t, svc.ResetPassword("kamala@example.com", "newpassword1"))

	var user model.User
	require.NoError(t, db.Where("email = ?", "kamala@example.com").First(&user).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpassword1")))

	// All codes are dropped once the reset completes.
	var count int64
	require.NoError(t, db.Model(&model.OTP{}).Where("email = ?", "kamala@example.com").Count(&count).Error)
	assert.Zero(t, count)
}

func TestResetPasswordEnforcesMinimumLength(t *testing.T) {
	svc, db := newResetFixture(t)

	require.NoError(t, svc.RequestReset("kamala@example.com"))
	code := latestOTP(t, db, "kamala@example.com").Code
	require.NoError(t, svc.VerifyOTP("kamala@example.com", code))

	err := svc.ResetPassword("kamala@example.com", "short")
	assert.True(t, util.IsValidation(err))
}

func TestResetPasswordOutsideWindow(t *testing.T) {
	svc, db := newResetFixture(t)

	require.NoError(t, svc.RequestReset("kamala@example.com"))
	otp := latestOTP(t, db, "kamala@example.com")
	require.NoError(t, svc.VerifyOTP("kamala@example.com", otp.Code))

	// Push the consumed code outside the 15-minute reset window.
	require.NoError(t, db.Model(otp).Update("created_at", time.Now().Add(-16*time.Minute)).Error)

	err := svc.ResetPassword("kamala@example.com", "newpassword1")
	assert.ErrorIs(t, err, util.ErrOTPNotVerified)
}

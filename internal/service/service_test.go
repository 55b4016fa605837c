package service

import (
	"fmt"
	"mcquiz_backend/internal/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.Subject{},
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.AttemptAnswer{},
		&model.Feedback{},
		&model.OTP{},
		&model.Subscription{},
	))
	return db
}

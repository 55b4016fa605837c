package repository

import (
	"mcquiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

type AttemptFilter struct {
	QuizID uint
	Passed *bool
	Page   int
	Limit  int
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Preload("Quiz").Preload("Quiz.Subject").First(&attempt, id).Error
	return &attempt, err
}

func (r *AttemptRepository) ListByUser(userID uint, f AttemptFilter) ([]model.QuizAttempt, int64, error) {
	q := r.DB.Model(&model.QuizAttempt{}).Where("user_id = ?", userID)

	if f.QuizID != 0 {
		q = q.Where("quiz_id = ?", f.QuizID)
	}
	if f.Passed != nil {
		q = q.Where("passed = ?", *f.Passed)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC").Preload("Quiz").Preload("Quiz.Subject")
	if f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}

	var attempts []model.QuizAttempt
	err := q.Find(&attempts).Error
	return attempts, total, err
}

func (r *AttemptRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC, id DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) CountByUserAndQuiz(userID, quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) LatestByUserAndQuiz(userID, quizID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("created_at DESC, id DESC").
		First(&attempt).Error
	return &attempt, err
}

// UserStats is the per-user aggregate over all attempts.
type UserStats struct {
	TotalAttempts int64   `json:"totalAttempts"`
	AverageScore  float64 `json:"averageScore"`
	HighestScore  int     `json:"highestScore"`
	LowestScore   int     `json:"lowestScore"`
	PassedCount   int64   `json:"passedCount"`
	UniqueQuizzes int64   `json:"uniqueQuizzes"`
}

func (r *AttemptRepository) StatsByUser(userID uint) (*UserStats, error) {
	var stats UserStats
	err := r.DB.Model(&model.QuizAttempt{}).
		Select("COUNT(*) as total_attempts, COALESCE(AVG(score),0) as average_score, COALESCE(MAX(score),0) as highest_score, COALESCE(MIN(score),0) as lowest_score, COALESCE(SUM(CASE WHEN passed THEN 1 ELSE 0 END),0) as passed_count, COUNT(DISTINCT quiz_id) as unique_quizzes").
		Where("user_id = ?", userID).
		Scan(&stats).Error
	return &stats, err
}

// DifficultyStat breaks attempts down by quiz difficulty.
type DifficultyStat struct {
	Difficulty   string  `json:"difficulty"`
	Attempts     int64   `json:"attempts"`
	AverageScore float64 `json:"averageScore"`
	PassedCount  int64   `json:"passedCount"`
}

func (r *AttemptRepository) StatsByDifficulty(userID uint) ([]DifficultyStat, error) {
	var stats []DifficultyStat
	err := r.DB.Model(&model.QuizAttempt{}).
		Select("quizzes.difficulty as difficulty, COUNT(*) as attempts, COALESCE(AVG(quiz_attempts.score),0) as average_score, COALESCE(SUM(CASE WHEN quiz_attempts.passed THEN 1 ELSE 0 END),0) as passed_count").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.user_id = ?", userID).
		Group("quizzes.difficulty").
		Scan(&stats).Error
	return stats, err
}

// SubjectPerformance is the per-subject average used by the dashboard.
type SubjectPerformance struct {
	SubjectID    uint    `json:"subjectId"`
	Subject      string  `json:"subject"`
	Level        string  `json:"level"`
	Attempts     int64   `json:"attempts"`
	AverageScore float64 `json:"averageScore"`
}

func (r *AttemptRepository) PerformanceBySubject(userID uint) ([]SubjectPerformance, error) {
	var stats []SubjectPerformance
	err := r.DB.Model(&model.QuizAttempt{}).
		Select("subjects.id as subject_id, subjects.name as subject, subjects.level as level, COUNT(*) as attempts, COALESCE(AVG(quiz_attempts.score),0) as average_score").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("JOIN subjects ON subjects.id = quizzes.subject_id").
		Where("quiz_attempts.user_id = ?", userID).
		Group("subjects.id, subjects.name, subjects.level").
		Scan(&stats).Error
	return stats, err
}

// ScorePoint is a (time, score) sample for time-bucketed rollups. The
// bucketing itself happens in the dashboard service so it stays portable
// across SQL dialects.
type ScorePoint struct {
	CreatedAt time.Time
	Score     int
}

func (r *AttemptRepository) ScoresSince(userID uint, since time.Time) ([]ScorePoint, error) {
	var points []ScorePoint
	err := r.DB.Model(&model.QuizAttempt{}).
		Select("created_at, score").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at ASC").
		Scan(&points).Error
	return points, err
}

// RecentScores returns the latest n scores, newest first.
func (r *AttemptRepository) RecentScores(userID uint, n int) ([]int, error) {
	var scores []int
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(n).
		Pluck("score", &scores).Error
	return scores, err
}

func (r *AttemptRepository) RecentAttempts(userID uint, n int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(n).
		Preload("Quiz").Preload("Quiz.Subject").
		Find(&attempts).Error
	return attempts, err
}

// AttemptedSubjectIDs lists subjects the user has attempted at least once.
func (r *AttemptRepository) AttemptedSubjectIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.QuizAttempt{}).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quiz_attempts.user_id = ?", userID).
		Distinct().
		Pluck("quizzes.subject_id", &ids).Error
	return ids, err
}

func (r *AttemptRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).Count(&count).Error
	return count, err
}

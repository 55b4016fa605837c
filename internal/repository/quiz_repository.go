package repository

import (
	"mcquiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// QuizFilter narrows quiz listings.
type QuizFilter struct {
	SubjectID          uint
	Difficulty         string
	SubscriptionLevel  string
	SubscriptionLevels []string // caller's accessible levels
	Search             string
	ActiveOnly         bool
	Sort               string
	Page               int
	Limit              int
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Preload("Subject").First(&quiz, id).Error
	return &quiz, err
}

// FindActiveByID is the user-facing lookup: inactive quizzes read as absent.
func (r *QuizRepository) FindActiveByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Preload("Subject").Where("is_active = ?", true).First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) List(f QuizFilter) ([]model.Quiz, int64, error) {
	q := r.DB.Model(&model.Quiz{})

	if f.SubjectID != 0 {
		q = q.Where("subject_id = ?", f.SubjectID)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.SubscriptionLevel != "" {
		q = q.Where("subscription_level = ?", f.SubscriptionLevel)
	}
	if len(f.SubscriptionLevels) > 0 {
		q = q.Where("subscription_level IN ?", f.SubscriptionLevels)
	}
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+lowered(f.Search)+"%")
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(f.Sort)).Preload("Subject")
	if f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}

	var quizzes []model.Quiz
	err := q.Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) QuestionCount(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *QuizRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Count(&count).Error
	return count, err
}

// GroupStat is one row of a grouped count.
type GroupStat struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

func (r *QuizRepository) CountByDifficulty() ([]GroupStat, error) {
	var stats []GroupStat
	err := r.DB.Model(&model.Quiz{}).
		Select("difficulty as `key`, COUNT(*) as count").
		Group("difficulty").
		Scan(&stats).Error
	return stats, err
}

func (r *QuizRepository) CountBySubscriptionLevel() ([]GroupStat, error) {
	var stats []GroupStat
	err := r.DB.Model(&model.Quiz{}).
		Select("subscription_level as `key`, COUNT(*) as count").
		Group("subscription_level").
		Scan(&stats).Error
	return stats, err
}

// SubjectQuizStat joins quizzes back to their subject names.
type SubjectQuizStat struct {
	SubjectID uint   `json:"subjectId"`
	Subject   string `json:"subject"`
	Count     int64  `json:"count"`
}

func (r *QuizRepository) CountBySubject() ([]SubjectQuizStat, error) {
	var stats []SubjectQuizStat
	err := r.DB.Model(&model.Quiz{}).
		Select("quizzes.subject_id, subjects.name as subject, COUNT(*) as count").
		Joins("JOIN subjects ON subjects.id = quizzes.subject_id").
		Group("quizzes.subject_id, subjects.name").
		Scan(&stats).Error
	return stats, err
}

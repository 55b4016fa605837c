package repository

import (
	"mcquiz_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// SubjectFilter narrows subject listings.
type SubjectFilter struct {
	Level      string
	Search     string
	ActiveOnly bool
	Levels     []string // restrict to the caller's accessible levels
	Sort       string   // "field:asc|desc"
	Page       int
	Limit      int
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}

func (r *SubjectRepository) FindByNameAndLevel(name, level string) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.Where("name = ? AND level = ?", name, level).First(&subject).Error
	return &subject, err
}

func (r *SubjectRepository) List(f SubjectFilter) ([]model.Subject, int64, error) {
	q := r.DB.Model(&model.Subject{})

	if f.Level != "" {
		q = q.Where("level = ?", f.Level)
	}
	if len(f.Levels) > 0 {
		q = q.Where("level IN ?", f.Levels)
	}
	if f.Search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+lowered(f.Search)+"%")
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(f.Sort))
	if f.Limit > 0 {
		q = q.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}

	var subjects []model.Subject
	err := q.Find(&subjects).Error
	return subjects, total, err
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

// Delete removes the row outright. A soft delete would leave the dead
// row holding the (name, level) unique index and block re-creation.
func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Subject{}, id).Error
}

// LevelStat is one row of the per-level rollup.
type LevelStat struct {
	Level        string `json:"level"`
	SubjectCount int64  `json:"subjectCount"`
	QuizCount    int64  `json:"quizCount"`
}

func (r *SubjectRepository) StatsByLevel() ([]LevelStat, error) {
	var stats []LevelStat
	err := r.DB.Model(&model.Subject{}).
		Select("level, COUNT(*) as subject_count, COALESCE(SUM(quiz_count),0) as quiz_count").
		Group("level").
		Scan(&stats).Error
	return stats, err
}

func (r *SubjectRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Subject{}).Count(&count).Error
	return count, err
}

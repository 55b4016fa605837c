package service

import (
	"errors"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"

	"gorm.io/gorm"
)

type SubjectService struct {
	SubjectRepo *repository.SubjectRepository
}

func NewSubjectService(subjectRepo *repository.SubjectRepository) *SubjectService {
	return &SubjectService{SubjectRepo: subjectRepo}
}

type SubjectInput struct {
	Name        string
	Level       string
	Description string
	IsActive    *bool
}

func (s *SubjectService) Create(in SubjectInput, adminID uint) (*model.Subject, error) {
	if in.Name == "" {
		return nil, util.Validationf("subject name is required")
	}
	if !model.ValidSubjectLevel(in.Level) {
		return nil, util.Validationf("invalid subject level")
	}

	_, err := s.SubjectRepo.FindByNameAndLevel(in.Name, in.Level)
	if err == nil {
		return nil, util.ErrSubjectExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := &model.Subject{
		Name:        in.Name,
		Level:       in.Level,
		Description: in.Description,
		IsActive:    true,
		CreatedBy:   adminID,
	}
	if in.IsActive != nil {
		subject.IsActive = *in.IsActive
	}

	if err := s.SubjectRepo.Create(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

func (s *SubjectService) Get(id uint) (*model.Subject, error) {
	subject, err := s.SubjectRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubjectNotFound
	}
	return subject, err
}

func (s *SubjectService) List(f repository.SubjectFilter) ([]model.Subject, int64, error) {
	return s.SubjectRepo.List(f)
}

func (s *SubjectService) Update(id uint, in SubjectInput) (*model.Subject, error) {
	subject, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name := subject.Name
	level := subject.Level
	if in.Name != "" {
		name = in.Name
	}
	if in.Level != "" {
		if !model.ValidSubjectLevel(in.Level) {
			return nil, util.Validationf("invalid subject level")
		}
		level = in.Level
	}

	// Renames must not collide with another (name, level) pair.
	if name != subject.Name || level != subject.Level {
		existing, err := s.SubjectRepo.FindByNameAndLevel(name, level)
		if err == nil && existing.ID != subject.ID {
			return nil, util.ErrSubjectExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	subject.Name = name
	subject.Level = level
	if in.Description != "" {
		subject.Description = in.Description
	}
	if in.IsActive != nil {
		subject.IsActive = *in.IsActive
	}

	if err := s.SubjectRepo.Update(subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// Delete refuses while quizzes still reference the subject; the count is
// the transactionally maintained denormalization, not a live COUNT(*).
func (s *SubjectService) Delete(id uint) error {
	subject, err := s.Get(id)
	if err != nil {
		return err
	}

	if subject.QuizCount > 0 {
		return util.ErrSubjectNotEmpty
	}

	return s.SubjectRepo.Delete(subject.ID)
}

func (s *SubjectService) StatsByLevel() ([]repository.LevelStat, error) {
	return s.SubjectRepo.StatsByLevel()
}

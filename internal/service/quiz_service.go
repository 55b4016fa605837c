package service

import (
	"errors"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	SubjectRepo *repository.SubjectRepository
	DB          *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, subjectRepo *repository.SubjectRepository, db *gorm.DB) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		SubjectRepo: subjectRepo,
		DB:          db,
	}
}

type QuestionInput struct {
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type QuizInput struct {
	Title             string
	Description       string
	SubjectID         uint
	TimeLimit         int
	Difficulty        string
	PassingScore      *int
	SubscriptionLevel string
	IsActive          *bool
	Questions         []QuestionInput
}

// validateQuestions reports the 1-based number of the first bad question.
func validateQuestions(questions []QuestionInput) error {
	if len(questions) == 0 {
		return util.Validationf("a quiz needs at least one question")
	}
	for i, q := range questions {
		n := i + 1
		if q.Text == "" {
			return util.Validationf("question %d: text is required", n)
		}
		if len(q.Options) < 2 {
			return util.Validationf("question %d: at least two options are required", n)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return util.Validationf("question %d: correctAnswer must index an option", n)
		}
	}
	return nil
}

func buildQuestions(quizID uint, inputs []QuestionInput) []model.Question {
	questions := make([]model.Question, 0, len(inputs))
	for i, in := range inputs {
		questions = append(questions, model.Question{
			QuizID:        quizID,
			Text:          in.Text,
			Options:       model.StringArray(in.Options),
			CorrectAnswer: in.CorrectAnswer,
			Explanation:   in.Explanation,
			Position:      i,
		})
	}
	return questions
}

// Create inserts the quiz, its questions, and the subject quizCount
// increment in one transaction; any failure rolls all of it back.
func (s *QuizService) Create(in QuizInput, adminID uint) (*model.Quiz, error) {
	if in.Title == "" || in.SubjectID == 0 {
		return nil, util.Validationf("title and subject are required")
	}
	if err := validateQuestions(in.Questions); err != nil {
		return nil, err
	}
	if in.Difficulty != "" && !model.ValidDifficulty(in.Difficulty) {
		return nil, util.Validationf("invalid difficulty")
	}
	if in.PassingScore != nil && (*in.PassingScore < 0 || *in.PassingScore > 100) {
		return nil, util.Validationf("passingScore must be between 0 and 100")
	}

	subject, err := s.SubjectRepo.FindByID(in.SubjectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubjectNotFound
	} else if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:             in.Title,
		Description:       in.Description,
		SubjectID:         subject.ID,
		TimeLimit:         in.TimeLimit,
		Difficulty:        model.DifficultyMedium,
		PassingScore:      60,
		SubscriptionLevel: model.LevelBasic,
		IsActive:          true,
		CreatedBy:         adminID,
	}
	if in.Difficulty != "" {
		quiz.Difficulty = model.QuizDifficulty(in.Difficulty)
	}
	if in.PassingScore != nil {
		quiz.PassingScore = *in.PassingScore
	}
	if in.SubscriptionLevel != "" {
		quiz.SubscriptionLevel = in.SubscriptionLevel
	}
	if in.IsActive != nil {
		quiz.IsActive = *in.IsActive
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		questions := buildQuestions(quiz.ID, in.Questions)
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		quiz.Questions = questions
		return tx.Model(&model.Subject{}).
			Where("id = ?", subject.ID).
			Update("quiz_count", gorm.Expr("quiz_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *QuizService) List(f repository.QuizFilter) ([]model.Quiz, int64, error) {
	return s.QuizRepo.List(f)
}

// Update replaces the question list wholesale when questions are supplied
// and moves the quizCount between subjects when the subject changes, all
// inside one transaction.
func (s *QuizService) Update(id uint, in QuizInput) (*model.Quiz, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Questions != nil {
		if err := validateQuestions(in.Questions); err != nil {
			return nil, err
		}
	}
	if in.Difficulty != "" && !model.ValidDifficulty(in.Difficulty) {
		return nil, util.Validationf("invalid difficulty")
	}
	if in.PassingScore != nil && (*in.PassingScore < 0 || *in.PassingScore > 100) {
		return nil, util.Validationf("passingScore must be between 0 and 100")
	}

	oldSubjectID := quiz.SubjectID
	newSubjectID := oldSubjectID
	if in.SubjectID != 0 && in.SubjectID != oldSubjectID {
		if _, err := s.SubjectRepo.FindByID(in.SubjectID); errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubjectNotFound
		} else if err != nil {
			return nil, err
		}
		newSubjectID = in.SubjectID
	}

	if in.Title != "" {
		quiz.Title = in.Title
	}
	if in.Description != "" {
		quiz.Description = in.Description
	}
	if in.TimeLimit != 0 {
		quiz.TimeLimit = in.TimeLimit
	}
	if in.Difficulty != "" {
		quiz.Difficulty = model.QuizDifficulty(in.Difficulty)
	}
	if in.PassingScore != nil {
		quiz.PassingScore = *in.PassingScore
	}
	if in.SubscriptionLevel != "" {
		quiz.SubscriptionLevel = in.SubscriptionLevel
	}
	if in.IsActive != nil {
		quiz.IsActive = *in.IsActive
	}
	quiz.SubjectID = newSubjectID

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions", "Subject").Save(quiz).Error; err != nil {
			return err
		}

		if in.Questions != nil {
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
				return err
			}
			questions := buildQuestions(quiz.ID, in.Questions)
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
			quiz.Questions = questions
		}

		if newSubjectID != oldSubjectID {
			if err := tx.Model(&model.Subject{}).
				Where("id = ?", oldSubjectID).
				Update("quiz_count", gorm.Expr("quiz_count - ?", 1)).Error; err != nil {
				return err
			}
			if err := tx.Model(&model.Subject{}).
				Where("id = ?", newSubjectID).
				Update("quiz_count", gorm.Expr("quiz_count + ?", 1)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete removes the quiz and decrements its subject's quizCount together.
func (s *QuizService) Delete(id uint) error {
	quiz, err := s.Get(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Quiz{}, quiz.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Subject{}).
			Where("id = ?", quiz.SubjectID).
			Update("quiz_count", gorm.Expr("quiz_count - ?", 1)).Error
	})
}

// QuizStats is the admin rollup across grouping dimensions.
type QuizStats struct {
	Total               int64                        `json:"total"`
	ByDifficulty        []repository.GroupStat       `json:"byDifficulty"`
	BySubscriptionLevel []repository.GroupStat       `json:"bySubscriptionLevel"`
	BySubject           []repository.SubjectQuizStat `json:"bySubject"`
}

func (s *QuizService) Stats() (*QuizStats, error) {
	total, err := s.QuizRepo.Count()
	if err != nil {
		return nil, err
	}
	byDifficulty, err := s.QuizRepo.CountByDifficulty()
	if err != nil {
		return nil, err
	}
	byLevel, err := s.QuizRepo.CountBySubscriptionLevel()
	if err != nil {
		return nil, err
	}
	bySubject, err := s.QuizRepo.CountBySubject()
	if err != nil {
		return nil, err
	}
	return &QuizStats{
		Total:               total,
		ByDifficulty:        byDifficulty,
		BySubscriptionLevel: byLevel,
		BySubject:           bySubject,
	}, nil
}

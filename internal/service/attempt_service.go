package service

import (
	"errors"
	"math"
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptService struct {
	AttemptRepo *repository.AttemptRepository
	QuizRepo    *repository.QuizRepository
	Cfg         *config.Config
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, quizRepo *repository.QuizRepository, cfg *config.Config) *AttemptService {
	return &AttemptService{
		AttemptRepo: attemptRepo,
		QuizRepo:    quizRepo,
		Cfg:         cfg,
	}
}

// SubmittedAnswer addresses a question by id; -1 means unanswered.
type SubmittedAnswer struct {
	QuestionID     uint `json:"questionId"`
	SelectedOption int  `json:"selectedOption"`
}

// QuestionResult is the per-question outcome returned to the caller.
type QuestionResult struct {
	QuestionID     uint   `json:"questionId"`
	Question       string `json:"question"`
	SelectedOption int    `json:"selectedOption"`
	CorrectOption  int    `json:"correctOption"`
	IsCorrect      bool   `json:"isCorrect"`
	Explanation    string `json:"explanation"`
}

// ScoreResult is a scored submission before persistence.
type ScoreResult struct {
	Score          int
	Correct        int
	TotalQuestions int
	Passed         bool
	Results        []QuestionResult
}

// ScoreSubmission grades answers against the quiz's questions. Answers
// referencing unknown question ids are silently skipped. The denominator
// follows the configured policy: the quiz's full question count (default,
// unanswered questions count against the score) or only the answers that
// matched a question.
func ScoreSubmission(quiz *model.Quiz, answers []SubmittedAnswer, policy string) ScoreResult {
	byID := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		byID[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	correct := 0
	matched := 0
	results := make([]QuestionResult, 0, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		matched++

		isCorrect := a.SelectedOption != -1 && a.SelectedOption == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		results = append(results, QuestionResult{
			QuestionID:     q.ID,
			Question:       q.Text,
			SelectedOption: a.SelectedOption,
			CorrectOption:  q.CorrectAnswer,
			IsCorrect:      isCorrect,
			Explanation:    q.Explanation,
		})
	}

	total := len(quiz.Questions)
	if policy == config.ScoringAnsweredOnly {
		total = matched
	}

	score := 0
	if total > 0 {
		score = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return ScoreResult{
		Score:          score,
		Correct:        correct,
		TotalQuestions: total,
		Passed:         score >= quiz.PassingScore,
		Results:        results,
	}
}

// Submit scores the answers and persists the attempt in its final state;
// an attempt record is only ever created already-scored.
func (s *AttemptService) Submit(userID, quizID uint, answers []SubmittedAnswer, timeSpent int) (*model.QuizAttempt, *ScoreResult, error) {
	quiz, err := s.QuizRepo.FindActiveByID(quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, nil, err
	}

	if len(answers) == 0 {
		return nil, nil, util.Validationf("answers are required")
	}

	result := ScoreSubmission(quiz, answers, s.Cfg.Quiz.ScoringPolicy)

	attempt := &model.QuizAttempt{
		UserID:    userID,
		QuizID:    quiz.ID,
		Score:     result.Score,
		Passed:    result.Passed,
		TimeSpent: timeSpent,
	}
	for i, r := range result.Results {
		attempt.Answers = append(attempt.Answers, model.AttemptAnswer{
			QuestionID:     r.QuestionID,
			SelectedOption: r.SelectedOption,
			CorrectOption:  r.CorrectOption,
			IsCorrect:      r.IsCorrect,
			Position:       i,
		})
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, nil, err
	}
	attempt.Quiz = quiz
	return attempt, &result, nil
}

func (s *AttemptService) History(userID uint, f repository.AttemptFilter) ([]model.QuizAttempt, int64, error) {
	return s.AttemptRepo.ListByUser(userID, f)
}

// QuizAttempts lists a user's attempts at one quiz with the best score.
func (s *AttemptService) QuizAttempts(userID, quizID uint) ([]model.QuizAttempt, int, error) {
	attempts, err := s.AttemptRepo.ListByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, 0, err
	}
	best := 0
	for _, a := range attempts {
		if a.Score > best {
			best = a.Score
		}
	}
	return attempts, best, nil
}

// Check reports whether the user has attempted the quiz and the latest
// attempt if so.
func (s *AttemptService) Check(userID, quizID uint) (bool, *model.QuizAttempt, error) {
	latest, err := s.AttemptRepo.LatestByUserAndQuiz(userID, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil, nil
	} else if err != nil {
		return false, nil, err
	}
	return true, latest, nil
}

// Detail fetches one attempt, owner-only.
func (s *AttemptService) Detail(userID, attemptID uint) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	} else if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return attempt, nil
}

// AggregateStats is the user's overall attempt rollup.
type AggregateStats struct {
	repository.UserStats
	PassRate     float64                     `json:"passRate"`
	ByDifficulty []repository.DifficultyStat `json:"byDifficulty"`
}

func (s *AttemptService) Stats(userID uint) (*AggregateStats, error) {
	stats, err := s.AttemptRepo.StatsByUser(userID)
	if err != nil {
		return nil, err
	}
	byDifficulty, err := s.AttemptRepo.StatsByDifficulty(userID)
	if err != nil {
		return nil, err
	}

	passRate := 0.0
	if stats.TotalAttempts > 0 {
		passRate = math.Round(float64(stats.PassedCount)/float64(stats.TotalAttempts)*10000) / 100
	}

	return &AggregateStats{
		UserStats:    *stats,
		PassRate:     passRate,
		ByDifficulty: byDifficulty,
	}, nil
}

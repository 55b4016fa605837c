package service

import (
	"mcquiz_backend/internal/config"
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveQuestionQuiz() *model.Quiz {
	quiz := &model.Quiz{
		Title:        "Algebra basics",
		PassingScore: 60,
	}
	answers := []int{0, 1, 2, 0, 0}
	for i, correct := range answers {
		quiz.Questions = append(quiz.Questions, model.Question{
			BaseModel:     model.BaseModel{ID: uint(i + 1)},
			Text:          "q",
			Options:       model.StringArray{"a", "b", "c"},
			CorrectAnswer: correct,
			Position:      i,
		})
	}
	return quiz
}

func TestScoreSubmissionAllCorrectButOne(t *testing.T) {
	quiz := fiveQuestionQuiz()
	submitted := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: 0},
		{QuestionID: 2, SelectedOption: 1},
		{QuestionID: 3, SelectedOption: 2},
		{QuestionID: 4, SelectedOption: 0},
		{QuestionID: 5, SelectedOption: 1},
	}

	result := ScoreSubmission(quiz, submitted, config.ScoringAllQuestions)

	assert.Equal(t, 80, result.Score)
	assert.Equal(t, 4, result.Correct)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.True(t, result.Passed)
	assert.Len(t, result.Results, 5)
	assert.False(t, result.Results[4].IsCorrect)
}

func TestScoreSubmissionUnansweredCountsAgainstScore(t *testing.T) {
	quiz := fiveQuestionQuiz()
	submitted := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: 0},
		{QuestionID: 2, SelectedOption: 1},
		{QuestionID: 3, SelectedOption: -1},
	}

	result := ScoreSubmission(quiz, submitted, config.ScoringAllQuestions)

	// 2 correct out of the quiz's 5 questions.
	assert.Equal(t, 40, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.False(t, result.Passed)
}

func TestScoreSubmissionAnsweredOnlyPolicy(t *testing.T) {
	quiz := fiveQuestionQuiz()
	submitted := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: 0},
		{QuestionID: 2, SelectedOption: 1},
		{QuestionID: 3, SelectedOption: 0},
	}

	result := ScoreSubmission(quiz, submitted, config.ScoringAnsweredOnly)

	// 2 of the 3 matched answers; the other two questions don't count.
	assert.Equal(t, 67, result.Score)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.True(t, result.Passed)
}

func TestScoreSubmissionSkipsUnknownQuestionIDs(t *testing.T) {
	quiz := fiveQuestionQuiz()
	submitted := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: 0},
		{QuestionID: 999, SelectedOption: 0},
	}

	result := ScoreSubmission(quiz, submitted, config.ScoringAllQuestions)

	assert.Len(t, result.Results, 1)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 20, result.Score)
}

func TestScoreSubmissionMinusOneNeverCorrect(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 60}
	// A correct answer of -1 could otherwise match an unanswered -1.
	quiz.Questions = []model.Question{{
		BaseModel:     model.BaseModel{ID: 1},
		CorrectAnswer: -1,
	}}

	result := ScoreSubmission(quiz, []SubmittedAnswer{{QuestionID: 1, SelectedOption: -1}}, config.ScoringAllQuestions)

	assert.Equal(t, 0, result.Correct)
	assert.False(t, result.Results[0].IsCorrect)
}

func TestScoreSubmissionEmptyQuizScoresZero(t *testing.T) {
	quiz := &model.Quiz{PassingScore: 0}

	result := ScoreSubmission(quiz, nil, config.ScoringAllQuestions)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
	// passingScore 0 means an empty submission still passes.
	assert.True(t, result.Passed)
}

func TestScoreSubmissionExactPassBoundary(t *testing.T) {
	quiz := fiveQuestionQuiz()
	quiz.PassingScore = 60
	submitted := []SubmittedAnswer{
		{QuestionID: 1, SelectedOption: 0},
		{QuestionID: 2, SelectedOption: 1},
		{QuestionID: 3, SelectedOption: 2},
		{QuestionID: 4, SelectedOption: 1},
		{QuestionID: 5, SelectedOption: 1},
	}

	result := ScoreSubmission(quiz, submitted, config.ScoringAllQuestions)

	assert.Equal(t, 60, result.Score)
	assert.True(t, result.Passed)
}

func newAttemptFixture(t *testing.T) (*AttemptService, *model.Quiz) {
	db := newTestDB(t)
	subjectRepo := repository.NewSubjectRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	subject, err := NewSubjectService(subjectRepo).Create(SubjectInput{Name: "Biology", Level: model.LevelAL}, 1)
	require.NoError(t, err)

	quiz, err := NewQuizService(quizRepo, subjectRepo, db).Create(QuizInput{
		Title:     "Cells",
		SubjectID: subject.ID,
		Questions: []QuestionInput{
			{Text: "Powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria"}, CorrectAnswer: 1},
			{Text: "Basic unit of life?", Options: []string{"Cell", "Atom"}, CorrectAnswer: 0},
		},
	}, 1)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Quiz.ScoringPolicy = config.ScoringAllQuestions

	return NewAttemptService(repository.NewAttemptRepository(db), quizRepo, cfg), quiz
}

func TestSubmitPersistsScoredAttempt(t *testing.T) {
	svc, quiz := newAttemptFixture(t)

	attempt, result, err := svc.Submit(9, quiz.ID, []SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, SelectedOption: 1},
		{QuestionID: quiz.Questions[1].ID, SelectedOption: 1},
	}, 120)
	require.NoError(t, err)

	assert.Equal(t, 50, result.Score)
	assert.Equal(t, attempt.Score, result.Score)
	assert.False(t, attempt.Passed)
	assert.Equal(t, 120, attempt.TimeSpent)
	require.Len(t, attempt.Answers, 2)
	assert.True(t, attempt.Answers[0].IsCorrect)
	assert.Equal(t, 1, attempt.Answers[1].Position)

	stored, err := svc.Detail(9, attempt.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 2)
}

func TestSubmitRejectsEmptyAnswersAndUnknownQuiz(t *testing.T) {
	svc, quiz := newAttemptFixture(t)

	_, _, err := svc.Submit(9, quiz.ID, nil, 0)
	assert.True(t, util.IsValidation(err))

	_, _, err = svc.Submit(9, 999, []SubmittedAnswer{{QuestionID: 1, SelectedOption: 0}}, 0)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestAttemptDetailOwnerOnly(t *testing.T) {
	svc, quiz := newAttemptFixture(t)

	attempt, _, err := svc.Submit(9, quiz.ID, []SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, SelectedOption: 0},
	}, 30)
	require.NoError(t, err)

	_, err = svc.Detail(10, attempt.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	_, err = svc.Detail(9, 999)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestCheckAndQuizAttempts(t *testing.T) {
	svc, quiz := newAttemptFixture(t)

	attempted, _, err := svc.Check(9, quiz.ID)
	require.NoError(t, err)
	assert.False(t, attempted)

	answers := []SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, SelectedOption: 1},
		{QuestionID: quiz.Questions[1].ID, SelectedOption: 0},
	}
	_, _, err = svc.Submit(9, quiz.ID, answers[:1], 10)
	require.NoError(t, err)
	_, _, err = svc.Submit(9, quiz.ID, answers, 20)
	require.NoError(t, err)

	attempted, latest, err := svc.Check(9, quiz.ID)
	require.NoError(t, err)
	assert.True(t, attempted)
	require.NotNil(t, latest)
	assert.Equal(t, 100, latest.Score)

	attempts, best, err := svc.QuizAttempts(9, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
	assert.Equal(t, 100, best)
}

package service

import (
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizFixture(t *testing.T) (*QuizService, *SubjectService, *model.Subject, *gorm.DB) {
	db := newTestDB(t)
	subjectRepo := repository.NewSubjectRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	subjectSvc := NewSubjectService(subjectRepo)
	quizSvc := NewQuizService(quizRepo, subjectRepo, db)

	subject, err := subjectSvc.Create(SubjectInput{Name: "Mathematics", Level: model.LevelSchoolPro}, 1)
	require.NoError(t, err)

	return quizSvc, subjectSvc, subject, db
}

func validQuizInput(subjectID uint) QuizInput {
	return QuizInput{
		Title:     "Fractions",
		SubjectID: subjectID,
		Questions: []QuestionInput{
			{Text: "1/2 + 1/2?", Options: []string{"1", "2"}, CorrectAnswer: 0},
			{Text: "1/4 * 4?", Options: []string{"1", "4"}, CorrectAnswer: 0},
		},
	}
}

func subjectQuizCount(t *testing.T, db *gorm.DB, id uint) int {
	var subject model.Subject
	require.NoError(t, db.First(&subject, id).Error)
	return subject.QuizCount
}

func TestQuizCreateIncrementsSubjectCount(t *testing.T) {
	quizSvc, _, subject, db := newQuizFixture(t)

	quiz, err := quizSvc.Create(validQuizInput(subject.ID), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, subjectQuizCount(t, db, subject.ID))
	assert.Len(t, quiz.Questions, 2)
	assert.Equal(t, model.DifficultyMedium, quiz.Difficulty)
	assert.Equal(t, 60, quiz.PassingScore)
}

func TestQuizCreateRejectsBadQuestions(t *testing.T) {
	quizSvc, _, subject, db := newQuizFixture(t)

	in := validQuizInput(subject.ID)
	in.Questions[1].CorrectAnswer = 5
	_, err := quizSvc.Create(in, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 2")

	// Validation failure must not touch the count.
	assert.Equal(t, 0, subjectQuizCount(t, db, subject.ID))

	in = validQuizInput(subject.ID)
	in.Questions = nil
	_, err = quizSvc.Create(in, 1)
	require.Error(t, err)
}

func TestQuizCreateRollsBackOnFailedQuestionInsert(t *testing.T) {
	quizSvc, _, subject, db := newQuizFixture(t)

	// Make the questions insert fail after the quiz row is written.
	require.NoError(t, db.Migrator().DropTable(&model.Question{}))

	_, err := quizSvc.Create(validQuizInput(subject.ID), 1)
	require.Error(t, err)

	// The quiz insert and the count bump roll back together.
	assert.Equal(t, 0, subjectQuizCount(t, db, subject.ID))
	var quizRows int64
	require.NoError(t, db.Model(&model.Quiz{}).Count(&quizRows).Error)
	assert.Zero(t, quizRows)
}

func TestQuizCreateUnknownSubject(t *testing.T) {
	quizSvc, _, _, _ := newQuizFixture(t)

	_, err := quizSvc.Create(validQuizInput(999), 1)
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestQuizDeleteDecrementsSubjectCount(t *testing.T) {
	quizSvc, _, subject, db := newQuizFixture(t)

	quiz, err := quizSvc.Create(validQuizInput(subject.ID), 1)
	require.NoError(t, err)
	require.Equal(t, 1, subjectQuizCount(t, db, subject.ID))

	require.NoError(t, quizSvc.Delete(quiz.ID))
	assert.Equal(t, 0, subjectQuizCount(t, db, subject.ID))

	var questionCount int64
	require.NoError(t, db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount).Error)
	assert.Zero(t, questionCount)
}

func TestQuizUpdateMovesCountBetweenSubjects(t *testing.T) {
	quizSvc, subjectSvc, subject, db := newQuizFixture(t)

	other, err := subjectSvc.Create(SubjectInput{Name: "Science", Level: model.LevelSchoolPro}, 1)
	require.NoError(t, err)

	quiz, err := quizSvc.Create(validQuizInput(subject.ID), 1)
	require.NoError(t, err)

	_, err = quizSvc.Update(quiz.ID, QuizInput{SubjectID: other.ID})
	require.NoError(t, err)

	assert.Equal(t, 0, subjectQuizCount(t, db, subject.ID))
	assert.Equal(t, 1, subjectQuizCount(t, db, other.ID))
}

func TestQuizUpdateReplacesQuestionsWholesale(t *testing.T) {
	quizSvc, _, subject, db := newQuizFixture(t)

	quiz, err := quizSvc.Create(validQuizInput(subject.ID), 1)
	require.NoError(t, err)

	updated, err := quizSvc.Update(quiz.ID, QuizInput{
		Questions: []QuestionInput{
			{Text: "2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: 1},
		},
	})
	require.NoError(t, err)
	assert.Len(t, updated.Questions, 1)

	var count int64
	require.NoError(t, db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Same subject, count unchanged.
	assert.Equal(t, 1, subjectQuizCount(t, db, subject.ID))
}

func TestSubjectDeleteBlockedWhileQuizzesExist(t *testing.T) {
	quizSvc, subjectSvc, subject, _ := newQuizFixture(t)

	quiz, err := quizSvc.Create(validQuizInput(subject.ID), 1)
	require.NoError(t, err)

	assert.ErrorIs(t, subjectSvc.Delete(subject.ID), util.ErrSubjectNotEmpty)

	require.NoError(t, quizSvc.Delete(quiz.ID))
	assert.NoError(t, subjectSvc.Delete(subject.ID))
}

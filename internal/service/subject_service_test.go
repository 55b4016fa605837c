package service

import (
	"mcquiz_backend/internal/model"
	"mcquiz_backend/internal/repository"
	"mcquiz_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubjectService(t *testing.T) *SubjectService {
	return NewSubjectService(repository.NewSubjectRepository(newTestDB(t)))
}

func TestSubjectCreateRejectsDuplicateNameAndLevel(t *testing.T) {
	svc := newSubjectService(t)

	_, err := svc.Create(SubjectInput{Name: "Physics", Level: model.LevelAL}, 1)
	require.NoError(t, err)

	_, err = svc.Create(SubjectInput{Name: "Physics", Level: model.LevelAL}, 1)
	assert.ErrorIs(t, err, util.ErrSubjectExists)

	// Same name at a different level is a different subject.
	_, err = svc.Create(SubjectInput{Name: "Physics", Level: model.LevelOLPro}, 1)
	assert.NoError(t, err)
}

func TestSubjectCreateValidatesInput(t *testing.T) {
	svc := newSubjectService(t)

	_, err := svc.Create(SubjectInput{Level: model.LevelSchoolPro}, 1)
	assert.True(t, util.IsValidation(err))

	_, err = svc.Create(SubjectInput{Name: "Chemistry", Level: "Postgraduate"}, 1)
	assert.True(t, util.IsValidation(err))
}

func TestSubjectUpdateRenameCollision(t *testing.T) {
	svc := newSubjectService(t)

	first, err := svc.Create(SubjectInput{Name: "History", Level: model.LevelSchoolPro}, 1)
	require.NoError(t, err)
	_, err = svc.Create(SubjectInput{Name: "Geography", Level: model.LevelSchoolPro}, 1)
	require.NoError(t, err)

	_, err = svc.Update(first.ID, SubjectInput{Name: "Geography"})
	assert.ErrorIs(t, err, util.ErrSubjectExists)

	// Updating without renaming is fine.
	updated, err := svc.Update(first.ID, SubjectInput{Description: "World history"})
	require.NoError(t, err)
	assert.Equal(t, "World history", updated.Description)
}

func TestSubjectRecreateAfterDelete(t *testing.T) {
	svc := newSubjectService(t)

	subject, err := svc.Create(SubjectInput{Name: "Physics", Level: model.LevelAL}, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(subject.ID))

	// The (name, level) slot frees up once the subject is gone.
	recreated, err := svc.Create(SubjectInput{Name: "Physics", Level: model.LevelAL}, 1)
	require.NoError(t, err)
	assert.Zero(t, recreated.QuizCount)
}

func TestSubjectGetUnknown(t *testing.T) {
	svc := newSubjectService(t)

	_, err := svc.Get(42)
	assert.ErrorIs(t, err, util.ErrSubjectNotFound)
}

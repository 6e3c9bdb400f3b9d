package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

func setupSolutionTest(t *testing.T) (*SolutionService, *model.Question) {
	t.Helper()
	questionRepo := newFakeQuestionRepo()
	question := &model.Question{ID: "q-1", AssignmentID: "a-1", Title: "Two Sum", Description: "d"}
	require.NoError(t, questionRepo.Create(context.Background(), question))

	svc := NewSolutionService(newFakeSolutionRepo(), questionRepo, newFakeCommentRepo(), nil)
	return svc, question
}

func TestCreateSolution(t *testing.T) {
	svc, question := setupSolutionTest(t)

	solution, err := svc.Create(context.Background(), "student-1", CreateSolutionRequest{
		QuestionID: question.ID,
		Code:       "print(sum(map(int, input().split())))",
		Language:   model.LangPython,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SolutionPending, solution.Status)
	assert.Equal(t, "student-1", solution.SubmitterID)
	assert.Equal(t, 0, solution.Likes)
}

func TestCreateSolutionInvalidLanguage(t *testing.T) {
	svc, question := setupSolutionTest(t)

	_, err := svc.Create(context.Background(), "student-1", CreateSolutionRequest{
		QuestionID: question.ID,
		Code:       "BEGIN END.",
		Language:   "pascal",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateSolutionMissingQuestion(t *testing.T) {
	svc, _ := setupSolutionTest(t)

	_, err := svc.Create(context.Background(), "student-1", CreateSolutionRequest{
		QuestionID: "missing-question",
		Code:       "x",
		Language:   model.LangPython,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSolutionComments(t *testing.T) {
	svc, question := setupSolutionTest(t)
	ctx := context.Background()

	solution, err := svc.Create(ctx, "student-1", CreateSolutionRequest{
		QuestionID: question.ID,
		Code:       "x",
		Language:   model.LangCpp,
	})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, "student-2", solution.ID, CreateCommentRequest{Content: "Nice use of hashing"})
	require.NoError(t, err)
	require.NotNil(t, comment.SolutionID)
	assert.Equal(t, solution.ID, *comment.SolutionID)
	assert.Nil(t, comment.NoteID)

	comments, err := svc.ListComments(ctx, solution.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestListSolutionsByQuestion(t *testing.T) {
	svc, question := setupSolutionTest(t)
	ctx := context.Background()

	for _, lang := range []model.SolutionLanguage{model.LangPython, model.LangJava} {
		_, err := svc.Create(ctx, "student-1", CreateSolutionRequest{
			QuestionID: question.ID,
			Code:       "x",
			Language:   lang,
		})
		require.NoError(t, err)
	}

	solutions, err := svc.ListByQuestion(ctx, question.ID)
	require.NoError(t, err)
	assert.Len(t, solutions, 2)

	_, err = svc.ListByQuestion(ctx, "missing-question")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

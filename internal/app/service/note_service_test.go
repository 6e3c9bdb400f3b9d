package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
)

func setupNoteTest(t *testing.T) (*NoteService, *model.Topic) {
	t.Helper()
	topicRepo := newFakeTopicRepo()
	topic := &model.Topic{ID: "topic-1", CourseID: "course-1", Title: "Recursion"}
	require.NoError(t, topicRepo.Create(context.Background(), topic))

	svc := NewNoteService(newFakeNoteRepo(), topicRepo, newFakeCommentRepo(), nil)
	return svc, topic
}

func TestCreateNote(t *testing.T) {
	svc, topic := setupNoteTest(t)

	note, err := svc.Create(context.Background(), "student-1", CreateNoteRequest{
		TopicID:      topic.ID,
		Title:        "Base cases",
		Content:      "Always write the base case first.",
		ResourceType: model.ResourceNotes,
	})
	require.NoError(t, err)
	assert.Equal(t, "student-1", note.AuthorID)
	assert.Equal(t, 0, note.LikesCount)
}

func TestCreateNoteValidation(t *testing.T) {
	svc, topic := setupNoteTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "student-1", CreateNoteRequest{TopicID: topic.ID, Title: "no content"})
	assert.ErrorIs(t, err, common.ErrBadRequest)

	_, err = svc.Create(ctx, "student-1", CreateNoteRequest{
		TopicID:      topic.ID,
		Title:        "t",
		Content:      "c",
		ResourceType: "video",
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateNoteMissingTopic(t *testing.T) {
	svc, _ := setupNoteTest(t)

	_, err := svc.Create(context.Background(), "student-1", CreateNoteRequest{
		TopicID: "missing-topic",
		Title:   "t",
		Content: "c",
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestNoteComments(t *testing.T) {
	svc, topic := setupNoteTest(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, "student-1", CreateNoteRequest{
		TopicID: topic.ID,
		Title:   "Base cases",
		Content: "c",
	})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, "student-2", note.ID, CreateCommentRequest{Content: "Very helpful!"})
	require.NoError(t, err)
	require.NotNil(t, comment.NoteID)
	assert.Equal(t, note.ID, *comment.NoteID)
	assert.Nil(t, comment.SolutionID)

	comments, err := svc.ListComments(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Very helpful!", comments[0].Content)

	_, err = svc.AddComment(ctx, "student-2", note.ID, CreateCommentRequest{})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestCommentOnMissingNote(t *testing.T) {
	svc, _ := setupNoteTest(t)

	_, err := svc.AddComment(context.Background(), "student-1", "missing-note", CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

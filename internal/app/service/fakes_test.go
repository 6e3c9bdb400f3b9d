package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/model"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
)

// In-memory repository fakes. They mirror the postgres error contract
// (common.ErrNotFound, common.ErrConflict) so the services under test see
// the same behavior either way.

type fakeUserRepo struct {
	users map[string]*model.User // by ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return fmt.Errorf("user with given username or email already exists: %w", common.ErrConflict)
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeCourseRepo struct {
	courses     map[string]*model.Course
	enrollments map[string]bool // userID + "/" + courseID
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:     make(map[string]*model.Course),
		enrollments: make(map[string]bool),
	}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range r.courses {
		if c.Code == course.Code {
			return fmt.Errorf("course with this code already exists: %w", common.ErrConflict)
		}
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id string) (*model.Course, error) {
	c, ok := r.courses[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourseRepo) FindBySlug(_ context.Context, s string) (*model.Course, error) {
	for _, c := range r.courses {
		if c.Slug == s {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeCourseRepo) List(_ context.Context) ([]model.Course, error) {
	out := make([]model.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCourseRepo) Update(_ context.Context, course *model.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, _ *sql.Tx, id string) error {
	if _, ok := r.courses[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) Enroll(_ context.Context, userID, courseID string) (bool, error) {
	key := userID + "/" + courseID
	if r.enrollments[key] {
		return false, nil
	}
	r.enrollments[key] = true
	return true, nil
}

func (r *fakeCourseRepo) IsEnrolled(_ context.Context, userID, courseID string) (bool, error) {
	return r.enrollments[userID+"/"+courseID], nil
}

func (r *fakeCourseRepo) ClearEnrollments(_ context.Context, _ *sql.Tx, courseID string) error {
	for key := range r.enrollments {
		if strings.HasSuffix(key, "/"+courseID) {
			delete(r.enrollments, key)
		}
	}
	return nil
}

type fakeTopicRepo struct {
	topics map[string]*model.Topic
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: make(map[string]*model.Topic)}
}

func (r *fakeTopicRepo) Create(_ context.Context, topic *model.Topic) error {
	cp := *topic
	r.topics[topic.ID] = &cp
	return nil
}

func (r *fakeTopicRepo) FindByID(_ context.Context, id string) (*model.Topic, error) {
	t, ok := r.topics[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTopicRepo) ListByCourseID(_ context.Context, courseID string) ([]model.Topic, error) {
	var out []model.Topic
	for _, t := range r.topics {
		if t.CourseID == courseID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTopicRepo) Update(_ context.Context, topic *model.Topic) error {
	if _, ok := r.topics[topic.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *topic
	r.topics[topic.ID] = &cp
	return nil
}

func (r *fakeTopicRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.topics[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.topics, id)
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[string]*model.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) FindByID(_ context.Context, id string) (*model.Assignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAssignmentRepo) ListByCourseID(_ context.Context, courseID string) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range r.assignments {
		if a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	if _, ok := r.assignments[a.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.assignments[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.assignments, id)
	return nil
}

type fakeQuestionRepo struct {
	questions map[string]*model.Question
	testcases map[string][]model.Testcase // by question ID
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[string]*model.Question),
		testcases: make(map[string][]model.Testcase),
	}
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *model.Question) error {
	cp := *q
	r.questions[q.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) FindByID(_ context.Context, id string) (*model.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionRepo) ListByAssignmentID(_ context.Context, assignmentID string) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.questions {
		if q.AssignmentID == assignmentID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *model.Question) error {
	if _, ok := r.questions[q.ID]; !ok {
		return common.ErrNotFound
	}
	cp := *q
	r.questions[q.ID] = &cp
	return nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.questions[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) AddTestcase(_ context.Context, tc *model.Testcase) error {
	r.testcases[tc.QuestionID] = append(r.testcases[tc.QuestionID], *tc)
	return nil
}

func (r *fakeQuestionRepo) ListTestcases(_ context.Context, questionID string, includeHidden bool) ([]model.Testcase, error) {
	var out []model.Testcase
	for _, tc := range r.testcases[questionID] {
		if tc.IsHidden && !includeHidden {
			continue
		}
		out = append(out, tc)
	}
	return out, nil
}

type fakeNoteRepo struct {
	notes map[string]*model.StudyNote
	likes map[string]bool // userID + "/" + noteID
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{
		notes: make(map[string]*model.StudyNote),
		likes: make(map[string]bool),
	}
}

func (r *fakeNoteRepo) Create(_ context.Context, n *model.StudyNote) error {
	cp := *n
	r.notes[n.ID] = &cp
	return nil
}

func (r *fakeNoteRepo) FindByID(_ context.Context, id string) (*model.StudyNote, error) {
	n, ok := r.notes[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNoteRepo) ListByTopicID(_ context.Context, topicID string) ([]model.StudyNote, error) {
	var out []model.StudyNote
	for _, n := range r.notes {
		if n.TopicID == topicID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, _ *sql.Tx, id string) error {
	if _, ok := r.notes[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *fakeNoteRepo) InsertLike(_ context.Context, _ *sql.Tx, userID, noteID string) (bool, error) {
	key := userID + "/" + noteID
	if r.likes[key] {
		return false, nil
	}
	r.likes[key] = true
	return true, nil
}

func (r *fakeNoteRepo) IncrementLikes(_ context.Context, _ *sql.Tx, noteID string) (int, error) {
	n, ok := r.notes[noteID]
	if !ok {
		return 0, common.ErrNotFound
	}
	n.LikesCount++
	return n.LikesCount, nil
}

func (r *fakeNoteRepo) ClearLikes(_ context.Context, _ *sql.Tx, noteID string) error {
	for key := range r.likes {
		if strings.HasSuffix(key, "/"+noteID) {
			delete(r.likes, key)
		}
	}
	return nil
}

type fakeSolutionRepo struct {
	solutions map[string]*model.Solution
	likes     map[string]bool
}

func newFakeSolutionRepo() *fakeSolutionRepo {
	return &fakeSolutionRepo{
		solutions: make(map[string]*model.Solution),
		likes:     make(map[string]bool),
	}
}

func (r *fakeSolutionRepo) Create(_ context.Context, s *model.Solution) error {
	cp := *s
	r.solutions[s.ID] = &cp
	return nil
}

func (r *fakeSolutionRepo) FindByID(_ context.Context, id string) (*model.Solution, error) {
	s, ok := r.solutions[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSolutionRepo) ListByQuestionID(_ context.Context, questionID string) ([]model.Solution, error) {
	var out []model.Solution
	for _, s := range r.solutions {
		if s.QuestionID == questionID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSolutionRepo) Delete(_ context.Context, _ *sql.Tx, id string) error {
	if _, ok := r.solutions[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.solutions, id)
	return nil
}

func (r *fakeSolutionRepo) InsertLike(_ context.Context, _ *sql.Tx, userID, solutionID string) (bool, error) {
	key := userID + "/" + solutionID
	if r.likes[key] {
		return false, nil
	}
	r.likes[key] = true
	return true, nil
}

func (r *fakeSolutionRepo) IncrementLikes(_ context.Context, _ *sql.Tx, solutionID string) (int, error) {
	s, ok := r.solutions[solutionID]
	if !ok {
		return 0, common.ErrNotFound
	}
	s.Likes++
	return s.Likes, nil
}

func (r *fakeSolutionRepo) ClearLikes(_ context.Context, _ *sql.Tx, solutionID string) error {
	for key := range r.likes {
		if strings.HasSuffix(key, "/"+solutionID) {
			delete(r.likes, key)
		}
	}
	return nil
}

type fakeCommentRepo struct {
	comments []model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Create(_ context.Context, c *model.Comment) error {
	r.comments = append(r.comments, *c)
	return nil
}

func (r *fakeCommentRepo) ListByNoteID(_ context.Context, noteID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.comments {
		if c.NoteID != nil && *c.NoteID == noteID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) ListBySolutionID(_ context.Context, solutionID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range r.comments {
		if c.SolutionID != nil && *c.SolutionID == solutionID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Compile-time checks that the fakes satisfy the repository contracts.
var (
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
	_ repository.CourseRepository     = (*fakeCourseRepo)(nil)
	_ repository.TopicRepository      = (*fakeTopicRepo)(nil)
	_ repository.AssignmentRepository = (*fakeAssignmentRepo)(nil)
	_ repository.QuestionRepository   = (*fakeQuestionRepo)(nil)
	_ repository.NoteRepository       = (*fakeNoteRepo)(nil)
	_ repository.SolutionRepository   = (*fakeSolutionRepo)(nil)
	_ repository.CommentRepository    = (*fakeCommentRepo)(nil)
)

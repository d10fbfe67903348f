package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
)

// testLogger discards output; the tests assert behaviour, not log lines.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockQuestionRepo is an in-memory QuestionRepository.
type mockQuestionRepo struct {
	questions  map[int64]*model.Question
	nextID     int64
	searchRows []model.SearchRow
	listOut    []model.QuestionSummary
}

func newMockQuestionRepo() *mockQuestionRepo {
	return &mockQuestionRepo{questions: make(map[int64]*model.Question)}
}

func (m *mockQuestionRepo) Create(_ context.Context, q *model.Question) error {
	m.nextID++
	q.ID = m.nextID
	stored := *q
	m.questions[q.ID] = &stored
	return nil
}

func (m *mockQuestionRepo) GetByID(_ context.Context, id int64) (*model.Question, error) {
	q, ok := m.questions[id]
	if !ok {
		return nil, apperror.NotFound("question", id)
	}
	copied := *q
	return &copied, nil
}

func (m *mockQuestionRepo) List(_ context.Context) ([]model.QuestionSummary, error) {
	return m.listOut, nil
}

func (m *mockQuestionRepo) Update(_ context.Context, q *model.Question) error {
	stored, ok := m.questions[q.ID]
	if !ok {
		return apperror.NotFound("question", q.ID)
	}
	stored.Title = q.Title
	stored.Message = q.Message
	return nil
}

func (m *mockQuestionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.questions[id]; !ok {
		return apperror.NotFound("question", id)
	}
	delete(m.questions, id)
	return nil
}

func (m *mockQuestionRepo) AdjustVote(_ context.Context, id int64, delta int64) error {
	q, ok := m.questions[id]
	if !ok {
		return apperror.NotFound("question", id)
	}
	q.VoteNumber += delta
	return nil
}

func (m *mockQuestionRepo) IncrementViews(_ context.Context, id int64) error {
	q, ok := m.questions[id]
	if !ok {
		return apperror.NotFound("question", id)
	}
	q.ViewNumber++
	return nil
}

func (m *mockQuestionRepo) Search(_ context.Context, _ string) ([]model.SearchRow, error) {
	return m.searchRows, nil
}

// mockAnswerRepo is an in-memory AnswerRepository.
type mockAnswerRepo struct {
	answers map[int64]*model.Answer
	nextID  int64
}

func newMockAnswerRepo() *mockAnswerRepo {
	return &mockAnswerRepo{answers: make(map[int64]*model.Answer)}
}

func (m *mockAnswerRepo) Create(_ context.Context, a *model.Answer) error {
	m.nextID++
	a.ID = m.nextID
	stored := *a
	m.answers[a.ID] = &stored
	return nil
}

func (m *mockAnswerRepo) GetByID(_ context.Context, id int64) (*model.Answer, error) {
	a, ok := m.answers[id]
	if !ok {
		return nil, apperror.NotFound("answer", id)
	}
	copied := *a
	return &copied, nil
}

func (m *mockAnswerRepo) ListByQuestion(_ context.Context, questionID int64) ([]model.Answer, error) {
	var out []model.Answer
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAnswerRepo) Update(_ context.Context, a *model.Answer) error {
	stored, ok := m.answers[a.ID]
	if !ok {
		return apperror.NotFound("answer", a.ID)
	}
	stored.Message = a.Message
	return nil
}

func (m *mockAnswerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.answers[id]; !ok {
		return apperror.NotFound("answer", id)
	}
	delete(m.answers, id)
	return nil
}

func (m *mockAnswerRepo) AdjustVote(_ context.Context, id int64, delta int64) error {
	a, ok := m.answers[id]
	if !ok {
		return apperror.NotFound("answer", id)
	}
	a.VoteNumber += delta
	return nil
}

// mockCommentRepo is an in-memory CommentRepository.
type mockCommentRepo struct {
	comments map[int64]*model.Comment
	nextID   int64
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int64]*model.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, c *model.Comment) error {
	m.nextID++
	c.ID = m.nextID
	stored := *c
	m.comments[c.ID] = &stored
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id int64) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment", id)
	}
	copied := *c
	return &copied, nil
}

func (m *mockCommentRepo) ListForQuestion(_ context.Context, questionID int64) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range m.comments {
		if c.Target.Kind == model.TargetQuestion && c.Target.ID == questionID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *mockCommentRepo) UpdateMessage(_ context.Context, id int64, message string, editedAt time.Time) error {
	c, ok := m.comments[id]
	if !ok {
		return apperror.NotFound("comment", id)
	}
	c.Message = message
	c.SubmissionTime = editedAt
	c.EditedCount++
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.comments[id]; !ok {
		return apperror.NotFound("comment", id)
	}
	delete(m.comments, id)
	return nil
}

// mockTagRepo is an in-memory TagRepository with the same get-or-create and
// idempotent-attach behaviour as the sqlite implementation.
type mockTagRepo struct {
	tags        map[int64]*model.Tag
	byName      map[string]int64
	assignments map[[2]int64]bool
	nextID      int64
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{
		tags:        make(map[int64]*model.Tag),
		byName:      make(map[string]int64),
		assignments: make(map[[2]int64]bool),
	}
}

func (m *mockTagRepo) Create(_ context.Context, t *model.Tag) error {
	if id, ok := m.byName[t.Name]; ok {
		t.ID = id
		return nil
	}
	m.nextID++
	t.ID = m.nextID
	stored := *t
	m.tags[t.ID] = &stored
	m.byName[t.Name] = t.ID
	return nil
}

func (m *mockTagRepo) GetByID(_ context.Context, id int64) (*model.Tag, error) {
	t, ok := m.tags[id]
	if !ok {
		return nil, apperror.NotFound("tag", id)
	}
	copied := *t
	return &copied, nil
}

func (m *mockTagRepo) ListAll(_ context.Context) ([]model.Tag, error) {
	var out []model.Tag
	for _, t := range m.tags {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTagRepo) ListForQuestion(_ context.Context, questionID int64) ([]model.Tag, error) {
	var out []model.Tag
	for key := range m.assignments {
		if key[0] == questionID {
			out = append(out, *m.tags[key[1]])
		}
	}
	return out, nil
}

func (m *mockTagRepo) Attach(_ context.Context, questionID, tagID int64) error {
	m.assignments[[2]int64{questionID, tagID}] = true
	return nil
}

func (m *mockTagRepo) Detach(_ context.Context, questionID, tagID int64) error {
	key := [2]int64{questionID, tagID}
	if !m.assignments[key] {
		return apperror.NotFound("question tag", tagID)
	}
	delete(m.assignments, key)
	return nil
}

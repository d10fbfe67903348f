package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func createTestQuestion(t *testing.T, repo *QuestionRepo, title string) *model.Question {
	t.Helper()

	q := &model.Question{
		Title:          title,
		Message:        "details for " + title,
		SubmissionTime: time.Now().Truncate(time.Second),
	}
	if err := repo.Create(context.Background(), q); err != nil {
		t.Fatalf("creating question %q: %v", title, err)
	}

	return q
}

func createTestAnswer(t *testing.T, repo *AnswerRepo, questionID int64, message string) *model.Answer {
	t.Helper()

	a := &model.Answer{
		QuestionID:     questionID,
		Message:        message,
		SubmissionTime: time.Now().Truncate(time.Second),
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("creating answer: %v", err)
	}

	return a
}

func TestQuestionCreateAssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)

	first := createTestQuestion(t, repo, "first")
	second := createTestQuestion(t, repo, "second")

	if first.ID <= 0 {
		t.Fatalf("first id = %d, want positive", first.ID)
	}
	if second.ID <= first.ID {
		t.Errorf("second id = %d, want greater than %d", second.ID, first.ID)
	}
}

func TestQuestionIDsNotReusedAfterDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	createTestQuestion(t, repo, "keep")
	deleted := createTestQuestion(t, repo, "delete me")

	if err := repo.Delete(ctx, deleted.ID); err != nil {
		t.Fatalf("deleting question: %v", err)
	}

	next := createTestQuestion(t, repo, "after delete")
	if next.ID <= deleted.ID {
		t.Errorf("id after delete = %d, want greater than deleted id %d", next.ID, deleted.ID)
	}
}

func TestQuestionGetByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	created := createTestQuestion(t, repo, "how do slices work?")

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("getting question: %v", err)
	}
	if got.Title != created.Title {
		t.Errorf("title = %q, want %q", got.Title, created.Title)
	}
	if !got.SubmissionTime.Equal(created.SubmissionTime) {
		t.Errorf("submission time = %v, want %v", got.SubmissionTime, created.SubmissionTime)
	}
	if got.ViewNumber != 0 || got.VoteNumber != 0 {
		t.Errorf("fresh question counters = (%d, %d), want (0, 0)", got.ViewNumber, got.VoteNumber)
	}
}

func TestQuestionGetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestQuestionUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)

	err := repo.Update(context.Background(), &model.Question{ID: 42, Title: "x"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestQuestionListIncludesAnswerCount(t *testing.T) {
	db := newTestDB(t)
	questions := NewQuestionRepo(db)
	answers := NewAnswerRepo(db)
	ctx := context.Background()

	answered := createTestQuestion(t, questions, "answered")
	unanswered := createTestQuestion(t, questions, "unanswered")
	createTestAnswer(t, answers, answered.ID, "one")
	createTestAnswer(t, answers, answered.ID, "two")

	summaries, err := questions.List(ctx)
	if err != nil {
		t.Fatalf("listing questions: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d questions, want 2", len(summaries))
	}

	counts := make(map[int64]int64)
	for _, s := range summaries {
		counts[s.ID] = s.AnswerCount
	}
	if counts[answered.ID] != 2 {
		t.Errorf("answer count for answered question = %d, want 2", counts[answered.ID])
	}
	if counts[unanswered.ID] != 0 {
		t.Errorf("answer count for unanswered question = %d, want 0", counts[unanswered.ID])
	}
}

func TestQuestionAdjustVote(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	q := createTestQuestion(t, repo, "votable")

	if err := repo.AdjustVote(ctx, q.ID, 1); err != nil {
		t.Fatalf("upvoting: %v", err)
	}
	if err := repo.AdjustVote(ctx, q.ID, 1); err != nil {
		t.Fatalf("upvoting again: %v", err)
	}
	if err := repo.AdjustVote(ctx, q.ID, -1); err != nil {
		t.Fatalf("downvoting: %v", err)
	}

	got, err := repo.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("getting question: %v", err)
	}
	if got.VoteNumber != 1 {
		t.Errorf("vote number = %d, want 1", got.VoteNumber)
	}
}

func TestQuestionAdjustVoteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)

	err := repo.AdjustVote(context.Background(), 123, 1)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestQuestionVoteNumberCanGoNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	q := createTestQuestion(t, repo, "unpopular")

	if err := repo.AdjustVote(ctx, q.ID, -1); err != nil {
		t.Fatalf("downvoting: %v", err)
	}

	got, err := repo.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("getting question: %v", err)
	}
	if got.VoteNumber != -1 {
		t.Errorf("vote number = %d, want -1", got.VoteNumber)
	}
}

func TestQuestionIncrementViews(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepo(db)
	ctx := context.Background()

	q := createTestQuestion(t, repo, "popular")

	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, q.ID); err != nil {
			t.Fatalf("incrementing views: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, q.ID)
	if err != nil {
		t.Fatalf("getting question: %v", err)
	}
	if got.ViewNumber != 3 {
		t.Errorf("view number = %d, want 3", got.ViewNumber)
	}
}

func TestQuestionDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	questions := NewQuestionRepo(db)
	answers := NewAnswerRepo(db)
	comments := NewCommentRepo(db)
	tags := NewTagRepo(db)
	ctx := context.Background()

	q := createTestQuestion(t, questions, "doomed")
	a := createTestAnswer(t, answers, q.ID, "doomed answer")

	questionComment := &model.Comment{
		Target:         model.QuestionTarget(q.ID),
		Message:        "on the question",
		SubmissionTime: time.Now().Truncate(time.Second),
	}
	if err := comments.Create(ctx, questionComment); err != nil {
		t.Fatalf("creating question comment: %v", err)
	}
	answerComment := &model.Comment{
		Target:         model.AnswerTarget(a.ID),
		Message:        "on the answer",
		SubmissionTime: time.Now().Truncate(time.Second),
	}
	if err := comments.Create(ctx, answerComment); err != nil {
		t.Fatalf("creating answer comment: %v", err)
	}

	tag := &model.Tag{Name: "go"}
	if err := tags.Create(ctx, tag); err != nil {
		t.Fatalf("creating tag: %v", err)
	}
	if err := tags.Attach(ctx, q.ID, tag.ID); err != nil {
		t.Fatalf("attaching tag: %v", err)
	}

	if err := questions.Delete(ctx, q.ID); err != nil {
		t.Fatalf("deleting question: %v", err)
	}

	if _, err := answers.GetByID(ctx, a.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("answer survived cascade, err = %v", err)
	}
	if _, err := comments.GetByID(ctx, questionComment.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("question comment survived cascade, err = %v", err)
	}
	if _, err := comments.GetByID(ctx, answerComment.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("answer comment survived cascade, err = %v", err)
	}

	// The tag itself survives; only the association goes.
	if _, err := tags.GetByID(ctx, tag.ID); err != nil {
		t.Errorf("tag should survive question delete, err = %v", err)
	}
	attached, err := tags.ListForQuestion(ctx, q.ID)
	if err != nil {
		t.Fatalf("listing tags: %v", err)
	}
	if len(attached) != 0 {
		t.Errorf("got %d tag associations after delete, want 0", len(attached))
	}
}

func TestQuestionSearch(t *testing.T) {
	db := newTestDB(t)
	questions := NewQuestionRepo(db)
	answers := NewAnswerRepo(db)
	ctx := context.Background()

	byTitle := createTestQuestion(t, questions, "How to use Goroutines?")
	byAnswer := createTestQuestion(t, questions, "Concurrency primitives")
	noMatch := createTestQuestion(t, questions, "CSS centering")
	createTestAnswer(t, answers, byAnswer.ID, "Start a goroutine with the go keyword.")
	createTestAnswer(t, answers, byAnswer.ID, "Channels are the other half.")

	rows, err := questions.Search(ctx, "GOROUTINE")
	if err != nil {
		t.Fatalf("searching: %v", err)
	}

	seen := make(map[int64]int)
	var matchedAnswers int
	for _, row := range rows {
		seen[row.Question.ID]++
		if row.Answer != nil {
			matchedAnswers++
			if row.Answer.QuestionID != row.Question.ID {
				t.Errorf("answer %d attached to question %d, want %d",
					row.Answer.ID, row.Question.ID, row.Answer.QuestionID)
			}
		}
	}

	if seen[byTitle.ID] != 1 {
		t.Errorf("title match rows = %d, want 1", seen[byTitle.ID])
	}
	if seen[byAnswer.ID] != 1 {
		t.Errorf("answer match rows = %d, want 1", seen[byAnswer.ID])
	}
	if seen[noMatch.ID] != 0 {
		t.Errorf("unmatched question appeared %d times", seen[noMatch.ID])
	}
	if matchedAnswers != 1 {
		t.Errorf("matched answers = %d, want 1", matchedAnswers)
	}
}

func TestQuestionSearchOrdersNewestQuestionFirst(t *testing.T) {
	db := newTestDB(t)
	questions := NewQuestionRepo(db)
	answers := NewAnswerRepo(db)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	older := &model.Question{Title: "goroutine basics", SubmissionTime: base.Add(-time.Hour)}
	newest := &model.Question{Title: "goroutine leaks", SubmissionTime: base}
	middle := &model.Question{Title: "something else", SubmissionTime: base.Add(-time.Minute)}
	for _, q := range []*model.Question{older, newest, middle} {
		if err := questions.Create(ctx, q); err != nil {
			t.Fatalf("creating question %q: %v", q.Title, err)
		}
	}
	// The middle question matches through its answers only.
	earlierAnswer := createTestAnswer(t, answers, middle.ID, "defer close, or the goroutine leaks")
	laterAnswer := createTestAnswer(t, answers, middle.ID, "a goroutine per request")

	rows, err := questions.Search(ctx, "goroutine")
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	// Question submission time descending is the sole ranking key.
	wantQuestions := []int64{newest.ID, middle.ID, middle.ID, older.ID}
	for i, want := range wantQuestions {
		if rows[i].Question.ID != want {
			t.Errorf("row %d question = %d, want %d", i, rows[i].Question.ID, want)
		}
	}
	// Within one question, matching answers come back in id order.
	if rows[1].Answer == nil || rows[1].Answer.ID != earlierAnswer.ID {
		t.Errorf("row 1 answer = %+v, want answer %d", rows[1].Answer, earlierAnswer.ID)
	}
	if rows[2].Answer == nil || rows[2].Answer.ID != laterAnswer.ID {
		t.Errorf("row 2 answer = %+v, want answer %d", rows[2].Answer, laterAnswer.ID)
	}
}

func TestQuestionSearchNoMatches(t *testing.T) {
	db := newTestDB(t)
	questions := NewQuestionRepo(db)

	createTestQuestion(t, questions, "something else entirely")

	rows, err := questions.Search(context.Background(), "zzz-no-such-phrase")
	if err != nil {
		t.Fatalf("searching: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

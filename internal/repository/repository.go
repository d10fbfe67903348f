// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the only implementation; tests
// substitute hand-written mocks.
package repository

import (
	"context"
	"time"

	"github.com/kfodor/askmate/internal/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	// List returns every question annotated with its answer count, newest
	// submission first. Callers re-sort in memory for other orderings.
	List(ctx context.Context) ([]model.QuestionSummary, error)
	Update(ctx context.Context, q *model.Question) error
	// Delete cascades to the question's answers, to comments on the
	// question, and to comments on those answers.
	Delete(ctx context.Context, id int64) error
	// AdjustVote adds delta to vote_number in a single statement. There is
	// no floor: downvotes can push the tally negative.
	AdjustVote(ctx context.Context, id int64, delta int64) error
	IncrementViews(ctx context.Context, id int64) error
	// Search matches phrase case-insensitively against question title,
	// question message, and answer message, producing one row per
	// (question, matching answer) pair, newest question first.
	Search(ctx context.Context, phrase string) ([]model.SearchRow, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, a *model.Answer) error
	GetByID(ctx context.Context, id int64) (*model.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error)
	Update(ctx context.Context, a *model.Answer) error
	Delete(ctx context.Context, id int64) error
	AdjustVote(ctx context.Context, id int64, delta int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	// ListForQuestion returns comments on the question itself and on every
	// one of its answers.
	ListForQuestion(ctx context.Context, questionID int64) ([]model.Comment, error)
	// UpdateMessage replaces the message, stamps editedAt as the new
	// submission time, and bumps edited_count by one, atomically.
	UpdateMessage(ctx context.Context, id int64, message string, editedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

type TagRepository interface {
	// Create inserts the tag, or reuses the existing tag with the same
	// (case-sensitive) name. Either way t.ID is set on return.
	Create(ctx context.Context, t *model.Tag) error
	GetByID(ctx context.Context, id int64) (*model.Tag, error)
	ListAll(ctx context.Context) ([]model.Tag, error)
	ListForQuestion(ctx context.Context, questionID int64) ([]model.Tag, error)
	// Attach links a tag to a question; attaching an already-attached tag
	// is a no-op. Detach removes the association only, never the tag.
	Attach(ctx context.Context, questionID, tagID int64) error
	Detach(ctx context.Context, questionID, tagID int64) error
}

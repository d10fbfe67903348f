package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo stores the tagged Target as two nullable columns; the CHECK
// constraint in the schema keeps them mutually exclusive. The nullable pair
// never leaks out of this package.
type CommentRepo struct {
	db *DB
}

func NewCommentRepo(db *DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// targetColumns splits a Target into the (question_id, answer_id) pair.
func targetColumns(t model.Target) (questionID, answerID sql.NullInt64) {
	switch t.Kind {
	case model.TargetQuestion:
		questionID = sql.NullInt64{Int64: t.ID, Valid: true}
	case model.TargetAnswer:
		answerID = sql.NullInt64{Int64: t.ID, Valid: true}
	}
	return questionID, answerID
}

// targetFromColumns rebuilds the Target from the stored pair.
func targetFromColumns(questionID, answerID sql.NullInt64) model.Target {
	if questionID.Valid {
		return model.QuestionTarget(questionID.Int64)
	}
	return model.AnswerTarget(answerID.Int64)
}

func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	questionID, answerID := targetColumns(c.Target)

	err := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO comments (question_id, answer_id, message, submission_time, edited_count)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		questionID, answerID, c.Message, c.SubmissionTime, c.EditedCount,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("sqlite: creating comment: %w", err)
	}

	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var (
		c          model.Comment
		questionID sql.NullInt64
		answerID   sql.NullInt64
	)

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, question_id, answer_id, message, submission_time, edited_count
		 FROM comments
		 WHERE id = ?`,
		id,
	).Scan(&c.ID, &questionID, &answerID, &c.Message, &c.SubmissionTime, &c.EditedCount)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("comment", id)
		}
		return nil, fmt.Errorf("sqlite: getting comment %d: %w", id, err)
	}

	c.Target = targetFromColumns(questionID, answerID)
	return &c, nil
}

// ListForQuestion returns the comments on the question itself plus the
// comments on every one of its answers, oldest first.
func (r *CommentRepo) ListForQuestion(ctx context.Context, questionID int64) ([]model.Comment, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, question_id, answer_id, message, submission_time, edited_count
		 FROM comments
		 WHERE question_id = ?
		    OR answer_id IN (SELECT id FROM answers WHERE question_id = ?)
		 ORDER BY submission_time, id`,
		questionID, questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing comments for question %d: %w", questionID, err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var (
			c   model.Comment
			qID sql.NullInt64
			aID sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &qID, &aID, &c.Message, &c.SubmissionTime, &c.EditedCount); err != nil {
			return nil, fmt.Errorf("sqlite: scanning comment row: %w", err)
		}
		c.Target = targetFromColumns(qID, aID)
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating comments: %w", err)
	}

	return comments, nil
}

// UpdateMessage applies comment-edit semantics in one statement: new
// message, submission_time refreshed to the edit time, edited_count + 1.
func (r *CommentRepo) UpdateMessage(ctx context.Context, id int64, message string, editedAt time.Time) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE comments
		 SET message = ?, submission_time = ?, edited_count = edited_count + 1
		 WHERE id = ?`,
		message, editedAt, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating comment %d: %w", id, err)
	}

	return checkAffected(result, "comment", id)
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting comment %d: %w", id, err)
	}

	return checkAffected(result, "comment", id)
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/repository"
)

var _ repository.AnswerRepository = (*AnswerRepo)(nil)

type AnswerRepo struct {
	db *DB
}

func NewAnswerRepo(db *DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// Create inserts the answer and fills a.ID. A dangling question_id fails
// the foreign key check rather than creating an orphan; the service layer
// verifies the question first so callers see NotFound instead.
func (r *AnswerRepo) Create(ctx context.Context, a *model.Answer) error {
	err := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO answers (question_id, message, submission_time, vote_number)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		a.QuestionID, a.Message, a.SubmissionTime, a.VoteNumber,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("sqlite: creating answer: %w", err)
	}

	return nil
}

func (r *AnswerRepo) GetByID(ctx context.Context, id int64) (*model.Answer, error) {
	var a model.Answer

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, question_id, message, submission_time, vote_number
		 FROM answers
		 WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.QuestionID, &a.Message, &a.SubmissionTime, &a.VoteNumber)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("answer", id)
		}
		return nil, fmt.Errorf("sqlite: getting answer %d: %w", id, err)
	}

	return &a, nil
}

func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, question_id, message, submission_time, vote_number
		 FROM answers
		 WHERE question_id = ?
		 ORDER BY submission_time, id`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing answers for question %d: %w", questionID, err)
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Message, &a.SubmissionTime, &a.VoteNumber); err != nil {
			return nil, fmt.Errorf("sqlite: scanning answer row: %w", err)
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating answers: %w", err)
	}

	return answers, nil
}

func (r *AnswerRepo) Update(ctx context.Context, a *model.Answer) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE answers SET message = ? WHERE id = ?`,
		a.Message, a.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating answer %d: %w", a.ID, err)
	}

	return checkAffected(result, "answer", a.ID)
}

// Delete removes the answer; comments attached to it go with it via the
// cascade.
func (r *AnswerRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM answers WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting answer %d: %w", id, err)
	}

	return checkAffected(result, "answer", id)
}

func (r *AnswerRepo) AdjustVote(ctx context.Context, id int64, delta int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE answers SET vote_number = vote_number + ? WHERE id = ?`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adjusting answer %d vote: %w", id, err)
	}

	return checkAffected(result, "answer", id)
}

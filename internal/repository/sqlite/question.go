package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/repository"
)

// Compile-time check that *QuestionRepo satisfies the interface.
var _ repository.QuestionRepository = (*QuestionRepo)(nil)

// QuestionRepo implements repository.QuestionRepository on the shared pool.
type QuestionRepo struct {
	db *DB
}

func NewQuestionRepo(db *DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create inserts the question and fills q.ID from the AUTOINCREMENT
// sequence. RETURNING makes the allocate-and-insert a single statement, so
// concurrent inserts cannot hand out the same id.
func (r *QuestionRepo) Create(ctx context.Context, q *model.Question) error {
	err := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO questions (title, message, submission_time, view_number, vote_number)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		q.Title, q.Message, q.SubmissionTime, q.ViewNumber, q.VoteNumber,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("sqlite: creating question: %w", err)
	}

	return nil
}

func (r *QuestionRepo) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, title, message, submission_time, view_number, vote_number
		 FROM questions
		 WHERE id = ?`,
		id,
	).Scan(&q.ID, &q.Title, &q.Message, &q.SubmissionTime, &q.ViewNumber, &q.VoteNumber)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("question", id)
		}
		return nil, fmt.Errorf("sqlite: getting question %d: %w", id, err)
	}

	return &q, nil
}

// List returns every question with its answer count, newest first. The
// LEFT JOIN keeps unanswered questions in the result with a count of zero.
func (r *QuestionRepo) List(ctx context.Context) ([]model.QuestionSummary, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT q.id, q.title, q.message, q.submission_time, q.view_number, q.vote_number,
		        COUNT(a.id)
		 FROM questions q
		 LEFT JOIN answers a ON a.question_id = q.id
		 GROUP BY q.id
		 ORDER BY q.submission_time DESC, q.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing questions: %w", err)
	}
	defer rows.Close()

	var summaries []model.QuestionSummary
	for rows.Next() {
		var s model.QuestionSummary
		if err := rows.Scan(
			&s.ID, &s.Title, &s.Message, &s.SubmissionTime,
			&s.ViewNumber, &s.VoteNumber, &s.AnswerCount,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning question row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating questions: %w", err)
	}

	return summaries, nil
}

// Update rewrites title and message. It never inserts: a missing id is
// NotFound, detected via RowsAffected.
func (r *QuestionRepo) Update(ctx context.Context, q *model.Question) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE questions SET title = ?, message = ? WHERE id = ?`,
		q.Title, q.Message, q.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating question %d: %w", q.ID, err)
	}

	return checkAffected(result, "question", q.ID)
}

// Delete removes the question; the ON DELETE CASCADE chain takes its
// answers, the comments on the question and on those answers, and its tag
// associations with it.
func (r *QuestionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM questions WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting question %d: %w", id, err)
	}

	return checkAffected(result, "question", id)
}

// AdjustVote adds delta to vote_number in one statement, so concurrent
// votes on the same question cannot lose updates.
func (r *QuestionRepo) AdjustVote(ctx context.Context, id int64, delta int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE questions SET vote_number = vote_number + ? WHERE id = ?`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adjusting question %d vote: %w", id, err)
	}

	return checkAffected(result, "question", id)
}

func (r *QuestionRepo) IncrementViews(ctx context.Context, id int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`UPDATE questions SET view_number = view_number + 1 WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: incrementing question %d views: %w", id, err)
	}

	return checkAffected(result, "question", id)
}

// Search matches phrase case-insensitively as a substring of the question
// title, the question message, or an answer message. The LEFT JOIN condition
// carries the answer-side match, so a question matched only through its
// title or message comes back with NULL answer columns, while each matching
// answer yields its own row.
func (r *QuestionRepo) Search(ctx context.Context, phrase string) ([]model.SearchRow, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT q.id, q.title, q.message, q.submission_time, q.view_number, q.vote_number,
		        a.id, a.question_id, a.message, a.submission_time, a.vote_number
		 FROM questions q
		 LEFT JOIN answers a
		        ON a.question_id = q.id
		       AND instr(lower(a.message), lower(?)) > 0
		 WHERE instr(lower(q.title), lower(?)) > 0
		    OR instr(lower(q.message), lower(?)) > 0
		    OR a.id IS NOT NULL
		 ORDER BY q.submission_time DESC, q.id DESC, a.id ASC`,
		phrase, phrase, phrase,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: searching questions: %w", err)
	}
	defer rows.Close()

	var results []model.SearchRow
	for rows.Next() {
		var (
			row       model.SearchRow
			answerID  sql.NullInt64
			qID       sql.NullInt64
			message   sql.NullString
			submitted sql.NullTime
			votes     sql.NullInt64
		)
		if err := rows.Scan(
			&row.Question.ID, &row.Question.Title, &row.Question.Message,
			&row.Question.SubmissionTime, &row.Question.ViewNumber, &row.Question.VoteNumber,
			&answerID, &qID, &message, &submitted, &votes,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning search row: %w", err)
		}
		if answerID.Valid {
			row.Answer = &model.Answer{
				ID:             answerID.Int64,
				QuestionID:     qID.Int64,
				Message:        message.String,
				SubmissionTime: submitted.Time,
				VoteNumber:     votes.Int64,
			}
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating search rows: %w", err)
	}

	return results, nil
}

// checkAffected translates a zero RowsAffected into NotFound. Used by every
// UPDATE/DELETE so they distinguish "missing row" from "nothing to change".
func checkAffected(result sql.Result, resource string, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/repository"
)

var _ repository.TagRepository = (*TagRepo)(nil)

type TagRepo struct {
	db *DB
}

func NewTagRepo(db *DB) *TagRepo {
	return &TagRepo{db: db}
}

// Create inserts the tag, or resolves a duplicate name by reusing the
// existing row. The no-op ON CONFLICT update makes RETURNING yield the
// existing id, so get-or-create is one statement and safe under concurrent
// inserts of the same name. Name comparison is the column's default BINARY
// collation: case-sensitive.
func (r *TagRepo) Create(ctx context.Context, t *model.Tag) error {
	err := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO tags (name) VALUES (?)
		 ON CONFLICT(name) DO UPDATE SET name = name
		 RETURNING id`,
		t.Name,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("sqlite: creating tag %q: %w", t.Name, err)
	}

	return nil
}

func (r *TagRepo) GetByID(ctx context.Context, id int64) (*model.Tag, error) {
	var t model.Tag

	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, name FROM tags WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Name)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("tag", id)
		}
		return nil, fmt.Errorf("sqlite: getting tag %d: %w", id, err)
	}

	return &t, nil
}

func (r *TagRepo) ListAll(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, name FROM tags ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func (r *TagRepo) ListForQuestion(ctx context.Context, questionID int64) ([]model.Tag, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT t.id, t.name
		 FROM tags t
		 JOIN question_tags qt ON qt.tag_id = t.id
		 WHERE qt.question_id = ?
		 ORDER BY t.name`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing tags for question %d: %w", questionID, err)
	}
	defer rows.Close()

	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]model.Tag, error) {
	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating tags: %w", err)
	}

	return tags, nil
}

// Attach links the tag to the question. INSERT OR IGNORE makes re-attaching
// an already-attached tag a no-op instead of a primary-key error.
func (r *TagRepo) Attach(ctx context.Context, questionID, tagID int64) error {
	_, err := r.db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO question_tags (question_id, tag_id) VALUES (?, ?)`,
		questionID, tagID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: attaching tag %d to question %d: %w", tagID, questionID, err)
	}

	return nil
}

// Detach deletes the association row only; the tag itself stays and remains
// attachable to other questions.
func (r *TagRepo) Detach(ctx context.Context, questionID, tagID int64) error {
	result, err := r.db.conn.ExecContext(ctx,
		`DELETE FROM question_tags WHERE question_id = ? AND tag_id = ?`,
		questionID, tagID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: detaching tag %d from question %d: %w", tagID, questionID, err)
	}

	return checkAffected(result, "question tag", tagID)
}

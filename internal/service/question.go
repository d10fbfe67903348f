// Package service contains the business rules of the forum: input
// validation, timestamp/counter stamping, sort-key fallbacks, tag
// deduplication, and the vote policy. Services speak to storage through the
// repository interfaces only, so tests swap in in-memory mocks.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/rank"
	"github.com/kfodor/askmate/internal/repository"
)

// Validation limits shared by the form-facing operations.
const (
	MaxTitleLength   = 200
	MaxMessageLength = 10000
	MaxTagNameLength = 40
)

// QuestionService handles question listing, CRUD, and view counting.
type QuestionService struct {
	questions repository.QuestionRepository
	logger    *slog.Logger
}

func NewQuestionService(questions repository.QuestionRepository, logger *slog.Logger) *QuestionService {
	return &QuestionService{questions: questions, logger: logger}
}

// List returns every question annotated with its answer count, sorted by
// the requested key and direction. Unrecognized values fall back to
// submission_time/desc instead of erroring — the list page always renders.
func (s *QuestionService) List(ctx context.Context, orderBy, direction string) ([]model.QuestionSummary, error) {
	summaries, err := s.questions.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	rank.Questions(summaries, rank.ParseKey(orderBy), rank.ParseDirection(direction))
	return summaries, nil
}

func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// Create validates the input, stamps submission time and zeroed counters,
// and inserts. Timestamps drop sub-second precision, which is all the
// rendered pages show.
func (s *QuestionService) Create(ctx context.Context, title, message string) (*model.Question, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "question title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("question title must be %d characters or less", MaxTitleLength))
	}
	if len(message) > MaxMessageLength {
		return nil, apperror.ValidationFailed("message",
			fmt.Sprintf("question message must be %d characters or less", MaxMessageLength))
	}

	q := &model.Question{
		Title:          title,
		Message:        message,
		SubmissionTime: time.Now().Truncate(time.Second),
	}

	if err := s.questions.Create(ctx, q); err != nil {
		s.logger.Error("failed to create question",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating question: %w", err)
	}

	s.logger.Info("question created",
		slog.Int64("id", q.ID),
		slog.String("title", q.Title),
	)

	return q, nil
}

// Update rewrites title and message of an existing question. Submission
// time, votes, and views are untouched; a missing id surfaces as NotFound.
func (s *QuestionService) Update(ctx context.Context, id int64, title, message string) error {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)

	if title == "" {
		return apperror.ValidationFailed("title", "question title is required")
	}
	if len(title) > MaxTitleLength {
		return apperror.ValidationFailed("title",
			fmt.Sprintf("question title must be %d characters or less", MaxTitleLength))
	}
	if len(message) > MaxMessageLength {
		return apperror.ValidationFailed("message",
			fmt.Sprintf("question message must be %d characters or less", MaxMessageLength))
	}

	q := &model.Question{ID: id, Title: title, Message: message}
	if err := s.questions.Update(ctx, q); err != nil {
		return err
	}

	s.logger.Info("question updated", slog.Int64("id", id))
	return nil
}

// Delete removes the question and everything hanging off it: answers,
// comments on the question and on those answers, and tag associations.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	if err := s.questions.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("question deleted", slog.Int64("id", id))
	return nil
}

// IncrementViews bumps view_number by one. Called on GET visits of the
// detail page only — the post-vote redisplay re-issues as POST and must not
// land here.
func (s *QuestionService) IncrementViews(ctx context.Context, id int64) error {
	return s.questions.IncrementViews(ctx, id)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/repository"
)

// CommentService handles comments on questions and answers. The Target
// type carries the attach-to-exactly-one rule, so a comment pointing at
// both or neither cannot be expressed.
type CommentService struct {
	comments  repository.CommentRepository
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	logger    *slog.Logger
}

func NewCommentService(
	comments repository.CommentRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		comments:  comments,
		questions: questions,
		answers:   answers,
		logger:    logger,
	}
}

// Create attaches a new comment to the target, stamping submission time and
// a zero edit count. The target entity is looked up first so commenting on
// something deleted surfaces as NotFound.
func (s *CommentService) Create(ctx context.Context, target model.Target, message string) (*model.Comment, error) {
	message = strings.TrimSpace(message)

	if message == "" {
		return nil, apperror.ValidationFailed("message", "comment message is required")
	}
	if len(message) > MaxMessageLength {
		return nil, apperror.ValidationFailed("message",
			fmt.Sprintf("comment message must be %d characters or less", MaxMessageLength))
	}
	if !target.Valid() {
		return nil, apperror.ValidationFailed("target",
			"comment must attach to exactly one question or answer")
	}

	if err := s.targetExists(ctx, target); err != nil {
		return nil, err
	}

	c := &model.Comment{
		Target:         target,
		Message:        message,
		SubmissionTime: time.Now().Truncate(time.Second),
	}

	if err := s.comments.Create(ctx, c); err != nil {
		s.logger.Error("failed to create comment",
			slog.String("target_kind", string(target.Kind)),
			slog.Int64("target_id", target.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating comment: %w", err)
	}

	s.logger.Info("comment created",
		slog.Int64("id", c.ID),
		slog.String("target_kind", string(target.Kind)),
		slog.Int64("target_id", target.ID),
	)

	return c, nil
}

func (s *CommentService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

// ListForQuestion returns the comments on the question and on all of its
// answers. The question is looked up first so a missing id is NotFound, not
// an empty list.
func (s *CommentService) ListForQuestion(ctx context.Context, questionID int64) ([]model.Comment, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.comments.ListForQuestion(ctx, questionID)
}

// Update applies comment-edit semantics: the message is replaced, the
// submission time becomes the edit time, and edited_count grows by one.
func (s *CommentService) Update(ctx context.Context, id int64, message string) error {
	message = strings.TrimSpace(message)

	if message == "" {
		return apperror.ValidationFailed("message", "comment message is required")
	}
	if len(message) > MaxMessageLength {
		return apperror.ValidationFailed("message",
			fmt.Sprintf("comment message must be %d characters or less", MaxMessageLength))
	}

	if err := s.comments.UpdateMessage(ctx, id, message, time.Now().Truncate(time.Second)); err != nil {
		return err
	}

	s.logger.Info("comment edited", slog.Int64("id", id))
	return nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("comment deleted", slog.Int64("id", id))
	return nil
}

func (s *CommentService) targetExists(ctx context.Context, target model.Target) error {
	switch target.Kind {
	case model.TargetQuestion:
		_, err := s.questions.GetByID(ctx, target.ID)
		return err
	case model.TargetAnswer:
		_, err := s.answers.GetByID(ctx, target.ID)
		return err
	}
	return apperror.ValidationFailed("target", fmt.Sprintf("unknown comment target kind %q", target.Kind))
}

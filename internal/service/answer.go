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

// AnswerService handles posting, editing, and deleting answers.
type AnswerService struct {
	answers   repository.AnswerRepository
	questions repository.QuestionRepository
	logger    *slog.Logger
}

func NewAnswerService(
	answers repository.AnswerRepository,
	questions repository.QuestionRepository,
	logger *slog.Logger,
) *AnswerService {
	return &AnswerService{answers: answers, questions: questions, logger: logger}
}

// Create posts a new answer to the given question, stamping submission time
// and a zero vote count. The question is looked up first so answering a
// deleted question surfaces as NotFound rather than a constraint failure.
func (s *AnswerService) Create(ctx context.Context, questionID int64, message string) (*model.Answer, error) {
	message = strings.TrimSpace(message)

	if message == "" {
		return nil, apperror.ValidationFailed("message", "answer message is required")
	}
	if len(message) > MaxMessageLength {
		return nil, apperror.ValidationFailed("message",
			fmt.Sprintf("answer message must be %d characters or less", MaxMessageLength))
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	a := &model.Answer{
		QuestionID:     questionID,
		Message:        message,
		SubmissionTime: time.Now().Truncate(time.Second),
	}

	if err := s.answers.Create(ctx, a); err != nil {
		s.logger.Error("failed to create answer",
			slog.Int64("question_id", questionID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating answer: %w", err)
	}

	s.logger.Info("answer created",
		slog.Int64("id", a.ID),
		slog.Int64("question_id", questionID),
	)

	return a, nil
}

func (s *AnswerService) Get(ctx context.Context, id int64) (*model.Answer, error) {
	return s.answers.GetByID(ctx, id)
}

func (s *AnswerService) ListForQuestion(ctx context.Context, questionID int64) ([]model.Answer, error) {
	return s.answers.ListByQuestion(ctx, questionID)
}

// Update rewrites the answer message.
func (s *AnswerService) Update(ctx context.Context, id int64, message string) error {
	message = strings.TrimSpace(message)

	if message == "" {
		return apperror.ValidationFailed("message", "answer message is required")
	}
	if len(message) > MaxMessageLength {
		return apperror.ValidationFailed("message",
			fmt.Sprintf("answer message must be %d characters or less", MaxMessageLength))
	}

	if err := s.answers.Update(ctx, &model.Answer{ID: id, Message: message}); err != nil {
		return err
	}

	s.logger.Info("answer updated", slog.Int64("id", id))
	return nil
}

// Delete removes the answer and, via the store cascade, its comments.
func (s *AnswerService) Delete(ctx context.Context, id int64) error {
	if err := s.answers.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("answer deleted", slog.Int64("id", id))
	return nil
}

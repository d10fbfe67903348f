package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/repository"
)

// TagService handles tags and their question associations.
type TagService struct {
	tags      repository.TagRepository
	questions repository.QuestionRepository
	logger    *slog.Logger
}

func NewTagService(
	tags repository.TagRepository,
	questions repository.QuestionRepository,
	logger *slog.Logger,
) *TagService {
	return &TagService{tags: tags, questions: questions, logger: logger}
}

// AddNewTagToQuestion tags the question with the named tag, creating the
// tag first unless one with that exact (case-sensitive) name already
// exists. A duplicate name is never an error — the existing tag is reused,
// so tagging two questions "Python" yields one tag and two associations.
func (s *TagService) AddNewTagToQuestion(ctx context.Context, questionID int64, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "tag name is required")
	}
	if len(name) > MaxTagNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("tag name must be %d characters or less", MaxTagNameLength))
	}

	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}

	t := &model.Tag{Name: name}
	if err := s.tags.Create(ctx, t); err != nil {
		s.logger.Error("failed to create tag",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	if err := s.tags.Attach(ctx, questionID, t.ID); err != nil {
		return nil, fmt.Errorf("attaching tag: %w", err)
	}

	s.logger.Info("tag added to question",
		slog.Int64("question_id", questionID),
		slog.Int64("tag_id", t.ID),
		slog.String("name", t.Name),
	)

	return t, nil
}

// AddTagToQuestion associates an existing tag with the question.
func (s *TagService) AddTagToQuestion(ctx context.Context, questionID, tagID int64) error {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return err
	}
	if _, err := s.tags.GetByID(ctx, tagID); err != nil {
		return err
	}

	if err := s.tags.Attach(ctx, questionID, tagID); err != nil {
		return fmt.Errorf("attaching tag: %w", err)
	}

	s.logger.Info("tag attached",
		slog.Int64("question_id", questionID),
		slog.Int64("tag_id", tagID),
	)
	return nil
}

func (s *TagService) ListForQuestion(ctx context.Context, questionID int64) ([]model.Tag, error) {
	return s.tags.ListForQuestion(ctx, questionID)
}

func (s *TagService) ListAll(ctx context.Context) ([]model.Tag, error) {
	return s.tags.ListAll(ctx)
}

// RemoveTag detaches the tag from the question. The tag record itself is
// never deleted here, even when no association remains.
func (s *TagService) RemoveTag(ctx context.Context, questionID, tagID int64) error {
	if err := s.tags.Detach(ctx, questionID, tagID); err != nil {
		return err
	}

	s.logger.Info("tag removed from question",
		slog.Int64("question_id", questionID),
		slog.Int64("tag_id", tagID),
	)
	return nil
}

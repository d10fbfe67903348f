package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
	"github.com/kfodor/askmate/internal/repository"
)

// VoteService applies up/down votes to questions and answers.
type VoteService struct {
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	logger    *slog.Logger
}

func NewVoteService(
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	logger *slog.Logger,
) *VoteService {
	return &VoteService{questions: questions, answers: answers, logger: logger}
}

// HandleVote adjusts the target's vote_number by +1 (Upvote) or -1
// (Downvote). Downvotes have no floor. A vote against a missing target is
// NotFound, not a silent no-op, so callers can tell the difference.
func (s *VoteService) HandleVote(ctx context.Context, option model.VoteOption, target model.Target) error {
	delta, ok := option.Delta()
	if !ok {
		return apperror.ValidationFailed("vote", fmt.Sprintf("unknown vote option %q", option))
	}
	if !target.Valid() {
		return apperror.ValidationFailed("target", "vote target must be a question or an answer")
	}

	var err error
	switch target.Kind {
	case model.TargetQuestion:
		err = s.questions.AdjustVote(ctx, target.ID, delta)
	case model.TargetAnswer:
		err = s.answers.AdjustVote(ctx, target.ID, delta)
	}
	if err != nil {
		return err
	}

	s.logger.Info("vote recorded",
		slog.String("option", string(option)),
		slog.String("target_kind", string(target.Kind)),
		slog.Int64("target_id", target.ID),
	)
	return nil
}

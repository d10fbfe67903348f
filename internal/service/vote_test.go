package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kfodor/askmate/internal/apperror"
	"github.com/kfodor/askmate/internal/model"
)

func TestHandleVoteQuestion(t *testing.T) {
	questions := newMockQuestionRepo()
	answers := newMockAnswerRepo()
	svc := NewVoteService(questions, answers, testLogger())
	ctx := context.Background()

	q := &model.Question{Title: "votable"}
	questions.Create(ctx, q)

	if err := svc.HandleVote(ctx, model.Upvote, model.QuestionTarget(q.ID)); err != nil {
		t.Fatalf("upvoting: %v", err)
	}
	if err := svc.HandleVote(ctx, model.Downvote, model.QuestionTarget(q.ID)); err != nil {
		t.Fatalf("downvoting: %v", err)
	}
	if err := svc.HandleVote(ctx, model.Downvote, model.QuestionTarget(q.ID)); err != nil {
		t.Fatalf("downvoting again: %v", err)
	}

	got, _ := questions.GetByID(ctx, q.ID)
	if got.VoteNumber != -1 {
		t.Errorf("vote number = %d, want -1 (no floor on downvotes)", got.VoteNumber)
	}
}

func TestHandleVoteAnswer(t *testing.T) {
	questions := newMockQuestionRepo()
	answers := newMockAnswerRepo()
	svc := NewVoteService(questions, answers, testLogger())
	ctx := context.Background()

	a := &model.Answer{QuestionID: 1, Message: "answer"}
	answers.Create(ctx, a)

	if err := svc.HandleVote(ctx, model.Upvote, model.AnswerTarget(a.ID)); err != nil {
		t.Fatalf("upvoting answer: %v", err)
	}

	got, _ := answers.GetByID(ctx, a.ID)
	if got.VoteNumber != 1 {
		t.Errorf("vote number = %d, want 1", got.VoteNumber)
	}
}

func TestHandleVoteMissingTarget(t *testing.T) {
	svc := NewVoteService(newMockQuestionRepo(), newMockAnswerRepo(), testLogger())
	ctx := context.Background()

	err := svc.HandleVote(ctx, model.Upvote, model.QuestionTarget(99))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("question vote error = %v, want ErrNotFound", err)
	}

	err = svc.HandleVote(ctx, model.Downvote, model.AnswerTarget(99))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("answer vote error = %v, want ErrNotFound", err)
	}
}

func TestHandleVoteRejectsUnknownOption(t *testing.T) {
	questions := newMockQuestionRepo()
	svc := NewVoteService(questions, newMockAnswerRepo(), testLogger())
	ctx := context.Background()

	q := &model.Question{Title: "votable"}
	questions.Create(ctx, q)

	err := svc.HandleVote(ctx, model.VoteOption("Sideways"), model.QuestionTarget(q.ID))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}

	got, _ := questions.GetByID(ctx, q.ID)
	if got.VoteNumber != 0 {
		t.Errorf("rejected vote changed tally to %d", got.VoteNumber)
	}
}

func TestHandleVoteRejectsInvalidTarget(t *testing.T) {
	svc := NewVoteService(newMockQuestionRepo(), newMockAnswerRepo(), testLogger())

	err := svc.HandleVote(context.Background(), model.Upvote, model.Target{})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

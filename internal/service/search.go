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

// SearchService finds questions by a substring of their title, message, or
// any answer message.
type SearchService struct {
	questions repository.QuestionRepository
	logger    *slog.Logger
}

func NewSearchService(questions repository.QuestionRepository, logger *slog.Logger) *SearchService {
	return &SearchService{questions: questions, logger: logger}
}

// Search runs a case-insensitive substring match and collapses the raw
// (question, matching answer) rows into one result per question, keeping
// every matching answer alongside its question. Results arrive from the
// store ordered by question submission time, newest first — the sole
// ranking key.
func (s *SearchService) Search(ctx context.Context, phrase string) ([]model.SearchResult, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, apperror.ValidationFailed("search_phrase", "search phrase is required")
	}

	rows, err := s.questions.Search(ctx, phrase)
	if err != nil {
		return nil, fmt.Errorf("searching questions: %w", err)
	}

	results := groupByQuestion(rows)

	s.logger.Info("search executed",
		slog.String("phrase", phrase),
		slog.Int("questions", len(results)),
	)
	return results, nil
}

// groupByQuestion collapses duplicate questions while preserving row order,
// so the store's newest-first ordering carries through.
func groupByQuestion(rows []model.SearchRow) []model.SearchResult {
	var results []model.SearchResult
	index := make(map[int64]int)

	for _, row := range rows {
		i, seen := index[row.Question.ID]
		if !seen {
			i = len(results)
			index[row.Question.ID] = i
			results = append(results, model.SearchResult{Question: row.Question})
		}
		if row.Answer != nil {
			results[i].MatchingAnswers = append(results[i].MatchingAnswers, *row.Answer)
		}
	}

	return results
}

// Package rank sorts question lists in memory. The store always hands back
// newest-first; everything else (views, votes, answer counts, either
// direction) is derived here with a stable sort so questions with equal
// keys keep their incoming order.
package rank

import (
	"sort"

	"github.com/kfodor/askmate/internal/model"
)

// Key names a sortable column of the question list.
type Key string

const (
	BySubmissionTime Key = "submission_time"
	ByViewNumber     Key = "view_number"
	ByVoteNumber     Key = "vote_number"
	ByAnswerCount    Key = "answer_count"
)

type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseKey maps a query-string value to a Key. Unrecognized values fall
// back to submission_time rather than erroring — the list page always
// renders.
func ParseKey(s string) Key {
	switch Key(s) {
	case BySubmissionTime, ByViewNumber, ByVoteNumber, ByAnswerCount:
		return Key(s)
	}
	return BySubmissionTime
}

// ParseDirection falls back to descending, the default of the list page.
func ParseDirection(s string) Direction {
	switch Direction(s) {
	case Ascending, Descending:
		return Direction(s)
	}
	return Descending
}

// Questions sorts the slice in place. The sort is stable in both
// directions: ties keep their relative input order, with no secondary key.
func Questions(qs []model.QuestionSummary, key Key, dir Direction) {
	less := lessFunc(qs, key)
	if dir == Descending {
		asc := less
		less = func(i, j int) bool { return asc(j, i) }
	}
	sort.SliceStable(qs, less)
}

func lessFunc(qs []model.QuestionSummary, key Key) func(i, j int) bool {
	switch key {
	case ByViewNumber:
		return func(i, j int) bool { return qs[i].ViewNumber < qs[j].ViewNumber }
	case ByVoteNumber:
		return func(i, j int) bool { return qs[i].VoteNumber < qs[j].VoteNumber }
	case ByAnswerCount:
		return func(i, j int) bool { return qs[i].AnswerCount < qs[j].AnswerCount }
	default:
		return func(i, j int) bool { return qs[i].SubmissionTime.Before(qs[j].SubmissionTime) }
	}
}

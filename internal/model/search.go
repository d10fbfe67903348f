package model

// SearchRow is one raw search hit: a question paired with at most one of
// its answers whose message matched the phrase. A question that matched
// only by title or message has a nil Answer; a question with several
// matching answers produces several rows.
type SearchRow struct {
	Question Question
	Answer   *Answer
}

// SearchResult is the per-question view of the same hits: duplicate
// questions collapsed, with every matching answer kept alongside.
type SearchResult struct {
	Question        Question
	MatchingAnswers []Answer
}

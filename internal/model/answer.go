package model

import "time"

// Answer belongs to exactly one question. Deleting the question deletes its
// answers (and their comments) with it.
type Answer struct {
	ID             int64
	QuestionID     int64
	Message        string
	SubmissionTime time.Time
	VoteNumber     int64
}

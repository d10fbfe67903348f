// Package model defines the data structures used throughout the application.
// Each forum entity gets a struct with named, typed fields — form input is
// validated and converted into these before it reaches the storage layer.
package model

import "time"

// Question is a forum question. ViewNumber only ever increments; VoteNumber
// is a signed tally with no floor.
type Question struct {
	ID             int64
	Title          string
	Message        string
	SubmissionTime time.Time
	ViewNumber     int64
	VoteNumber     int64
}

// QuestionSummary is one row of the question list: the question annotated
// with how many answers it has.
type QuestionSummary struct {
	Question
	AnswerCount int64
}

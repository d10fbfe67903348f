package model

import "time"

// Comment attaches to a question or to an answer, never both and never
// neither. SubmissionTime is refreshed on every edit, and EditedCount
// records how many edits happened.
type Comment struct {
	ID             int64
	Target         Target
	Message        string
	SubmissionTime time.Time
	EditedCount    int64
}

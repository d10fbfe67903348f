package model

// VoteOption is the direction of a vote as submitted by the vote form.
type VoteOption string

const (
	Upvote   VoteOption = "Upvote"
	Downvote VoteOption = "Downvote"
)

// Delta returns the vote_number adjustment for the option, or ok=false for
// an unrecognized option.
func (o VoteOption) Delta() (delta int64, ok bool) {
	switch o {
	case Upvote:
		return 1, true
	case Downvote:
		return -1, true
	}
	return 0, false
}

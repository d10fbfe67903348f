package model

// TargetKind names the entity a comment or vote points at.
type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
)

// Target identifies either a question or an answer. Comments use it to make
// the "attached to a question XOR an answer" rule structural instead of a
// pair-of-nullable-ids convention; votes use it to name what gets tallied.
type Target struct {
	Kind TargetKind
	ID   int64
}

func QuestionTarget(id int64) Target {
	return Target{Kind: TargetQuestion, ID: id}
}

func AnswerTarget(id int64) Target {
	return Target{Kind: TargetAnswer, ID: id}
}

// Valid reports whether the kind is one of the two known kinds and the id
// is a plausible allocator-assigned id.
func (t Target) Valid() bool {
	return (t.Kind == TargetQuestion || t.Kind == TargetAnswer) && t.ID > 0
}

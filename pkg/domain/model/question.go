package model

import "github.com/prevanto-lab/duerpcore/pkg/domain/types"

// Question is one clarifying question proposed to the user
type Question struct {
	ID       string
	Text     string
	Category types.CategorySlug
	Urgent   bool

	// ShowIf lists preconditions on prior answers; every key must be
	// present in the answers map with exactly the given value
	ShowIf map[string]string
}

// QuestionInput is the caller-supplied state of one questioning session.
// The engine keeps no session storage; the caller replays the accumulated
// state on every turn.
type QuestionInput struct {
	Sector    string
	SizeClass string
	Units     []string
	Notes     []string

	// Asked holds the IDs of questions already presented to the user
	Asked []string
	// Answers maps question ID to the user's answer
	Answers map[string]string

	// TargetCoverage defaults to 0.8 when zero
	TargetCoverage float64
	// MaxNew is clamped to [3,12], defaulting to 6 when zero
	MaxNew int
}

// QuestionBatch is the result of one questioning turn
type QuestionBatch struct {
	Questions      []Question
	Coverage       float64
	MissingReasons []string
	Stop           bool
	Meta           map[string]any
}

// Answered reports whether the given question ID has an answer
func (in *QuestionInput) Answered(id string) bool {
	if in.Answers == nil {
		return false
	}
	_, ok := in.Answers[id]
	return ok
}

// WasAsked reports whether the given question ID was already presented
func (in *QuestionInput) WasAsked(id string) bool {
	for _, a := range in.Asked {
		if a == id {
			return true
		}
	}
	return false
}

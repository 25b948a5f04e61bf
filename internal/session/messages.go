package session

import "fmt"

// Direction describes what the learner is asked to produce.
const Direction = "word_to_meaning"

// NextAction tells the caller what to do after a submission.
type NextAction string

// Next actions.
const (
	ActionRetrySame    NextAction = "retry_same"
	ActionNextQuestion NextAction = "next_question"
	ActionShowSummary  NextAction = "show_summary"
)

// State is the engine's position in the prompt/answer cycle.
type State int

// Engine states.
const (
	NoCurrentQuestion State = iota
	AwaitingAnswer
	Finished
)

var stateNames = [...]string{
	NoCurrentQuestion: "NoCurrentQuestion",
	AwaitingAnswer:    "AwaitingAnswer",
	Finished:          "Finished",
}

func (s State) String() string {
	if s >= NoCurrentQuestion && s <= Finished {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Progress reports how far a session has come.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Prompt is the question presented to the learner.
type Prompt struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	Direction    string   `json:"direction"`
	Hint         string   `json:"hint"`
	Attempt      int      `json:"attempt"`
	Progress     Progress `json:"progress"`
}

// Feedback is the verdict on one submitted answer.
type Feedback struct {
	IsCorrect     bool       `json:"is_correct"`
	CorrectAnswer string     `json:"correct_answer"`
	NextAction    NextAction `json:"next_action"`
	HintLevel     int        `json:"hint_level"`
}

// Summary is the final score of a session.
type Summary struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	WrongCount int `json:"wrong_count"`
}

// HintResult is the answer to an explicit hint request.
type HintResult struct {
	Hint  string `json:"hint"`
	Level int    `json:"level"`
	// Penalized is set on the request that marked the question wrong.
	Penalized bool `json:"penalized"`
}

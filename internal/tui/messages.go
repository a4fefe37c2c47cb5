package tui

import "github.com/mpetrov/cardbox/internal/engine"

// sessionStartedMsg carries the result of a session start.
type sessionStartedMsg struct {
	result *engine.StartResult
	err    error
}

// answerGradedMsg carries the result of one graded answer.
type answerGradedMsg struct {
	result *engine.AnswerResult
	err    error
}

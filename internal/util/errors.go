package util

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid quiz configuration")
	ErrUnknownQuestion      = errors.New("question not part of this session")
	ErrQuestionNotCurrent   = errors.New("question is not the current one")
	ErrAlreadyAnswered      = errors.New("question already answered")
	ErrIncompleteSession    = errors.New("session has unanswered questions")
	ErrSessionNotFound      = errors.New("quiz session not found")
	ErrSessionCompleted     = errors.New("quiz session already completed")
	ErrVersionConflict      = errors.New("session modified concurrently")
)

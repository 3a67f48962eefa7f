package model

import (
	"time"

	"github.com/google/uuid"
)

type QuizMode string

const (
	ModeImmediate QuizMode = "immediate"
	ModeExam      QuizMode = "exam"
)

type SessionStatus string

const (
	StatusCreated    SessionStatus = "created"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
)

// QuizSession is one user's quiz run. Questions holds the session's own
// option-shuffled copies in run order; Answers and Results are keyed by
// question number. Version increases on every store write and backs the
// compare-and-set guard against duplicate concurrent submissions.
type QuizSession struct {
	ID        string         `json:"id"`
	Mode      QuizMode       `json:"mode"`
	Status    SessionStatus  `json:"status"`
	Questions []Question     `json:"questions"`
	Current   int            `json:"current"`
	Answers   map[int]Answer `json:"answers"`
	Results   map[int]bool   `json:"results"`
	Version   int64          `json:"version"`
	StartedAt time.Time      `json:"startedAt"`
}

func NewQuizSession(id string, mode QuizMode, questions []Question) *QuizSession {
	if id == "" {
		id = uuid.New().String()
	}
	return &QuizSession{
		ID:        id,
		Mode:      mode,
		Status:    StatusCreated,
		Questions: questions,
		Current:   0,
		Answers:   make(map[int]Answer),
		Results:   make(map[int]bool),
		StartedAt: time.Now(),
	}
}

// QuestionByNumber finds a session question by its bank number.
func (s *QuizSession) QuestionByNumber(number int) (*Question, bool) {
	for i := range s.Questions {
		if s.Questions[i].Number == number {
			return &s.Questions[i], true
		}
	}
	return nil, false
}

func (s *QuizSession) AnsweredCount() int {
	return len(s.Answers)
}

// Exhausted reports whether the cursor has moved past the last question.
func (s *QuizSession) Exhausted() bool {
	return s.Current >= len(s.Questions)
}

package model

// QuestionResult is the per-question line of a result summary.
type QuestionResult struct {
	Number        int          `json:"number"`
	Prompt        string       `json:"prompt"`
	Kind          QuestionKind `json:"kind"`
	Answered      bool         `json:"answered"`
	IsCorrect     bool         `json:"isCorrect"`
	UserAnswer    string       `json:"userAnswer"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation,omitempty"`
}

// ResultSummary is the read-only view over a completed session.
type ResultSummary struct {
	SessionID      string           `json:"sessionId"`
	Mode           QuizMode         `json:"mode"`
	TotalQuestions int              `json:"totalQuestions"`
	CorrectAnswers int              `json:"correctAnswers"`
	ScorePercent   float64          `json:"scorePercent"`
	ReadinessLevel string           `json:"readinessLevel"`
	LevelClass     string           `json:"levelClass"`
	Details        []QuestionResult `json:"details"`
}

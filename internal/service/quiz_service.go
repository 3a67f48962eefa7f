package service

import (
	"aws_quiz_backend/internal/model"
	"aws_quiz_backend/internal/repository"
	"aws_quiz_backend/internal/util"
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	SelectionAll    = "all"
	SelectionRange  = "range"
	SelectionRandom = "random"
)

type QuizService struct {
	Questions *repository.QuestionRepository
	Sessions  repository.SessionRepository
	Runs      *repository.ResultRepository
}

// NewQuizService wires the engine. runs may be nil when run history is not
// configured.
func NewQuizService(questions *repository.QuestionRepository, sessions repository.SessionRepository, runs *repository.ResultRepository) *QuizService {
	return &QuizService{Questions: questions, Sessions: sessions, Runs: runs}
}

type StartConfig struct {
	Mode       model.QuizMode `json:"mode"`
	Selection  string         `json:"selection"`
	StartRange int            `json:"startRange"`
	EndRange   int            `json:"endRange"`
	NumRandom  int            `json:"numRandom"`
}

type Progress struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// QuestionView is a question as shown to the client, with the correct
// answers stripped.
type QuestionView struct {
	Number     int                 `json:"number"`
	Text       string              `json:"text"`
	Kind       model.QuestionKind  `json:"kind"`
	Options    map[string]string   `json:"options,omitempty"`
	SubOptions map[string][]string `json:"subOptions,omitempty"`
}

type CurrentQuestion struct {
	Done     bool          `json:"done"`
	Question *QuestionView `json:"question,omitempty"`
	Progress Progress      `json:"progress"`
}

// SubmitResult is the response to an answer submission. Immediate sessions
// get the verdict right away; exam sessions get an acknowledgment only and
// the correctness fields stay empty until finish.
type SubmitResult struct {
	QuestionNumber int      `json:"questionNumber"`
	Accepted       bool     `json:"accepted"`
	IsCorrect      *bool    `json:"isCorrect,omitempty"`
	UserAnswer     string   `json:"userAnswer,omitempty"`
	CorrectAnswer  string   `json:"correctAnswer,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
	Progress       Progress `json:"progress"`
}

func (c StartConfig) validate(available int) error {
	switch c.Mode {
	case model.ModeImmediate, model.ModeExam:
	default:
		return fmt.Errorf("%w: unknown mode %q", util.ErrInvalidConfiguration, c.Mode)
	}

	switch c.Selection {
	case SelectionAll:
	case SelectionRange:
		if c.StartRange < 1 || c.EndRange < c.StartRange || c.EndRange > available {
			return fmt.Errorf("%w: range [%d,%d] outside bank of %d questions",
				util.ErrInvalidConfiguration, c.StartRange, c.EndRange, available)
		}
	case SelectionRandom:
		if c.NumRandom < 1 || c.NumRandom > available {
			return fmt.Errorf("%w: %d random questions requested, bank has %d",
				util.ErrInvalidConfiguration, c.NumRandom, available)
		}
	default:
		return fmt.Errorf("%w: unknown selection %q", util.ErrInvalidConfiguration, c.Selection)
	}
	return nil
}

// Start validates the configuration, selects the run's questions (sequential
// for range and all, sampled without replacement for random), shuffles each
// question's options and replaces whatever run the session key held before.
func (s *QuizService) Start(ctx context.Context, sessionID string, cfg StartConfig) (*model.QuizSession, error) {
	if err := cfg.validate(s.Questions.Count()); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var selected []model.Question
	switch cfg.Selection {
	case SelectionRange:
		selected = s.Questions.Range(cfg.StartRange, cfg.EndRange)
	case SelectionRandom:
		selected = s.Questions.Sample(cfg.NumRandom, rng)
	default:
		selected = s.Questions.All()
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: selection matched no questions", util.ErrInvalidConfiguration)
	}

	questions := make([]model.Question, len(selected))
	for i, q := range selected {
		questions[i] = shuffleQuestionOptions(q, rng)
	}

	session := model.NewQuizSession(sessionID, cfg.Mode, questions)
	if err := s.Sessions.Put(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CurrentQuestion returns the question the session is positioned on, or a
// done marker once every question has been passed.
func (s *QuizService) CurrentQuestion(ctx context.Context, sessionID string) (*CurrentQuestion, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == model.StatusCompleted || session.Exhausted() {
		return &CurrentQuestion{Done: true, Progress: progressOf(session)}, nil
	}

	q := session.Questions[session.Current]
	return &CurrentQuestion{
		Question: questionView(q),
		Progress: progressOf(session),
	}, nil
}

// SubmitAnswer records an answer. Immediate sessions must answer the current
// question exactly once and get graded on the spot; exam sessions may answer
// any of their questions and re-answer freely until finish. The store write
// is a compare-and-set, so a duplicate concurrent submission loses with a
// version conflict instead of double-recording.
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, answer model.Answer) (*SubmitResult, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.StatusCompleted {
		return nil, util.ErrSessionCompleted
	}

	q, ok := session.QuestionByNumber(questionNumber)
	if !ok {
		return nil, util.ErrUnknownQuestion
	}

	if session.Mode == model.ModeImmediate {
		if _, answered := session.Answers[questionNumber]; answered {
			return nil, util.ErrAlreadyAnswered
		}
		if session.Questions[session.Current].Number != questionNumber {
			return nil, util.ErrQuestionNotCurrent
		}
	}

	session.Answers[questionNumber] = answer
	if session.Status == model.StatusCreated {
		session.Status = model.StatusInProgress
	}

	result := &SubmitResult{QuestionNumber: questionNumber, Accepted: true}

	if session.Mode == model.ModeImmediate {
		correct := q.Evaluate(answer)
		session.Results[questionNumber] = correct
		session.Current++

		result.IsCorrect = &correct
		result.UserAnswer = answerDisplay(*q, answer)
		result.CorrectAnswer = correctDisplay(*q)
		result.Explanation = q.Explanation
	}

	if err := s.Sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	result.Progress = progressOf(session)
	return result, nil
}

// Finish closes the run and produces its summary. An exam session with
// unanswered questions is rejected unless force is set, in which case the
// unanswered ones score as incorrect. Correctness is recomputed from the
// recorded answers, so exam re-answers are settled here.
func (s *QuizService) Finish(ctx context.Context, sessionID string, force bool) (*model.ResultSummary, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.StatusCompleted {
		return nil, util.ErrSessionCompleted
	}

	if session.Mode == model.ModeExam && !force && session.AnsweredCount() < len(session.Questions) {
		return nil, fmt.Errorf("%w: %d of %d answered", util.ErrIncompleteSession,
			session.AnsweredCount(), len(session.Questions))
	}

	for _, q := range session.Questions {
		answer, answered := session.Answers[q.Number]
		session.Results[q.Number] = answered && q.Evaluate(answer)
	}
	session.Status = model.StatusCompleted

	if err := s.Sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	summary := buildSummary(session)

	if s.Runs != nil {
		_ = s.Runs.Create(&model.QuizRun{
			SessionID:      session.ID,
			Mode:           string(session.Mode),
			Score:          summary.CorrectAnswers,
			Total:          summary.TotalQuestions,
			ScorePercent:   summary.ScorePercent,
			ReadinessLevel: summary.ReadinessLevel,
			CompletedAt:    time.Now(),
		})
	}

	return summary, nil
}

// Results returns the summary of a completed run.
func (s *QuizService) Results(ctx context.Context, sessionID string) (*model.ResultSummary, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.StatusCompleted {
		return nil, util.ErrIncompleteSession
	}
	return buildSummary(session), nil
}

// History lists recent completed runs. Empty when run history is not
// configured.
func (s *QuizService) History(limit int) ([]model.QuizRun, error) {
	if s.Runs == nil {
		return []model.QuizRun{}, nil
	}
	return s.Runs.ListRecent(limit)
}

func progressOf(session *model.QuizSession) Progress {
	total := len(session.Questions)
	current := session.Current
	if session.Mode == model.ModeExam {
		current = session.AnsweredCount()
	}
	if current > total {
		current = total
	}

	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(current)/float64(total)*1000) / 10
	}
	return Progress{Current: current, Total: total, Percentage: pct}
}

func questionView(q model.Question) *QuestionView {
	view := &QuestionView{
		Number: q.Number,
		Text:   q.Text,
		Kind:   q.Kind,
	}
	if q.Kind == model.Mapping {
		view.SubOptions = q.SubOptions
	} else {
		view.Options = q.Options
	}
	return view
}

func buildSummary(session *model.QuizSession) *model.ResultSummary {
	details := make([]model.QuestionResult, len(session.Questions))
	correct := 0

	for i, q := range session.Questions {
		answer, answered := session.Answers[q.Number]
		isCorrect := session.Results[q.Number]
		if isCorrect {
			correct++
		}

		userDisplay := "Not answered"
		if answered {
			userDisplay = answerDisplay(q, answer)
		}

		details[i] = model.QuestionResult{
			Number:        q.Number,
			Prompt:        q.Text,
			Kind:          q.Kind,
			Answered:      answered,
			IsCorrect:     isCorrect,
			UserAnswer:    userDisplay,
			CorrectAnswer: correctDisplay(q),
			Explanation:   q.Explanation,
		}
	}

	total := len(session.Questions)
	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(correct)/float64(total)*1000) / 10
	}
	level, class := readinessLevel(pct)

	return &model.ResultSummary{
		SessionID:      session.ID,
		Mode:           session.Mode,
		TotalQuestions: total,
		CorrectAnswers: correct,
		ScorePercent:   pct,
		ReadinessLevel: level,
		LevelClass:     class,
		Details:        details,
	}
}

// readinessLevel bands a score into exam-readiness feedback.
func readinessLevel(scorePercent float64) (string, string) {
	switch {
	case scorePercent >= 80:
		return "Excellent - Ready for the exam", "success"
	case scorePercent >= 70:
		return "Good - Almost ready", "warning"
	default:
		return "Needs more study", "danger"
	}
}

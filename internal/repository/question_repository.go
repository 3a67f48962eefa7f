package repository

import (
	"aws_quiz_backend/internal/model"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
)

// QuestionRepository is the read-only question bank. It is loaded once at
// startup and never mutated, so it needs no locking.
type QuestionRepository struct {
	questions []model.Question
	byNumber  map[int]model.Question
}

func NewQuestionRepository(questions []model.Question) *QuestionRepository {
	sorted := append([]model.Question(nil), questions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Number < sorted[j].Number })

	byNumber := make(map[int]model.Question, len(sorted))
	for _, q := range sorted {
		byNumber[q.Number] = q
	}
	return &QuestionRepository{questions: sorted, byNumber: byNumber}
}

// LoadQuestionRepository reads the bundled bank file.
func LoadQuestionRepository(path string) (*QuestionRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}

	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse question bank %s: %w", path, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank %s is empty", path)
	}
	return NewQuestionRepository(questions), nil
}

func (r *QuestionRepository) Count() int {
	return len(r.questions)
}

// All returns the full bank in question-number order.
func (r *QuestionRepository) All() []model.Question {
	return append([]model.Question(nil), r.questions...)
}

func (r *QuestionRepository) ByNumber(number int) (model.Question, bool) {
	q, ok := r.byNumber[number]
	return q, ok
}

// Range returns the questions whose number falls in [start, end], in order.
func (r *QuestionRepository) Range(start, end int) []model.Question {
	var out []model.Question
	for _, q := range r.questions {
		if q.Number >= start && q.Number <= end {
			out = append(out, q)
		}
	}
	return out
}

// Sample returns n distinct questions in shuffled order.
func (r *QuestionRepository) Sample(n int, rng *rand.Rand) []model.Question {
	idx := rng.Perm(len(r.questions))[:n]
	out := make([]model.Question, n)
	for i, j := range idx {
		out[i] = r.questions[j]
	}
	return out
}

package repository

import (
	"aws_quiz_backend/internal/model"
	"math/rand"
	"path/filepath"
	"testing"
)

func loadTestBank(t *testing.T) *QuestionRepository {
	t.Helper()
	repo, err := LoadQuestionRepository(filepath.Join("testdata", "questions.json"))
	if err != nil {
		t.Fatalf("load question bank: %v", err)
	}
	return repo
}

func TestLoadQuestionRepository(t *testing.T) {
	repo := loadTestBank(t)

	if got := repo.Count(); got != 5 {
		t.Fatalf("Count() = %d, want 5", got)
	}

	q, ok := repo.ByNumber(3)
	if !ok {
		t.Fatal("ByNumber(3) not found")
	}
	if q.Kind != model.Mapping {
		t.Errorf("question 3 kind = %s, want %s", q.Kind, model.Mapping)
	}
	if q.CorrectMap["text_to_speech"] != "Amazon Polly" {
		t.Errorf("question 3 correct[text_to_speech] = %q", q.CorrectMap["text_to_speech"])
	}

	q, ok = repo.ByNumber(2)
	if !ok {
		t.Fatal("ByNumber(2) not found")
	}
	if q.Kind != model.MultipleChoice {
		t.Errorf("question 2 kind = %s, want %s", q.Kind, model.MultipleChoice)
	}

	if _, ok := repo.ByNumber(99); ok {
		t.Error("ByNumber(99) should not be found")
	}
}

func TestLoadQuestionRepositoryMissingFile(t *testing.T) {
	if _, err := LoadQuestionRepository(filepath.Join("testdata", "nope.json")); err == nil {
		t.Fatal("expected error for missing bank file")
	}
}

func TestQuestionRepositoryRange(t *testing.T) {
	repo := loadTestBank(t)

	got := repo.Range(2, 4)
	if len(got) != 3 {
		t.Fatalf("Range(2,4) returned %d questions, want 3", len(got))
	}
	for i, want := range []int{2, 3, 4} {
		if got[i].Number != want {
			t.Errorf("Range(2,4)[%d].Number = %d, want %d", i, got[i].Number, want)
		}
	}

	if got := repo.Range(10, 20); len(got) != 0 {
		t.Errorf("Range(10,20) returned %d questions, want 0", len(got))
	}
}

func TestQuestionRepositorySample(t *testing.T) {
	repo := loadTestBank(t)
	rng := rand.New(rand.NewSource(42))

	got := repo.Sample(3, rng)
	if len(got) != 3 {
		t.Fatalf("Sample(3) returned %d questions", len(got))
	}

	seen := make(map[int]bool, len(got))
	for _, q := range got {
		if seen[q.Number] {
			t.Fatalf("Sample returned duplicate question %d", q.Number)
		}
		seen[q.Number] = true
		if _, ok := repo.ByNumber(q.Number); !ok {
			t.Fatalf("Sample returned question %d that is not in the bank", q.Number)
		}
	}
}

func TestQuestionRepositoryAllSorted(t *testing.T) {
	unsorted := []model.Question{
		{Number: 3, Kind: model.SingleChoice},
		{Number: 1, Kind: model.SingleChoice},
		{Number: 2, Kind: model.SingleChoice},
	}
	repo := NewQuestionRepository(unsorted)

	all := repo.All()
	for i, want := range []int{1, 2, 3} {
		if all[i].Number != want {
			t.Errorf("All()[%d].Number = %d, want %d", i, all[i].Number, want)
		}
	}
}

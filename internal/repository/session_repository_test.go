package repository

import (
	"aws_quiz_backend/internal/model"
	"aws_quiz_backend/internal/util"
	"context"
	"errors"
	"testing"
	"time"
)

func newTestSession(id string) *model.QuizSession {
	questions := []model.Question{
		{
			Number:  1,
			Kind:    model.SingleChoice,
			Options: map[string]string{"A": "x", "B": "y"},
			Correct: []string{"A"},
		},
	}
	return model.NewQuizSession(id, model.ModeExam, questions)
}

func TestMemorySessionRoundTrip(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	session := newTestSession("s1")
	session.Answers[1] = model.Answer{Selected: []string{"B"}}
	session.Results[1] = false

	if err := repo.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if session.Version != 1 {
		t.Fatalf("Put set Version = %d, want 1", session.Version)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != "s1" || got.Mode != model.ModeExam || got.Status != model.StatusCreated {
		t.Fatalf("round trip lost scalar fields: %+v", got)
	}
	if len(got.Questions) != 1 || got.Questions[0].Number != 1 {
		t.Fatalf("round trip lost questions: %+v", got.Questions)
	}
	if a := got.Answers[1]; len(a.Selected) != 1 || a.Selected[0] != "B" {
		t.Fatalf("round trip lost answers: %+v", got.Answers)
	}
	if correct, ok := got.Results[1]; !ok || correct {
		t.Fatalf("round trip lost results: %+v", got.Results)
	}

	// The stored snapshot must not alias the caller's session.
	session.Answers[1] = model.Answer{Selected: []string{"A"}}
	again, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.Answers[1].Selected[0] != "B" {
		t.Fatal("store returned aliased state after caller mutation")
	}
}

func TestMemorySessionGetUnknown(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemorySessionUpdateBumpsVersion(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	session := newTestSession("s1")
	if err := repo.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	session.Status = model.StatusInProgress
	if err := repo.Update(ctx, session); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if session.Version != 2 {
		t.Fatalf("Version after update = %d, want 2", session.Version)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != model.StatusInProgress || got.Version != 2 {
		t.Fatalf("stored session = status %s version %d", got.Status, got.Version)
	}
}

func TestMemorySessionStaleUpdateConflicts(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	session := newTestSession("s1")
	if err := repo.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Two readers load version 1; the second writer must lose.
	first, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	first.Answers[1] = model.Answer{Selected: []string{"A"}}
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("first Update: %v", err)
	}

	second.Answers[1] = model.Answer{Selected: []string{"B"}}
	if err := repo.Update(ctx, second); !errors.Is(err, util.ErrVersionConflict) {
		t.Fatalf("stale Update error = %v, want ErrVersionConflict", err)
	}

	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Answers[1].Selected[0] != "A" {
		t.Fatalf("winning write lost: answers = %+v", got.Answers)
	}
}

func TestMemorySessionUpdateUnknown(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	session := newTestSession("ghost")
	session.Version = 1
	if err := repo.Update(context.Background(), session); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("Update(unknown) error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemorySessionExpiry(t *testing.T) {
	repo := NewMemorySessionRepository(10 * time.Millisecond)
	ctx := context.Background()

	if err := repo.Put(ctx, newTestSession("short")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if _, err := repo.Get(ctx, "short"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("Get after expiry error = %v, want ErrSessionNotFound", err)
	}
}

func TestMemorySessionCleanup(t *testing.T) {
	repo := NewMemorySessionRepository(10 * time.Millisecond)
	ctx := context.Background()

	if err := repo.Put(ctx, newTestSession("a")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Put(ctx, newTestSession("b")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(25 * time.Millisecond)

	if removed := repo.Cleanup(); removed != 2 {
		t.Fatalf("Cleanup removed %d sessions, want 2", removed)
	}
	if removed := repo.Cleanup(); removed != 0 {
		t.Fatalf("second Cleanup removed %d sessions, want 0", removed)
	}
}

func TestMemorySessionDelete(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	if err := repo.Put(ctx, newTestSession("s1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, util.ErrSessionNotFound) {
		t.Fatalf("Get after delete error = %v, want ErrSessionNotFound", err)
	}
}

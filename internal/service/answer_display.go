package service

import (
	"aws_quiz_backend/internal/model"
	"sort"
	"strings"
)

// answerDisplay renders a submitted answer for feedback and result views.
func answerDisplay(q model.Question, a model.Answer) string {
	if q.Kind == model.Mapping {
		parts := make([]string, 0, len(q.SubOptions))
		for _, sub := range q.SubQuestionKeys() {
			chosen := a.Mapping[sub]
			if chosen == "" {
				chosen = "Not answered"
			}
			parts = append(parts, subQuestionLabel(sub)+": "+chosen)
		}
		return strings.Join(parts, " | ")
	}

	if len(a.Selected) == 0 {
		return "Not answered"
	}
	selected := append([]string(nil), a.Selected...)
	sort.Strings(selected)
	return optionTexts(q, selected)
}

// correctDisplay renders the expected answer of a question.
func correctDisplay(q model.Question) string {
	if q.Kind == model.Mapping {
		parts := make([]string, 0, len(q.CorrectMap))
		for _, sub := range q.SubQuestionKeys() {
			parts = append(parts, subQuestionLabel(sub)+": "+q.CorrectMap[sub])
		}
		return strings.Join(parts, " | ")
	}

	correct := append([]string(nil), q.Correct...)
	sort.Strings(correct)
	return optionTexts(q, correct)
}

// optionTexts expands option letters into "A) text" form joined by pipes.
func optionTexts(q model.Question, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if text, ok := q.Options[k]; ok {
			parts = append(parts, k+") "+text)
		}
	}
	return strings.Join(parts, " | ")
}

// subQuestionLabel turns a snake_case sub-question key into display form.
func subQuestionLabel(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

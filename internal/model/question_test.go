package model

import (
	"encoding/json"
	"testing"
)

func TestQuestionKindDetection(t *testing.T) {
	tests := []struct {
		name string
		data string
		want QuestionKind
	}{
		{
			name: "single correct letter",
			data: `{"question_number":1,"question":"q","options":{"A":"x","B":"y"},"correct_answer":["A"]}`,
			want: SingleChoice,
		},
		{
			name: "two correct letters",
			data: `{"question_number":2,"question":"q","options":{"A":"x","B":"y","C":"z"},"correct_answer":["A","C"]}`,
			want: MultipleChoice,
		},
		{
			name: "object correct answer",
			data: `{"question_number":3,"question":"q","options":{"s1":["x","y"]},"correct_answer":{"s1":"x"}}`,
			want: Mapping,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q Question
			if err := json.Unmarshal([]byte(tt.data), &q); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if q.Kind != tt.want {
				t.Fatalf("kind = %s, want %s", q.Kind, tt.want)
			}
		})
	}
}

func TestEvaluateSingleChoice(t *testing.T) {
	q := Question{
		Number:  1,
		Kind:    SingleChoice,
		Options: map[string]string{"A": "right", "B": "wrong"},
		Correct: []string{"A"},
	}

	tests := []struct {
		name     string
		answer   Answer
		expected bool
	}{
		{"correct letter", Answer{Selected: []string{"A"}}, true},
		{"wrong letter", Answer{Selected: []string{"B"}}, false},
		{"no selection", Answer{}, false},
		{"extra selection", Answer{Selected: []string{"A", "B"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.Evaluate(tt.answer); got != tt.expected {
				t.Fatalf("Evaluate(%v) = %v, want %v", tt.answer.Selected, got, tt.expected)
			}
		})
	}
}

func TestEvaluateMultipleChoiceSetEquality(t *testing.T) {
	q := Question{
		Number:  2,
		Kind:    MultipleChoice,
		Options: map[string]string{"A": "1", "B": "2", "C": "3", "D": "4"},
		Correct: []string{"A", "C"},
	}

	tests := []struct {
		name     string
		selected []string
		expected bool
	}{
		{"exact set", []string{"A", "C"}, true},
		{"order insensitive", []string{"C", "A"}, true},
		{"subset", []string{"A"}, false},
		{"superset", []string{"A", "B", "C"}, false},
		{"disjoint", []string{"B", "D"}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.Evaluate(Answer{Selected: tt.selected}); got != tt.expected {
				t.Fatalf("Evaluate(%v) = %v, want %v", tt.selected, got, tt.expected)
			}
		})
	}
}

func TestEvaluateMapping(t *testing.T) {
	q := Question{
		Number: 3,
		Kind:   Mapping,
		SubOptions: map[string][]string{
			"text_to_speech": {"Amazon Polly", "Amazon Transcribe"},
			"speech_to_text": {"Amazon Polly", "Amazon Transcribe"},
		},
		CorrectMap: map[string]string{
			"text_to_speech": "Amazon Polly",
			"speech_to_text": "Amazon Transcribe",
		},
	}

	tests := []struct {
		name     string
		mapping  map[string]string
		expected bool
	}{
		{
			"all sub-questions correct",
			map[string]string{"text_to_speech": "Amazon Polly", "speech_to_text": "Amazon Transcribe"},
			true,
		},
		{
			"one sub-question wrong",
			map[string]string{"text_to_speech": "Amazon Transcribe", "speech_to_text": "Amazon Transcribe"},
			false,
		},
		{
			"missing sub-question",
			map[string]string{"text_to_speech": "Amazon Polly"},
			false,
		},
		{"nothing answered", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.Evaluate(Answer{Mapping: tt.mapping}); got != tt.expected {
				t.Fatalf("Evaluate(%v) = %v, want %v", tt.mapping, got, tt.expected)
			}
		})
	}
}

func TestMappingQuestionRoundTrip(t *testing.T) {
	original := Question{
		Number: 4,
		Text:   "match services",
		Kind:   Mapping,
		SubOptions: map[string][]string{
			"s1": {"x", "y"},
			"s2": {"x", "y"},
		},
		CorrectMap:  map[string]string{"s1": "x", "s2": "y"},
		Explanation: "because",
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Question
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.Kind != Mapping {
		t.Fatalf("kind = %s, want %s", decoded.Kind, Mapping)
	}
	if decoded.Number != original.Number || decoded.Text != original.Text || decoded.Explanation != original.Explanation {
		t.Fatalf("scalar fields not preserved: %+v", decoded)
	}
	for sub, want := range original.CorrectMap {
		if decoded.CorrectMap[sub] != want {
			t.Errorf("correct[%s] = %q, want %q", sub, decoded.CorrectMap[sub], want)
		}
	}
	for sub, want := range original.SubOptions {
		if len(decoded.SubOptions[sub]) != len(want) {
			t.Errorf("options[%s] length = %d, want %d", sub, len(decoded.SubOptions[sub]), len(want))
		}
	}
}

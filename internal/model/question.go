package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

type QuestionKind string

const (
	SingleChoice   QuestionKind = "single_choice"
	MultipleChoice QuestionKind = "multiple_choice"
	Mapping        QuestionKind = "mapping"
)

// Question is one record of the bank file. Standard questions carry
// letter-keyed options and a list of correct letters; mapping (hotspot)
// questions carry per-sub-question candidate lists and a sub-question to
// correct candidate map. Records are immutable once loaded.
type Question struct {
	Number      int
	Text        string
	Kind        QuestionKind
	Options     map[string]string
	SubOptions  map[string][]string
	Correct     []string
	CorrectMap  map[string]string
	Explanation string
}

// Answer is a submitted answer for one question. Selected is used by choice
// questions, Mapping by hotspot questions.
type Answer struct {
	Selected []string          `json:"selected,omitempty"`
	Mapping  map[string]string `json:"mapping,omitempty"`
}

// questionJSON mirrors the bank file shape. The options and correct_answer
// fields are shape-polymorphic: objects of strings for standard questions,
// objects of lists / objects for mapping questions.
type questionJSON struct {
	Number      int             `json:"question_number"`
	Text        string          `json:"question"`
	Options     json.RawMessage `json:"options"`
	Correct     json.RawMessage `json:"correct_answer"`
	Explanation string          `json:"explanation,omitempty"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	q.Number = raw.Number
	q.Text = raw.Text
	q.Explanation = raw.Explanation
	q.Options = nil
	q.SubOptions = nil
	q.Correct = nil
	q.CorrectMap = nil

	// Object-valued correct_answer identifies a mapping question.
	var correctMap map[string]string
	if err := json.Unmarshal(raw.Correct, &correctMap); err == nil {
		var subOptions map[string][]string
		if err := json.Unmarshal(raw.Options, &subOptions); err != nil {
			return fmt.Errorf("question %d: mapping options: %w", raw.Number, err)
		}
		q.Kind = Mapping
		q.SubOptions = subOptions
		q.CorrectMap = correctMap
		return nil
	}

	var correct []string
	if err := json.Unmarshal(raw.Correct, &correct); err != nil {
		return fmt.Errorf("question %d: correct_answer: %w", raw.Number, err)
	}
	var options map[string]string
	if err := json.Unmarshal(raw.Options, &options); err != nil {
		return fmt.Errorf("question %d: options: %w", raw.Number, err)
	}

	q.Options = options
	q.Correct = correct
	if len(correct) > 1 {
		q.Kind = MultipleChoice
	} else {
		q.Kind = SingleChoice
	}
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	raw := questionJSON{
		Number:      q.Number,
		Text:        q.Text,
		Explanation: q.Explanation,
	}

	var err error
	if q.Kind == Mapping {
		if raw.Options, err = json.Marshal(q.SubOptions); err != nil {
			return nil, err
		}
		if raw.Correct, err = json.Marshal(q.CorrectMap); err != nil {
			return nil, err
		}
	} else {
		if raw.Options, err = json.Marshal(q.Options); err != nil {
			return nil, err
		}
		if raw.Correct, err = json.Marshal(q.Correct); err != nil {
			return nil, err
		}
	}
	return json.Marshal(raw)
}

// answerEvaluator scores one submitted answer against the expected one.
// Each question kind has its own implementation.
type answerEvaluator interface {
	Evaluate(a Answer) bool
}

type singleChoiceEvaluator struct {
	correct string
}

func (e singleChoiceEvaluator) Evaluate(a Answer) bool {
	return len(a.Selected) == 1 && a.Selected[0] == e.correct
}

type multipleChoiceEvaluator struct {
	correct []string
}

func (e multipleChoiceEvaluator) Evaluate(a Answer) bool {
	if len(a.Selected) != len(e.correct) {
		return false
	}
	got := append([]string(nil), a.Selected...)
	want := append([]string(nil), e.correct...)
	sort.Strings(got)
	sort.Strings(want)
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

type mappingEvaluator struct {
	correct map[string]string
}

func (e mappingEvaluator) Evaluate(a Answer) bool {
	for sub, want := range e.correct {
		if a.Mapping[sub] != want {
			return false
		}
	}
	return true
}

func (q Question) evaluator() answerEvaluator {
	switch q.Kind {
	case Mapping:
		return mappingEvaluator{correct: q.CorrectMap}
	case MultipleChoice:
		return multipleChoiceEvaluator{correct: q.Correct}
	default:
		correct := ""
		if len(q.Correct) > 0 {
			correct = q.Correct[0]
		}
		return singleChoiceEvaluator{correct: correct}
	}
}

// Evaluate reports whether the submitted answer matches the correct one:
// exact value for single choice, set equality for multiple choice, and a
// full sub-question match for mapping questions.
func (q Question) Evaluate(a Answer) bool {
	return q.evaluator().Evaluate(a)
}

// OptionKeys returns the option letters in display order.
func (q Question) OptionKeys() []string {
	keys := make([]string, 0, len(q.Options))
	for k := range q.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SubQuestionKeys returns the mapping sub-questions in display order.
func (q Question) SubQuestionKeys() []string {
	keys := make([]string, 0, len(q.SubOptions))
	for k := range q.SubOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

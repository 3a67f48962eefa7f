package service

import (
	"aws_quiz_backend/internal/model"
	"math/rand"
	"sort"
)

// shuffleQuestionOptions returns a copy of the question with its answer
// options in random order and the correct-answer references remapped so
// correctness is preserved. Sessions own these copies; the bank stays
// untouched.
func shuffleQuestionOptions(q model.Question, rng *rand.Rand) model.Question {
	if q.Kind == model.Mapping {
		return shuffleMappingOptions(q, rng)
	}
	return shuffleChoiceOptions(q, rng)
}

// shuffleChoiceOptions shuffles the option texts across the fixed letter
// keys and rewrites the correct letters to follow their texts.
func shuffleChoiceOptions(q model.Question, rng *rand.Rand) model.Question {
	keys := q.OptionKeys()
	texts := make([]string, len(keys))
	for i, k := range keys {
		texts[i] = q.Options[k]
	}
	rng.Shuffle(len(texts), func(i, j int) {
		texts[i], texts[j] = texts[j], texts[i]
	})

	options := make(map[string]string, len(keys))
	textToKey := make(map[string]string, len(keys))
	for i, k := range keys {
		options[k] = texts[i]
		textToKey[texts[i]] = k
	}

	correct := make([]string, len(q.Correct))
	for i, letter := range q.Correct {
		correct[i] = textToKey[q.Options[letter]]
	}
	sort.Strings(correct)

	shuffled := q
	shuffled.Options = options
	shuffled.Correct = correct
	return shuffled
}

// shuffleMappingOptions shuffles each sub-question's candidate list. The
// correct answers are identified by content, so they stay as they are.
func shuffleMappingOptions(q model.Question, rng *rand.Rand) model.Question {
	subOptions := make(map[string][]string, len(q.SubOptions))
	for sub, candidates := range q.SubOptions {
		list := append([]string(nil), candidates...)
		rng.Shuffle(len(list), func(i, j int) {
			list[i], list[j] = list[j], list[i]
		})
		subOptions[sub] = list
	}

	shuffled := q
	shuffled.SubOptions = subOptions
	return shuffled
}

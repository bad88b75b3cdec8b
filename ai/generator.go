package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// GenerationError is returned when the model's output cannot be turned into a
// usable question. Kind is "parse" when no valid JSON came back and "schema"
// when the JSON was well-formed but the question itself was malformed.
type GenerationError struct {
	Kind    string
	Reason  string
	Wrapped error
}

func (e *GenerationError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("question generation failed (%s): %s: %v", e.Kind, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("question generation failed (%s): %s", e.Kind, e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Wrapped }

type GeneratedOption struct {
	Option string `json:"option"`
	Text   string `json:"text"`
}

// GeneratedMCQ is the model's answer to a generation prompt, validated but
// not yet persisted.
type GeneratedMCQ struct {
	QuestionText  string            `json:"questionText"`
	Options       []GeneratedOption `json:"options"`
	CorrectOption GeneratedOption   `json:"correctOption"`
	Explanation   string            `json:"explanation"`
}

var optionTags = []string{"A", "B", "C", "D"}

// GenerateQuestion asks the model for one multiple-choice question on the
// given subject/topic/subtopic at the given difficulty (0..100). The caller
// decides whether and how to persist the result.
func (c *Client) GenerateQuestion(ctx context.Context, subjectName, level, topic, subtopic string, difficulty float64) (GeneratedMCQ, error) {
	prompt := buildQuestionPrompt(subjectName, level, topic, subtopic, difficulty)

	raw, err := c.Complete(ctx, prompt, 0.7)
	if err != nil {
		return GeneratedMCQ{}, &GenerationError{Kind: "parse", Reason: "completion failed", Wrapped: err}
	}

	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return GeneratedMCQ{}, &GenerationError{Kind: "parse", Reason: "no JSON object in model output"}
	}

	var mcq GeneratedMCQ
	if err := json.Unmarshal([]byte(jsonStr), &mcq); err != nil {
		return GeneratedMCQ{}, &GenerationError{Kind: "parse", Reason: "invalid JSON from model", Wrapped: err}
	}

	if err := validateMCQ(mcq); err != nil {
		return GeneratedMCQ{}, err
	}
	return mcq, nil
}

// validateMCQ enforces the question shape: non-empty stem, exactly the four
// tags A..D each appearing once with text, and a correct option matching one
// of them.
func validateMCQ(mcq GeneratedMCQ) error {
	if strings.TrimSpace(mcq.QuestionText) == "" {
		return &GenerationError{Kind: "schema", Reason: "empty question text"}
	}
	if len(mcq.Options) != len(optionTags) {
		return &GenerationError{Kind: "schema", Reason: fmt.Sprintf("expected %d options, got %d", len(optionTags), len(mcq.Options))}
	}

	seen := make(map[string]string, len(mcq.Options))
	for _, opt := range mcq.Options {
		if strings.TrimSpace(opt.Text) == "" {
			return &GenerationError{Kind: "schema", Reason: "empty text for option " + opt.Option}
		}
		if _, dup := seen[opt.Option]; dup {
			return &GenerationError{Kind: "schema", Reason: "duplicate option tag " + opt.Option}
		}
		seen[opt.Option] = opt.Text
	}
	for _, tag := range optionTags {
		if _, ok := seen[tag]; !ok {
			return &GenerationError{Kind: "schema", Reason: "missing option " + tag}
		}
	}
	if _, ok := seen[mcq.CorrectOption.Option]; !ok {
		return &GenerationError{Kind: "schema", Reason: "correct option " + mcq.CorrectOption.Option + " is not among the options"}
	}
	return nil
}

// buildQuestionPrompt asks for a single MCQ. The explanation budget grows
// with difficulty so harder questions get fuller working.
func buildQuestionPrompt(subjectName, level, topic, subtopic string, difficulty float64) string {
	explanationWords := int(difficulty) * 4
	if explanationWords < 40 {
		explanationWords = 40
	}

	return fmt.Sprintf(`You are an examiner writing one multiple-choice practice question.

Subject: %s
Level: %s
Topic: %s
Subtopic: %s
Target difficulty: %.0f on a 0-100 scale, where 0 means almost every student answers correctly and 100 means almost none do.

Write exactly one question with four options tagged A, B, C and D, one of which is correct. Keep the question self-contained. The explanation should be roughly %d words and walk through why the correct option is right.

Respond with ONLY this JSON on a single line, no markdown:
{"questionText": "...", "options": [{"option": "A", "text": "..."}, {"option": "B", "text": "..."}, {"option": "C", "text": "..."}, {"option": "D", "text": "..."}], "correctOption": {"option": "A", "text": "..."}, "explanation": "..."}`,
		subjectName, level, topic, subtopic, difficulty, explanationWords)
}

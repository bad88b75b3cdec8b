package ai

import (
	"context"
	"encoding/json"
	"strings"
)

// EssayGrade is the model's verdict on a submitted essay.
type EssayGrade struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback"`
}

// GradeEssay sends the essay to the model and returns a 0..100 grade with
// written feedback.
func (c *Client) GradeEssay(ctx context.Context, subjectName, essayPrompt, essayText string) (EssayGrade, error) {
	prompt := buildEssayPrompt(subjectName, essayPrompt, essayText)

	raw, err := c.Complete(ctx, prompt, 0.2)
	if err != nil {
		return EssayGrade{}, &GenerationError{Kind: "parse", Reason: "completion failed", Wrapped: err}
	}

	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return EssayGrade{}, &GenerationError{Kind: "parse", Reason: "no JSON object in model output"}
	}

	var grade EssayGrade
	if err := json.Unmarshal([]byte(jsonStr), &grade); err != nil {
		return EssayGrade{}, &GenerationError{Kind: "parse", Reason: "invalid JSON from model", Wrapped: err}
	}

	if grade.Grade < 0 || grade.Grade > 100 {
		return EssayGrade{}, &GenerationError{Kind: "schema", Reason: "grade out of range"}
	}
	if strings.TrimSpace(grade.Feedback) == "" {
		return EssayGrade{}, &GenerationError{Kind: "schema", Reason: "empty feedback"}
	}
	return grade, nil
}

func buildEssayPrompt(subjectName, essayPrompt, essayText string) string {
	var b strings.Builder
	b.WriteString("You are an experienced ")
	b.WriteString(subjectName)
	b.WriteString(" examiner grading a student essay.\n\n")
	b.WriteString("ESSAY PROMPT:\n")
	b.WriteString(essayPrompt)
	b.WriteString("\n\nSTUDENT ESSAY:\n")
	b.WriteString(essayText)
	b.WriteString("\n\nGrade the essay from 0 to 100 against the prompt. Give specific, constructive feedback on content, structure and argument.\n\n")
	b.WriteString(`Respond with ONLY this JSON, no markdown: {"grade": 0, "feedback": "..."}`)
	return b.String()
}

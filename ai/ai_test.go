package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, extractJSON("Here you go:\n```json\n{\"a\":1}\n```\nHope that helps."))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSON(`prefix {"a":{"b":2}} suffix`))
	assert.Equal(t, `{"text":"has } brace"}`, extractJSON(`{"text":"has } brace"}`))
	assert.Equal(t, `{"text":"esc \" quote}"}`, extractJSON(`{"text":"esc \" quote}"}`))
	assert.Equal(t, "", extractJSON("no json here"))
	assert.Equal(t, "", extractJSON(`{"unterminated": true`))
}

func validGenerated() GeneratedMCQ {
	return GeneratedMCQ{
		QuestionText: "What is the molar mass of water?",
		Options: []GeneratedOption{
			{Option: "A", Text: "16 g/mol"},
			{Option: "B", Text: "18 g/mol"},
			{Option: "C", Text: "20 g/mol"},
			{Option: "D", Text: "34 g/mol"},
		},
		CorrectOption: GeneratedOption{Option: "B", Text: "18 g/mol"},
		Explanation:   "Two hydrogens at 1 g/mol each plus one oxygen at 16 g/mol.",
	}
}

func TestValidateMCQ(t *testing.T) {
	assert.NoError(t, validateMCQ(validGenerated()))

	mcq := validGenerated()
	mcq.QuestionText = "  "
	err := validateMCQ(mcq)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "schema", genErr.Kind)

	mcq = validGenerated()
	mcq.Options = mcq.Options[:3]
	require.ErrorAs(t, validateMCQ(mcq), &genErr)
	assert.Equal(t, "schema", genErr.Kind)

	mcq = validGenerated()
	mcq.Options[2].Text = ""
	require.ErrorAs(t, validateMCQ(mcq), &genErr)
	assert.Equal(t, "schema", genErr.Kind)

	mcq = validGenerated()
	mcq.Options[3].Option = "A"
	require.ErrorAs(t, validateMCQ(mcq), &genErr)
	assert.Equal(t, "schema", genErr.Kind)

	mcq = validGenerated()
	mcq.CorrectOption = GeneratedOption{Option: "E", Text: "none"}
	require.ErrorAs(t, validateMCQ(mcq), &genErr)
	assert.Equal(t, "schema", genErr.Kind)
}

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)

		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateQuestionRoundTrip(t *testing.T) {
	body, _ := json.Marshal(validGenerated())
	srv := chatServer(t, "Sure, here is the question:\n"+string(body))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	mcq, err := c.GenerateQuestion(context.Background(), "Chemistry", "IGCSE", "Stoichiometry", "The mole concept", 62)
	require.NoError(t, err)
	assert.Equal(t, "B", mcq.CorrectOption.Option)
	assert.Len(t, mcq.Options, 4)
}

func TestGenerateQuestionParseError(t *testing.T) {
	srv := chatServer(t, "I cannot answer that.")
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	_, err := c.GenerateQuestion(context.Background(), "Chemistry", "IGCSE", "Stoichiometry", "The mole concept", 50)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "parse", genErr.Kind)
}

func TestGenerateQuestionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	_, err := c.GenerateQuestion(context.Background(), "Chemistry", "IGCSE", "Stoichiometry", "The mole concept", 50)
	assert.Error(t, err)
	var genErr *GenerationError
	assert.True(t, errors.As(err, &genErr))
}

func TestGradeEssayRoundTrip(t *testing.T) {
	srv := chatServer(t, `{"grade": 74, "feedback": "Strong thesis but the second argument needs evidence."}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	grade, err := c.GradeEssay(context.Background(), "Economics", "Discuss the effects of tariffs.", "Tariffs raise prices...")
	require.NoError(t, err)
	assert.Equal(t, 74, grade.Grade)
	assert.NotEmpty(t, grade.Feedback)
}

func TestGradeEssayRejectsOutOfRangeGrade(t *testing.T) {
	srv := chatServer(t, `{"grade": 140, "feedback": "ok"}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model")
	_, err := c.GradeEssay(context.Background(), "Economics", "Prompt", "Essay")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "schema", genErr.Kind)
}

func TestBuildQuestionPromptScalesExplanation(t *testing.T) {
	easy := buildQuestionPrompt("Chemistry", "IGCSE", "Acids", "pH", 5)
	hard := buildQuestionPrompt("Chemistry", "IGCSE", "Acids", "pH", 90)
	assert.Contains(t, easy, "roughly 40 words")
	assert.Contains(t, hard, "roughly 360 words")
}

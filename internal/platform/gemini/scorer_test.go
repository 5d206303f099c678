package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/phrazzld/amora-api/internal/config"
	"github.com/phrazzld/amora-api/internal/scoring"
)

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matchmaker.tmpl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewScorerValidatesConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := NewScorer(ctx, nil, config.EngineConfig{
		ModelName:          "gemini-2.5-flash",
		PromptTemplatePath: "prompts/matchmaker.tmpl",
	})
	assert.ErrorIs(t, err, scoring.ErrInvalidConfig)

	_, err = NewScorer(ctx, nil, config.EngineConfig{
		GeminiAPIKey:       "key",
		PromptTemplatePath: "prompts/matchmaker.tmpl",
	})
	assert.ErrorIs(t, err, scoring.ErrInvalidConfig)

	_, err = NewScorer(ctx, nil, config.EngineConfig{
		GeminiAPIKey: "key",
		ModelName:    "gemini-2.5-flash",
	})
	assert.ErrorIs(t, err, scoring.ErrInvalidConfig)

	// missing template file fails fast with the location in the message
	missing := filepath.Join(t.TempDir(), "nope.tmpl")
	_, err = NewScorer(ctx, nil, config.EngineConfig{
		GeminiAPIKey:       "key",
		ModelName:          "gemini-2.5-flash",
		PromptTemplatePath: missing,
	})
	require.ErrorIs(t, err, scoring.ErrInvalidConfig)
	assert.Contains(t, err.Error(), missing)
}

func TestCreatePrompt(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("matchmaker").Parse(
		"A: {{.ProfileA.Age}} {{.ProfileA.Gender}} in {{.ProfileA.City}} likes {{.ProfileA.Interests}} " +
			"B: {{.ProfileB.Goal}}"))
	s := &Scorer{promptTemplate: tmpl}

	rawA := json.RawMessage(`{"id":1,"name":"Ada","age":31,"gender":"Female",` +
		`"location":{"city":"Lisbon","country":"Portugal"},"interests":["chess","sailing"],` +
		`"preferences":{"preferred_age_range":[25,40],"preferred_genders":[],"relationship_goal":"Serious"}}`)
	rawB := json.RawMessage(`{"id":2,"name":"Brook","age":29,"gender":{"Other":"agender"},` +
		`"location":{"city":"Porto","country":"Portugal"},"interests":[],` +
		`"preferences":{"preferred_age_range":[25,40],"preferred_genders":[],"relationship_goal":{"Other":"travel buddy"}}}`)

	prompt, err := s.createPrompt(rawA, rawB)
	require.NoError(t, err)
	assert.Contains(t, prompt, "A: 31 Female in Lisbon likes chess, sailing")
	assert.Contains(t, prompt, "B: travel buddy")
}

func TestCreatePromptRejectsUndecodableRecord(t *testing.T) {
	t.Parallel()

	tmpl := template.Must(template.New("matchmaker").Parse("x"))
	s := &Scorer{promptTemplate: tmpl}

	_, err := s.createPrompt(json.RawMessage(`{"age":"old"}`), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, scoring.ErrSerialization)
}

func scoreFixtures() (json.RawMessage, json.RawMessage) {
	rawA := json.RawMessage(`{"id":1,"name":"Ada","age":31,"gender":"Female",` +
		`"location":{"city":"Lisbon","country":"Portugal"},"interests":["chess"],` +
		`"preferences":{"preferred_age_range":[25,40],"preferred_genders":[],"relationship_goal":"Serious"}}`)
	rawB := json.RawMessage(`{"id":2,"name":"Brook","age":29,"gender":"Male",` +
		`"location":{"city":"Porto","country":"Portugal"},"interests":["chess"],` +
		`"preferences":{"preferred_age_range":[25,40],"preferred_genders":[],"relationship_goal":"Serious"}}`)
	return rawA, rawB
}

func newTestScorer(models contentGenerator) *Scorer {
	return &Scorer{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		promptTemplate: template.Must(template.New("matchmaker").Parse("score {{.ProfileA.Age}} vs {{.ProfileB.Age}}")),
		models:         models,
		model:          "gemini-2.5-flash",
	}
}

func TestScoreDecodesVerdictFromResponse(t *testing.T) {
	t.Parallel()

	mock := &mockContentGenerator{resp: textResponse("```json\n{\"Score\": 7.5}\n```")}
	s := newTestScorer(mock)

	rawA, rawB := scoreFixtures()
	score, err := s.Score(context.Background(), rawA, rawB)
	require.NoError(t, err)
	assert.InDelta(t, 7.5, score, 1e-6)

	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, "gemini-2.5-flash", mock.lastModel)
	assert.Contains(t, mock.lastPrompt, "score 31 vs 29")
}

func TestScoreConcatenatesTextParts(t *testing.T) {
	t.Parallel()

	mock := &mockContentGenerator{resp: textResponse(`{"Score"`, `: 4}`)}
	s := newTestScorer(mock)

	rawA, rawB := scoreFixtures()
	score, err := s.Score(context.Background(), rawA, rawB)
	require.NoError(t, err)
	assert.InDelta(t, 4, score, 1e-6)
}

func TestScoreMapsAPIFailureToUnavailable(t *testing.T) {
	t.Parallel()

	mock := &mockContentGenerator{err: errors.New("connection refused")}
	s := newTestScorer(mock)

	rawA, rawB := scoreFixtures()
	_, err := s.Score(context.Background(), rawA, rawB)
	assert.ErrorIs(t, err, scoring.ErrUnavailable)
}

func TestScoreRejectsEmptyResponse(t *testing.T) {
	t.Parallel()

	for _, resp := range []*genai.GenerateContentResponse{
		nil,
		{},
		{Candidates: []*genai.Candidate{{}}},
	} {
		s := newTestScorer(&mockContentGenerator{resp: resp})
		rawA, rawB := scoreFixtures()
		_, err := s.Score(context.Background(), rawA, rawB)
		assert.ErrorIs(t, err, scoring.ErrRuntime)
	}
}

func TestScoreRejectsSafetyBlockedResponse(t *testing.T) {
	t.Parallel()

	resp := textResponse("blocked")
	resp.Candidates[0].FinishReason = genai.FinishReasonSafety
	s := newTestScorer(&mockContentGenerator{resp: resp})

	rawA, rawB := scoreFixtures()
	_, err := s.Score(context.Background(), rawA, rawB)
	require.ErrorIs(t, err, scoring.ErrRuntime)
	assert.Contains(t, err.Error(), "safety")
}

func TestScoreRejectsNonVerdictOutput(t *testing.T) {
	t.Parallel()

	s := newTestScorer(&mockContentGenerator{resp: textResponse("they seem nice together")})

	rawA, rawB := scoreFixtures()
	_, err := s.Score(context.Background(), rawA, rawB)
	assert.ErrorIs(t, err, scoring.ErrSerialization)
}

func TestDecodeVerdict(t *testing.T) {
	t.Parallel()

	score, err := decodeVerdict(`{"Score": 8.5}`)
	require.NoError(t, err)
	assert.InDelta(t, 8.5, score, 1e-6)

	score, err = decodeVerdict("```json\n{\"Score\": 3}\n```")
	require.NoError(t, err)
	assert.InDelta(t, 3, score, 1e-6)

	_, err = decodeVerdict("they seem nice together")
	assert.ErrorIs(t, err, scoring.ErrSerialization)
}

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/phrazzld/amora-api/internal/config"
	"github.com/phrazzld/amora-api/internal/domain"
	"github.com/phrazzld/amora-api/internal/scoring"
)

// contentGenerator is the slice of the genai client the scorer calls.
// Tests substitute a double for it.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Scorer implements the scoring.Scorer interface using the Gemini API.
type Scorer struct {
	logger         *slog.Logger
	promptTemplate *template.Template
	models         contentGenerator
	model          string
}

// NewScorer creates a Gemini-backed scoring engine with the provided
// dependencies. The prompt template path is the filesystem location where
// the engine's behavior is defined; construction fails fast with a
// descriptive error if it cannot be read.
func NewScorer(ctx context.Context, logger *slog.Logger, cfg config.EngineConfig) (*Scorer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", scoring.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", scoring.ErrInvalidConfig)
	}
	if cfg.PromptTemplatePath == "" {
		return nil, fmt.Errorf("%w: prompt template path cannot be empty", scoring.ErrInvalidConfig)
	}

	templateContent, err := os.ReadFile(cfg.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
			scoring.ErrInvalidConfig, cfg.PromptTemplatePath, err)
	}

	promptTemplate, err := template.New("matchmaker").Parse(string(templateContent))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			scoring.ErrInvalidConfig, err)
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			scoring.ErrInvalidConfig, err)
	}

	return &Scorer{
		logger:         logger,
		promptTemplate: promptTemplate,
		models:         client.Models,
		model:          cfg.ModelName,
	}, nil
}

// Score implements scoring.Scorer. A single API attempt is made; the
// orchestration layer owns any retry policy, and here that policy is none.
func (s *Scorer) Score(ctx context.Context, profileA, profileB json.RawMessage) (float32, error) {
	prompt, err := s.createPrompt(profileA, profileB)
	if err != nil {
		return 0, err
	}

	s.logger.DebugContext(ctx, "making Gemini API call",
		"model", s.model,
		"prompt_length", len(prompt))

	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: gemini API call failed: %v", scoring.ErrUnavailable, err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return 0, fmt.Errorf("%w: empty response from model", scoring.ErrRuntime)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return 0, fmt.Errorf("%w: response blocked by safety filters", scoring.ErrRuntime)
	}

	text := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text += part.Text
		}
	}

	score, err := decodeVerdict(text)
	if err != nil {
		return 0, err
	}

	s.logger.DebugContext(ctx, "Gemini API call successful", "score", score)
	return score, nil
}

// createPrompt renders both serialized profiles into the matchmaker
// prompt. Records that cannot be decoded map to ErrSerialization.
func (s *Scorer) createPrompt(profileA, profileB json.RawMessage) (string, error) {
	a, err := flatten(profileA)
	if err != nil {
		return "", fmt.Errorf("%w: profile_a: %v", scoring.ErrSerialization, err)
	}
	b, err := flatten(profileB)
	if err != nil {
		return "", fmt.Errorf("%w: profile_b: %v", scoring.ErrSerialization, err)
	}

	var buf bytes.Buffer
	if err := s.promptTemplate.Execute(&buf, promptData{ProfileA: a, ProfileB: b}); err != nil {
		return "", fmt.Errorf("%w: failed to execute prompt template: %v",
			scoring.ErrRuntime, err)
	}
	return buf.String(), nil
}

// flatten decodes one serialized profile into the template's flat shape.
func flatten(raw json.RawMessage) (promptProfile, error) {
	var p domain.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return promptProfile{}, err
	}
	return promptProfile{
		Age:       p.Age,
		Gender:    p.Gender.String(),
		City:      p.Location.City,
		Country:   p.Location.Country,
		Interests: strings.Join(p.Interests, ", "),
		Goal:      p.Preferences.RelationshipGoal.String(),
	}, nil
}

// decodeVerdict parses the model's {"Score": <n>} reply, tolerating the
// code fences Gemini likes to wrap JSON in.
func decodeVerdict(text string) (float32, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var v verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		return 0, fmt.Errorf("%w: model output is not a score verdict: %v",
			scoring.ErrSerialization, err)
	}
	return v.Score, nil
}

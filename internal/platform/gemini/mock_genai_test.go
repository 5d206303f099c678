package gemini

import (
	"context"

	"google.golang.org/genai"
)

// mockContentGenerator stands in for the genai Models surface so the
// response-handling path can be tested without network access.
type mockContentGenerator struct {
	resp *genai.GenerateContentResponse
	err  error

	calls      int
	lastModel  string
	lastPrompt string
}

func (m *mockContentGenerator) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	m.calls++
	m.lastModel = model
	if len(contents) > 0 && contents[0] != nil && len(contents[0].Parts) > 0 && contents[0].Parts[0] != nil {
		m.lastPrompt = contents[0].Parts[0].Text
	}
	return m.resp, m.err
}

// textResponse builds a response whose single candidate carries the given
// text parts.
func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, text := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: content},
		},
	}
}

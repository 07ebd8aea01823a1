package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel модель Gemini по умолчанию
const DefaultModel = "gemini-2.5-flash"

// GeminiGenerator генерация через Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator создаёт клиента Gemini. Ключ читается один раз, при старте.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate выполняет один запрос generateContent
func (g *GeminiGenerator) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}

package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

// Тексты, которые возвращаются вместо ошибок
const (
	UnavailableText = "AI Feature Unavailable: API Key is missing in environment variables."
	NoResponseText  = "No response generated."
	ErrorText       = "Sorry, I encountered an error while processing your request. Please try again later."
)

// Generator бэкенд генерации текста
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// Bridge помощник для черновиков. Generate всегда возвращает текст и никогда ошибку.
type Bridge struct {
	gen    Generator
	logger *zap.Logger
}

// NewBridge создаёт помощника; gen == nil означает, что ключ API не настроен
func NewBridge(gen Generator, logger *zap.Logger) *Bridge {
	return &Bridge{gen: gen, logger: logger}
}

// Available настроен ли бэкенд
func (b *Bridge) Available() bool {
	return b.gen != nil
}

// Generate отправляет запрос с инструкцией для роли и возвращает текст ответа
func (b *Bridge) Generate(ctx context.Context, prompt string, role model.Role) string {
	if b.gen == nil {
		return UnavailableText
	}
	if strings.TrimSpace(prompt) == "" {
		return NoResponseText
	}

	text, err := b.gen.Generate(ctx, prompt, SystemInstruction(role))
	if err != nil {
		b.logger.Error("Generation backend failed",
			zap.String("role", string(role)),
			zap.Error(err))
		return ErrorText
	}

	if strings.TrimSpace(text) == "" {
		return NoResponseText
	}
	return text
}

package providers

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// EinoGenerator adapts an eino ChatModel to the booktools.TextGenerator
// interface.
type EinoGenerator struct {
	chatModel model.ChatModel
}

// NewEinoGenerator creates a generator backed by an eino ChatModel
// (created through ai/component.NewChatModel).
func NewEinoGenerator(chatModel model.ChatModel) *EinoGenerator {
	return &EinoGenerator{
		chatModel: chatModel,
	}
}

// Generate sends the prompt as a single user message and returns the
// model's completion.
func (g *EinoGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.chatModel == nil {
		return "", fmt.Errorf("chatModel is required")
	}

	messages := []*schema.Message{
		schema.UserMessage(prompt),
	}

	response, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if response.Content == "" {
		return "", fmt.Errorf("empty response from chat model")
	}

	return response.Content, nil
}

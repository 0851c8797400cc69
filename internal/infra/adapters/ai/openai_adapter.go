// File: internal/infra/adapters/ai/openai_adapter.go
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"telegram-ai-chatbot/internal/domain"
	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter implements adapter.AIServiceAdapter over the Chat Completions
// API. Images ride along as data-URL content parts.
type OpenAIAdapter struct {
	client       openai.Client
	defaultModel string
}

func NewOpenAIAdapter(apiKey, defaultModel string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai api key", domain.ErrConfigMissing)
	}
	if defaultModel == "" {
		defaultModel = "gpt-4o"
	}
	return &OpenAIAdapter{
		client:       openai.NewClient(option.WithAPIKey(apiKey)),
		defaultModel: defaultModel,
	}, nil
}

func (o *OpenAIAdapter) Name() string { return "gpt" }

func (o *OpenAIAdapter) Chat(ctx context.Context, modelName string, messages []adapter.Message, attachment *model.Extraction) (string, error) {
	if modelName == "" {
		modelName = o.defaultModel
	}
	if len(messages) == 0 {
		return "", errors.New("openai: no messages")
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(modelName),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for i, m := range messages {
		last := i == len(messages)-1
		switch m.Role {
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		default:
			if last {
				params.Messages = append(params.Messages, userMessageWithAttachment(m.Content, attachment))
			} else {
				params.Messages = append(params.Messages, openai.UserMessage(m.Content))
			}
		}
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExternalAPI, err)
	}
	for _, c := range resp.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", errors.New("openai: no choice content")
}

func userMessageWithAttachment(content string, attachment *model.Extraction) openai.ChatCompletionMessageParamUnion {
	if attachment == nil {
		return openai.UserMessage(content)
	}
	switch attachment.Kind {
	case model.ExtractionImage:
		return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(content),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL:    fmt.Sprintf("data:%s;base64,%s", attachment.MimeType, attachment.Base64Data),
				Detail: "high",
			}),
		})
	case model.ExtractionDocument:
		return openai.UserMessage(withDocumentText(content, attachment))
	default:
		return openai.UserMessage(content)
	}
}

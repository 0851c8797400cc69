// File: internal/infra/adapters/ai/gemini_adapter.go
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"telegram-ai-chatbot/internal/domain"
	"telegram-ai-chatbot/internal/domain/model"
	"telegram-ai-chatbot/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*GeminiAdapter)(nil)

type GeminiAdapter struct {
	client       *genai.Client
	defaultModel string
}

// NewGeminiAdapter creates a Gemini adapter using the official SDK.
func NewGeminiAdapter(ctx context.Context, apiKey, baseURL, defaultModel string) (*GeminiAdapter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini api key", domain.ErrConfigMissing)
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiAdapter{client: c, defaultModel: defaultModel}, nil
}

func (g *GeminiAdapter) Name() string { return "gemini" }

func (g *GeminiAdapter) Chat(ctx context.Context, modelName string, messages []adapter.Message, attachment *model.Extraction) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("gemini: no messages")
	}
	history := toGenAIHistory(messages[:len(messages)-1])

	chat, err := g.client.Chats.Create(
		ctx,
		modelOrDefault(modelName, g.defaultModel),
		&genai.GenerateContentConfig{},
		history,
	)
	if err != nil {
		return "", err
	}

	last := messages[len(messages)-1]
	if strings.ToLower(last.Role) != "user" {
		return "", errors.New("gemini: last message must be from user")
	}

	parts := []genai.Part{{Text: withDocumentText(last.Content, attachment)}}
	if attachment != nil && attachment.Kind == model.ExtractionImage {
		raw, decErr := base64.StdEncoding.DecodeString(attachment.Base64Data)
		if decErr == nil {
			parts = append(parts, genai.Part{
				InlineData: &genai.Blob{MIMEType: attachment.MimeType, Data: raw},
			})
		}
	}

	resp, err := chat.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExternalAPI, err)
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		if t := resp.Candidates[0].Content.Parts[0].Text; t != "" {
			text = t
		}
	}
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}

// withDocumentText folds extracted document text into the prompt; Gemini gets
// images as inline data instead.
func withDocumentText(prompt string, attachment *model.Extraction) string {
	if attachment == nil || attachment.Kind != model.ExtractionDocument || attachment.Text == "" {
		return prompt
	}
	return prompt + "\n\nDocument content:\n" + attachment.Text
}

func toGenAIHistory(msgs []adapter.Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		switch strings.ToLower(m.Role) {
		case "assistant", "model":
			role = genai.RoleModel
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return out
}

func modelOrDefault(modelName, def string) string {
	if strings.TrimSpace(modelName) != "" {
		return modelName
	}
	return def
}

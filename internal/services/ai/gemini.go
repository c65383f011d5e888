// File: internal/services/ai/gemini.go
package ai

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/avasilyev/geminichat/internal/services"
)

// GeminiProvider implements CompletionProvider on the Gemini API. Each
// Reply starts a chat session seeded with the translated history and sends
// the new message, mirroring the upstream start-conversation/send contract.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
	cfg    *Config
	logger services.Logger
}

func NewGeminiProvider(ctx context.Context, cfg *Config, logger services.Logger) (*GeminiProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, NewProviderError("new_client", "failed to create Gemini client", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)

	return &GeminiProvider{client: client, model: model, cfg: cfg, logger: logger}, nil
}

// Close releases the underlying API client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// Reply sends the message with the prior conversation attached and returns
// the model's text. The call is bounded by the configured timeout; a
// timeout surfaces like any other provider failure.
func (p *GeminiProvider) Reply(ctx context.Context, history []Turn, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	session := p.model.StartChat()
	session.History = make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		session.History = append(session.History, &genai.Content{
			Role:  turn.Role,
			Parts: []genai.Part{genai.Text(turn.Text)},
		})
	}

	resp, err := session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		p.logger.Error("completion request failed", "model", p.cfg.Model, "error", err)
		return "", NewProviderError("send_message", "completion request failed", err)
	}

	reply := extractText(resp)
	if reply == "" {
		p.logger.Warn("completion returned no text", "model", p.cfg.Model)
		return "", NewProviderError("send_message", "model returned an empty response", nil)
	}
	return reply, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}

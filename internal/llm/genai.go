package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/vitormoschetta/gemini-chat/internal/config"
)

// GenAIClient chama o Gemini diretamente pelo SDK google.golang.org/genai
type GenAIClient struct {
	client *genai.Client
	model  string
}

// NewGenAIClient cria o cliente; falha se a chave da API não foi informada
func NewGenAIClient(ctx context.Context, cfg config.ProviderConfig, httpClient *http.Client) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	client, err := genai.NewClient(ctx, clientConfig(cfg, httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIClient{client: client, model: cfg.Model}, nil
}

// GenerateContent envia o prompt e devolve o texto gerado
func (c *GenAIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", NewError(KindBlocked, fmt.Sprintf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
	}
	if len(resp.Candidates) == 0 {
		return "", NewError(KindEmptyResponse, "model returned no candidates")
	}

	candidate := resp.Candidates[0]
	text := textFromContent(candidate.Content)
	if text == "" {
		return "", NewError(KindEmptyResponse, fmt.Sprintf("model returned no text (finish reason: %s)", candidate.FinishReason))
	}
	return text, nil
}

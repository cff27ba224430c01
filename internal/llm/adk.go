package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"github.com/vitormoschetta/gemini-chat/internal/config"
)

// ADKClient usa a camada de modelo do ADK (model.LLM) para falar com o Gemini
type ADKClient struct {
	llm   model.LLM
	model string
}

func NewADKClient(ctx context.Context, cfg config.ProviderConfig, httpClient *http.Client) (*ADKClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	llmModel, err := gemini.NewModel(ctx, cfg.Model, clientConfig(cfg, httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	return &ADKClient{llm: llmModel, model: cfg.Model}, nil
}

// GenerateContent executa uma única chamada sem streaming
func (c *ADKClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	req := &model.LLMRequest{
		Model:    c.model,
		Contents: genai.Text(prompt),
		Config:   &genai.GenerateContentConfig{},
	}

	var responseText strings.Builder
	for response, err := range c.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return "", err
		}
		if response != nil {
			responseText.WriteString(textFromContent(response.Content))
		}
	}

	if responseText.Len() == 0 {
		return "", NewError(KindEmptyResponse, "model returned no text")
	}
	return responseText.String(), nil
}

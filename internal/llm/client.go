package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/vitormoschetta/gemini-chat/internal/config"
)

// ModelClient é a interface do modelo generativo externo
type ModelClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// New cria o cliente do modelo de acordo com o backend configurado
func New(ctx context.Context, cfg config.ProviderConfig, log *slog.Logger) (ModelClient, error) {
	httpClient := NewHTTPClient(log)

	switch cfg.Backend {
	case config.BackendGenAI, "":
		c, err := NewGenAIClient(ctx, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendADK:
		c, err := NewADKClient(ctx, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
}

func clientConfig(cfg config.ProviderConfig, httpClient *http.Client) *genai.ClientConfig {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	return cc
}

// textFromContent concatena as partes de texto, ignorando partes de raciocínio
func textFromContent(c *genai.Content) string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/vitormoschetta/gemini-chat/internal/llm"
)

// LengthDirective é anexada ao final de todo prompt enviado ao modelo
const LengthDirective = "\n\nImportant: Your response must be strictly less than 100 words."

// ErrMessageRequired indica que a mensagem veio ausente ou vazia
var ErrMessageRequired = errors.New("message is required")

// ChatService repassa mensagens ao modelo com prazo limitado
type ChatService struct {
	client  llm.ModelClient
	timeout time.Duration
	log     *slog.Logger
}

// NewChatService cria o serviço. Um timeout <= 0 desativa o prazo próprio
// e a chamada fica limitada apenas pelo context recebido.
func NewChatService(client llm.ModelClient, timeout time.Duration, log *slog.Logger) *ChatService {
	return &ChatService{
		client:  client,
		timeout: timeout,
		log:     log,
	}
}

// BuildPrompt monta o prompt com a instrução de tamanho no final
func BuildPrompt(message string) string {
	return "User query: " + message + LengthDirective
}

// Reply valida a mensagem, chama o modelo e devolve o texto gerado.
// Falhas do modelo sempre voltam como *llm.Error.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrMessageRequired
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.client.GenerateContent(ctx, BuildPrompt(message))
	if err != nil {
		return "", llm.Classify(err)
	}

	s.log.Debug("Model responded", "duration", time.Since(start), "chars", len(text))
	return text, nil
}

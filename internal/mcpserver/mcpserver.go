package mcpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/gemini-chat/internal/handler"
	"github.com/vitormoschetta/gemini-chat/internal/llm"
	"github.com/vitormoschetta/gemini-chat/internal/model"
	"github.com/vitormoschetta/gemini-chat/internal/service"
)

const ToolName = "chat"

// ChatInput são os argumentos da ferramenta chat
type ChatInput struct {
	Message string `json:"message" jsonschema:"the message to send to the model"`
}

// ChatOutput é o resultado estruturado da ferramenta chat
type ChatOutput struct {
	Response string `json:"response"`
}

// New cria o servidor MCP com a ferramenta chat registrada
func New(chat handler.ChatReplier, version string, log *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gemini-chat",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Send a message to Gemini and get a reply of fewer than 100 words.",
	}, chatTool(chat, log))

	return server
}

// NewHTTPHandler expõe o servidor via Streamable HTTP
func NewHTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}

func chatTool(chat handler.ChatReplier, log *slog.Logger) mcp.ToolHandlerFor[ChatInput, ChatOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ChatInput) (*mcp.CallToolResult, ChatOutput, error) {
		text, err := chat.Reply(ctx, in.Message)
		if errors.Is(err, service.ErrMessageRequired) {
			return toolError(model.MsgMessageRequired), ChatOutput{}, nil
		}
		if err != nil {
			provErr := llm.Classify(err)
			log.Error("Error generating response",
				"message", provErr.Message,
				"name", provErr.Kind,
				"stack", provErr.Stack,
				"surface", "mcp",
			)
			return toolError(model.MsgGenerationFailure + ": " + string(provErr.Kind) + ": " + provErr.Message), ChatOutput{}, nil
		}

		return nil, ChatOutput{Response: text}, nil
	}
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

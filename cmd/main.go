package main

import (
	"context"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vitormoschetta/gemini-chat/internal/config"
	"github.com/vitormoschetta/gemini-chat/internal/handler"
	"github.com/vitormoschetta/gemini-chat/internal/llm"
	"github.com/vitormoschetta/gemini-chat/internal/logger"
	"github.com/vitormoschetta/gemini-chat/internal/mcpserver"
	"github.com/vitormoschetta/gemini-chat/internal/server"
	"github.com/vitormoschetta/gemini-chat/internal/service"
	"github.com/vitormoschetta/gemini-chat/web"
)

var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.New(cfg.Log)
	slog.SetDefault(logg)

	if err := cfg.Validate(); err != nil {
		fatal(logg, "Invalid configuration", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Criar o cliente do modelo
	client, err := llm.New(ctx, cfg.Provider, logg)
	if err != nil {
		fatal(logg, "Failed to create model client", err)
	}
	logg.Info("✅ Model client initialized", "backend", cfg.Provider.Backend, "model", cfg.Provider.Model)

	chat := service.NewChatService(client, cfg.Provider.Timeout, logg)

	// Criar handlers
	h := handler.NewHandler(chat, publicFS(cfg.Server.PublicDir, logg), logg)

	var mcpHandler http.Handler
	if cfg.MCP.Enabled {
		mcpHandler = mcpserver.NewHTTPHandler(mcpserver.New(chat, version, logg))
	}

	// Configurar rotas com os handlers
	srv := server.NewServer(cfg.Server, logg)
	srv.SetupRouter(h, mcpHandler)

	// Iniciar servidor
	if err := srv.Start(ctx); err != nil {
		fatal(logg, "Server error", err)
	}
}

func publicFS(dir string, logg *slog.Logger) fs.FS {
	if dir == "" {
		return web.Static()
	}
	logg.Info("Serving static files from disk", "dir", dir)
	return os.DirFS(dir)
}

func fatal(logg *slog.Logger, msg string, err error) {
	logg.Error(msg, "error", err)
	os.Exit(1)
}

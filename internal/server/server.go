package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitormoschetta/gemini-chat/internal/config"
	"github.com/vitormoschetta/gemini-chat/internal/handler"
)

const shutdownTimeout = 5 * time.Second

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	cfg    config.ServerConfig
	log    *slog.Logger
	Router chi.Router
}

// NewServer cria uma nova instância do servidor
func NewServer(cfg config.ServerConfig, log *slog.Logger) *Server {
	return &Server{
		cfg: cfg,
		log: log,
	}
}

// SetupRouter configura as rotas e middlewares do Chi.
// mcpHandler pode ser nil quando o endpoint MCP está desativado.
func (s *Server) SetupRouter(h *handler.Handler, mcpHandler http.Handler) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	// Rotas
	r.Get("/", h.HandleRoot)
	r.Get("/health", h.HandleHealth)

	// API Routes
	r.Route("/api", func(r chi.Router) {
		if s.cfg.WriteTimeout > 0 {
			r.Use(middleware.Timeout(s.cfg.WriteTimeout))
		}
		r.Post("/chat", h.HandleChat)
	})

	if mcpHandler != nil {
		r.Handle("/mcp", mcpHandler)
	}

	// Arquivos estáticos
	r.Handle("/*", h.HandleStatic())

	s.Router = r
}

// Start inicia o servidor HTTP e bloqueia até o context ser cancelado,
// fazendo então o graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	if s.Router == nil {
		return errors.New("router not configured")
	}

	httpServer := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.Router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("🚀 Server running", "url", fmt.Sprintf("http://localhost%s", s.cfg.Addr()))
		s.log.Info("📌 Endpoints",
			"page", "GET /",
			"chat", "POST /api/chat",
			"health", "GET /health",
			"mcp", "/mcp",
		)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Aguardar sinal de interrupção ou falha do listener
	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("✅ Server stopped gracefully")
	return nil
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vitormoschetta/gemini-chat/internal/llm"
	"github.com/vitormoschetta/gemini-chat/internal/model"
	"github.com/vitormoschetta/gemini-chat/internal/service"
)

const maxBodyBytes = 1 << 20

// ChatReplier é o que o handler precisa do serviço de chat
type ChatReplier interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	chat   ChatReplier
	public fs.FS
	log    *slog.Logger
}

// NewHandler cria uma nova instância do Handler.
// public é o diretório de arquivos estáticos e precisa conter index.html.
func NewHandler(chat ChatReplier, public fs.FS, log *slog.Logger) *Handler {
	return &Handler{
		chat:   chat,
		public: public,
		log:    log,
	}
}

// HandleRoot serve a página inicial
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, h.public, "index.html")
}

// HandleStatic serve os demais arquivos públicos (js, css, imagens)
func (h *Handler) HandleStatic() http.Handler {
	return http.FileServerFS(h.public)
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.log.Warn("Failed to write response", "error", err)
	}
}

// HandleChat repassa a mensagem ao modelo e devolve o texto gerado
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	reqID := middleware.GetReqID(r.Context())

	var req model.ChatRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debug("Error parsing JSON", "error", err, "request_id", reqID)
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: model.MsgInvalidJSON})
		return
	}

	text, err := h.chat.Reply(r.Context(), req.Message)
	if errors.Is(err, service.ErrMessageRequired) {
		h.log.Debug("Rejected chat request", "reason", err, "request_id", reqID)
		h.writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: model.MsgMessageRequired})
		return
	}
	if err != nil {
		provErr := llm.Classify(err)
		h.log.Error("Error generating response",
			"message", provErr.Message,
			"name", provErr.Kind,
			"stack", provErr.Stack,
			"request_id", reqID,
		)
		h.writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
			Error:   model.MsgGenerationFailure,
			Details: provErr.Message,
			Name:    string(provErr.Kind),
		})
		return
	}

	h.writeJSON(w, http.StatusOK, model.ChatResponse{Response: text})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("Failed to write response", "error", err)
	}
}

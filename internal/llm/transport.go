package llm

import (
	"log/slog"
	"net/http"
	"time"
)

// LoggingTransport registra cada requisição feita ao provedor.
// A URL é logada sem query string para não expor a chave da API.
type LoggingTransport struct {
	Base http.RoundTripper
	Log  *slog.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	if t.Log == nil {
		return resp, err
	}

	attrs := []any{
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
		"duration", time.Since(start),
	}
	if err != nil {
		t.Log.Warn("Provider request failed", append(attrs, "error", err)...)
		return resp, err
	}
	t.Log.Debug("Provider request", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}

// NewHTTPClient cria o http.Client usado pelo SDK. Não há timeout aqui:
// o prazo de cada chamada vem do context.
func NewHTTPClient(log *slog.Logger) *http.Client {
	return &http.Client{
		Transport: &LoggingTransport{
			Base: http.DefaultTransport,
			Log:  log,
		},
	}
}

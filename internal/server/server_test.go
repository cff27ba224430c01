package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitormoschetta/gemini-chat/internal/config"
	"github.com/vitormoschetta/gemini-chat/internal/handler"
	"github.com/vitormoschetta/gemini-chat/internal/logger"
	"github.com/vitormoschetta/gemini-chat/internal/mcpserver"
	"github.com/vitormoschetta/gemini-chat/internal/service"
	"github.com/vitormoschetta/gemini-chat/web"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeClient struct {
	text string
}

func (f *fakeClient) GenerateContent(context.Context, string) (string, error) {
	return f.text, nil
}

func newTestServer(t *testing.T, withMCP bool) (*httptest.Server, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	log := logger.NewWithWriter(buf, config.LogConfig{Level: "info", Format: "json"})

	svc := service.NewChatService(&fakeClient{text: "Hi there!"}, time.Second, log)
	h := handler.NewHandler(svc, web.Static(), log)

	srv := NewServer(config.ServerConfig{Port: 0, WriteTimeout: 5 * time.Second}, log)
	var mcpHandler http.Handler
	if withMCP {
		mcpHandler = mcpserver.NewHTTPHandler(mcpserver.New(svc, "test", log))
	}
	srv.SetupRouter(h, mcpHandler)

	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)
	return ts, buf
}

func TestRouterServesLandingPage(t *testing.T) {
	ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "<form id=\"chat-form\"")
}

func TestRouterServesStaticAssets(t *testing.T) {
	ts, _ := newTestServer(t, false)

	for _, path := range []string{"/app.js", "/style.css"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, err := http.Get(ts.URL + "/missing.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouterChat(t *testing.T) {
	ts, buf := newTestServer(t, false)

	resp, err := http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader(`{"message":"Hello"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hi there!", out["response"])

	assert.Contains(t, buf.String(), `"path":"/api/chat"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRouterChatMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/api/chat")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouterHealth(t *testing.T) {
	ts, _ := newTestServer(t, false)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
}

func TestRouterMCPEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, true)

	resp, err := http.Post(ts.URL+"/mcp", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEqual(t, http.StatusNotFound, resp.StatusCode)
	assert.NotEqual(t, http.StatusOK, resp.StatusCode)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	srv := NewServer(config.ServerConfig{Port: 0}, logger.Discard())
	srv.Router = chi.NewRouter()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStartRequiresRouter(t *testing.T) {
	srv := NewServer(config.ServerConfig{Port: 0}, logger.Discard())
	assert.Error(t, srv.Start(context.Background()))
}

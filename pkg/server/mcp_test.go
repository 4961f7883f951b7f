package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/nmaptor/nmaptor/pkg/nmap"
	"github.com/nmaptor/nmaptor/pkg/ops"
)

type noopRunner struct{}

func (noopRunner) Run(context.Context, []string, time.Duration) nmap.Outcome {
	return nmap.Outcome{Success: true}
}

func newTestServer() *mcp.Server {
	svc := ops.NewService(noopRunner{})
	return New(svc, ops.NewRegistry(svc), "test")
}

func TestNewRegistersAllOperations(t *testing.T) {
	t.Parallel()

	// Tool registration panics on a registry/tool-list mismatch, so a
	// successful construction covers all eleven operations.
	require.NotNil(t, newTestServer())
}

func TestHandlerAuthRejectsMissingToken(t *testing.T) {
	t.Parallel()

	h := Handler(newTestServer, HandlerOptions{Stateless: true, APIKey: "sekrit"})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandlerWithoutAPIKeySkipsAuth(t *testing.T) {
	t.Parallel()

	h := Handler(newTestServer, HandlerOptions{Stateless: true})

	// No Authorization header: the request must reach the MCP handler
	// rather than being rejected with 401.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.NotEqual(t, http.StatusUnauthorized, rec.Code)
}

func TestTextResult(t *testing.T) {
	t.Parallel()

	res := textResult("Ping scan completed:\n\nhosts up")
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	require.Equal(t, "Ping scan completed:\n\nhosts up", text.Text)
}

// Package server adapts the operation registry to the Model Context
// Protocol, over stdio or streamable HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/nmaptor/nmaptor/pkg/ops"
)

// New builds an MCP server advertising every operation in the registry as a
// tool. Input schemas are generated from the typed input structs; results
// are plain text blocks.
func New(svc *ops.Service, reg *ops.Registry, version string) *mcp.Server {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nmaptor",
			Version: version,
		},
		nil,
	)

	h := handlers{svc: svc}
	tool := func(name string) *mcp.Tool {
		def, ok := reg.Lookup(name)
		if !ok {
			// The registry and the tool list are built from the same
			// constants; a miss is a programming error.
			panic("operation not registered: " + name)
		}
		return &mcp.Tool{Name: def.Name, Description: def.Description}
	}

	mcp.AddTool(srv, tool(ops.OpBasicScan), h.basicScan)
	mcp.AddTool(srv, tool(ops.OpServiceDetection), h.serviceDetection)
	mcp.AddTool(srv, tool(ops.OpOSDetection), h.osDetection)
	mcp.AddTool(srv, tool(ops.OpScriptScan), h.scriptScan)
	mcp.AddTool(srv, tool(ops.OpStealthScan), h.stealthScan)
	mcp.AddTool(srv, tool(ops.OpComprehensiveScan), h.comprehensiveScan)
	mcp.AddTool(srv, tool(ops.OpPingScan), h.pingScan)
	mcp.AddTool(srv, tool(ops.OpPortScan), h.portScan)
	mcp.AddTool(srv, tool(ops.OpVulnerabilityScan), h.vulnerabilityScan)
	mcp.AddTool(srv, tool(ops.OpNetworkDiscovery), h.networkDiscovery)
	mcp.AddTool(srv, tool(ops.OpCustomScan), h.customScan)

	return srv
}

// RunStdio serves MCP over stdin/stdout until the context is canceled.
func RunStdio(ctx context.Context, srv *mcp.Server) error {
	log.Info().Msg("serving MCP over stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

// HandlerOptions configures the streamable HTTP transport.
type HandlerOptions struct {
	// Stateless creates a fresh MCP server per request, with no session
	// persistence.
	Stateless bool
	// APIKey enables bearer-token authentication when non-empty.
	APIKey string
}

// Handler returns an HTTP handler serving MCP. In stateless mode the factory
// is invoked per request.
func Handler(factory func() *mcp.Server, opts HandlerOptions) http.Handler {
	var h http.Handler = mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return factory()
	}, &mcp.StreamableHTTPOptions{
		JSONResponse: true,
		Stateless:    opts.Stateless,
	})

	if opts.APIKey != "" {
		h = authMiddleware(h, opts.APIKey)
		log.Info().Msg("API key authentication enabled")
	}
	return h
}

// authMiddleware enforces a Bearer token on every request.
func authMiddleware(next http.Handler, apiKey string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+apiKey {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type handlers struct {
	svc *ops.Service
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func (h handlers) basicScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.BasicScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.BasicScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) serviceDetection(ctx context.Context, _ *mcp.CallToolRequest, in ops.ServiceDetectionInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.ServiceDetection(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) osDetection(ctx context.Context, _ *mcp.CallToolRequest, in ops.OSDetectionInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.OSDetection(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) scriptScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.ScriptScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.ScriptScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) stealthScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.StealthScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.StealthScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) comprehensiveScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.ComprehensiveScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.ComprehensiveScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) pingScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.PingScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.PingScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) portScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.PortScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.PortScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) vulnerabilityScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.VulnerabilityScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.VulnerabilityScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) networkDiscovery(ctx context.Context, _ *mcp.CallToolRequest, in ops.NetworkDiscoveryInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.NetworkDiscovery(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

func (h handlers) customScan(ctx context.Context, _ *mcp.CallToolRequest, in ops.CustomScanInput) (*mcp.CallToolResult, any, error) {
	text, err := h.svc.CustomScan(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	return textResult(text), nil, nil
}

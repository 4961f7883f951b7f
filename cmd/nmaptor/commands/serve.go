package commands

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nmaptor/nmaptor/pkg/appctx"
	"github.com/nmaptor/nmaptor/pkg/cli"
	"github.com/nmaptor/nmaptor/pkg/config"
	"github.com/nmaptor/nmaptor/pkg/nmap"
	"github.com/nmaptor/nmaptor/pkg/ops"
	"github.com/nmaptor/nmaptor/pkg/server"
)

// NewServeCommand returns the command serving the scan tools over MCP,
// either on stdio or over streamable HTTP.
func NewServeCommand() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scan tools over MCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, ok := appctx.ConfigFrom(cmd.Context())
			if !ok {
				return fmt.Errorf("configuration not initialized")
			}
			cfg := manager.Get()

			svc, reg := buildService(cfg)

			switch transport {
			case "stdio":
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				log.Info().Msg("serving on stdio")
				return server.RunStdio(ctx, server.New(svc, reg, cli.Version))
			case "http":
				handler := server.Handler(func() *mcp.Server { return server.New(svc, reg, cli.Version) }, server.HandlerOptions{
					Stateless: cfg.Server.Stateless,
					APIKey:    cfg.Server.APIKey,
				})

				addr := fmt.Sprintf("%s:%d", cfg.Server.Addr, cfg.Server.Port)
				log.Info().Str("addr", addr).Bool("stateless", cfg.Server.Stateless).Msg("serving on http")
				return http.ListenAndServe(addr, handler)
			default:
				return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
			}
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", "http", "Transport to serve on (stdio, http)")

	return cmd
}

// buildService wires the runner, service, and operation registry from the
// loaded configuration.
func buildService(cfg config.Config) (*ops.Service, *ops.Registry) {
	runner := nmap.NewRunner(cfg.Nmap.Binary).
		WithKillGrace(time.Duration(cfg.Nmap.KillGraceSeconds) * time.Second)

	svc := ops.NewService(runner).WithTimeouts(
		time.Duration(cfg.Nmap.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Nmap.LongTimeoutSeconds)*time.Second,
	)

	return svc, ops.NewRegistry(svc)
}

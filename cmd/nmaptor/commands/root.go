package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nmaptor/nmaptor/pkg/appctx"
	"github.com/nmaptor/nmaptor/pkg/cli"
	"github.com/nmaptor/nmaptor/pkg/config"
)

const cliExecutable = "nmaptor"

// NewCommand constructs the top-level nmaptor CLI command, wiring global
// flags, configuration loading, and logger setup.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		verbosityCount int
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Nmaptor exposes nmap scans as remotely invokable tools",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			manager := config.NewManager()
			if err := manager.Load(cmd.Flags(), configFile); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			configureLogging(manager.Get().Log, verbosityCount, verbose)

			ctx := appctx.WithConfig(cmd.Context(), manager)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")
	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging (shows service layer logs)")

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewToolsCommand())
	cmd.AddCommand(cli.NewVersionCommand(cliExecutable))

	return cmd
}

// configureLogging applies the configured format and level. Verbosity flags
// win over the configured level: if explicit --verbose is set, show debug and
// above; else use -v count: 0 => configured level, 1 => Info, 2+ => Debug.
func configureLogging(cfg config.LogConfig, verbosityCount int, verbose bool) {
	if cfg.Format == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	switch {
	case verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case verbosityCount >= 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case verbosityCount == 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		if level, err := zerolog.ParseLevel(cfg.Level); err == nil {
			zerolog.SetGlobalLevel(level)
		} else {
			zerolog.SetGlobalLevel(zerolog.ErrorLevel)
		}
	}
}

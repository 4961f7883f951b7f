package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmaptor/nmaptor/cmd/nmaptor/internal/bind"
	"github.com/nmaptor/nmaptor/pkg/appctx"
)

// NewRunCommand returns the command invoking one scan operation directly,
// without going through a serving transport.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <operation> [target]",
		Short: "Run a single scan operation",
		Long: `Run a single scan operation and print its result.

The positional target argument is passed as the operation's target
specification (the network range for nmap_network_discovery). Remaining
parameters are given as repeated --set key=value flags, for example:

  nmaptor run nmap_port_scan 192.168.1.1 --set ports=22,80 --set scan_type=connect`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, ok := appctx.ConfigFrom(cmd.Context())
			if !ok {
				return fmt.Errorf("configuration not initialized")
			}

			operation := args[0]
			target := ""
			if len(args) > 1 {
				target = args[1]
			}

			params, err := bind.BindRunParams(cmd, operation, target)
			if err != nil {
				return err
			}

			_, reg := buildService(manager.Get())
			result, err := reg.Invoke(cmd.Context(), operation, params)
			if err != nil {
				return err
			}

			cmd.Println(result)
			return nil
		},
	}

	cmd.Flags().StringArray("set", nil, "Operation parameter as key=value (repeatable)")

	return cmd
}

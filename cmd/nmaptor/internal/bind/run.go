// Package bind translates command-line flags into service layer inputs.
package bind

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nmaptor/nmaptor/pkg/ops"
)

// BindRunParams builds the parameter map for a run invocation.
//
// The positional target argument becomes "network" for network discovery and
// "targets" for every other operation. Each --set flag contributes one
// key=value pair; values stay strings and are coerced by the registry.
func BindRunParams(cmd *cobra.Command, operation string, target string) (map[string]any, error) {
	pairs, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return nil, err
	}

	params := make(map[string]any, len(pairs)+1)
	if target != "" {
		if operation == ops.OpNetworkDiscovery {
			params["network"] = target
		} else {
			params["targets"] = target
		}
	}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set %q (want key=value)", pair)
		}
		params[key] = value
	}

	return params, nil
}

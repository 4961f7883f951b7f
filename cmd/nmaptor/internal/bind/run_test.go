package bind

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/nmaptor/nmaptor/pkg/ops"
)

func setupRunCommand(t *testing.T, sets []string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "run"}
	cmd.Flags().StringArray("set", nil, "")
	for _, pair := range sets {
		require.NoError(t, cmd.Flags().Set("set", pair))
	}
	return cmd
}

func TestBindRunParams(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		target    string
		sets      []string
		want      map[string]any
		wantErr   bool
	}{
		{
			name:      "target maps to targets",
			operation: ops.OpBasicScan,
			target:    "192.168.1.1",
			want:      map[string]any{"targets": "192.168.1.1"},
		},
		{
			name:      "network discovery target maps to network",
			operation: ops.OpNetworkDiscovery,
			target:    "192.168.1.0/24",
			want:      map[string]any{"network": "192.168.1.0/24"},
		},
		{
			name:      "set pairs merge with target",
			operation: ops.OpPortScan,
			target:    "10.0.0.1",
			sets:      []string{"ports=22,80", "scan_type=connect"},
			want: map[string]any{
				"targets":   "10.0.0.1",
				"ports":     "22,80",
				"scan_type": "connect",
			},
		},
		{
			name:      "no target leaves map empty",
			operation: ops.OpCustomScan,
			sets:      []string{"custom_options=-sV -p 443"},
			want:      map[string]any{"custom_options": "-sV -p 443"},
		},
		{
			name:      "value may contain equals",
			operation: ops.OpCustomScan,
			sets:      []string{"custom_options=--min-rate=1000"},
			want:      map[string]any{"custom_options": "--min-rate=1000"},
		},
		{
			name:      "malformed pair rejected",
			operation: ops.OpBasicScan,
			sets:      []string{"ports"},
			wantErr:   true,
		},
		{
			name:      "empty key rejected",
			operation: ops.OpBasicScan,
			sets:      []string{"=value"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := setupRunCommand(t, tt.sets)
			got, err := BindRunParams(cmd, tt.operation, tt.target)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRegistry(runner *fakeRunner) *Registry {
	return NewRegistry(NewService(runner))
}

func TestRegistryCatalog(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(okRunner(""))
	defs := reg.Definitions()

	want := []string{
		OpBasicScan,
		OpServiceDetection,
		OpOSDetection,
		OpScriptScan,
		OpStealthScan,
		OpComprehensiveScan,
		OpPingScan,
		OpPortScan,
		OpVulnerabilityScan,
		OpNetworkDiscovery,
		OpCustomScan,
	}

	require.Len(t, defs, len(want))
	for i, def := range defs {
		require.Equal(t, want[i], def.Name)
		require.NotEmpty(t, def.Description)
		require.Positive(t, def.Timeout)
		require.NotNil(t, def.Invoke)
	}

	require.Equal(t, DefaultLongTimeout, mustLookup(t, reg, OpComprehensiveScan).Timeout)
	require.Equal(t, DefaultLongTimeout, mustLookup(t, reg, OpVulnerabilityScan).Timeout)
	require.Equal(t, DefaultTimeout, mustLookup(t, reg, OpBasicScan).Timeout)
}

func mustLookup(t *testing.T, reg *Registry, name string) Definition {
	t.Helper()
	def, ok := reg.Lookup(name)
	require.True(t, ok, "operation %s not registered", name)
	return def
}

func TestRegistryInvokeUnknownOperation(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(okRunner(""))
	_, err := reg.Invoke(context.Background(), "nmap_teleport", map[string]any{"targets": "host1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown operation")
}

func TestRegistryInvokeCoercesParams(t *testing.T) {
	t.Parallel()

	runner := okRunner("")
	reg := newTestRegistry(runner)

	// --set pairs arrive as strings; numeric parameters are coerced.
	_, err := reg.Invoke(context.Background(), OpStealthScan, map[string]any{
		"targets": "192.168.1.0/24",
		"ports":   "22,80",
		"timing":  "2",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"-sS", "-T2", "-p", "22,80", "192.168.1.0/24"}, runner.lastArgs)

	_, err = reg.Invoke(context.Background(), OpComprehensiveScan, map[string]any{
		"targets":         "host1",
		"include_scripts": "false",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"-sS", "-sV", "-O", "-p", "all", "host1"}, runner.lastArgs)
}

func TestRegistryInvokeAppliesDefaults(t *testing.T) {
	t.Parallel()

	runner := okRunner("")
	reg := newTestRegistry(runner)

	_, err := reg.Invoke(context.Background(), OpServiceDetection, map[string]any{"targets": "host1"})
	require.NoError(t, err)
	require.Equal(t, []string{"-sV", "--version-intensity=7", "-p", "common", "host1"}, runner.lastArgs)

	_, err = reg.Invoke(context.Background(), OpNetworkDiscovery, map[string]any{"network": "10.0.0.0/24"})
	require.NoError(t, err)
	require.Equal(t, []string{"-sn", "-PS", "-PA", "-sS", "-sV", "--top-ports=100", "10.0.0.0/24"}, runner.lastArgs)
}

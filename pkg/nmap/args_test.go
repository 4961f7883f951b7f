package nmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicScanArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec BasicScan
		want []string
	}{
		{
			name: "quick variant",
			spec: BasicScan{Targets: "10.0.0.1", Ports: "common", ScanType: "quick"},
			want: []string{"-p", "common", "-T4", "--min-rate=1000", "10.0.0.1"},
		},
		{
			name: "comprehensive variant",
			spec: BasicScan{Targets: "10.0.0.1", Ports: "1-1024", ScanType: "comprehensive"},
			want: []string{"-p", "1-1024", "-sS", "-sV", "-O", "--script=default", "10.0.0.1"},
		},
		{
			name: "stealth variant",
			spec: BasicScan{Targets: "10.0.0.1", Ports: "common", ScanType: "stealth"},
			want: []string{"-p", "common", "-sS", "-T2", "--min-rate=100", "10.0.0.1"},
		},
		{
			name: "unrecognized variant adds no extra flags",
			spec: BasicScan{Targets: "10.0.0.1", Ports: "common", ScanType: "paranoid"},
			want: []string{"-p", "common", "10.0.0.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.spec.Args())
		})
	}
}

func TestServiceDetectionArgs(t *testing.T) {
	t.Parallel()

	spec := ServiceDetection{Targets: "host1", Ports: "common", Intensity: 7}
	require.Equal(t, []string{"-sV", "--version-intensity=7", "-p", "common", "host1"}, spec.Args())
}

func TestOSDetectionArgs(t *testing.T) {
	t.Parallel()

	spec := OSDetection{Targets: "host1", Ports: "common", MaxRetries: 2}
	require.Equal(t, []string{"-O", "--osscan-retries=2", "-p", "common", "host1"}, spec.Args())
}

func TestScriptScanArgs(t *testing.T) {
	t.Parallel()

	spec := ScriptScan{Targets: "host1", Scripts: "http-enum,http-title", Ports: "80,443"}
	require.Equal(t, []string{"--script=http-enum,http-title", "-p", "80,443", "host1"}, spec.Args())
}

func TestStealthScanArgs(t *testing.T) {
	t.Parallel()

	spec := StealthScan{Targets: "192.168.1.0/24", Ports: "22,80", Timing: 2}
	require.Equal(t, []string{"-sS", "-T2", "-p", "22,80", "192.168.1.0/24"}, spec.Args())
}

func TestComprehensiveScanArgs(t *testing.T) {
	t.Parallel()

	withScripts := ComprehensiveScan{Targets: "host1", Ports: "all", IncludeScripts: true}
	require.Equal(t, []string{"-sS", "-sV", "-O", "-p", "all", "--script=default", "host1"}, withScripts.Args())

	withoutScripts := ComprehensiveScan{Targets: "host1", Ports: "all"}
	require.Equal(t, []string{"-sS", "-sV", "-O", "-p", "all", "host1"}, withoutScripts.Args())
}

func TestPingScanArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec PingScan
		want []string
	}{
		{"icmp only", PingScan{Targets: "10.0.0.0/24", PingType: "icmp"}, []string{"-sn", "10.0.0.0/24"}},
		{"tcp syn ping", PingScan{Targets: "10.0.0.0/24", PingType: "tcp"}, []string{"-PS", "10.0.0.0/24"}},
		{"both", PingScan{Targets: "10.0.0.0/24", PingType: "both"}, []string{"-sn", "-PS", "10.0.0.0/24"}},
		{"unrecognized falls back to both", PingScan{Targets: "10.0.0.0/24", PingType: "arp"}, []string{"-sn", "-PS", "10.0.0.0/24"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.spec.Args())
		})
	}
}

func TestPortScanArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec PortScan
		want []string
	}{
		{"syn", PortScan{Targets: "host1", Ports: "1-1000", ScanMethod: "syn"}, []string{"-sS", "-p", "1-1000", "host1"}},
		{"connect", PortScan{Targets: "host1", Ports: "1-1000", ScanMethod: "connect"}, []string{"-sT", "-p", "1-1000", "host1"}},
		{"udp", PortScan{Targets: "host1", Ports: "1-1000", ScanMethod: "udp"}, []string{"-sU", "-p", "1-1000", "host1"}},
		{"unrecognized falls through to udp", PortScan{Targets: "host1", Ports: "53", ScanMethod: "xmas"}, []string{"-sU", "-p", "53", "host1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.spec.Args())
		})
	}
}

func TestVulnerabilityScanArgs(t *testing.T) {
	t.Parallel()

	all := VulnerabilityScan{Targets: "host1", Ports: "common", Category: "all"}
	require.Equal(t, []string{"--script=vuln", "-p", "common", "host1"}, all.Args())

	narrowed := VulnerabilityScan{Targets: "host1", Ports: "common", Category: "exploit"}
	require.Equal(t, []string{"--script=vuln and exploit", "-p", "common", "host1"}, narrowed.Args())
}

func TestNetworkDiscoveryArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec NetworkDiscovery
		want []string
	}{
		{"ping only", NetworkDiscovery{Network: "10.0.0.0/24", Method: "ping"}, []string{"-sn", "10.0.0.0/24"}},
		{"arp only", NetworkDiscovery{Network: "10.0.0.0/24", Method: "arp"}, []string{"-PR", "10.0.0.0/24"}},
		{"syn only", NetworkDiscovery{Network: "10.0.0.0/24", Method: "syn"}, []string{"-PS", "10.0.0.0/24"}},
		{"all methods", NetworkDiscovery{Network: "10.0.0.0/24", Method: "all"}, []string{"-sn", "-PS", "-PA", "10.0.0.0/24"}},
		{
			"with port scan",
			NetworkDiscovery{Network: "10.0.0.0/24", Method: "all", IncludePorts: true},
			[]string{"-sn", "-PS", "-PA", "-sS", "-sV", "--top-ports=100", "10.0.0.0/24"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, tt.spec.Args())
		})
	}
}

func TestCustomScanArgs(t *testing.T) {
	t.Parallel()

	xml := CustomScan{Targets: "host1", Options: "-A -v", OutputFormat: "xml"}
	require.Equal(t, []string{"-A", "-v", "-oX", "-", "host1"}, xml.Args())

	grepable := CustomScan{Targets: "host1", Options: "-sS --top-ports=50", OutputFormat: "grepable"}
	require.Equal(t, []string{"-sS", "--top-ports=50", "-oG", "-", "host1"}, grepable.Args())

	normal := CustomScan{Targets: "host1", Options: "-A", OutputFormat: "normal"}
	require.Equal(t, []string{"-A", "host1"}, normal.Args())

	// Whitespace splitting is naive on purpose: quoting is not interpreted.
	quoted := CustomScan{Targets: "host1", Options: `--script-args "a b"`, OutputFormat: "normal"}
	require.Equal(t, []string{"--script-args", `"a`, `b"`, "host1"}, quoted.Args())
}

// The external tool's grammar requires positional targets to trail all
// option flags, for every operation kind.
func TestTargetIsAlwaysLastToken(t *testing.T) {
	t.Parallel()

	specs := []ArgSpec{
		BasicScan{Targets: "target", Ports: "common", ScanType: "quick"},
		ServiceDetection{Targets: "target", Ports: "common", Intensity: 7},
		OSDetection{Targets: "target", Ports: "common", MaxRetries: 2},
		ScriptScan{Targets: "target", Scripts: "default", Ports: "common"},
		StealthScan{Targets: "target", Ports: "common", Timing: 3},
		ComprehensiveScan{Targets: "target", Ports: "all", IncludeScripts: true},
		PingScan{Targets: "target", PingType: "both"},
		PortScan{Targets: "target", Ports: "80", ScanMethod: "syn"},
		VulnerabilityScan{Targets: "target", Ports: "common", Category: "all"},
		NetworkDiscovery{Network: "target", Method: "all", IncludePorts: true},
		CustomScan{Targets: "target", Options: "-A -v", OutputFormat: "xml"},
	}

	for _, spec := range specs {
		args := spec.Args()
		require.NotEmpty(t, args)
		require.Equal(t, "target", args[len(args)-1], "spec %#v", spec)
	}
}

// Builders are pure: the same spec always yields the same token sequence.
func TestArgsAreDeterministic(t *testing.T) {
	t.Parallel()

	spec := NetworkDiscovery{Network: "10.0.0.0/16", Method: "syn", IncludePorts: true}
	first := spec.Args()
	for i := 0; i < 10; i++ {
		require.Equal(t, first, spec.Args())
	}
}

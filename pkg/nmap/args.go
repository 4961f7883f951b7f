// Package nmap wraps the nmap command-line tool: it builds argument lists
// for the supported scan operations and runs the binary as a managed
// subprocess.
package nmap

import (
	"strconv"
	"strings"
)

// ArgSpec is implemented by every scan specification. Args returns the full
// nmap invocation tokens (excluding the executable name). The token order is
// significant: option flags come first and the target or network
// specification is always the final token, because nmap treats trailing
// positional arguments as targets.
//
// Specs carry resolved parameters; defaults are applied by the caller before
// a spec is built. No syntactic validation happens here — malformed port
// ranges or target strings are passed through to nmap unchanged.
type ArgSpec interface {
	Args() []string
}

// BasicScan is a port scan whose flag bundle is selected by ScanType.
type BasicScan struct {
	Targets  string
	Ports    string
	ScanType string
}

// Args maps the scan variant to its flag bundle. Unrecognized variants add
// no extra flags beyond the port selection.
func (s BasicScan) Args() []string {
	args := []string{"-p", s.Ports}
	switch s.ScanType {
	case "quick":
		args = append(args, "-T4", "--min-rate=1000")
	case "comprehensive":
		args = append(args, "-sS", "-sV", "-O", "--script=default")
	case "stealth":
		args = append(args, "-sS", "-T2", "--min-rate=100")
	}
	return append(args, s.Targets)
}

// ServiceDetection probes service versions on the selected ports.
// Intensity follows nmap's 0-9 scale; the value is not range-checked.
type ServiceDetection struct {
	Targets   string
	Ports     string
	Intensity int
}

func (s ServiceDetection) Args() []string {
	return []string{"-sV", "--version-intensity=" + strconv.Itoa(s.Intensity), "-p", s.Ports, s.Targets}
}

// OSDetection fingerprints the operating system of the targets.
type OSDetection struct {
	Targets    string
	Ports      string
	MaxRetries int
}

func (s OSDetection) Args() []string {
	return []string{"-O", "--osscan-retries=" + strconv.Itoa(s.MaxRetries), "-p", s.Ports, s.Targets}
}

// ScriptScan runs NSE scripts selected by the Scripts expression.
type ScriptScan struct {
	Targets string
	Scripts string
	Ports   string
}

func (s ScriptScan) Args() []string {
	return []string{"--script=" + s.Scripts, "-p", s.Ports, s.Targets}
}

// StealthScan is a SYN scan paced by a timing template (0-5).
type StealthScan struct {
	Targets string
	Ports   string
	Timing  int
}

func (s StealthScan) Args() []string {
	return []string{"-sS", "-T" + strconv.Itoa(s.Timing), "-p", s.Ports, s.Targets}
}

// ComprehensiveScan combines SYN scanning with version and OS detection,
// optionally adding the default NSE script set.
type ComprehensiveScan struct {
	Targets        string
	Ports          string
	IncludeScripts bool
}

func (s ComprehensiveScan) Args() []string {
	args := []string{"-sS", "-sV", "-O", "-p", s.Ports}
	if s.IncludeScripts {
		args = append(args, "--script=default")
	}
	return append(args, s.Targets)
}

// PingScan discovers live hosts without port scanning. The three discovery
// modes are mutually exclusive: "icmp" pings only, "tcp" uses TCP SYN ping,
// and anything else selects both probes together.
type PingScan struct {
	Targets  string
	PingType string
}

func (s PingScan) Args() []string {
	switch s.PingType {
	case "icmp":
		return []string{"-sn", s.Targets}
	case "tcp":
		return []string{"-PS", s.Targets}
	default:
		return []string{"-sn", "-PS", s.Targets}
	}
}

// PortScan scans an explicit port specification with a selectable scan
// method. "syn" and "connect" map to their nmap scan types; any other value
// falls through to a UDP scan, matching the historical behavior.
type PortScan struct {
	Targets    string
	Ports      string
	ScanMethod string
}

func (s PortScan) Args() []string {
	switch s.ScanMethod {
	case "syn":
		return []string{"-sS", "-p", s.Ports, s.Targets}
	case "connect":
		return []string{"-sT", "-p", s.Ports, s.Targets}
	default:
		return []string{"-sU", "-p", s.Ports, s.Targets}
	}
}

// VulnerabilityScan runs the NSE "vuln" category. A category other than
// "all" narrows the selection with a script-expression AND.
type VulnerabilityScan struct {
	Targets  string
	Ports    string
	Category string
}

func (s VulnerabilityScan) Args() []string {
	scripts := "vuln"
	if s.Category != "all" {
		scripts = "vuln and " + s.Category
	}
	return []string{"--script=" + scripts, "-p", s.Ports, s.Targets}
}

// NetworkDiscovery sweeps a network for live hosts. IncludePorts additionally
// service-scans the top 100 ports of whatever responds.
type NetworkDiscovery struct {
	Network      string
	Method       string
	IncludePorts bool
}

func (s NetworkDiscovery) Args() []string {
	var args []string
	switch s.Method {
	case "ping":
		args = []string{"-sn"}
	case "arp":
		args = []string{"-PR"}
	case "syn":
		args = []string{"-PS"}
	default:
		args = []string{"-sn", "-PS", "-PA"}
	}
	if s.IncludePorts {
		args = append(args, "-sS", "-sV", "--top-ports=100")
	}
	return append(args, s.Network)
}

// CustomScan passes user-supplied options through verbatim. The option
// string is split on whitespace with no quote awareness, so a single option
// value cannot contain an embedded space. OutputFormat "xml" or "grepable"
// directs nmap's structured output to stdout.
type CustomScan struct {
	Targets      string
	Options      string
	OutputFormat string
}

func (s CustomScan) Args() []string {
	args := strings.Fields(s.Options)
	switch s.OutputFormat {
	case "xml":
		args = append(args, "-oX", "-")
	case "grepable":
		args = append(args, "-oG", "-")
	}
	return append(args, s.Targets)
}

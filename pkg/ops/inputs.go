// Package ops exposes the scan operations: each operation resolves its
// parameter defaults, builds the nmap argument list, runs it through the
// process runner, and formats the outcome as a human-readable text block.
package ops

// Operation inputs are the wire-level parameter sets. Optional numeric and
// boolean parameters use pointers so that an absent value can be told apart
// from an explicit zero/false; defaults are applied by the Service.
// Schemas are generated from the jsonschema struct tags.

type BasicScanInput struct {
	Targets  string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Ports    string `json:"ports,omitempty" jsonschema:"Port specification (default: common)"`
	ScanType string `json:"scan_type,omitempty" jsonschema:"Scan variant: quick (default), comprehensive, or stealth"`
}

type ServiceDetectionInput struct {
	Targets   string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Ports     string `json:"ports,omitempty" jsonschema:"Port specification (default: common)"`
	Intensity *int   `json:"intensity,omitempty" jsonschema:"Version detection intensity, 0-9 (default: 7)"`
}

type OSDetectionInput struct {
	Targets    string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Ports      string `json:"ports,omitempty" jsonschema:"Port specification (default: common)"`
	MaxRetries *int   `json:"max_retries,omitempty" jsonschema:"OS detection retry count (default: 2)"`
}

type ScriptScanInput struct {
	Targets string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Scripts string `json:"scripts,omitempty" jsonschema:"NSE script selection expression (default: default)"`
	Ports   string `json:"ports,omitempty" jsonschema:"Port specification (default: common)"`
}

type StealthScanInput struct {
	Targets string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Ports   string `json:"ports,omitempty" jsonschema:"Port specification (default: common)"`
	Timing  *int   `json:"timing,omitempty" jsonschema:"Timing template, 0-5 (default: 3)"`
}

type ComprehensiveScanInput struct {
	Targets        string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Ports          string `json:"ports,omitempty" jsonschema:"Port specification (default: all)"`
	IncludeScripts *bool  `json:"include_scripts,omitempty" jsonschema:"Run the default NSE script set (default: true)"`
}

type PingScanInput struct {
	Targets  string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	PingType string `json:"ping_type,omitempty" jsonschema:"Discovery mode: icmp, tcp, or both (default: both)"`
}

type PortScanInput struct {
	Targets    string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Ports      string `json:"ports" jsonschema:"Port specification to scan (required)"`
	ScanMethod string `json:"scan_method,omitempty" jsonschema:"Scan method: syn (default), connect, or udp"`
}

type VulnerabilityScanInput struct {
	Targets      string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	Ports        string `json:"ports,omitempty" jsonschema:"Port specification (default: common)"`
	VulnCategory string `json:"vuln_category,omitempty" jsonschema:"Vulnerability script category, or all (default: all)"`
}

type NetworkDiscoveryInput struct {
	Network         string `json:"network" jsonschema:"Network specification, e.g. 192.168.1.0/24"`
	DiscoveryMethod string `json:"discovery_method,omitempty" jsonschema:"Discovery method: ping, arp, syn, or all (default: all)"`
	IncludePorts    *bool  `json:"include_ports,omitempty" jsonschema:"Also service-scan the top 100 ports (default: true)"`
}

type CustomScanInput struct {
	Targets       string `json:"targets" jsonschema:"Target specification: hostnames, IP addresses, or CIDR networks"`
	CustomOptions string `json:"custom_options" jsonschema:"Raw nmap options, split on whitespace (required)"`
	OutputFormat  string `json:"output_format,omitempty" jsonschema:"Output format: normal (default), xml, or grepable"`
}

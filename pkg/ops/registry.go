package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Canonical operation names, as advertised to callers.
const (
	OpBasicScan         = "nmap_basic_scan"
	OpServiceDetection  = "nmap_service_detection"
	OpOSDetection       = "nmap_os_detection"
	OpScriptScan        = "nmap_script_scan"
	OpStealthScan       = "nmap_stealth_scan"
	OpComprehensiveScan = "nmap_comprehensive_scan"
	OpPingScan          = "nmap_ping_scan"
	OpPortScan          = "nmap_port_scan"
	OpVulnerabilityScan = "nmap_vulnerability_scan"
	OpNetworkDiscovery  = "nmap_network_discovery"
	OpCustomScan        = "nmap_custom_scan"
)

// Definition describes one registered operation. Invoke dispatches a loosely
// typed parameter map (CLI --set pairs, config files) to the typed handler,
// applying the same defaults as the typed path.
type Definition struct {
	Name        string
	Description string
	Timeout     time.Duration
	Invoke      func(ctx context.Context, params map[string]any) (string, error)
}

// Registry holds the operation catalog. It is constructed once at process
// start and handed to whatever transport serves requests; there is no
// package-level instance.
type Registry struct {
	defs   []Definition
	byName map[string]Definition
}

// NewRegistry builds the catalog of all eleven operations backed by svc.
func NewRegistry(svc *Service) *Registry {
	defs := []Definition{
		{
			Name:        OpBasicScan,
			Description: "Perform a basic Nmap scan of specified targets",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.BasicScan(ctx, BasicScanInput{
					Targets:  paramString(params, "targets"),
					Ports:    paramString(params, "ports"),
					ScanType: paramString(params, "scan_type"),
				})
			},
		},
		{
			Name:        OpServiceDetection,
			Description: "Perform service and version detection scan",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.ServiceDetection(ctx, ServiceDetectionInput{
					Targets:   paramString(params, "targets"),
					Ports:     paramString(params, "ports"),
					Intensity: paramInt(params, "intensity"),
				})
			},
		},
		{
			Name:        OpOSDetection,
			Description: "Perform operating system detection scan",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.OSDetection(ctx, OSDetectionInput{
					Targets:    paramString(params, "targets"),
					Ports:      paramString(params, "ports"),
					MaxRetries: paramInt(params, "max_retries"),
				})
			},
		},
		{
			Name:        OpScriptScan,
			Description: "Run NSE (Nmap Scripting Engine) scripts",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.ScriptScan(ctx, ScriptScanInput{
					Targets: paramString(params, "targets"),
					Scripts: paramString(params, "scripts"),
					Ports:   paramString(params, "ports"),
				})
			},
		},
		{
			Name:        OpStealthScan,
			Description: "Perform stealth scan (SYN scan) with minimal detection",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.StealthScan(ctx, StealthScanInput{
					Targets: paramString(params, "targets"),
					Ports:   paramString(params, "ports"),
					Timing:  paramInt(params, "timing"),
				})
			},
		},
		{
			Name:        OpComprehensiveScan,
			Description: "Perform comprehensive scan with all detection methods",
			Timeout:     svc.longTimeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.ComprehensiveScan(ctx, ComprehensiveScanInput{
					Targets:        paramString(params, "targets"),
					Ports:          paramString(params, "ports"),
					IncludeScripts: paramBool(params, "include_scripts"),
				})
			},
		},
		{
			Name:        OpPingScan,
			Description: "Perform ping scan to discover live hosts",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.PingScan(ctx, PingScanInput{
					Targets:  paramString(params, "targets"),
					PingType: paramString(params, "ping_type"),
				})
			},
		},
		{
			Name:        OpPortScan,
			Description: "Scan specific ports on target hosts",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.PortScan(ctx, PortScanInput{
					Targets:    paramString(params, "targets"),
					Ports:      paramString(params, "ports"),
					ScanMethod: paramString(params, "scan_method"),
				})
			},
		},
		{
			Name:        OpVulnerabilityScan,
			Description: "Run vulnerability detection scripts",
			Timeout:     svc.longTimeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.VulnerabilityScan(ctx, VulnerabilityScanInput{
					Targets:      paramString(params, "targets"),
					Ports:        paramString(params, "ports"),
					VulnCategory: paramString(params, "vuln_category"),
				})
			},
		},
		{
			Name:        OpNetworkDiscovery,
			Description: "Discover hosts and services on a network",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.NetworkDiscovery(ctx, NetworkDiscoveryInput{
					Network:         paramString(params, "network"),
					DiscoveryMethod: paramString(params, "discovery_method"),
					IncludePorts:    paramBool(params, "include_ports"),
				})
			},
		},
		{
			Name:        OpCustomScan,
			Description: "Perform custom Nmap scan with user-defined options",
			Timeout:     svc.timeout,
			Invoke: func(ctx context.Context, params map[string]any) (string, error) {
				return svc.CustomScan(ctx, CustomScanInput{
					Targets:       paramString(params, "targets"),
					CustomOptions: paramString(params, "custom_options"),
					OutputFormat:  paramString(params, "output_format"),
				})
			},
		},
	}

	byName := make(map[string]Definition, len(defs))
	for _, def := range defs {
		byName[def.Name] = def
	}
	return &Registry{defs: defs, byName: byName}
}

// Definitions returns the catalog in registration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Lookup returns the definition for name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	def, ok := r.byName[name]
	return def, ok
}

// Invoke dispatches one operation by name.
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]any) (string, error) {
	def, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown operation: %s", name)
	}
	return def.Invoke(ctx, params)
}

// Parameter maps come from --set pairs or config files, so values may be
// strings even for numeric parameters; cast handles the coercion.

func paramString(params map[string]any, key string) string {
	if v, ok := params[key]; ok {
		return cast.ToString(v)
	}
	return ""
}

func paramInt(params map[string]any, key string) *int {
	if v, ok := params[key]; ok {
		n := cast.ToInt(v)
		return &n
	}
	return nil
}

func paramBool(params map[string]any, key string) *bool {
	if v, ok := params[key]; ok {
		b := cast.ToBool(v)
		return &b
	}
	return nil
}

package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nmaptor/nmaptor/pkg/nmap"
)

// Default timeouts. Comprehensive and vulnerability scans cover far more
// probe surface, so they get the long bound.
const (
	DefaultTimeout     = 300 * time.Second
	DefaultLongTimeout = 600 * time.Second
)

// CommandRunner abstracts the subprocess layer so tests can substitute a
// fake. *nmap.Runner satisfies it.
type CommandRunner interface {
	Run(ctx context.Context, args []string, timeout time.Duration) nmap.Outcome
}

// Service implements the scan operations. Each invocation is independent:
// the service carries only immutable configuration, so it is safe for
// concurrent use by multiple transports.
type Service struct {
	runner      CommandRunner
	timeout     time.Duration
	longTimeout time.Duration
	logger      zerolog.Logger
}

// NewService builds a Service with default timeouts.
func NewService(runner CommandRunner) *Service {
	return &Service{
		runner:      runner,
		timeout:     DefaultTimeout,
		longTimeout: DefaultLongTimeout,
		logger:      log.With().Str("component", "ops").Logger(),
	}
}

// WithTimeouts overrides the standard and long operation timeouts.
// Non-positive values keep the defaults.
func (s *Service) WithTimeouts(standard, long time.Duration) *Service {
	if standard > 0 {
		s.timeout = standard
	}
	if long > 0 {
		s.longTimeout = long
	}
	return s
}

// BasicScan performs a basic scan of the targets, with the scan variant
// selecting the flag bundle.
func (s *Service) BasicScan(ctx context.Context, in BasicScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.BasicScan{
		Targets:  in.Targets,
		Ports:    stringOr(in.Ports, "common"),
		ScanType: stringOr(in.ScanType, "quick"),
	}
	return s.execute(ctx, "basic_scan", spec, s.timeout, "Basic scan completed successfully:", "Basic scan failed:"), nil
}

// ServiceDetection probes service versions on the targets.
func (s *Service) ServiceDetection(ctx context.Context, in ServiceDetectionInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.ServiceDetection{
		Targets:   in.Targets,
		Ports:     stringOr(in.Ports, "common"),
		Intensity: intOr(in.Intensity, 7),
	}
	return s.execute(ctx, "service_detection", spec, s.timeout, "Service detection scan completed:", "Service detection scan failed:"), nil
}

// OSDetection fingerprints the operating system of the targets.
func (s *Service) OSDetection(ctx context.Context, in OSDetectionInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.OSDetection{
		Targets:    in.Targets,
		Ports:      stringOr(in.Ports, "common"),
		MaxRetries: intOr(in.MaxRetries, 2),
	}
	return s.execute(ctx, "os_detection", spec, s.timeout, "OS detection scan completed:", "OS detection scan failed:"), nil
}

// ScriptScan runs NSE scripts against the targets.
func (s *Service) ScriptScan(ctx context.Context, in ScriptScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.ScriptScan{
		Targets: in.Targets,
		Scripts: stringOr(in.Scripts, "default"),
		Ports:   stringOr(in.Ports, "common"),
	}
	return s.execute(ctx, "script_scan", spec, s.timeout, "NSE script scan completed:", "NSE script scan failed:"), nil
}

// StealthScan performs a SYN scan with a configurable timing template.
func (s *Service) StealthScan(ctx context.Context, in StealthScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.StealthScan{
		Targets: in.Targets,
		Ports:   stringOr(in.Ports, "common"),
		Timing:  intOr(in.Timing, 3),
	}
	return s.execute(ctx, "stealth_scan", spec, s.timeout, "Stealth scan completed:", "Stealth scan failed:"), nil
}

// ComprehensiveScan combines every detection method; it runs with the long
// timeout.
func (s *Service) ComprehensiveScan(ctx context.Context, in ComprehensiveScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.ComprehensiveScan{
		Targets:        in.Targets,
		Ports:          stringOr(in.Ports, "all"),
		IncludeScripts: boolOr(in.IncludeScripts, true),
	}
	return s.execute(ctx, "comprehensive_scan", spec, s.longTimeout, "Comprehensive scan completed:", "Comprehensive scan failed:"), nil
}

// PingScan discovers live hosts without port scanning.
func (s *Service) PingScan(ctx context.Context, in PingScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.PingScan{
		Targets:  in.Targets,
		PingType: stringOr(in.PingType, "both"),
	}
	return s.execute(ctx, "ping_scan", spec, s.timeout, "Ping scan completed:", "Ping scan failed:"), nil
}

// PortScan scans an explicit port specification; ports has no default.
func (s *Service) PortScan(ctx context.Context, in PortScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	if in.Ports == "" {
		return "", fmt.Errorf("ports is required")
	}
	spec := nmap.PortScan{
		Targets:    in.Targets,
		Ports:      in.Ports,
		ScanMethod: stringOr(in.ScanMethod, "syn"),
	}
	return s.execute(ctx, "port_scan", spec, s.timeout, "Port scan completed:", "Port scan failed:"), nil
}

// VulnerabilityScan runs vulnerability detection scripts; it runs with the
// long timeout.
func (s *Service) VulnerabilityScan(ctx context.Context, in VulnerabilityScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	spec := nmap.VulnerabilityScan{
		Targets:  in.Targets,
		Ports:    stringOr(in.Ports, "common"),
		Category: stringOr(in.VulnCategory, "all"),
	}
	return s.execute(ctx, "vulnerability_scan", spec, s.longTimeout, "Vulnerability scan completed:", "Vulnerability scan failed:"), nil
}

// NetworkDiscovery sweeps a network for hosts and optionally services.
func (s *Service) NetworkDiscovery(ctx context.Context, in NetworkDiscoveryInput) (string, error) {
	if in.Network == "" {
		return "", fmt.Errorf("network is required")
	}
	spec := nmap.NetworkDiscovery{
		Network:      in.Network,
		Method:       stringOr(in.DiscoveryMethod, "all"),
		IncludePorts: boolOr(in.IncludePorts, true),
	}
	return s.execute(ctx, "network_discovery", spec, s.timeout, "Network discovery completed:", "Network discovery failed:"), nil
}

// CustomScan runs user-supplied options verbatim.
func (s *Service) CustomScan(ctx context.Context, in CustomScanInput) (string, error) {
	if in.Targets == "" {
		return "", fmt.Errorf("targets is required")
	}
	if in.CustomOptions == "" {
		return "", fmt.Errorf("custom_options is required")
	}
	spec := nmap.CustomScan{
		Targets:      in.Targets,
		Options:      in.CustomOptions,
		OutputFormat: in.OutputFormat,
	}
	return s.execute(ctx, "custom_scan", spec, s.timeout, "Custom scan completed:", "Custom scan failed:"), nil
}

// execute runs one invocation end to end. Every failure mode of the runner
// is already folded into the outcome, so the result is always a normal text
// block: the success or failure phrase, a blank line, then the verbatim
// stream content.
func (s *Service) execute(ctx context.Context, op string, spec nmap.ArgSpec, timeout time.Duration, success, failure string) string {
	runID := uuid.New().String()
	logger := s.logger.With().Str("operation", op).Str("run_id", runID).Logger()

	args := spec.Args()
	logger.Info().Strs("args", args).Dur("timeout", timeout).Msg("starting operation")

	outcome := s.runner.Run(ctx, args, timeout)

	logger.Info().
		Int("exit_code", outcome.ExitCode).
		Bool("success", outcome.Success).
		Msg("operation finished")

	if outcome.Success {
		return success + "\n\n" + outcome.Stdout
	}
	return failure + "\n\n" + outcome.Stderr
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

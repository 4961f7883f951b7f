// Package config loads application configuration from defaults, a YAML
// file, environment variables, and command-line flags, in that precedence
// order (flags win).
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/nmaptor/nmaptor/pkg/nmap"
)

// EnvPrefix is the prefix for environment variable overrides.
// NMAPTOR_LOG_LEVEL maps to log.level.
const EnvPrefix = "NMAPTOR_"

// Config is the fully merged application configuration.
type Config struct {
	Log    LogConfig    `koanf:"log"`
	Nmap   NmapConfig   `koanf:"nmap"`
	Server ServerConfig `koanf:"server"`
}

// LogConfig controls the zerolog pipeline.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// NmapConfig controls how the external scanner is invoked.
type NmapConfig struct {
	// Binary is the nmap executable name or path.
	Binary string `koanf:"binary"`
	// TimeoutSeconds bounds standard operations.
	TimeoutSeconds int `koanf:"timeout"`
	// LongTimeoutSeconds bounds comprehensive and vulnerability scans.
	LongTimeoutSeconds int `koanf:"longtimeout"`
	// KillGraceSeconds is the window between the cancellation signal and a
	// forced kill on timeout.
	KillGraceSeconds int `koanf:"killgrace"`
}

// ServerConfig controls the HTTP MCP transport.
type ServerConfig struct {
	Addr      string `koanf:"addr"`
	Port      int    `koanf:"port"`
	Stateless bool   `koanf:"stateless"`
	// APIKey enables bearer-token authentication when non-empty.
	APIKey string `koanf:"apikey"`
}

// DefaultConfig returns the baseline configuration used when no other
// source overrides a value.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Nmap: NmapConfig{
			Binary:             nmap.DefaultBinary,
			TimeoutSeconds:     300,
			LongTimeoutSeconds: 600,
			KillGraceSeconds:   5,
		},
		Server: ServerConfig{
			Addr:      "",
			Port:      8083,
			Stateless: true,
		},
	}
}

// DefaultConfigAsMap flattens DefaultConfig for koanf's confmap provider so
// every key is known before higher-priority sources load.
func DefaultConfigAsMap() map[string]any {
	def := DefaultConfig()
	return map[string]any{
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,

		"nmap.binary":      def.Nmap.Binary,
		"nmap.timeout":     def.Nmap.TimeoutSeconds,
		"nmap.longtimeout": def.Nmap.LongTimeoutSeconds,
		"nmap.killgrace":   def.Nmap.KillGraceSeconds,

		"server.addr":      def.Server.Addr,
		"server.port":      def.Server.Port,
		"server.stateless": def.Server.Stateless,
		"server.apikey":    def.Server.APIKey,
	}
}

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a Manager with its own koanf instance.
func NewManager() *Manager {
	return &Manager{koanfInstance: koanf.New(".")}
}

// Load merges configuration from the default source chain:
//
//  1. Defaults
//  2. YAML config file (optional)
//  3. Environment variables (NMAPTOR_ prefix, underscore-to-dot mapping)
//  4. Command-line flags
//
// For custom source ordering use LoadWithSources.
func (m *Manager) Load(flags *pflag.FlagSet, configFilePath string) error {
	return m.LoadWithSources(DefaultSources(configFilePath, flags))
}

// LoadWithSources loads the given sources in priority order (lowest first)
// and unmarshals the merged result.
func (m *Manager) LoadWithSources(sources []Source) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Priority() < sources[j].Priority()
	})

	for _, src := range sources {
		if err := src.Load(m.koanfInstance); err != nil {
			return fmt.Errorf("error loading config from %s: %w", src.Name(), err)
		}
	}

	var cfg Config
	if err := m.koanfInstance.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}
	m.currentConfig = cfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentConfig
}

// GetValue retrieves a raw configuration value by key path, or nil when the
// key does not exist.
func (m *Manager) GetValue(key string) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.koanfInstance.Get(key)
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Source is one configuration layer. Sources are loaded in ascending
// priority order; later loads override earlier values.
type Source interface {
	Name() string
	Priority() int
	Load(k *koanf.Koanf) error
}

// DefaultSources returns the standard source chain: defaults, optional YAML
// file, environment, flags.
func DefaultSources(configFilePath string, flags *pflag.FlagSet) []Source {
	sources := []Source{
		defaultsSource{},
		envSource{},
	}
	if configFilePath != "" {
		sources = append(sources, fileSource{path: configFilePath})
	}
	if flags != nil {
		sources = append(sources, flagSource{flags: flags})
	}
	return sources
}

// BindFlags defines command-line flags mirroring configuration keys. Flag
// names use the dotted key paths so the flag layer maps onto koanf without
// translation.
func BindFlags(flags *pflag.FlagSet) {
	def := DefaultConfig()

	flags.String("log.level", def.Log.Level, "Log level (debug, info, warn, error)")
	flags.String("log.format", def.Log.Format, "Log format (text, json)")
	flags.String("nmap.binary", def.Nmap.Binary, "Path to the nmap executable")
	flags.Int("nmap.timeout", def.Nmap.TimeoutSeconds, "Scan timeout in seconds")
	flags.Int("nmap.longtimeout", def.Nmap.LongTimeoutSeconds, "Timeout for comprehensive and vulnerability scans, in seconds")
	flags.Int("nmap.killgrace", def.Nmap.KillGraceSeconds, "Grace period before a timed-out scan is force-killed, in seconds")
	flags.String("server.addr", def.Server.Addr, "HTTP listen address")
	flags.Int("server.port", def.Server.Port, "HTTP listen port")
	flags.Bool("server.stateless", def.Server.Stateless, "Run the HTTP transport in stateless mode")
	flags.String("server.apikey", def.Server.APIKey, "API key for HTTP bearer authentication")
}

type defaultsSource struct{}

func (defaultsSource) Name() string  { return "defaults" }
func (defaultsSource) Priority() int { return 0 }

func (defaultsSource) Load(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil)
}

type fileSource struct {
	path string
}

func (s fileSource) Name() string { return fmt.Sprintf("file %s", s.path) }
func (fileSource) Priority() int  { return 10 }

func (s fileSource) Load(k *koanf.Koanf) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("config file not accessible: %w", err)
	}
	return k.Load(file.Provider(s.path), yaml.Parser())
}

type envSource struct{}

func (envSource) Name() string  { return "environment" }
func (envSource) Priority() int { return 20 }

func (envSource) Load(k *koanf.Koanf) error {
	return k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
}

type flagSource struct {
	flags *pflag.FlagSet
}

func (flagSource) Name() string  { return "flags" }
func (flagSource) Priority() int { return 30 }

func (s flagSource) Load(k *koanf.Koanf) error {
	// Passing k makes posflag skip unchanged flags whose keys already have
	// a value, so flag defaults do not clobber file or env settings.
	return k.Load(posflag.Provider(s.flags, ".", k), nil)
}

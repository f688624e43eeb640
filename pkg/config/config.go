package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for one analyzer run. Everything that
// influences resolution is an explicit field passed down to the
// resolver; there is no shared mutable process state.
type Config struct {
	Root          string `koanf:"root"`
	ProgramsDir   string `koanf:"programs-dir"`
	LibsDirs      string `koanf:"libs-dirs"` // comma-separated, order is precedence
	Mode          string `koanf:"mode"`      // official or draft
	ScanRootOnly  bool   `koanf:"scan-root-only"`
	Strict        bool   `koanf:"strict"`
	VendorIgnore  bool   `koanf:"vendor-ignore"`
	ShowMissing   bool   `koanf:"show-missing"`
	DryRun        bool   `koanf:"dry-run"`
	Doc           string `koanf:"doc"`
	DumpParseTree string `koanf:"dump-parse-tree"`
	DumpAST       string `koanf:"dump-ast"`
	Serve         bool   `koanf:"serve"`
	Port          int    `koanf:"port"`
	Verbose       bool   `koanf:"verbose"`
	Debug         bool   `koanf:"debug"`
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"root":            "Main",
		"programs-dir":    "programs",
		"libs-dirs":       "libs",
		"mode":            "official",
		"scan-root-only":  false,
		"strict":          false,
		"vendor-ignore":   false,
		"show-missing":    false,
		"dry-run":         false,
		"doc":             "",
		"dump-parse-tree": "",
		"dump-ast":        "",
		"serve":           false,
		"port":            8080,
		"verbose":         false,
		"debug":           false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional) - sattlint.toml
	// We ignore errors here as the file might not exist
	_ = k.Load(file.Provider("sattlint.toml"), toml.Parser())

	// 3. Environment Variables
	// Prefix: SATTLINT_ (e.g., SATTLINT_PROGRAMS_DIR=plc/programs)
	if err := k.Load(env.Provider("SATTLINT_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "SATTLINT_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LibDirs splits the comma-separated library directory list, trimming
// whitespace and preserving order. Order matters: it is the search
// precedence.
func (c *Config) LibDirs() []string {
	if c.LibsDirs == "" {
		return nil
	}
	parts := strings.Split(c.LibsDirs, ",")
	dirs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			dirs = append(dirs, p)
		}
	}
	return dirs
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}

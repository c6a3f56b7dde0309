// Package config loads paskal.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dhamidi/paskal/semantic"
)

// FileName is the name Discover looks for.
const FileName = "paskal.toml"

type Config struct {
	// Rules is the lexer rule file. Empty selects the bundled rules.
	// A relative path is resolved against the directory of the
	// configuration file.
	Rules    string   `toml:"rules"`
	Log      Log      `toml:"log"`
	Analysis Analysis `toml:"analysis"`
	Output   Output   `toml:"output"`

	// Path is the file the configuration was loaded from, if any.
	Path string `toml:"-"`
}

type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

type Analysis struct {
	Bounds string `toml:"bounds"`
}

type Output struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

func Default() *Config {
	return &Config{
		Analysis: Analysis{Bounds: semantic.BoundError.String()},
		Output:   Output{Format: "text", Color: true},
	}
}

// Load reads the configuration at path on top of Default. Unknown keys
// are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	cfg.Path = path
	if cfg.Rules != "" && !filepath.IsAbs(cfg.Rules) {
		cfg.Rules = filepath.Join(filepath.Dir(path), cfg.Rules)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the first paskal.toml found in dir or one of its
// parents. Without one it returns Default.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Find returns the path of the nearest paskal.toml, or "" if there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("find config: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("find config: %w", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) Validate() error {
	if _, err := semantic.ParseBoundPolicy(c.Analysis.Bounds); err != nil {
		return fmt.Errorf("analysis.bounds: %w", err)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("output.format: unknown format %q", c.Output.Format)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity: must not be negative")
	}
	return nil
}

// BoundPolicy returns the validated array bound policy.
func (c *Config) BoundPolicy() semantic.BoundPolicy {
	p, _ := semantic.ParseBoundPolicy(c.Analysis.Bounds)
	return p
}

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/simplify"
)

const (
	DefaultConfigFile = ".formula.yaml"
	defaultCacheSize  = 256
)

// FunctionDef defines a user function, e.g. name "f", params ["t"] and
// body "t^2 + 1" for f(t) = t^2 + 1.
type FunctionDef struct {
	Name   string   `yaml:"name" toml:"name"`
	Params []string `yaml:"params" toml:"params"`
	Body   string   `yaml:"body" toml:"body"`
}

// Config is the engine configuration read from a yaml or toml file.
type Config struct {
	Name string `yaml:"name" toml:"name"`
	// Rules switch named simplifier rewrites; severity "off" disables one.
	Rules     map[string]types.ConfigRule `yaml:"rules" toml:"rules"`
	Functions []FunctionDef               `yaml:"functions,omitempty" toml:"functions,omitempty"`
	// Params bind variables to formulas before simplifying.
	Params      map[string]string `yaml:"params,omitempty" toml:"params,omitempty"`
	MaxPasses   int               `yaml:"max_passes,omitempty" toml:"max_passes,omitempty"`
	CacheSize   int               `yaml:"cache_size,omitempty" toml:"cache_size,omitempty"`
	CacheMaxAge time.Duration     `yaml:"cache_max_age,omitempty" toml:"cache_max_age,omitempty"`
}

// DefaultConfig lists every rewrite at its default severity.
func DefaultConfig() Config {
	rules := make(map[string]types.ConfigRule, len(simplify.Names()))
	for _, name := range simplify.Names() {
		rules[name] = types.ConfigRule{Severity: types.SeverityError}
	}
	return Config{
		Name:      "formula",
		Rules:     rules,
		MaxPasses: simplify.DefaultMaxPasses,
		CacheSize: defaultCacheSize,
	}
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func detectFormat(path string) (format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported configuration format %q", ext)
	}
}

// LoadConfig reads the configuration at path. An empty path yields
// DefaultConfig. Fields missing from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := detectFormat(path)
	if err != nil {
		return config, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read configuration: %w", err)
	}

	switch f {
	case formatTOML:
		err = toml.Unmarshal(content, &config)
	default:
		err = yaml.Unmarshal(content, &config)
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse configuration %s: %w", path, err)
	}
	return config, nil
}

// WriteConfig stores config at path in the format given by its extension.
func WriteConfig(path string, config Config) error {
	f, err := detectFormat(path)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if f == formatTOML {
		return toml.NewEncoder(out).Encode(config)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return err
	}
	return enc.Close()
}

// disabledRules returns the rewrites switched off in config.
func (c Config) disabledRules() []string {
	var off []string
	for name, rule := range c.Rules {
		if rule.Severity == types.SeverityOff {
			off = append(off, name)
		}
	}
	return off
}

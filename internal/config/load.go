package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DELEGATOR_"

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := Decode(path, data, &cfg); err != nil {
			return cfg, err
		}
		cfg.resolvePaths(filepath.Dir(path))
	}

	ApplyEnv(&cfg, os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode unmarshals data into cfg using the format implied by path's
// extension. Fields absent from data keep their current values.
func Decode(path string, data []byte, cfg *Config) error {
	ext := strings.ToLower(filepath.Ext(path))
	var err error
	switch ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return &ParseError{
			Path:    path,
			Format:  strings.TrimPrefix(ext, "."),
			Message: err.Error(),
			Err:     err,
		}
	}
	return nil
}

// resolvePaths makes the script path relative to the config file.
func (c *Config) resolvePaths(dir string) {
	if c.Script != "" && !filepath.IsAbs(c.Script) {
		c.Script = filepath.Join(dir, c.Script)
	}
}

// ApplyEnv overrides cfg from DELEGATOR_* variables read through lookup.
// DELEGATOR_EVENTS is a comma separated list.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPrefix + "CONTAINER"); ok {
		cfg.Container = v
	}
	if v, ok := lookup(EnvPrefix + "EVENTS"); ok {
		cfg.Events = splitList(v)
	}
	if v, ok := lookup(EnvPrefix + "DEFAULT_EVENTS"); ok {
		cfg.DefaultEvents = parseBool(v)
	}
	if v, ok := lookup(EnvPrefix + "SCRIPT"); ok {
		cfg.Script = v
	}
	if v, ok := lookup(EnvPrefix + "METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok {
		cfg.Log.Format = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

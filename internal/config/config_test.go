package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONTAINER", "EVENTS", "DEFAULT_EVENTS", "SCRIPT", "METRICS_ADDR", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(EnvPrefix+key, "")
		os.Unsetenv(EnvPrefix + key)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() is invalid: %v", err)
	}
	if cfg.Terminal.DoubleClickTime() != 400*time.Millisecond {
		t.Errorf("DoubleClickTime() = %v", cfg.Terminal.DoubleClickTime())
	}
	if len(cfg.BindList()) != 0 {
		t.Errorf("BindList() = %v, want empty", cfg.BindList())
	}
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "delegator.toml", `
container = "a"
events = ["click", "focus"]
script = "listeners.lua"

[log]
level = "debug"

[terminal]
double_click_ms = 250
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Container != "a" {
		t.Errorf("Container = %q", cfg.Container)
	}
	if !reflect.DeepEqual(cfg.Events, []string{"click", "focus"}) {
		t.Errorf("Events = %v", cfg.Events)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want level from file and format from defaults", cfg.Log)
	}
	if cfg.Terminal.DoubleClickMS != 250 || cfg.Terminal.DoubleClickDistance != 2 {
		t.Errorf("Terminal = %+v", cfg.Terminal)
	}
	if cfg.Script != filepath.Join(filepath.Dir(path), "listeners.lua") {
		t.Errorf("Script = %q, want it resolved next to the config file", cfg.Script)
	}
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "delegator.yaml", `
container: menu
default_events: true
events: [custom]
log:
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Container != "menu" || !cfg.DefaultEvents || cfg.Log.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
	list := cfg.BindList()
	if list[0] != "abort" || list[len(list)-1] != "custom" || len(list) != 67 {
		t.Errorf("BindList() = %v", list)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := writeFile(t, "bad.toml", "events = [")
	var perr *ParseError
	if _, err := Load(bad); !errors.As(err, &perr) {
		t.Errorf("error = %v, want *ParseError", err)
	} else if perr.Format != "toml" {
		t.Errorf("ParseError.Format = %q", perr.Format)
	}

	ini := writeFile(t, "config.ini", "x=1")
	if _, err := Load(ini); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}

	invalid := writeFile(t, "invalid.yaml", "log:\n  level: loud\n")
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "delegator.toml", `container = "a"`)
	t.Setenv("DELEGATOR_CONTAINER", "b")
	t.Setenv("DELEGATOR_EVENTS", "click, keydown,,")
	t.Setenv("DELEGATOR_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Container != "b" || cfg.Log.Level != "warn" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Events, []string{"click", "keydown"}) {
		t.Errorf("Events = %v", cfg.Events)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"DELEGATOR_DEFAULT_EVENTS": "yes",
		"DELEGATOR_SCRIPT":         "/tmp/x.lua",
		"DELEGATOR_METRICS_ADDR":   ":9090",
		"DELEGATOR_LOG_FORMAT":     "json",
	}
	cfg := Default()
	ApplyEnv(&cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if !cfg.DefaultEvents || cfg.Script != "/tmp/x.lua" || cfg.MetricsAddr != ":9090" || cfg.Log.Format != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty event", func(c *Config) { c.Events = []string{"click", " "} }, "events[1]"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"negative click time", func(c *Config) { c.Terminal.DoubleClickMS = -1 }, "terminal.double_click_ms"},
		{"negative distance", func(c *Config) { c.Terminal.DoubleClickDistance = -1 }, "terminal.double_click_distance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("Validate() = %v, want field %s", err, tt.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ValidationError does not match ErrInvalidConfig")
			}
		})
	}
}

func TestBindList_Dedup(t *testing.T) {
	cfg := Config{DefaultEvents: true, Events: []string{"click", "custom", "custom"}}
	list := cfg.BindList()

	count := map[string]int{}
	for _, name := range list {
		count[name]++
	}
	if count["click"] != 1 || count["custom"] != 1 {
		t.Errorf("BindList() has duplicates: %v", count)
	}
}

package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Endpoint  string        `koanf:"endpoint"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit float64       `koanf:"rate_limit"`
	Log       struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/path/to/settings.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/path/to/settings.yaml" {
		t.Errorf("filePath = %q", l.filePath)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeSettings(t, `
endpoint: "http://localhost:4000/graphql"
log:
  level: debug
`)

	l := NewLoader()
	if err := l.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got := l.GetString("endpoint"); got != "http://localhost:4000/graphql" {
		t.Errorf("endpoint = %q", got)
	}
	if got := l.GetString("log.level"); got != "debug" {
		t.Errorf("log.level = %q, want debug", got)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	if err := NewLoader().LoadFile("/nonexistent/settings.yaml"); err == nil {
		t.Error("LoadFile() should return error for nonexistent file")
	}
}

func TestLoader_Load_MissingFileIsSkipped(t *testing.T) {
	l := NewLoader(
		WithConfigFile(filepath.Join(t.TempDir(), "absent.yaml")),
		WithDefaults(map[string]any{"endpoint": "default"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Endpoint != "default" {
		t.Errorf("Endpoint = %q, want default", cfg.Endpoint)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}
}

func TestLoader_LoadEnv_Sections(t *testing.T) {
	t.Setenv("LINEARCLI_LOG_LEVEL", "debug")
	t.Setenv("LINEARCLI_RATE_LIMIT", "2.5")
	t.Setenv("LINEARCLI_TIMEOUT", "5s")

	l := NewLoader(WithEnvSections("log"))

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("RateLimit = %v, want 2.5", cfg.RateLimit)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
}

func TestLoader_LoadMap_DottedKeys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(map[string]any{"log.format": "json", "endpoint": "x"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q, want json", cfg.Log.Format)
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeSettings(t, `
endpoint: from-file
timeout: 10s
log:
  level: info
  format: text
`)
	t.Setenv("LINEARCLI_ENDPOINT", "from-env")
	t.Setenv("LINEARCLI_LOG_LEVEL", "error")

	l := NewLoader(
		WithEnvSections("log"),
		WithConfigFile(path),
		WithDefaults(map[string]any{"endpoint": "default", "timeout": "30s", "log.format": "auto"}),
		WithOverrides(map[string]any{"log.level": "debug"}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Endpoint != "from-env" {
		t.Errorf("Endpoint = %q, want from-env (env should override file)", cfg.Endpoint)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s (file should override default)", cfg.Timeout)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug (override wins)", cfg.Log.Level)
	}
}

package config

import (
	"path/filepath"
	"time"

	"github.com/yndnr/linearcli/internal/cli/connection"
	"github.com/yndnr/linearcli/internal/cli/output"
	"github.com/yndnr/linearcli/internal/core/domain"
	"github.com/yndnr/linearcli/internal/infra/confloader"
	"github.com/yndnr/linearcli/internal/storage/cache"
	"github.com/yndnr/linearcli/internal/telemetry/logger"
)

// FileName is the settings file inside the home directory.
const FileName = "settings.yaml"

// Settings is the runtime configuration of the CLI.
type Settings struct {
	Home          string        `koanf:"home"`
	Endpoint      string        `koanf:"endpoint"`
	Timeout       time.Duration `koanf:"timeout"`
	RateLimit     float64       `koanf:"rate_limit"`
	AvatarWorkers int           `koanf:"avatar_workers"`
	Output        string        `koanf:"output"`
	CAFile        string        `koanf:"ca_file"`
	MetricsFile   string        `koanf:"metrics_file"`
	Log           LogSettings   `koanf:"log"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Home:          cache.DefaultDir(),
		Endpoint:      connection.DefaultEndpoint,
		Timeout:       connection.DefaultTimeout,
		RateLimit:     0,
		AvatarWorkers: 1,
		Output:        string(output.FormatJSON),
		Log: LogSettings{
			Level:  "warn",
			Format: "auto",
		},
	}
}

func (s *Settings) asMap() map[string]any {
	return map[string]any{
		"home":           s.Home,
		"endpoint":       s.Endpoint,
		"timeout":        s.Timeout.String(),
		"rate_limit":     s.RateLimit,
		"avatar_workers": s.AvatarWorkers,
		"output":         s.Output,
		"ca_file":        s.CAFile,
		"metrics_file":   s.MetricsFile,
		"log.level":      s.Log.Level,
		"log.format":     s.Log.Format,
	}
}

// Load resolves settings. The home directory is settled first (override,
// then LINEARCLI_HOME, then the default) because it locates the settings
// file; overrides are dotted keys such as "output" or "log.level".
func Load(overrides map[string]any) (*Settings, error) {
	home, err := resolveHome(overrides)
	if err != nil {
		return nil, err
	}

	defaults := Default()
	defaults.Home = home

	s := &Settings{}
	loader := confloader.NewLoader(
		confloader.WithEnvSections("log"),
		confloader.WithConfigFile(filepath.Join(home, FileName)),
		confloader.WithDefaults(defaults.asMap()),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(s); err != nil {
		return nil, err
	}
	// home is fixed before the file is read.
	s.Home = home

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func resolveHome(overrides map[string]any) (string, error) {
	if h, ok := overrides["home"].(string); ok && h != "" {
		return h, nil
	}
	loader := confloader.NewLoader()
	if err := loader.LoadEnv(); err != nil {
		return "", err
	}
	if h := loader.GetString("home"); h != "" {
		return h, nil
	}
	return cache.DefaultDir(), nil
}

// Validate checks value ranges and enumerations.
func (s *Settings) Validate() error {
	if s.Endpoint == "" {
		return domain.ErrInvalidArgument.WithDetails("endpoint must not be empty")
	}
	if s.Timeout < 0 {
		return domain.ErrInvalidArgument.WithDetailsf("timeout must not be negative, got %s", s.Timeout)
	}
	if s.RateLimit < 0 {
		return domain.ErrInvalidArgument.WithDetailsf("rate_limit must not be negative, got %v", s.RateLimit)
	}
	if s.AvatarWorkers < 1 {
		return domain.ErrInvalidArgument.WithDetailsf("avatar_workers must be at least 1, got %d", s.AvatarWorkers)
	}
	if _, err := output.ParseFormat(s.Output); err != nil {
		return err
	}
	switch s.Log.Format {
	case "auto", "text", "json":
	default:
		return domain.ErrInvalidArgument.WithDetailsf("log.format must be auto, text or json, got %q", s.Log.Format)
	}
	return nil
}

// LoggerConfig converts the log settings for the logger package.
func (s *Settings) LoggerConfig() logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = s.Log.Level
	cfg.Format = s.Log.Format
	return cfg
}

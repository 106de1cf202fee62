package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings keys, shared by flags, environment and config.yaml.
const (
	KeyConfigDir = "config_dir"
	KeyFPS       = "fps"
	KeyAltScreen = "alt_screen"
	KeyLogFile   = "log_file"
	KeyLogLevel  = "log_level"
)

// Settings controls the terminal host. Quiz content is not configurable here.
type Settings struct {
	ConfigDir string `mapstructure:"config_dir"`
	FPS       int    `mapstructure:"fps"`
	AltScreen bool   `mapstructure:"alt_screen"`
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFPS, 60)
	v.SetDefault(KeyAltScreen, true)
	v.SetDefault(KeyLogLevel, "info")
}

// ReadConfigFile merges config.yaml from the config directory when present.
func ReadConfigFile(v *viper.Viper) error {
	dir := v.GetString(KeyConfigDir)
	if dir == "" {
		return nil
	}
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// LoadSettings decodes and sanity-checks the settings held by v.
func LoadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if s.FPS <= 0 || s.FPS > 240 {
		return Settings{}, fmt.Errorf("fps must be between 1 and 240, got %d", s.FPS)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", name, err)
	}
	return lvl, nil
}

// NewLogger returns a text logger writing to the configured log file, or a
// logger that discards everything when no file is set. The returned closer
// must be called on shutdown.
func (s Settings) NewLogger() (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(s.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if s.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, f, nil
}

// DefaultConfigDir returns $HOME/.config/closer.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "closer"), nil
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields Vitrine needs to reach the storefront
// backend and to place its local data.
type Config struct {
	APIURL         string
	DataDir        string
	TimeoutSeconds int
}

const (
	defaultConfigPath = "~/.config/vitrine/config.toml"
	defaultDataDir    = "~/.local/share/vitrine"
	defaultTimeout    = 10

	envAPIURL  = "VITRINE_API_URL"
	envDataDir = "VITRINE_DATA_DIR"
)

// Load locates and parses the config file, falling back to defaults when
// missing, then applies environment overrides. A .env file in the working
// directory is honored the same way as real environment variables.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{DataDir: defaultDataDir, TimeoutSeconds: defaultTimeout}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer file.Close()

		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}

		var raw struct {
			APIURL         string `toml:"api_url"`
			DataDir        string `toml:"data_dir"`
			TimeoutSeconds int    `toml:"timeout_seconds"`
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}

		if url := strings.TrimSpace(raw.APIURL); url != "" {
			cfg.APIURL = url
		}
		if dir := strings.TrimSpace(raw.DataDir); dir != "" {
			cfg.DataDir = dir
		}
		if raw.TimeoutSeconds > 0 {
			cfg.TimeoutSeconds = raw.TimeoutSeconds
		}
	}

	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if url := strings.TrimSpace(os.Getenv(envAPIURL)); url != "" {
		cfg.APIURL = url
	}
	if dir := strings.TrimSpace(os.Getenv(envDataDir)); dir != "" {
		cfg.DataDir = dir
	}

	cfg.DataDir = mustExpand(cfg.DataDir)
	return cfg, nil
}

// StorePath returns the path of the persisted key/value store file.
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, "store.json")
}

// LogPath returns the path of the application log file.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "vitrine.log")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "cigbreak/internal/platform/errors"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"

	NotifierDesktop  = "desktop"
	NotifierTerminal = "terminal"
	NotifierNone     = "none"

	DefaultSegmentSeconds = 22
	stateDirName          = ".cigbreak"
	configFileName        = "config.yaml"
)

type Config struct {
	DataDir    string `yaml:"-"`
	StateDir   string `yaml:"-"`
	ConfigPath string `yaml:"-"`
	DBPath     string `yaml:"-"`
	KVDir      string `yaml:"-"`
	LogPath    string `yaml:"-"`

	Store          string `yaml:"store"`
	SegmentSeconds int    `yaml:"segment_seconds"`
	Notifier       string `yaml:"notifier"`
	OpenBrowser    bool   `yaml:"open_browser"`
	CatalogPath    string `yaml:"catalog_path"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

// New returns the defaults rooted at dataDir, without reading any file.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required: %w", apperrors.ErrInvalidInput)
	}
	stateDir := filepath.Join(dataDir, stateDirName)
	return Config{
		DataDir:        dataDir,
		StateDir:       stateDir,
		ConfigPath:     filepath.Join(stateDir, configFileName),
		DBPath:         filepath.Join(stateDir, "cigbreak.db"),
		KVDir:          filepath.Join(stateDir, "kv"),
		LogPath:        filepath.Join(stateDir, "cigbreak.log"),
		Store:          StoreFile,
		SegmentSeconds: DefaultSegmentSeconds,
		Notifier:       NotifierTerminal,
		OpenBrowser:    true,
		LogLevel:       "info",
	}, nil
}

// Load overlays <dataDir>/.cigbreak/config.yaml on the defaults. A missing file
// is not an error.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(cfg.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", cfg.ConfigPath, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", cfg.ConfigPath, err)
	}
	if cfg.CatalogPath != "" && !filepath.IsAbs(cfg.CatalogPath) {
		cfg.CatalogPath = filepath.Join(cfg.DataDir, cfg.CatalogPath)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("store %q: %w", c.Store, apperrors.ErrInvalidInput)
	}
	switch c.Notifier {
	case NotifierDesktop, NotifierTerminal, NotifierNone:
	default:
		return fmt.Errorf("notifier %q: %w", c.Notifier, apperrors.ErrInvalidInput)
	}
	if c.SegmentSeconds <= 0 {
		return fmt.Errorf("segment_seconds must be positive, got %d: %w", c.SegmentSeconds, apperrors.ErrInvalidInput)
	}
	return nil
}

func (c Config) SegmentDuration() time.Duration {
	return time.Duration(c.SegmentSeconds) * time.Second
}

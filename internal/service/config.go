package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xolan/stt/internal/config"
)

// ErrConfigExists is returned by Init when a config file is already present.
var ErrConfigExists = errors.New("config file already exists")

// ConfigService owns the user config file and tells subscribers about
// every accepted change.
type ConfigService struct {
	configPath string

	mu       sync.RWMutex
	config   config.Config
	onChange []func(config.Config)
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// OnChange registers fn to receive the config after each Update, Set and Reload.
func (s *ConfigService) OnChange(fn func(config.Config)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Update validates cfg, writes it to the config file and makes it current.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := s.writeConfig(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	s.replace(cfg)
	return nil
}

// Set changes the single setting key and saves the result.
func (s *ConfigService) Set(key, value string) (config.Config, error) {
	cfg := s.Get()
	if err := cfg.Set(key, value); err != nil {
		return config.Config{}, err
	}
	if err := s.Update(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Init writes the commented sample config. An existing file is only
// replaced when force is set.
func (s *ConfigService) Init(force bool) error {
	if s.Exists() && !force {
		return fmt.Errorf("%w at %s", ErrConfigExists, s.configPath)
	}
	if err := writeAtomic(s.configPath, config.GenerateSampleConfig()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reload re-reads the config file; a missing file means defaults.
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.replace(cfg)
	return nil
}

func (s *ConfigService) replace(cfg config.Config) {
	s.mu.Lock()
	s.config = cfg
	subscribers := append([]func(config.Config){}, s.onChange...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(cfg)
	}
}

// writeConfig writes the config to the config file in TOML format
func (s *ConfigService) writeConfig(cfg config.Config) error {
	content, err := config.Render(cfg)
	if err != nil {
		return err
	}
	return writeAtomic(s.configPath, content)
}

// writeAtomic replaces path through a temporary file in the same directory.
func writeAtomic(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

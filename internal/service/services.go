package service

import (
	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/document"
	"github.com/xolan/stt/internal/host"
)

// Services holds all service instances used by the application
type Services struct {
	Tracker *TrackerService
	Config  *ConfigService
}

// NewServices creates a new Services instance with the default config path
func NewServices() (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithPaths(configPath, cfg), nil
}

// NewServicesWithPaths creates a new Services instance with a custom config
// path, reading and writing documents on the local filesystem.
func NewServicesWithPaths(configPath string, cfg config.Config) *Services {
	return NewServicesWith(configPath, cfg, document.FileStore{}, host.SystemClock{})
}

// NewServicesWith creates a new Services instance over the given document
// store and clock (useful for testing)
func NewServicesWith(configPath string, cfg config.Config, store document.Store, clock host.Clock) *Services {
	var backup func(string) error
	if _, ok := store.(document.FileStore); ok {
		backup = document.CreateBackup
	}

	services := &Services{
		Tracker: NewTrackerService(store, clock, cfg, backup),
		Config:  NewConfigService(configPath, cfg),
	}
	services.Config.OnChange(services.Tracker.SetConfig)
	return services
}

// Reload re-reads the config file. The tracker service picks up the
// result through its change subscription.
func (s *Services) Reload() error {
	return s.Config.Reload()
}

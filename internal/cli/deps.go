package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"

	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services
	Services *service.Services

	// Clipboard copies text to the system clipboard
	Clipboard func(text string) error
	Config    config.Config
}

// DefaultDeps creates Deps over the user's config file. A config file that
// cannot be loaded is reported and replaced by defaults; the next
// "stt config set" rewrites it.
func DefaultDeps() *Deps {
	services, err := service.NewServices()
	if err != nil {
		slog.Warn("using default configuration", slog.String("error", err.Error()))
		configPath, _ := config.GetConfigPath()
		services = service.NewServicesWithPaths(configPath, config.DefaultConfig())
	}
	return NewDeps(services, services.Config.Get())
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Stdin:     os.Stdin,
		Exit:      os.Exit,
		Services:  services,
		Clipboard: clipboard.WriteAll,
		Config:    cfg,
	}
}

// Confirmer returns a confirmer that prompts on the deps' terminal streams.
func (d *Deps) Confirmer() *PromptConfirmer {
	return NewPromptConfirmer(d.Stdin, d.Stderr)
}

// Global deps instance for CLI
var deps = DefaultDeps()

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	return deps
}

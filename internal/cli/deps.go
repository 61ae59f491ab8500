package cli

import (
	"io"
	"os"
	"time"

	"github.com/xolan/billable/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	Now    func() time.Time

	// Services is built by Init unless set beforehand
	Services *service.Services
	Styles   Styles

	loadServices func() (*service.Services, error)
}

// DefaultDeps creates a new Deps writing to the process streams. Services
// are loaded on Init.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Stdin:        os.Stdin,
		Exit:         os.Exit,
		Now:          time.Now,
		Styles:       NewStyles(os.Stdout),
		loadServices: service.NewServices,
	}
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services) *Deps {
	d := DefaultDeps()
	d.Services = services
	return d
}

// Init loads the services if they have not been set
func (d *Deps) Init() error {
	if d.Services != nil {
		return nil
	}
	services, err := d.loadServices()
	if err != nil {
		return err
	}
	d.Services = services
	return nil
}

// Close releases the services
func (d *Deps) Close() error {
	if d.Services == nil {
		return nil
	}
	return d.Services.Close()
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

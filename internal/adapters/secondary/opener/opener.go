package opener

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/fredcamaral/slidecraft/internal/domain/ports"
)

// Handler is a platform command able to open a file with its default application
type Handler struct {
	Name    string
	Command string
	Args    func(path string) []string
}

// Opener opens generated decks, previews and handouts
type Opener struct {
	handlers []Handler
	lookPath func(string) (string, error)
}

// New creates an opener for the current platform
func New() *Opener {
	return &Opener{
		handlers: platformHandlers(runtime.GOOS),
		lookPath: exec.LookPath,
	}
}

// Open starts the default application for path without waiting for it
func (o *Opener) Open(path string, disabled bool) error {
	if disabled {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	handler, err := o.selectHandler()
	if err != nil {
		return fmt.Errorf("opener selection: %w", err)
	}

	cmd := exec.Command(handler.Command, handler.Args(path)...) // #nosec G204 - command comes from the fixed handler table
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", handler.Name, err)
	}

	go func() {
		_ = cmd.Wait()
	}()

	return nil
}

// Command returns the name of the handler that Open would use
func (o *Opener) Command() (string, error) {
	handler, err := o.selectHandler()
	if err != nil {
		return "", err
	}
	return handler.Name, nil
}

// selectHandler returns the first handler whose executable is on PATH
func (o *Opener) selectHandler() (*Handler, error) {
	if len(o.handlers) == 0 {
		return nil, errors.New("no file opener for this platform")
	}

	for _, candidate := range o.handlers {
		if _, err := o.lookPath(candidate.Command); err == nil {
			return &candidate, nil
		}
	}

	return nil, errors.New("no supported file opener found on this system")
}

func platformHandlers(goos string) []Handler {
	single := func(path string) []string { return []string{path} }

	switch goos {
	case "darwin":
		return []Handler{
			{Name: "open", Command: "open", Args: single},
		}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Handler{
			{Name: "xdg-open", Command: "xdg-open", Args: single},
			{Name: "gio", Command: "gio", Args: func(path string) []string {
				return []string{"open", path}
			}},
			{Name: "libreoffice", Command: "libreoffice", Args: single},
		}
	case "windows":
		return []Handler{
			{Name: "rundll32", Command: "rundll32", Args: func(path string) []string {
				return []string{"url.dll,FileProtocolHandler", path}
			}},
		}
	default:
		return nil
	}
}

var _ ports.FileOpener = (*Opener)(nil)

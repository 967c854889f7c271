package system

import (
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

// loginItem is the part of autostart.App used here.
type loginItem interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// SetAutostart enables or disables starting the GUI on login. Asking for
// the current state is a no-op.
func SetAutostart(enabled bool) error {
	return setLoginItem(guiLoginItem(), enabled)
}

// IsAutostartEnabled reports whether the GUI starts on login.
func IsAutostartEnabled() bool {
	return guiLoginItem().IsEnabled()
}

func setLoginItem(item loginItem, enabled bool) error {
	switch {
	case enabled == item.IsEnabled():
		return nil
	case enabled:
		return item.Enable()
	default:
		return item.Disable()
	}
}

// guiLoginItem starts this binary without arguments, which opens the GUI.
func guiLoginItem() *autostart.App {
	return &autostart.App{
		Name:        "DNSChanger",
		DisplayName: "DNS Changer",
		Exec:        []string{selfPath()},
	}
}

// selfPath resolves the running binary through symlinks so the login entry
// survives a package manager swapping the link. Falls back to the name on
// PATH.
func selfPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "dnschanger"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}

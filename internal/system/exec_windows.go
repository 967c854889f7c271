//go:build windows

package system

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// hideWindow keeps console windows from flashing up when started from the GUI.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

// isElevated reports whether the process token has administrator rights.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

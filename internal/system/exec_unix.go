//go:build !windows

package system

import (
	"os"
	"os/exec"
)

func hideWindow(*exec.Cmd) {}

func isElevated() bool {
	return os.Geteuid() == 0
}

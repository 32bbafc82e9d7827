//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its descendants via taskkill /F /T,
// the Windows equivalent of signalling a process group. Best-effort: the
// launcher already attempted a clean shutdown before this runs.
func KillProcessGroup(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}

//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group rooted at pid so that
// no browser child processes outlive a build or exec run. A negative PID
// targets the whole group. Best-effort: the launcher already attempted a
// clean shutdown before this runs.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

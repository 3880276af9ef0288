//go:build !windows

// Package process stops headless browser trees left behind by PDF export.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chrome's renderer and GPU children down with it. Non-positive PIDs are
// ignored: -0 would address the caller's own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Errors ignored; the launcher kills the leader afterwards anyway.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

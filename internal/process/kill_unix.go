//go:build !windows

// Package process stops the headless browser that renders PDFs together with
// the helper processes it spawns.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
func KillProcessGroup(pid int) {
	// Errors are ignored; the rod launcher kills the leader afterwards.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

//go:build windows

// Package process stops the headless browser that renders PDFs together with
// the helper processes it spawns.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its child tree with taskkill.
func KillProcessGroup(pid int) {
	// Errors are ignored; the rod launcher kills the leader afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}

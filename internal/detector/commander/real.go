package commander

import (
	"context"
	"os/exec"
)

// Real implements Commander using actual system commands
type Real struct{}

// NewReal creates a real commander
func NewReal() Commander {
	return &Real{}
}

// LookPath checks if a command exists
func (r *Real) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes a command. The process is killed when ctx expires; the
// returned error is then ctx.Err() so callers can tell a timeout apart.
func (r *Real) Run(ctx context.Context, name string, args []string, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	output, err := cmd.CombinedOutput()
	if err != nil && ctx.Err() != nil {
		return string(output), ctx.Err()
	}
	return string(output), err
}

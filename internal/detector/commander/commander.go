package commander

import "context"

// Commander abstracts command execution for testing
type Commander interface {
	LookPath(name string) (string, error)
	// Run executes name with args and returns its combined stdout and stderr.
	Run(ctx context.Context, name string, args []string, dir string) (output string, err error)
}

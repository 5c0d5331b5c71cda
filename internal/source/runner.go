// Package source runs the command behind the pane and pages its output.
package source

import (
	"context"
	"io"
	"os/exec"
)

// Runner executes a shell command, writing combined output to out.
type Runner interface {
	// Run blocks until the command exits.
	// Returns error if the command fails (non-zero exit code).
	Run(ctx context.Context, out io.Writer, command string) error
}

const defaultShell = "/bin/sh"

// ShellRunner runs commands with "sh -c", whatever the login shell is.
type ShellRunner struct {
	// Shell defaults to /bin/sh.
	Shell string
}

func (r *ShellRunner) Run(ctx context.Context, out io.Writer, command string) error {
	cmd := exec.CommandContext(ctx, r.shell(), "-c", command)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

func (r *ShellRunner) shell() string {
	if r.Shell != "" {
		return r.Shell
	}
	return defaultShell
}

// DefaultRunner returns a runner that executes real system commands.
func DefaultRunner() Runner {
	return &ShellRunner{}
}

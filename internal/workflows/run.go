package workflows

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/PolarWolf314/gitops-secrets/internal/audit"
	"github.com/PolarWolf314/gitops-secrets/internal/secrets"
)

// RunOptions configures the run workflow.
type RunOptions struct {
	// Client performs the decryption. Nil uses the environment master key.
	Client *secrets.Client

	// File is an envelope file or generated module. Empty uses the project's
	// configured envelope path.
	File string

	Command string
	Args    []string

	// Stdio for the child. Nil uses the current process's streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult contains the outcome of a run operation.
type RunResult struct {
	// ExitCode is the child's exit status.
	ExitCode int

	// Keys lists the variables added to the child's environment.
	Keys []string
}

// Run decrypts secrets and executes a command with them added to its
// environment. Decrypted values override variables of the same name.
// A non-zero exit of the child is reported in ExitCode, not as an error.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if opts.Command == "" {
		return nil, fmt.Errorf("no command given")
	}

	proj, err := loadProject()
	if err != nil {
		return nil, err
	}

	path, err := filepath.Abs(proj.filePath(opts.File))
	if err != nil {
		return nil, err
	}

	payload, err := secrets.DecryptFromFile(clientOrDefault(opts.Client), path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)
	// Later entries win, so decrypted values override the inherited ones.
	cmd.Env = append(os.Environ(), payload.Environ()...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if opts.Stdin != nil {
		cmd.Stdin = opts.Stdin
	}
	if opts.Stdout != nil {
		cmd.Stdout = opts.Stdout
	}
	if opts.Stderr != nil {
		cmd.Stderr = opts.Stderr
	}

	audit.Log(audit.Entry{
		Operation: audit.OpRun,
		Path:      audit.RelPath(path),
		KeysCount: len(payload),
		Command:   filepath.Base(opts.Command),
	})

	result := &RunResult{Keys: payload.Keys()}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", opts.Command, err)
	}
	return result, nil
}

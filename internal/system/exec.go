package system

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultCommandTimeout bounds a single command, including the time the user
// needs to answer an elevation prompt.
const DefaultCommandTimeout = 60 * time.Second

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Timeout time.Duration
	Log     zerolog.Logger
}

// NewExecRunner returns a runner with the given timeout; zero means
// DefaultCommandTimeout.
func NewExecRunner(timeout time.Duration, log zerolog.Logger) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &ExecRunner{Timeout: timeout, Log: log}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	r.Log.Debug().
		Str("command", command{name, args}.String()).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("Ran command")
	if err == nil {
		return output, nil
	}

	cerr := &CommandError{
		Command:  name,
		Args:     args,
		ExitCode: -1,
		Output:   strings.TrimSpace(string(output)),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cerr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cerr.Err = ctxErr
	}
	return output, cerr
}

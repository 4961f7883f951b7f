package nmap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBinary is resolved through PATH unless an explicit path is configured.
const DefaultBinary = "nmap"

// DefaultKillGrace is how long a child gets between the cancellation signal
// and a forced kill.
const DefaultKillGrace = 5 * time.Second

// Outcome describes how a single nmap invocation concluded. Every failure
// mode is captured here; Run never returns an error. ExitCode -1 marks a
// failure that happened before nmap produced its own exit code (timeout,
// missing executable, invocation error).
type Outcome struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
	Success  bool   `json:"success"`
}

// Runner executes the nmap binary as a bounded subprocess. Each call spawns
// an isolated child with its own pipes; a Runner holds no per-invocation
// state and is safe for concurrent use.
type Runner struct {
	binary    string
	killGrace time.Duration
	logger    zerolog.Logger
}

// NewRunner builds a Runner for the given binary. An empty binary selects
// DefaultBinary.
func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Runner{
		binary:    binary,
		killGrace: DefaultKillGrace,
		logger:    log.With().Str("component", "nmap-runner").Logger(),
	}
}

// WithKillGrace overrides the signal-to-kill escalation window.
func (r *Runner) WithKillGrace(grace time.Duration) *Runner {
	if grace > 0 {
		r.killGrace = grace
	}
	return r
}

// WithLogger replaces the runner's logger.
func (r *Runner) WithLogger(logger zerolog.Logger) *Runner {
	r.logger = logger
	return r
}

// Run executes the binary with the given arguments and timeout, capturing
// both output streams as text. On timeout the child is signaled with SIGTERM
// and force-killed after the grace window, so the timeout bound holds even
// if the child ignores the signal. The process and its pipes are fully
// reclaimed on every exit path.
func (r *Runner) Run(ctx context.Context, args []string, timeout time.Duration) Outcome {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, r.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = r.killGrace

	r.logger.Info().
		Str("binary", r.binary).
		Strs("args", args).
		Dur("timeout", timeout).
		Msg("executing nmap command")

	err := cmd.Run()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return Outcome{
			Stderr:   fmt.Sprintf("command timed out after %d seconds", int(timeout.Seconds())),
			ExitCode: -1,
		}
	}

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			// nmap ran and reported its own failure.
			return Outcome{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
		case errors.Is(err, exec.ErrNotFound):
			return Outcome{
				Stderr:   fmt.Sprintf("%s executable not found. Please ensure nmap is installed and available in PATH", r.binary),
				ExitCode: -1,
			}
		default:
			return Outcome{
				Stderr:   fmt.Sprintf("error executing nmap command: %v", err),
				ExitCode: -1,
			}
		}
	}

	return Outcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
		Success:  true,
	}
}

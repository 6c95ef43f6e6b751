/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: harness.go
Description: Single-shot process runner for fixture verification. Provides
process creation, output capture, timeout enforcement, and fault-signal
detection so the verification commands can check fixture behavior the same
way a real fuzzing harness would observe it.
*/

package harness

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the observed fate of a fixture run
type RunStatus int

const (
	StatusOK RunStatus = iota
	StatusCrash
	StatusTimeout
	StatusError
)

// String returns a human-readable status name
func (s RunStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusCrash:
		return "crash"
	case StatusTimeout:
		return "timeout"
	default:
		return "error"
	}
}

// Result captures everything observable about a single fixture run
type Result struct {
	RunID    string
	Status   RunStatus
	ExitCode int
	Signal   syscall.Signal
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Config holds the invocation parameters for a Runner
type Config struct {
	Target  string        // path to the fixture binary (required)
	Timeout time.Duration // kill the process after this long (0 = 30s)

	// Env is appended to the inherited environment, or used alone when
	// InheritEnv is false. Scrubbing the inherited environment is how the
	// verification commands probe the unset-variable failure paths.
	Env        []string
	InheritEnv bool
}

// Runner executes a fixture binary once per call and reports what happened
type Runner struct {
	config *Config
}

// NewRunner creates a runner for the given configuration
func NewRunner(config *Config) (*Runner, error) {
	if config == nil || config.Target == "" {
		return nil, fmt.Errorf("runner requires a target binary")
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &Runner{config: config}, nil
}

// Run invokes the target with the given arguments and waits for completion
// or timeout. A process that dies on a signal is reported as StatusCrash
// with the signal recorded, the way a harness would bucket it.
func (r *Runner) Run(args ...string) (*Result, error) {
	result := &Result{
		RunID:  uuid.New().String(),
		Status: StatusOK,
	}

	cmd := exec.Command(r.config.Target, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if r.config.InheritEnv {
		cmd.Env = append(os.Environ(), r.config.Env...)
	} else {
		// A nil Env would make os/exec inherit the parent environment,
		// defeating the scrub. Always hand over a concrete slice.
		cmd.Env = append([]string{}, r.config.Env...)
	}

	startTime := time.Now()
	if err := cmd.Start(); err != nil {
		result.Status = StatusError
		return result, fmt.Errorf("failed to start %s: %w", r.config.Target, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case errWait := <-done:
		result.Duration = time.Since(startTime)
		result.ExitCode = cmd.ProcessState.ExitCode()

		if ws, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			result.Signal = ws.Signal()
			result.Status = StatusCrash
		} else if errWait != nil {
			if _, isExit := errWait.(*exec.ExitError); !isExit {
				result.Status = StatusError
			}
		}

	case <-time.After(r.config.Timeout):
		cmd.Process.Kill()
		<-done
		result.Status = StatusTimeout
		result.Duration = r.config.Timeout
		// What ProcessState.ExitCode reports for a killed process; a zero
		// here would read as a clean exit next to the timeout status.
		result.ExitCode = -1
	}

	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()
	return result, nil
}

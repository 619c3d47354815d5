// Package process runs external commands for the build and reports how they
// ended. It knows nothing about shaders.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// Result describes one finished invocation.
type Result struct {
	// Ran reports whether the command started at all. A missing or
	// non-executable program leaves Ran false.
	Ran bool
	// Code is the exit status; 0 on success, 128 plus the signal number for a
	// command killed by a signal, 1 when it could not be determined.
	Code int
	// Output holds the combined stdout and stderr of the command.
	Output []byte
	// Err is nil only when the command exited with status 0.
	Err error
}

// Invoker runs a single command to completion.
type Invoker interface {
	Invoke(ctx context.Context, name string, args ...string) Result
}

// Exec invokes commands with os/exec.
type Exec struct {
	// Dir is the working directory. Empty means the current one.
	Dir string
	// Env overrides process environment variables. Entries are passed to the
	// command and used to expand $VAR references in its name and arguments.
	Env map[string]string
}

// Invoke runs the command and waits for it. The context is only consulted
// before the process starts; a started process always runs to completion.
func (e *Exec) Invoke(ctx context.Context, name string, args ...string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Code: 1, Err: err}
	}

	expand := func(s string) string {
		if v, ok := e.Env[s]; ok {
			return v
		}
		return os.Getenv(s)
	}
	name = os.Expand(name, expand)
	expanded := make([]string, len(args))
	for i, a := range args {
		expanded[i] = os.Expand(a, expand)
	}

	var out bytes.Buffer
	c := exec.Command(name, expanded...)
	c.Env = os.Environ()
	for k, v := range e.Env {
		c.Env = append(c.Env, k+"="+v)
	}
	c.Dir = e.Dir
	c.Stdout = &out
	c.Stderr = &out

	err := c.Run()
	res := Result{Ran: CmdRan(err), Code: ExitStatus(err), Output: out.Bytes()}
	if sig, ok := Signaled(err); ok {
		res.Err = fmt.Errorf("failed to run %q: killed by signal %d (%v): %w", CommandLine(name, expanded...), int(sig), sig, err)
	} else if err != nil {
		res.Err = fmt.Errorf("failed to run %q: %w", CommandLine(name, expanded...), err)
	}
	return res
}

// PrintOnly writes each command line to W instead of running it and reports
// success.
type PrintOnly struct {
	W  io.Writer
	mu sync.Mutex
}

// Invoke implements Invoker.
func (p *PrintOnly) Invoke(ctx context.Context, name string, args ...string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Code: 1, Err: err}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.W, CommandLine(name, args...))
	return Result{Ran: true}
}

// CommandLine renders a command as a single shell-like line.
func CommandLine(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	for _, s := range append([]string{name}, args...) {
		if s == "" || strings.ContainsAny(s, " \t\"'") {
			s = fmt.Sprintf("%q", s)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

// CmdRan reports whether err came from a command that actually ran, including
// one that exited with a non-zero status or was killed by a signal.
func CmdRan(err error) bool {
	if err == nil {
		return true
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ee.Exited() {
			return true
		}
		_, ok := Signaled(err)
		return ok
	}
	return false
}

type exitStatus interface {
	ExitStatus() int
}

type signalStatus interface {
	Signaled() bool
	Signal() syscall.Signal
}

// Signaled returns the signal that terminated the command behind err.
func Signaled(err error) (syscall.Signal, bool) {
	var ee *exec.ExitError
	if !errors.As(err, &ee) || ee.ProcessState == nil {
		return 0, false
	}
	ws, ok := ee.Sys().(signalStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return ws.Signal(), true
}

// ExitStatus returns the exit status carried by err: 0 for nil, the process
// status for an exec.ExitError, 128 plus the signal number for a command
// killed by a signal, and 1 for anything else.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(exitStatus); ok {
		return e.ExitStatus()
	}
	if sig, ok := Signaled(err); ok {
		return 128 + int(sig)
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ex, ok := ee.Sys().(exitStatus); ok && ex.ExitStatus() >= 0 {
			return ex.ExitStatus()
		}
		if code := ee.ExitCode(); code >= 0 {
			return code
		}
	}
	return 1
}

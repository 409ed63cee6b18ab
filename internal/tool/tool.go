// Package tool builds and runs the external programs the benchmark depends
// on: the binary diff generator and the 7z archiver.
package tool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ExitCommandNotFound is the exit code reported when the executable is missing.
const ExitCommandNotFound = 127

// CompressionFlags are the 7z method flags used for every patch. They select
// a BCJ2 branch converter feeding three LZMA streams; sizes are only
// comparable between runs that use exactly these flags.
var CompressionFlags = []string{
	"-t7z",
	"-m0=BCJ2",
	"-m1=LZMA:d27:fb128",
	"-m2=LZMA:d22:fb128:mf=bt2",
	"-m3=LZMA:d22:fb128:mf=bt2",
	"-mb0:1",
	"-mb0s1:2",
	"-mb0s2:3",
}

// Command is a program invocation.
type Command struct {
	Path string
	Args []string
}

// Argv returns the full argument vector, program first.
func (c Command) Argv() []string {
	return append([]string{c.Path}, c.Args...)
}

// String returns the command line as logged.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// PatchCommand generates patch from the old and new files.
func PatchCommand(tool, oldFile, newFile, patch string) Command {
	return Command{Path: tool, Args: []string{"-gen", oldFile, newFile, patch}}
}

// ApplyCommand reconstructs out by applying patch to oldFile.
func ApplyCommand(tool, oldFile, patch, out string) Command {
	return Command{Path: tool, Args: []string{"-apply", oldFile, patch, out}}
}

// CompressCommand archives in into the 7z archive out.
func CompressCommand(archiver, in, out string) Command {
	args := make([]string, 0, len(CompressionFlags)+3)
	args = append(args, "a")
	args = append(args, CompressionFlags...)
	args = append(args, out, in)
	return Command{Path: archiver, Args: args}
}

// Runner executes commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ErrNonZeroExit is matched by errors.Is for any command that ran and failed.
var ErrNonZeroExit = errors.New("command exited with non-zero code")

// ExitCodeError reports a failed command and its exit code.
// Use errors.As(err, &exitErr) to extract the code.
type ExitCodeError struct {
	Command string
	Code    int
	Err     error
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("%s: exit code %d", e.Command, e.Code)
}

func (e *ExitCodeError) Unwrap() error { return e.Err }

// Is reports ErrNonZeroExit for every exit code error.
func (e *ExitCodeError) Is(target error) bool {
	return target == ErrNonZeroExit
}

// ExecRunner runs commands as child processes. Output goes straight to
// Stdout and Stderr so tool diagnostics reach the operator unchanged.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the process's own stdout/stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run starts cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...) //nolint:gosec // tool paths come from operator config
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr
	err := c.Run()
	if err == nil {
		return nil
	}
	return &ExitCodeError{Command: cmd.String(), Code: exitCode(err), Err: err}
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ProcessState != nil {
			if code := exitErr.ProcessState.ExitCode(); code > 0 {
				return code
			}
		}
		return 1
	}
	if isCommandNotFound(err) {
		return ExitCommandNotFound
	}
	return 1
}

// isCommandNotFound handles exec.ErrNotFound and the string forms some
// platforms return for a missing executable.
func isCommandNotFound(err error) bool {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return true
	}
	msg := err.Error()
	if strings.Contains(msg, "executable file not found") {
		return true
	}
	return runtime.GOOS != "windows" && strings.Contains(msg, "no such file or directory")
}

package runner

import (
	"arch-provision/internal/logger"   // Debug and warning diagnostics
	"arch-provision/internal/reporter" // Status lines shown for every invocation
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
)

// Exit codes reported for children that never started, matching the shell.
const (
	ExitNotExecutable = 126
	ExitNotFound      = 127
)

// LogFileName is the name of the command log inside the temporary directory.
const LogFileName = "install.log"

// DefaultLogPath returns the well-known location of the command log.
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), LogFileName)
}

// Runner executes commands one at a time and reports each on a status line.
// It is not safe for concurrent use: the log file and the terminal line are
// shared and written in program order.
type Runner struct {
	Reporter *reporter.Reporter
	LogPath  string
	Shell    string // interpreter for script commands, run as "<Shell> -c <script>"
	Elevator string // program prefixed to elevated commands

	// Streams inherited by children in ModeDiscard. Stdin is passed in every mode.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Runner that logs to DefaultLogPath and uses sh and sudo.
func New(rep *reporter.Reporter) *Runner {
	if rep == nil {
		rep = reporter.New(nil)
	}
	return &Runner{
		Reporter: rep,
		LogPath:  DefaultLogPath(),
		Shell:    "sh",
		Elevator: "sudo",
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Run executes inv and reports it on a status line. A non-zero exit is never
// an error: it is reported, logged for logged modes, and returned in Result.
//
// For logged modes with logging enabled the log receives the command before it
// starts and, on failure, its exit code. A failing ModeLog command ends its
// line with WARN; every other failure ends with FAIL.
func (r *Runner) Run(inv Invocation) Result {
	// Record the command before it runs so the log reads in program order
	logged := !inv.SkipLog && inv.Mode.logged()
	if logged {
		r.appendLogQuietly("\n" + r.record(inv))
	}

	// Build the argument vector, wrapping it with the elevation program if needed
	argv := inv.Command.argv(r.Shell, r.Elevator)
	logger.Debug("[DEBUG] exec (%s): %s\n", inv.Mode, strings.Join(argv, " "))

	var stdout bytes.Buffer
	var cmd *exec.Cmd
	var logFile *os.File
	if len(argv) > 0 {
		cmd = exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = r.Stdin

		// Route the child's output according to the mode
		switch inv.Mode {
		case ModeDiscard:
			// Share the runner's streams so the user sees the output
			cmd.Stdout, cmd.Stderr = r.Stdout, r.Stderr
		case ModeCapture:
			// Keep stdout for the caller; stderr goes to the null device
			cmd.Stdout = &stdout
		case ModeLog:
			// Append stdout and stderr to the log; without logging the output is dropped
			if !inv.SkipLog {
				f, err := r.openLog(true)
				if err != nil {
					logger.Debug("[DEBUG] Cannot redirect output to %s: %v\n", r.LogPath, err)
				} else {
					logFile = f
					cmd.Stdout, cmd.Stderr = f, f
				}
			}
		case ModeSuppress:
			// nil streams are connected to the null device
		}
	}

	// Open the status line right before the child starts
	line := r.Reporter.Report(inv.Message, reporter.Waiting, reporter.NewlineAuto)

	// Block until the child exits; a command that cannot be built counts as not found
	code := ExitNotFound
	if cmd != nil {
		code = exitCode(cmd.Run())
	}
	if logFile != nil {
		if err := logFile.Close(); err != nil {
			logger.Debug("[DEBUG] Failed to close %s: %v\n", r.LogPath, err)
		}
	}

	// Finish the status line; output sent to the log only earns a warning
	errStatus := reporter.Failed
	if logged && inv.Mode == ModeLog {
		errStatus = reporter.Warning
	}
	line.Complete(code, 0, errStatus)

	// Note the failure in the log after the line is closed so diagnostics cannot split it
	if logged && code != 0 {
		r.appendLogQuietly(fmt.Sprintf("\n# Command non-zero exit code: %d", code))
	}

	res := Result{ExitCode: code}
	if inv.Mode == ModeCapture {
		// Replace invalid bytes so callers always get valid UTF-8 text
		res.Output = strings.ToValidUTF8(stdout.String(), "\uFFFD")
	}
	return res
}

// RunCaptured runs inv capturing stdout and returns the captured text.
func (r *Runner) RunCaptured(inv Invocation) string {
	inv.Mode = ModeCapture
	return r.Run(inv).Output
}

// RunLogged runs inv with all output appended to the log and returns the exit code.
func (r *Runner) RunLogged(inv Invocation) int {
	inv.Mode = ModeLog
	return r.Run(inv).ExitCode
}

// RunSuppressed runs inv with all output discarded and nothing logged.
func (r *Runner) RunSuppressed(inv Invocation) int {
	inv.Mode = ModeSuppress
	inv.SkipLog = true
	return r.Run(inv).ExitCode
}

// CommandExists reports whether name resolves to a command in the shell.
// The name is passed as a positional parameter, never spliced into the script.
func (r *Runner) CommandExists(name, message string) bool {
	return r.RunSuppressed(Invocation{
		Command: Exec(r.Shell, "-c", `command -v "$1"`, r.Shell, name),
		Message: message,
	}) == 0
}

// record renders the log line written before a command runs.
func (r *Runner) record(inv Invocation) string {
	var b strings.Builder
	b.WriteString("# ")
	if inv.Command.Elevate {
		fmt.Fprintf(&b, "(%s) $ ", inv.User)
	}
	b.WriteString(inv.Command.String())
	return b.String()
}

// exitCode converts the error returned by exec.Cmd.Run into a shell-style status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal())
		}
		return exitErr.ExitCode()
	}

	logger.Debug("[DEBUG] Command did not start: %v\n", err)
	if errors.Is(err, fs.ErrPermission) {
		return ExitNotExecutable
	}
	return ExitNotFound
}

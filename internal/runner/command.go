package runner

import (
	"github.com/kballard/go-shellquote" // Shell-safe rendering of argument vectors
	"strings"
)

// ElevateSentinel marks a raw command line that must run with elevated privileges.
const ElevateSentinel = "$ "

// OutputMode decides where a child's output goes and whether the call is logged.
type OutputMode int

const (
	ModeDiscard  OutputMode = iota // inherit the runner's streams; logged
	ModeCapture                    // capture stdout and return it; not logged
	ModeLog                        // append stdout and stderr to the log file; logged
	ModeSuppress                   // send everything to the null device; not logged
)

// logged reports whether invocations in this mode write command records to the log.
func (m OutputMode) logged() bool {
	return m == ModeDiscard || m == ModeLog
}

func (m OutputMode) String() string {
	switch m {
	case ModeDiscard:
		return "discard"
	case ModeCapture:
		return "capture"
	case ModeLog:
		return "log"
	case ModeSuppress:
		return "suppress"
	}
	return "unknown"
}

// Command is something to execute: either an argument vector run directly or
// a script handed to the shell. Args are never joined into a shell string.
type Command struct {
	Args    []string
	Script  string
	Elevate bool
}

// Exec returns a command that runs args without a shell.
func Exec(args ...string) Command {
	return Command{Args: args}
}

// Script returns a command that runs text through the shell.
func Script(text string) Command {
	return Command{Script: text}
}

// ParseLine turns a raw command line from configuration into a shell command.
// A leading ElevateSentinel is removed and marks the command as elevated.
func ParseLine(line string) Command {
	if rest, ok := strings.CutPrefix(line, ElevateSentinel); ok {
		return Command{Script: rest, Elevate: true}
	}
	return Command{Script: line}
}

// Elevated returns a copy of c that runs with elevated privileges.
func (c Command) Elevated() Command {
	c.Elevate = true
	return c
}

// String renders the command as it is recorded in the log, without the
// elevation wrapper.
func (c Command) String() string {
	if c.Script != "" {
		return c.Script
	}
	return shellquote.Join(c.Args...)
}

// argv builds the process argument vector.
func (c Command) argv(shell, elevator string) []string {
	var args []string
	if c.Elevate && elevator != "" {
		args = append(args, elevator)
	}
	if c.Script != "" {
		return append(args, shell, "-c", c.Script)
	}
	if len(c.Args) == 0 {
		return nil
	}
	return append(args, c.Args...)
}

// Invocation describes one call to Runner.Run.
type Invocation struct {
	Command Command
	Message string // shown on the status line
	User    string // annotation recorded in the log for elevated commands
	SkipLog bool   // do not write command records to the log
	Mode    OutputMode
}

// Result is the outcome of an invocation.
type Result struct {
	ExitCode int
	Output   string // captured stdout, only set in ModeCapture
}

// Success reports whether the child exited with status 0.
func (r Result) Success() bool { return r.ExitCode == 0 }

package reporter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	marker       = "§"
	escapeMarker = `\§`
	resetColor   = "\033[0m"
)

// Newline overrides whether Report terminates the line it writes.
type Newline int

const (
	NewlineAuto   Newline = iota // decided by the status, see Status.endsLine
	NewlineAlways                // always end the line
	NewlineNever                 // leave the line open
)

// Reporter renders status lines to a terminal stream.
// Every write is flushed right away because open lines are rewritten in place.
type Reporter struct {
	out   io.Writer
	plain bool
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithPlain strips color markers instead of translating them to ANSI sequences.
func WithPlain(plain bool) Option {
	return func(r *Reporter) { r.plain = plain }
}

// New returns a Reporter writing to out, or to standard output when out is nil.
func New(out io.Writer, opts ...Option) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	r := &Reporter{out: out}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Line is a status line written by Report that can be completed once.
type Line struct {
	r      *Reporter
	done   bool
	status Status
}

// Report writes message behind the prefix of status and returns the line
// handle. With NewlineAuto only terminal statuses (Done, Failed, Warning,
// Info, OK) end the line.
func (r *Reporter) Report(message string, status Status, nl Newline) *Line {
	if st := status.lookup(); status == Neutral || !status.known() {
		r.write(fmt.Sprintf("§%d>> ", st.color))
	} else {
		r.write(fmt.Sprintf("§%d>> [ %s ] ", st.color, st.label))
	}

	newline := status.endsLine()
	switch nl {
	case NewlineAlways:
		newline = true
	case NewlineNever:
		newline = false
	}
	if newline {
		message += "\n"
	}
	r.write(message)
	return &Line{r: r, status: status}
}

// Printf reports a message built from format with the default newline policy.
func (r *Reporter) Printf(status Status, format string, a ...any) {
	r.Report(fmt.Sprintf(format, a...), status, NewlineAuto)
}

// Blank writes an empty line without any color handling.
func (r *Reporter) Blank() {
	r.raw("\n")
}

// UpdateLine completes line in place: a carriage return followed by a DONE
// label when actual equals expected, or the label of errStatus otherwise.
// It returns the status that was rendered. A line is completed only once;
// later calls write nothing and return the first outcome.
func (r *Reporter) UpdateLine(line *Line, actual, expected int, errStatus Status) Status {
	if line != nil && line.done {
		return line.status
	}

	status := Done
	if actual != expected {
		status = errStatus
	}
	st := status.lookup()
	r.write(fmt.Sprintf("\r§%d>> [ %s ]\n", st.color, st.label))

	if line != nil {
		line.done = true
		line.status = status
	}
	return status
}

// Complete is shorthand for UpdateLine on the reporter that created the line.
func (l *Line) Complete(actual, expected int, errStatus Status) Status {
	return l.r.UpdateLine(l, actual, expected, errStatus)
}

// Completed reports whether the line has been updated with an outcome.
func (l *Line) Completed() bool { return l.done }

// Status returns the outcome of a completed line, or the status it was opened with.
func (l *Line) Status() Status { return l.status }

// write colorizes text (or strips markers in plain mode) and flushes it.
func (r *Reporter) write(text string) {
	if r.plain {
		r.raw(Strip(text))
		return
	}
	r.raw(Colorize(text, true))
}

func (r *Reporter) raw(text string) {
	_, _ = io.WriteString(r.out, text)
	flush(r.out)
}

// flush pushes output through writers that buffer it or can sync it.
// Sync fails on terminals and pipes; that error is ignored.
func flush(w io.Writer) {
	switch f := w.(type) {
	case interface{ Flush() error }:
		_ = f.Flush()
	case interface{ Sync() error }:
		_ = f.Sync()
	}
}

// Colorize replaces color markers "§0" through "§8" with ANSI foreground
// sequences: 0 selects the default white (37), 1-8 select 30-37.
// If the text contains an escaped marker `\§` it is unescaped and no
// substitution happens anywhere in the string. Unknown markers such as
// "§9" pass through unchanged. A reset sequence is appended when reset is set.
func Colorize(text string, reset bool) string {
	if strings.Contains(text, escapeMarker) {
		text = strings.ReplaceAll(text, escapeMarker, marker)
	} else if strings.Contains(text, marker) {
		for d := 0; d <= 8; d++ {
			text = strings.ReplaceAll(text, marker+strconv.Itoa(d), colorCode(d))
		}
	}
	if reset {
		text += resetColor
	}
	return text
}

// Strip removes color markers the same way Colorize would substitute them.
func Strip(text string) string {
	if strings.Contains(text, escapeMarker) {
		return strings.ReplaceAll(text, escapeMarker, marker)
	}
	for d := 0; d <= 8; d++ {
		text = strings.ReplaceAll(text, marker+strconv.Itoa(d), "")
	}
	return text
}

func colorCode(digit int) string {
	fg := 37
	if digit != 0 {
		fg = 29 + digit
	}
	return "\033[0;" + strconv.Itoa(fg) + "m"
}

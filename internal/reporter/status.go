package reporter

// Status selects the label and color of a status line prefix.
type Status int

const (
	Neutral Status = iota // ">> " with no bracketed label
	Waiting               // pending work; the line is completed later in place
	Done
	Failed
	Warning
	Info
	OK
)

// style is one row of the status lookup table.
type style struct {
	name  string
	label string // text shown between the brackets, always four columns
	color int    // color marker digit, see Colorize
}

// styles is indexed by Status and never modified.
var styles = [...]style{
	Neutral: {name: "neutral", label: "    ", color: 7},
	Waiting: {name: "waiting", label: "WAIT", color: 4},
	Done:    {name: "done", label: "DONE", color: 3},
	Failed:  {name: "failed", label: "FAIL", color: 2},
	Warning: {name: "warning", label: "WARN", color: 4},
	Info:    {name: "info", label: "INFO", color: 4},
	OK:      {name: "ok", label: " OK ", color: 3},
}

// lookup returns the style for s, falling back to Neutral for unknown values.
func (s Status) lookup() style {
	if !s.known() {
		return styles[Neutral]
	}
	return styles[s]
}

func (s Status) known() bool { return s >= 0 && int(s) < len(styles) }

// Label returns the fixed four-column label printed inside the brackets.
func (s Status) Label() string { return s.lookup().label }

// Color returns the color marker digit (0-8) used for the status prefix.
func (s Status) Color() int { return s.lookup().color }

func (s Status) String() string { return s.lookup().name }

// endsLine reports whether the status ends its line by default.
// Neutral and Waiting lines stay open so a later write can finish them.
func (s Status) endsLine() bool {
	return s > Waiting && s.known()
}

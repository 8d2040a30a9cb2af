package logger

import (
	"github.com/fatih/color" // Colored printf-style helpers for diagnostics
)

// Diagnostic printers used across the provisioning layers. They are separate
// from the reporter transcript: the reporter tells the user what is being
// provisioned, these tell the developer what happened underneath.

// Info prints informational diagnostics in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn prints warnings in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error prints errors in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug prints debug diagnostics in cyan once enabled through Init.
// It starts out as a no-op so packages can log before the CLI has parsed flags.
var Debug = func(format string, a ...any) {}

// Init enables or disables debug output.
// When enabled, Debug prints cyan messages; otherwise it silently drops them.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// DisableColor turns off escape sequences for every printer in this package.
func DisableColor() {
	color.NoColor = true
}

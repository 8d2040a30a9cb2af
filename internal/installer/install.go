package installer

import (
	"arch-provision/internal/logger" // Debug diagnostics
	"arch-provision/internal/runner" // Logged helper invocations
	"fmt"
	"strings"
)

// DefaultHelper is the package-manager helper used when none is configured.
// It must understand pacman's flags and also build AUR packages.
const DefaultHelper = "yay"

// PackageManager installs packages through a pacman-compatible AUR helper.
type PackageManager struct {
	Runner     *runner.Runner
	Helper     string
	OnlyNeeded bool // pass --needed so up-to-date packages are not reinstalled
}

// Exists reports whether the helper can be found on this system.
func (p *PackageManager) Exists() bool {
	return p.Runner.CommandExists(p.Helper, "Checking if AUR helper exists.")
}

// RefreshCache synchronizes the package databases and returns the helper's
// exit code. A forced refresh downloads every database even if up to date.
func (p *PackageManager) RefreshCache(force bool) int {
	// -yy forces a download of every database
	flag := "-Sy"
	if force {
		flag = "-Syy"
	}
	return p.Runner.RunLogged(runner.Invocation{
		Command: runner.Exec(p.Helper, flag),
		Message: "Refreshing pacman database cache.",
	})
}

// Install installs the space separated packages in pkgs and returns the
// helper's exit code. Packages given as paths are installed from local
// package files (-U) instead of the repositories (-S).
func (p *PackageManager) Install(feature, pkgs string) int {
	names := strings.Fields(pkgs)

	// Any path component means local package files
	action := "-S"
	if strings.Contains(pkgs, "/") {
		action = "-U"
	}
	// Never prompt and keep the log free of progress bars
	args := []string{p.Helper, action, "--noconfirm", "--noprogressbar"}
	if p.OnlyNeeded {
		args = append(args, "--needed")
	}
	args = append(args, names...)

	message := "Installing " + pkgs
	if feature != "" {
		message = fmt.Sprintf("Installing %s: %s", feature, pkgs)
	}
	logger.Debug("[DEBUG] Installing %d package(s) for %q with %s\n", len(names), feature, action)

	return p.Runner.RunLogged(runner.Invocation{
		Command: runner.Exec(args...),
		Message: message,
	})
}

package installer

import (
	"arch-provision/internal/config"   // Provisioning file loading
	"arch-provision/internal/logger"   // Diagnostics outside the transcript
	"arch-provision/internal/reporter" // Status lines for the user
	"arch-provision/internal/runner"   // Command execution and the install log
	"errors"
	"fmt"
	"strings"
)

// Process exit codes for failures that stop provisioning.
const (
	ExitConfig        = 2 // a provisioning file could not be read
	ExitHelperMissing = 6 // the AUR helper is not installed
	ExitRefresh       = 7 // the package databases could not be synchronized
	ExitForceRefresh  = 8 // a forced synchronization failed
)

// ErrHelperMissing is wrapped by the ExitError returned when the helper is absent.
var ErrHelperMissing = errors.New("AUR helper not found")

// ExitError stops provisioning and carries the process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%v (exit code %d)", e.Err, e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Options tune a provisioning run.
type Options struct {
	Helper       string // AUR helper binary, DefaultHelper when empty
	Systemctl    string // systemctl binary, "systemctl" when empty
	ForceRefresh bool   // refresh every package database
	SkipRefresh  bool   // do not refresh the package databases at all
	Reinstall    bool   // reinstall packages that are already up to date
	FreshLog     bool   // truncate the command log before the run
}

// Driver walks provisioning files and issues one command per entry.
type Driver struct {
	Runner   *runner.Runner
	Packages *PackageManager
	Services *ServiceManager
	Options  Options

	failures int
}

// NewDriver wires a Driver around r.
func NewDriver(r *runner.Runner, opts Options) *Driver {
	if opts.Helper == "" {
		opts.Helper = DefaultHelper
	}
	if opts.Systemctl == "" {
		opts.Systemctl = "systemctl"
	}
	return &Driver{
		Runner:   r,
		Packages: &PackageManager{Runner: r, Helper: opts.Helper, OnlyNeeded: !opts.Reinstall},
		Services: &ServiceManager{Runner: r, Systemctl: opts.Systemctl},
		Options:  opts,
	}
}

// Failures returns how many commands exited non-zero during the last run.
func (d *Driver) Failures() int { return d.failures }

// Provision checks the helper, refreshes the package databases and then
// processes every file in order. Failing entries are reported and counted
// but do not stop the run; only a missing helper, a failed refresh or an
// unreadable file return an *ExitError.
func (d *Driver) Provision(paths []string) error {
	rep := d.Runner.Reporter
	d.failures = 0

	// Start from an empty log when asked to
	if d.Options.FreshLog {
		if err := d.Runner.AppendLog("", false); err != nil {
			rep.Report(fmt.Sprintf("Cannot reset %s: %v", d.Runner.LogPath, err), reporter.Warning, reporter.NewlineAuto)
		} else {
			logger.Info("[INFO] Truncated %s\n", d.Runner.LogPath)
		}
	}

	// Nothing can be installed without the helper
	if !d.Packages.Exists() {
		rep.Report(fmt.Sprintf("Please install the AUR helper ~%s~", d.Packages.Helper), reporter.Failed, reporter.NewlineAuto)
		return &ExitError{Code: ExitHelperMissing, Err: fmt.Errorf("%w: %s", ErrHelperMissing, d.Packages.Helper)}
	}

	// Synchronize the package databases once for all files
	if !d.Options.SkipRefresh {
		if code := d.Packages.RefreshCache(d.Options.ForceRefresh); code != 0 {
			exit := ExitRefresh
			if d.Options.ForceRefresh {
				exit = ExitForceRefresh
			}
			return &ExitError{Code: exit, Err: fmt.Errorf("package database refresh failed with exit code %d", code)}
		}
	}

	// Files are loaded lazily so earlier files are provisioned before a bad one stops the run
	for _, path := range paths {
		rep.Blank()
		file, err := config.Load(path)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			rep.Report(fmt.Sprintf("Cannot read install file %s", path), reporter.Failed, reporter.NewlineAuto)
			return &ExitError{Code: ExitConfig, Err: err}
		}
		d.ProvisionFile(file)
	}

	// Summarize failures and point the user at the log
	rep.Blank()
	if d.failures > 0 {
		rep.Report(fmt.Sprintf("%d command(s) exited with a non-zero code.", d.failures), reporter.Warning, reporter.NewlineAuto)
	}
	rep.Report(fmt.Sprintf("Check ~%s~ for full installation output.", d.Runner.LogPath), reporter.Info, reporter.NewlineAuto)
	return nil
}

// ProvisionFile installs packages, enables and restarts services, and runs
// scripts from file, in that order.
func (d *Driver) ProvisionFile(file *config.File) {
	rep := d.Runner.Reporter
	rep.Report(fmt.Sprintf("Processing install file %s:", file.Path), reporter.Info, reporter.NewlineAuto)

	d.section(file.Section(config.SectionPacman), "Installing archlinux package(s):", func(e config.Entry) {
		d.check(d.Packages.Install(e.Key, e.Value))
	})
	d.section(file.Section(config.SectionAUR), "Installing AUR package(s):", func(e config.Entry) {
		d.check(d.Packages.Install(e.Key, e.Value))
	})
	d.section(file.Section(config.SectionService), "Enabling and Starting service(s):", func(e config.Entry) {
		// Restart even when enabling failed; the unit may already be enabled
		d.check(d.Services.Enable(e.Key, e.Value))
		d.check(d.Services.Start(e.Key, e.Value))
	})
	d.section(file.Section(config.SectionScript), "Executing bash script(s):", func(e config.Entry) {
		d.check(d.Runner.RunLogged(runner.Invocation{
			Command: runner.ParseLine(e.Value),
			Message: "Executing " + e.Value,
			User:    elevatedUser,
		}))
	})
}

// section announces a non-empty section and applies fn to each entry.
// Entries whose value is empty or only whitespace are skipped with a warning.
func (d *Driver) section(s config.Section, heading string, fn func(config.Entry)) {
	if s.Len() == 0 {
		logger.Debug("[DEBUG] Section [%s] is empty\n", s.Name)
		return
	}
	rep := d.Runner.Reporter
	rep.Report(heading, reporter.Info, reporter.NewlineAuto)

	for _, e := range s.Entries {
		// A blank value would turn into an argument-less command
		if strings.TrimSpace(e.Value) == "" {
			rep.Report(fmt.Sprintf("Skipping %s: no value", e.Key), reporter.Warning, reporter.NewlineAuto)
			continue
		}
		logger.Debug("[DEBUG] [%s] %s = %s\n", s.Name, e.Key, e.Value)
		fn(e)
	}
}

func (d *Driver) check(code int) {
	if code != 0 {
		d.failures++
	}
}

package main

import (
	"arch-provision/cmd" // CLI commands and flag handling
)

// main is the program entry point; cmd.Execute parses arguments and runs
// the provisioning.
//
// provision is a declarative setup tool for Arch Linux-based systems:
//   - Reads one or more INI (or YAML) files listing packages, services and scripts
//   - Installs official repository and AUR packages through an AUR helper (yay by default)
//   - Enables and restarts systemd services with sudo
//   - Runs arbitrary shell command lines, elevated when prefixed with "$ "
//   - Records every command and its output in install.log under the temporary directory
//
// Error handling strategy:
//   - A failing entry is reported with a colored status line and provisioning continues
//   - A missing AUR helper, a failed database refresh or an unreadable file stop the run
//     with a distinct exit code
func main() {
	cmd.Execute()
}

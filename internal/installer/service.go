package installer

import (
	"arch-provision/internal/runner" // Elevated, logged systemctl calls
	"fmt"
	"strings"
)

// elevatedUser is the account recorded in the log for elevated commands.
const elevatedUser = "root"

// ServiceManager enables and starts systemd units with elevated privileges.
type ServiceManager struct {
	Runner    *runner.Runner
	Systemctl string
}

// Enable enables the space separated units in services.
func (s *ServiceManager) Enable(feature, services string) int {
	return s.run("enable", "Enabling", feature, services)
}

// Start restarts the units in services, starting any that are stopped.
func (s *ServiceManager) Start(feature, services string) int {
	return s.run("restart", "Starting", feature, services)
}

func (s *ServiceManager) run(verb, action, feature, services string) int {
	// One systemctl call covers every unit of the entry
	args := append([]string{s.Systemctl, verb}, strings.Fields(services)...)

	message := fmt.Sprintf("%s: %s", action, services)
	if feature != "" {
		message = fmt.Sprintf("%s %s: %s", action, feature, services)
	}
	return s.Runner.RunLogged(runner.Invocation{
		Command: runner.Exec(args...).Elevated(),
		Message: message,
		User:    elevatedUser,
	})
}

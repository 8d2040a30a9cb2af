package cmd

import (
	"arch-provision/internal/installer"
	"arch-provision/internal/logger"
	"errors"
	"github.com/spf13/cobra"
	"os"
)

// debug enables the cyan [DEBUG] diagnostics of the logger package.
var debug bool

// rootCmd provisions every configuration file given on the command line.
var rootCmd = &cobra.Command{
	Use:   "provision [flags] CONFIG...",
	Short: "Install packages, enable services and run scripts from configuration files",
	Long: `Install user required packages and services.

Each CONFIG is an INI (or YAML, by extension) file with the sections
[pacman], [aur], [service] and [script]. Entries are processed in file
order; every command is recorded in the install log.`,
	Example: `  provision install/core
  provision --force-refresh install/core install/desktop.yaml`,
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
	RunE: runInstall,
}

// Execute runs the CLI and exits with the code carried by a failed run.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	var exitErr *installer.ExitError
	if errors.As(err, &exitErr) {
		logger.Debug("[DEBUG] %v\n", exitErr)
		os.Exit(exitErr.Code)
	}
	logger.Error("[ERROR] %v\n", err)
	os.Exit(1)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

package cmd

import (
	"arch-provision/internal/installer"
	"arch-provision/internal/logger"
	"arch-provision/internal/reporter"
	"arch-provision/internal/runner"
	"github.com/spf13/cobra"
	"os"
)

// Flags of the root command.
var (
	helper       string
	logPath      string
	forceRefresh bool
	skipRefresh  bool
	reinstall    bool
	freshLog     bool
	noColor      bool
)

// runInstall wires reporter, runner and driver and provisions every argument.
func runInstall(cmd *cobra.Command, args []string) error {
	plain := noColor || os.Getenv("NO_COLOR") != ""
	if plain {
		logger.DisableColor()
	}

	rep := reporter.New(cmd.OutOrStdout(), reporter.WithPlain(plain))
	r := runner.New(rep)
	r.LogPath = logPath

	logger.Debug("[DEBUG] Provisioning %d file(s) with %s, log at %s\n", len(args), helper, logPath)

	driver := installer.NewDriver(r, installer.Options{
		Helper:       helper,
		ForceRefresh: forceRefresh,
		SkipRefresh:  skipRefresh,
		Reinstall:    reinstall,
		FreshLog:     freshLog,
	})
	return driver.Provision(args)
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&helper, "helper", installer.DefaultHelper, "AUR helper used to install packages")
	flags.StringVar(&logPath, "log-file", runner.DefaultLogPath(), "File that receives every command and its output")
	flags.BoolVar(&forceRefresh, "force-refresh", false, "Force a refresh of all package databases")
	flags.BoolVar(&skipRefresh, "skip-refresh", false, "Do not refresh the package databases")
	flags.BoolVar(&reinstall, "reinstall", false, "Reinstall packages that are already up to date")
	flags.BoolVar(&freshLog, "fresh-log", false, "Truncate the log file before provisioning")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.MarkFlagsMutuallyExclusive("force-refresh", "skip-refresh")
}

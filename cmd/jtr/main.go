package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jtr/internal/cli"
	"jtr/internal/cli/commands"
	"jtr/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "jtr",
		Short:   "JUnit test runner",
		Long:    `A command-line JUnit test processor. Launches the JUnit runner against selected test suites, optionally under a debugger, and reconstructs structured results from the runner's output stream.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	log := logrus.New()
	log.SetOutput(os.Stderr)
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log subprocess output and diagnostics")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flags.Verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, log)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

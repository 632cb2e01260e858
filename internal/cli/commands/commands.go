package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jtr/internal/cli"
	"jtr/internal/classpath"
	"jtr/internal/config"
	"jtr/internal/execution"
	"jtr/internal/index"
	"jtr/internal/launch"
	"jtr/internal/storage"
	"jtr/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Details *DetailsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, log logrus.FieldLogger) *Commands {
	resourceIndex := index.New(cfg)
	guard := execution.NewGuard()
	builder := launch.NewBuilder(cfg.GetServerDir(), classpath.NewAssembler(), log)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	viewer := ui.NewOutcomeViewer(formatter)

	return &Commands{
		Run:     NewRunCommand(cfg, resourceIndex, guard, builder, jsonStorage, formatter, log),
		List:    NewListCommand(cfg, resourceIndex, formatter),
		Details: NewDetailsCommand(cfg, jsonStorage, formatter, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Resolving the Java home is fatal to run and debug; list and
	// details work without an interpreter.
	requireJava := func(cmd *cobra.Command, args []string) error {
		cfg.Flags = flags.ToConfigFlags()
		cfg.JavaHome = cfg.ResolveJavaHome()
		if cfg.JavaHome == "" {
			return fmt.Errorf("no usable Java installation found: set --java-home, JAVA_HOME or JDK_HOME")
		}
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [suite...]",
		Short:   "Run JUnit test suites",
		Long:    "Launch the JUnit runner against the given suites (all discovered test classes when none are named) and collect structured results",
		RunE:    c.Run.Execute,
		PreRunE: requireJava,
	}
	runCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g., '*UserTest.java' or '*Payment*')")
	runCmd.Flags().StringVar(&flags.JavaHome, "java-home", "", "Java installation root (overrides JAVA_HOME)")
	runCmd.Flags().BoolVar(&flags.Interactive, "open-details", false, "Open the outcome viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// Debug command
	debugCmd := &cobra.Command{
		Use:     "debug [suite...]",
		Short:   "Run JUnit test suites under a debugger",
		Long:    "Launch the JUnit runner suspended on a JDWP socket and request a debugger attach once the process is up",
		RunE:    c.Run.ExecuteDebug,
		PreRunE: requireJava,
	}
	debugCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	debugCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g., '*UserTest.java' or '*Payment*')")
	debugCmd.Flags().StringVar(&flags.JavaHome, "java-home", "", "Java installation root (overrides JAVA_HOME)")
	debugCmd.Flags().IntVar(&flags.DebugPort, "port", 0, "JDWP port (a free port is resolved when unset)")
	rootCmd.AddCommand(debugCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test suites",
		Long:  "Scan and list all JUnit test suites without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern (supports wildcards, e.g., '*UserTest.java' or '*Payment*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where test detection should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test methods instead of test classes")
	rootCmd.AddCommand(listCmd)

	// Details command
	detailsCmd := &cobra.Command{
		Use:   "details [suite]",
		Short: "Show a suite's last recorded outcome",
		Long:  "Render one suite's outcome from the last run, or browse all outcomes interactively",
		RunE:  c.Details.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	detailsCmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Browse all outcomes in the interactive viewer")
	rootCmd.AddCommand(detailsCmd)
}

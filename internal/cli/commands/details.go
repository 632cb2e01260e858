package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jtr/internal/config"
	"jtr/internal/storage"
	"jtr/internal/ui"
)

// DetailsCommand renders recorded outcomes from the last run
type DetailsCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    *ui.OutcomeViewer
}

// NewDetailsCommand creates a new DetailsCommand
func NewDetailsCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter, viewer *ui.OutcomeViewer) *DetailsCommand {
	return &DetailsCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (dc *DetailsCommand) Execute(cmd *cobra.Command, args []string) error {
	output, err := dc.storage.Load()
	if err != nil {
		color.Yellow("No recorded test results; run the tests first")
		return nil
	}

	if dc.config.Flags.OpenViewer || len(args) == 0 {
		return dc.viewer.View(output)
	}

	outcome := output.Outcome(args[0])
	if outcome == nil {
		return fmt.Errorf("no recorded outcome for suite: %s", args[0])
	}
	fmt.Fprint(cmd.OutOrStdout(), dc.formatter.RenderOutcome(outcome))
	return nil
}

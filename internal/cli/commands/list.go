package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jtr/internal/config"
	"jtr/internal/domain"
	"jtr/internal/index"
	"jtr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	index     *index.Index
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(cfg *config.Config, ix *index.Index, formatter *ui.Formatter) *ListCommand {
	return &ListCommand{
		config:    cfg,
		index:     ix,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	files, err := lc.index.TestFiles(lc.config.Flags.NameFilter)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No test files found")
		return nil
	}

	var suites []domain.TestSuite
	for _, file := range files {
		fileSuites, err := lc.index.Suites(file)
		if err != nil {
			return err
		}
		suites = append(suites, fileSuites...)
	}

	lc.formatter.PrintSuites(suites, lc.config.Flags.TestCases)
	return nil
}

package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"jtr/internal/domain"
)

// OutcomeViewer displays a run's outcomes in an interactive TUI
type OutcomeViewer struct {
	formatter *Formatter
}

// NewOutcomeViewer creates a new OutcomeViewer
func NewOutcomeViewer(formatter *Formatter) *OutcomeViewer {
	return &OutcomeViewer{formatter: formatter}
}

// View displays the run's outcomes: suite list on the left, the selected
// suite's rendered outcome on the right.
func (v *OutcomeViewer) View(results *domain.RunOutput) error {
	if len(results.Outcomes) == 0 {
		color.Yellow("No recorded outcomes")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i, o := range results.Outcomes {
		list.AddItem(listItemText(i, o), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(results.Outcomes) {
			detailsView.SetText(outcomeText(&results.Outcomes[index]))
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Test Outcomes (%d total) | Use ↑↓ to navigate, → to view details, ← to go back, Ctrl+C to exit ",
			len(results.Outcomes)))

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)
	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// listItemText renders one list row with a status glyph.
func listItemText(index int, o domain.TestOutcome) string {
	switch o.Status {
	case domain.StatusPass:
		return fmt.Sprintf("[green]✓[white] %d. %s", index+1, o.Suite)
	case domain.StatusFail:
		return fmt.Sprintf("[red]✗[white] %d. %s", index+1, o.Suite)
	case domain.StatusSkip:
		return fmt.Sprintf("[yellow]-[white] %d. %s", index+1, o.Suite)
	default:
		return fmt.Sprintf("[gray]?[white] %d. %s", index+1, o.Suite)
	}
}

// outcomeText formats one outcome with tview color tags.
func outcomeText(o *domain.TestOutcome) string {
	var builder strings.Builder

	statusColor := "[green]"
	if o.Status == domain.StatusFail {
		statusColor = "[red]"
	} else if o.Status != domain.StatusPass {
		statusColor = "[yellow]"
	}
	fmt.Fprintf(&builder, "%s%s[white]  %s  (%s)\n\n", statusColor, o.Status, o.Suite, o.Duration)

	for _, a := range o.Assertions {
		if a.Passed {
			fmt.Fprintf(&builder, "[green]✓[white] %s\n", a.Message)
			continue
		}
		fmt.Fprintf(&builder, "[red]✗ %s[white]\n", a.Message)
		for i, frame := range a.Trace {
			if i >= 10 {
				fmt.Fprintf(&builder, "  [gray]... and %d more lines[white]\n", len(a.Trace)-10)
				break
			}
			fmt.Fprintf(&builder, "  %s\n", frame)
		}
	}

	if len(o.Output) > 0 {
		fmt.Fprintf(&builder, "\n[yellow]Output:[white]\n")
		for _, line := range o.Output {
			fmt.Fprintf(&builder, "%s\n", line)
		}
	}

	return builder.String()
}

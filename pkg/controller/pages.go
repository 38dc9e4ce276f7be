package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"todoconsole/pkg/api"
	"todoconsole/pkg/view"
)

const (
	textColumnRatio = 3
	headerRows      = 11
	metricsRows     = 6
)

func (c *Controller) getListGrid() *tview.Grid {
	header := c.getListHeader()
	c.table = c.getTable()
	c.filterInput = c.getFilterInput()

	c.summary = tview.NewTextView().SetDynamicColors(true)
	c.summary.SetScrollable(false)

	c.metricsText = tview.NewTextView().SetDynamicColors(true)
	c.metricsText.SetScrollable(false)

	c.statusBar = tview.NewTextView().SetDynamicColors(true)
	c.statusBar.SetScrollable(false)

	grid := tview.NewGrid().SetBorders(true).
		SetRows(headerRows, 1, 1, 0, metricsRows, 1).
		SetColumns(0)

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.filterInput, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.summary, 2, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.table, 3, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.metricsText, 4, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.statusBar, 5, 0, 1, 1, 0, 0, false)

	return grid
}

// getListHeader returns the header for the todo list. It shows the app
// title followed by 3 columns listing keyboard shortcuts: misc actions,
// "Sort ..." shortcuts, and "Filter ..." shortcuts, each sorted
// alphabetically.
func (c *Controller) getListHeader() *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	row := 0
	table.SetCell(row, 0, tview.NewTableCell("[yellow]Todo List"))
	row++

	shortcuts := map[int][]string{
		0: {},
		1: {},
		2: {},
	}

	for key, event := range c.events {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)

		switch event.Description[:4] {
		case "Sort":
			shortcuts[1] = append(shortcuts[1], text)
		case "Filt":
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	for row-1 < len(shortcuts[0]) || row-1 < len(shortcuts[1]) || row-1 < len(shortcuts[2]) {
		for col := 0; col < 3; col++ {
			if row-1 < len(shortcuts[col]) {
				table.SetCell(row, col, tview.NewTableCell(shortcuts[col][row-1]).SetExpansion(1))
			}
		}

		row++
	}

	return table
}

func (c *Controller) getTable() *tview.Table {
	table := tview.NewTable().SetBorders(false)

	c.content = &ListContent{}

	table.SetContent(c.content)

	table.SetSelectable(true, false)
	table.Select(1, 0).SetFixed(1, 0)

	table.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			c.clearNotice()
		}
	})

	return table
}

func (c *Controller) getFilterInput() *tview.InputField {
	input := tview.NewInputField().
		SetLabel("Search by text: ").
		SetFieldWidth(0)

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			c.view.ApplyTextFilter(c.ctx, input.GetText())
		case tcell.KeyEscape:
			input.SetText(c.snapshot.Filters.Text)
		}

		c.app.SetFocus(c.table)
	})

	return input
}

func (c *Controller) summaryText() string {
	s := c.snapshot

	parts := []string{
		fmt.Sprintf("[yellow]page %d/%d[white] (%d todos)", s.Page, s.TotalPages, s.TotalCount),
		fmt.Sprintf("sort: %s %s", s.Sorting.Key, s.Sorting.Direction),
	}

	filters := []string{}

	if s.Filters.Text != "" {
		filters = append(filters, fmt.Sprintf("text=%q", s.Filters.Text))
	}

	if s.Filters.Priority != "" {
		filters = append(filters, "priority="+string(s.Filters.Priority))
	}

	switch s.Filters.Done {
	case view.DoneOnly:
		filters = append(filters, "done")
	case view.UndoneOnly:
		filters = append(filters, "undone")
	}

	if len(filters) > 0 {
		parts = append(parts, "filters: "+strings.Join(filters, " "))
	}

	if s.Loading {
		parts = append(parts, "[yellow]loading...")
	}

	return strings.Join(parts, " • ")
}

func metricsText(metrics api.Metrics) string {
	var b strings.Builder

	b.WriteString("[yellow]Metrics[white]\n")
	b.WriteString("Average time to finish tasks: ")
	b.WriteString(view.FormatAverageTime(metrics.AverageTimeForAllTasks))
	b.WriteString("\nBy priority:\n")

	for _, priority := range api.ValidPriorities() {
		avg, ok := metrics.AverageTimeByPriority[priority]
		if !ok {
			continue
		}

		b.WriteString(fmt.Sprintf("  %-7s %s\n", priority, view.FormatAverageTime(avg)))
	}

	return b.String()
}

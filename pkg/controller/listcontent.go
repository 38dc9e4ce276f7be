package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"todoconsole/pkg/api"
	"todoconsole/pkg/view"
)

const (
	colDone = iota
	colText
	colPriority
	colDueDate
	colCreated
	columnCount
)

// tierColor maps an urgency tier to a row color, mirroring the
// service's red/yellow/green due-date coloring.
func tierColor(tier view.Tier) tcell.Color {
	switch tier {
	case view.TierUrgent:
		return tcell.ColorRed
	case view.TierWarning:
		return tcell.ColorYellow
	case view.TierNormal:
		return tcell.ColorGreen
	default:
		return tcell.ColorWhite
	}
}

// ListContent implements tview.TableContent, which tview.Table uses to
// update data. It renders the current page plus a header row; when the
// page is empty it shows a single placeholder row.
type ListContent struct {
	tview.TableContentReadOnly
	todos   []api.Todo
	tiers   []view.Tier
	sorting view.Sorting
}

func (l *ListContent) update(todos []api.Todo, tiers []view.Tier, sorting view.Sorting) {
	l.todos = todos
	l.tiers = tiers
	l.sorting = sorting
}

func (l *ListContent) headerCell(col int) *tview.TableCell {
	titles := map[int]string{
		colDone:     "done",
		colText:     "text",
		colPriority: "priority",
		colDueDate:  "due date",
		colCreated:  "created",
	}

	sortKeys := map[int]string{
		colText:     view.SortText,
		colPriority: view.SortPriority,
		colDueDate:  view.SortDueDate,
		colCreated:  view.SortCreationDate,
	}

	title := titles[col]

	if key, ok := sortKeys[col]; ok && key == l.sorting.Key {
		arrow := " ▲"
		if l.sorting.Direction == view.OrderDesc {
			arrow = " ▼"
		}

		title += arrow
	}

	expansion := 1
	if col == colText {
		expansion = textColumnRatio
	}

	return tview.NewTableCell(title).SetExpansion(expansion).
		SetTextColor(tcell.ColorYellow).SetSelectable(false)
}

// GetCell returns the cell at the given position or nil if no cell.
func (l *ListContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		return l.headerCell(col)
	}

	if len(l.todos) == 0 {
		if col == colText {
			return tview.NewTableCell("No todos available").SetExpansion(textColumnRatio)
		}

		return tview.NewTableCell("").SetExpansion(1)
	}

	if row-1 >= len(l.todos) {
		return nil
	}

	todo := l.todos[row-1]

	switch col {
	case colDone:
		checkbox := ""
		if todo.Done {
			checkbox = "x"
		}

		return tview.NewTableCell(checkbox).SetExpansion(1).SetReference(&todo)
	case colText:
		cell := tview.NewTableCell(tview.Escape(todo.Text)).SetExpansion(textColumnRatio).
			SetTextColor(tierColor(l.tiers[row-1]))

		if todo.Done {
			cell.SetAttributes(tcell.AttrStrikeThrough)
		}

		return cell
	case colPriority:
		return tview.NewTableCell(string(todo.Priority)).SetExpansion(1)
	case colDueDate:
		due := "No date"
		if todo.DueDate != nil && !todo.DueDate.IsZero() {
			due = todo.DueDate.String()
		}

		return tview.NewTableCell(due).SetExpansion(1).SetTextColor(tierColor(l.tiers[row-1]))
	case colCreated:
		created := ""
		if !todo.CreationDate.IsZero() {
			created = todo.CreationDate.Format("2006-01-02 15:04")
		}

		return tview.NewTableCell(created).SetExpansion(1)
	}

	return nil
}

// GetRowCount returns the number of rows in the table, including the
// header and the placeholder row for an empty page.
func (l *ListContent) GetRowCount() int {
	if len(l.todos) == 0 {
		return 2
	}

	return len(l.todos) + 1
}

// GetColumnCount returns the number of columns in the table.
func (l *ListContent) GetColumnCount() int {
	return columnCount
}

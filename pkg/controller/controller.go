// Package controller mediates between the list view-state and the
// terminal UI.
package controller

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"todoconsole/pkg/api"
	"todoconsole/pkg/view"
)

// Page names for the tview.Pages switcher.
const (
	pageList    = "list"
	pageForm    = "form"
	pageConfirm = "confirm"
)

// Controller wires the view-state to the terminal widgets.
type Controller struct {
	ctx   context.Context
	view  *view.View
	app   *tview.Application
	pages *tview.Pages

	table       *tview.Table
	content     *ListContent
	filterInput *tview.InputField
	summary     *tview.TextView
	metricsText *tview.TextView
	statusBar   *tview.TextView

	todoForm         *tview.Form
	formHeaderTable  *tview.Table
	textField        *tview.InputField
	dueField         *tview.InputField
	priorityDropDown *tview.DropDown
	formError        *tview.TextView
	draft            *view.Form

	confirmModal  *tview.Modal
	pendingDelete *api.Todo

	events     map[tcell.Key]KeyEvent
	formEvents map[tcell.Key]KeyEvent

	// desired filter values, cycled by keypresses; the snapshot lags
	// behind until the matching fetch lands
	priorityFilter api.Priority
	doneFilter     string

	snapshot view.Snapshot
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, v *view.View) (*Controller, error) {
	c := Controller{
		ctx:  ctx,
		view: v,
		app:  tview.NewApplication(),
	}

	initKeys()
	c.initEvents()

	return &c, nil
}

// Go builds the pages, hooks the view callbacks, issues the initial
// refresh, and runs the app until exit.
func (c *Controller) Go() error {
	c.pages = tview.NewPages()
	c.pages.AddPage(pageList, c.getListGrid(), true, true)
	c.pages.AddPage(pageForm, c.getFormGrid(), true, false)
	c.initConfirmModal()

	c.view.SetOnChange(func() {
		c.app.QueueUpdateDraw(c.render)
	})

	c.view.SetOnNotice(func(notice view.Notice) {
		c.app.QueueUpdateDraw(func() {
			c.showNotice(notice)
		})
	})

	c.app.SetInputCapture(c.handleKeys)

	c.render()
	c.view.Refresh(c.ctx)

	return c.app.SetRoot(c.pages, true).SetFocus(c.table).Run()
}

// render pulls a fresh snapshot and repaints every list-page widget.
// It always runs on the UI goroutine.
func (c *Controller) render() {
	c.snapshot = c.view.Snapshot()

	tiers := make([]view.Tier, len(c.snapshot.Todos))
	for i, todo := range c.snapshot.Todos {
		tiers[i] = c.view.Urgency(todo.DueDate)
	}

	c.content.update(c.snapshot.Todos, tiers, c.snapshot.Sorting)
	c.summary.SetText(c.summaryText())
	c.metricsText.SetText(metricsText(c.snapshot.Metrics))

	c.clampSelection()
}

func (c *Controller) clampSelection() {
	row, _ := c.table.GetSelection()

	max := len(c.snapshot.Todos)
	if max == 0 {
		return
	}

	if row > max {
		row = max
	}

	if row < 1 {
		row = 1
	}

	c.table.Select(row, 0)
}

// selectedTodo returns the todo under the cursor, nil when the page is
// empty.
func (c *Controller) selectedTodo() *api.Todo {
	row, _ := c.table.GetSelection()

	if idx := row - 1; idx >= 0 && idx < len(c.snapshot.Todos) {
		todo := c.snapshot.Todos[idx]

		return &todo
	}

	return nil
}

func (c *Controller) showNotice(notice view.Notice) {
	color := "green"
	if notice.Level == view.NoticeError {
		color = "red"
	}

	c.statusBar.SetText("[" + color + "]" + tview.Escape(notice.Message))
}

func (c *Controller) clearNotice() {
	c.statusBar.SetText("")
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	// let the filter input and the confirm modal consume their own keys
	if c.app.GetFocus() == c.filterInput || c.pendingDelete != nil {
		return evt
	}

	key := AsKey(evt)
	if k, ok := c.events[key]; ok {
		return k.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if k, ok := c.formEvents[key]; ok {
		return k.Action(evt)
	}

	return evt
}

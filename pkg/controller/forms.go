package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"

	"todoconsole/pkg/api"
	"todoconsole/pkg/view"
)

const textFieldWidth = 60

// switchToForm opens the todo form: edit-mode when a todo is given,
// create-mode otherwise. The draft is rebuilt every time so stale
// field state never leaks between openings.
func (c *Controller) switchToForm(todo *api.Todo) {
	title := "New Todo"

	if todo != nil {
		title = "Edit Todo"
		c.draft = c.view.BeginEdit(c.ctx, *todo)
	} else {
		c.draft = c.view.BeginCreate(c.ctx)
	}

	c.setFormTitle(title)

	c.textField.SetText(c.draft.Text())
	c.dueField.SetText(dueFieldText(c.draft.DueDate()))
	c.priorityDropDown.SetCurrentOption(priorityIndex(c.draft.Priority()))
	c.formError.SetText("")

	c.todoForm.SetFocus(0)

	c.pages.SwitchToPage(pageForm)

	c.app.SetInputCapture(c.handleFormKeys)
}

func (c *Controller) closeForm() {
	c.draft = nil
	c.formError.SetText("")

	c.pages.SwitchToPage(pageList)

	c.app.SetInputCapture(c.handleKeys)
	c.app.SetFocus(c.table)
}

func (c *Controller) getFormGrid() *tview.Grid {
	grid := tview.NewGrid().SetBorders(true)

	c.initFormHeader()
	c.initForm()

	c.formError = tview.NewTextView().SetDynamicColors(true)

	grid.SetRows(4, 0, 1).SetColumns(0)
	grid.AddItem(c.formHeaderTable, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.todoForm, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(c.formError, 2, 0, 1, 1, 0, 0, false)

	return grid
}

func (c *Controller) setFormTitle(title string) {
	c.formHeaderTable.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))
}

func (c *Controller) initFormHeader() {
	c.formHeaderTable = tview.NewTable().SetBorders(false).SetSelectable(false, false)
	row := 1

	for key, event := range c.formEvents {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)
		c.formHeaderTable.SetCell(row, 0, tview.NewTableCell(text))
		row++
	}
}

func priorityOptions() []string {
	options := make([]string, 0, len(api.ValidPriorities()))
	for _, priority := range api.ValidPriorities() {
		options = append(options, string(priority))
	}

	return options
}

func priorityIndex(priority api.Priority) int {
	for i, valid := range api.ValidPriorities() {
		if valid == priority {
			return i
		}
	}

	return -1
}

func dueFieldText(due *api.Date) string {
	if due == nil || due.IsZero() {
		return ""
	}

	return due.String()
}

func (c *Controller) initForm() {
	c.todoForm = tview.NewForm().
		AddInputField("Text", "", textFieldWidth, nil, nil).
		AddDropDown("Priority", priorityOptions(), priorityIndex(api.PriorityLow), nil).
		AddInputField("Due Date (YYYY-MM-DD)", "", len("2006-01-02")+2, nil, nil)

	c.textField, _ = c.todoForm.GetFormItemByLabel("Text").(*tview.InputField)
	c.priorityDropDown, _ = c.todoForm.GetFormItemByLabel("Priority").(*tview.DropDown)
	c.dueField, _ = c.todoForm.GetFormItemByLabel("Due Date (YYYY-MM-DD)").(*tview.InputField)

	c.todoForm.AddButton("Save", c.saveForm)

	c.todoForm.AddButton("Clear Date", func() {
		c.dueField.SetText("")
	})

	c.todoForm.AddButton("Cancel", func() {
		c.closeForm()
	})

	c.todoForm.SetCancelFunc(func() {
		c.closeForm()
	})
}

// saveForm copies the widget values into the draft and submits it off
// the UI goroutine. Validation failures keep the form open with the
// entered values intact; so do remote failures.
func (c *Controller) saveForm() {
	draft := c.draft
	if draft == nil {
		return
	}

	draft.SetText(c.textField.GetText())

	if _, option := c.priorityDropDown.GetCurrentOption(); option != "" {
		draft.SetPriority(api.Priority(option))
	}

	dueText := strings.TrimSpace(c.dueField.GetText())
	if dueText == "" {
		draft.ClearDueDate()
	} else {
		date, err := api.ParseDate(dueText)
		if err != nil {
			c.formError.SetText("[red]Due date must be YYYY-MM-DD.")

			return
		}

		draft.SetDueDate(&date)
	}

	log.Debug().Msgf("saving todo with text '%s' (editing: %t)", draft.Text(), draft.Editing())

	go func() {
		err := draft.Submit(c.ctx)

		c.app.QueueUpdateDraw(func() {
			switch {
			case err == nil:
				c.closeForm()
			case errors.Is(err, view.ErrSubmitInFlight):
				// duplicate click while saving; drop it
			case errors.Is(err, view.ErrTextBlank), errors.Is(err, view.ErrTextTooLong):
				c.formError.SetText("[red]" + capitalize(err.Error()) + ".")
			default:
				c.formError.SetText("[red]An error occurred while saving the todo.")
			}
		})
	}()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// initConfirmModal builds the delete confirmation shown before any
// delete is issued.
func (c *Controller) initConfirmModal() {
	c.confirmModal = tview.NewModal().
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(_ int, label string) {
			todo := c.pendingDelete
			c.pendingDelete = nil

			c.pages.HidePage(pageConfirm)
			c.app.SetFocus(c.table)

			if label == "Delete" && todo != nil {
				go c.view.Delete(c.ctx, todo.ID)
			}
		})

	c.pages.AddPage(pageConfirm, c.confirmModal, true, false)
}

func (c *Controller) confirmDelete(todo *api.Todo) {
	c.pendingDelete = todo

	c.confirmModal.SetText(fmt.Sprintf("Delete \"%s\"?", todo.Text))

	c.pages.ShowPage(pageConfirm)
	c.app.SetFocus(c.confirmModal)
}

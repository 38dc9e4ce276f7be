package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"todoconsole/pkg/api"
	"todoconsole/pkg/view"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initTodoEvents(c.events)
	c.initFilterEvents(c.events)
	c.initSortEvents(c.events)
	c.initPageEvents(c.events)

	c.initExitEvent(c.events)
	c.initCancelEvent(c.formEvents)
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.app.Stop()

		log.Info().Msg("terminating application")

		return key
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) initCancelEvent(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyEscape] = KeyEvent{
		Description: "Cancel",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.closeForm()

			return nil
		},
	}
}

func (c *Controller) initTodoEvents(events map[tcell.Key]KeyEvent) {
	events[KeyN] = KeyEvent{
		Description: "New Todo",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.switchToForm(nil)

			return nil
		},
	}

	events[KeyE] = KeyEvent{
		Description: "Edit Todo",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if todo := c.selectedTodo(); todo != nil {
				c.switchToForm(todo)
			}

			return nil
		},
	}

	events[KeyD] = KeyEvent{
		Description: "Delete Todo",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if todo := c.selectedTodo(); todo != nil {
				c.confirmDelete(todo)
			}

			return nil
		},
	}

	events[KeySpace] = KeyEvent{
		Description: "Toggle Done",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			if todo := c.selectedTodo(); todo != nil {
				go c.view.Toggle(c.ctx, *todo)
			}

			return nil
		},
	}

	events[KeyA] = KeyEvent{
		Description: "All Done",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			go c.view.ToggleAll(c.ctx, true)

			return nil
		},
	}

	events[KeyU] = KeyEvent{
		Description: "All Undone",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			go c.view.ToggleAll(c.ctx, false)

			return nil
		},
	}

	events[KeyR] = KeyEvent{
		Description: "Reload",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.view.Refresh(c.ctx)

			return nil
		},
	}
}

func (c *Controller) initFilterEvents(events map[tcell.Key]KeyEvent) {
	events[KeySlash] = KeyEvent{
		Description: "Filter Text",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.app.SetFocus(c.filterInput)

			return nil
		},
	}

	events[KeyP] = KeyEvent{
		Description: "Filter Priority",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.priorityFilter = nextPriorityFilter(c.priorityFilter)

			c.view.ApplyPriorityFilter(c.ctx, c.priorityFilter)

			return nil
		},
	}

	events[KeyF] = KeyEvent{
		Description: "Filter Done",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.doneFilter = nextDoneFilter(c.doneFilter)

			c.view.ApplyDoneFilter(c.ctx, c.doneFilter)

			return nil
		},
	}
}

func (c *Controller) getSortAction(sortKey string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.view.ToggleSort(c.ctx, sortKey)

		return nil
	}
}

func (c *Controller) initSortEvents(events map[tcell.Key]KeyEvent) {
	events[KeyShiftC] = KeyEvent{
		Description: "Sort by Created",
		Action:      c.getSortAction(view.SortCreationDate),
	}

	events[KeyShiftP] = KeyEvent{
		Description: "Sort by Priority",
		Action:      c.getSortAction(view.SortPriority),
	}

	events[KeyShiftD] = KeyEvent{
		Description: "Sort by Due Date",
		Action:      c.getSortAction(view.SortDueDate),
	}

	events[KeyShiftT] = KeyEvent{
		Description: "Sort by Text",
		Action:      c.getSortAction(view.SortText),
	}
}

func (c *Controller) initPageEvents(events map[tcell.Key]KeyEvent) {
	events[tcell.KeyLeft] = KeyEvent{
		Description: "Prev Page",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.view.PrevPage(c.ctx)

			return nil
		},
	}

	events[tcell.KeyRight] = KeyEvent{
		Description: "Next Page",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.view.NextPage(c.ctx)

			return nil
		},
	}
}

// nextPriorityFilter cycles All -> HIGH -> MEDIUM -> LOW -> All.
func nextPriorityFilter(current api.Priority) api.Priority {
	switch current {
	case "":
		return api.PriorityHigh
	case api.PriorityHigh:
		return api.PriorityMedium
	case api.PriorityMedium:
		return api.PriorityLow
	default:
		return ""
	}
}

// nextDoneFilter cycles All -> Done -> Undone -> All.
func nextDoneFilter(current string) string {
	switch current {
	case view.DoneAll:
		return view.DoneOnly
	case view.DoneOnly:
		return view.UndoneOnly
	default:
		return view.DoneAll
	}
}

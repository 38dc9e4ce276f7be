// Package view owns the client-side state of the todo list: the fetched
// page, filters, sorting, pagination, and metrics. State changes only
// through named intent operations; every mutation that invalidates the
// page triggers a fresh fetch, with the remote service as the sole
// source of truth.
package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"todoconsole/pkg/api"
)

// PageSize is the fixed number of todos per page.
const PageSize = 10

// Sort keys accepted by the service.
const (
	SortCreationDate = "creationDate"
	SortPriority     = "priority"
	SortDueDate      = "dueDate"
	SortText         = "text"
)

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Done filter values as the service expects them; empty means no constraint.
const (
	DoneAll    = ""
	DoneOnly   = "true"
	UndoneOnly = "false"
)

// Client is the subset of the remote API the view needs.
type Client interface {
	List(ctx context.Context, params api.ListParams) (api.ListResult, error)
	Create(ctx context.Context, draft api.Draft) (api.Todo, error)
	Update(ctx context.Context, id string, draft api.Draft) (api.Todo, error)
	Delete(ctx context.Context, id string) error
	MarkDone(ctx context.Context, id string) (api.Todo, error)
	MarkUndone(ctx context.Context, id string) (api.Todo, error)
	Metrics(ctx context.Context) (api.Metrics, error)
}

// Filters constrains the fetched page. Empty fields mean no constraint.
type Filters struct {
	Text     string
	Priority api.Priority
	Done     string
}

// Sorting selects the server-side order of the list.
type Sorting struct {
	Key       string
	Direction string
}

// NoticeLevel distinguishes informational notices from failures.
type NoticeLevel int

// Notice levels.
const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient, user-visible message.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Settlement is the outcome of one call within a bulk operation.
type Settlement struct {
	ID  string
	Err error
}

// Snapshot is a copy of the renderable state, safe to read while the
// view keeps mutating.
type Snapshot struct {
	Todos      []api.Todo
	Filters    Filters
	Sorting    Sorting
	Page       int
	TotalPages int
	TotalCount int
	Metrics    api.Metrics
	Loading    bool
}

// View holds the list state and coordinates fetches against the client.
type View struct {
	mu       sync.Mutex
	client   Client
	now      func() time.Time
	todos    []api.Todo
	filters  Filters
	sorting  Sorting
	page     int
	total    int
	metrics  api.Metrics
	loading  bool
	fetchSeq uint64
	onChange func()
	onNotice func(Notice)
}

// New creates a View in its initial state: no filters, sorted by
// creation date ascending, page 1. A nil clock falls back to time.Now.
func New(client Client, now func() time.Time) *View {
	if now == nil {
		now = time.Now
	}

	return &View{
		client:  client,
		now:     now,
		sorting: Sorting{Key: SortCreationDate, Direction: OrderAsc},
		page:    1,
		metrics: api.Metrics{AverageTimeByPriority: map[api.Priority]float64{}},
	}
}

// SetOnChange registers the redraw hook. It may be invoked from any
// goroutine once a refresh completes.
func (v *View) SetOnChange(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.onChange = fn
}

// SetOnNotice registers the hook for transient user-visible messages.
func (v *View) SetOnNotice(fn func(Notice)) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.onNotice = fn
}

// Snapshot copies the current renderable state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	todos := make([]api.Todo, len(v.todos))
	copy(todos, v.todos)

	return Snapshot{
		Todos:      todos,
		Filters:    v.filters,
		Sorting:    v.sorting,
		Page:       v.page,
		TotalPages: totalPages(v.total),
		TotalCount: v.total,
		Metrics:    v.metrics,
		Loading:    v.loading,
	}
}

// Urgency classifies a todo's due-date proximity against the view's clock.
func (v *View) Urgency(due *api.Date) Tier {
	return Urgency(due, v.now())
}

// Refresh fetches the current page and the metrics. It is
// fire-and-forget: the fetch runs in the background and the change hook
// fires when it lands. A response that arrives after a newer fetch was
// issued is discarded.
func (v *View) Refresh(ctx context.Context) {
	v.mu.Lock()
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// ApplyTextFilter sets the text filter, resets to page 1, and refreshes.
func (v *View) ApplyTextFilter(ctx context.Context, text string) {
	v.mu.Lock()
	v.filters.Text = text
	v.page = 1
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// ApplyPriorityFilter sets the priority filter, resets to page 1, and
// refreshes. The zero Priority clears the constraint.
func (v *View) ApplyPriorityFilter(ctx context.Context, priority api.Priority) {
	v.mu.Lock()
	v.filters.Priority = priority
	v.page = 1
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// ApplyDoneFilter sets the done filter, resets to page 1, and refreshes.
func (v *View) ApplyDoneFilter(ctx context.Context, done string) {
	v.mu.Lock()
	v.filters.Done = done
	v.page = 1
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// ToggleSort sorts by key ascending, or flips the direction when the
// list is already sorted by key. Any sort change resets to page 1: the
// old page position is meaningless under a new order.
func (v *View) ToggleSort(ctx context.Context, key string) {
	v.mu.Lock()

	direction := OrderAsc
	if v.sorting.Key == key && v.sorting.Direction == OrderAsc {
		direction = OrderDesc
	}

	v.sorting = Sorting{Key: key, Direction: direction}
	v.page = 1
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// SetPage moves to the given 1-based page and refreshes. Pages beyond
// the known end are not guarded; the service returns an empty page.
func (v *View) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}

	v.mu.Lock()
	v.page = page
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// NextPage advances one page, clamped to the last known page.
func (v *View) NextPage(ctx context.Context) {
	v.mu.Lock()
	if v.page >= totalPages(v.total) {
		v.mu.Unlock()

		return
	}

	v.page++
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// PrevPage moves back one page, clamped to page 1.
func (v *View) PrevPage(ctx context.Context) {
	v.mu.Lock()
	if v.page <= 1 {
		v.mu.Unlock()

		return
	}

	v.page--
	token, params := v.beginFetchLocked()
	v.mu.Unlock()

	go v.fetch(ctx, token, params)
}

// Delete removes a todo and refreshes on success. Failures become a
// notice; the list is left as-is.
func (v *View) Delete(ctx context.Context, id string) {
	if err := v.client.Delete(ctx, id); err != nil {
		log.Err(err).Str("id", id).Msg("error deleting todo")
		v.notify(Notice{Level: NoticeError, Message: "Could not delete the todo: " + err.Error()})

		return
	}

	v.notify(Notice{Level: NoticeInfo, Message: "Todo deleted"})
	v.Refresh(ctx)
}

// Toggle flips one todo's completion state and refreshes on success.
func (v *View) Toggle(ctx context.Context, todo api.Todo) {
	var err error

	if todo.Done {
		_, err = v.client.MarkUndone(ctx, todo.ID)
	} else {
		_, err = v.client.MarkDone(ctx, todo.ID)
	}

	if err != nil {
		log.Err(err).Str("id", todo.ID).Msg("error toggling todo")
		v.notify(Notice{Level: NoticeError, Message: "Could not update the todo: " + err.Error()})

		return
	}

	v.Refresh(ctx)
}

// ToggleAll marks every currently displayed todo done (or undone),
// dispatching the calls in parallel and waiting for all of them to
// settle before refreshing. The notice reports how many succeeded;
// partial successes stand. The settlements are returned for callers
// that want per-item outcomes.
func (v *View) ToggleAll(ctx context.Context, done bool) []Settlement {
	v.mu.Lock()
	todos := make([]api.Todo, len(v.todos))
	copy(todos, v.todos)
	v.mu.Unlock()

	if len(todos) == 0 {
		return nil
	}

	settlements := make([]Settlement, len(todos))

	var wg sync.WaitGroup

	for i, todo := range todos {
		wg.Add(1)

		go func(i int, todo api.Todo) {
			defer wg.Done()

			var err error

			if done {
				_, err = v.client.MarkDone(ctx, todo.ID)
			} else {
				_, err = v.client.MarkUndone(ctx, todo.ID)
			}

			settlements[i] = Settlement{ID: todo.ID, Err: err}
		}(i, todo)
	}

	wg.Wait()

	updated := 0

	for _, s := range settlements {
		if s.Err == nil {
			updated++
		} else {
			log.Err(s.Err).Str("id", s.ID).Msg("error toggling todo in bulk update")
		}
	}

	level := NoticeInfo
	if updated < len(settlements) {
		level = NoticeError
	}

	v.notify(Notice{Level: level, Message: summarize(updated, len(settlements))})
	v.Refresh(ctx)

	return settlements
}

// BeginCreate opens a blank draft. Saving it refreshes the list.
func (v *View) BeginCreate(ctx context.Context) *Form {
	return v.newForm(ctx, nil)
}

// BeginEdit opens a draft initialized from the given todo.
func (v *View) BeginEdit(ctx context.Context, todo api.Todo) *Form {
	return v.newForm(ctx, &todo)
}

func (v *View) newForm(ctx context.Context, editing *api.Todo) *Form {
	form := NewForm(v.client, editing)
	form.onSaved = func() {
		v.notify(Notice{Level: NoticeInfo, Message: "Todo saved"})
		v.Refresh(ctx)
	}

	return form
}

// beginFetchLocked allocates the next request token and snapshots the
// fetch parameters. Callers must hold the mutex.
func (v *View) beginFetchLocked() (uint64, api.ListParams) {
	v.fetchSeq++
	v.loading = true

	return v.fetchSeq, api.ListParams{
		Page:           v.page,
		Size:           PageSize,
		SortBy:         v.sorting.Key,
		SortOrder:      v.sorting.Direction,
		TextFilter:     v.filters.Text,
		PriorityFilter: string(v.filters.Priority),
		DoneFilter:     v.filters.Done,
	}
}

// fetch loads the list page and the metrics in lockstep. The result is
// applied only when token is still the newest issued token; a stale
// response is dropped so it cannot overwrite fresher state.
func (v *View) fetch(ctx context.Context, token uint64, params api.ListParams) {
	result, listErr := v.client.List(ctx, params)
	metrics, metricsErr := v.client.Metrics(ctx)

	v.mu.Lock()

	if token != v.fetchSeq {
		v.mu.Unlock()
		log.Debug().Uint64("token", token).Uint64("latest", v.fetchSeq).Msg("discarding stale fetch")

		return
	}

	v.loading = false

	if listErr == nil {
		v.todos = result.Todos
		v.total = result.TotalCount
	}

	if metricsErr == nil {
		v.metrics = metrics
	}

	v.mu.Unlock()

	if listErr != nil {
		log.Err(listErr).Msg("error fetching todos")
		v.notify(Notice{Level: NoticeError, Message: "Could not load todos: " + listErr.Error()})
	}

	if metricsErr != nil {
		log.Err(metricsErr).Msg("error fetching metrics")
	}

	v.changed()
}

func (v *View) changed() {
	v.mu.Lock()
	fn := v.onChange
	v.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (v *View) notify(notice Notice) {
	v.mu.Lock()
	fn := v.onNotice
	v.mu.Unlock()

	if fn != nil {
		fn(notice)
	}
}

func summarize(updated, total int) string {
	return fmt.Sprintf("%d of %d updated", updated, total)
}

func totalPages(totalCount int) int {
	pages := (totalCount + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}

	return pages
}

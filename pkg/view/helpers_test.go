package view_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"todoconsole/pkg/api"
)

// fakeClient records every call and serves canned responses.
type fakeClient struct {
	mu sync.Mutex

	listCalls   []api.ListParams
	createCalls []api.Draft
	updateCalls []updateCall
	deleteCalls []string
	doneCalls   []string
	undoneCalls []string

	listResult api.ListResult
	listErr    error
	metrics    api.Metrics
	metricsErr error
	createErr  error
	updateErr  error
	deleteErr  error
	doneErrs   map[string]error
	undoneErrs map[string]error

	// blockCreate, when non-nil, holds Create calls until the channel
	// is closed.
	blockCreate chan struct{}
}

type updateCall struct {
	id    string
	draft api.Draft
}

func (f *fakeClient) List(_ context.Context, params api.ListParams) (api.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, params)

	return f.listResult, f.listErr
}

func (f *fakeClient) Create(_ context.Context, draft api.Draft) (api.Todo, error) {
	f.mu.Lock()
	block := f.blockCreate
	f.createCalls = append(f.createCalls, draft)
	err := f.createErr
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	return api.Todo{ID: "created", Text: draft.Text, Priority: draft.Priority, DueDate: draft.DueDate}, err
}

func (f *fakeClient) Update(_ context.Context, id string, draft api.Draft) (api.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls = append(f.updateCalls, updateCall{id: id, draft: draft})

	return api.Todo{ID: id, Text: draft.Text, Priority: draft.Priority, DueDate: draft.DueDate}, f.updateErr
}

func (f *fakeClient) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls = append(f.deleteCalls, id)

	return f.deleteErr
}

func (f *fakeClient) MarkDone(_ context.Context, id string) (api.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.doneCalls = append(f.doneCalls, id)

	return api.Todo{ID: id, Done: true}, f.doneErrs[id]
}

func (f *fakeClient) MarkUndone(_ context.Context, id string) (api.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.undoneCalls = append(f.undoneCalls, id)

	return api.Todo{ID: id, Done: false}, f.undoneErrs[id]
}

func (f *fakeClient) Metrics(_ context.Context) (api.Metrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.metrics, f.metricsErr
}

func (f *fakeClient) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.listCalls)
}

func (f *fakeClient) lastListCall() api.ListParams {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.listCalls[len(f.listCalls)-1]
}

func makeTodos(ids ...string) []api.Todo {
	todos := make([]api.Todo, len(ids))
	for i, id := range ids {
		todos[i] = api.Todo{ID: id, Text: "todo " + id, Priority: api.PriorityLow}
	}

	return todos
}

func waitChange(t *testing.T, changes <-chan struct{}) {
	t.Helper()

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a state change")
	}
}

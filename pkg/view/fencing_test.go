package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"todoconsole/pkg/api"
)

// stubClient serves a fixed list result; only List and Metrics matter here.
type stubClient struct {
	result api.ListResult
}

func (s *stubClient) List(context.Context, api.ListParams) (api.ListResult, error) {
	return s.result, nil
}

func (s *stubClient) Create(context.Context, api.Draft) (api.Todo, error) {
	return api.Todo{}, nil
}

func (s *stubClient) Update(context.Context, string, api.Draft) (api.Todo, error) {
	return api.Todo{}, nil
}

func (s *stubClient) Delete(context.Context, string) error {
	return nil
}

func (s *stubClient) MarkDone(context.Context, string) (api.Todo, error) {
	return api.Todo{}, nil
}

func (s *stubClient) MarkUndone(context.Context, string) (api.Todo, error) {
	return api.Todo{}, nil
}

func (s *stubClient) Metrics(context.Context) (api.Metrics, error) {
	return api.Metrics{}, nil
}

// A fetch issued before a newer one must not overwrite the newer result,
// no matter which response arrives last.
func TestStaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	stub := &stubClient{}
	v := New(stub, nil)

	v.mu.Lock()
	staleToken, staleParams := v.beginFetchLocked()
	v.mu.Unlock()

	v.mu.Lock()
	freshToken, freshParams := v.beginFetchLocked()
	v.mu.Unlock()

	// the fresh response lands first
	stub.result = api.ListResult{Todos: []api.Todo{{ID: "fresh"}}, TotalCount: 1}
	v.fetch(context.Background(), freshToken, freshParams)

	// the slow, stale response straggles in afterwards
	stub.result = api.ListResult{Todos: []api.Todo{{ID: "stale"}}, TotalCount: 99}
	v.fetch(context.Background(), staleToken, staleParams)

	snapshot := v.Snapshot()
	assert.Equal(1, len(snapshot.Todos))
	assert.Equal("fresh", snapshot.Todos[0].ID)
	assert.Equal(1, snapshot.TotalCount)
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(1, totalPages(0))
	assert.Equal(1, totalPages(2))
	assert.Equal(1, totalPages(10))
	assert.Equal(2, totalPages(11))
	assert.Equal(3, totalPages(21))
}

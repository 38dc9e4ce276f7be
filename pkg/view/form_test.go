package view_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"todoconsole/pkg/api"
	"todoconsole/pkg/view"
)

func existingTodo() api.Todo {
	due, _ := api.ParseDate("2024-07-15")

	return api.Todo{
		ID:       "77",
		Text:     "water the plants",
		Priority: api.PriorityMedium,
		DueDate:  &due,
	}
}

func TestCreateModeDefaults(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	form := view.NewForm(&fakeClient{}, nil)

	assert.False(form.Editing())
	assert.Equal("", form.Text())
	assert.Equal(api.PriorityLow, form.Priority())
	assert.Nil(form.DueDate())
}

func TestEditModeInitializesFromTodo(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	todo := existingTodo()
	form := view.NewForm(&fakeClient{}, &todo)

	assert.True(form.Editing())
	assert.Equal("water the plants", form.Text())
	assert.Equal(api.PriorityMedium, form.Priority())
	assert.Equal("2024-07-15", form.DueDate().String())
}

func TestValidationBlocksSubmission(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := &fakeClient{}
	form := view.NewForm(fake, nil)

	// blank after trimming
	form.SetText("   ")
	assert.True(errors.Is(form.Submit(context.Background()), view.ErrTextBlank))

	// one character over the limit
	form.SetText(strings.Repeat("x", 121))
	assert.True(errors.Is(form.Submit(context.Background()), view.ErrTextTooLong))

	// no network call was made for either
	assert.Equal(0, len(fake.createCalls))
	assert.Equal(0, len(fake.updateCalls))

	// exactly at the limit is fine
	form.SetText(strings.Repeat("x", 120))
	assert.Nil(form.Validate())
}

func TestSubmitCreateMode(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := &fakeClient{}
	form := view.NewForm(fake, nil)

	due, err := api.ParseDate("2024-07-15")
	assert.Nil(err)

	form.SetText("New Todo")
	form.SetPriority(api.PriorityLow)
	form.SetDueDate(&due)

	assert.Nil(form.Submit(context.Background()))

	assert.Equal(1, len(fake.createCalls))
	assert.Equal(0, len(fake.updateCalls))

	draft := fake.createCalls[0]
	assert.Equal("New Todo", draft.Text)
	assert.Equal(api.PriorityLow, draft.Priority)
	assert.Equal("2024-07-15", draft.DueDate.String())
}

func TestSubmitEditMode(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := &fakeClient{}
	todo := existingTodo()
	form := view.NewForm(fake, &todo)

	form.SetText("water the plants twice")
	form.ClearDueDate()

	assert.Nil(form.Submit(context.Background()))

	assert.Equal(0, len(fake.createCalls))
	assert.Equal(1, len(fake.updateCalls))
	assert.Equal("77", fake.updateCalls[0].id)
	assert.Equal("water the plants twice", fake.updateCalls[0].draft.Text)
	assert.Nil(fake.updateCalls[0].draft.DueDate)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	fake := &fakeClient{createErr: errors.New("boom")}
	form := view.NewForm(fake, nil)

	form.SetText("New Todo")
	form.SetPriority(api.PriorityHigh)

	assert.NotNil(form.Submit(context.Background()))

	// every entered value survives for a retry
	assert.Equal("New Todo", form.Text())
	assert.Equal(api.PriorityHigh, form.Priority())

	fake.mu.Lock()
	fake.createErr = nil
	fake.mu.Unlock()

	assert.Nil(form.Submit(context.Background()))
	assert.Equal(2, len(fake.createCalls))
}

func TestSubmitInFlightGuard(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	block := make(chan struct{})
	fake := &fakeClient{blockCreate: block}
	form := view.NewForm(fake, nil)
	form.SetText("New Todo")

	first := make(chan error, 1)

	go func() {
		first <- form.Submit(context.Background())
	}()

	// wait for the first submission to reach the client
	for {
		fake.mu.Lock()
		started := len(fake.createCalls) > 0
		fake.mu.Unlock()

		if started {
			break
		}

		time.Sleep(time.Millisecond)
	}

	// a second submit while one is outstanding is dropped, not queued
	assert.True(errors.Is(form.Submit(context.Background()), view.ErrSubmitInFlight))

	close(block)
	assert.Nil(<-first)
	assert.Equal(1, len(fake.createCalls))
}

func TestSetPriorityIgnoresInvalid(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	form := view.NewForm(&fakeClient{}, nil)

	form.SetPriority(api.PriorityHigh)
	form.SetPriority(api.Priority("URGENT"))

	assert.Equal(api.PriorityHigh, form.Priority())
}

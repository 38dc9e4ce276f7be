package view

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"todoconsole/pkg/api"
)

// MaxTextLength is the longest todo text the service accepts.
const MaxTextLength = 120

var (
	// ErrTextBlank is returned when the draft text is empty after trimming.
	ErrTextBlank = errors.New("text field cannot be blank")

	// ErrTextTooLong is returned when the draft text exceeds MaxTextLength.
	ErrTextTooLong = errors.New("text must be 120 characters or less")

	// ErrSubmitInFlight is returned when a submission is already
	// outstanding; the new attempt is dropped, not queued.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// Form holds one unsaved draft. With no todo reference it is in
// create-mode (blank text, priority LOW, no due date); with a reference
// it is in edit-mode and starts from the referenced todo's fields.
// Failed submissions keep every entered value so the user can correct
// and retry.
type Form struct {
	mu       sync.Mutex
	client   Client
	editing  *api.Todo
	text     string
	priority api.Priority
	dueDate  *api.Date
	inFlight bool
	onSaved  func()
}

// NewForm builds a form for the given todo, or a blank create-mode form
// when editing is nil.
func NewForm(client Client, editing *api.Todo) *Form {
	form := &Form{
		client:   client,
		editing:  editing,
		priority: api.PriorityLow,
	}

	if editing != nil {
		form.text = editing.Text
		form.priority = editing.Priority
		form.dueDate = editing.DueDate
	}

	return form
}

// Editing reports whether the form updates an existing todo.
func (f *Form) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.editing != nil
}

// Text returns the draft text.
func (f *Form) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.text
}

// SetText replaces the draft text.
func (f *Form) SetText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.text = text
}

// Priority returns the draft priority.
func (f *Form) Priority() api.Priority {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.priority
}

// SetPriority replaces the draft priority; invalid values are ignored.
func (f *Form) SetPriority(priority api.Priority) {
	if !priority.IsValid() {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.priority = priority
}

// DueDate returns the draft due date, nil when none is set.
func (f *Form) DueDate() *api.Date {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.dueDate
}

// SetDueDate replaces the draft due date.
func (f *Form) SetDueDate(date *api.Date) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dueDate = date
}

// ClearDueDate removes the draft due date.
func (f *Form) ClearDueDate() {
	f.SetDueDate(nil)
}

// Validate checks the draft without contacting the service.
func (f *Form) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return validateText(f.text)
}

func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrTextBlank
	}

	if len([]rune(text)) > MaxTextLength {
		return ErrTextTooLong
	}

	return nil
}

// Submit validates the draft and sends it: Update when editing, Create
// otherwise. Validation failures and in-flight duplicates never reach
// the network. On success the saved hook fires (the list refreshes) and
// the caller closes the form; on failure the form stays as entered.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()

	if f.inFlight {
		f.mu.Unlock()

		return ErrSubmitInFlight
	}

	if err := validateText(f.text); err != nil {
		f.mu.Unlock()

		return err
	}

	f.inFlight = true
	editing := f.editing
	draft := api.Draft{Text: f.text, Priority: f.priority, DueDate: f.dueDate}
	f.mu.Unlock()

	var err error

	if editing != nil {
		log.Debug().Str("id", editing.ID).Msgf("updating todo with text '%s'", draft.Text)
		_, err = f.client.Update(ctx, editing.ID, draft)
	} else {
		log.Debug().Msgf("creating todo with text '%s'", draft.Text)
		_, err = f.client.Create(ctx, draft)
	}

	f.mu.Lock()
	f.inFlight = false
	saved := f.onSaved
	f.mu.Unlock()

	if err != nil {
		log.Err(err).Msg("error saving todo")

		return err
	}

	if saved != nil {
		saved()
	}

	return nil
}

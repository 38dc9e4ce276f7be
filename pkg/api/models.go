package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Priority is the importance level of a todo.
type Priority string

// These constants cover the priorities supported by the service.
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}

	return false
}

// Date is a calendar date with no time component. On the wire it is a
// "YYYY-MM-DD" string; a null/empty value unmarshals to the zero Date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

// NewDate builds a Date from the date fields of t, in t's location.
func NewDate(t time.Time) Date {
	year, month, day := t.Date()

	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("error parsing date %q: %w", s, err)
	}

	return NewDate(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero returns true for the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD", a full RFC3339 timestamp (some
// services echo due dates back with a time component), or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw == nil || strings.TrimSpace(*raw) == "" {
		*d = Date{}

		return nil
	}

	s := strings.TrimSpace(*raw)
	for _, layout := range []string{dateLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = NewDate(t)

			return nil
		}
	}

	return fmt.Errorf("due date %q is not a date or timestamp", s)
}

// Todo contains one task as the service reports it. The service assigns
// ID and CreationDate; both are immutable once created.
type Todo struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Priority     Priority  `json:"priority"`
	DueDate      *Date     `json:"dueDate"`
	Done         bool      `json:"done"`
	DoneDate     *Date     `json:"doneDate,omitempty"`
	CreationDate time.Time `json:"creationDate"`
}

// Draft holds the writable fields sent on create and update.
type Draft struct {
	Text     string   `json:"text"`
	Priority Priority `json:"priority"`
	DueDate  *Date    `json:"dueDate"`
}

// ListParams selects the page of todos to fetch. Page is 1-based here;
// the wire is 0-based and the client adjusts.
type ListParams struct {
	Page           int
	Size           int
	SortBy         string
	SortOrder      string
	TextFilter     string
	PriorityFilter string
	DoneFilter     string
}

// ListResult is one page of todos plus the total number of matching
// items, read from the X-Total-Count response header.
type ListResult struct {
	Todos      []Todo
	TotalCount int
}

// Metrics is the pre-aggregated completion-time summary. Values are in
// seconds; the client only formats them.
type Metrics struct {
	AverageTimeForAllTasks float64              `json:"averageTimeForAllTasks"`
	AverageTimeByPriority  map[Priority]float64 `json:"averageTimeByPriority"`
}

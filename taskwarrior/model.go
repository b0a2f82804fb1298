// Package taskwarrior defines the task model serialized into TaskWarrior's
// import format. The import format is a stream of JSON objects, one per
// line, where every optional attribute is omitted when not applicable:
// TaskWarrior distinguishes "no project" from an empty-string project, so
// the model never emits empty placeholders.
package taskwarrior

import (
	"fmt"
	"strings"
	"time"
)

// Task status values recognized by TaskWarrior imports.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

const (
	// PriorityHigh is the highest TaskWarrior priority level.
	PriorityHigh = "H"

	// TagFlagged is the tag applied to flagged actions when flag-to-tag
	// conversion is enabled.
	TagFlagged = "flagged"
)

// TimestampLayout is the fixed timestamp representation required by
// TaskWarrior imports: basic ISO-8601 in UTC with a literal Z suffix.
const TimestampLayout = "20060102T150405Z"

// Timestamp wraps time.Time with TaskWarrior's import serialization.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns a Timestamp pointer for t, normalized to UTC.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC()}
}

// MarshalJSON implements the json.Marshaler interface for Timestamp.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ts.Time.UTC().Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for Timestamp.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" {
		ts.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse TaskWarrior timestamp %q: %w", s, err)
	}
	ts.Time = t
	return nil
}

// Task is one record of a TaskWarrior import document. Attributes that do
// not apply to a given task must be left at their zero value so that
// encoding omits them entirely.
type Task struct {
	UUID        string     `json:"uuid"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Project     string     `json:"project,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Entry       *Timestamp `json:"entry,omitempty"`
	Modified    *Timestamp `json:"modified,omitempty"`
	Scheduled   *Timestamp `json:"scheduled,omitempty"`
	Wait        *Timestamp `json:"wait,omitempty"`
	Due         *Timestamp `json:"due,omitempty"`
	End         *Timestamp `json:"end,omitempty"`

	// Notes is a user-defined attribute, not part of TaskWarrior's core
	// schema. It carries note text with newlines replaced by the
	// NotesNewline placeholder.
	Notes string `json:"notes,omitempty"`
}

package taskwarrior

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTimestampMarshal(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected string
	}{
		{
			name:     "UTC time",
			time:     time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: `"20230101T120000Z"`,
		},
		{
			name:     "non-UTC time is normalized",
			time:     time.Date(2023, 1, 1, 14, 0, 0, 0, time.FixedZone("CET", 2*3600)),
			expected: `"20230101T120000Z"`,
		},
		{
			name:     "zero time marshals as empty string",
			time:     time.Time{},
			expected: `""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(Timestamp{Time: tt.time})
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, data)
			}
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	original := NewTimestamp(time.Date(2019, 7, 14, 8, 30, 15, 0, time.UTC))

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Timestamp
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !decoded.Time.Equal(original.Time) {
		t.Errorf("expected %v after round trip, got %v", original.Time, decoded.Time)
	}
}

func TestTimestampUnmarshalInvalid(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"not-a-date"`), &ts); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func TestTaskOmitsEmptyAttributes(t *testing.T) {
	task := Task{
		UUID:        "3f1c2a9e-0000-4000-8000-000000000001",
		Description: "Water plants",
		Status:      StatusPending,
	}

	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, absent := range []string{"project", "tags", "priority", "scheduled", "wait", "due", "end", "notes", "modified"} {
		if strings.Contains(string(data), `"`+absent+`"`) {
			t.Errorf("expected %q to be omitted, got %s", absent, data)
		}
	}
}

func TestSanitizeNotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "unix newlines",
			input:    "line one\nline two",
			expected: "line one###NEWLINE###line two",
		},
		{
			name:     "windows newlines",
			input:    "line one\r\nline two",
			expected: "line one###NEWLINE###line two",
		},
		{
			name:     "no newlines",
			input:    "single line",
			expected: "single line",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeNotes(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSanitizeNotesIdempotent(t *testing.T) {
	once := SanitizeNotes("a\nb\r\nc")
	twice := SanitizeNotes(once)
	if once != twice {
		t.Errorf("sanitization is not idempotent: %q vs %q", once, twice)
	}
}

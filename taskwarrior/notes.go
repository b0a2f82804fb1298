package taskwarrior

import "regexp"

// NotesNewline is the placeholder substituted for literal line breaks in
// note text. TaskWarrior's import fields cannot safely carry embedded
// newlines, so the substitution is lossy by design; a separate tool can
// reverse it for display or editing.
const NotesNewline = "###NEWLINE###"

var newlinePattern = regexp.MustCompile(`\r?\n`)

// SanitizeNotes replaces every line break in s with the NotesNewline
// placeholder. Applying it to already-sanitized text is a no-op, since the
// placeholder itself contains no line breaks.
func SanitizeNotes(s string) string {
	return newlinePattern.ReplaceAllString(s, NotesNewline)
}

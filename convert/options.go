package convert

import "fmt"

// Options configures the conversion behavior. The zero value converts
// descriptions, projects and dates only, dropping contexts, flags and
// notes.
type Options struct {
	// IncludeContextAsTag turns a non-empty context into a tag.
	IncludeContextAsTag bool

	// IncludeFlaggedAsTag adds a "flagged" tag to flagged actions.
	// Mutually exclusive with MapFlaggedToPriority.
	IncludeFlaggedAsTag bool

	// MapFlaggedToPriority sets priority H on flagged actions.
	// Mutually exclusive with IncludeFlaggedAsTag.
	MapFlaggedToPriority bool

	// IncludeNotes gates note export entirely: task notes become a
	// notes UDA and note-bearing containers spawn a synthetic "Notes"
	// task. When false no notes field appears anywhere.
	IncludeNotes bool

	// MapStartDateToWait maps the start date to the wait attribute in
	// addition to scheduled.
	MapStartDateToWait bool

	// DateOnly truncates start/due/completion dates to local midnight
	// before converting to UTC.
	DateOnly bool

	// StandardizeProjectNames title-cases each project path segment and
	// strips whitespace and punctuation from it.
	StandardizeProjectNames bool
}

// Validate rejects contradictory option combinations before the pipeline
// runs. Enabling both flag interpretations at once has no defined
// precedence, so it is a configuration error rather than a guess.
func (o Options) Validate() error {
	if o.IncludeFlaggedAsTag && o.MapFlaggedToPriority {
		return fmt.Errorf("flagged-as-tag and flagged-to-high-priority are mutually exclusive")
	}
	return nil
}

// Package convert maps classified outline records onto TaskWarrior
// import tasks. It is the second and third stage of the pipeline: the
// hierarchy resolver classifies records, then the field mapper turns
// every leaf (and every note-bearing container, when note export is on)
// into exactly one output task.
package convert

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskutils/of2tw/hierarchy"
	"github.com/taskutils/of2tw/omnifocus"
	"github.com/taskutils/of2tw/taskwarrior"
)

// sourceDateLayout is the textual date representation OmniFocus writes
// into its CSV export.
const sourceDateLayout = "2006-01-02 15:04:05"

// fallbackDescription is emitted when a record has no name; TaskWarrior
// requires every task to carry a description.
const fallbackDescription = "[None]"

// noteTaskDescription names the synthetic task that carries a
// container's note text.
const noteTaskDescription = "Notes"

// Summary counts what a conversion produced.
type Summary struct {
	TotalRecords int `json:"total_records"`
	Tasks        int `json:"tasks"`
	Containers   int `json:"containers"`
	NoteTasks    int `json:"note_tasks"`
}

// Result holds the converted tasks in output order plus statistics.
type Result struct {
	Tasks   []taskwarrior.Task `json:"tasks"`
	Summary Summary            `json:"summary"`
}

// Converter turns outline records into TaskWarrior tasks. Apart from
// UUID assignment and entry timestamps the conversion is a pure function
// of (records, options).
type Converter struct {
	opts Options

	// now and newUUID exist so tests can pin entry stamps and IDs.
	now     func() time.Time
	newUUID func() string

	// loc is the zone used for date-only truncation.
	loc *time.Location
}

// New creates a Converter for the given options. Options are validated
// by the caller before the pipeline starts.
func New(opts Options) *Converter {
	return &Converter{
		opts:    opts,
		now:     func() time.Time { return time.Now().UTC() },
		newUUID: func() string { return uuid.New().String() },
		loc:     time.Local,
	}
}

// Convert runs the resolver over the records and maps every resulting
// node. The first unparseable date aborts the whole run: a nil task set
// is returned and no partial output is usable, since a silently dropped
// due date is worse than a failed run.
func (c *Converter) Convert(records []omnifocus.OutlineRecord) (*Result, error) {
	nodes := hierarchy.Resolve(records)

	result := &Result{
		Tasks:   make([]taskwarrior.Task, 0, len(nodes)),
		Summary: Summary{TotalRecords: len(records)},
	}

	for i, node := range nodes {
		if node.IsLeaf {
			task, err := c.mapLeaf(node)
			if err != nil {
				return nil, fmt.Errorf("record %d (%q): %w", i+1, node.Record.Name, err)
			}
			result.Tasks = append(result.Tasks, task)
			result.Summary.Tasks++
			continue
		}

		result.Summary.Containers++
		if c.opts.IncludeNotes && node.Record.Notes != "" {
			result.Tasks = append(result.Tasks, c.noteTask(node))
			result.Summary.NoteTasks++
		}
	}

	return result, nil
}

// mapLeaf maps one leaf record to its output task.
func (c *Converter) mapLeaf(node hierarchy.Node) (taskwarrior.Task, error) {
	rec := node.Record

	task := taskwarrior.Task{
		UUID:        c.newUUID(),
		Description: rec.Name,
		Project:     c.projectName(node.ProjectPath()),
	}
	if task.Description == "" {
		task.Description = fallbackDescription
	}

	start, err := c.parseDate(rec.StartDate, "start date")
	if err != nil {
		return taskwarrior.Task{}, err
	}
	due, err := c.parseDate(rec.DueDate, "due date")
	if err != nil {
		return taskwarrior.Task{}, err
	}
	end, err := c.parseDate(rec.CompletionDate, "completion date")
	if err != nil {
		return taskwarrior.Task{}, err
	}

	if start != nil {
		task.Scheduled = start
		if c.opts.MapStartDateToWait {
			task.Wait = start
		}
	}
	task.Due = due

	if end != nil {
		task.End = end
		task.Status = taskwarrior.StatusCompleted
		task.Entry = end
		task.Modified = end
	} else {
		task.Status = taskwarrior.StatusPending
		task.Entry = taskwarrior.NewTimestamp(c.now())
	}

	if c.opts.IncludeContextAsTag && rec.Context != "" {
		task.Tags = append(task.Tags, rec.Context)
	}
	if rec.Flagged {
		switch {
		case c.opts.MapFlaggedToPriority:
			task.Priority = taskwarrior.PriorityHigh
		case c.opts.IncludeFlaggedAsTag:
			task.Tags = append(task.Tags, taskwarrior.TagFlagged)
		}
	}

	if c.opts.IncludeNotes && rec.Notes != "" {
		task.Notes = taskwarrior.SanitizeNotes(rec.Notes)
	}

	return task, nil
}

// noteTask synthesizes the task that carries a container's notes. It
// files under the container's own full path, so the note shows up inside
// the project it annotates.
func (c *Converter) noteTask(node hierarchy.Node) taskwarrior.Task {
	return taskwarrior.Task{
		UUID:        c.newUUID(),
		Description: noteTaskDescription,
		Status:      taskwarrior.StatusPending,
		Project:     c.projectName(node.OwnPath()),
		Entry:       taskwarrior.NewTimestamp(c.now()),
		Notes:       taskwarrior.SanitizeNotes(node.Record.Notes),
	}
}

// projectName renders an ancestor path in dot notation. An empty path
// yields an empty string, which the task encoding omits entirely.
func (c *Converter) projectName(path []string) string {
	if len(path) == 0 {
		return ""
	}
	if !c.opts.StandardizeProjectNames {
		return hierarchy.JoinPath(path)
	}

	standardized := make([]string, len(path))
	for i, segment := range path {
		standardized[i] = standardizeSegment(segment)
	}
	return hierarchy.JoinPath(standardized)
}

// parseDate parses one source date value. Empty values are fine and map
// to nothing; unparseable values are fatal for the whole run.
func (c *Converter) parseDate(val, field string) (*taskwarrior.Timestamp, error) {
	if val == "" {
		return nil, nil
	}

	t, err := time.Parse(sourceDateLayout, val)
	if err != nil {
		return nil, fmt.Errorf("unparseable %s %q: %w", field, val, err)
	}

	if c.opts.DateOnly {
		local := t.In(c.loc)
		t = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	}

	return taskwarrior.NewTimestamp(t), nil
}

// Package omnifocus reads the CSV export produced by OmniFocus and turns
// each row into an OutlineRecord. Rows arrive in outline pre-order: a
// parent always immediately precedes its first child, which is what lets
// the hierarchy resolver classify records with one-record lookahead.
package omnifocus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/taskutils/of2tw/fieldmap"
)

// OutlineRecord is one row of the source export. Depth is derived from
// the row's tree ID ("1.4.2" sits at depth 2). Date fields stay as raw
// text here; parsing them is the field mapper's job so that a bad date
// can abort the run with full row context.
type OutlineRecord struct {
	TreeID         string
	Depth          int
	Name           string
	Context        string
	StartDate      string
	DueDate        string
	CompletionDate string
	Flagged        bool
	Notes          string
}

// ReadRecords parses an OmniFocus CSV export. The column set must match
// the field map exactly: headers outside the map, or map columns missing
// from the file, are a contract violation. Row order is preserved.
func ReadRecords(r io.Reader, fields fieldmap.Map) ([]OutlineRecord, error) {
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field map: %w", err)
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns, err := resolveColumns(header, fields)
	if err != nil {
		return nil, err
	}

	var records []OutlineRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+2, err)
		}

		records = append(records, recordFromRow(row, columns))
	}

	return records, nil
}

// resolveColumns maps each header position to its attribute name and
// enforces the column contract.
func resolveColumns(header []string, fields fieldmap.Map) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]bool)

	for i, name := range header {
		attr, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("unexpected column %q in header", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		seen[name] = true
		columns[i] = attr
	}

	for name := range fields {
		if !seen[name] {
			return nil, fmt.Errorf("missing column %q in header", name)
		}
	}

	return columns, nil
}

func recordFromRow(row []string, columns []string) OutlineRecord {
	var rec OutlineRecord
	for i, val := range row {
		if i >= len(columns) {
			break
		}
		switch columns[i] {
		case fieldmap.AttrTreeID:
			rec.TreeID = val
			rec.Depth = depthOf(val)
		case fieldmap.AttrName:
			rec.Name = val
		case fieldmap.AttrContext:
			rec.Context = val
		case fieldmap.AttrStart:
			rec.StartDate = val
		case fieldmap.AttrDue:
			rec.DueDate = val
		case fieldmap.AttrCompletion:
			rec.CompletionDate = val
		case fieldmap.AttrFlagged:
			// OmniFocus exports "0" for unflagged, "1" for flagged.
			rec.Flagged = val != "0"
		case fieldmap.AttrNotes:
			rec.Notes = val
		}
	}
	return rec
}

// depthOf derives the outline depth from a dotted tree ID: "3" is a
// top-level record at depth 0, "3.1.4" sits at depth 2.
func depthOf(treeID string) int {
	if treeID == "" {
		return 0
	}
	return strings.Count(treeID, ".")
}

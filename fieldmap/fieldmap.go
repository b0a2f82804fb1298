// Package fieldmap maps the column headers of an OmniFocus CSV export onto
// the attributes the converter consumes. OmniFocus has renamed export
// columns between versions, so the built-in mapping can be replaced by a
// YAML file without rebuilding the tool.
package fieldmap

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Attribute names a converter input field. A column mapped to AttrIgnored
// must still be present in the CSV but its values are discarded.
const (
	AttrTreeID     = "tree-id"
	AttrName       = "name"
	AttrContext    = "context"
	AttrStart      = "start"
	AttrDue        = "due"
	AttrCompletion = "completion"
	AttrFlagged    = "flagged"
	AttrNotes      = "notes"
	AttrIgnored    = ""
)

// required lists the attributes a usable mapping must bind to a column.
// Everything else is optional: an export without a Context column, say,
// simply never produces context tags.
var required = []string{AttrTreeID, AttrName}

var known = map[string]bool{
	AttrTreeID:     true,
	AttrName:       true,
	AttrContext:    true,
	AttrStart:      true,
	AttrDue:        true,
	AttrCompletion: true,
	AttrFlagged:    true,
	AttrNotes:      true,
	AttrIgnored:    true,
}

// Map associates CSV column headers with attribute names. The map's keys
// define the expected column set: a CSV containing headers outside the
// map is a contract violation.
type Map map[string]string

// Default returns the mapping for the column set OmniFocus exports today.
// Status, Project and Type appear in the source but are never trusted:
// the hierarchy resolver recomputes them, so they map to AttrIgnored.
func Default() Map {
	return Map{
		"Task ID":         AttrTreeID,
		"Type":            AttrIgnored,
		"Name":            AttrName,
		"Status":          AttrIgnored,
		"Project":         AttrIgnored,
		"Context":         AttrContext,
		"Start Date":      AttrStart,
		"Due Date":        AttrDue,
		"Completion Date": AttrCompletion,
		"Duration":        AttrIgnored,
		"Flagged":         AttrFlagged,
		"Notes":           AttrNotes,
	}
}

// Load reads a mapping from a YAML file and validates it.
func Load(path string) (Map, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read field map %s: %w", path, err)
	}

	var m Map
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("failed to parse field map %s: %w", path, err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid field map %s: %w", path, err)
	}
	return m, nil
}

// Validate checks that every mapped attribute is known, no attribute is
// bound to more than one column, and all required attributes are bound.
func (m Map) Validate() error {
	seen := make(map[string]string)
	for column, attr := range m {
		if !known[attr] {
			return fmt.Errorf("column %q maps to unknown attribute %q", column, attr)
		}
		if attr == AttrIgnored {
			continue
		}
		if prev, dup := seen[attr]; dup {
			return fmt.Errorf("attribute %q mapped from both %q and %q", attr, prev, column)
		}
		seen[attr] = column
	}

	var missing []string
	for _, attr := range required {
		if _, ok := seen[attr]; !ok {
			missing = append(missing, attr)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("no column mapped to required attributes: %v", missing)
	}
	return nil
}

// Package hierarchy infers project structure from a depth-annotated
// outline. The source export is a flattened pre-order walk of a tree;
// this package rebuilds enough of that tree to tell leaf tasks apart
// from project containers and to name each task's owning project with
// a dot-joined ancestor chain.
package hierarchy

import (
	"strings"

	"github.com/taskutils/of2tw/omnifocus"
)

// Frame is one open ancestor on the resolver's stack.
type Frame struct {
	Depth int
	Name  string
}

// Stack holds the currently-open ancestors, ordered root to deepest.
// All operations return new values; a Stack is never mutated in place,
// which keeps the per-record Step a pure function of its inputs.
type Stack []Frame

// Prune returns the stack with every frame at depth or deeper removed.
// Those frames cannot be ancestors of a record at the given depth.
func (s Stack) Prune(depth int) Stack {
	i := len(s)
	for i > 0 && s[i-1].Depth >= depth {
		i--
	}
	pruned := make(Stack, i)
	copy(pruned, s[:i])
	return pruned
}

// Push returns the stack with a new frame appended.
func (s Stack) Push(depth int, name string) Stack {
	return append(s, Frame{Depth: depth, Name: name})
}

// Names returns the frame names, root first.
func (s Stack) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Node is one classified outline record.
type Node struct {
	Record omnifocus.OutlineRecord

	// Path holds the names of the record's ancestors, root first,
	// excluding the record itself.
	Path []string

	// IsLeaf is true iff the record has no children in source order.
	// Only leaves become tasks; containers contribute naming, and
	// optionally a synthetic notes task when they carry note text.
	IsLeaf bool
}

// ProjectPath returns the ancestor chain that names a leaf's owning
// project.
func (n Node) ProjectPath() []string {
	return n.Path
}

// OwnPath returns the node's full path including its own name. A
// container's synthetic notes task files under this path.
func (n Node) OwnPath() []string {
	own := make([]string, 0, len(n.Path)+1)
	own = append(own, n.Path...)
	return append(own, n.Record.Name)
}

// JoinPath renders a path in the dot notation used for nested projects.
func JoinPath(path []string) string {
	return strings.Join(path, ".")
}

// Step classifies a single record given the previous stack and the next
// record in source order (nil when rec is last). It returns the node and
// the stack to carry into the following step.
//
// Depth sequences are trusted, not validated: the export is assumed to
// be a pre-order walk where depth grows by one when descending. A
// malformed jump (say 0 straight to 2) degrades to whatever ancestors
// were last open rather than producing an error.
func Step(s Stack, rec omnifocus.OutlineRecord, next *omnifocus.OutlineRecord) (Node, Stack) {
	ancestors := s.Prune(rec.Depth)

	node := Node{
		Record: rec,
		Path:   ancestors.Names(),
		IsLeaf: next == nil || next.Depth <= rec.Depth,
	}

	return node, ancestors.Push(rec.Depth, rec.Name)
}

// Resolve classifies every record of an outline in a single pass with
// one-record lookahead, preserving encounter order.
func Resolve(records []omnifocus.OutlineRecord) []Node {
	nodes := make([]Node, 0, len(records))

	var stack Stack
	for i, rec := range records {
		var next *omnifocus.OutlineRecord
		if i+1 < len(records) {
			next = &records[i+1]
		}

		var node Node
		node, stack = Step(stack, rec, next)
		nodes = append(nodes, node)
	}

	return nodes
}

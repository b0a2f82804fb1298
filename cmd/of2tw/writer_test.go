package main

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/taskutils/of2tw/taskwarrior"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return lines
}

func sampleTasks() []taskwarrior.Task {
	return []taskwarrior.Task{
		{UUID: "00000000-0000-4000-8000-000000000001", Description: "First", Status: taskwarrior.StatusPending},
		{UUID: "00000000-0000-4000-8000-000000000002", Description: "Second", Status: taskwarrior.StatusPending, Project: "Home"},
	}
}

func TestWriteTasks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := writeTasks(path, sampleTasks(), false); err != nil {
		t.Fatalf("writeTasks failed: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var task taskwarrior.Task
	if err := json.Unmarshal([]byte(lines[1]), &task); err != nil {
		t.Fatalf("output line is not valid JSON: %v", err)
	}
	if task.Description != "Second" || task.Project != "Home" {
		t.Errorf("unexpected task on line 2: %+v", task)
	}
}

func TestWriteTasksOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := os.WriteFile(path, []byte("stale contents\n"), 0644); err != nil {
		t.Fatalf("failed to seed output file: %v", err)
	}

	if err := writeTasks(path, sampleTasks()[:1], false); err != nil {
		t.Fatalf("writeTasks failed: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 1 {
		t.Fatalf("expected stale contents to be replaced, got %d lines", len(lines))
	}
}

func TestWriteTasksAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := writeTasks(path, sampleTasks()[:1], false); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := writeTasks(path, sampleTasks()[1:], true); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines after append, got %d", len(lines))
	}
}

func TestWriteTasksLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if err := writeTasks(path, sampleTasks(), false); err != nil {
		t.Fatalf("writeTasks failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "out.json" && e.Name() != "out.json.lock" {
			t.Errorf("unexpected leftover file %q", e.Name())
		}
	}
}

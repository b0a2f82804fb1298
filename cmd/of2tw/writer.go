package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/taskutils/of2tw/taskwarrior"
)

const (
	lockTimeout       = 3 * time.Second
	lockRetryInterval = 100 * time.Millisecond
)

// writeTasks writes tasks to path as TaskWarrior import JSON, one object
// per line. The output file is guarded by a sibling .lock file so
// concurrent runs against the same path cannot interleave. Overwrites go
// through a temp file and rename, so a failed run never leaves a
// truncated output behind; append mode writes directly under the lock.
func writeTasks(path string, tasks []taskwarrior.Task, appendMode bool) error {
	fileLock := flock.New(path + ".lock")

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock on %s", path)
	}
	defer func() { _ = fileLock.Unlock() }()

	if appendMode {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open output file: %w", err)
		}
		if err := encodeTasks(f, tasks); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := encodeTasks(tmp, tasks); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace output file: %w", err)
	}
	return nil
}

// encodeTasks writes one JSON object per line, the stream form
// TaskWarrior's import command accepts.
func encodeTasks(w io.Writer, tasks []taskwarrior.Task) error {
	enc := json.NewEncoder(w)
	for _, task := range tasks {
		if err := enc.Encode(task); err != nil {
			return fmt.Errorf("failed to encode task %s: %w", task.UUID, err)
		}
	}
	return nil
}

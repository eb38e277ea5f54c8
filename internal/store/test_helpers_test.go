package store

import (
	"path/filepath"
	"testing"
	"time"
)

// createTestWorkspace opens an isolated store under t.TempDir.
func createTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w, err := Open(filepath.Join(t.TempDir(), "tman"), OpenOptions{LockTimeout: time.Second})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

// insertTask writes a record directly, bypassing AddTask validation.
func insertTask(t *testing.T, w *Workspace, task Task) {
	t.Helper()
	if task.Tags == nil {
		task.Tags = []string{}
	}
	b, err := EncodeTask(task)
	if err != nil {
		t.Fatalf("EncodeTask(%q) failed: %v", task.Name, err)
	}
	if err := w.db.Put([]byte(task.Name), b); err != nil {
		t.Fatalf("Put(%q) failed: %v", task.Name, err)
	}
}

// readTask loads a record directly from the backing store.
func readTask(t *testing.T, w *Workspace, name string) *Task {
	t.Helper()
	b, err := w.db.Get([]byte(name))
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", name, err)
	}
	task, err := DecodeTask(name, b)
	if err != nil {
		t.Fatalf("DecodeTask(%q) failed: %v", name, err)
	}
	return task
}

func statusPtr(s Status) *Status { return &s }

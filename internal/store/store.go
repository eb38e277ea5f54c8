package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/amirbrooks/tman/internal/kv"
)

// Workspace is an open task store. Every operation is a synchronous
// read-modify-write of one whole record; callers that share a Workspace
// across goroutines must serialize access themselves.
type Workspace struct {
	Root string
	db   kv.Store
}

type OpenOptions struct {
	// LockTimeout bounds the wait for another process holding the store.
	LockTimeout time.Duration
}

type AddTaskInput struct {
	Name string
	Note string
	Due  string
}

// ListFilter narrows ListTasks. Set fields combine with AND; zero value
// lists everything.
type ListFilter struct {
	Status *Status
	Tag    string
}

// Open opens the store kept in root, creating it if needed.
func Open(root string, opts OpenOptions) (*Workspace, error) {
	root = expandHome(root)
	db, err := kv.OpenBolt(root, kv.BoltOptions{Timeout: opts.LockTimeout})
	if err != nil {
		return nil, ioErr("open store", err)
	}
	return &Workspace{Root: root, db: db}, nil
}

// New wraps an already open key-value store.
func New(db kv.Store) *Workspace {
	return &Workspace{db: db}
}

func (w *Workspace) Close() error {
	if w == nil || w.db == nil {
		return nil
	}
	return ioErr("close store", w.db.Close())
}

// Drop irreversibly removes the store kept in root, directory included.
func Drop(root string) error {
	return ioErr("drop store", kv.Destroy(expandHome(root)))
}

func (w *Workspace) AddTask(in AddTaskInput) (*Task, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	due := ""
	if in.Due != "" {
		due, err = ParseDueDate(in.Due)
		if err != nil {
			return nil, err
		}
	}
	if _, err := w.db.Get([]byte(name)); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		return nil, ioErr("read todo", err)
	}
	t := &Task{
		Name:    name,
		Status:  StatusToDo,
		DueDate: due,
		Note:    in.Note,
		Tags:    []string{},
	}
	if err := w.put(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (w *Workspace) GetTask(name string) (*Task, error) {
	key, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return w.get(key)
}

// ListTasks decodes every record in key order and keeps those matching f.
func (w *Workspace) ListTasks(f ListFilter) ([]Task, error) {
	out := []Task{}
	tag := ""
	if f.Tag != "" {
		tag = norm.NFC.String(f.Tag)
	}
	err := w.db.Iterate(func(k, v []byte) error {
		t, err := DecodeTask(string(k), v)
		if err != nil {
			return err
		}
		if f.Status != nil && t.Status != *f.Status {
			return nil
		}
		if tag != "" && !t.HasTag(tag) {
			return nil
		}
		out = append(out, *t)
		return nil
	})
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, ioErr("list todos", err)
	}
	return out, nil
}

func (w *Workspace) CompleteTask(name string) (*Task, error) {
	return w.update(name, func(t *Task) error {
		t.Status = StatusDone
		return nil
	})
}

func (w *Workspace) UncompleteTask(name string) (*Task, error) {
	return w.update(name, func(t *Task) error {
		t.Status = StatusToDo
		return nil
	})
}

// AddNote sets the note of a task that has none yet.
func (w *Workspace) AddNote(name, note string) (*Task, error) {
	return w.update(name, func(t *Task) error {
		if t.Note != "" {
			return ErrNoteAlreadyExists
		}
		t.Note = note
		return nil
	})
}

// EditNote overwrites the note whether or not one was set.
func (w *Workspace) EditNote(name, note string) (*Task, error) {
	return w.update(name, func(t *Task) error {
		t.Note = note
		return nil
	})
}

func (w *Workspace) RemoveNote(name string) (*Task, error) {
	return w.update(name, func(t *Task) error {
		t.Note = ""
		return nil
	})
}

func (w *Workspace) AddTag(name, tag string) (*Task, error) {
	tag, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}
	return w.update(name, func(t *Task) error {
		if t.HasTag(tag) {
			return ErrTagAlreadyExists
		}
		t.Tags = append(t.Tags, tag)
		return nil
	})
}

func (w *Workspace) RemoveTag(name, tag string) (*Task, error) {
	tag, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}
	return w.update(name, func(t *Task) error {
		if !t.HasTag(tag) {
			return ErrTagNotFound
		}
		kept := make([]string, 0, len(t.Tags)-1)
		for _, s := range t.Tags {
			if s != tag {
				kept = append(kept, s)
			}
		}
		t.Tags = kept
		return nil
	})
}

// AddDueDate validates date before looking the task up, so a bad date on a
// missing task reports ErrInvalidDate.
func (w *Workspace) AddDueDate(name, date string) (*Task, error) {
	due, err := ParseDueDate(date)
	if err != nil {
		return nil, err
	}
	return w.update(name, func(t *Task) error {
		t.DueDate = due
		return nil
	})
}

// ChangeDueDate behaves exactly like AddDueDate; a task without a due date
// can be changed too.
func (w *Workspace) ChangeDueDate(name, date string) (*Task, error) {
	return w.AddDueDate(name, date)
}

func (w *Workspace) RemoveDueDate(name string) (*Task, error) {
	return w.update(name, func(t *Task) error {
		t.DueDate = ""
		return nil
	})
}

func (w *Workspace) DeleteTask(name string) error {
	key, err := normalizeName(name)
	if err != nil {
		return err
	}
	if _, err := w.get(key); err != nil {
		return err
	}
	return ioErr("delete todo", w.db.Delete([]byte(key)))
}

// ClearTasks removes every record but keeps the store itself.
func (w *Workspace) ClearTasks() error {
	return ioErr("clear todos", w.db.DeleteRange(nil, nil))
}

func (w *Workspace) update(name string, mutate func(*Task) error) (*Task, error) {
	key, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	t, err := w.get(key)
	if err != nil {
		return nil, err
	}
	if err := mutate(t); err != nil {
		return nil, err
	}
	if err := w.put(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (w *Workspace) get(key string) (*Task, error) {
	b, err := w.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, ioErr("read todo", err)
	}
	return DecodeTask(key, b)
}

func (w *Workspace) put(t *Task) error {
	b, err := EncodeTask(*t)
	if err != nil {
		return fmt.Errorf("encode todo %q: %w", t.Name, err)
	}
	return ioErr("write todo", w.db.Put([]byte(t.Name), b))
}

func normalizeName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalid)
	}
	return norm.NFC.String(name), nil
}

func normalizeTag(tag string) (string, error) {
	if strings.TrimSpace(tag) == "" {
		return "", fmt.Errorf("%w: tag is required", ErrInvalid)
	}
	return norm.NFC.String(tag), nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) || path == "~" {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

package store

import (
	"fmt"
	"strings"
)

// Status is the completion state of a task.
type Status int

const (
	StatusToDo Status = iota
	StatusDone
)

// ParseStatus accepts the machine form of a status, "ToDo" or "Done".
func ParseStatus(s string) (Status, error) {
	switch s {
	case "ToDo":
		return StatusToDo, nil
	case "Done":
		return StatusDone, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a valid status", ErrInvalidStatus, s)
	}
}

// String returns the machine form accepted by ParseStatus.
func (s Status) String() string {
	switch s {
	case StatusToDo:
		return "ToDo"
	case StatusDone:
		return "Done"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Label returns the form shown to people.
func (s Status) Label() string {
	switch s {
	case StatusToDo:
		return "To Do"
	case StatusDone:
		return "Done"
	default:
		return "?"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	if s != StatusToDo && s != StatusDone {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Task is one stored todo. Name doubles as the store key.
type Task struct {
	Name    string   `yaml:"name" json:"name"`
	Status  Status   `yaml:"status" json:"status"`
	DueDate string   `yaml:"due_date" json:"due_date"`
	Note    string   `yaml:"note" json:"note"`
	Tags    []string `yaml:"tags" json:"tags"`
}

func (t *Task) HasTag(tag string) bool {
	for _, s := range t.Tags {
		if s == tag {
			return true
		}
	}
	return false
}

func (t *Task) RenderHuman() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s\n", t.Name))
	b.WriteString(fmt.Sprintf("Status: %s\n", t.Status.Label()))
	if t.DueDate != "" {
		b.WriteString(fmt.Sprintf("Due: %s\n", t.DueDate))
	}
	if len(t.Tags) > 0 {
		b.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(t.Tags, ", ")))
	}
	if strings.TrimSpace(t.Note) != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(t.Note, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTaskLayout(t *testing.T) {
	b, err := EncodeTask(Task{
		Name:    "foo",
		Status:  StatusDone,
		DueDate: "17-07-2022",
		Note:    "whatever",
		Tags:    []string{"home", "errand"},
	})
	require.NoError(t, err)

	want := "name: foo\n" +
		"status: Done\n" +
		"due_date: 17-07-2022\n" +
		"note: whatever\n" +
		"tags:\n" +
		"    - home\n" +
		"    - errand\n"
	assert.Equal(t, want, string(b))
}

func TestCodecRoundTrip(t *testing.T) {
	tests := []Task{
		{Name: "foo", Status: StatusToDo, Tags: []string{}},
		{Name: "bar", Status: StatusDone, DueDate: "01-02-2024", Note: "buy milk", Tags: []string{"x", "y"}},
		{Name: "multi line", Note: "first\nsecond\n", Tags: []string{"a"}},
		{Name: "yes", Note: "true", DueDate: "", Tags: []string{"123", "null"}},
		{Name: "café ☕", Note: "# not a comment", Tags: []string{"naïve"}},
	}
	for _, want := range tests {
		t.Run(want.Name, func(t *testing.T) {
			b, err := EncodeTask(want)
			require.NoError(t, err)

			got, err := DecodeTask(want.Name, b)
			require.NoError(t, err)
			assert.Equal(t, want, *got)

			again, err := EncodeTask(*got)
			require.NoError(t, err)
			assert.Equal(t, b, again)
		})
	}
}

func TestEncodeNilTagsDecodesEmpty(t *testing.T) {
	b, err := EncodeTask(Task{Name: "foo"})
	require.NoError(t, err)

	got, err := DecodeTask("foo", b)
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestDecodeTaskErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		input string
	}{
		{name: "empty", key: "foo", input: ""},
		{name: "not yaml", key: "foo", input: "{{{"},
		{name: "json from elsewhere", key: "foo", input: `{"name":"foo","status":"InProgress"}`},
		{name: "unknown status", key: "foo", input: "name: foo\nstatus: Doing\n"},
		{name: "unknown field", key: "foo", input: "name: foo\npriority: high\n"},
		{name: "missing name", key: "foo", input: "status: ToDo\n"},
		{name: "name mismatch", key: "foo", input: "name: bar\nstatus: ToDo\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTask(tt.key, []byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.key, de.Key)
		})
	}
}

func TestStatusForms(t *testing.T) {
	assert.Equal(t, "ToDo", StatusToDo.String())
	assert.Equal(t, "Done", StatusDone.String())
	assert.Equal(t, "To Do", StatusToDo.Label())
	assert.Equal(t, "Done", StatusDone.Label())

	for _, s := range []Status{StatusToDo, StatusDone} {
		got, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestParseStatusRejectsLabelsAndOthers(t *testing.T) {
	for _, in := range []string{"To Do", "todo", "done", "", "InProgress"} {
		_, err := ParseStatus(in)
		assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", in)
	}
}

func TestStatusJSON(t *testing.T) {
	b, err := json.Marshal(Task{Name: "foo", Status: StatusDone, Tags: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"foo","status":"Done","due_date":"","note":"","tags":[]}`, string(b))

	var task Task
	require.NoError(t, json.Unmarshal(b, &task))
	assert.Equal(t, StatusDone, task.Status)
}

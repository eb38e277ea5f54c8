package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeTask returns the stored form of t, a YAML document.
func EncodeTask(t Task) ([]byte, error) {
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return yaml.Marshal(&t)
}

// DecodeTask parses bytes written by EncodeTask. key is the store key the
// bytes were read from and must match the decoded name.
func DecodeTask(key string, b []byte) (*Task, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var t Task
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty value")
		}
		return nil, &DecodeError{Key: key, Err: err}
	}
	if t.Name == "" {
		return nil, &DecodeError{Key: key, Err: errors.New("missing name")}
	}
	if t.Name != key {
		return nil, &DecodeError{Key: key, Err: fmt.Errorf("name %q does not match key", t.Name)}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}

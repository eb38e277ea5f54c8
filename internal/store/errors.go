package store

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists     = errors.New("todo with this name already exists")
	ErrNotFound          = errors.New("todo with this name does not exist")
	ErrNoteAlreadyExists = errors.New("this todo already has a note")
	ErrTagAlreadyExists  = errors.New("this tag has already been added to this todo")
	ErrTagNotFound       = errors.New("this tag does not exist for this todo")
	ErrInvalidDate       = errors.New("invalid date format")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalid           = errors.New("invalid")
	ErrDecode            = errors.New("decode")
	ErrIO                = errors.New("io")
)

// DecodeError reports stored bytes that are not an encoded task.
// It satisfies errors.Is(err, ErrDecode).
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode todo %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// IOError wraps a failure of the backing store or the filesystem.
// It satisfies errors.Is(err, ErrIO).
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

func ioErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Err: err}
}

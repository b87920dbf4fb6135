package convert

import (
	"errors"
	"fmt"
)

var (
	ErrRead  = errors.New("could not read source file")
	ErrParse = errors.New("could not parse source file")
	ErrWrite = errors.New("could not write destination file")
)

type ReadError struct {
	Path string
	Err  error
}

type ParseError struct {
	Path string
	Err  error
}

type WriteError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrRead, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrParse, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrWrite, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

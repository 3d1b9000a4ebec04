package service

import "fmt"

// FetchError wraps any failure to read from the nest source.
type FetchError struct {
	Op  string // the fetch operation that failed, e.g. "fetch all items"
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SaveError wraps any failure to persist pinned categories.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

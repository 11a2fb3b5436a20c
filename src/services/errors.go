package services

import (
	"fmt"
)

// CollectionError wraps a data-gathering failure. For recurring jobs the
// firing is retryable on the next occurrence.
type CollectionError struct {
	Source string
	Err    error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collecting %s: %v", e.Source, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError names a report format the renderer cannot produce.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported report format: %q", e.Format)
}

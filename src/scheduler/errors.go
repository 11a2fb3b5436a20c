package scheduler

import (
	"fmt"
)

// InvalidScheduleError reports a user-correctable schedule problem: an
// unparsable date/time or a one-shot fire instant that already passed.
// It surfaces synchronously at job creation.
type InvalidScheduleError struct {
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

func NewInvalidScheduleError(format string, args ...interface{}) error {
	return &InvalidScheduleError{Reason: fmt.Sprintf(format, args...)}
}

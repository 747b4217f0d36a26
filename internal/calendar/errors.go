package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate marks a row whose day, month and year do not form a Gregorian date.
	ErrInvalidDate = errors.New("invalid gregorian date")
	// ErrDuplicateMonth is returned when the same month is supplied twice.
	ErrDuplicateMonth = errors.New("month supplied more than once")
	// ErrSerialization wraps encoding failures of digest or output documents.
	ErrSerialization = errors.New("serialization failed")
)

// DateError reports the offending row. Row is the 1-based position inside its month, 0 if unknown.
type DateError struct {
	Year  int
	Month int
	Day   int
	Row   int
}

func (e *DateError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%v: %d/%d/%d (month %d row %d)", ErrInvalidDate, e.Day, e.Month, e.Year, e.Month, e.Row)
	}
	return fmt.Sprintf("%v: %d/%d/%d", ErrInvalidDate, e.Day, e.Month, e.Year)
}

func (e *DateError) Unwrap() error { return ErrInvalidDate }

package item

import "errors"

var (
	// ErrIndexOutOfRange is returned by Field.ValueAt when the requested
	// position is past the end of the value sequence.
	ErrIndexOutOfRange = errors.New("value index out of range")

	// ErrDateRange is returned when a date value is constructed with
	// anything other than one or two instants.
	ErrDateRange = errors.New("date value requires one or two instants")
)

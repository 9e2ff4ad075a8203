package maintenance

import "errors"

var (
	// ErrEventNotFound is returned when no maintenance event has the given id.
	ErrEventNotFound = errors.New("maintenance event not found")
	// ErrInvalidEvent is returned when a request is missing required fields or
	// carries values of the wrong shape.
	ErrInvalidEvent = errors.New("invalid maintenance event")
)

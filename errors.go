package structdiff

import "errors"

var (
	// ErrInvalidArgument is returned when a required path or name is empty
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIntrospection is returned when the members of a value can't be read
	ErrIntrospection = errors.New("cannot introspect value")
	// ErrCycleDetected is returned when a comparison revisits a pair of values
	// it is already inside of
	ErrCycleDetected = errors.New("reference cycle detected")
	// ErrDepthExceeded is returned when composite nesting exceeds the
	// configured maximum depth
	ErrDepthExceeded = errors.New("maximum depth exceeded")
	// ErrComparatorUsed is returned by a second call to Comparator.Diff
	ErrComparatorUsed = errors.New("comparator already used")
)

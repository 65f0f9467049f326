package internal

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// DefaultWorkers picks a worker count for an array of the given size when the
// caller did not ask for one: twice runtime.NumCPU(), but never more workers
// than there are elements, and at least one.
func DefaultWorkers(size int) (workers int) {
	switch {
	case size > 0:
		workers = 2 * runtime.NumCPU()
		if workers > size {
			workers = size
		}
	case size == 0:
		workers = 1
	default:
		panic(fmt.Sprintf("invalid array size: %v", size))
	}
	return
}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		if err, isError := p.(error); isError {
			return fmt.Errorf("%w\n%s\nrethrown at", err, debug.Stack())
		}
		return fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
	}
	return nil
}

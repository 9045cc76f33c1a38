package minikanren

import (
	"errors"
	"fmt"
)

// The engine distinguishes three outcome kinds. Logical failure is not
// an error: a branch that cannot satisfy its constraints is simply
// absent from the answer stream. The two error kinds below abort the
// whole query and are surfaced through ResultIterator.Err.
var (
	// ErrUsage reports a goal that was constructed incorrectly, e.g. a
	// ProjectGround over a term that still contains variables, or a
	// finite-domain propagator applied to a non-integer. Usage errors
	// indicate programmer intent, not search exhaustion, so they
	// terminate the query rather than the branch.
	ErrUsage = errors.New("minikanren: usage error")

	// ErrStepLimit reports that the solver exceeded its configured step
	// budget while forcing the answer stream. The iterator becomes
	// terminal.
	ErrStepLimit = errors.New("minikanren: step budget exhausted")
)

// usageErrorf wraps ErrUsage with detail so callers can test the kind
// with errors.Is and still read a specific message.
func usageErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

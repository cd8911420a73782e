package engine

import "fmt"

// ErrorKind classifies executor failures. They are carried inside
// CommandResult values; the executor never panics and never returns a
// partially mutated state.
type ErrorKind string

const (
	// ErrValidation covers disallowed command types and exhausted quotas.
	ErrValidation ErrorKind = "validation"
	// ErrReference covers unresolvable checkout targets and unknown branch
	// names for merge, rebase and branch creation.
	ErrReference ErrorKind = "reference"
	// ErrState covers merge/rebase with a detached HEAD and undo on an
	// empty stack.
	ErrState ErrorKind = "state"
)

func failf(kind ErrorKind, format string, args ...any) CommandResult {
	return CommandResult{
		Success:   false,
		ErrorKind: kind,
		Message:   fmt.Sprintf(format, args...),
	}
}

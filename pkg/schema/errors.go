package schema

import "fmt"

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name
	Reason error  // Underlying cause, usually a domain sentinel
	Value  string // The value that failed validation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q: %v (got %q)", e.Key, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// EntryError ties a validation failure to the entry that caused it.
type EntryError struct {
	Index int // Zero-based position of the entry in its source
	Entry RawTransition
	Err   error
}

func (e *EntryError) Error() string {
	if e.Entry == (RawTransition{}) {
		return fmt.Sprintf("entry %d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("entry %d %s: %v", e.Index+1, e.Entry, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes every wrapped error to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}

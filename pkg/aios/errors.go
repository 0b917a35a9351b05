package aios

import "fmt"

// ValidationError reports a query, tool, or model configuration that
// violates the kernel wire contract. Callers can distinguish contract
// violations from transport problems with errors.As.
type ValidationError struct {
	// Field names the offending field in dotted-path form, e.g.
	// "messages[0].role" or "llms.temperature".
	Field string

	// Reason describes what is wrong with the field's value.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

package llm

import "fmt"

// MalformedResponseError reports a model reply that could not be decoded or
// failed payload schema validation. Malformed replies are terminal for the
// generation; no repair call is made.
type MalformedResponseError struct {
	Cause error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Cause)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

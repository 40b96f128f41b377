package extraction

import "fmt"

// UpstreamError reports a failed call to the generative-model service.
// These are retryable by the caller; the draft input is never lost.
type UpstreamError struct {
	Status int // HTTP status, 0 for transport-level failures
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("extraction upstream returned status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("extraction upstream unreachable: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedError means the model's text could not be coerced into
// valid JSON after all repair stages. Preview holds the first part of
// the cleaned text for manual diagnosis.
type MalformedError struct {
	Preview string
	Err     error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("model response is not valid JSON after repair: %v (preview: %s)", e.Err, e.Preview)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// ShapeError means the JSON parsed but lacks a usable trades array.
// User messaging is identical to MalformedError; the kind is kept
// distinct for diagnostics.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("model response has invalid shape: %s", e.Reason)
}

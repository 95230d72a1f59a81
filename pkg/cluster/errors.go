package cluster

import (
	"fmt"
)

// UnavailableError is returned when the status API cannot be reached or
// answers with a transport level failure. The current run has to be aborted.
type UnavailableError struct {
	Endpoint string
	Status   int
	Err      error
}

// NewUnavailableError wraps a transport error for the given endpoint.
func NewUnavailableError(endpoint string, err error) *UnavailableError {
	return &UnavailableError{Endpoint: endpoint, Err: err}
}

func (e *UnavailableError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("Cluster unavailable: %s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("Cluster unavailable: %s: %v", e.Endpoint, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// MalformedRecordError is returned by the parsers when a status row does not
// have the expected shape. The row is skipped, the run continues.
type MalformedRecordError struct {
	Record string
	Field  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Malformed record %s, field %s: %v", e.Record, e.Field, e.Err)
	}
	return fmt.Sprintf("Malformed record %s, field %s", e.Record, e.Field)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

package app

import (
	"time"

	"ospl-go/internal/ospl"
)

// Operation tracks one CLI invocation. Its ID tags every log line the
// invocation writes.
type Operation struct {
	ID        string
	Name      string
	StartedAt time.Time
	Status    string // "success" or "error"
	Err       error  // first failure, if any
}

// NewOperation creates an operation started at clock's current time.
func NewOperation(name string, clock ospl.Clock) *Operation {
	started := clock.Now().UTC()
	return &Operation{
		ID:        started.Format("20060102T150405Z"),
		Name:      name,
		StartedAt: started,
		Status:    "success",
	}
}

// Fail marks the operation as failed. Only the first error is kept.
func (op *Operation) Fail(err error) {
	if op.Err == nil {
		op.Err = err
	}
	op.Status = "error"
}

// Failed reports whether Fail was called.
func (op *Operation) Failed() bool {
	return op.Status == "error"
}

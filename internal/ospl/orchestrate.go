package ospl

import (
	"errors"
	"fmt"
)

// Outcome reports which store steps of an orchestrated call completed.
type Outcome int

const (
	// NotApplied means neither store was changed.
	NotApplied Outcome = iota
	// RelationalOnly means the relational step completed and the file tree
	// step did not.
	RelationalOnly
	// FilesystemOnly means the file tree step completed and the relational
	// step did not.
	FilesystemOnly
	// Applied means both stores were changed. An error with this outcome
	// comes from a follow-up step such as thumbnail generation.
	Applied
)

func (o Outcome) String() string {
	switch o {
	case NotApplied:
		return "not applied"
	case RelationalOnly:
		return "relational only"
	case FilesystemOnly:
		return "filesystem only"
	case Applied:
		return "applied"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// StepError wraps every failure returned by the Library's mutating calls.
type StepError struct {
	Op      string
	Outcome Outcome
	ID      int64 // element id, 0 when none was assigned
	Err     error
}

func (e *StepError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s (id %d, %s): %v", e.Op, e.ID, e.Outcome, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Outcome, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// OutcomeOf extracts the outcome of a Library call. A nil error is Applied;
// an error that is not a StepError is NotApplied.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return Applied
	}
	var se *StepError
	if errors.As(err, &se) {
		return se.Outcome
	}
	return NotApplied
}

func stepError(op string, outcome Outcome, id int64, err error) error {
	return &StepError{Op: op, Outcome: outcome, ID: id, Err: err}
}

// partialOutcome is the outcome of a file tree step that failed before the
// relational step ran.
func partialOutcome(touched bool) Outcome {
	if touched {
		return FilesystemOnly
	}
	return NotApplied
}

// create runs validate, relational insert, bind and placement in that order.
// A placement failure leaves the row behind and reports its id.
func create[E Element](db Database, fs Filesystem, op string, d Draft[E]) (E, error) {
	var zero E
	if err := d.Validate(); err != nil {
		return zero, stepError(op, NotApplied, 0, err)
	}
	id, err := d.InsertRow(db)
	if err != nil {
		return zero, stepError(op, NotApplied, 0, err)
	}
	e := d.Bind(id)
	if err := e.Place(fs); err != nil {
		return zero, stepError(op, RelationalOnly, id, err)
	}
	return e, nil
}

// rename changes the file tree first, then the row.
func rename[E Renamable](db Database, fs Filesystem, op string, e E, name string) error {
	if err := validateName(op, name); err != nil {
		return stepError(op, NotApplied, e.ID(), err)
	}
	if err := e.RenamePath(fs, name); err != nil {
		return stepError(op, NotApplied, e.ID(), err)
	}
	if err := e.RenameRow(db, name); err != nil {
		return stepError(op, FilesystemOnly, e.ID(), err)
	}
	return nil
}

// remove deletes the file tree presence first, then the row.
func remove[E Element](db Database, fs Filesystem, op string, e E) error {
	if err := e.Remove(fs); err != nil {
		return stepError(op, NotApplied, e.ID(), err)
	}
	if err := e.DeleteRow(db); err != nil {
		return stepError(op, FilesystemOnly, e.ID(), err)
	}
	return nil
}

// load wraps a Loader failure as a rejection before mutation.
func load[E Element](db Database, op string, loader func(Database, int64) (E, error), id int64) (E, error) {
	e, err := loader(db, id)
	if err != nil {
		var zero E
		return zero, stepError(op, NotApplied, id, err)
	}
	return e, nil
}

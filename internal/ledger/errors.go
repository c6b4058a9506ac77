package ledger

import "fmt"

// ReadError reports a failed scan of the store.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("ledger: read rows: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed append or overwrite. Position is zero for
// appends, which have no target position.
type WriteError struct {
	Op       string
	Position int
	Err      error
}

func (e *WriteError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("ledger: %s row %d: %v", e.Op, e.Position, e.Err)
	}
	return fmt.Sprintf("ledger: %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

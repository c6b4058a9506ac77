package source

import "fmt"

// ConnectError reports a failure to establish a source connection.
type ConnectError struct {
	Source string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("source %s: connect: %v", e.Source, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// QueryError reports a failed per-date total lookup.
type QueryError struct {
	Source string
	Date   string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("source %s: total for %s: %v", e.Source, e.Date, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaUnavailable is returned when a table cannot be described.
	ErrSchemaUnavailable = errors.New("schema unavailable")

	// ErrNoActiveTable is returned when match() runs before a table is selected.
	ErrNoActiveTable = errors.New("no active table")

	// ErrNoOperation is returned when executing a builder with no statement started.
	ErrNoOperation = errors.New("no statement operation set")

	// ErrNoMoreRows is returned by a cursor once all rows were read.
	ErrNoMoreRows = errors.New("no more rows")

	// ErrUnboundParameter is returned when SQL references a parameter with no binding.
	ErrUnboundParameter = errors.New("unbound parameter")

	// ErrNotConnected is returned when the driver has no open connection.
	ErrNotConnected = errors.New("database not connected")

	// ErrNoTransaction is returned by commit or rollback outside a transaction.
	ErrNoTransaction = errors.New("no active transaction")

	// ErrConnectionBusy is returned when a single-connection driver is held by an open cursor.
	ErrConnectionBusy = errors.New("connection busy: an open result holds the only connection")

	// ErrNoPrimaryKey is returned when a match condition needs the primary key of a
	// table that has none.
	ErrNoPrimaryKey = errors.New("table has no primary key")

	// ErrNotExecuted is returned when reading results before a statement ran.
	ErrNotExecuted = errors.New("statement not executed")
)

// DriverError wraps a failure reported by the underlying database driver.
type DriverError struct {
	Operation string
	SQL       string
	Cause     error
}

// Error implements the error interface.
func (e *DriverError) Error() string {
	if e.SQL != "" {
		return fmt.Sprintf("%s failed for %q: %v", e.Operation, e.SQL, e.Cause)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *DriverError) Unwrap() error {
	return e.Cause
}

// NewDriverError creates a DriverError.
func NewDriverError(op, sql string, cause error) *DriverError {
	return &DriverError{Operation: op, SQL: sql, Cause: cause}
}

// IsDriverError reports whether err wraps a DriverError.
func IsDriverError(err error) bool {
	var de *DriverError
	return errors.As(err, &de)
}

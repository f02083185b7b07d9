package client

import "github.com/satishbabariya/sqlfluent/internal/core/query/domain"

// Sentinel errors returned by the builder.
var (
	// ErrNoOperation is returned when executing before any statement was started.
	ErrNoOperation = domain.ErrNoOperation

	// ErrNoActiveTable is reported when Match runs before a table is selected.
	ErrNoActiveTable = domain.ErrNoActiveTable

	// ErrNoMoreRows is returned by Fetch once the result is exhausted.
	ErrNoMoreRows = domain.ErrNoMoreRows

	// ErrSchemaUnavailable is returned when a table cannot be described.
	ErrSchemaUnavailable = domain.ErrSchemaUnavailable

	// ErrUnboundParameter is returned when the SQL references an unbound parameter.
	ErrUnboundParameter = domain.ErrUnboundParameter

	// ErrNoTransaction is returned by Commit or Rollback outside a transaction.
	ErrNoTransaction = domain.ErrNoTransaction

	// ErrNoPrimaryKey is returned by Execute after Match targeted the primary key
	// of a table without one.
	ErrNoPrimaryKey = domain.ErrNoPrimaryKey

	// ErrConnectionBusy is returned when an open result holds the only connection
	// of an in-memory SQLite database.
	ErrConnectionBusy = domain.ErrConnectionBusy

	// ErrNotExecuted is returned when reading rows of a statement that returns none.
	ErrNotExecuted = domain.ErrNotExecuted
)

// DriverError wraps a failure reported by the database.
type DriverError = domain.DriverError

// IsDriverError reports whether err wraps a DriverError.
func IsDriverError(err error) bool {
	return domain.IsDriverError(err)
}

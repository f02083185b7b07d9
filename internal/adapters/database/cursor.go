package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// rowsCursor iterates *sql.Rows as domain.Row maps.
type rowsCursor struct {
	rows    *sql.Rows
	columns []string
	closed  bool
	onClose func() error
}

func newRowsCursor(rows *sql.Rows, onClose func() error) (*rowsCursor, error) {
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		if onClose != nil {
			onClose()
		}
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	return &rowsCursor{rows: rows, columns: cols, onClose: onClose}, nil
}

// Next returns the next row.
func (c *rowsCursor) Next(ctx context.Context) (domain.Row, error) {
	if c.closed {
		return nil, domain.ErrNoMoreRows
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !c.rows.Next() {
		err := c.rows.Err()
		c.Close()
		if err != nil {
			return nil, domain.NewDriverError("fetch", "", err)
		}
		return nil, domain.ErrNoMoreRows
	}

	values := make([]any, len(c.columns))
	ptrs := make([]any, len(c.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		return nil, domain.NewDriverError("fetch", "", err)
	}

	row := make(domain.Row, len(c.columns))
	for i, col := range c.columns {
		if b, ok := values[i].([]byte); ok {
			row[col] = string(b)
			continue
		}
		row[col] = values[i]
	}
	return row, nil
}

// All returns every remaining row.
func (c *rowsCursor) All(ctx context.Context) ([]domain.Row, error) {
	var out []domain.Row
	for {
		row, err := c.Next(ctx)
		if errors.Is(err, domain.ErrNoMoreRows) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, row)
	}
}

// Columns returns the result column names.
func (c *rowsCursor) Columns() []string {
	return c.columns
}

// Close releases the rows.
func (c *rowsCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	err := c.rows.Close()
	if c.onClose != nil {
		if cerr := c.onClose(); err == nil {
			err = cerr
		}
	}
	return err
}

// scanAll reads every row of rows as column metadata.
func scanAll(ctx context.Context, rows *sql.Rows) ([]domain.ColumnMetadata, error) {
	cur, err := newRowsCursor(rows, nil)
	if err != nil {
		return nil, err
	}
	defer cur.Close()

	all, err := cur.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ColumnMetadata, len(all))
	for i, r := range all {
		out[i] = domain.ColumnMetadata(r)
	}
	return out, nil
}

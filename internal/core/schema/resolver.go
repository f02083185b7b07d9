package schema

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
	"github.com/satishbabariya/sqlfluent/internal/debug"
)

// Describer is the part of the database driver the resolver needs.
type Describer interface {
	// DescribeTable returns the raw metadata rows for table. An empty result means not found.
	DescribeTable(ctx context.Context, table string) ([]domain.ColumnMetadata, error)
	// Fingerprint identifies the connection.
	Fingerprint() string
	// Flavor selects how the metadata rows are read.
	Flavor() domain.SchemaFlavor
}

// Resolver describes tables through a Describer and caches the results.
type Resolver struct {
	describer Describer
	cache     *Cache
	group     singleflight.Group
}

// NewResolver creates a resolver. A nil cache selects DefaultCache.
func NewResolver(describer Describer, cache *Cache) *Resolver {
	if cache == nil {
		cache = DefaultCache()
	}
	return &Resolver{describer: describer, cache: cache}
}

// Cache returns the cache backing the resolver.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Describe returns the schema of table. Failures are wrapped in
// domain.ErrSchemaUnavailable and are not cached, so a later call retries.
func (r *Resolver) Describe(ctx context.Context, table string) (*domain.TableSchema, error) {
	if r == nil || r.describer == nil || table == "" {
		return nil, domain.ErrSchemaUnavailable
	}

	fp := Fingerprint(r.describer.Fingerprint(), table)
	if s, ok := r.cache.Get(fp); ok {
		return s, nil
	}

	v, err, _ := r.group.Do(fp, func() (interface{}, error) {
		if s, ok := r.cache.Get(fp); ok {
			return s, nil
		}

		debug.Debug("describing table", "table", table, "fingerprint", fp)
		rows, err := r.describer.DescribeTable(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w: %w", table, domain.ErrSchemaUnavailable, err)
		}

		s, err := Normalize(table, r.describer.Flavor(), rows)
		if err != nil {
			return nil, err
		}
		return r.cache.Put(fp, s), nil
	})
	if err != nil {
		debug.Debug("schema unavailable", "table", table, "error", err)
		return nil, err
	}

	return v.(*domain.TableSchema), nil
}

// Column resolves the type of column in table. When the schema or the column is
// unknown it reports a STRING column and ok=false.
func (r *Resolver) Column(ctx context.Context, table, column string) (col domain.ColumnType, ok bool) {
	fallback := domain.ColumnType{Name: column, ParamType: domain.ParamString}

	s, err := r.Describe(ctx, table)
	if err != nil {
		return fallback, false
	}
	if c, found := s.Column(StripQuotes(column)); found {
		return c, true
	}
	return fallback, false
}

// PrimaryKey returns the primary key column of table.
func (r *Resolver) PrimaryKey(ctx context.Context, table string) (domain.ColumnType, error) {
	s, err := r.Describe(ctx, table)
	if err != nil {
		return domain.ColumnType{}, err
	}
	if s.PrimaryKey == nil {
		return domain.ColumnType{}, domain.ErrNoPrimaryKey
	}
	return *s.PrimaryKey, nil
}

package client

import (
	"context"

	"github.com/satishbabariya/sqlfluent/internal/core/schema"
)

// Option configures a Builder.
type Option func(*Builder)

// WithSchemaCache shares cache between builders. Without it the process-wide
// default cache is used.
func WithSchemaCache(cache *schema.Cache) Option {
	return func(b *Builder) {
		b.cache = cache
	}
}

// WithContext sets the context used for schema lookups made by fluent calls.
func WithContext(ctx context.Context) Option {
	return func(b *Builder) {
		if ctx != nil {
			b.ctx = ctx
		}
	}
}

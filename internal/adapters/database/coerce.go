package database

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// Coerce converts a binding's value to the Go type matching its type tag.
func Coerce(b domain.Binding) (any, error) {
	if b.Value == nil {
		return nil, nil
	}

	switch b.Type {
	case domain.ParamNull:
		return nil, nil
	case domain.ParamBool:
		v, err := cast.ToBoolE(b.Value)
		if err != nil {
			return nil, fmt.Errorf("value %v is not a BOOL: %w", b.Value, err)
		}
		return v, nil
	case domain.ParamInt:
		v, err := cast.ToInt64E(b.Value)
		if err != nil {
			return nil, fmt.Errorf("value %v is not an INT: %w", b.Value, err)
		}
		return v, nil
	default:
		switch v := b.Value.(type) {
		case []byte:
			return string(v), nil
		case time.Time:
			return v.Format("2006-01-02 15:04:05"), nil
		case bool:
			if v {
				return "1", nil
			}
			return "0", nil
		}
		v, err := cast.ToStringE(b.Value)
		if err != nil {
			return nil, fmt.Errorf("value %v is not a STRING: %w", b.Value, err)
		}
		return v, nil
	}
}

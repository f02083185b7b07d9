package schema

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/satishbabariya/sqlfluent/internal/core/query/domain"
)

// Normalize converts raw describe-table rows into a TableSchema. Rows are read
// according to flavor. When no primary key is flagged the first column is used.
func Normalize(table string, flavor domain.SchemaFlavor, rows []domain.ColumnMetadata) (*domain.TableSchema, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("describe %s returned no columns: %w", table, domain.ErrSchemaUnavailable)
	}

	schema := &domain.TableSchema{
		Table:   table,
		Columns: make(map[string]domain.ColumnType, len(rows)),
	}

	pkRank := 0
	for _, row := range rows {
		var name, declared string
		var rank int

		switch flavor {
		case domain.FlavorMySQL:
			name = stringField(row, "Field")
			declared = stringField(row, "Type")
			if strings.EqualFold(stringField(row, "Key"), "PRI") {
				rank = 1
			}
		default:
			name = stringField(row, "name")
			declared = stringField(row, "type")
			rank = cast.ToInt(stringField(row, "pk"))
		}

		name = StripQuotes(name)
		if name == "" {
			continue
		}

		col := domain.ColumnType{
			Name:         name,
			DeclaredType: BaseType(declared),
			ParamType:    ParamTypeOf(declared),
		}
		if _, seen := schema.Columns[name]; !seen {
			schema.Order = append(schema.Order, name)
		}
		schema.Columns[name] = col

		// Composite keys: the lowest key position wins.
		if rank > 0 && (pkRank == 0 || rank < pkRank) {
			pk := col
			schema.PrimaryKey = &pk
			pkRank = rank
		}
	}

	if len(schema.Order) == 0 {
		return nil, fmt.Errorf("describe %s returned no named columns: %w", table, domain.ErrSchemaUnavailable)
	}

	if schema.PrimaryKey == nil {
		first := schema.Columns[schema.Order[0]]
		schema.PrimaryKey = &first
	}

	return schema, nil
}

// stringField reads key from row, matching the key case-insensitively.
func stringField(row domain.ColumnMetadata, key string) string {
	v, ok := row[key]
	if !ok {
		for k, candidate := range row {
			if strings.EqualFold(k, key) {
				v, ok = candidate, true
				break
			}
		}
	}
	if !ok || v == nil {
		return ""
	}
	if b, isBytes := v.([]byte); isBytes {
		return string(b)
	}
	return cast.ToString(v)
}

// Package store exposes the marketplace data store to the assistant as a
// table-scoped query surface. The retrieval orchestrator only ever issues
// bounded, read-only selects plus the fire-and-forget conversation insert, so
// the contract stays deliberately small.
package store

import "context"

// Op is a filter comparison operator.
type Op string

const (
	OpEq    Op = "eq"
	OpNeq   Op = "neq"
	OpILike Op = "ilike"
	OpGte   Op = "gte"
	OpLte   Op = "lte"
	OpIn    Op = "in"
)

// Filter is one predicate on a column.
type Filter struct {
	Field string
	Op    Op
	Value interface{}
}

// Query describes a bounded select. Filters are ANDed together; Or filters
// are ORed with each other and ANDed against the rest, which is enough for
// the fuzzy name/address resolution queries.
type Query struct {
	Columns []string
	Filters []Filter
	Or      []Filter
	OrderBy string
	Desc    bool
	Limit   int
}

// Row is one result record keyed by column name.
type Row map[string]interface{}

// Querier is the store contract consumed by retrieval and persistence.
type Querier interface {
	Select(ctx context.Context, table string, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) error
}

// Str reads a string column, tolerating missing or differently typed values.
func (r Row) Str(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Float reads a numeric column across the types drivers hand back.
func (r Row) Float(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Int reads an integer column.
func (r Row) Int(field string) int64 {
	switch v := r[field].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Bool reads a boolean column.
func (r Row) Bool(field string) bool {
	if v, ok := r[field].(bool); ok {
		return v
	}
	return false
}

// Has reports whether a column is present and non-nil.
func (r Row) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// gormQuerier implements Querier on top of the shared GORM handle. Tables are
// addressed by name and rows come back as generic maps, which keeps the ~20
// retrieval domains out of the model layer.
type gormQuerier struct {
	db *gorm.DB
}

func NewGormQuerier(db *gorm.DB) Querier {
	return &gormQuerier{db: db}
}

func (g *gormQuerier) Select(ctx context.Context, table string, q Query) ([]Row, error) {
	tx := g.db.WithContext(ctx).Table(table)

	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}

	for _, f := range q.Filters {
		tx = applyFilter(tx, f, false)
	}
	if len(q.Or) > 0 {
		or := g.db.Table(table)
		for i, f := range q.Or {
			or = applyFilter(or, f, i > 0)
		}
		tx = tx.Where(or)
	}

	if q.OrderBy != "" {
		dir := "ASC"
		if q.Desc {
			dir = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", q.OrderBy, dir))
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []map[string]interface{}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = Row(r)
	}
	return out, nil
}

func (g *gormQuerier) Insert(ctx context.Context, table string, row Row) error {
	return g.db.WithContext(ctx).Table(table).Create(map[string]interface{}(row)).Error
}

func applyFilter(tx *gorm.DB, f Filter, asOr bool) *gorm.DB {
	var clause string
	switch f.Op {
	case OpNeq:
		clause = f.Field + " <> ?"
	case OpILike:
		clause = f.Field + " ILIKE ?"
	case OpGte:
		clause = f.Field + " >= ?"
	case OpLte:
		clause = f.Field + " <= ?"
	case OpIn:
		clause = f.Field + " IN ?"
	default:
		clause = f.Field + " = ?"
	}

	if asOr {
		return tx.Or(clause, f.Value)
	}
	return tx.Where(clause, f.Value)
}

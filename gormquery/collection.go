// Package gormquery applies compiled api-helper predicates, sort order and
// pagination to a gorm-backed collection. Everything runs through gorm's
// parameter binding; compiled predicates never reach SQL as strings.
package gormquery

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	apihelper "github.com/zetavg/api-helper"
)

// Collection is a queryable collection of T rows. It also serves as the
// resource schema collaborator: the model's parsed gorm schema backs
// FieldType lookups for the filter compiler.
type Collection[T any] struct {
	db       *gorm.DB
	idCol    string
	preloads []string
	types    map[string]apihelper.FieldType
}

type Option[T any] func(*Collection[T])

// WithIDColumn overrides the lookup column for multiget, default "id".
func WithIDColumn[T any](col string) Option[T] {
	return func(c *Collection[T]) { c.idCol = col }
}

// WithPreloads loads the named associations on every fetch. Whether an
// association reaches the response as a nested sub-resource or a bare
// foreign key is decided at render time, not here.
func WithPreloads[T any](names ...string) Option[T] {
	return func(c *Collection[T]) { c.preloads = append(c.preloads, names...) }
}

func NewCollection[T any](db *gorm.DB, opts ...Option[T]) (*Collection[T], error) {
	c := &Collection[T]{db: db, idCol: "id"}
	for _, o := range opts {
		o(c)
	}

	namer := db.NamingStrategy
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	s, err := schema.Parse(new(T), &sync.Map{}, namer)
	if err != nil {
		return nil, fmt.Errorf("parse model schema: %w", err)
	}

	c.types = make(map[string]apihelper.FieldType, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		c.types[f.DBName] = fieldTypeOf(f.DataType)
	}
	return c, nil
}

func fieldTypeOf(dt schema.DataType) apihelper.FieldType {
	switch dt {
	case schema.Bool:
		return apihelper.TypeBoolean
	case schema.Int, schema.Uint:
		return apihelper.TypeInteger
	case schema.Float:
		return apihelper.TypeFloat
	case schema.Time:
		return apihelper.TypeTime
	default:
		return apihelper.TypeString
	}
}

// FieldType resolves a column name to its declared type. It has the
// apihelper.FieldTypeFunc shape, so c.FieldType plugs straight into
// CompileFilter.
func (c *Collection[T]) FieldType(field string) (apihelper.FieldType, bool) {
	ft, ok := c.types[field]
	return ft, ok
}

func (c *Collection[T]) base(ctx context.Context) *gorm.DB {
	return c.db.Model(new(T)).WithContext(ctx)
}

func (c *Collection[T]) applyPreloads(q *gorm.DB) *gorm.DB {
	for _, p := range c.preloads {
		q = q.Preload(p)
	}
	return q
}

// ApplyPredicates composes the compiled predicates onto a query with AND.
// Field names run through SanitizeIdent; a predicate whose field sanitizes
// to empty is skipped.
func (c *Collection[T]) ApplyPredicates(q *gorm.DB, ops []apihelper.PredicateOp) *gorm.DB {
	for _, p := range ops {
		col := apihelper.SanitizeIdent(p.Field)
		if col == "" {
			continue
		}
		switch p.Op {
		case apihelper.OpIn:
			if len(p.Values) == 1 {
				q = q.Where(fmt.Sprintf("%s = ?", col), p.Values[0])
			} else {
				q = q.Where(fmt.Sprintf("%s IN ?", col), p.Values)
			}
		case apihelper.OpNotIn:
			q = q.Where(fmt.Sprintf("%s NOT IN ?", col), p.Values)
		case apihelper.OpGreater:
			q = q.Where(fmt.Sprintf("%s > ?", col), p.Values[0])
		case apihelper.OpLess:
			q = q.Where(fmt.Sprintf("%s < ?", col), p.Values[0])
		case apihelper.OpGreaterOrEqual:
			q = q.Where(fmt.Sprintf("%s >= ?", col), p.Values[0])
		case apihelper.OpLessOrEqual:
			q = q.Where(fmt.Sprintf("%s <= ?", col), p.Values[0])
		case apihelper.OpBetween:
			q = q.Where(fmt.Sprintf("%s BETWEEN ? AND ?", col), p.Values[0], p.Values[1])
		case apihelper.OpLike:
			q = q.Where(fmt.Sprintf("%s LIKE ?", col), p.Values[0])
		case apihelper.OpContains:
			q = q.Where(fmt.Sprintf("%s LIKE ?", col), "%"+fmt.Sprint(p.Values[0])+"%")
		case apihelper.OpNull:
			q = q.Where(fmt.Sprintf("%s IS NULL", col))
		case apihelper.OpBlank:
			q = q.Where(fmt.Sprintf("(%s IS NULL OR %s = '')", col, col))
		}
	}
	return q
}

// ApplySort adds ORDER BY columns in key order.
func (c *Collection[T]) ApplySort(q *gorm.DB, order []apihelper.SortField) *gorm.DB {
	for _, s := range order {
		col := apihelper.SanitizeIdent(s.Field)
		if col == "" {
			continue
		}
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Name: col},
			Desc:   s.Direction == apihelper.Desc,
		})
	}
	return q
}

// ApplyPagination adds the LIMIT/OFFSET window for a resolved page.
func (c *Collection[T]) ApplyPagination(q *gorm.DB, st apihelper.PaginationState) *gorm.DB {
	return q.Limit(st.PerPage).Offset((st.CurrentPage - 1) * st.PerPage)
}

// Count returns the number of rows matching the predicates.
func (c *Collection[T]) Count(ctx context.Context, ops []apihelper.PredicateOp) (int, error) {
	var total int64
	q := c.ApplyPredicates(c.base(ctx), ops)
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// List fetches one page of rows matching the predicates in the given order.
func (c *Collection[T]) List(ctx context.Context, ops []apihelper.PredicateOp, order []apihelper.SortField, st apihelper.PaginationState) ([]T, error) {
	q := c.ApplyPredicates(c.base(ctx), ops)
	q = c.ApplySort(q, order)
	q = c.ApplyPagination(q, st)
	q = c.applyPreloads(q)
	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOne looks up a single row by id. The id arrives as the raw request
// string; the database casts it against the column type, and an
// unresolvable id (the empty string included) comes back as
// gorm.ErrRecordNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, id string) (T, error) {
	var out T
	err := c.applyPreloads(c.base(ctx)).
		Where(clause.Eq{Column: clause.Column{Name: c.idCol}, Value: id}).
		First(&out).Error
	return out, err
}

// FindMany looks up rows whose id is in the given list. Missing ids are
// simply absent from the result.
func (c *Collection[T]) FindMany(ctx context.Context, ids []string) ([]T, error) {
	var out []T
	if len(ids) == 0 {
		return out, nil
	}
	err := c.applyPreloads(c.base(ctx)).
		Where(fmt.Sprintf("%s IN ?", apihelper.SanitizeIdent(c.idCol)), ids).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/backoffice/app/models"
	"github.com/shashiranjanraj/backoffice/pkg/orm"
)

type gormRepo[T any, P record[T]] struct {
	db      *gorm.DB
	schema  schema
	preload []string
}

func newGormRepo[T any, P record[T]](db *gorm.DB, s schema, preload ...string) *gormRepo[T, P] {
	return &gormRepo[T, P]{db: db, schema: s, preload: preload}
}

func (r *gormRepo[T, P]) query(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx)
	for _, assoc := range r.preload {
		tx = tx.Preload(assoc)
	}
	return tx
}

// Create assigns the same kind of ID the document store uses so records
// can move between backends unchanged.
func (r *gormRepo[T, P]) Create(ctx context.Context, rec *T) error {
	stamp(P(rec).Meta(), primitive.NewObjectID().Hex())

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return r.wrap("insert", err)
	}
	return nil
}

func (r *gormRepo[T, P]) FindByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.query(ctx).Where("id = ?", id).Take(&out).Error; err != nil {
		return nil, r.wrap("find", err)
	}
	return &out, nil
}

func (r *gormRepo[T, P]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	out := []T{}
	if len(ids) == 0 {
		return out, nil
	}
	if err := r.query(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, r.wrap("find", err)
	}
	return out, nil
}

func (r *gormRepo[T, P]) Exists(ctx context.Context, field Field, value interface{}) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Where(field.Column+" = ?", value).Count(&n).Error
	if err != nil {
		return false, r.wrap("count", err)
	}
	return n > 0, nil
}

func (r *gormRepo[T, P]) List(ctx context.Context, q ListQuery) ([]T, orm.Pagination, error) {
	page, limit := orm.Normalize(q.Page, q.Limit)

	base := r.db.WithContext(ctx).Model(new(T))
	if cond := r.searchCond(q); cond != nil {
		base = base.Where(cond)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, orm.Pagination{}, r.wrap("count", err)
	}

	items := []T{}
	if orm.PastEnd(page, limit, total) {
		return items, orm.NewPagination(page, limit, total), nil
	}

	tx := base.Scopes(orm.Paginate(page, limit)).Order("created_at DESC").Order("id DESC")
	for _, assoc := range r.preload {
		tx = tx.Preload(assoc)
	}
	if err := tx.Find(&items).Error; err != nil {
		return nil, orm.Pagination{}, r.wrap("find", err)
	}

	return items, orm.NewPagination(page, limit, total), nil
}

func (r *gormRepo[T, P]) SearchIDs(ctx context.Context, term string) ([]string, error) {
	ids := []string{}
	cond := r.searchCond(ListQuery{Search: term})
	if cond == nil {
		return ids, nil
	}

	if err := r.db.WithContext(ctx).Model(new(T)).Where(cond).Pluck("id", &ids).Error; err != nil {
		return nil, r.wrap("find", err)
	}
	return ids, nil
}

// searchCond builds the grouped OR condition for a search, or nil when
// there is nothing to match.
func (r *gormRepo[T, P]) searchCond(q ListQuery) *gorm.DB {
	if q.Search == "" {
		return nil
	}

	exprs := make([]string, 0, len(r.schema.search)+len(r.schema.numeric))
	for _, f := range r.schema.search {
		exprs = append(exprs, f.Column)
	}
	for _, f := range r.schema.numeric {
		exprs = append(exprs, castText(r.db, f.Column))
	}

	clause, args := orm.SearchClause(q.Search, exprs...)
	cond := r.db.Session(&gorm.Session{NewDB: true}).Where(clause, args...)
	if r.schema.ref != nil && len(q.RefIDs) > 0 {
		cond = cond.Or(r.schema.ref.Column+" IN ?", q.RefIDs)
	}
	return cond
}

// castText renders a numeric column as text in the connected dialect.
func castText(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "mysql" {
		return "CAST(" + column + " AS CHAR)"
	}
	return "CAST(" + column + " AS VARCHAR(64))"
}

func (r *gormRepo[T, P]) Update(ctx context.Context, id string, changes Changes) (*T, error) {
	values := map[string]interface{}{"updated_at": Now()}
	for f, v := range changes {
		values[f.Column] = v
	}

	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, r.wrap("update", err)
	}

	// An unknown id updates nothing, so the read-back reports ErrNotFound.
	return r.FindByID(ctx, id)
}

func (r *gormRepo[T, P]) Delete(ctx context.Context, id string) (*T, error) {
	var out *T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := &gormRepo[T, P]{db: tx, schema: r.schema, preload: r.preload}

		found, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if len(r.preload) > 0 {
			if err := tx.Select(r.preload).Delete(found).Error; err != nil {
				return r.wrap("delete", err)
			}
		} else if err := tx.Where("id = ?", id).Delete(new(T)).Error; err != nil {
			return r.wrap("delete", err)
		}

		out = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepo[T, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, r.wrap("count", err)
	}
	return n, nil
}

func (r *gormRepo[T, P]) wrap(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicate(err):
		return fmt.Errorf("%s %s: %w", r.schema.name, op, ErrDuplicate)
	default:
		return fmt.Errorf("%s %s: %w", r.schema.name, op, err)
	}
}

// isDuplicate recognises unique violations from drivers that gorm does not
// translate.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

type gormOrders struct {
	*gormRepo[models.Order, *models.Order]
}

func (r gormOrders) SumTotalAmount(ctx context.Context) (float64, error) {
	var total float64
	row := r.db.WithContext(ctx).Model(&models.Order{}).Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return 0, r.wrap("sum", err)
	}
	return total, nil
}

// NewGormStore builds a Store on db. Close closes the underlying pool.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:      newGormRepo[models.User](db, userSchema),
		Categories: newGormRepo[models.Category](db, categorySchema),
		Products:   newGormRepo[models.Product](db, productSchema),
		Orders:     gormOrders{newGormRepo[models.Order](db, orderSchema, "Items")},

		backend: "sql",
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
